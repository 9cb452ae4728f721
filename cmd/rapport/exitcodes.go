package main

// Exit codes used by every command.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitDataError   = 3 // Data error (malformed input, missing template placeholders)
	ExitAPIError    = 4 // Cristin API error (not found, rate limited, network)
)
