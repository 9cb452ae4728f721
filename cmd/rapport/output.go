package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/oyvindaas/aarsrapport/internal/classify"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that produce a file.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// GenerateResponse reports a finished report run.
type GenerateResponse struct {
	Status       string         `json:"status"`
	Path         string         `json:"path"`
	PersonID     string         `json:"person_id"`
	ReportYear   int            `json:"report_year"`
	Counts       map[string]int `json:"counts"`
	Unclassified int            `json:"unclassified"`
	Total        int            `json:"total"`
}

// SummaryResponse reports bucket counts without rendering a document.
type SummaryResponse struct {
	PersonID      string         `json:"person_id"`
	ReportYear    int            `json:"report_year"`
	Counts        map[string]int `json:"counts"`
	Dissemination map[string]int `json:"dissemination"`
	Unclassified  int            `json:"unclassified"`
	Total         int            `json:"total"`
}

// PersonResponse reports a person lookup.
type PersonResponse struct {
	PersonID             string `json:"person_id"`
	Name                 string `json:"name"`
	Institution          string `json:"institution,omitempty"`
	InstitutionSecondary string `json:"institution_secondary,omitempty"`
}

// FetchResponse reports a completed fetch.
type FetchResponse struct {
	Status      string `json:"status"`
	PersonID    string `json:"person_id"`
	ResultCount int    `json:"result_count"`
	Snapshot    string `json:"snapshot,omitempty"`
}

// CheckResponse reports a template placeholder check.
type CheckResponse struct {
	Template     string   `json:"template"`
	Placeholders []string `json:"placeholders"`
	Missing      []string `json:"missing,omitempty"`
}

// bucketCounts converts typed bucket counts to a plain string map for output.
func bucketCounts(counts map[classify.Bucket]int) map[string]int {
	out := make(map[string]int, len(counts))
	for b, n := range counts {
		out[string(b)] = n
	}
	return out
}

// printCountsHuman prints bucket counts in template order, then extras sorted.
func printCountsHuman(counts map[string]int) {
	printed := make(map[string]bool)
	for _, b := range classify.Buckets {
		key := string(b)
		outputHuman("  %-28s %d\n", key, counts[key])
		printed[key] = true
	}

	var rest []string
	for key := range counts {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		outputHuman("  %-28s %d\n", key, counts[key])
	}
}

// parseManualAssignments parses repeated key=value flags into a map.
func parseManualAssignments(assignments []string) (map[string]string, error) {
	manual := make(map[string]string)
	for _, a := range assignments {
		key, value, found := strings.Cut(a, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid manual field %q (expected key=value)", a)
		}
		manual[key] = value
	}
	return manual, nil
}
