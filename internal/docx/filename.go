package docx

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	forbiddenFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]+`)
	collapsedWhitespace    = regexp.MustCompile(`\s+`)
)

// SanitizeFilename strips characters that are unsafe in file names while
// keeping the value readable. Returns fallback when nothing usable remains.
func SanitizeFilename(value, fallback string) string {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return fallback
	}
	cleaned = forbiddenFilenameChars.ReplaceAllString(cleaned, "")
	cleaned = collapsedWhitespace.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimRight(cleaned, ". ")
	if cleaned == "" {
		return fallback
	}
	return cleaned
}

// OutputFilename builds the report file name: Aarsrapport_<year>_<name>.docx.
// Falls back to the person ID when the name is unusable.
func OutputFilename(personName, personID string, reportYear int) string {
	safeName := SanitizeFilename(personName, SanitizeFilename(personID, "report"))
	safeYear := SanitizeFilename(fmt.Sprintf("%d", reportYear), "year")
	return fmt.Sprintf("Aarsrapport_%s_%s.docx", safeYear, safeName)
}
