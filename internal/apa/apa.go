// Package apa renders publication results as APA-style reference strings.
package apa

import (
	"strings"

	"github.com/oyvindaas/aarsrapport/internal/publication"
)

const (
	// MaxListedAuthors is the APA 7 author cutoff: up to this many authors
	// are listed in full.
	MaxListedAuthors = 20
	// truncatedHeadAuthors is how many leading authors are kept when the
	// list exceeds MaxListedAuthors; the final author follows an ellipsis.
	truncatedHeadAuthors = 19

	// NoDate is the APA marker for a missing publication year.
	NoDate = "n.d."
)

// Format renders a result as a single-line APA reference:
//
//	Berg, A., & Dahl, B. (2023). Title. Journal, 12(1), 10-20. https://doi.org/...
//
// Missing fields are omitted without leaving dangling punctuation. The output
// depends only on the record's fields, so repeated calls return identical
// strings.
func Format(r *publication.Result) string {
	var b strings.Builder

	authors := FormatAuthors(r.Contributors.Preview)
	title := r.Title()

	if authors != "" {
		b.WriteString(authors)
		b.WriteString(" (")
		b.WriteString(yearOrNoDate(r))
		b.WriteString(").")
		if title != "" {
			b.WriteString(" ")
			b.WriteString(withTerminalPeriod(title))
		}
	} else if title != "" {
		// No authors: the title takes the author position.
		b.WriteString(withTerminalPeriod(title))
		b.WriteString(" (")
		b.WriteString(yearOrNoDate(r))
		b.WriteString(").")
	} else {
		return ""
	}

	if venue := formatVenue(r); venue != "" {
		b.WriteString(" ")
		b.WriteString(venue)
		b.WriteString(".")
	}

	if doi := r.DOI(); doi != "" {
		b.WriteString(" ")
		b.WriteString(doi)
	}

	return strings.TrimSpace(b.String())
}

// FormatDissemination renders a lecture, interview, or similar activity entry:
//
//	Berg, A. (2023). Talk title. Conference name, Oslo.
//
// Activities often lack an author list; the title then leads the entry.
func FormatDissemination(r *publication.Result) string {
	var b strings.Builder

	authors := FormatAuthors(r.Contributors.Preview)
	title := r.Title()
	if title == "" {
		return ""
	}

	if authors != "" {
		b.WriteString(authors)
		b.WriteString(" (")
		b.WriteString(yearOrNoDate(r))
		b.WriteString("). ")
		b.WriteString(withTerminalPeriod(title))
	} else {
		b.WriteString(title)
		b.WriteString(" (")
		b.WriteString(yearOrNoDate(r))
		b.WriteString(").")
	}

	if venue := r.Event.Name.String(); venue != "" {
		if loc := r.Event.Location.String(); loc != "" {
			venue = venue + ", " + loc
		}
		b.WriteString(" ")
		b.WriteString(venue)
		b.WriteString(".")
	} else if channel := r.VenueName(); channel != "" {
		b.WriteString(" ")
		b.WriteString(channel)
		b.WriteString(".")
	}

	return strings.TrimSpace(b.String())
}

// FormatAuthors renders a contributor list in APA style: surnames with
// initials, comma-separated, ampersand before the final author. Lists longer
// than MaxListedAuthors keep the first nineteen and the last, separated by an
// ellipsis.
func FormatAuthors(contributors []publication.Contributor) string {
	names := make([]string, 0, len(contributors))
	for _, c := range contributors {
		if name := formatAuthor(c); name != "" {
			names = append(names, name)
		}
	}

	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}

	if len(names) > MaxListedAuthors {
		head := strings.Join(names[:truncatedHeadAuthors], ", ")
		return head + ", ... " + names[len(names)-1]
	}

	return strings.Join(names[:len(names)-1], ", ") + ", & " + names[len(names)-1]
}

// formatAuthor inverts one contributor to "Surname, F. M.".
func formatAuthor(c publication.Contributor) string {
	surname := strings.TrimSpace(c.Surname)
	first := strings.TrimSpace(c.FirstName)

	if surname == "" {
		surname = first
		first = ""
	}
	if surname == "" {
		return ""
	}
	if initials := Initials(first); initials != "" {
		return surname + ", " + initials
	}
	return surname
}

// Initials abbreviates given names to spaced initials: "Jane Marie" -> "J. M.".
// Hyphenated names keep both initials: "Jean-Pierre" -> "J.-P.".
func Initials(given string) string {
	var parts []string
	for _, word := range strings.Fields(given) {
		hyphenated := strings.Split(word, "-")
		var initials []string
		for _, h := range hyphenated {
			r := []rune(strings.TrimSuffix(h, "."))
			if len(r) == 0 {
				continue
			}
			initials = append(initials, string(r[0])+".")
		}
		if len(initials) > 0 {
			parts = append(parts, strings.Join(initials, "-"))
		}
	}
	return strings.Join(parts, " ")
}

// formatVenue renders the publication container: "Venue, Volume(Issue), pages".
// Any subset of the fields may be absent.
func formatVenue(r *publication.Result) string {
	var parts []string

	if name := r.VenueName(); name != "" {
		parts = append(parts, name)
	}

	volume := r.Volume.String()
	issue := r.Issue.String()
	switch {
	case volume != "" && issue != "":
		parts = append(parts, volume+"("+issue+")")
	case volume != "":
		parts = append(parts, volume)
	}

	if pages := formatPages(r.Pages); pages != "" {
		parts = append(parts, pages)
	}

	return strings.Join(parts, ", ")
}

// formatPages renders a page range, tolerating open-ended ranges.
func formatPages(p publication.Pages) string {
	from := p.From.String()
	to := p.To.String()
	switch {
	case from != "" && to != "":
		return from + "-" + to
	case from != "":
		return from
	case to != "":
		return to
	}
	return ""
}

// yearOrNoDate returns the publication year or the APA no-date marker.
func yearOrNoDate(r *publication.Result) string {
	if year := r.YearPublished.String(); year != "" {
		return year
	}
	return NoDate
}

// withTerminalPeriod appends a period unless the text already ends with
// terminal punctuation (a period, question mark, or exclamation mark).
func withTerminalPeriod(s string) string {
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "?") || strings.HasSuffix(s, "!") {
		return s
	}
	return s + "."
}
