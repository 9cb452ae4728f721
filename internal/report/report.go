// Package report aggregates classified publications into the template context.
package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/oyvindaas/aarsrapport/internal/apa"
	"github.com/oyvindaas/aarsrapport/internal/classify"
	"github.com/oyvindaas/aarsrapport/internal/publication"
)

// entrySeparator joins references within a bucket or field.
const entrySeparator = "\n\n"

// Entry is one formatted reference with the fields its bucket sorts on.
type Entry struct {
	Reference string
	Year      int
	Surname   string // first author's surname, lowercased for ordering
	Title     string // lowercased for ordering
}

// Report is the aggregation of one person-year's classified results.
type Report struct {
	Year int

	// Buckets holds publication entries per bucket, sorted.
	Buckets map[classify.Bucket][]Entry
	// AutoManual holds auto-populated dissemination text per manual-field
	// key, sorted like the buckets.
	AutoManual map[string][]Entry

	// Unclassified counts records skipped for missing identifying fields.
	Unclassified int
	// Total counts every record that landed in a bucket or manual field.
	Total int
}

// Build classifies and formats results, keeping those published in the given
// year. Classification happens before the year filter so malformed records
// are tallied even when their year field is unusable. Build never fails; any
// input shape produces a report.
func Build(results []publication.Result, year int) *Report {
	rep := &Report{
		Year:       year,
		Buckets:    make(map[classify.Bucket][]Entry, len(classify.Buckets)),
		AutoManual: make(map[string][]Entry),
	}
	for _, b := range classify.Buckets {
		rep.Buckets[b] = nil
	}

	for i := range results {
		r := &results[i]
		outcome := classify.Classify(r)

		if outcome.Kind == classify.KindUnclassifiable {
			rep.Unclassified++
			continue
		}
		if r.Year() != year {
			continue
		}

		switch outcome.Kind {
		case classify.KindPublication:
			rep.Buckets[outcome.Bucket] = append(rep.Buckets[outcome.Bucket], newEntry(r, apa.Format(r)))
			rep.Total++
		case classify.KindDissemination:
			formatted := apa.FormatDissemination(r)
			if formatted == "" {
				rep.Unclassified++
				continue
			}
			rep.AutoManual[outcome.ManualKey] = append(rep.AutoManual[outcome.ManualKey], newEntry(r, formatted))
			rep.Total++
		}
	}

	for b := range rep.Buckets {
		sortEntries(rep.Buckets[b])
	}
	for k := range rep.AutoManual {
		sortEntries(rep.AutoManual[k])
	}

	return rep
}

// newEntry captures the sort keys alongside the formatted reference.
func newEntry(r *publication.Result, formatted string) Entry {
	surname := ""
	if len(r.Contributors.Preview) > 0 {
		surname = strings.ToLower(strings.TrimSpace(r.Contributors.Preview[0].Surname))
	}
	return Entry{
		Reference: formatted,
		Year:      r.Year(),
		Surname:   surname,
		Title:     strings.ToLower(r.Title()),
	}
}

// sortEntries orders a bucket: year descending, first-author surname
// ascending, title ascending. The sort is stable, so records that tie on all
// three keys keep their fetch order.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Year != entries[j].Year {
			return entries[i].Year > entries[j].Year
		}
		if entries[i].Surname != entries[j].Surname {
			return entries[i].Surname < entries[j].Surname
		}
		return entries[i].Title < entries[j].Title
	})
}

// Counts returns the number of entries per publication bucket within the
// report year.
func (r *Report) Counts() map[classify.Bucket]int {
	counts := make(map[classify.Bucket]int, len(classify.Buckets))
	for _, b := range classify.Buckets {
		counts[b] = len(r.Buckets[b])
	}
	return counts
}

// DisseminationCounts returns the number of auto-populated entries per
// formidling field within the report year.
func (r *Report) DisseminationCounts() map[string]int {
	counts := make(map[string]int, len(r.AutoManual))
	for k, entries := range r.AutoManual {
		counts[k] = len(entries)
	}
	return counts
}

// PersonInfo carries the header values for the template context.
type PersonInfo struct {
	Name                 string
	Institution          string
	InstitutionSecondary string
}

// Context builds the complete placeholder map. Every declared placeholder is
// present, empty buckets render as empty strings, and caller-supplied manual
// text is appended after any auto-populated text with a blank line between
// them. Keys in manual that are not declared placeholders are ignored.
func (r *Report) Context(person PersonInfo, manual map[string]string) map[string]string {
	ctx := make(map[string]string, len(HeaderKeys)+len(classify.Buckets)+len(ManualFieldKeys))

	ctx[KeyReportYear] = strconv.Itoa(r.Year)
	ctx[KeyPersonName] = person.Name
	ctx[KeyInstitution] = person.Institution
	ctx[KeyInstitutionSecondary] = person.InstitutionSecondary

	for _, b := range classify.Buckets {
		ctx[string(b)] = joinEntries(r.Buckets[b])
	}

	for _, key := range ManualFieldKeys {
		auto := joinEntries(r.AutoManual[key])
		ctx[key] = MergeFieldText(auto, manual[key])
	}

	return ctx
}

// MergeFieldText combines auto-populated and caller-supplied text for one
// field. Auto text comes first, separated by a blank line; either side may be
// empty, in which case the other is returned without a separator.
func MergeFieldText(auto, manual string) string {
	auto = strings.TrimSpace(auto)
	manual = strings.TrimSpace(manual)

	switch {
	case auto != "" && manual != "":
		return auto + entrySeparator + manual
	case auto != "":
		return auto
	}
	return manual
}

// joinEntries concatenates a bucket's references with blank lines.
func joinEntries(entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}
	refs := make([]string, len(entries))
	for i, e := range entries {
		refs[i] = e.Reference
	}
	return strings.Join(refs, entrySeparator)
}
