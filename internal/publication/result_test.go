package publication

import (
	"encoding/json"
	"testing"
)

// sampleJSON mirrors the shape of a Cristin results API record.
const sampleJSON = `{
	"cristin_result_id": "123",
	"category": {"code": "ARTICLEJOURNAL", "name": {"en": "Academic article"}},
	"title": {"en": "Sample Publication"},
	"year_published": "2024",
	"contributors": {"preview": [{"surname": "Doe", "first_name": "Jane"}], "count": 1},
	"journal": {"name": "Journal of Testing", "level": "2"},
	"volume": 12,
	"pages": {"from": "10", "to": "20"},
	"links": [{"url_type": "DOI", "url": "https://doi.org/10.0000/example"}]
}`

func TestResult_DecodeAndAccessors(t *testing.T) {
	var r Result
	if err := json.Unmarshal([]byte(sampleJSON), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got := r.Title(); got != "Sample Publication" {
		t.Errorf("Title() = %q", got)
	}
	if got := r.Year(); got != 2024 {
		t.Errorf("Year() = %d, want 2024", got)
	}
	if got := r.DOI(); got != "https://doi.org/10.0000/example" {
		t.Errorf("DOI() = %q", got)
	}
	if got := r.VenueName(); got != "Journal of Testing" {
		t.Errorf("VenueName() = %q", got)
	}
	if got := r.VenueLevel(); got != "2" {
		t.Errorf("VenueLevel() = %q, want 2", got)
	}
	if got := r.Volume.String(); got != "12" {
		t.Errorf("Volume = %q, want 12", got)
	}
}

func TestResult_EmptyRecord(t *testing.T) {
	var r Result
	if got := r.Title(); got != "" {
		t.Errorf("Title() on empty record = %q", got)
	}
	if got := r.Year(); got != 0 {
		t.Errorf("Year() on empty record = %d", got)
	}
	if got := r.DOI(); got != "" {
		t.Errorf("DOI() on empty record = %q", got)
	}
	if got := r.VenueLevel(); got != "" {
		t.Errorf("VenueLevel() on empty record = %q", got)
	}
}

func TestResult_VenueLevelCandidates(t *testing.T) {
	tests := []struct {
		name string
		r    Result
		want string
	}{
		{"top-level level", Result{Level: "1"}, "1"},
		{"channel nvi level", Result{Channel: Venue{NVILevel: "2"}}, "2"},
		{"journal level", Result{Journal: Venue{Level: "2"}}, "2"},
		{"publication context", Result{PublicationContext: Venue{Level: "1"}}, "1"},
		{"invalid value ignored", Result{Level: "3"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.VenueLevel(); got != tt.want {
				t.Errorf("VenueLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResult_VenueNameFallsBackToEvent(t *testing.T) {
	r := Result{Event: Event{Name: "Nordic Testing Conference"}}
	if got := r.VenueName(); got != "Nordic Testing Conference" {
		t.Errorf("VenueName() = %q", got)
	}
}

func TestPerson_DisplayName(t *testing.T) {
	tests := []struct {
		name   string
		person Person
		want   string
	}{
		{"full name", Person{FirstName: "Jane", Surname: "Doe"}, "Jane Doe"},
		{"surname only", Person{Surname: "Doe"}, "Doe"},
		{"first name only", Person{FirstName: "Jane"}, "Jane"},
		{"empty", Person{}, UnknownPersonName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.person.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPerson_AffiliationNames(t *testing.T) {
	p := Person{
		Affiliations: []Affiliation{
			{Institution: Institution{Name: LangMap{"en": "Test University"}}},
			{Institution: Institution{Name: LangMap{"en": "Test University"}}}, // duplicate
			{Institution: Institution{Name: LangMap{"nb": "Institutt for testing"}}},
			{Institution: Institution{Name: LangMap{"en": "Third Place"}}},
		},
	}

	primary, secondary := p.AffiliationNames()
	if primary != "Test University" {
		t.Errorf("primary = %q", primary)
	}
	if secondary != "Institutt for testing" {
		t.Errorf("secondary = %q", secondary)
	}
}

func TestPerson_AffiliationNamesEmpty(t *testing.T) {
	var p Person
	primary, secondary := p.AffiliationNames()
	if primary != "" || secondary != "" {
		t.Errorf("AffiliationNames() = %q, %q, want empty strings", primary, secondary)
	}
}
