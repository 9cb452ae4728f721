package classify

import (
	"testing"

	"github.com/oyvindaas/aarsrapport/internal/publication"
)

// record builds a minimal result for classification tests.
func record(code, label, level string) *publication.Result {
	return &publication.Result{
		Category: publication.Category{
			Code: code,
			Name: publication.LangMap{"en": label},
		},
		Titles:  publication.LangMap{"en": "Sample Publication"},
		Journal: publication.Venue{Level: publication.FlexString(level)},
	}
}

func TestClassify_KnownCodes(t *testing.T) {
	tests := []struct {
		code  string
		level string
		want  Bucket
	}{
		{"ARTICLEJOURNAL", "2", BucketArtikkelNiva2},
		{"ARTICLEJOURNAL", "1", BucketArtikkelNiva1},
		{"ARTICLE", "2", BucketArtikkelNiva2},
		{"MONOGRAPHACA", "2", BucketMonografiNiva2},
		{"TEXTBOOK", "1", BucketMonografiNiva1},
		{"ANTHOLOGYACA", "2", BucketAntologiNiva2},
		{"BOOKREVIEW", "2", BucketBookReview},
	}

	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.level, func(t *testing.T) {
			outcome := Classify(record(tt.code, "", tt.level))
			if outcome.Kind != KindPublication {
				t.Fatalf("Kind = %v, want KindPublication", outcome.Kind)
			}
			if outcome.Bucket != tt.want {
				t.Errorf("Bucket = %q, want %q", outcome.Bucket, tt.want)
			}
		})
	}
}

func TestClassify_MissingLevelDefaultsToNiva1(t *testing.T) {
	tests := []struct {
		code string
		want Bucket
	}{
		{"ARTICLEJOURNAL", BucketArtikkelNiva1},
		{"MONOGRAPHACA", BucketMonografiNiva1},
		{"ANTHOLOGYACA", BucketAntologiNiva1},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			outcome := Classify(record(tt.code, "", ""))
			if outcome.Bucket != tt.want {
				t.Errorf("Bucket = %q, want %q (missing level must default to niva1)", outcome.Bucket, tt.want)
			}
		})
	}
}

func TestClassify_LabelFallback(t *testing.T) {
	tests := []struct {
		label string
		level string
		want  Bucket
	}{
		{"Monograph", "2", BucketMonografiNiva2},
		{"Vitenskapelig monografi", "1", BucketMonografiNiva1},
		{"Anthology", "1", BucketAntologiNiva1},
		{"Book review", "1", BucketBookReview},
		{"Bokanmeldelse", "2", BucketBookReview},
		{"Academic article", "2", BucketArtikkelNiva2},
		{"Vitenskapelig artikkel", "1", BucketArtikkelNiva1},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			outcome := Classify(record("", tt.label, tt.level))
			if outcome.Kind != KindPublication {
				t.Fatalf("Kind = %v, want KindPublication", outcome.Kind)
			}
			if outcome.Bucket != tt.want {
				t.Errorf("Bucket = %q, want %q", outcome.Bucket, tt.want)
			}
		})
	}
}

func TestClassify_BookReviewBeatsBookLabel(t *testing.T) {
	// "book review" contains "book"; the review rule must win.
	outcome := Classify(record("", "Book review", "2"))
	if outcome.Bucket != BucketBookReview {
		t.Errorf("Bucket = %q, want %q", outcome.Bucket, BucketBookReview)
	}
}

func TestClassify_UnknownCodeRoutesToCatchAll(t *testing.T) {
	outcome := Classify(record("DRTHESIS", "Doctoral dissertation", ""))
	if outcome.Kind != KindPublication {
		t.Fatalf("Kind = %v, want KindPublication", outcome.Kind)
	}
	if outcome.Bucket != BucketAnnet {
		t.Errorf("Bucket = %q, want %q", outcome.Bucket, BucketAnnet)
	}
}

func TestClassify_EveryOutcomeInClosedSet(t *testing.T) {
	known := make(map[Bucket]bool, len(Buckets))
	for _, b := range Buckets {
		known[b] = true
	}

	codes := []string{
		"ARTICLE", "ARTICLEJOURNAL", "ACADEMICREVIEW", "ARTICLEPOPULAR",
		"MONOGRAPHACA", "TEXTBOOK", "POPULARBOOK", "ANTHOLOGYACA", "BOOKREVIEW",
		"REPORT", "DRTHESIS", "MASTERTHESIS", "CHAPTERACADEMIC", "", "BOGUS",
	}
	for _, code := range codes {
		outcome := Classify(record(code, "", ""))
		if outcome.Kind != KindPublication {
			t.Errorf("Classify(%q).Kind = %v, want KindPublication", code, outcome.Kind)
			continue
		}
		if !known[outcome.Bucket] {
			t.Errorf("Classify(%q) = %q, not in the closed bucket set", code, outcome.Bucket)
		}
	}
}

func TestClassify_DisseminationCodes(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"ACADEMICLECTURE", FormidlingFaglig},
		{"LECTURE", FormidlingFaglig},
		{"POSTER", FormidlingFaglig},
		{"OTHERPRES", FormidlingFaglig},
		{"MEDIAINTERVIEW", FormidlingMedia},
		{"PROGRAMPARTICIP", FormidlingMedia},
		{"ARTICLEFEATURE", FormidlingKronikker},
		{"READEROPINION", FormidlingKronikker},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			outcome := Classify(record(tt.code, "", ""))
			if outcome.Kind != KindDissemination {
				t.Fatalf("Kind = %v, want KindDissemination", outcome.Kind)
			}
			if outcome.ManualKey != tt.want {
				t.Errorf("ManualKey = %q, want %q", outcome.ManualKey, tt.want)
			}
		})
	}
}

func TestClassify_DisseminationLabelFallback(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Interview", FormidlingMedia},
		{"Popular scientific lecture", FormidlingFaglig},
		{"Poster presentation", FormidlingFaglig},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			outcome := Classify(record("", tt.label, ""))
			if outcome.Kind != KindDissemination {
				t.Fatalf("Kind = %v, want KindDissemination", outcome.Kind)
			}
			if outcome.ManualKey != tt.want {
				t.Errorf("ManualKey = %q, want %q", outcome.ManualKey, tt.want)
			}
		})
	}
}

func TestClassify_MissingTitleIsUnclassifiable(t *testing.T) {
	r := &publication.Result{
		Category: publication.Category{Code: "ARTICLEJOURNAL"},
	}
	outcome := Classify(r)
	if outcome.Kind != KindUnclassifiable {
		t.Errorf("Kind = %v, want KindUnclassifiable", outcome.Kind)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bokanmeldelse", "bokanmeldelse"},
		{"  Academic Article  ", "academic article"},
		{"Kronikk på nynorsk", "kronikk pa nynorsk"},
		{"Médiainterview", "mediainterview"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
