// Package classify routes Cristin publication results to annual-report buckets.
package classify

import (
	log "github.com/sirupsen/logrus"

	"github.com/oyvindaas/aarsrapport/internal/publication"
)

// Bucket is a publication slot in the report template.
type Bucket string

// The fixed set of publication buckets, in template order.
const (
	BucketMonografiNiva2 Bucket = "publisert_monografi_niva2"
	BucketMonografiNiva1 Bucket = "publisert_monografi_niva1"
	BucketArtikkelNiva2  Bucket = "publisert_artikkel_niva2"
	BucketArtikkelNiva1  Bucket = "publisert_artikkel_niva1"
	BucketAntologiNiva2  Bucket = "publisert_antologi_niva2"
	BucketAntologiNiva1  Bucket = "publisert_antologi_niva1"
	BucketBookReview     Bucket = "publisert_book_review"
	BucketAnnet          Bucket = "publisert_annet"
)

// Buckets lists every publication bucket in template order.
var Buckets = []Bucket{
	BucketMonografiNiva2,
	BucketMonografiNiva1,
	BucketArtikkelNiva2,
	BucketArtikkelNiva1,
	BucketAntologiNiva2,
	BucketAntologiNiva1,
	BucketBookReview,
	BucketAnnet,
}

// Dissemination keys: manual-field slots that auto-populate from dissemination
// categories (lectures, media appearances, opinion pieces).
const (
	FormidlingFaglig    = "formidling_faglig"
	FormidlingMedia     = "formidling_media"
	FormidlingKronikker = "formidling_kronikker"
)

// genre groups category codes that share a bucket family.
type genre int

const (
	genreArticle genre = iota
	genreMonograph
	genreAnthology
	genreBookReview
	genreOther
)

// categoryGenres maps Cristin category codes to their bucket family.
// Codes absent from this table and from disseminationKeys fall back to
// label matching, then to the catch-all bucket.
var categoryGenres = map[string]genre{
	"ARTICLE":        genreArticle,
	"ARTICLEJOURNAL": genreArticle,
	"ACADEMICREVIEW": genreArticle,
	"ARTICLEPOPULAR": genreArticle,
	"MONOGRAPHACA":   genreMonograph,
	"TEXTBOOK":       genreMonograph,
	"POPULARBOOK":    genreMonograph,
	"ANTHOLOGYACA":   genreAnthology,
	"BOOKREVIEW":     genreBookReview,
}

// disseminationKeys maps non-publication category codes to the manual field
// they auto-populate.
var disseminationKeys = map[string]string{
	"ACADEMICLECTURE": FormidlingFaglig,
	"LECTURE":         FormidlingFaglig,
	"POSTER":          FormidlingFaglig,
	"OTHERPRES":       FormidlingFaglig,
	"MEDIAINTERVIEW":  FormidlingMedia,
	"PROGRAMPARTICIP": FormidlingMedia,
	"ARTICLEFEATURE":  FormidlingKronikker,
	"READEROPINION":   FormidlingKronikker,
}

// Kind says which report section a result belongs to.
type Kind int

const (
	// KindPublication routes to one of the publication buckets.
	KindPublication Kind = iota
	// KindDissemination routes to a formidling manual field.
	KindDissemination
	// KindUnclassifiable marks records missing required identifying fields.
	KindUnclassifiable
)

// Outcome is the classification of a single result. Exactly one of Bucket or
// ManualKey is set, matching Kind.
type Outcome struct {
	Kind      Kind
	Bucket    Bucket
	ManualKey string
}

// Classify assigns a result to exactly one destination. It is total: any
// record shape yields an outcome, never an error. Records without a title are
// unclassifiable; dissemination categories route to their formidling field;
// everything else lands in a publication bucket, with unknown categories
// going to the catch-all.
func Classify(r *publication.Result) Outcome {
	if r.Title() == "" {
		return Outcome{Kind: KindUnclassifiable}
	}

	code := r.Category.Code
	label := Normalize(r.Category.Name.First())

	if key, ok := disseminationKeys[code]; ok {
		return Outcome{Kind: KindDissemination, ManualKey: key}
	}
	if key, ok := disseminationFromLabel(label); ok {
		return Outcome{Kind: KindDissemination, ManualKey: key}
	}

	if g, ok := categoryGenres[code]; ok {
		return Outcome{Kind: KindPublication, Bucket: bucketFor(g, r)}
	}
	if g, ok := genreFromLabel(label); ok {
		return Outcome{Kind: KindPublication, Bucket: bucketFor(g, r)}
	}

	log.WithFields(log.Fields{"code": code, "label": label}).
		Info("unknown category, routing to catch-all bucket")
	return Outcome{Kind: KindPublication, Bucket: BucketAnnet}
}

// disseminationFromLabel matches dissemination activity by display label, for
// records whose code is missing or outside the known vocabulary.
func disseminationFromLabel(label string) (string, bool) {
	switch {
	case contains(label, "interview", "intervju"):
		return FormidlingMedia, true
	case contains(label, "poster", "presentation", "lecture", "foredrag"):
		return FormidlingFaglig, true
	}
	return "", false
}

// genreFromLabel matches publication genres by display label. Order matters:
// "book review" must win over the bare "book" check.
func genreFromLabel(label string) (genre, bool) {
	switch {
	case contains(label, "book review", "bokanmeldelse"):
		return genreBookReview, true
	case contains(label, "monograph", "monografi", "book"):
		return genreMonograph, true
	case contains(label, "anthology", "antologi", "edited"):
		return genreAnthology, true
	case contains(label, "article", "artikkel"):
		return genreArticle, true
	}
	return genreOther, false
}

// bucketFor resolves a genre and the record's venue level to a bucket.
// A missing or unparseable level defaults to niva1.
func bucketFor(g genre, r *publication.Result) Bucket {
	niva2 := r.VenueLevel() == "2"

	switch g {
	case genreArticle:
		if niva2 {
			return BucketArtikkelNiva2
		}
		return BucketArtikkelNiva1
	case genreMonograph:
		if niva2 {
			return BucketMonografiNiva2
		}
		return BucketMonografiNiva1
	case genreAnthology:
		if niva2 {
			return BucketAntologiNiva2
		}
		return BucketAntologiNiva1
	case genreBookReview:
		return BucketBookReview
	}
	return BucketAnnet
}
