// Package publication defines the domain types for Cristin publication results.
package publication

// Result represents a single publication record from the Cristin results API.
// Fields the classifier and formatter do not need are omitted; unknown JSON
// fields are ignored on decode.
type Result struct {
	CristinResultID FlexString   `json:"cristin_result_id"`
	Category        Category     `json:"category"`
	Titles          LangMap      `json:"title"`
	OriginalLang    string       `json:"original_language"`
	YearPublished   FlexString   `json:"year_published"`
	Contributors    Contributors `json:"contributors"`

	// Venue containers. A record typically fills exactly one of these.
	Journal Venue `json:"journal"`
	Event   Event `json:"event"`
	Channel Venue `json:"channel"`

	// Alternate venue spellings seen across record generations.
	PublicationChannel Venue `json:"publication_channel"`
	PublicationContext Venue `json:"publication_context"`

	Volume FlexString `json:"volume"`
	Issue  FlexString `json:"issue"`
	Pages  Pages      `json:"pages"`
	Links  []Link     `json:"links"`

	// Level candidates occasionally present at the top level.
	Level            FlexString `json:"level"`
	PublicationLevel FlexString `json:"publication_level"`
	ScientificLevel  FlexString `json:"scientific_level"`
}

// Category is the controlled-vocabulary classification attached to a result.
type Category struct {
	Code string  `json:"code"`
	Name LangMap `json:"name"`
}

// Contributors holds the (possibly truncated) author list of a result.
type Contributors struct {
	Preview []Contributor `json:"preview"`
	Count   int           `json:"count"`
}

// Contributor is a single author entry.
type Contributor struct {
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Role      string `json:"role_code,omitempty"`
}

// Venue is a journal, publisher channel, or similar publication container.
type Venue struct {
	Name     FlexString `json:"name"`
	Title    FlexString `json:"title"`
	Level    FlexString `json:"level"`
	NVILevel FlexString `json:"nvi_level"`
}

// DisplayName returns the venue name, whichever field carries it.
func (v Venue) DisplayName() string {
	if v.Name != "" {
		return v.Name.String()
	}
	return v.Title.String()
}

// Event is a conference, lecture, or similar dissemination venue.
type Event struct {
	Name     FlexString `json:"name"`
	Location FlexString `json:"location"`
}

// Pages is a page range. Both endpoints are optional.
type Pages struct {
	From FlexString `json:"from"`
	To   FlexString `json:"to"`
}

// Link is an external URL attached to a result.
type Link struct {
	URLType string `json:"url_type"`
	URL     string `json:"url"`
}

// Title returns the first non-empty title, or "" if the record has none.
func (r *Result) Title() string {
	return r.Titles.First()
}

// Year returns the publication year, or 0 if absent or unparseable.
func (r *Result) Year() int {
	return r.YearPublished.Int()
}

// DOI returns the first DOI link URL, or "" if the record has none.
func (r *Result) DOI() string {
	for _, link := range r.Links {
		if link.URLType == "DOI" && link.URL != "" {
			return link.URL
		}
	}
	return ""
}

// VenueName returns the best available publication container name:
// journal, then event, then channel.
func (r *Result) VenueName() string {
	if name := r.Journal.DisplayName(); name != "" {
		return name
	}
	if name := r.Event.Name.String(); name != "" {
		return name
	}
	if name := r.Channel.DisplayName(); name != "" {
		return name
	}
	if name := r.PublicationChannel.DisplayName(); name != "" {
		return name
	}
	return ""
}

// VenueLevel returns the publication level ("1" or "2") from whichever field
// carries it, checking the known candidates in a fixed order. Returns "" when
// no candidate holds a valid level.
func (r *Result) VenueLevel() string {
	candidates := []FlexString{
		r.Level,
		r.PublicationLevel,
		r.ScientificLevel,
		r.PublicationContext.Level,
		r.PublicationChannel.Level,
		r.Channel.Level,
		r.Journal.Level,
		r.Channel.NVILevel,
		r.Journal.NVILevel,
	}
	for _, c := range candidates {
		if c == "1" || c == "2" {
			return c.String()
		}
	}
	return ""
}
