package publication

import "strings"

// UnknownPersonName is used when a person payload carries no usable name.
const UnknownPersonName = "Ukjent navn"

// Person represents the subset of a Cristin person payload the report needs.
type Person struct {
	CristinPersonID FlexString    `json:"cristin_person_id"`
	FirstName       string        `json:"first_name"`
	Surname         string        `json:"surname"`
	Affiliations    []Affiliation `json:"affiliations"`
}

// Affiliation is a single employment entry on a person payload.
type Affiliation struct {
	Institution Institution `json:"institution"`
	Unit        Unit        `json:"unit"`
}

// Institution identifies the employing institution.
type Institution struct {
	Name      LangMap    `json:"name"`
	NameShort FlexString `json:"name_short"`
}

// Unit identifies the organizational unit within an institution.
type Unit struct {
	Name LangMap `json:"unit_name"`
}

// DisplayName returns "First Surname", falling back to whichever part is
// present, or UnknownPersonName when both are empty.
func (p *Person) DisplayName() string {
	first := strings.TrimSpace(p.FirstName)
	last := strings.TrimSpace(p.Surname)

	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	}
	return UnknownPersonName
}

// AffiliationNames returns up to two distinct institution names: the primary
// affiliation and, when present, a secondary one. Missing names come back as
// empty strings.
func (p *Person) AffiliationNames() (primary, secondary string) {
	var names []string
	for _, aff := range p.Affiliations {
		name := aff.Institution.Name.First()
		if name == "" {
			name = aff.Institution.NameShort.String()
		}
		if name == "" {
			name = aff.Unit.Name.First()
		}
		if name == "" {
			continue
		}

		duplicate := false
		for _, seen := range names {
			if seen == name {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		names = append(names, name)
		if len(names) == 2 {
			break
		}
	}

	if len(names) > 0 {
		primary = names[0]
	}
	if len(names) > 1 {
		secondary = names[1]
	}
	return primary, secondary
}
