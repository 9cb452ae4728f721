package publication

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// titleLanguagePriority orders language codes when picking a display value
// from a multilingual field. Cristin payloads mix English and the Norwegian
// variants; anything else falls back to sorted key order.
var titleLanguagePriority = []string{"en", "nb", "no", "nn"}

// LangMap is a multilingual string field keyed by language code,
// e.g. {"en": "Title", "nb": "Tittel"}. Some records carry the field as a
// plain string instead of a map; both shapes decode.
type LangMap map[string]string

// UnmarshalJSON accepts either a language map or a bare string.
func (m *LangMap) UnmarshalJSON(data []byte) error {
	var asMap map[string]string
	if err := json.Unmarshal(data, &asMap); err == nil {
		*m = asMap
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if asString != "" {
			*m = LangMap{"": asString}
		}
		return nil
	}

	// Unexpected shape (null, number, nested object): treat as absent.
	*m = nil
	return nil
}

// First returns the first non-empty value, preferring English and Norwegian
// before other languages. Remaining keys are visited in sorted order so the
// result is deterministic.
func (m LangMap) First() string {
	for _, lang := range titleLanguagePriority {
		if v := strings.TrimSpace(m[lang]); v != "" {
			return v
		}
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := strings.TrimSpace(m[k]); v != "" {
			return v
		}
	}
	return ""
}

// FlexString is a string field that the API sometimes serves as a JSON
// number (year_published, volume, level all vary by record age).
type FlexString string

// UnmarshalJSON accepts a string, a number, or null.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*f = FlexString(strings.TrimSpace(asString))
		return nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*f = FlexString(asNumber.String())
		return nil
	}

	*f = ""
	return nil
}

// String returns the underlying value.
func (f FlexString) String() string {
	return string(f)
}

// Int returns the value as an integer, or 0 if it is empty or not numeric.
func (f FlexString) Int() int {
	n, err := strconv.Atoi(string(f))
	if err != nil {
		return 0
	}
	return n
}
