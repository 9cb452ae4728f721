package report

import "github.com/oyvindaas/aarsrapport/internal/classify"

// Header placeholder keys filled from the person lookup and report year.
const (
	KeyReportYear           = "report_year"
	KeyPersonName           = "person_name"
	KeyInstitution          = "institution_name"
	KeyInstitutionSecondary = "institution_name_secondary"
)

// HeaderKeys lists the non-publication header placeholders.
var HeaderKeys = []string{
	KeyReportYear,
	KeyPersonName,
	KeyInstitution,
	KeyInstitutionSecondary,
}

// ManualFieldKeys lists every free-text placeholder in the template. The
// formidling entries also receive auto-populated text from dissemination
// categories; the rest are caller-supplied only.
var ManualFieldKeys = []string{
	"forskningsarbeid_internasjonal_deltagelse",
	"forskningsarbeid_internasjonal_ledelse",
	"forskningsarbeid_nasjonal_deltagelse",
	"forskningsarbeid_nasjonal_ledelse",
	"forskningsarbeid_innvilget_soknad",
	"forskningsarbeid_utenlandsopphold",
	"forskningsarbeid_innovasjon",
	"forskningsarbeid_nasjonale_nettverk",
	"forskningsarbeid_internasjonale_nettverk",
	classify.FormidlingFaglig,
	"formidling_politisk",
	classify.FormidlingKronikker,
	"formidling_popularvitenskapelig",
	classify.FormidlingMedia,
	"veiledning_phd",
	"opponent_phd",
	"referee_vitenskapelige_artikler",
	"veiledning_masteroppgave",
	"sensur_masteroppgave",
	"professor_vurderinger",
}

// RequiredPlaceholders returns every placeholder key the template contract
// declares: headers, publication buckets, and manual fields.
func RequiredPlaceholders() []string {
	keys := make([]string, 0, len(HeaderKeys)+len(classify.Buckets)+len(ManualFieldKeys))
	keys = append(keys, HeaderKeys...)
	for _, b := range classify.Buckets {
		keys = append(keys, string(b))
	}
	keys = append(keys, ManualFieldKeys...)
	return keys
}

// IsManualFieldKey reports whether key is a declared manual-field placeholder.
func IsManualFieldKey(key string) bool {
	for _, k := range ManualFieldKeys {
		if k == key {
			return true
		}
	}
	return false
}
