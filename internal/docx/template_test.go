package docx

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestTemplate builds a minimal .docx archive in dir and returns its path.
func writeTestTemplate(t *testing.T, dir, documentXML string) string {
	t.Helper()

	path := filepath.Join(dir, TemplateName)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	entries := map[string]string{
		"[Content_Types].xml":   `<?xml version="1.0"?><Types/>`,
		"word/document.xml":     documentXML,
		"word/header1.xml":      `<hdr><w:t>{{ person_name }}</w:t></hdr>`,
		"word/media/image1.png": "not xml at all",
	}
	for name, body := range entries {
		dst, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(dst, body); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// readEntry returns one archive member of a rendered document.
func readEntry(t *testing.T, path, name string) string {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}
	t.Fatalf("entry %s not found in %s", name, path)
	return ""
}

func TestResolveTemplate(t *testing.T) {
	dir := t.TempDir()
	if _, err := ResolveTemplate(dir); err == nil {
		t.Error("expected error for empty template directory")
	}

	writeTestTemplate(t, dir, `<doc/>`)
	path, err := ResolveTemplate(dir)
	if err != nil {
		t.Fatalf("ResolveTemplate() error = %v", err)
	}
	if filepath.Base(path) != TemplateName {
		t.Errorf("resolved %q, want base %q", path, TemplateName)
	}
}

func TestExtractPlaceholders(t *testing.T) {
	dir := t.TempDir()
	doc := `<doc><w:t>{{ report_year }}</w:t><w:t>{{publisert_annet}}</w:t><w:t>{{ report_year }}</w:t></doc>`
	path := writeTestTemplate(t, dir, doc)

	found, err := ExtractPlaceholders(path)
	if err != nil {
		t.Fatalf("ExtractPlaceholders() error = %v", err)
	}

	for _, want := range []string{"report_year", "publisert_annet", "person_name"} {
		if !found[want] {
			t.Errorf("placeholder %q not found", want)
		}
	}
	if len(found) != 3 {
		t.Errorf("found %d placeholders, want 3: %v", len(found), found)
	}
}

func TestMissingPlaceholders(t *testing.T) {
	dir := t.TempDir()
	path := writeTestTemplate(t, dir, `<doc><w:t>{{ report_year }}</w:t></doc>`)

	missing, err := MissingPlaceholders(path, []string{"report_year", "person_name", "undervisning"})
	if err != nil {
		t.Fatalf("MissingPlaceholders() error = %v", err)
	}
	if len(missing) != 1 || missing[0] != "undervisning" {
		t.Errorf("missing = %v, want [undervisning]", missing)
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	doc := `<doc><w:t xml:space="preserve">{{ report_year }}: {{ publisert_annet }}</w:t></doc>`
	path := writeTestTemplate(t, dir, doc)
	out := filepath.Join(dir, "out", "rendered.docx")

	ctx := map[string]string{
		"report_year":     "2024",
		"publisert_annet": "Berg, A. (2024). First.\n\nBerg, A. (2024). Second.",
		"person_name":     "Jane & Co <stuff>",
	}
	if err := Render(path, out, ctx); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	rendered := readEntry(t, out, "word/document.xml")
	if strings.Contains(rendered, "{{") {
		t.Errorf("rendered document still contains placeholder syntax: %s", rendered)
	}
	if !strings.Contains(rendered, "2024: Berg, A. (2024). First.") {
		t.Errorf("substitution missing from document: %s", rendered)
	}
	if !strings.Contains(rendered, `<w:br/>`) {
		t.Errorf("newlines should become line breaks: %s", rendered)
	}

	header := readEntry(t, out, "word/header1.xml")
	if !strings.Contains(header, "Jane &amp; Co &lt;stuff&gt;") {
		t.Errorf("header value not XML-escaped: %s", header)
	}

	if got := readEntry(t, out, "word/media/image1.png"); got != "not xml at all" {
		t.Errorf("non-document entry altered: %q", got)
	}
}

func TestRender_UnknownPlaceholderBecomesEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeTestTemplate(t, dir, `<doc><w:t>[{{ never_provided }}]</w:t></doc>`)
	out := filepath.Join(dir, "rendered.docx")

	if err := Render(path, out, map[string]string{"person_name": "x"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := readEntry(t, out, "word/document.xml"); !strings.Contains(got, "[]") {
		t.Errorf("unprovided placeholder should render empty, got %s", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"plain", "Jane Doe", "Jane Doe"},
		{"forbidden chars", `Jane/Doe: "x"`, "JaneDoe x"},
		{"collapsed spaces", "Jane   Doe", "Jane Doe"},
		{"trailing dot", "Jane Doe.", "Jane Doe"},
		{"empty", "   ", "fallback"},
		{"only forbidden", `///\\\`, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.value, "fallback"); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestOutputFilename(t *testing.T) {
	if got := OutputFilename("Jane Doe", "12345", 2024); got != "Aarsrapport_2024_Jane Doe.docx" {
		t.Errorf("OutputFilename() = %q", got)
	}
	if got := OutputFilename("", "12345", 2024); got != "Aarsrapport_2024_12345.docx" {
		t.Errorf("fallback to person ID, got %q", got)
	}
}
