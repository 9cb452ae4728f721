// Package docx fills named placeholders in Word document templates.
//
// A .docx file is a zip archive; placeholders of the form {{ name }} live in
// the document XML. Substitution rewrites the XML entries and copies every
// other archive entry through untouched. Placeholders that Word has split
// across formatting runs are not matched; templates should be authored with
// each placeholder typed in one go, which is also what the original template
// requires.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// TemplateName is the expected template file name in the templates directory.
const TemplateName = "Aarsrapport-plan_MAL.docx"

// placeholderPattern matches {{ name }} with optional inner whitespace.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// documentEntries are the archive members that may contain placeholders.
var documentEntries = regexp.MustCompile(`^word/(document|header\d*|footer\d*)\.xml$`)

// ResolveTemplate returns the template path inside dir, or an error if the
// expected file is missing.
func ResolveTemplate(dir string) (string, error) {
	path := filepath.Join(dir, TemplateName)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no template found in %s (expected %s): %w", dir, TemplateName, err)
	}
	return path, nil
}

// ExtractPlaceholders returns the set of placeholder names used in a template.
func ExtractPlaceholders(templatePath string) (map[string]bool, error) {
	r, err := zip.OpenReader(templatePath)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	defer r.Close()

	found := make(map[string]bool)
	for _, f := range r.File {
		if !documentEntries.MatchString(f.Name) {
			continue
		}
		xml, err := readZipEntry(f)
		if err != nil {
			return nil, err
		}
		for _, m := range placeholderPattern.FindAllStringSubmatch(xml, -1) {
			found[m[1]] = true
		}
	}
	return found, nil
}

// MissingPlaceholders returns required placeholder names absent from the
// template, sorted by the order of required.
func MissingPlaceholders(templatePath string, required []string) ([]string, error) {
	present, err := ExtractPlaceholders(templatePath)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, key := range required {
		if !present[key] {
			missing = append(missing, key)
		}
	}
	return missing, nil
}

// Render fills the template's placeholders from ctx and writes the result to
// outputPath. Placeholders without a ctx entry are replaced with an empty
// string, so the rendered document never leaks template syntax.
func Render(templatePath, outputPath string, ctx map[string]string) error {
	r, err := zip.OpenReader(templatePath)
	if err != nil {
		return fmt.Errorf("opening template: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	w := zip.NewWriter(out)
	for _, f := range r.File {
		if err := copyEntry(w, f, ctx); err != nil {
			w.Close()
			return err
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing document: %w", err)
	}
	return nil
}

// copyEntry writes one archive member, substituting placeholders in document
// XML entries.
func copyEntry(w *zip.Writer, f *zip.File, ctx map[string]string) error {
	header := f.FileHeader
	dst, err := w.CreateHeader(&header)
	if err != nil {
		return fmt.Errorf("writing %s: %w", f.Name, err)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.Name, err)
	}
	defer src.Close()

	if !documentEntries.MatchString(f.Name) {
		if _, err := io.Copy(dst, src); err != nil {
			return fmt.Errorf("copying %s: %w", f.Name, err)
		}
		return nil
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.Name, err)
	}

	substituted := substitute(string(data), ctx)
	if _, err := io.WriteString(dst, substituted); err != nil {
		return fmt.Errorf("writing %s: %w", f.Name, err)
	}
	return nil
}

// substitute replaces every placeholder with its XML-safe context value.
func substitute(xml string, ctx map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(xml, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		return xmlValue(ctx[name])
	})
}

// xmlValue escapes a context value for insertion into document XML. Newlines
// become explicit line breaks; the placeholder must sit inside a text run for
// the break markup to be valid, which holds for templates authored in Word.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlValue(s string) string {
	escaped := xmlEscaper.Replace(s)
	return strings.ReplaceAll(escaped, "\n", `</w:t><w:br/><w:t xml:space="preserve">`)
}

// readZipEntry reads one archive member fully.
func readZipEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.Name, err)
	}
	return string(data), nil
}
