// Package web serves the report-generation form.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/oyvindaas/aarsrapport/internal/cristin"
	"github.com/oyvindaas/aarsrapport/internal/docx"
	"github.com/oyvindaas/aarsrapport/internal/publication"
	"github.com/oyvindaas/aarsrapport/internal/report"
)

// Fetcher is the slice of the Cristin client the handler needs. Tests provide
// a stub.
type Fetcher interface {
	FetchResults(ctx context.Context, personID string) ([]publication.Result, error)
	FetchPerson(ctx context.Context, personID string) (*publication.Person, error)
}

// Handler serves the form and runs the report pipeline on submission.
type Handler struct {
	fetcher      Fetcher
	templatePath string
}

// NewHandler creates a web handler bound to a fetcher and a template file.
func NewHandler(fetcher Fetcher, templatePath string) *Handler {
	return &Handler{fetcher: fetcher, templatePath: templatePath}
}

// Router builds the chi router with the form and generate endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", h.handleForm)
	r.Post("/generate", h.handleGenerate)
	return r
}

// requestLogger logs one line per request via logrus.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// handleForm renders the entry form.
func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	years := []int{year, year - 1, year - 2, year - 3, year - 4, year - 5}

	data := formData{
		Years:        years,
		ManualFields: report.ManualFieldKeys,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, data); err != nil {
		log.WithError(err).Error("rendering form")
	}
}

// handleGenerate runs the full pipeline and streams the filled document back.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	personID := r.PostFormValue("person_id")
	if err := cristin.ValidatePersonID(personID); err != nil {
		http.Error(w, "person ID must be numeric", http.StatusBadRequest)
		return
	}

	year, err := strconv.Atoi(r.PostFormValue("year"))
	if err != nil {
		http.Error(w, "invalid report year", http.StatusBadRequest)
		return
	}

	manual := make(map[string]string)
	for _, key := range report.ManualFieldKeys {
		if v := r.PostFormValue(key); v != "" {
			manual[key] = v
		}
	}

	ctx := r.Context()
	results, err := h.fetcher.FetchResults(ctx, personID)
	if err != nil {
		log.WithError(err).WithField("person", personID).Error("fetching results")
		status := http.StatusBadGateway
		if cristin.IsNotFound(err) {
			status = http.StatusNotFound
		}
		http.Error(w, fmt.Sprintf("fetching publications: %v", err), status)
		return
	}

	info := report.PersonInfo{Name: publication.UnknownPersonName}
	if person, err := h.fetcher.FetchPerson(ctx, personID); err != nil {
		// Header fields degrade; the report still renders.
		log.WithError(err).WithField("person", personID).Warn("fetching person details")
	} else {
		info.Name = person.DisplayName()
		info.Institution, info.InstitutionSecondary = person.AffiliationNames()
	}

	rep := report.Build(results, year)
	context := rep.Context(info, manual)

	outDir, err := os.MkdirTemp("", "aarsrapport")
	if err != nil {
		http.Error(w, "preparing output", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(outDir)

	filename := docx.OutputFilename(info.Name, personID, year)
	outPath := filepath.Join(outDir, filename)
	if err := docx.Render(h.templatePath, outPath, context); err != nil {
		log.WithError(err).Error("rendering report")
		http.Error(w, fmt.Sprintf("rendering report: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, outPath)
}

// ListenAndServe starts the form server on addr.
func ListenAndServe(addr string, h *Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.WithField("addr", addr).Info("serving report form")
	return srv.ListenAndServe()
}
