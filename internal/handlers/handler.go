// Package handlers serves the local web form that turns streaming-history
// uploads into an albums.json download.
package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/albumdays/internal/logger"
	"github.com/cesargomez89/albumdays/internal/musicbrainz"
	"github.com/cesargomez89/albumdays/web"
)

type Handler struct {
	Lookup musicbrainz.Lookup
	Log    *logger.Logger

	templates *template.Template
}

func NewHandler(lookup musicbrainz.Lookup, log *logger.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		Lookup:    lookup,
		Log:       log,
		templates: tmpl,
	}, nil
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.IndexPage)
	r.Post("/", h.GenerateAlbums)
}

func (h *Handler) renderForm(w http.ResponseWriter, data formData) {
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
