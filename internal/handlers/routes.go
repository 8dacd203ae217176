package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cesargomez89/albumdays/internal/app"
	"github.com/cesargomez89/albumdays/internal/constants"
	"github.com/cesargomez89/albumdays/internal/exporter"
	"github.com/cesargomez89/albumdays/internal/history"
)

// formData feeds the index template.
type formData struct {
	Error             string
	MinMinutes        string
	Pause             string
	FetchReleaseDates bool
}

func defaultFormData() formData {
	return formData{
		MinMinutes:        strconv.FormatFloat(constants.DefaultMinMinutes, 'f', -1, 64),
		Pause:             strconv.FormatFloat(constants.DefaultLookupPause.Seconds(), 'f', -1, 64),
		FetchReleaseDates: true,
	}
}

func (h *Handler) IndexPage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, defaultFormData())
}

// GenerateAlbums runs the upload through the aggregation pipeline and streams
// the resulting albums.json back as an attachment. Validation failures
// re-render the form with an error.
func (h *Handler) GenerateAlbums(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		h.renderFormError(w, defaultFormData(), "Could not read the uploaded form.")
		return
	}

	data := formData{
		MinMinutes:        formValue(r, "min_minutes", defaultFormData().MinMinutes),
		Pause:             formValue(r, "pause", defaultFormData().Pause),
		FetchReleaseDates: r.FormValue("fetch_release_dates") == "on",
	}

	minMinutes, err := parseNonNegative(data.MinMinutes)
	if err != nil {
		h.renderFormError(w, data, "Minimum minutes must be a non-negative number.")
		return
	}
	pause, err := parseNonNegative(data.Pause)
	if err != nil {
		h.renderFormError(w, data, "Pause must be a non-negative number.")
		return
	}

	uploads := r.MultipartForm.File["archives"]
	if len(uploads) == 0 {
		h.renderFormError(w, data, "Upload at least one archive or JSON file.")
		return
	}

	tempDir, err := os.MkdirTemp("", "albumdays-upload-")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tempDir)

	paths, err := saveUploads(tempDir, uploads)
	if err != nil {
		h.renderFormError(w, data, "Could not store the uploaded files.")
		return
	}

	albums, stats, err := history.Aggregate(paths, h.Log)
	if err != nil {
		h.renderFormError(w, data, fmt.Sprintf("Failed to process the data: %v", err))
		return
	}
	filtered := history.FilterByMinutes(albums, minMinutes)

	if data.FetchReleaseDates && h.Lookup != nil {
		enricher := app.NewReleaseEnricher(h.Lookup, time.Duration(pause*float64(time.Second)), h.Log)
		filtered = enricher.Enrich(r.Context(), filtered)
	}

	payload, err := exporter.Serialize(filtered)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Log.Info("Generated album export",
		"albums", len(filtered), "records", stats.Records, "skipped", stats.Skipped)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+constants.DefaultOutputName+`"`)
	w.Write(payload)
}

func (h *Handler) renderFormError(w http.ResponseWriter, data formData, msg string) {
	data.Error = msg
	w.WriteHeader(http.StatusBadRequest)
	h.renderForm(w, data)
}

// saveUploads writes each uploaded file under dir with a uuid-prefixed name,
// keeping only the extension of the original filename.
func saveUploads(dir string, uploads []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		ext := strings.ToLower(filepath.Ext(upload.Filename))
		dst := filepath.Join(dir, uuid.NewString()+ext)

		src, err := upload.Open()
		if err != nil {
			return nil, err
		}
		out, err := os.Create(dst)
		if err != nil {
			src.Close()
			return nil, err
		}
		_, err = io.Copy(out, src)
		src.Close()
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return nil, err
		}
		paths = append(paths, dst)
	}
	return paths, nil
}

func formValue(r *http.Request, key, fallback string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return fallback
}

func parseNonNegative(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("negative value %v", f)
	}
	return f, nil
}
