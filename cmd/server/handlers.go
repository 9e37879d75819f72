package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/edupack/scormconv"
)

type handler struct {
	converter scormconv.Converter
	maxUpload int64
}

func newHandler(c scormconv.Converter, maxUpload int64) *handler {
	return &handler{converter: c, maxUpload: maxUpload}
}

// POST /convert
// Accepts a multipart file upload and responds with the SCORM package as a
// zip download.
func (h *handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read upload")
		slog.Error("reading upload", "error", err)
		return
	}

	// Sanitise filename to prevent path traversal.
	safeName := filepath.Base(header.Filename)

	result, err := h.converter.Convert(ctx, data, safeName)
	if err != nil {
		status, msg := conversionStatus(err)
		writeError(w, status, msg)
		slog.Error("conversion failed", "filename", safeName, "error", err)
		return
	}

	slog.Info("conversion succeeded",
		"filename", safeName,
		"images", len(result.Images),
		"archive_bytes", len(result.Archive),
	)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="scorm_package.zip"`)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(result.Archive)))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Archive)
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// conversionStatus maps converter errors to HTTP responses.
func conversionStatus(err error) (int, string) {
	switch {
	case errors.Is(err, scormconv.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, "unsupported document format"
	case errors.Is(err, scormconv.ErrMissingSource):
		return http.StatusUnprocessableEntity, "archive contains no .tex file"
	case errors.Is(err, scormconv.ErrCorruptDocument):
		return http.StatusUnprocessableEntity, "document cannot be opened"
	default:
		return http.StatusInternalServerError, "conversion failed"
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
