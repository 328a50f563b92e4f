package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/guimoneda/gradient-bio/internal/profile"
	"go.uber.org/zap"
)

// handleExport downloads the current document.
func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	data, err := s.store.Export()
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", profile.ExportFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("failed to write export", zap.Error(err))
	}
}

// handleGetProfile returns the current document as JSON.
func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Profile())
}

// handlePutProfile replaces the document with the request body.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	defer func() { _ = r.Body.Close() }()

	data, err := io.ReadAll(r.Body)
	if err == nil {
		err = s.store.Import(r.Context(), data)
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "imported",
		"revision": s.store.Revision(),
	})
}
