package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/guimoneda/gradient-bio/internal/profile"
	"github.com/guimoneda/gradient-bio/internal/rendering"
	"github.com/guimoneda/gradient-bio/internal/types"
	"go.uber.org/zap"
)

const (
	// maxImportBytes caps the import upload.
	maxImportBytes = 1 << 20
	themeCookie    = "bio_theme"
)

// Banner texts selected by the notice and error query parameters after a redirect.
var (
	notices = map[string]string{
		"saved":    "Saved",
		"imported": "Imported JSON success",
		"cleared":  "Cleared",
		"reset":    "Profile restored from defaults",
	}
	errorBanners = map[string]string{
		"persist": "Your change is shown but could not be saved to storage.",
	}
)

// handlePage renders the full page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.renderPage(w, r, http.StatusOK, rendering.View{
		Notice: notices[q.Get("notice")],
		Error:  errorBanners[q.Get("error")],
	})
}

// renderPage fills v with the current document, editor and theme and writes it.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, v rendering.View) {
	v.Profile = s.store.Profile()
	v.Editor = s.store.Editor()
	v.Theme = themeFromRequest(r)

	html, err := rendering.Render(v)
	if err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, html); err != nil {
		s.logger.Debug("failed to write page", zap.Error(err))
	}
}

// redirect sends the browser back to the page, optionally with a banner code.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, param, code string) {
	target := "/"
	if param != "" && code != "" {
		target += "?" + url.Values{param: {code}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// finish completes a mutation request. Out-of-range indices are no-ops and a
// failed snapshot write keeps the change; other errors re-render with a banner.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, err error, notice string) {
	if err == nil {
		s.redirect(w, r, "notice", notice)
		return
	}

	var (
		indexErr   *profile.IndexError
		persistErr *profile.PersistError
	)
	switch {
	case errors.As(err, &indexErr):
		s.logger.Info("ignoring out-of-range entry", zap.Error(err))
		s.redirect(w, r, "", "")
	case errors.As(err, &persistErr):
		s.logger.Warn("mutation applied but not persisted", zap.Error(err))
		s.redirect(w, r, "error", "persist")
	default:
		s.logger.Warn("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		s.renderPage(w, r, HTTPStatus(err), rendering.View{Error: userMessage(err)})
	}
}

func parseCollection(r *http.Request) (types.Collection, error) {
	c, err := types.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		return "", &ErrValidation{Field: "collection", Message: err.Error()}
	}
	return c, nil
}

func parseEntryRef(r *http.Request) (types.Collection, int, error) {
	c, err := parseCollection(r)
	if err != nil {
		return "", 0, err
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return "", 0, &ErrValidation{Field: "index", Message: "must be an integer"}
	}
	return c, index, nil
}

// handleAddProject inserts a placeholder project at the top.
func (s *Server) handleAddProject(w http.ResponseWriter, r *http.Request) {
	s.finish(w, r, s.store.AddProject(r.Context()), "")
}

// handleAddExperience inserts a placeholder experience entry at the top.
func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	s.finish(w, r, s.store.AddExperience(r.Context()), "")
}

// handleClear empties a collection once the user has confirmed.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	c, err := parseCollection(r)
	if err != nil {
		s.finish(w, r, err, "")
		return
	}

	if r.PostFormValue("confirm") != "yes" {
		prompt := "Clear all projects?"
		if c == types.Experience {
			prompt = "Clear experience?"
		}
		s.renderPage(w, r, http.StatusOK, rendering.View{
			Confirm: &rendering.Confirm{Message: prompt, Action: fmt.Sprintf("/%s/clear", c)},
		})
		return
	}

	s.finish(w, r, s.store.ClearCollection(r.Context(), c), "cleared")
}

// handleRemove deletes one entry.
func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	c, index, err := parseEntryRef(r)
	if err != nil {
		s.finish(w, r, err, "")
		return
	}
	s.finish(w, r, s.store.RemoveEntry(r.Context(), c, index), "")
}

// handleEdit opens the inline editor; the page shows it on the next render.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	c, index, err := parseEntryRef(r)
	if err != nil {
		s.finish(w, r, err, "")
		return
	}
	if _, err := s.store.OpenEditor(c, index); err != nil {
		s.finish(w, r, err, "")
		return
	}
	s.redirect(w, r, "", "")
}

func editorToken(r *http.Request) (uuid.UUID, error) {
	token, err := uuid.Parse(r.PostFormValue("token"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "token", Message: "missing or malformed editor token"}
	}
	return token, nil
}

// handleEditorSave applies the editor inputs to its entry.
func (s *Server) handleEditorSave(w http.ResponseWriter, r *http.Request) {
	token, err := editorToken(r)
	if err != nil {
		s.finish(w, r, err, "")
		return
	}

	values := make(map[string]string, len(r.PostForm))
	for name := range r.PostForm {
		if name != "token" {
			values[name] = r.PostForm.Get(name)
		}
	}
	s.finish(w, r, s.store.SaveEditor(r.Context(), token, values), "saved")
}

// handleEditorCancel closes the editor without changes.
func (s *Server) handleEditorCancel(w http.ResponseWriter, r *http.Request) {
	token, err := editorToken(r)
	if err == nil {
		err = s.store.CancelEditor(token)
	}
	if err != nil {
		s.logger.Debug("cancel for an editor that is no longer open", zap.Error(err))
	}
	s.redirect(w, r, "", "")
}

// handleQuickEdit saves the name, headline and summary fields.
func (s *Server) handleQuickEdit(w http.ResponseWriter, r *http.Request) {
	err := s.store.UpdateScalarFields(r.Context(),
		r.PostFormValue("name"),
		r.PostFormValue("headline"),
		r.PostFormValue("summary"),
	)
	s.finish(w, r, err, "saved")
}

// handleImport replaces the document with an uploaded file.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	data, err := readUpload(r)
	if err == nil {
		err = s.store.Import(r.Context(), data)
	}
	s.finish(w, r, err, "imported")
}

func readUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, maxErr
		}
		return nil, &profile.ImportError{Message: "expected a multipart upload", Cause: err}
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, &profile.ImportError{Message: "no file uploaded", Cause: err}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &profile.ImportError{Message: "failed to read upload", Cause: err}
	}
	return data, nil
}

// handleReset discards local edits once the user has confirmed.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("confirm") != "yes" {
		s.renderPage(w, r, http.StatusOK, rendering.View{
			Confirm: &rendering.Confirm{
				Message: "Restore defaults? This will overwrite local changes.",
				Action:  "/reset",
			},
		})
		return
	}

	source, err := s.store.Reset(r.Context())
	s.logger.Info("profile reset", zap.String("source", string(source)))
	s.finish(w, r, err, "reset")
}

// handleTheme flips the theme cookie.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	next := rendering.ThemeDark
	if themeFromRequest(r) == rendering.ThemeDark {
		next = rendering.ThemeLight
	}
	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    next,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.redirect(w, r, "", "")
}

func themeFromRequest(r *http.Request) string {
	if c, err := r.Cookie(themeCookie); err == nil && c.Value == rendering.ThemeDark {
		return rendering.ThemeDark
	}
	return rendering.ThemeLight
}
