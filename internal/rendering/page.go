package rendering

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"text/template"

	"github.com/guimoneda/gradient-bio/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageTemplate is the embedded template used by Render.
const PageTemplate = "page.html.tmpl"

// Fallbacks for missing contact fields.
const (
	DefaultEmail    = "contact@guimoneda.com"
	DefaultLinkedIn = "#"
	DefaultResume   = "/mnt/data/Profile.pdf"
)

// Theme values. Anything else renders as ThemeLight.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Confirm asks the user to confirm a destructive action before it is posted.
type Confirm struct {
	Message string
	// Action is the path the confirmation form posts to with confirm=yes.
	Action string
}

// View is everything shown on one page render.
type View struct {
	Profile types.Profile
	Editor  *types.Editor
	Theme   string
	Notice  string
	Error   string
	Confirm *Confirm
	// Static omits every control, for exporting a read-only page.
	Static bool
}

// pageData is the template input; all values are raw and escaped by the template.
type pageData struct {
	Name       string
	Role       string
	Headline   string
	Summary    string
	Stats      []statSlot
	Email      string
	EmailHref  string
	LinkedIn   string
	Resume     string
	Skills     []string
	Projects   []projectCard
	Experience []experienceCard
	Editor     *editorData
	Theme      string
	Notice     string
	Error      string
	Confirm    *Confirm
	Static     bool
}

type statSlot struct {
	Key   string
	Value string
}

type projectCard struct {
	Index int
	types.ProjectEntry
}

type experienceCard struct {
	Index int
	types.ExperienceEntry
}

type editorData struct {
	Token  string
	Title  string
	Fields []types.EditorField
}

// Render produces the full page for v. The output depends only on v.
func Render(v View) (string, error) {
	return renderTemplate(PageTemplate, v)
}

// Write renders v to w. Template failures are *TemplateError; a failed write is
// a *RenderError.
func Write(w io.Writer, v View) error {
	html, err := Render(v)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, html); err != nil {
		return &RenderError{Message: "failed to write page", Cause: err}
	}
	return nil
}

func renderTemplate(name string, v View) (string, error) {
	tmpl, err := parseTemplate(name)
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildPageData(v)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// parseTemplate loads an embedded template with the escaping functions installed
func parseTemplate(name string) (*template.Template, error) {
	content, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template not found: %s", name),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template: %s", name),
			Cause:   err,
		}
	}

	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"escape":  EscapeHTML,
		"safeURL": SafeURL,
	}).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

func buildPageData(v View) *pageData {
	p := v.Profile

	email := p.Contact.Email
	if email == "" {
		email = DefaultEmail
	}
	linkedIn := p.Contact.LinkedIn
	if linkedIn == "" {
		linkedIn = DefaultLinkedIn
	}
	resume := p.Contact.Resume
	if resume == "" {
		resume = DefaultResume
	}

	theme := ThemeLight
	if v.Theme == ThemeDark {
		theme = ThemeDark
	}

	data := &pageData{
		Name:       p.Name,
		Role:       p.Role,
		Headline:   p.Headline,
		Summary:    p.Summary,
		Stats:      sortedStats(p.Stats),
		Email:      email,
		EmailHref:  "mailto:" + email,
		LinkedIn:   linkedIn,
		Resume:     resume,
		Skills:     p.Skills,
		Projects:   make([]projectCard, 0, len(p.Projects)),
		Experience: make([]experienceCard, 0, len(p.Experience)),
		Theme:      theme,
		Notice:     v.Notice,
		Error:      v.Error,
		Confirm:    v.Confirm,
		Static:     v.Static,
	}
	for i, e := range p.Projects {
		data.Projects = append(data.Projects, projectCard{Index: i, ProjectEntry: e})
	}
	for i, e := range p.Experience {
		data.Experience = append(data.Experience, experienceCard{Index: i, ExperienceEntry: e})
	}
	if v.Editor != nil && !v.Static {
		data.Editor = &editorData{
			Token:  v.Editor.Token.String(),
			Title:  v.Editor.Title(),
			Fields: v.Editor.Fields,
		}
	}
	return data
}

// sortedStats orders counters by key so the output is deterministic.
func sortedStats(stats types.Stats) []statSlot {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	slots := make([]statSlot, 0, len(keys))
	for _, k := range keys {
		slots = append(slots, statSlot{Key: k, Value: stats[k].String()})
	}
	return slots
}
