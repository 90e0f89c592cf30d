package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/appreview/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// TemplateStore loads the markdown templates used by the detail view from
// user-editable files, falling back to built-in defaults.
//
// The directory and default files are created lazily on the first Load, not
// in the constructor.
type TemplateStore struct {
	mu       sync.RWMutex
	dir      string
	cache    map[string]string
	initOnce sync.Once
	initErr  error
}

// defaultTemplates are Go text/template sources rendered to markdown.
// The detail template receives a domain.Summary, the comments template a
// []domain.Comment.
var defaultTemplates = map[string]string{
	driven.TemplateDetail: `# {{ .Title }}

` + "`{{ .ApplicationID }}`" + ` · {{ .Segment }} · {{ .TRL }}

| | |
|---|---|
| Applicant | {{ .ApplicantName }} |
| Innovation | {{ .InnovationTitle }} |
| Funded | {{ .FundingStatus }} |
| Funding | {{ .Funding }} |
| Team size | {{ .TeamSize }} |
| Recognition | {{ join .Recognition ", " }} |
{{ if .About }}
## About
{{ range .About }}
{{ . }}
{{ end }}{{ end }}
{{- if or .FundingSummary .Patents .AwardsSummary .TeamSummary }}
## Traction
{{ with .FundingSummary }}
- **Funding/Grants:** {{ . }}{{ end }}{{ with .Patents }}
- **Patents & IP:** {{ . }}{{ end }}{{ with .AwardsSummary }}
- **Awards:** {{ . }}{{ end }}{{ with .TeamSummary }}
- **Team:** {{ . }}{{ end }}
{{ end }}
{{- if .Awards }}
## Awards ({{ .AwardCount }})
{{ range .Awards }}
- **{{ or .Name "Award" }}**{{ with .Body }}, {{ . }}{{ end }}{{ with .Year }} ({{ . }}){{ end }}{{ with .Details }}: {{ . }}{{ end }}{{ end }}
{{ end }}
{{- if .Media }}
## Media ({{ .MediaCount }})
{{ range .Media }}
- {{ with .Type }}*{{ . }}* {{ end }}{{ .Description }}{{ with .Link }} <{{ . }}>{{ end }}{{ end }}
{{ end }}
{{- if .Team }}
## Team
{{ range .Team }}
- **{{ .Name }}**{{ with .Role }}, {{ . }}{{ end }}{{ with .Credentials }}: {{ . }}{{ end }}{{ with .Email }} · {{ . }}{{ end }}{{ with .Mobile }} · {{ . }}{{ end }}{{ end }}
{{ end }}
{{- if .Documents }}
## Documents
{{ range .Documents }}
- [{{ .Label }}]({{ .URL }}){{ end }}
{{ end }}`,

	driven.TemplateComments: `## Comments ({{ len . }})
{{ range . }}
**{{ .Reviewer }}** · {{ .CreatedAt.Format "2006-01-02 15:04" }}

{{ .Text }}
{{ else }}
_No comments yet._
{{ end }}`,
}

// DefaultTemplate returns the built-in template for name.
func DefaultTemplate(name string) (string, bool) {
	tmpl, ok := defaultTemplates[name]
	return tmpl, ok
}

// NewTemplateStore creates a new file-based template store.
// If dir is empty, defaults to ~/.appreview/templates/.
func NewTemplateStore(dir string) (*TemplateStore, error) {
	if dir == "" {
		base, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "templates")
	}

	return &TemplateStore{
		dir:   dir,
		cache: make(map[string]string),
	}, nil
}

// Load returns the template source for the given name.
func (s *TemplateStore) Load(name string) (string, error) {
	def, known := defaultTemplates[name]
	if !known {
		return "", fmt.Errorf("unknown template %q", name)
	}

	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return def, nil
	}

	s.mu.RLock()
	if tmpl, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return tmpl, nil
	}
	s.mu.RUnlock()

	tmpl, err := s.loadFromFile(name)
	if err != nil || tmpl == "" {
		return def, nil
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		tmpl = cached
	} else {
		s.cache[name] = tmpl
	}
	s.mu.Unlock()

	return tmpl, nil
}

// Reload clears the template cache, forcing fresh loads from disk.
func (s *TemplateStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the template directory path.
func (s *TemplateStore) Dir() string {
	return s.dir
}

// initialise creates the template directory and writes any missing defaults.
func (s *TemplateStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.initErr = fmt.Errorf("create template directory: %w", err)
		return
	}

	for name, content := range defaultTemplates {
		path := s.path(name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default template %q: %w", name, err)
				return
			}
		}
	}
}

func (s *TemplateStore) path(name string) string {
	return filepath.Join(s.dir, name+templateExt)
}

func (s *TemplateStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
