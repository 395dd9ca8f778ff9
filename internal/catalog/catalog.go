// Package catalog provides the read-only registry of selectable resume templates.
// The catalog is stored as JSON and embedded at compile time.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates.json
var templatesJSON []byte

//go:embed sample.json
var sampleJSON []byte

// Template is a catalog entry describing one selectable visual template.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	IsPremium   bool     `json:"isPremium"`
	Category    []string `json:"category"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Layout      string   `json:"layout"`
	Accent      string   `json:"accent,omitempty"`
}

// HasCategory reports whether the template carries the tag (case-insensitive).
func (t Template) HasCategory(tag string) bool {
	for _, c := range t.Category {
		if strings.EqualFold(c, tag) {
			return true
		}
	}
	return false
}

func (t Template) clone() Template {
	t.Category = append([]string(nil), t.Category...)
	return t
}

// Filter narrows List results. Zero-valued fields do not filter.
type Filter struct {
	Premium  *bool  // only premium (true) or only free (false) templates
	Category string // exact tag match, case-insensitive
	Query    string // substring match over tags and name, case-insensitive
}

func (f Filter) matches(t Template) bool {
	if f.Premium != nil && t.IsPremium != *f.Premium {
		return false
	}
	if f.Category != "" && !t.HasCategory(strings.TrimSpace(f.Category)) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hit := strings.Contains(strings.ToLower(t.Name), q)
		for _, c := range t.Category {
			if strings.Contains(strings.ToLower(c), q) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Catalog is an immutable, ordered set of templates. It is safe for concurrent use.
type Catalog struct {
	templates []Template
	byID      map[string]int
}

// Load parses and validates a catalog document.
func Load(data []byte) (*Catalog, error) {
	if err := schemas.ValidateCatalog(data); err != nil {
		return nil, fmt.Errorf("invalid template catalog: %w", err)
	}

	var templates []Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}

	return New(templates)
}

// New builds a catalog from an explicit list. IDs must be unique and non-empty.
func New(templates []Template) (*Catalog, error) {
	c := &Catalog{
		templates: make([]Template, 0, len(templates)),
		byID:      make(map[string]int, len(templates)),
	}
	for _, t := range templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template with empty id")
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id: %s", t.ID)
		}
		c.byID[t.ID] = len(c.templates)
		c.templates = append(c.templates, t.clone())
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog built from the embedded templates.json.
// It panics if the embedded data is invalid, which is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(templatesJSON)
		if err != nil {
			panic(fmt.Sprintf("failed to load embedded template catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Get resolves a template by ID.
func (c *Catalog) Get(id string) (Template, error) {
	i, ok := c.byID[id]
	if !ok {
		return Template{}, &UnknownTemplateError{ID: id}
	}
	return c.templates[i].clone(), nil
}

// List returns the templates matching the filter in catalog order.
func (c *Catalog) List(f Filter) []Template {
	out := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		if f.matches(t) {
			out = append(out, t.clone())
		}
	}
	return out
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// SampleResume returns a fresh copy of the embedded sample resume, used for
// thumbnails and smoke renders.
func SampleResume() (*types.ResumeData, error) {
	var r types.ResumeData
	if err := json.Unmarshal(sampleJSON, &r); err != nil {
		return nil, fmt.Errorf("failed to parse sample resume: %w", err)
	}
	return &r, nil
}
