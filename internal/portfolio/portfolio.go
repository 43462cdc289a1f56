// Package portfolio serves the public project case studies stored as
// markdown files with YAML frontmatter.
package portfolio

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"sovereign/internal/models"
)

var (
	ErrNotFound    = errors.New("portfolio: project not found")
	ErrInvalid     = errors.New("portfolio: invalid project")
	ErrNoDelimiter = errors.New("portfolio: frontmatter has no closing delimiter")
)

const pattern = "**/*.{md,mdx}"

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01"}

// frontmatter mirrors the on-disk keys. Date stays a string so quoted and
// bare YAML dates decode the same way.
type frontmatter struct {
	Title     string          `yaml:"title"`
	Client    string          `yaml:"client"`
	Category  models.Category `yaml:"category"`
	Date      string          `yaml:"date"`
	Thumbnail string          `yaml:"thumbnail"`
	HeroImage string          `yaml:"heroImage"`
	Summary   string          `yaml:"summary"`
	Tags      []string        `yaml:"tags"`
	Featured  bool            `yaml:"featured"`
	Metrics   []models.Metric `yaml:"metrics"`
}

// Portfolio is an immutable, date-sorted set of projects.
type Portfolio struct {
	projects []models.Project
	bySlug   map[string]int
}

// Load reads every markdown file under dir. A missing dir is an empty
// portfolio.
func Load(dir string) (*Portfolio, error) {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return New()
	}
	return LoadFS(os.DirFS(dir))
}

func LoadFS(fsys fs.FS) (*Portfolio, error) {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob projects: %w", err)
	}
	var projects []models.Project
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		base := path.Base(name)
		p, err := Parse(strings.TrimSuffix(base, path.Ext(base)), data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		projects = append(projects, p)
	}
	return New(projects...)
}

// New indexes projects by slug, newest first. Equal dates keep slug order.
func New(projects ...models.Project) (*Portfolio, error) {
	sorted := make([]models.Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].Slug < sorted[j].Slug
	})

	p := &Portfolio{projects: sorted, bySlug: make(map[string]int, len(sorted))}
	for i, proj := range sorted {
		if _, dup := p.bySlug[proj.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate slug %q", ErrInvalid, proj.Slug)
		}
		p.bySlug[proj.Slug] = i
	}
	return p, nil
}

// Parse splits a document into frontmatter and body and validates it.
func Parse(slug string, data []byte) (models.Project, error) {
	meta, body, err := splitFrontmatter(data)
	if err != nil {
		return models.Project{}, err
	}
	var fm frontmatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return models.Project{}, fmt.Errorf("%w: frontmatter: %v", ErrInvalid, err)
	}
	if fm.Title == "" {
		return models.Project{}, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if !fm.Category.Valid() {
		return models.Project{}, fmt.Errorf("%w: unknown category %q", ErrInvalid, fm.Category)
	}
	date, err := parseDate(fm.Date)
	if err != nil {
		return models.Project{}, err
	}
	return models.Project{
		Slug:      slug,
		Title:     fm.Title,
		Client:    fm.Client,
		Category:  fm.Category,
		Date:      date,
		Thumbnail: fm.Thumbnail,
		HeroImage: fm.HeroImage,
		Summary:   fm.Summary,
		Tags:      fm.Tags,
		Featured:  fm.Featured,
		Metrics:   fm.Metrics,
		Body:      string(body),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalid, s)
}

// splitFrontmatter expects the document to open with a "---" line and
// finds the next line that is exactly "---".
func splitFrontmatter(data []byte) (meta, body []byte, err error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, []byte("---\n")) {
		return nil, nil, fmt.Errorf("%w: missing frontmatter", ErrInvalid)
	}
	rest := data[len("---\n"):]
	if bytes.HasPrefix(rest, []byte("---\n")) || bytes.Equal(rest, []byte("---")) {
		return nil, bytes.TrimPrefix(bytes.TrimPrefix(rest, []byte("---")), []byte("\n")), nil
	}
	idx := bytes.Index(rest, []byte("\n---\n"))
	if idx < 0 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-len("\n---")], nil, nil
		}
		return nil, nil, ErrNoDelimiter
	}
	return rest[:idx], rest[idx+len("\n---\n"):], nil
}

// Filter narrows a listing. The zero value matches every project.
type Filter struct {
	Category     models.Category
	FeaturedOnly bool
}

func (f Filter) match(proj models.Project) bool {
	if f.Category != "" && proj.Category != f.Category {
		return false
	}
	return !f.FeaturedOnly || proj.Featured
}

// Filter returns the matching projects, newest first.
func (p *Portfolio) Filter(f Filter) []models.Project {
	return p.filter(f.match)
}

func (p *Portfolio) BySlug(slug string) (models.Project, error) {
	i, ok := p.bySlug[slug]
	if !ok {
		return models.Project{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	return p.projects[i], nil
}

func (p *Portfolio) Len() int { return len(p.projects) }

// Categories lists the categories with at least one project, in order of
// first appearance (newest project first).
func (p *Portfolio) Categories() []models.Category {
	seen := map[models.Category]bool{}
	out := []models.Category{}
	for _, proj := range p.projects {
		if !seen[proj.Category] {
			seen[proj.Category] = true
			out = append(out, proj.Category)
		}
	}
	return out
}

// Tags lists every distinct tag, sorted.
func (p *Portfolio) Tags() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, proj := range p.projects {
		for _, t := range proj.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}

func (p *Portfolio) filter(keep func(models.Project) bool) []models.Project {
	out := []models.Project{}
	for _, proj := range p.projects {
		if keep(proj) {
			out = append(out, proj)
		}
	}
	return out
}
