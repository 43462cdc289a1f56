// Package portal loads the client proposal and portal definitions.
package portal

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"sovereign/internal/models"
	"sovereign/internal/timeline"
)

var (
	ErrNotFound = errors.New("portal: not found")
	ErrInvalid  = errors.New("portal: invalid definition")
)

var idPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Catalog is the immutable set of portals loaded at startup. It is safe for
// concurrent readers.
type Catalog struct {
	portals map[string]*models.Portal
	ids     []string
}

// NewCatalog validates the given portals and indexes them by client id.
func NewCatalog(portals ...models.Portal) (*Catalog, error) {
	c := &Catalog{portals: make(map[string]*models.Portal, len(portals))}
	for i := range portals {
		p := portals[i]
		if err := Validate(&p); err != nil {
			return nil, err
		}
		if _, dup := c.portals[p.Client.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate client id %q", ErrInvalid, p.Client.ID)
		}
		c.portals[p.Client.ID] = &p
		c.ids = append(c.ids, p.Client.ID)
	}
	sort.Strings(c.ids)
	return c, nil
}

// Load reads every *.yaml and *.yml file in dir. A missing directory yields
// an empty catalog.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return NewCatalog()
	}
	if err != nil {
		return nil, fmt.Errorf("read portals dir: %w", err)
	}

	var portals []models.Portal
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		p, err := loadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		portals = append(portals, p)
	}
	return NewCatalog(portals...)
}

func loadFile(path string) (models.Portal, error) {
	var p models.Portal
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("%w: %s: %v", ErrInvalid, filepath.Base(path), err)
	}
	return p, nil
}

// Validate checks a single portal definition.
func Validate(p *models.Portal) error {
	if p.Client.ID == "" {
		return fmt.Errorf("%w: client id is required", ErrInvalid)
	}
	if !idPattern.MatchString(p.Client.ID) {
		return fmt.Errorf("%w: client id %q must match %s", ErrInvalid, p.Client.ID, idPattern)
	}
	seen := make(map[string]bool, len(p.Deliverables))
	for _, d := range p.Deliverables {
		if d.ID == "" {
			return fmt.Errorf("%w: %s: deliverable id is required", ErrInvalid, p.Client.ID)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: %s: duplicate deliverable %q", ErrInvalid, p.Client.ID, d.ID)
		}
		seen[d.ID] = true
		if d.Progress < 0 || d.Progress > 100 {
			return fmt.Errorf("%w: %s: deliverable %s progress %d out of range", ErrInvalid, p.Client.ID, d.ID, d.Progress)
		}
		if !d.Status.Valid() {
			return fmt.Errorf("%w: %s: deliverable %s has unknown status %q", ErrInvalid, p.Client.ID, d.ID, d.Status)
		}
	}
	if m := p.Milestones; m != nil {
		if _, err := timeline.ParseRange(m.Start, m.End); err != nil {
			return fmt.Errorf("%w: %s: timeline range: %v", ErrInvalid, p.Client.ID, err)
		}
		for _, ms := range m.Milestones {
			if err := ms.Validate(); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalid, p.Client.ID, err)
			}
		}
	}
	return nil
}

// Get returns the portal for a client id. The returned value must not be
// modified.
func (c *Catalog) Get(id string) (*models.Portal, error) {
	p, ok := c.portals[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return p, nil
}

// IDs lists the client ids in lexical order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

func (c *Catalog) Len() int { return len(c.portals) }

// Timeline lays out the portal's milestone timeline at now.
func (c *Catalog) Timeline(id string, now time.Time) (timeline.View, error) {
	p, err := c.Get(id)
	if err != nil {
		return timeline.View{}, err
	}
	if p.Milestones == nil {
		return timeline.View{}, fmt.Errorf("%w: %q has no timeline", ErrNotFound, id)
	}
	r, err := timeline.ParseRange(p.Milestones.Start, p.Milestones.End)
	if err != nil {
		return timeline.View{}, err
	}
	return timeline.Layout(r, p.Milestones.Milestones, now), nil
}
