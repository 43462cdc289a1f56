package models

import "time"

type Category string

const (
	CategoryPhotography Category = "photography"
	CategoryVideo       Category = "video"
	CategoryWebDesign   Category = "web-design"
	CategorySoftware    Category = "software"
	CategoryMarketing   Category = "marketing"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPhotography, CategoryVideo, CategoryWebDesign, CategorySoftware, CategoryMarketing:
		return true
	}
	return false
}

// Project is a portfolio entry. Body holds the markdown after the
// frontmatter, unrendered.
type Project struct {
	Slug      string    `json:"slug" yaml:"-"`
	Title     string    `json:"title" yaml:"title"`
	Client    string    `json:"client" yaml:"client"`
	Category  Category  `json:"category" yaml:"category"`
	Date      time.Time `json:"date" yaml:"-"`
	Thumbnail string    `json:"thumbnail,omitempty" yaml:"thumbnail"`
	HeroImage string    `json:"heroImage,omitempty" yaml:"heroImage"`
	Summary   string    `json:"summary,omitempty" yaml:"summary"`
	Tags      []string  `json:"tags,omitempty" yaml:"tags"`
	Featured  bool      `json:"featured" yaml:"featured"`
	Metrics   []Metric  `json:"metrics,omitempty" yaml:"metrics"`
	Body      string    `json:"body,omitempty" yaml:"-"`
}
