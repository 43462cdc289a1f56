package models

import "sovereign/internal/timeline"

type DeliverableStatus string

const (
	StatusInDevelopment DeliverableStatus = "In Development"
	StatusPlanned       DeliverableStatus = "Planned"
	StatusCompleted     DeliverableStatus = "Completed"
	StatusUnderReview   DeliverableStatus = "Under Review"
	StatusOngoing       DeliverableStatus = "Ongoing"
)

func (s DeliverableStatus) Valid() bool {
	switch s {
	case StatusInDevelopment, StatusPlanned, StatusCompleted, StatusUnderReview, StatusOngoing:
		return true
	}
	return false
}

type Client struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Confidential bool   `json:"confidential" yaml:"confidential"`
	ContactEmail string `json:"contactEmail,omitempty" yaml:"contactEmail"`
}

type Hero struct {
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle"`
}

type SubItem struct {
	Title   string   `json:"title" yaml:"title"`
	Details []string `json:"details,omitempty" yaml:"details"`
}

// DeliverablePricing is the quote attached to a single deliverable.
type DeliverablePricing struct {
	Price       string `json:"price" yaml:"price"`
	Hours       string `json:"hours,omitempty" yaml:"hours"`
	Description string `json:"description,omitempty" yaml:"description"`
	InvoiceURL  string `json:"invoiceUrl,omitempty" yaml:"invoiceUrl"`
}

// Deliverable is one line of work in a proposal. HighlightMatch marks the
// detail lines that contain it.
type Deliverable struct {
	ID             string              `json:"id" yaml:"id"`
	Title          string              `json:"title" yaml:"title"`
	Description    string              `json:"description,omitempty" yaml:"description"`
	Status         DeliverableStatus   `json:"status" yaml:"status"`
	Progress       int                 `json:"progress" yaml:"progress"`
	ProgressLabel  string              `json:"progressLabel,omitempty" yaml:"progressLabel"`
	Pricing        *DeliverablePricing `json:"pricing,omitempty" yaml:"pricing"`
	SubItems       []SubItem           `json:"subItems,omitempty" yaml:"subItems"`
	Details        []string            `json:"details,omitempty" yaml:"details"`
	HighlightMatch string              `json:"highlightMatch,omitempty" yaml:"highlightMatch"`
}

// ProofEntry is one dated block in a deliverable's work log.
type ProofEntry struct {
	Date        string   `json:"date" yaml:"date"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Tasks       []string `json:"tasks,omitempty" yaml:"tasks"`
}

type Pricing struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Hours       string   `json:"hours,omitempty" yaml:"hours"`
	Price       string   `json:"price" yaml:"price"`
	SubDetails  []string `json:"subDetails,omitempty" yaml:"subDetails"`
	InvoiceURL  string   `json:"invoiceUrl,omitempty" yaml:"invoiceUrl"`
}

type TimelineEntry struct {
	Date        string `json:"date" yaml:"date"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
}

type Metric struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type Metrics struct {
	Title       string   `json:"title,omitempty" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Items       []Metric `json:"items,omitempty" yaml:"items"`
}

type Footer struct {
	Disclaimer string `json:"disclaimer,omitempty" yaml:"disclaimer"`
}

// MilestoneTimeline is the optional positioned timeline for a portal.
type MilestoneTimeline struct {
	Start      string               `json:"start" yaml:"start"`
	End        string               `json:"end" yaml:"end"`
	Milestones []timeline.Milestone `json:"milestones" yaml:"milestones"`
}

// Portal is a client proposal or portal page definition.
type Portal struct {
	Client       Client                  `json:"client" yaml:"client"`
	Hero         Hero                    `json:"hero" yaml:"hero"`
	Overview     string                  `json:"overview,omitempty" yaml:"overview"`
	Deliverables []Deliverable           `json:"deliverables" yaml:"deliverables"`
	ProofOfWork  map[string][]ProofEntry `json:"proofOfWork,omitempty" yaml:"proofOfWork"`
	Pricing      *Pricing                `json:"pricing,omitempty" yaml:"pricing"`
	Timeline     []TimelineEntry         `json:"timeline,omitempty" yaml:"timeline"`
	Metrics      *Metrics                `json:"metrics,omitempty" yaml:"metrics"`
	Footer       Footer                  `json:"footer" yaml:"footer"`
	Milestones   *MilestoneTimeline      `json:"milestones,omitempty" yaml:"milestones"`
}
