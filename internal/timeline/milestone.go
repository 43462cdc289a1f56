package timeline

import (
	"fmt"
	"sort"
	"time"
)

type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusUpcoming   Status = "upcoming"
)

func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusUpcoming:
		return true
	}
	return false
}

type Side string

const (
	SideAbove Side = "above"
	SideBelow Side = "below"
)

// Milestone is a statically configured point on the timeline.
type Milestone struct {
	ID                string `json:"id" yaml:"id"`
	Label             string `json:"label" yaml:"label"`
	Description       string `json:"description,omitempty" yaml:"description"`
	Date              string `json:"date" yaml:"date"`
	DisplayDate       string `json:"displayDate" yaml:"displayDate"`
	Kind              string `json:"type" yaml:"type"`
	Status            Status `json:"status" yaml:"status"`
	Color             string `json:"color,omitempty" yaml:"color"`
	LinkedDeliverable string `json:"linkedDeliverableId,omitempty" yaml:"linkedDeliverableId"`
}

// Validate checks the fields the layout depends on.
func (m Milestone) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("milestone id is required")
	}
	if _, err := ParseDate(m.Date); err != nil {
		return fmt.Errorf("milestone %s: %w", m.ID, err)
	}
	if !m.Status.Valid() {
		return fmt.Errorf("milestone %s: unknown status %q", m.ID, m.Status)
	}
	return nil
}

// PlacedMilestone is a milestone with its computed layout.
type PlacedMilestone struct {
	Milestone
	Position float64 `json:"position"`
	Side     Side    `json:"side"`
}

// View is everything the widget needs to draw the track.
type View struct {
	Start       string            `json:"start"`
	End         string            `json:"end"`
	NowPosition float64           `json:"nowPosition"`
	Ticks       []Tick            `json:"ticks"`
	Milestones  []PlacedMilestone `json:"milestones"`
}

// Layout sorts milestones by date and alternates them above and below the
// track. Milestones with unparseable dates are skipped; validate them at
// load time.
func Layout(r Range, milestones []Milestone, now time.Time) View {
	type dated struct {
		m Milestone
		d Date
	}
	items := make([]dated, 0, len(milestones))
	for _, m := range milestones {
		d, err := ParseDate(m.Date)
		if err != nil {
			continue
		}
		items = append(items, dated{m: m, d: d})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].d.months() < items[j].d.months()
	})

	placed := make([]PlacedMilestone, 0, len(items))
	for i, it := range items {
		side := SideAbove
		if i%2 == 1 {
			side = SideBelow
		}
		placed = append(placed, PlacedMilestone{
			Milestone: it.m,
			Position:  r.Position(it.d),
			Side:      side,
		})
	}

	return View{
		Start:       r.Start.String(),
		End:         r.End.String(),
		NowPosition: r.NowPosition(now),
		Ticks:       r.MonthTicks(),
		Milestones:  placed,
	}
}
