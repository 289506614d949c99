package task

import (
	"time"

	"github.com/javiermolinar/crewgrid/internal/dateutil"
)

// Update is a partial task mutation. Nil fields are left unchanged.
type Update struct {
	TaskID      string
	Title       *string
	Description *string
	Assignee    *string
	Date        *time.Time
	EndDate     *time.Time
	StartTime   *string
	EndTime     *string
	Color       *string
}

// IsEmpty returns true if the update carries no field changes.
func (u Update) IsEmpty() bool {
	return len(u.Fields()) == 0
}

// Fields returns the names of the populated fields, in a stable order.
func (u Update) Fields() []string {
	var fields []string
	if u.Title != nil {
		fields = append(fields, "title")
	}
	if u.Description != nil {
		fields = append(fields, "description")
	}
	if u.Assignee != nil {
		fields = append(fields, "assignee")
	}
	if u.Date != nil {
		fields = append(fields, "date")
	}
	if u.EndDate != nil {
		fields = append(fields, "end_date")
	}
	if u.StartTime != nil {
		fields = append(fields, "start_time")
	}
	if u.EndTime != nil {
		fields = append(fields, "end_time")
	}
	if u.Color != nil {
		fields = append(fields, "color")
	}
	return fields
}

// Apply returns a copy of t with the update applied. t is not modified.
func (u Update) Apply(t *Task) *Task {
	c := t.Clone()
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Assignee != nil {
		c.Assignee = *u.Assignee
	}
	if u.Date != nil {
		c.StartDate = dateutil.DateOf(*u.Date)
	}
	if u.EndDate != nil {
		end := dateutil.DateOf(*u.EndDate)
		c.EndDate = &end
	}
	if u.StartTime != nil {
		c.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		c.EndTime = *u.EndTime
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
	return c
}

// Changes reports whether applying the update to t would alter it.
func (u Update) Changes(t *Task) bool {
	after := u.Apply(t)
	return after.Title != t.Title ||
		after.Description != t.Description ||
		after.Assignee != t.Assignee ||
		!after.StartDate.Equal(t.StartDate) ||
		!after.LastDate().Equal(t.LastDate()) ||
		after.StartTime != t.StartTime ||
		after.EndTime != t.EndTime ||
		after.Color != t.Color
}
