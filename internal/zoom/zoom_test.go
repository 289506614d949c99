package zoom

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/crewgrid/internal/calendar"
	"github.com/javiermolinar/crewgrid/internal/task"
)

var anchor = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	c := New(anchor.Add(15 * time.Hour))
	s := c.State()
	if s.Granularity != 60 || s.DateSpan != 6 {
		t.Errorf("got %d/%d, want 60/6", s.Granularity, s.DateSpan)
	}
	if !s.Anchor.Equal(anchor) {
		t.Errorf("anchor = %v, want %v", s.Anchor, anchor)
	}
	if len(s.Window()) != 6 || len(s.Columns()) != 24 {
		t.Errorf("got %d dates and %d columns, want 6 and 24", len(s.Window()), len(s.Columns()))
	}
}

func TestZoomTime(t *testing.T) {
	c := New(anchor)

	var got []int
	for c.ZoomTimeIn() {
		got = append(got, c.State().Granularity)
	}
	if want := []int{30}; !equal(got, want) {
		t.Errorf("zooming in visited %v, want %v", got, want)
	}
	if c.ZoomTimeIn() {
		t.Error("ZoomTimeIn() at 30 minutes reported a change")
	}

	got = nil
	for c.ZoomTimeOut() {
		got = append(got, c.State().Granularity)
	}
	if want := []int{60, 120, 240, 360}; !equal(got, want) {
		t.Errorf("zooming out visited %v, want %v", got, want)
	}
	if c.ZoomTimeOut() {
		t.Error("ZoomTimeOut() at 6 hours reported a change")
	}
}

func TestZoomDate(t *testing.T) {
	c := New(anchor)

	for c.ZoomDateIn() {
	}
	if got := c.State().DateSpan; got != calendar.MinDateSpan {
		t.Errorf("span after zooming in = %d, want %d", got, calendar.MinDateSpan)
	}
	for c.ZoomDateOut() {
	}
	if got := c.State().DateSpan; got != calendar.MaxDateSpan {
		t.Errorf("span after zooming out = %d, want %d", got, calendar.MaxDateSpan)
	}
}

func TestReset(t *testing.T) {
	c := New(anchor)
	if c.Reset() {
		t.Error("Reset() at defaults reported a change")
	}
	c.ZoomTimeOut()
	c.ZoomDateOut()
	c.Navigate(calendar.Next)
	if !c.Reset() {
		t.Error("Reset() reported no change")
	}
	s := c.State()
	if s.Granularity != DefaultGranularity || s.DateSpan != DefaultDateSpan {
		t.Errorf("after reset got %d/%d", s.Granularity, s.DateSpan)
	}
	if s.Anchor.Equal(anchor) {
		t.Error("Reset() moved the anchor back")
	}
}

func TestNewWithDefaults(t *testing.T) {
	c, err := NewWithDefaults(anchor, 120, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.ZoomTimeIn()
	c.Reset()
	if s := c.State(); s.Granularity != 120 || s.DateSpan != 3 {
		t.Errorf("reset to %d/%d, want 120/3", s.Granularity, s.DateSpan)
	}

	if _, err := NewWithDefaults(anchor, 45, 3); !errors.Is(err, task.ErrInvalidGranularity) {
		t.Errorf("got error %v, want %v", err, task.ErrInvalidGranularity)
	}
	if _, err := NewWithDefaults(anchor, 60, 15); !errors.Is(err, task.ErrOutOfRange) {
		t.Errorf("got error %v, want %v", err, task.ErrOutOfRange)
	}
}

func TestSetters(t *testing.T) {
	c := New(anchor)

	if err := c.SetGranularity(240); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.SetGranularity(90); !errors.Is(err, task.ErrInvalidGranularity) {
		t.Errorf("SetGranularity(90) error = %v", err)
	}
	if err := c.SetDateSpan(14); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, span := range []int{0, 15, -1} {
		if err := c.SetDateSpan(span); !errors.Is(err, task.ErrOutOfRange) {
			t.Errorf("SetDateSpan(%d) error = %v, want %v", span, err, task.ErrOutOfRange)
		}
	}
	if s := c.State(); s.Granularity != 240 || s.DateSpan != 14 {
		t.Errorf("state = %+v", s)
	}
}

func TestGeneration(t *testing.T) {
	c := New(anchor)
	g := c.Generation()

	c.ZoomTimeIn()
	if c.Generation() != g+1 {
		t.Errorf("generation = %d, want %d", c.Generation(), g+1)
	}
	c.ZoomTimeIn() // no-op at 30 minutes
	c.SetAnchor(anchor)
	if c.Generation() != g+1 {
		t.Errorf("no-op changes bumped the generation to %d", c.Generation())
	}
	c.Navigate(calendar.Prev)
	if c.Generation() != g+2 {
		t.Errorf("generation = %d, want %d", c.Generation(), g+2)
	}
}

func TestNavigate(t *testing.T) {
	c := New(anchor)
	c.Navigate(calendar.Next)
	if want := anchor.AddDate(0, 0, 3); !c.State().Anchor.Equal(want) {
		t.Errorf("anchor = %v, want %v", c.State().Anchor, want)
	}

	if err := c.SetDateSpan(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Navigate(calendar.Prev)
	if want := anchor.AddDate(0, 0, 2); !c.State().Anchor.Equal(want) {
		t.Errorf("anchor = %v, want %v", c.State().Anchor, want)
	}
}

func TestResponsiveSettings(t *testing.T) {
	tests := []struct {
		granularity int
		span        int
		screen      float64
		want        float64
	}{
		{30, 6, 1920, 1200},
		{30, 2, 3000, 2750},
		{60, 6, 1920, 800},
		{60, 2, 1250, 1000},
		{120, 1, 1000, 750},
		{120, 6, 1920, 600},
		{240, 14, 1920, 400},
		{360, 2, 1050, 400},
		{360, 14, 1920, 300},
	}

	for _, tt := range tests {
		got := CellWidth(tt.granularity, tt.span, tt.screen)
		if got != tt.want {
			t.Errorf("CellWidth(%d, %d, %v) = %v, want %v", tt.granularity, tt.span, tt.screen, got, tt.want)
		}
		if s := ResponsiveSettings(tt.granularity, tt.span, tt.screen); s.CellWidth != got || s.Granularity != tt.granularity {
			t.Errorf("ResponsiveSettings(%d, %d, %v) = %+v", tt.granularity, tt.span, tt.screen, s)
		}
	}

	if s := New(anchor).Settings(1920); !s.ShowAllLabels || s.Granularity != 60 {
		t.Errorf("Settings() = %+v", s)
	}
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
