package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/crewgrid/internal/config"
	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/task"
	"github.com/javiermolinar/crewgrid/internal/tui/commands"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// memRepo is an in-memory task.Repository.
type memRepo struct {
	tasks    []*task.Task
	members  []task.Member
	updates  []task.Update
	reorders [][2]int
}

func (r *memRepo) ListTasks(context.Context) ([]*task.Task, error) {
	return slices.Clone(r.tasks), nil
}

func (r *memRepo) ListTasksInRange(_ context.Context, start, end time.Time) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range r.tasks {
		if !t.StartDate.After(end) && !t.LastDate().Before(start) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memRepo) GetTask(_ context.Context, id string) (*task.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
}

func (r *memRepo) CreateTask(_ context.Context, t *task.Task) error {
	r.tasks = append(r.tasks, t)
	return nil
}

func (r *memRepo) UpdateTask(_ context.Context, u task.Update) (*task.Task, error) {
	r.updates = append(r.updates, u)
	for i, t := range r.tasks {
		if t.ID == u.TaskID {
			r.tasks[i] = u.Apply(t)
			return r.tasks[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, u.TaskID)
}

func (r *memRepo) DeleteTask(_ context.Context, id string) error {
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = slices.Delete(r.tasks, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
}

func (r *memRepo) ListMembers(context.Context) ([]task.Member, error) {
	return slices.Clone(r.members), nil
}

func (r *memRepo) AddMember(_ context.Context, name, email string) (task.Member, error) {
	m := task.Member{ID: fmt.Sprintf("m%d", len(r.members)+1), Name: name, Email: email, Position: len(r.members)}
	r.members = append(r.members, m)
	return m, nil
}

func (r *memRepo) ReorderMember(_ context.Context, from, to int) error {
	r.reorders = append(r.reorders, [2]int{from, to})
	return nil
}

func (r *memRepo) Close() error { return nil }

func newRepo() *memRepo {
	day := date(2025, 6, 20)
	offsiteEnd := date(2025, 6, 23)
	return &memRepo{
		members: []task.Member{
			{ID: "m1", Name: "Jeremie", Position: 0},
			{ID: "m2", Name: "Lizzie", Position: 1},
			{ID: "m3", Name: "Lamar", Position: 2},
			{ID: "m4", Name: "Jeff", Position: 3},
		},
		tasks: []*task.Task{
			{ID: "t1", Title: "Standup", Assignee: "Jeremie", StartDate: day, StartTime: "09:00", EndTime: "10:00", Color: "blue"},
			{ID: "t2", Title: "Offsite", Assignee: "Lizzie", StartDate: date(2025, 6, 21), EndDate: &offsiteEnd, Color: "green"},
			{ID: "t3", Title: "Review", Assignee: "Jeremie", StartDate: day, Color: "red"},
		},
	}
}

// harness drives a Model through Update the way the bubbletea runtime does.
type harness struct {
	t      *testing.T
	m      Model
	repo   *memRepo
	copied string
}

func newHarness(t *testing.T, repo *memRepo) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Grid.StartDate = "2025-06-20"

	h := &harness{t: t, repo: repo}
	m, err := New(context.Background(), repo, cfg, zerolog.Nop(),
		WithClock(func() time.Time { return time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC) }),
		WithClipboard(func(s string) error {
			h.copied = s
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.m = *m
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.send(commands.RosterLoadedMsg{Members: repo.members})
	h.send(commands.WindowLoadedMsg{Tasks: slices.Clone(repo.tasks), Generation: h.m.zoom.Generation()})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	m, ok := next.(Model)
	if !ok {
		h.t.Fatalf("Update returned %T, want Model", next)
	}
	h.m = m
	return cmd
}

// press sends each key in turn and returns the command of the last one.
func (h *harness) press(keys ...string) tea.Cmd {
	h.t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.send(keyMsg(k))
	}
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestNew_InitialState(t *testing.T) {
	h := newHarness(t, newRepo())

	if got := len(h.m.lines()); got != 4 {
		t.Errorf("lines = %d, want 4", got)
	}
	if h.m.loading {
		t.Error("loading should be false after the window loaded")
	}
	if got := h.m.result.Window[0]; !got.Equal(date(2025, 6, 20)) {
		t.Errorf("window starts %v, want 2025-06-20", got)
	}
	sel := h.m.selectedTask()
	if sel == nil || sel.ID != "t3" {
		t.Fatalf("selected = %v, want the untimed task first", sel)
	}
	if got := h.m.cellWidth(); got != 50 {
		t.Errorf("cellWidth = %d, want 50", got)
	}
}

func TestNew_BadGranularity(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.TimeGranularity = 45
	if _, err := New(context.Background(), newRepo(), cfg, zerolog.Nop()); err == nil {
		t.Error("expected an error for an unsupported granularity")
	}
}

func TestCycleTask(t *testing.T) {
	h := newHarness(t, newRepo())

	h.press("tab")
	if sel := h.m.selectedTask(); sel == nil || sel.ID != "t1" {
		t.Fatalf("after tab selected = %v, want t1", sel)
	}
	h.press("tab")
	if sel := h.m.selectedTask(); sel == nil || sel.ID != "t3" {
		t.Errorf("tab should wrap around, selected = %v", sel)
	}
	h.press("shift+tab")
	if sel := h.m.selectedTask(); sel == nil || sel.ID != "t1" {
		t.Errorf("shift+tab should go back, selected = %v", sel)
	}
}

func TestMoveGesture(t *testing.T) {
	repo := newRepo()
	h := newHarness(t, repo)

	h.press("tab", "m")
	if h.m.mode != ModeDrag {
		t.Fatalf("mode = %v, want ModeDrag", h.m.mode)
	}
	h.press("l", "j", ">", ".")

	if got, want := h.m.proposalLabel(), "@Lizzie Sat Jun 21 10:15-11:15"; got != want {
		t.Errorf("proposal = %q, want %q", got, want)
	}
	if h.m.gesture.preview == nil {
		t.Fatal("expected a preview")
	}

	cmd := h.press("enter")
	if h.m.mode != ModeNormal || h.m.gesture != nil {
		t.Fatal("gesture should end on drop")
	}
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	saved, ok := cmd().(commands.TaskSavedMsg)
	if !ok {
		t.Fatal("expected TaskSavedMsg")
	}

	got := saved.Task
	if got.Assignee != "Lizzie" || !got.StartDate.Equal(date(2025, 6, 21)) {
		t.Errorf("moved to %s on %s, want Lizzie on 2025-06-21", got.Assignee, dateutil.FormatDate(got.StartDate))
	}
	if got.StartTime != "10:15" || got.EndTime != "11:15" {
		t.Errorf("time = %s-%s, want 10:15-11:15", got.StartTime, got.EndTime)
	}
	if got.EndDate != nil {
		t.Error("single-day task should not gain an end date")
	}
	if len(repo.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(repo.updates))
	}

	h.send(saved)
	if h.m.statusMsg != "Saved Standup" {
		t.Errorf("status = %q", h.m.statusMsg)
	}
}

func TestMoveGesture_UntimedTakesTime(t *testing.T) {
	repo := newRepo()
	h := newHarness(t, repo)

	cmd := h.press("m", ">", "enter")
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	saved, ok := cmd().(commands.TaskSavedMsg)
	if !ok {
		t.Fatal("expected TaskSavedMsg")
	}
	if saved.Task.StartTime != "10:00" || saved.Task.EndTime != "11:00" {
		t.Errorf("time = %s-%s, want a one hour block at 10:00", saved.Task.StartTime, saved.Task.EndTime)
	}
}

func TestMoveGesture_UntimedKeepsNoTime(t *testing.T) {
	repo := newRepo()
	h := newHarness(t, repo)

	h.press("m", "l")
	cmd := h.press("enter")
	saved, ok := cmd().(commands.TaskSavedMsg)
	if !ok {
		t.Fatal("expected TaskSavedMsg")
	}
	if saved.Task.StartTime != "" || !saved.Task.StartDate.Equal(date(2025, 6, 21)) {
		t.Errorf("got %s at %q, want an untimed task on 2025-06-21", dateutil.FormatDate(saved.Task.StartDate), saved.Task.StartTime)
	}
}

func TestResizeEndGesture(t *testing.T) {
	repo := newRepo()
	h := newHarness(t, repo)

	h.press("tab", "e", ".", ".")
	if got := h.m.proposalLabel(); !strings.HasSuffix(got, "09:00-10:10") {
		t.Errorf("proposal = %q, want 5 minute steps", got)
	}
	// Resizing does not follow the drop cell.
	h.press("j")

	cmd := h.press("enter")
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	cmd()
	u := repo.updates[0]
	if u.EndTime == nil || *u.EndTime != "10:10" {
		t.Errorf("EndTime = %v, want 10:10", u.EndTime)
	}
	if u.StartTime != nil || u.Assignee != nil {
		t.Errorf("resize should only set the end time, fields = %v", u.Fields())
	}
}

func TestResizeStartGesture_MinimumLength(t *testing.T) {
	repo := newRepo()
	h := newHarness(t, repo)

	h.press("tab", "s", ">", ">")
	cmd := h.press("enter")
	cmd()
	u := repo.updates[0]
	if u.StartTime == nil || *u.StartTime != "09:55" {
		t.Errorf("StartTime = %v, want 09:55", u.StartTime)
	}
}

func TestResizeMultiDay_Refused(t *testing.T) {
	h := newHarness(t, newRepo())

	h.press("j", "l")
	if sel := h.m.selectedTask(); sel == nil || sel.ID != "t2" {
		t.Fatalf("selected = %v, want the multi-day task", sel)
	}
	h.press("e")
	if h.m.mode != ModeNormal {
		t.Error("resize of a multi-day task should not start")
	}
	if !h.m.statusErr || !strings.Contains(h.m.statusMsg, "resized") {
		t.Errorf("status = %q, err = %v", h.m.statusMsg, h.m.statusErr)
	}
}

func TestMoveMultiDay_ShiftsEndDate(t *testing.T) {
	repo := newRepo()
	h := newHarness(t, repo)

	h.press("j", "l", "m", "l", "l", "k")
	cmd := h.press("enter")
	saved, ok := cmd().(commands.TaskSavedMsg)
	if !ok {
		t.Fatal("expected TaskSavedMsg")
	}
	got := saved.Task
	if got.Assignee != "Jeremie" {
		t.Errorf("assignee = %s", got.Assignee)
	}
	if !got.StartDate.Equal(date(2025, 6, 23)) || got.EndDate == nil || !got.EndDate.Equal(date(2025, 6, 25)) {
		t.Errorf("range = %s..%v, want 2025-06-23..2025-06-25", dateutil.FormatDate(got.StartDate), got.EndDate)
	}
}

func TestCancelGesture(t *testing.T) {
	repo := newRepo()
	h := newHarness(t, repo)

	h.press("tab", "m", ".", ">", "esc")
	if h.m.mode != ModeNormal || h.m.gesture != nil {
		t.Error("gesture should be discarded")
	}
	if h.m.statusMsg != "Cancelled" {
		t.Errorf("status = %q", h.m.statusMsg)
	}
	if len(repo.updates) != 0 {
		t.Errorf("updates = %d, want 0", len(repo.updates))
	}
	for _, rl := range h.m.result.Rows {
		for _, c := range rl.Cells {
			if len(c.Items) > 2 {
				t.Errorf("preview still laid out in %s", rl.Row.Key)
			}
		}
	}
}

func TestDropInPlace(t *testing.T) {
	repo := newRepo()
	h := newHarness(t, repo)

	h.press("tab", "m", "enter")
	if h.m.statusMsg != "Task already there" {
		t.Errorf("status = %q", h.m.statusMsg)
	}
	if len(repo.updates) != 0 {
		t.Error("an unchanged drop should not be saved")
	}
}

func TestDragKeepsTargetInGrid(t *testing.T) {
	h := newHarness(t, newRepo())

	h.press("tab", "m", "k", "h", "j", "j", "j", "j", "j")
	if h.m.gesture.line != 3 || h.m.gesture.day != 0 {
		t.Errorf("target = (%d, %d), want (3, 0)", h.m.gesture.line, h.m.gesture.day)
	}
	h.press("<", "<", "<", "<", "<", "<", "<", "<", "<", "<")
	if got := h.m.gesture.pointer.X; got != 0 {
		t.Errorf("pointer = %v, want clamped to 0", got)
	}
	if got := h.m.proposalLabel(); !strings.HasSuffix(got, "00:00-01:00") {
		t.Errorf("proposal = %q", got)
	}
}

func TestZoomKeys(t *testing.T) {
	tests := []struct {
		name        string
		keys        []string
		granularity int
		span        int
		generation  uint64
	}{
		{"finer time", []string{"+"}, 30, 6, 1},
		{"finest stops", []string{"+", "+"}, 30, 6, 1},
		{"coarser time", []string{"-"}, 120, 6, 1},
		{"fewer days", []string{"]"}, 60, 5, 1},
		{"more days", []string{"["}, 60, 7, 1},
		{"reset", []string{"+", "]", "0"}, 60, 6, 3},
		{"reset at default", []string{"0"}, 60, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, newRepo())
			h.press(tt.keys...)

			s := h.m.zoom.State()
			if s.Granularity != tt.granularity || s.DateSpan != tt.span {
				t.Errorf("zoom = %d min, %d days, want %d min, %d days", s.Granularity, s.DateSpan, tt.granularity, tt.span)
			}
			if got := h.m.zoom.Generation(); got != tt.generation {
				t.Errorf("generation = %d, want %d", got, tt.generation)
			}
			if got := len(h.m.result.Window); got != tt.span {
				t.Errorf("window = %d days, want %d", got, tt.span)
			}
		})
	}
}

func TestZoomWidensCells(t *testing.T) {
	h := newHarness(t, newRepo())

	h.press("+")
	if got := h.m.cellWidth(); got != 75 {
		t.Errorf("cellWidth at 30 min = %d, want 75", got)
	}
	h.press("l", "l", "l")
	offset, visible := h.m.viewport()
	if visible != 104 {
		t.Errorf("visible = %d, want 104", visible)
	}
	if offset != 3*75+75-104 {
		t.Errorf("offset = %d, want the cursor day in view", offset)
	}
}

func TestStaleWindowLoadIgnored(t *testing.T) {
	h := newHarness(t, newRepo())

	cmd := h.press("+")
	if cmd == nil {
		t.Fatal("zoom should load the new window")
	}
	if !h.m.loading {
		t.Error("loading should be set while the window loads")
	}

	h.send(commands.WindowLoadedMsg{Generation: 0})
	if !h.m.loading || len(h.m.tasks) != 3 {
		t.Error("a stale load should be dropped")
	}

	msg, ok := cmd().(commands.WindowLoadedMsg)
	if !ok {
		t.Fatal("expected WindowLoadedMsg")
	}
	if msg.Generation != 1 {
		t.Errorf("generation = %d, want 1", msg.Generation)
	}
	h.send(msg)
	if h.m.loading {
		t.Error("current load should clear loading")
	}
}

func TestNavigateShiftsWindow(t *testing.T) {
	h := newHarness(t, newRepo())

	h.press("l", "l", "l", "l", "l")
	if h.m.cursor.Day != 5 || h.m.zoom.Generation() != 0 {
		t.Fatalf("cursor = %d, generation = %d", h.m.cursor.Day, h.m.zoom.Generation())
	}

	cmd := h.press("l")
	if cmd == nil {
		t.Fatal("shifting the window should load it")
	}
	if got := h.m.result.Window[0]; !got.Equal(date(2025, 6, 23)) {
		t.Errorf("window starts %s, want 2025-06-23", dateutil.FormatDate(got))
	}
	if got := h.m.result.Window[h.m.cursor.Day]; !got.Equal(date(2025, 6, 26)) {
		t.Errorf("cursor on %s, want 2025-06-26", dateutil.FormatDate(got))
	}

	h.press("h", "h", "h", "h")
	if got := h.m.result.Window[0]; !got.Equal(date(2025, 6, 20)) {
		t.Errorf("window starts %s, want 2025-06-20", dateutil.FormatDate(got))
	}
	if got := h.m.result.Window[h.m.cursor.Day]; !got.Equal(date(2025, 6, 22)) {
		t.Errorf("cursor on %s, want 2025-06-22", dateutil.FormatDate(got))
	}
}

func TestWindowKeys(t *testing.T) {
	h := newHarness(t, newRepo())

	h.press("L")
	if got := h.m.zoom.State().Anchor; !got.Equal(date(2025, 6, 23)) {
		t.Errorf("anchor = %s, want 2025-06-23", dateutil.FormatDate(got))
	}
	h.press("H", "H")
	if got := h.m.zoom.State().Anchor; !got.Equal(date(2025, 6, 17)) {
		t.Errorf("anchor = %s, want 2025-06-17", dateutil.FormatDate(got))
	}
	h.press("t")
	if got := h.m.zoom.State().Anchor; !got.Equal(date(2025, 6, 20)) {
		t.Errorf("anchor = %s, want today", dateutil.FormatDate(got))
	}
	if h.press("t") != nil {
		t.Error("today twice should not reload")
	}
}

func TestToggleGroup(t *testing.T) {
	h := newHarness(t, newRepo())

	h.press("x")
	lines := h.m.lines()
	if len(lines) != 4 || lines[0].Row != nil {
		t.Fatalf("first line should be a summary, lines = %d", len(lines))
	}
	if got := lines[0].Label(); got != "▸ Jeremie" {
		t.Errorf("label = %q", got)
	}
	if got := len(h.m.cellTasks(0, 0)); got != 2 {
		t.Errorf("summary cell tasks = %d, want 2", got)
	}
	if len(h.m.result.Rows) != 3 {
		t.Errorf("laid out rows = %d, want 3", len(h.m.result.Rows))
	}

	h.press("a")
	if !h.m.statusErr || h.m.statusMsg != "Expand Jeremie first" {
		t.Errorf("status = %q", h.m.statusMsg)
	}

	h.press("x")
	if h.m.lines()[0].Row == nil {
		t.Error("second toggle should expand")
	}
}

func TestAddRemoveRow(t *testing.T) {
	h := newHarness(t, newRepo())

	h.press("a")
	if h.m.statusMsg != "Added row Jeremie #2" {
		t.Errorf("status = %q", h.m.statusMsg)
	}
	lines := h.m.lines()
	if len(lines) != 5 || lines[1].Label() != "Jeremie #2" {
		t.Fatalf("lines = %d", len(lines))
	}
	if got := len(h.m.cellTasks(1, 0)); got != 0 {
		t.Errorf("second row tasks = %d, want 0", got)
	}
	if got := lines[1].Assignee(); got != "Jeremie #2" {
		t.Errorf("second row assignee = %q, want Jeremie #2", got)
	}

	h.press("d")
	if !h.m.statusErr || h.m.statusMsg != "Jeremie #1 holds Jeremie's own tasks" {
		t.Errorf("status = %q", h.m.statusMsg)
	}

	h.press("j", "d")
	if h.m.statusMsg != "Removed row Jeremie #2" {
		t.Errorf("status = %q", h.m.statusMsg)
	}
	if len(h.m.lines()) != 4 {
		t.Errorf("lines = %d, want 4", len(h.m.lines()))
	}

	h.press("k", "d")
	if !h.m.statusErr || h.m.statusMsg != "Jeremie needs at least one row" {
		t.Errorf("status = %q", h.m.statusMsg)
	}
}

func TestMoveMember(t *testing.T) {
	repo := newRepo()
	h := newHarness(t, repo)

	cmd := h.press("J")
	if cmd == nil {
		t.Fatal("expected a reorder command")
	}
	if got := h.m.lines()[0].Assignee(); got != "Lizzie" {
		t.Errorf("first member = %s, want Lizzie", got)
	}
	if h.m.cursor.Line != 1 {
		t.Errorf("cursor should follow the member, line = %d", h.m.cursor.Line)
	}

	msg, ok := cmd().(commands.StatusMsgCmd)
	if !ok {
		t.Fatal("expected StatusMsgCmd")
	}
	if msg.Msg != "Moved Jeremie to position 2" {
		t.Errorf("msg = %q", msg.Msg)
	}
	if len(repo.reorders) != 1 || repo.reorders[0] != [2]int{0, 1} {
		t.Errorf("reorders = %v", repo.reorders)
	}

	if h.press("K") == nil {
		t.Error("moving the second member up should reorder")
	}
	if h.press("K") != nil {
		t.Error("the first member cannot move up")
	}
}

func TestCopyAgenda(t *testing.T) {
	h := newHarness(t, newRepo())

	h.press("y")
	want := "Jeremie, Fri Jun 20 2025\nall day     Review\n09:00-10:00 Standup\n"
	if h.copied != want {
		t.Errorf("copied = %q, want %q", h.copied, want)
	}
	if h.m.statusMsg != "Copied 2 tasks" {
		t.Errorf("status = %q", h.m.statusMsg)
	}

	h.press("j", "j", "y")
	if h.m.statusMsg != "Nothing to copy" {
		t.Errorf("status = %q", h.m.statusMsg)
	}
}

func TestCopyAgenda_Error(t *testing.T) {
	h := newHarness(t, newRepo())
	h.m.copyText = func(string) error { return errors.New("no clipboard") }

	h.press("y")
	if !h.m.statusErr || h.m.statusMsg != "Copy failed: no clipboard" {
		t.Errorf("status = %q", h.m.statusMsg)
	}
}

func TestErrMsg(t *testing.T) {
	h := newHarness(t, newRepo())

	h.send(commands.ErrMsg{Err: errors.New("disk full")})
	if !h.m.statusErr || h.m.statusMsg != "disk full" {
		t.Errorf("status = %q", h.m.statusMsg)
	}

	h.send(commands.ErrMsg{Err: fmt.Errorf("%w: t9", task.ErrTaskNotFound)})
	if h.m.statusMsg != "Task was deleted elsewhere" {
		t.Errorf("status = %q", h.m.statusMsg)
	}

	h.send(commands.ClearStatusMsg{})
	if h.m.statusMsg != "" || h.m.statusErr {
		t.Error("status should be cleared")
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t, newRepo())

	cmd := h.press("q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestConfigReloaded(t *testing.T) {
	h := newHarness(t, newRepo())
	zoomBefore := h.m.zoom.State()

	cfg := config.Default()
	cfg.Grid.StartDate = "2025-06-20"
	cfg.Grid.TimeGranularity = 240
	cfg.Drag.MoveSnap = 30
	cfg.UI.Theme = "latte"
	cmd := h.send(commands.ConfigReloadedMsg{Config: cfg})
	if cmd == nil {
		t.Fatal("expected a status command")
	}

	if h.m.theme.Name != "latte" {
		t.Errorf("theme = %q, want latte", h.m.theme.Name)
	}
	if h.m.statusMsg != "Config reloaded" {
		t.Errorf("status = %q", h.m.statusMsg)
	}
	if got := h.m.zoom.State(); got != zoomBefore {
		t.Errorf("zoom changed to %+v", got)
	}

	h.press("tab", "m", ".")
	if got, want := h.m.proposalLabel(), "@Jeremie Fri Jun 20 09:30-10:30"; got != want {
		t.Errorf("proposal = %q, want %q", got, want)
	}
}
