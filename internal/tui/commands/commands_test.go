package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/crewgrid/internal/config"
	"github.com/javiermolinar/crewgrid/internal/task"
)

type fakeRepo struct {
	tasksInRange func(start, end time.Time) ([]*task.Task, error)
	update       func(u task.Update) (*task.Task, error)
	members      []task.Member
}

func (f fakeRepo) ListTasks(ctx context.Context) ([]*task.Task, error) {
	return nil, errors.New("not implemented")
}

func (f fakeRepo) ListTasksInRange(ctx context.Context, start, end time.Time) ([]*task.Task, error) {
	if f.tasksInRange == nil {
		return nil, errors.New("not implemented")
	}
	return f.tasksInRange(start, end)
}

func (f fakeRepo) GetTask(ctx context.Context, id string) (*task.Task, error) {
	return nil, errors.New("not implemented")
}

func (f fakeRepo) CreateTask(ctx context.Context, t *task.Task) error {
	return errors.New("not implemented")
}

func (f fakeRepo) UpdateTask(ctx context.Context, u task.Update) (*task.Task, error) {
	if f.update == nil {
		return nil, errors.New("not implemented")
	}
	return f.update(u)
}

func (f fakeRepo) DeleteTask(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func (f fakeRepo) ListMembers(ctx context.Context) ([]task.Member, error) {
	return f.members, nil
}

func (f fakeRepo) AddMember(ctx context.Context, name, email string) (task.Member, error) {
	return task.Member{}, errors.New("not implemented")
}

func (f fakeRepo) ReorderMember(ctx context.Context, from, to int) error {
	return errors.New("not implemented")
}

func (f fakeRepo) Close() error {
	return nil
}

func TestLoadWindowReturnsWindowLoadedMsg(t *testing.T) {
	start := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)

	var gotStart, gotEnd time.Time
	repo := fakeRepo{
		tasksInRange: func(s, e time.Time) ([]*task.Task, error) {
			gotStart, gotEnd = s, e
			return []*task.Task{{ID: "a", Title: "Site survey", Assignee: "Jeff", StartDate: start}}, nil
		},
	}

	msg := LoadWindow(context.Background(), repo, start, end, 7)()

	loaded, ok := msg.(WindowLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want WindowLoadedMsg", msg)
	}
	if !gotStart.Equal(start) || !gotEnd.Equal(end) {
		t.Fatalf("range = %v..%v, want %v..%v", gotStart, gotEnd, start, end)
	}
	if loaded.Generation != 7 {
		t.Fatalf("Generation = %d, want 7", loaded.Generation)
	}
	if len(loaded.Tasks) != 1 || loaded.Tasks[0].Title != "Site survey" {
		t.Fatalf("Tasks = %v", loaded.Tasks)
	}
}

func TestLoadWindowError(t *testing.T) {
	boom := errors.New("boom")
	repo := fakeRepo{
		tasksInRange: func(time.Time, time.Time) ([]*task.Task, error) { return nil, boom },
	}

	msg := LoadWindow(context.Background(), repo, time.Time{}, time.Time{}, 0)()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("msg type = %T, want ErrMsg", msg)
	}
	if !errors.Is(errMsg.Err, boom) {
		t.Fatalf("Err = %v, want %v", errMsg.Err, boom)
	}
}

func TestLoadRoster(t *testing.T) {
	repo := fakeRepo{members: []task.Member{{ID: "m1", Name: "Jeff"}}}

	msg := LoadRoster(context.Background(), repo)()
	loaded, ok := msg.(RosterLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want RosterLoadedMsg", msg)
	}
	if len(loaded.Members) != 1 || loaded.Members[0].Name != "Jeff" {
		t.Fatalf("Members = %v", loaded.Members)
	}
}

func TestSaveUpdate(t *testing.T) {
	start := "13:45"
	var got task.Update
	repo := fakeRepo{
		update: func(u task.Update) (*task.Task, error) {
			got = u
			return &task.Task{ID: u.TaskID, StartTime: *u.StartTime}, nil
		},
	}

	msg := SaveUpdate(context.Background(), repo, task.Update{TaskID: "a", StartTime: &start})()
	saved, ok := msg.(TaskSavedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want TaskSavedMsg", msg)
	}
	if got.TaskID != "a" {
		t.Fatalf("update TaskID = %q, want a", got.TaskID)
	}
	if saved.Task.StartTime != "13:45" {
		t.Fatalf("saved StartTime = %q", saved.Task.StartTime)
	}
	if len(saved.Fields) == 0 {
		t.Fatal("saved Fields is empty")
	}
}

func TestSaveUpdateNotFound(t *testing.T) {
	repo := fakeRepo{
		update: func(u task.Update) (*task.Task, error) { return nil, task.ErrTaskNotFound },
	}
	msg := SaveUpdate(context.Background(), repo, task.Update{TaskID: "gone"})()
	errMsg, ok := msg.(ErrMsg)
	if !ok || !errors.Is(errMsg.Err, task.ErrTaskNotFound) {
		t.Fatalf("msg = %#v, want ErrMsg wrapping ErrTaskNotFound", msg)
	}
}

func TestClearStatusAfter(t *testing.T) {
	msg := ClearStatusAfter(time.Millisecond)()
	if _, ok := msg.(ClearStatusMsg); !ok {
		t.Fatalf("msg type = %T, want ClearStatusMsg", msg)
	}
}

type reorderRepo struct {
	fakeRepo
	from, to int
	err      error
}

func (r *reorderRepo) ReorderMember(ctx context.Context, from, to int) error {
	r.from, r.to = from, to
	return r.err
}

func TestReorderMember(t *testing.T) {
	repo := &reorderRepo{}
	msg := ReorderMember(context.Background(), repo, 3, 0, "Jeff")()
	status, ok := msg.(StatusMsgCmd)
	if !ok {
		t.Fatalf("msg type = %T, want StatusMsgCmd", msg)
	}
	if repo.from != 3 || repo.to != 0 {
		t.Fatalf("ReorderMember(%d, %d), want (3, 0)", repo.from, repo.to)
	}
	if status.Msg != "Moved Jeff to position 1" {
		t.Fatalf("Msg = %q", status.Msg)
	}

	repo.err = task.ErrOutOfRange
	if _, ok := ReorderMember(context.Background(), repo, 9, 0, "Jeff")().(ErrMsg); !ok {
		t.Fatal("want ErrMsg when the repository fails")
	}
}

func TestWaitForConfig(t *testing.T) {
	updates := make(chan *config.Config, 1)
	cfg := config.Default()
	updates <- cfg

	msg, ok := WaitForConfig(updates)().(ConfigReloadedMsg)
	if !ok || msg.Config != cfg {
		t.Fatalf("got %#v, want ConfigReloadedMsg", msg)
	}

	close(updates)
	if msg := WaitForConfig(updates)(); msg != nil {
		t.Errorf("closed channel gave %#v, want nil", msg)
	}
}
