// Package team models the scheduler's resource rows: one group per team
// member, each holding one or more instance rows.
package team

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/javiermolinar/crewgrid/internal/layout"
	"github.com/javiermolinar/crewgrid/internal/task"
)

var (
	ErrGroupNotFound    = errors.New("resource group not found")
	ErrInstanceNotFound = errors.New("resource instance not found")
	ErrLastInstance     = errors.New("cannot remove the last instance of a group")
	ErrFirstInstance    = errors.New("cannot remove the first instance of a group")
)

// Group is a team member's block of rows.
type Group struct {
	ID       string
	Name     string
	Expanded bool
}

// Instance is one row of a group. Tasks are matched to it by Assignee.
type Instance struct {
	ID           string
	GroupID      string
	Name         string
	Number       int
	InstanceName string
}

// GroupView is a group together with its instances, in row order.
type GroupView struct {
	Group
	Instances []Instance
}

// Roster stores groups and a flat list of instances that point back to
// their group by GroupID.
type Roster struct {
	groups    []Group
	instances []Instance
}

// FromMembers builds a roster with one expanded group and one instance per
// member, in member order.
func FromMembers(members []task.Member) *Roster {
	r := &Roster{}
	for _, m := range members {
		r.AddGroup(m)
	}
	return r
}

// AddGroup appends a group for m with its first instance.
func (r *Roster) AddGroup(m task.Member) Group {
	g := Group{ID: m.ID, Name: m.Name, Expanded: true}
	r.groups = append(r.groups, g)
	r.instances = append(r.instances, newInstance(g, 1))
	return g
}

func newInstance(g Group, n int) Instance {
	return Instance{
		ID:           g.ID + "-" + strconv.Itoa(n),
		GroupID:      g.ID,
		Name:         g.Name,
		Number:       n,
		InstanceName: fmt.Sprintf("%s #%d", g.Name, n),
	}
}

// Assignee is the task assignee this row shows. The first row carries the
// member's own tasks; later rows carry tasks assigned to their InstanceName.
func (in Instance) Assignee() string {
	if in.Number == 1 {
		return in.Name
	}
	return in.InstanceName
}

func (r *Roster) groupIndex(id string) int {
	return slices.IndexFunc(r.groups, func(g Group) bool { return g.ID == id })
}

func (r *Roster) instancesOf(groupID string) []Instance {
	var out []Instance
	for _, in := range r.instances {
		if in.GroupID == groupID {
			out = append(out, in)
		}
	}
	return out
}

// Len returns the number of groups.
func (r *Roster) Len() int {
	return len(r.groups)
}

// Group returns a group by ID.
func (r *Roster) Group(id string) (GroupView, error) {
	i := r.groupIndex(id)
	if i < 0 {
		return GroupView{}, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
	}
	return GroupView{Group: r.groups[i], Instances: r.instancesOf(id)}, nil
}

// Groups returns every group with its instances, in display order.
func (r *Roster) Groups() []GroupView {
	out := make([]GroupView, len(r.groups))
	for i, g := range r.groups {
		out[i] = GroupView{Group: g, Instances: r.instancesOf(g.ID)}
	}
	return out
}

// AddInstance appends a new row to a group. Numbers are never reused while
// a higher-numbered instance exists.
func (r *Roster) AddInstance(groupID string) (Instance, error) {
	i := r.groupIndex(groupID)
	if i < 0 {
		return Instance{}, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}
	n := 0
	for _, in := range r.instancesOf(groupID) {
		n = max(n, in.Number)
	}
	in := newInstance(r.groups[i], n+1)
	r.instances = append(r.instances, in)
	return in, nil
}

// RemoveInstance deletes a row. The first row holds the member's own tasks
// and is kept, as is the last row of a group.
func (r *Roster) RemoveInstance(groupID, instanceID string) error {
	if r.groupIndex(groupID) < 0 {
		return fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}
	if len(r.instancesOf(groupID)) <= 1 {
		return ErrLastInstance
	}
	i := slices.IndexFunc(r.instances, func(in Instance) bool {
		return in.GroupID == groupID && in.ID == instanceID
	})
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrInstanceNotFound, instanceID)
	}
	if r.instances[i].Number == 1 {
		return ErrFirstInstance
	}
	r.instances = slices.Delete(r.instances, i, i+1)
	return nil
}

// ToggleExpanded flips a group's expanded flag and returns the new value.
func (r *Roster) ToggleExpanded(groupID string) (bool, error) {
	i := r.groupIndex(groupID)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}
	r.groups[i].Expanded = !r.groups[i].Expanded
	return r.groups[i].Expanded, nil
}

// Move reorders groups, moving the one at from to index to.
func (r *Roster) Move(from, to int) error {
	n := len(r.groups)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d to %d with %d groups", task.ErrOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}
	g := r.groups[from]
	r.groups = slices.Delete(r.groups, from, from+1)
	r.groups = slices.Insert(r.groups, to, g)
	return nil
}

// Rows returns the instance rows to draw, skipping collapsed groups.
func (r *Roster) Rows() []layout.Row {
	var rows []layout.Row
	for _, g := range r.groups {
		if !g.Expanded {
			continue
		}
		for _, in := range r.instancesOf(g.ID) {
			rows = append(rows, layout.Row{Key: in.ID, Label: in.InstanceName, Assignee: in.Assignee()})
		}
	}
	return rows
}

// DuplicateNames returns the display names shared by more than one group.
// Assignees are matched by name, so tasks for these names appear under
// every group that carries it.
func (r *Roster) DuplicateNames() []string {
	seen := make(map[string]int, len(r.groups))
	var dups []string
	for _, g := range r.groups {
		seen[g.Name]++
		if seen[g.Name] == 2 {
			dups = append(dups, g.Name)
		}
	}
	return dups
}

// DailyCounts returns, for each date of window, how many tasks on any of
// the group's rows cover it. It feeds the group summary row.
func (g GroupView) DailyCounts(tasks []*task.Task, window []time.Time) []int {
	assignees := make(map[string]bool, len(g.Instances)+1)
	assignees[g.Name] = true
	for _, in := range g.Instances {
		assignees[in.Assignee()] = true
	}
	var own []*task.Task
	for _, t := range tasks {
		if assignees[t.Assignee] {
			own = append(own, t)
		}
	}
	counts := make([]int, len(window))
	for i, d := range window {
		counts[i] = layout.CountForDate(own, d)
	}
	return counts
}
