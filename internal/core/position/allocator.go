// Package position contains the pure ordering logic for sibling scopes.
// A scope is the set of entities sharing an immediate parent (columns of a
// board, cards of a column). Functions here compute position changes without
// side effects; the synchronization engine applies and persists them.
package position

import (
	"fmt"
	"sort"
)

// Entry is one sibling in a scope.
type Entry struct {
	ID       string
	Position int
}

// Change assigns a new position to an entity.
type Change struct {
	ID       string
	Position int
}

// Sort orders entries by position ascending. The sort is stable so that a
// duplicate position (which recomputation never produces, but a remote
// store might hand us) breaks the tie by insertion order.
func Sort(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Next returns the append position for a scope: max sibling position + 1,
// or 0 for an empty scope.
func Next(siblings []Entry) int {
	next := 0
	for _, e := range siblings {
		if e.Position >= next {
			next = e.Position + 1
		}
	}
	return next
}

// Reorder moves id to display index toIndex among its siblings and
// renumbers the whole scope to 0..N-1. It returns a change for every
// sibling whose position differs from its current value.
func Reorder(siblings []Entry, id string, toIndex int) ([]Change, error) {
	ordered := Sort(siblings)
	from := indexOf(ordered, id)
	if from < 0 {
		return nil, fmt.Errorf("entity %s is not part of the scope", id)
	}
	if toIndex < 0 || toIndex >= len(ordered) {
		return nil, fmt.Errorf("index %d out of range for scope of %d", toIndex, len(ordered))
	}

	moved := ordered[from]
	rest := append(append([]Entry{}, ordered[:from]...), ordered[from+1:]...)
	ordered = append(append(append([]Entry{}, rest[:toIndex]...), moved), rest[toIndex:]...)

	return renumber(ordered), nil
}

// Remove drops id from the scope and renumbers the remaining siblings to
// 0..N-2. Removing an id that is not present yields no changes.
func Remove(siblings []Entry, id string) []Change {
	ordered := Sort(siblings)
	i := indexOf(ordered, id)
	if i < 0 {
		return nil
	}
	return renumber(append(ordered[:i:i], ordered[i+1:]...))
}

// Insert places id into the scope at display index toIndex (or appends when
// toIndex is negative or past the end) and renumbers to 0..N. id must not
// already be a member of the scope.
func Insert(siblings []Entry, id string, toIndex int) ([]Change, error) {
	ordered := Sort(siblings)
	if indexOf(ordered, id) >= 0 {
		return nil, fmt.Errorf("entity %s is already part of the scope", id)
	}
	if toIndex < 0 || toIndex > len(ordered) {
		toIndex = len(ordered)
	}
	// Position -1 guarantees the inserted entity shows up in the changes
	// even when it lands at index equal to a stale position value.
	entry := Entry{ID: id, Position: -1}
	ordered = append(append(append([]Entry{}, ordered[:toIndex]...), entry), ordered[toIndex:]...)
	return renumber(ordered), nil
}

// renumber assigns 0..N-1 in order, reporting only actual changes.
func renumber(ordered []Entry) []Change {
	var changes []Change
	for i, e := range ordered {
		if e.Position != i {
			changes = append(changes, Change{ID: e.ID, Position: i})
		}
	}
	return changes
}

func indexOf(entries []Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
