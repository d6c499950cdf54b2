package editor

import (
	"slices"

	"github.com/google/uuid"
	"github.com/ritzau/vt-designer/pkg/graph"
)

// Default history bounds.
const (
	DefaultUndoLimit      = 10
	DefaultSelectionLimit = 20
)

// snapshot is one state of the pool together with the edit that produced it.
type snapshot struct {
	label string
	graph *graph.Graph
}

// editHistory keeps whole-pool snapshots. Snapshots are never mutated once
// stored, so restoring one is a pointer swap.
type editHistory struct {
	limit int
	undo  []snapshot
	redo  []snapshot
}

// push records the state before an edit. The oldest entry goes when the
// stack is full. Any redo branch is lost.
func (h *editHistory) push(s snapshot) {
	h.undo = append(h.undo, s)
	if len(h.undo) > h.limit {
		h.undo = slices.Delete(h.undo, 0, len(h.undo)-h.limit)
	}
	h.redo = nil
}

func (h *editHistory) clear() {
	h.undo, h.redo = nil, nil
}

// selection is the selected object and its navigation stacks. Objects are
// tracked by UID so an id change does not lose them. uuid.Nil means nothing
// is selected.
type selection struct {
	limit   int
	current uuid.UUID
	back    []uuid.UUID
	forward []uuid.UUID
}

// set changes the selection. Selecting nothing drops the forward stack
// without recording the previous selection.
func (s *selection) set(uid uuid.UUID) bool {
	if uid == s.current {
		return false
	}
	s.forward = nil
	if uid != uuid.Nil {
		s.back = append(s.back, s.current)
		if len(s.back) > s.limit {
			s.back = slices.Delete(s.back, 0, len(s.back)-s.limit)
		}
	}
	s.current = uid
	return true
}

func (s *selection) goBack() bool {
	if len(s.back) == 0 {
		return false
	}
	s.forward = append(s.forward, s.current)
	s.current, s.back = s.back[len(s.back)-1], s.back[:len(s.back)-1]
	return true
}

func (s *selection) goForward() bool {
	if len(s.forward) == 0 {
		return false
	}
	s.back = append(s.back, s.current)
	s.current, s.forward = s.forward[len(s.forward)-1], s.forward[:len(s.forward)-1]
	return true
}

// prune forgets objects that no longer exist. A vanished current selection
// becomes nothing. Reports whether the current selection was lost.
func (s *selection) prune(exists func(uuid.UUID) bool) bool {
	gone := func(uid uuid.UUID) bool { return uid != uuid.Nil && !exists(uid) }
	s.back = slices.DeleteFunc(s.back, gone)
	s.forward = slices.DeleteFunc(s.forward, gone)
	if gone(s.current) {
		s.current = uuid.Nil
		return true
	}
	return false
}
