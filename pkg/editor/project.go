// Package editor owns an object pool being edited: the current pool, the undo
// and redo snapshots of it and the selection with its navigation history.
//
// Every edit runs against a copy of the pool. The copy replaces the pool only
// when the edit succeeds, so a failed edit leaves no trace in the pool or in
// the history.
package editor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/logging"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/ritzau/vt-designer/pkg/render"
)

var (
	// ErrNothingToUndo is returned by Undo when the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Redo when the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// EventKind says what changed in a project.
type EventKind string

const (
	EventEdit     EventKind = "edit"
	EventUndo     EventKind = "undo"
	EventRedo     EventKind = "redo"
	EventSelect   EventKind = "select"
	EventSaved    EventKind = "saved"
	EventReloaded EventKind = "reloaded"
	EventResized  EventKind = "resized"
)

// Event describes one state change of a project.
type Event struct {
	Kind     EventKind         `json:"kind"`
	Label    string            `json:"label,omitempty"`
	Revision uint64            `json:"revision"`
	Selected objectid.ObjectID `json:"selected"`
	Dirty    bool              `json:"dirty"`
}

// Observer is told about every state change.
type Observer func(Event)

// Options tunes a project. Zero limits mean the defaults. Zero display sizes
// are the smallest that fit the pool.
type Options struct {
	UndoLimit      int
	SelectionLimit int
	SmartNaming    bool // Name new objects automatically
	MaskSize       int  // Pixels, MinMaskSize..MaxMaskSize of package render
	SoftKeyWidth   int
	SoftKeyHeight  int
}

// Project is an object pool under edit. A Project is not safe for concurrent
// use; callers serialize access.
type Project struct {
	graph     *graph.Graph
	saved     *graph.Graph // The pool as last loaded or saved
	history   editHistory
	selection selection
	revision  uint64
	smart     bool
	sizes     render.Sizes
	observer  Observer
}

// New starts editing g. The project is clean until the first edit.
func New(g *graph.Graph, opts Options) *Project {
	if opts.UndoLimit <= 0 {
		opts.UndoLimit = DefaultUndoLimit
	}
	if opts.SelectionLimit <= 0 {
		opts.SelectionLimit = DefaultSelectionLimit
	}
	return &Project{
		graph:     g,
		saved:     g,
		history:   editHistory{limit: opts.UndoLimit},
		selection: selection{limit: opts.SelectionLimit},
		smart:     opts.SmartNaming,
		sizes:     displaySizes(g, opts),
	}
}

// WithObserver sets the observer and returns p.
func (p *Project) WithObserver(fn Observer) *Project {
	p.observer = fn
	return p
}

// Graph returns the current pool. It must not be modified; edits go through
// Apply or the typed commands.
func (p *Project) Graph() *graph.Graph {
	return p.graph
}

// Revision increases with every change of the pool.
func (p *Project) Revision() uint64 {
	return p.revision
}

// Dirty reports whether the pool differs from the one last loaded or saved.
func (p *Project) Dirty() bool {
	return p.graph != p.saved && !p.graph.Equal(p.saved)
}

// MarkSaved records the current pool as saved.
func (p *Project) MarkSaved() {
	p.saved = p.graph
	p.notify(EventSaved, "")
}

// Reload replaces the pool with g, as when the project file changed on disk.
// History is dropped and the project is clean afterwards.
func (p *Project) Reload(g *graph.Graph) {
	p.graph, p.saved = g, g
	p.history.clear()
	p.revision++
	p.selection.prune(p.exists)
	logging.Debug("project reloaded", "objects", g.Len(), "revision", p.revision)
	p.notify(EventReloaded, "")
}

// Apply runs edit against a copy of the pool. On success the copy becomes
// the pool and the previous pool goes on the undo stack; an edit that changes
// nothing is not recorded. On failure nothing changes.
func (p *Project) Apply(label string, edit func(*graph.Graph) error) error {
	next := p.graph.Clone()
	if err := edit(next); err != nil {
		logging.Debug("edit rejected", "edit", label, "error", err)
		return err
	}
	if next.Equal(p.graph) {
		return nil
	}

	p.history.push(snapshot{label: label, graph: p.graph})
	p.graph = next
	p.revision++
	p.selection.prune(p.exists)
	logging.Debug("edit applied", "edit", label, "revision", p.revision)
	p.notify(EventEdit, label)
	return nil
}

// CanUndo reports whether there is an edit to undo.
func (p *Project) CanUndo() bool {
	return len(p.history.undo) > 0
}

// CanRedo reports whether there is an undone edit to redo.
func (p *Project) CanRedo() bool {
	return len(p.history.redo) > 0
}

// UndoLabel names the edit Undo would revert, or "" when there is none.
func (p *Project) UndoLabel() string {
	if !p.CanUndo() {
		return ""
	}
	return p.history.undo[len(p.history.undo)-1].label
}

// RedoLabel names the edit Redo would reapply, or "" when there is none.
func (p *Project) RedoLabel() string {
	if !p.CanRedo() {
		return ""
	}
	return p.history.redo[len(p.history.redo)-1].label
}

// Undo restores the pool as it was before the last edit.
func (p *Project) Undo() error {
	h := &p.history
	if len(h.undo) == 0 {
		return ErrNothingToUndo
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, snapshot{label: top.label, graph: p.graph})
	p.restore(top.graph)
	logging.Debug("edit undone", "edit", top.label, "revision", p.revision)
	p.notify(EventUndo, top.label)
	return nil
}

// Redo reapplies the last undone edit.
func (p *Project) Redo() error {
	h := &p.history
	if len(h.redo) == 0 {
		return ErrNothingToRedo
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, snapshot{label: top.label, graph: p.graph})
	p.restore(top.graph)
	logging.Debug("edit redone", "edit", top.label, "revision", p.revision)
	p.notify(EventRedo, top.label)
	return nil
}

func (p *Project) restore(g *graph.Graph) {
	p.graph = g
	p.revision++
	p.selection.prune(p.exists)
}

// Selected returns the id of the selected object, or NULL.
func (p *Project) Selected() objectid.ObjectID {
	return p.idOf(p.selection.current)
}

// Select makes id the selected object. NULL clears the selection.
func (p *Project) Select(id objectid.ObjectID) error {
	uid := uuid.Nil
	if !id.IsNull() {
		obj, err := p.graph.Resolve(id)
		if err != nil {
			return err
		}
		uid = obj.UID
	}
	if p.selection.set(uid) {
		p.notify(EventSelect, "")
	}
	return nil
}

// NavigateBack returns to the previous selection. It does nothing when there
// is none.
func (p *Project) NavigateBack() {
	if p.selection.goBack() {
		p.notify(EventSelect, "")
	}
}

// NavigateForward returns to the selection NavigateBack left. It does nothing
// when there is none.
func (p *Project) NavigateForward() {
	if p.selection.goForward() {
		p.notify(EventSelect, "")
	}
}

// BackHistory returns the ids NavigateBack would visit, nearest last.
func (p *Project) BackHistory() []objectid.ObjectID {
	return p.ids(p.selection.back)
}

// ForwardHistory returns the ids NavigateForward would visit, nearest last.
func (p *Project) ForwardHistory() []objectid.ObjectID {
	return p.ids(p.selection.forward)
}

func (p *Project) ids(uids []uuid.UUID) []objectid.ObjectID {
	out := make([]objectid.ObjectID, 0, len(uids))
	for _, uid := range uids {
		out = append(out, p.idOf(uid))
	}
	return out
}

func (p *Project) idOf(uid uuid.UUID) objectid.ObjectID {
	if uid == uuid.Nil {
		return objectid.Null
	}
	id, ok := p.graph.FindUID(uid)
	if !ok {
		return objectid.Null
	}
	return id
}

func (p *Project) exists(uid uuid.UUID) bool {
	_, ok := p.graph.FindUID(uid)
	return ok
}

func (p *Project) notify(kind EventKind, label string) {
	if p.observer == nil {
		return
	}
	p.observer(Event{
		Kind:     kind,
		Label:    label,
		Revision: p.revision,
		Selected: p.Selected(),
		Dirty:    p.Dirty(),
	})
}

// String summarizes the project state for logs.
func (p *Project) String() string {
	state := "clean"
	if p.Dirty() {
		state = "dirty"
	}
	return fmt.Sprintf("%d objects, %s, revision %d, %d undo, %d redo",
		p.graph.Len(), state, p.revision, len(p.history.undo), len(p.history.redo))
}
