package editor

import (
	"errors"
	"testing"

	"github.com/ritzau/vt-designer/pkg/configure"
	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newProject(t *testing.T, opts Options) *Project {
	t.Helper()
	return New(graph.New(model.Version6), opts)
}

func insert(t *testing.T, p *Project, id objectid.ObjectID, typ model.ObjectType) {
	t.Helper()
	obj, err := model.New(id, typ)
	require.NoError(t, err)
	require.NoError(t, p.Insert(obj))
}

func child(id objectid.ObjectID) model.Reference {
	return model.Reference{Target: id, Role: model.RoleChild}
}

func TestContainmentScenario(t *testing.T) {
	p := newProject(t, Options{})
	insert(t, p, 10, model.Container)
	insert(t, p, 11, model.Button)

	require.NoError(t, p.AddReference(10, child(11)))
	assert.ErrorIs(t, p.AddReference(11, child(10)), graph.ErrCycleDetected)

	err := p.Remove(11, false)
	var referenced *graph.ReferencedElsewhereError
	require.True(t, errors.As(err, &referenced))
	assert.Equal(t, []objectid.ObjectID{10}, referenced.Referrers)

	require.NoError(t, p.Remove(11, true))
	container, err := p.Graph().Resolve(10)
	require.NoError(t, err)
	assert.False(t, container.RefersTo(11))
	assert.False(t, p.Graph().Has(11))
}

func TestChangeIDScenario(t *testing.T) {
	p := newProject(t, Options{})
	insert(t, p, 10, model.Container)
	insert(t, p, 11, model.Button)
	require.NoError(t, p.AddReference(10, child(11)))
	require.NoError(t, p.Select(11))

	require.NoError(t, p.ChangeID(11, 20))

	button, err := p.Graph().Resolve(20)
	require.NoError(t, err)
	assert.Equal(t, model.Button, button.Type())
	container, _ := p.Graph().Resolve(10)
	assert.True(t, container.RefersTo(20))
	assert.False(t, container.RefersTo(11))
	assert.Equal(t, objectid.ObjectID(20), p.Selected(), "selection follows the object")

	require.NoError(t, p.Undo())
	assert.Equal(t, objectid.ObjectID(11), p.Selected())
	require.NoError(t, p.Redo())
	assert.Equal(t, objectid.ObjectID(20), p.Selected())

	assert.ErrorIs(t, p.ChangeID(20, 10), graph.ErrIDInUse)
	assert.ErrorIs(t, p.ChangeID(99, 30), graph.ErrIDNotFound)
}

func TestSelectionNavigation(t *testing.T) {
	p := newProject(t, Options{})
	insert(t, p, 10, model.Container)
	insert(t, p, 11, model.Button)

	require.NoError(t, p.Select(10))
	require.NoError(t, p.Select(11))
	p.NavigateBack()
	assert.Equal(t, objectid.ObjectID(10), p.Selected())
	p.NavigateForward()
	assert.Equal(t, objectid.ObjectID(11), p.Selected())

	p.NavigateForward()
	assert.Equal(t, objectid.ObjectID(11), p.Selected(), "no-op at the end")

	p.NavigateBack()
	p.NavigateBack()
	assert.Equal(t, objectid.Null, p.Selected())
	p.NavigateBack()
	assert.Equal(t, objectid.Null, p.Selected(), "no-op at the start")

	assert.ErrorIs(t, p.Select(99), graph.ErrIDNotFound)
}

func TestSelectionSameAndNull(t *testing.T) {
	p := newProject(t, Options{})
	insert(t, p, 10, model.Container)
	insert(t, p, 11, model.Button)

	require.NoError(t, p.Select(10))
	require.NoError(t, p.Select(10))
	assert.Len(t, p.BackHistory(), 1, "reselecting does not grow the history")

	require.NoError(t, p.Select(11))
	p.NavigateBack()
	require.Len(t, p.ForwardHistory(), 1)

	require.NoError(t, p.Select(objectid.Null))
	assert.Equal(t, objectid.Null, p.Selected())
	assert.Empty(t, p.ForwardHistory())
	assert.Equal(t, []objectid.ObjectID{objectid.Null}, p.BackHistory(), "clearing is not recorded")
}

func TestSelectionLimit(t *testing.T) {
	p := newProject(t, Options{SelectionLimit: 3})
	for id := range objectid.ObjectID(6) {
		insert(t, p, id, model.Container)
		require.NoError(t, p.Select(id))
	}
	assert.Equal(t, []objectid.ObjectID{2, 3, 4}, p.BackHistory())
}

func TestSelectionIndependentOfUndo(t *testing.T) {
	p := newProject(t, Options{})
	insert(t, p, 10, model.Container)
	insert(t, p, 11, model.Button)
	require.NoError(t, p.Select(10))
	require.NoError(t, p.Select(11))

	require.NoError(t, p.Undo())
	assert.Equal(t, objectid.Null, p.Selected(), "the selected object no longer exists")
	assert.Equal(t, []objectid.ObjectID{objectid.Null, 10}, p.BackHistory())

	require.NoError(t, p.Redo())
	assert.Equal(t, objectid.Null, p.Selected())

	require.NoError(t, p.Select(10))
	require.NoError(t, p.Configure(10, configure.Change{Attr: "width", Value: 50}))
	require.NoError(t, p.Undo())
	assert.Equal(t, objectid.ObjectID(10), p.Selected(), "undo leaves a surviving selection alone")
}

func TestUndoRedo(t *testing.T) {
	p := newProject(t, Options{})
	assert.ErrorIs(t, p.Undo(), ErrNothingToUndo)
	assert.ErrorIs(t, p.Redo(), ErrNothingToRedo)

	id, err := p.AddObject(model.Container)
	require.NoError(t, err)
	assert.Equal(t, "add Container", p.UndoLabel())

	require.NoError(t, p.Undo())
	assert.False(t, p.Graph().Has(id))
	assert.True(t, p.CanRedo())
	assert.Equal(t, "add Container", p.RedoLabel())

	require.NoError(t, p.Redo())
	assert.True(t, p.Graph().Has(id))

	require.NoError(t, p.Undo())
	_, err = p.AddObject(model.Button)
	require.NoError(t, err)
	assert.False(t, p.CanRedo(), "a new edit drops the redo branch")
	assert.ErrorIs(t, p.Redo(), ErrNothingToRedo)
}

func TestUndoLimit(t *testing.T) {
	p := newProject(t, Options{UndoLimit: 3})
	for range 5 {
		_, err := p.AddObject(model.Container)
		require.NoError(t, err)
	}
	for range 3 {
		require.NoError(t, p.Undo())
	}
	assert.ErrorIs(t, p.Undo(), ErrNothingToUndo)
	assert.Equal(t, 2, p.Graph().Len(), "the oldest edits cannot be undone")
}

func TestFailedEditLeavesNoTrace(t *testing.T) {
	p := newProject(t, Options{})
	insert(t, p, 10, model.Container)
	before, revision := p.Graph(), p.Revision()

	err := p.Configure(10, configure.Change{Attr: "width", Value: 50}, configure.Change{Attr: "colour", Value: 3})
	assert.ErrorIs(t, err, graph.ErrValidationFailed)
	assert.Same(t, before, p.Graph())
	assert.Equal(t, revision, p.Revision())
	assert.Equal(t, "insert 10", p.UndoLabel())

	require.NoError(t, p.Apply("nothing", func(*graph.Graph) error { return nil }))
	assert.Equal(t, "insert 10", p.UndoLabel(), "edits without effect are not recorded")
}

func TestConfigure(t *testing.T) {
	p := newProject(t, Options{})
	insert(t, p, 1, model.OutputString)
	insert(t, p, 2, model.FontAttributes)

	require.NoError(t, p.Configure(1,
		configure.Change{Attr: "value", Value: "Speed"},
		configure.Change{Attr: "font_attributes", Value: 2},
	))

	obj, _ := p.Graph().Resolve(1)
	assert.Equal(t, "Speed", obj.Attrs.(*model.OutputStringAttrs).Value)
	assert.Equal(t, objectid.ObjectID(2), obj.Ref(model.RoleFont))

	assert.ErrorIs(t, p.Configure(1, configure.Change{Attr: "font_attributes", Value: 1}), graph.ErrTypeNotAllowed)
	assert.ErrorIs(t, p.Configure(9, configure.Change{Attr: "value", Value: "x"}), graph.ErrIDNotFound)
}

func TestRename(t *testing.T) {
	p := newProject(t, Options{})
	insert(t, p, 1, model.DataMask)
	insert(t, p, 2, model.DataMask)

	require.NoError(t, p.Rename(1, "Main Screen"))
	name, _ := p.Graph().Name(1)
	assert.Equal(t, "Main Screen", name)

	require.NoError(t, p.Rename(1, "Main Screen"), "keeping the own name is allowed")

	err := p.Rename(2, "Main Screen")
	assert.ErrorIs(t, err, graph.ErrValidationFailed)
	assert.Contains(t, err.Error(), "Main Screen 2")

	assert.ErrorIs(t, p.Rename(2, "   "), graph.ErrValidationFailed)
	assert.ErrorIs(t, p.Rename(7, "Nope"), graph.ErrIDNotFound)

	require.NoError(t, p.Undo())
	_, named := p.Graph().Name(1)
	assert.False(t, named, "renames are undoable")

	require.NoError(t, p.Redo())
	require.NoError(t, p.ClearName(1))
	_, named = p.Graph().Name(1)
	assert.False(t, named)
}

func TestSmartNaming(t *testing.T) {
	p := newProject(t, Options{SmartNaming: true})
	first, err := p.AddObject(model.DataMask)
	require.NoError(t, err)
	second, err := p.AddObject(model.DataMask)
	require.NoError(t, err)

	name, _ := p.Graph().Name(first)
	assert.Equal(t, "Main Screen", name)
	name, _ = p.Graph().Name(second)
	assert.Equal(t, "Data Screen 2", name)

	plain := newProject(t, Options{})
	id, err := plain.AddObject(model.DataMask)
	require.NoError(t, err)
	_, named := plain.Graph().Name(id)
	assert.False(t, named)

	require.NoError(t, plain.Insert(model.Object{ID: 5, Attrs: &model.KeyAttrs{}}))
	n, err := plain.NameAll()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDirtyAndObserver(t *testing.T) {
	var events []Event
	p := newProject(t, Options{}).WithObserver(func(e Event) { events = append(events, e) })
	assert.False(t, p.Dirty())

	id, err := p.AddObject(model.Container)
	require.NoError(t, err)
	assert.True(t, p.Dirty())

	p.MarkSaved()
	assert.False(t, p.Dirty())

	require.NoError(t, p.Select(id))
	require.NoError(t, p.Rename(id, "Body"))
	require.NoError(t, p.Undo())
	assert.False(t, p.Dirty(), "undoing back to the saved pool is clean")

	kinds := make([]EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []EventKind{EventEdit, EventSaved, EventSelect, EventEdit, EventUndo}, kinds)
	assert.Equal(t, id, events[2].Selected)
	assert.True(t, events[3].Dirty)

	reloaded := graph.New(model.Version6)
	p.Reload(reloaded)
	assert.False(t, p.CanUndo())
	assert.False(t, p.Dirty())
	assert.Equal(t, objectid.Null, p.Selected())
	assert.Equal(t, EventReloaded, events[len(events)-1].Kind)
}

func TestDirtyAfterReferenceRoundTrip(t *testing.T) {
	p := newProject(t, Options{})
	insert(t, p, 1, model.Container)
	insert(t, p, 2, model.OutputString)
	p.MarkSaved()

	require.NoError(t, p.AddReference(1, child(2)))
	assert.True(t, p.Dirty())
	require.NoError(t, p.RemoveReference(1, model.RoleChild, 0))
	assert.False(t, p.Dirty(), "removing the only reference restores the saved pool")
}

func TestUndoRoundTrip(t *testing.T) {
	types := model.SupportedTypes()
	roles := []model.Role{model.RoleChild, model.RoleFont, model.RoleLine, model.RoleFill, model.RoleVariable, model.RolePointer}

	rapid.Check(t, func(t *rapid.T) {
		p := New(graph.New(model.Version6), Options{})
		for range rapid.IntRange(0, 8).Draw(t, "seed") {
			_, _ = p.AddObject(rapid.SampledFrom(types).Draw(t, "seed type"))
		}
		p.history.clear()
		start := p.Graph().Clone()

		pick := func(label string) objectid.ObjectID {
			return objectid.ObjectID(rapid.IntRange(0, 10).Draw(t, label))
		}
		applied := 0
		for range rapid.IntRange(1, DefaultUndoLimit).Draw(t, "steps") {
			before := p.Revision()
			var err error
			switch rapid.IntRange(0, 5).Draw(t, "op") {
			case 0:
				_, err = p.AddObject(rapid.SampledFrom(types).Draw(t, "type"))
			case 1:
				err = p.AddReference(pick("from"), model.Reference{Target: pick("to"), Role: rapid.SampledFrom(roles).Draw(t, "role")})
			case 2:
				err = p.Remove(pick("remove"), rapid.Bool().Draw(t, "cascade"))
			case 3:
				err = p.ChangeID(pick("old"), pick("new"))
			case 4:
				err = p.Rename(pick("rename"), rapid.SampledFrom([]string{"A", "B", "C"}).Draw(t, "label"))
			case 5:
				err = p.Configure(pick("configure"), configure.Change{Attr: "background_colour", Value: rapid.IntRange(0, 255).Draw(t, "colour")})
			}
			if err == nil && p.Revision() != before {
				applied++
			}
			if err := p.Graph().Validate(); err != nil {
				t.Fatalf("invariants broken: %v", err)
			}
		}

		for range applied {
			if err := p.Undo(); err != nil {
				t.Fatalf("undo: %v", err)
			}
		}
		if !p.Graph().Equal(start) {
			t.Fatalf("undoing %d edits did not restore the pool", applied)
		}
		if err := p.Undo(); !errors.Is(err, ErrNothingToUndo) {
			t.Fatalf("expected empty undo stack, got %v", err)
		}
	})
}
