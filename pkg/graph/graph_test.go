package graph

import (
	"errors"
	"testing"

	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insert(t *testing.T, g *Graph, id objectid.ObjectID, typ model.ObjectType) {
	t.Helper()
	obj, err := model.New(id, typ)
	require.NoError(t, err)
	require.NoError(t, g.Insert(obj))
}

func child(target objectid.ObjectID) model.Reference {
	return model.Reference{Target: target, Role: model.RoleChild}
}

// container 10 holding button 11
func containerWithButton(t *testing.T) *Graph {
	t.Helper()
	g := New(model.Version6)
	insert(t, g, 10, model.Container)
	insert(t, g, 11, model.Button)
	require.NoError(t, g.AddReference(10, child(11)))
	return g
}

func TestInsert_DuplicateID(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 10, model.Container)

	obj, err := model.New(10, model.Button)
	require.NoError(t, err)
	err = g.Insert(obj)

	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, model.Container, mustResolve(t, g, 10).Type())
}

func TestInsert_RejectsNullAndUnsupported(t *testing.T) {
	g := New(model.Version6)

	obj, err := model.New(objectid.Null, model.Container)
	require.NoError(t, err)
	assert.ErrorIs(t, g.Insert(obj), ErrValidationFailed)

	assert.ErrorIs(t, g.Insert(model.Object{ID: 3}), ErrValidationFailed)
	assert.Equal(t, 0, g.Len())
}

func TestInsert_ChecksReferences(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.OutputString)

	obj, err := model.New(2, model.Container)
	require.NoError(t, err)
	obj.Refs = []model.Reference{child(1), child(99)}

	assert.ErrorIs(t, g.Insert(obj), ErrIDNotFound)
	assert.False(t, g.Has(2))

	obj.Refs = []model.Reference{child(2)}
	assert.ErrorIs(t, g.Insert(obj), ErrCycleDetected)
	assert.False(t, g.Has(2))
}

func TestInsert_ReplacesDuplicateUID(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.Container)
	first := mustResolve(t, g, 1)

	copied := first.Clone()
	copied.ID = 2
	require.NoError(t, g.Insert(copied))

	assert.NotEqual(t, first.UID, mustResolve(t, g, 2).UID)
}

func TestAdd_AllocatesSmallestFreeID(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 0, model.WorkingSet)
	insert(t, g, 2, model.DataMask)

	id, err := g.Add(model.Container)
	require.NoError(t, err)
	assert.Equal(t, objectid.ObjectID(1), id)

	id, err = g.Add(model.Button)
	require.NoError(t, err)
	assert.Equal(t, objectid.ObjectID(3), id)

	_, err = g.Add(model.Animation)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestAddReference_CycleDetected(t *testing.T) {
	g := containerWithButton(t)

	err := g.AddReference(11, child(10))

	assert.ErrorIs(t, err, ErrCycleDetected)
	var cycle *CycleDetectedError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, objectid.ObjectID(11), cycle.From)
	assert.Equal(t, objectid.ObjectID(10), cycle.To)
	assert.Empty(t, mustResolve(t, g, 11).Refs, "failed call must not change the graph")
}

func TestAddReference_SelfContainment(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 10, model.Container)

	assert.ErrorIs(t, g.AddReference(10, child(10)), ErrCycleDetected)
}

func TestAddReference_TransitiveCycle(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.DataMask)
	insert(t, g, 2, model.Container)
	insert(t, g, 3, model.Container)
	insert(t, g, 4, model.Button)
	require.NoError(t, g.AddReference(2, child(3)))
	require.NoError(t, g.AddReference(3, child(4)))

	assert.ErrorIs(t, g.AddReference(4, child(2)), ErrCycleDetected)
	assert.NoError(t, g.AddReference(1, child(2)))
	assert.True(t, g.Contains(1, 4))
	assert.False(t, g.Contains(4, 1))
}

func TestAddReference_TypeNotAllowed(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.Container)
	insert(t, g, 2, model.FontAttributes)
	insert(t, g, 3, model.OutputString)

	err := g.AddReference(1, child(2))
	assert.ErrorIs(t, err, ErrTypeNotAllowed)

	err = g.AddReference(3, model.Reference{Target: 1, Role: model.RoleFont})
	assert.ErrorIs(t, err, ErrTypeNotAllowed)

	assert.NoError(t, g.AddReference(3, model.Reference{Target: 2, Role: model.RoleFont}))
}

func TestAddReference_IDNotFound(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.Container)

	assert.ErrorIs(t, g.AddReference(1, child(5)), ErrIDNotFound)
	assert.ErrorIs(t, g.AddReference(5, child(1)), ErrIDNotFound)
	assert.ErrorIs(t, g.AddReference(1, child(objectid.Null)), ErrIDNotFound)
}

func TestAddReference_SingleValuedRoleIsReplaced(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.OutputString)
	insert(t, g, 2, model.FontAttributes)
	insert(t, g, 3, model.FontAttributes)

	require.NoError(t, g.AddReference(1, model.Reference{Target: 2, Role: model.RoleFont}))
	require.NoError(t, g.AddReference(1, model.Reference{Target: 3, Role: model.RoleFont}))

	obj := mustResolve(t, g, 1)
	assert.Len(t, obj.Refs, 1)
	assert.Equal(t, objectid.ObjectID(3), obj.Ref(model.RoleFont))
}

func TestAddReference_MacroEvents(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.Button)
	insert(t, g, 2, model.Macro)

	err := g.AddReference(1, model.Reference{Target: 2, Role: model.RoleMacro, Event: model.OnActivate})
	assert.ErrorIs(t, err, ErrValidationFailed)

	err = g.AddReference(1, model.Reference{Target: 2, Role: model.RoleMacro, Event: model.OnKeyPress})
	assert.NoError(t, err)

	insert(t, g, 3, model.Container)
	err = g.AddReference(3, model.Reference{Target: 1, Role: model.RoleChild, Event: model.OnShow})
	assert.ErrorIs(t, err, ErrValidationFailed, "only macro references carry events")
}

func TestAddReference_PointerTargetMustFitParents(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.SoftKeyMask)
	insert(t, g, 2, model.ObjectPointer)
	insert(t, g, 3, model.Key)
	insert(t, g, 4, model.OutputString)
	require.NoError(t, g.AddReference(1, child(2)))

	// a soft key mask may hold keys but not strings
	assert.NoError(t, g.AddReference(2, model.Reference{Target: 3, Role: model.RolePointer}))
	err := g.AddReference(2, model.Reference{Target: 4, Role: model.RolePointer})
	assert.ErrorIs(t, err, ErrTypeNotAllowed)

	// a data mask cannot adopt a pointer that shows a key
	insert(t, g, 5, model.DataMask)
	assert.ErrorIs(t, g.AddReference(5, child(2)), ErrTypeNotAllowed)
}

func pointerTo(target objectid.ObjectID) model.Reference {
	return model.Reference{Target: target, Role: model.RolePointer}
}

func TestAddReference_PointerChainTargetMustFitParents(t *testing.T) {
	// data mask 1 -> pointer 2 -> pointer 3 -> key 4, built in every order
	steps := map[string][]func(g *Graph) error{
		"top down": {
			func(g *Graph) error { return g.AddReference(1, child(2)) },
			func(g *Graph) error { return g.AddReference(2, pointerTo(3)) },
			func(g *Graph) error { return g.AddReference(3, pointerTo(4)) },
		},
		"bottom up": {
			func(g *Graph) error { return g.AddReference(3, pointerTo(4)) },
			func(g *Graph) error { return g.AddReference(2, pointerTo(3)) },
			func(g *Graph) error { return g.AddReference(1, child(2)) },
		},
		"middle last": {
			func(g *Graph) error { return g.AddReference(1, child(2)) },
			func(g *Graph) error { return g.AddReference(3, pointerTo(4)) },
			func(g *Graph) error { return g.AddReference(2, pointerTo(3)) },
		},
	}

	for name, edits := range steps {
		t.Run(name, func(t *testing.T) {
			g := New(model.Version6)
			insert(t, g, 1, model.DataMask)
			insert(t, g, 2, model.ObjectPointer)
			insert(t, g, 3, model.ObjectPointer)
			insert(t, g, 4, model.Key)

			require.NoError(t, edits[0](g))
			require.NoError(t, edits[1](g))
			before := g.Clone()

			err := edits[2](g)
			var notAllowed *TypeNotAllowedError
			require.ErrorAs(t, err, &notAllowed)
			assert.Equal(t, objectid.ObjectID(1), notAllowed.From)
			assert.Equal(t, objectid.ObjectID(4), notAllowed.To)
			assert.True(t, g.Equal(before), "a rejected edit leaves the graph unchanged")
			assert.NoError(t, g.Validate())
		})
	}
}

func TestAddReference_PointerChainInLegalParent(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.SoftKeyMask)
	insert(t, g, 2, model.ObjectPointer)
	insert(t, g, 3, model.ObjectPointer)
	insert(t, g, 4, model.Key)
	require.NoError(t, g.AddReference(1, child(2)))
	require.NoError(t, g.AddReference(2, pointerTo(3)))
	assert.NoError(t, g.AddReference(3, pointerTo(4)))
	assert.NoError(t, g.Validate())
}

func TestAddReference_PointerCycle(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.Container)
	insert(t, g, 2, model.ObjectPointer)
	require.NoError(t, g.AddReference(1, child(2)))

	assert.ErrorIs(t, g.AddReference(2, model.Reference{Target: 1, Role: model.RolePointer}), ErrCycleDetected)
}

func TestAuxDesignatorTargets(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.AuxiliaryControlDesignatorType2)
	insert(t, g, 2, model.AuxiliaryFunctionType2)
	insert(t, g, 3, model.Container)

	assert.NoError(t, g.AddReference(1, model.Reference{Target: 2, Role: model.RoleAuxDesignator}))
	assert.ErrorIs(t, g.AddReference(1, model.Reference{Target: 3, Role: model.RoleAuxDesignator}), ErrTypeNotAllowed)
	assert.ErrorIs(t, g.AddReference(1, child(3)), ErrTypeNotAllowed)
}

func TestRemove_ReferencedElsewhere(t *testing.T) {
	g := containerWithButton(t)

	err := g.Remove(11, false)

	var referenced *ReferencedElsewhereError
	require.True(t, errors.As(err, &referenced))
	assert.ErrorIs(t, err, ErrReferencedElsewhere)
	assert.Equal(t, []objectid.ObjectID{10}, referenced.Referrers)
	assert.True(t, g.Has(11))
}

func TestRemove_Cascade(t *testing.T) {
	g := containerWithButton(t)
	require.NoError(t, g.SetName(11, "OK"))

	require.NoError(t, g.Remove(11, true))

	assert.False(t, g.Has(11))
	assert.False(t, mustResolve(t, g, 10).RefersTo(11))
	_, named := g.Name(11)
	assert.False(t, named)
	assert.NoError(t, g.Validate())

	id, err := g.Add(model.Button)
	require.NoError(t, err)
	assert.Equal(t, objectid.ObjectID(0), id)
}

func TestRemove_IDNotFound(t *testing.T) {
	g := New(model.Version6)
	assert.ErrorIs(t, g.Remove(4, true), ErrIDNotFound)
}

func TestChangeID(t *testing.T) {
	g := containerWithButton(t)
	require.NoError(t, g.SetName(11, "OK button"))
	uid := mustResolve(t, g, 11).UID

	require.NoError(t, g.ChangeID(11, 20))

	moved := mustResolve(t, g, 20)
	assert.Equal(t, model.Button, moved.Type())
	assert.Equal(t, uid, moved.UID)
	assert.False(t, g.Has(11))

	parent := mustResolve(t, g, 10)
	assert.True(t, parent.RefersTo(20))
	assert.False(t, parent.RefersTo(11))

	name, ok := g.Name(20)
	assert.True(t, ok)
	assert.Equal(t, "OK button", name)

	assert.Equal(t, []objectid.ObjectID{10, 20}, g.IDs(), "position in the listing is kept")
	assert.NoError(t, g.Validate())
}

func TestRegistryOutOfSync(t *testing.T) {
	g := containerWithButton(t)
	require.NoError(t, g.registry.Reserve(12))
	require.NoError(t, g.registry.Reserve(20))

	obj, err := model.New(12, model.Button)
	require.NoError(t, err)
	assert.ErrorIs(t, g.Insert(obj), objectid.ErrInUse)
	assert.False(t, g.Has(12))

	assert.ErrorIs(t, g.ChangeID(11, 20), objectid.ErrInUse)
	assert.True(t, g.Has(11))
	assert.False(t, g.Has(20))
	assert.NoError(t, g.Validate())
}

func TestEqual_EmptyRefs(t *testing.T) {
	g := containerWithButton(t)
	insert(t, g, 12, model.OutputString)
	saved := g.Clone()

	require.NoError(t, g.AddReference(11, child(12)))
	require.NoError(t, g.RemoveReference(11, model.RoleChild, 0))
	assert.True(t, g.Equal(saved), "an emptied reference list equals a nil one")

	require.NoError(t, g.SetName(12, "Ok"))
	assert.False(t, g.Equal(saved))
}

func TestChangeID_Failures(t *testing.T) {
	g := containerWithButton(t)
	before := g.Clone()

	assert.ErrorIs(t, g.ChangeID(11, 10), ErrIDInUse)
	assert.ErrorIs(t, g.ChangeID(12, 13), ErrIDNotFound)
	assert.ErrorIs(t, g.ChangeID(11, objectid.Null), ErrValidationFailed)
	assert.NoError(t, g.ChangeID(11, 11))

	assert.True(t, g.Equal(before))
}

func TestRemoveReference(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.Container)
	insert(t, g, 2, model.OutputString)
	insert(t, g, 3, model.OutputString)
	require.NoError(t, g.AddReference(1, child(2)))
	require.NoError(t, g.AddReference(1, child(3)))

	require.NoError(t, g.RemoveReference(1, model.RoleChild, 0))
	refs := mustResolve(t, g, 1).RefsWithRole(model.RoleChild)
	require.Len(t, refs, 1)
	assert.Equal(t, objectid.ObjectID(3), refs[0].Target)

	assert.ErrorIs(t, g.RemoveReference(1, model.RoleChild, 4), ErrValidationFailed)
}

func TestReplace_KeepsTypeAndUID(t *testing.T) {
	g := containerWithButton(t)
	obj := mustResolve(t, g, 10)
	uid := obj.UID

	obj.Attrs.(*model.ContainerAttrs).Hidden = true
	require.NoError(t, g.Replace(obj))
	assert.True(t, mustResolve(t, g, 10).Attrs.(*model.ContainerAttrs).Hidden)
	assert.Equal(t, uid, mustResolve(t, g, 10).UID)

	other, err := model.New(10, model.DataMask)
	require.NoError(t, err)
	assert.ErrorIs(t, g.Replace(other), ErrValidationFailed)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	g := containerWithButton(t)
	obj, ok := g.Lookup(10)
	require.True(t, ok)

	obj.Attrs.(*model.ContainerAttrs).Width = 1
	obj.Refs[0].Target = 99

	fresh := mustResolve(t, g, 10)
	assert.Equal(t, uint16(200), fresh.Attrs.(*model.ContainerAttrs).Width)
	assert.True(t, fresh.RefersTo(11))
}

func TestCandidates(t *testing.T) {
	g := New(model.Version6)
	insert(t, g, 1, model.DataMask)
	insert(t, g, 2, model.Container)
	insert(t, g, 3, model.Button)
	insert(t, g, 4, model.FontAttributes)
	insert(t, g, 5, model.Key)
	require.NoError(t, g.AddReference(1, child(2)))
	require.NoError(t, g.AddReference(2, child(3)))

	ids, err := g.Candidates(3, model.RoleChild)
	require.NoError(t, err)
	// the button may not adopt its own containers, fonts or keys
	assert.Empty(t, ids)

	ids, err = g.Candidates(2, model.RoleChild)
	require.NoError(t, err)
	assert.Equal(t, []objectid.ObjectID{3}, ids)

	_, err = g.Candidates(42, model.RoleChild)
	assert.ErrorIs(t, err, ErrIDNotFound)
}

func TestQueries(t *testing.T) {
	g := containerWithButton(t)
	insert(t, g, 12, model.FontAttributes)

	assert.Equal(t, []objectid.ObjectID{10}, g.Referrers(11))
	parents := g.Parents(11)
	require.Len(t, parents, 1)
	assert.Equal(t, objectid.ObjectID(10), parents[0].ID)
	assert.Equal(t, []objectid.ObjectID{10, 12}, g.Roots())
	assert.Len(t, g.ObjectsByType(model.Button, model.FontAttributes), 2)
	assert.Equal(t, 1, g.TypeCounts()[model.Container])
	assert.Equal(t, "11: Button", g.DisplayName(11))

	require.NoError(t, g.SetName(11, "OK"))
	assert.Equal(t, "OK", g.DisplayName(11))
	assert.Equal(t, map[string]int{"OK": 1}, g.UsedNames())
	assert.ErrorIs(t, g.SetName(77, "x"), ErrIDNotFound)
}

func TestCloneIsIndependent(t *testing.T) {
	g := containerWithButton(t)
	c := g.Clone()
	require.True(t, g.Equal(c))

	require.NoError(t, c.Remove(11, true))
	require.NoError(t, c.SetName(10, "Main"))

	assert.True(t, g.Has(11))
	assert.True(t, mustResolve(t, g, 10).RefersTo(11))
	_, named := g.Name(10)
	assert.False(t, named)
	assert.False(t, g.Equal(c))
}

func mustResolve(t *testing.T, g *Graph, id objectid.ObjectID) model.Object {
	t.Helper()
	obj, err := g.Resolve(id)
	require.NoError(t, err)
	return obj
}
