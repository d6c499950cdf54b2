package objectid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAllocate_SmallestFree(t *testing.T) {
	var r Registry

	for want := ObjectID(0); want < 5; want++ {
		got, err := r.Allocate()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	r.Release(2)
	got, err := r.Allocate()
	require.NoError(t, err)
	assert.Equal(t, ObjectID(2), got, "released id should be handed out again")

	got, err = r.Allocate()
	require.NoError(t, err)
	assert.Equal(t, ObjectID(5), got)
}

func TestAllocate_SkipsReserved(t *testing.T) {
	var r Registry
	require.NoError(t, r.Reserve(0))
	require.NoError(t, r.Reserve(1))
	require.NoError(t, r.Reserve(3))

	got, err := r.Allocate()
	require.NoError(t, err)
	assert.Equal(t, ObjectID(2), got)

	got, err = r.Allocate()
	require.NoError(t, err)
	assert.Equal(t, ObjectID(4), got)
}

func TestReserve(t *testing.T) {
	var r Registry

	require.NoError(t, r.Reserve(10))
	assert.True(t, r.IsUsed(10))
	assert.ErrorIs(t, r.Reserve(10), ErrInUse)
	assert.ErrorIs(t, r.Reserve(Null), ErrNull)
	assert.Equal(t, 1, r.Len())
}

func TestRelease(t *testing.T) {
	var r Registry
	require.NoError(t, r.Reserve(Max))
	r.Release(Max)
	r.Release(Max)
	r.Release(Null)

	assert.False(t, r.IsUsed(Max))
	assert.Equal(t, 0, r.Len())
}

func TestAllocate_Exhausted(t *testing.T) {
	var r Registry
	for i := 0; i <= int(Max); i++ {
		_, err := r.Allocate()
		require.NoError(t, err)
	}
	assert.Equal(t, int(Max)+1, r.Len())
	assert.False(t, r.IsUsed(Null), "NULL must never be allocated")

	_, err := r.Allocate()
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestRegistryCopyIsIndependent(t *testing.T) {
	var r Registry
	require.NoError(t, r.Reserve(7))

	snapshot := r
	r.Release(7)

	assert.True(t, snapshot.IsUsed(7))
	assert.False(t, r.IsUsed(7))
}

func TestParse(t *testing.T) {
	id, err := Parse("42")
	require.NoError(t, err)
	assert.Equal(t, ObjectID(42), id)

	id, err = Parse("NULL")
	require.NoError(t, err)
	assert.True(t, id.IsNull())

	_, err = Parse("70000")
	assert.Error(t, err)
	assert.Equal(t, "NULL", Null.String())
	assert.Equal(t, "12", ObjectID(12).String())
}

func TestRegistryMatchesSet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var r Registry
		model := map[ObjectID]bool{}

		steps := rapid.IntRange(1, 200).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := ObjectID(rapid.IntRange(0, 300).Draw(t, "id"))
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				got, err := r.Allocate()
				if err != nil {
					t.Fatalf("allocate: %v", err)
				}
				if model[got] {
					t.Fatalf("allocated used id %d", got)
				}
				for j := ObjectID(0); j < got; j++ {
					if !model[j] {
						t.Fatalf("allocated %d but %d was free", got, j)
					}
				}
				model[got] = true
			case 1:
				err := r.Reserve(id)
				if model[id] != (err != nil) {
					t.Fatalf("reserve %d: used=%v err=%v", id, model[id], err)
				}
				model[id] = true
			case 2:
				r.Release(id)
				delete(model, id)
			}
			if r.Len() != len(model) {
				t.Fatalf("len %d, want %d", r.Len(), len(model))
			}
		}
	})
}
