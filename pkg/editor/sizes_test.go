package editor

import (
	"testing"

	"github.com/ritzau/vt-designer/pkg/configure"
	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/ritzau/vt-designer/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizesFitThePool(t *testing.T) {
	g := graph.New(model.Version6)
	for id, typ := range map[objectid.ObjectID]model.ObjectType{1: model.DataMask, 2: model.Container} {
		obj, err := model.New(id, typ)
		require.NoError(t, err)
		require.NoError(t, g.Insert(obj))
	}
	// container 200x200 at 500,100 reaches 700
	require.NoError(t, g.AddReference(1, model.Reference{Target: 2, Role: model.RoleChild, X: 500, Y: 100}))

	p := New(g, Options{})
	assert.Equal(t, render.Sizes{Mask: 700, SoftKeyWidth: 60, SoftKeyHeight: 60}, p.Sizes())

	p = New(g, Options{MaskSize: 800, SoftKeyHeight: 40})
	assert.Equal(t, render.Sizes{Mask: 800, SoftKeyWidth: 60, SoftKeyHeight: 40}, p.Sizes())

	assert.Equal(t, render.DefaultSizes, newProject(t, Options{}).Sizes())
}

func TestSetMaskSize(t *testing.T) {
	var events []Event
	p := newProject(t, Options{}).WithObserver(func(e Event) { events = append(events, e) })

	require.NoError(t, p.SetMaskSize(200))
	assert.Equal(t, 200, p.Sizes().Mask)
	require.Len(t, events, 1)
	assert.Equal(t, EventResized, events[0].Kind)
	assert.False(t, p.CanUndo(), "the mask size is not part of the pool")
	assert.False(t, p.Dirty())

	for _, size := range []int{render.MinMaskSize - 1, render.MaxMaskSize + 1} {
		err := p.SetMaskSize(size)
		var invalid *graph.ValidationError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "mask_size", invalid.Attr)
	}
	assert.Equal(t, 200, p.Sizes().Mask)

	require.NoError(t, p.SetMaskSize(200))
	assert.Len(t, events, 1, "an unchanged size is not announced")
}

func TestConfigureWithinMask(t *testing.T) {
	p := newProject(t, Options{MaskSize: 300})
	insert(t, p, 1, model.Container)

	require.NoError(t, p.Configure(1, configure.Change{Attr: "width", Value: 300}))
	err := p.Configure(1, configure.Change{Attr: "height", Value: 301})
	var invalid *graph.ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "height", invalid.Attr)

	require.NoError(t, p.SetMaskSize(400))
	assert.NoError(t, p.Configure(1, configure.Change{Attr: "height", Value: 301}))
}

func TestChildPlacementWithinMask(t *testing.T) {
	p := newProject(t, Options{MaskSize: 300, SoftKeyWidth: 80, SoftKeyHeight: 80})
	insert(t, p, 1, model.DataMask)
	insert(t, p, 2, model.Container)  // 200x200
	insert(t, p, 3, model.Key)        // 80x80
	insert(t, p, 4, model.OutputLine) // 100x1

	require.NoError(t, p.AddReference(1, model.Reference{Target: 2, Role: model.RoleChild, X: 100, Y: 100}))

	var invalid *graph.ValidationError
	err := p.AddReference(1, model.Reference{Target: 2, Role: model.RoleChild, X: 101})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "x", invalid.Attr)
	err = p.AddReference(1, model.Reference{Target: 2, Role: model.RoleChild, Y: -1})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "y", invalid.Attr)

	// keys are bounded by the soft key size
	err = p.AddReference(3, model.Reference{Target: 4, Role: model.RoleChild})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "x", invalid.Attr)

	// other parents are not bounded
	insert(t, p, 5, model.Container)
	assert.NoError(t, p.AddReference(5, model.Reference{Target: 4, Role: model.RoleChild, X: 1000}))
}
