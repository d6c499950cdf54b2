package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/ritzau/vt-designer/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func samplePool(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(model.Version6)
	for i, typ := range []model.ObjectType{model.DataMask, model.Container, model.OutputString, model.Macro} {
		obj, err := model.New(objectid.ObjectID(i+1), typ)
		require.NoError(t, err)
		require.NoError(t, g.Insert(obj))
	}
	require.NoError(t, g.AddReference(1, model.Reference{Target: 2, Role: model.RoleChild, X: 10, Y: 20}))
	require.NoError(t, g.AddReference(2, model.Reference{Target: 3, Role: model.RoleChild}))
	require.NoError(t, g.SetName(1, "Main Screen"))
	return g
}

func TestPrintCheckReport(t *testing.T) {
	var buf bytes.Buffer
	PrintCheckReport(&buf, "pool.yaml", samplePool(t), nil)
	out := buf.String()

	assert.Contains(t, out, "Project: pool.yaml")
	assert.Contains(t, out, "Target: VT6")
	assert.Contains(t, out, "Objects: 4 (1 named)")
	assert.Contains(t, out, "Note: the pool has no working set")
	assert.Contains(t, out, "✓ The object pool is consistent")
}

func TestPrintCheckReport_Problems(t *testing.T) {
	err := &graph.IntegrityError{Problems: []error{
		&graph.DuplicateIDError{ID: 5},
		errors.New("object 7: dangling reference"),
	}}

	var buf bytes.Buffer
	PrintCheckReport(&buf, "broken.yaml", nil, err)
	out := buf.String()

	assert.Contains(t, out, "PROBLEMS (2):")
	assert.Contains(t, out, "object 5 already exists")
	assert.Contains(t, out, "object 7: dangling reference")
	assert.Contains(t, out, "✗ The object pool cannot be loaded")
}

func TestPrintTree(t *testing.T) {
	var buf bytes.Buffer
	PrintTree(&buf, samplePool(t))

	assert.Equal(t, "Main Screen [1 Data Mask]\n"+
		"  2 Container @ 10,20\n"+
		"    3 Text Display @ 0,0\n"+
		"4 Macro\n", buf.String())
}

func TestPrintScene(t *testing.T) {
	g := samplePool(t)
	var buf bytes.Buffer
	PrintScene(&buf, g, render.Produce(g, 1, render.DefaultSizes))
	out := buf.String()

	assert.Contains(t, out, "Main Screen")
	assert.Contains(t, out, "group 2 at 10,20")
}
