package projectfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `vt_version: 4
objects:
  - id: 10
    type: DataMask
    name: Main Screen
    refs:
      - {target: 11, role: child, x: 4, y: 8}
      - {target: 12, role: macro, event: OnShow}
  - id: 11
    type: OutputString
    attributes:
      width: 200
      value: "true"
    refs:
      - {target: 13, role: font}
  - id: 12
    type: Macro
  - id: 13
    type: FontAttributes
    attributes:
      font_size: 3
`

func TestDecode(t *testing.T) {
	g, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, model.Version4, g.Version())
	assert.Equal(t, []objectid.ObjectID{10, 11, 12, 13}, g.IDs())

	name, _ := g.Name(10)
	assert.Equal(t, "Main Screen", name)

	mask, err := g.Resolve(10)
	require.NoError(t, err)
	assert.Equal(t, []model.Reference{
		{Target: 11, Role: model.RoleChild, X: 4, Y: 8},
		{Target: 12, Role: model.RoleMacro, Event: model.OnShow},
	}, mask.Refs)

	text, _ := g.Resolve(11)
	attrs := text.Attrs.(*model.OutputStringAttrs)
	assert.Equal(t, uint16(200), attrs.Width)
	assert.Equal(t, uint16(32), attrs.Height, "absent attributes keep the template value")
	assert.Equal(t, "true", attrs.Value)
}

func TestDecode_RejectsBrokenPools(t *testing.T) {
	_, err := Decode(strings.NewReader("objects:\n  - {id: 1, type: Container, refs: [{target: 2, role: child}]}\n"))
	assert.ErrorIs(t, err, graph.ErrIntegrity)

	_, err = Decode(strings.NewReader("objects:\n  - {id: 1, type: Spaceship}\n"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("objects:\n  - {id: 1, type: Container, colour: 3}\n"))
	assert.Error(t, err, "unknown fields are refused")
}

func TestDecode_Empty(t *testing.T) {
	g, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultVersion, g.Version())
	assert.Zero(t, g.Len())
}

func TestEncodeRoundTrip(t *testing.T) {
	g, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g))
	out := buf.String()
	assert.Contains(t, out, "vt_version: 4")
	assert.Contains(t, out, "type: OutputString")
	assert.Contains(t, out, "event: OnShow")
	assert.NotContains(t, out, `{"`, "attributes are written as YAML")

	again, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, g.IDs(), again.IDs())
	assert.Equal(t, g.Names(), again.Names())
	for _, id := range g.IDs() {
		before, _ := g.Resolve(id)
		after, _ := again.Resolve(id)
		assert.Equal(t, before.Attrs, after.Attrs, "object %s", id)
		assert.Equal(t, before.Refs, after.Refs, "object %s", id)
	}
}

func TestSaveAndLoad(t *testing.T) {
	g := graph.New(model.Version6)
	id, err := g.Add(model.PictureGraphic)
	require.NoError(t, err)
	pic, _ := g.Resolve(id)
	pic.Attrs.(*model.PictureGraphicAttrs).Data = []byte{1, 2, 3, 255}
	require.NoError(t, g.Replace(pic))

	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, Save(path, g))

	loaded, err := Load(path)
	require.NoError(t, err)
	again, _ := loaded.Resolve(id)
	assert.Equal(t, []byte{1, 2, 3, 255}, again.Attrs.(*model.PictureGraphicAttrs).Data)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
