package naming

import (
	"errors"
	"strings"
	"testing"

	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNameCoversTaxonomy(t *testing.T) {
	for _, typ := range model.AllTypes {
		assert.Contains(t, typeNames, typ, "%s has no display name", typ)
	}
	assert.Equal(t, "Checkbox", TypeName(model.InputBoolean))
	assert.Equal(t, "Object Reference", TypeName(model.ObjectPointer))
}

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "Main Screen", DefaultName(model.DataMask, 0, nil))
	assert.Equal(t, "Data Screen 2", DefaultName(model.DataMask, 1, nil))
	assert.Equal(t, "Button", DefaultName(model.Button, 0, nil))
	assert.Equal(t, "Button 3", DefaultName(model.Button, 2, nil))

	used := map[string]int{"Button": 1, "Button 2": 1, "Button 3": 1}
	assert.Equal(t, "Button 2", DefaultName(model.Button, 0, map[string]int{"Button": 1}))
	assert.Equal(t, "Button 4", DefaultName(model.Button, 1, used))
}

func TestContextualName(t *testing.T) {
	key := func(code uint8) model.Object {
		obj, err := model.New(1, model.Key)
		require.NoError(t, err)
		obj.Attrs.(*model.KeyAttrs).KeyCode = code
		return obj
	}

	for code, want := range map[uint8]string{0: "ACK/Enter Key", 1: "ESC Key", 2: "Soft Key 1", 7: "Soft Key 6"} {
		name, ok := ContextualName(key(code))
		assert.True(t, ok)
		assert.Equal(t, want, name)
	}
	_, ok := ContextualName(key(8))
	assert.False(t, ok)

	container, err := model.New(2, model.Container)
	require.NoError(t, err)
	container.Attrs.(*model.ContainerAttrs).Height = 40
	name, _ := ContextualName(container)
	assert.Equal(t, "Header Container", name)
	container.Attrs.(*model.ContainerAttrs).Height = 200
	_, ok = ContextualName(container)
	assert.False(t, ok)
}

func TestSuggestForChild(t *testing.T) {
	g := graph.New(model.Version6)
	mask, err := g.Add(model.SoftKeyMask)
	require.NoError(t, err)
	key, err := g.Add(model.Key)
	require.NoError(t, err)
	require.NoError(t, g.AddReference(mask, model.Reference{Target: key, Role: model.RoleChild}))

	parent, err := g.Resolve(mask)
	require.NoError(t, err)
	name, ok := SuggestForChild(g, parent, model.Key)
	assert.True(t, ok)
	assert.Equal(t, "F2 Key", name)

	dm, err := g.Add(model.DataMask)
	require.NoError(t, err)
	parent, _ = g.Resolve(dm)
	name, _ = SuggestForChild(g, parent, model.Container)
	assert.Equal(t, "Header Container", name)

	_, ok = SuggestForChild(g, parent, model.Macro)
	assert.False(t, ok)
}

func TestValidateLabel(t *testing.T) {
	used := map[string]int{"Main Screen": 1, "Main Screen 2": 1}

	assert.NoError(t, ValidateLabel("Settings", used))

	err := ValidateLabel("   ", used)
	assert.ErrorIs(t, err, graph.ErrValidationFailed)

	err = ValidateLabel(strings.Repeat("x", MaxLabelLength+1), used)
	assert.ErrorContains(t, err, "too long")

	err = ValidateLabel("Main Screen", used)
	var label *LabelError
	require.True(t, errors.As(err, &label))
	assert.Equal(t, "Main Screen 3", label.Suggestion)
	assert.Equal(t, "Name 'Main Screen' already exists. Try 'Main Screen 3'", err.Error())
}

func TestNameAll(t *testing.T) {
	g := graph.New(model.Version6)
	for _, typ := range []model.ObjectType{model.DataMask, model.DataMask, model.Button, model.Key, model.Button} {
		_, err := g.Add(typ)
		require.NoError(t, err)
	}
	require.NoError(t, g.SetName(4, "Back"))

	assert.Equal(t, 4, NameAll(g))

	names := g.Names()
	assert.Equal(t, "Main Screen", names[0])
	assert.Equal(t, "Data Screen 2", names[1])
	assert.Equal(t, "OK Button", names[2])
	assert.Equal(t, "ACK/Enter Key", names[3])
	assert.Equal(t, "Back", names[4])

	assert.Zero(t, NameAll(g))
}
