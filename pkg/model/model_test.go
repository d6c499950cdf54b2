package model

import (
	"testing"

	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_EverySupportedType(t *testing.T) {
	for _, typ := range SupportedTypes() {
		attrs, err := Default(typ)
		require.NoError(t, err, typ.String())
		assert.Equal(t, typ, attrs.Type(), "template of %s reports wrong type", typ)
	}
	assert.Len(t, SupportedTypes(), 38)
}

func TestDefault_UnsupportedType(t *testing.T) {
	for _, typ := range AllTypes {
		if typ.Supported() {
			continue
		}
		_, err := Default(typ)
		assert.ErrorIs(t, err, ErrUnsupportedType, typ.String())
	}
}

func TestParseObjectType(t *testing.T) {
	typ, err := ParseObjectType("container")
	require.NoError(t, err)
	assert.Equal(t, Container, typ)

	typ, err = ParseObjectType("27")
	require.NoError(t, err)
	assert.Equal(t, ObjectPointer, typ)

	_, err = ParseObjectType("Window")
	assert.Error(t, err)
	assert.Equal(t, "ObjectType(200)", ObjectType(200).String())
}

func TestObjectClone_IsDeep(t *testing.T) {
	obj, err := New(5, OutputPolygon)
	require.NoError(t, err)
	obj.Refs = []Reference{{Target: 7, Role: RoleLine}}

	c := obj.Clone()
	c.Attrs.(*OutputPolygonAttrs).Points[0].X = 99
	c.Refs[0].Target = 8

	assert.Equal(t, uint16(0), obj.Attrs.(*OutputPolygonAttrs).Points[0].X)
	assert.Equal(t, objectid.ObjectID(7), obj.Refs[0].Target)
	assert.Equal(t, obj.UID, c.UID)
}

func TestMacroClone_KeepsNilCommands(t *testing.T) {
	m := &MacroAttrs{}
	assert.Equal(t, m, m.clone())

	m.Commands = []MacroCommand{{Code: 0xA0, Params: []uint8{1, 2}}}
	c := m.clone().(*MacroAttrs)
	c.Commands[0].Params[0] = 9
	assert.Equal(t, uint8(1), m.Commands[0].Params[0])
}

func TestDecodeAttributes_KeepsTemplateForMissingFields(t *testing.T) {
	attrs, err := DecodeAttributes(InputNumber, []byte(`{"min_value": 5}`))
	require.NoError(t, err)

	n := attrs.(*InputNumberAttrs)
	assert.Equal(t, uint32(5), n.MinValue)
	assert.Equal(t, uint32(100), n.MaxValue)
	assert.Equal(t, float32(1), n.Scale)

	_, err = DecodeAttributes(InputNumber, []byte(`{"min_value": "x"}`))
	assert.Error(t, err)

	_, err = DecodeAttributes(Animation, nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestWithRef(t *testing.T) {
	obj, err := New(1, OutputString)
	require.NoError(t, err)

	withFont := obj.WithRef(RoleFont, 3)
	assert.Equal(t, objectid.ObjectID(3), withFont.Ref(RoleFont))
	assert.Empty(t, obj.Refs, "original must not change")

	replaced := withFont.WithRef(RoleFont, 4)
	assert.Len(t, replaced.RefsWithRole(RoleFont), 1)
	assert.True(t, replaced.RefersTo(4))

	cleared := replaced.WithRef(RoleFont, objectid.Null)
	assert.Empty(t, cleared.Refs)
}

func TestRoleMultiplicity(t *testing.T) {
	assert.False(t, RoleChild.Single())
	assert.False(t, RoleMacro.Single())
	assert.True(t, RolePointer.Single())
	assert.True(t, RoleChild.Renderable())
	assert.True(t, RolePointer.Renderable())
	assert.False(t, RoleFont.Renderable())
}

func TestEventText(t *testing.T) {
	var e Event
	require.NoError(t, e.UnmarshalText([]byte("OnKeyPress")))
	assert.Equal(t, OnKeyPress, e)
	require.NoError(t, e.UnmarshalText([]byte("3")))
	assert.Equal(t, OnShow, e)
	assert.Error(t, e.UnmarshalText([]byte("OnExplode")))
}
