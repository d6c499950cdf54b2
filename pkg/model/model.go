package model

import (
	"fmt"
	"strings"
)

// ObjectType is the ISO 11783-6 object type code.
type ObjectType uint8

const (
	WorkingSet                      ObjectType = 0
	DataMask                        ObjectType = 1
	AlarmMask                       ObjectType = 2
	Container                       ObjectType = 3
	SoftKeyMask                     ObjectType = 4
	Key                             ObjectType = 5
	Button                          ObjectType = 6
	InputBoolean                    ObjectType = 7
	InputString                     ObjectType = 8
	InputNumber                     ObjectType = 9
	InputList                       ObjectType = 10
	OutputString                    ObjectType = 11
	OutputNumber                    ObjectType = 12
	OutputLine                      ObjectType = 13
	OutputRectangle                 ObjectType = 14
	OutputEllipse                   ObjectType = 15
	OutputPolygon                   ObjectType = 16
	OutputMeter                     ObjectType = 17
	OutputLinearBarGraph            ObjectType = 18
	OutputArchedBarGraph            ObjectType = 19
	PictureGraphic                  ObjectType = 20
	NumberVariable                  ObjectType = 21
	StringVariable                  ObjectType = 22
	FontAttributes                  ObjectType = 23
	LineAttributes                  ObjectType = 24
	FillAttributes                  ObjectType = 25
	InputAttributes                 ObjectType = 26
	ObjectPointer                   ObjectType = 27
	Macro                           ObjectType = 28
	AuxiliaryFunctionType1          ObjectType = 29
	AuxiliaryInputType1             ObjectType = 30
	AuxiliaryFunctionType2          ObjectType = 31
	AuxiliaryInputType2             ObjectType = 32
	AuxiliaryControlDesignatorType2 ObjectType = 33
	WindowMask                      ObjectType = 34
	KeyGroup                        ObjectType = 35
	GraphicsContext                 ObjectType = 36
	OutputList                      ObjectType = 37
	ExtendedInputAttributes         ObjectType = 38
	ColourMap                       ObjectType = 39
	ObjectLabelReferenceList        ObjectType = 40
	ExternalObjectDefinition        ObjectType = 41
	ExternalReferenceName           ObjectType = 42
	ExternalObjectPointer           ObjectType = 43
	Animation                       ObjectType = 44
	ColourPalette                   ObjectType = 45
	GraphicData                     ObjectType = 46
	WorkingSetSpecialControls       ObjectType = 47
	ScaledGraphic                   ObjectType = 48
)

// AllTypes lists every object type of the taxonomy in code order.
var AllTypes = func() []ObjectType {
	types := make([]ObjectType, 0, len(typeNames))
	for t := range typeNames {
		types = append(types, ObjectType(t))
	}
	return types
}()

var typeNames = [...]string{
	"WorkingSet",
	"DataMask",
	"AlarmMask",
	"Container",
	"SoftKeyMask",
	"Key",
	"Button",
	"InputBoolean",
	"InputString",
	"InputNumber",
	"InputList",
	"OutputString",
	"OutputNumber",
	"OutputLine",
	"OutputRectangle",
	"OutputEllipse",
	"OutputPolygon",
	"OutputMeter",
	"OutputLinearBarGraph",
	"OutputArchedBarGraph",
	"PictureGraphic",
	"NumberVariable",
	"StringVariable",
	"FontAttributes",
	"LineAttributes",
	"FillAttributes",
	"InputAttributes",
	"ObjectPointer",
	"Macro",
	"AuxiliaryFunctionType1",
	"AuxiliaryInputType1",
	"AuxiliaryFunctionType2",
	"AuxiliaryInputType2",
	"AuxiliaryControlDesignatorType2",
	"WindowMask",
	"KeyGroup",
	"GraphicsContext",
	"OutputList",
	"ExtendedInputAttributes",
	"ColourMap",
	"ObjectLabelReferenceList",
	"ExternalObjectDefinition",
	"ExternalReferenceName",
	"ExternalObjectPointer",
	"Animation",
	"ColourPalette",
	"GraphicData",
	"WorkingSetSpecialControls",
	"ScaledGraphic",
}

func (t ObjectType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("ObjectType(%d)", uint8(t))
}

// Valid reports whether t is part of the taxonomy.
func (t ObjectType) Valid() bool {
	return int(t) < len(typeNames)
}

// Supported reports whether objects of type t can be created and edited.
// The types past OutputList are known to the legality tables only.
func (t ObjectType) Supported() bool {
	return t <= OutputList
}

// SupportedTypes lists the editable object types in code order.
func SupportedTypes() []ObjectType {
	var types []ObjectType
	for _, t := range AllTypes {
		if t.Supported() {
			types = append(types, t)
		}
	}
	return types
}

// ParseObjectType accepts a type name (case-insensitive) or its numeric code.
func ParseObjectType(s string) (ObjectType, error) {
	for i, name := range typeNames {
		if strings.EqualFold(name, s) {
			return ObjectType(i), nil
		}
	}
	var code int
	if _, err := fmt.Sscanf(s, "%d", &code); err == nil && code >= 0 && code < len(typeNames) {
		return ObjectType(code), nil
	}
	return 0, fmt.Errorf("unknown object type %q", s)
}

func (t ObjectType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ObjectType) UnmarshalText(b []byte) error {
	parsed, err := ParseObjectType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// VtVersion is the VT version an object pool targets.
type VtVersion uint8

const (
	Version2 VtVersion = 2
	Version3 VtVersion = 3
	Version4 VtVersion = 4
	Version5 VtVersion = 5
	Version6 VtVersion = 6
)

// DefaultVersion is used when a pool does not state its version.
const DefaultVersion = Version6

// Valid reports whether v is a version the editor can target.
func (v VtVersion) Valid() bool {
	return v >= Version3 && v <= Version6
}

func (v VtVersion) String() string {
	return fmt.Sprintf("VT%d", uint8(v))
}

// Role describes how a reference is used by the referring object.
type Role string

const (
	RoleChild           Role = "child"            // Rendered child placed at an offset, or a list item
	RolePointer         Role = "pointer"          // Object pointer target
	RoleMacro           Role = "macro"            // Macro run when an event fires
	RoleVariable        Role = "variable"         // Value binding
	RoleTargetVariable  Role = "target-variable"  // Target value binding of meters and bar graphs
	RoleFont            Role = "font"             // Font attributes
	RoleLine            Role = "line"             // Line attributes
	RoleFill            Role = "fill"             // Fill attributes
	RoleFillPattern     Role = "fill-pattern"     // Picture used as fill pattern
	RoleInputAttributes Role = "input-attributes" // Input validation attributes
	RoleSoftKeyMask     Role = "soft-key-mask"    // Soft key mask shown with a mask
	RoleActiveMask      Role = "active-mask"      // Mask shown when the working set is active
	RoleAuxDesignator   Role = "aux-designator"   // Auxiliary object of a control designator
)

// AllRoles lists every role.
var AllRoles = []Role{
	RoleChild,
	RolePointer,
	RoleMacro,
	RoleVariable,
	RoleTargetVariable,
	RoleFont,
	RoleLine,
	RoleFill,
	RoleFillPattern,
	RoleInputAttributes,
	RoleSoftKeyMask,
	RoleActiveMask,
	RoleAuxDesignator,
}

// Renderable reports whether references with this role are traversed when drawing.
func (r Role) Renderable() bool {
	return r == RoleChild || r == RolePointer
}

// Single reports whether an object holds at most one reference with this role.
func (r Role) Single() bool {
	switch r {
	case RoleChild, RoleMacro:
		return false
	}
	return true
}

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}
