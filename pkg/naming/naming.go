// Package naming produces the human-facing labels of an object pool: type
// display names, default names for new objects and checks on user labels.
package naming

import (
	"fmt"
	"strings"

	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
)

// MaxLabelLength is the longest custom label accepted, in bytes.
const MaxLabelLength = 100

var typeNames = map[model.ObjectType]string{
	model.WorkingSet:                      "Working Set",
	model.DataMask:                        "Data Mask",
	model.AlarmMask:                       "Alarm Screen",
	model.Container:                       "Container",
	model.SoftKeyMask:                     "Soft Key Mask",
	model.Key:                             "Key",
	model.Button:                          "Button",
	model.InputBoolean:                    "Checkbox",
	model.InputString:                     "Text Input",
	model.InputNumber:                     "Number Input",
	model.InputList:                       "List Input",
	model.OutputString:                    "Text Display",
	model.OutputNumber:                    "Number Display",
	model.OutputList:                      "List Display",
	model.OutputLine:                      "Line",
	model.OutputRectangle:                 "Rectangle",
	model.OutputEllipse:                   "Ellipse",
	model.OutputPolygon:                   "Polygon",
	model.OutputMeter:                     "Meter",
	model.OutputLinearBarGraph:            "Linear Bar",
	model.OutputArchedBarGraph:            "Arched Bar",
	model.PictureGraphic:                  "Picture",
	model.NumberVariable:                  "Number Variable",
	model.StringVariable:                  "String Variable",
	model.FontAttributes:                  "Font Style",
	model.LineAttributes:                  "Line Style",
	model.FillAttributes:                  "Fill Style",
	model.InputAttributes:                 "Input Style",
	model.ObjectPointer:                   "Object Reference",
	model.Macro:                           "Macro",
	model.AuxiliaryFunctionType1:          "Aux Function v1",
	model.AuxiliaryInputType1:             "Aux Input v1",
	model.AuxiliaryFunctionType2:          "Aux Function v2",
	model.AuxiliaryInputType2:             "Aux Input v2",
	model.AuxiliaryControlDesignatorType2: "Aux Control v2",
	model.ColourMap:                       "Colour Map",
	model.GraphicsContext:                 "Graphics Context",
	model.ColourPalette:                   "Colour Palette",
	model.GraphicData:                     "Graphic Data",
	model.WorkingSetSpecialControls:       "Special Controls",
	model.ScaledGraphic:                   "Scaled Graphic",
	model.WindowMask:                      "Window Mask",
	model.KeyGroup:                        "Key Group",
	model.ExtendedInputAttributes:         "Extended Input Style",
	model.ObjectLabelReferenceList:        "Label Reference List",
	model.ExternalObjectDefinition:        "External Object Definition",
	model.ExternalReferenceName:           "External Reference Name",
	model.ExternalObjectPointer:           "External Object Pointer",
	model.Animation:                       "Animation",
}

// TypeName returns the friendly name of an object type.
func TypeName(t model.ObjectType) string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return t.String()
}

// DefaultName picks a name for a new object of type t. sameType is the number
// of objects of that type already in the pool and used counts the names in use.
// The first data mask is the "Main Screen"; later ones are numbered screens.
func DefaultName(t model.ObjectType, sameType int, used map[string]int) string {
	base := TypeName(t)
	if t == model.DataMask {
		base = "Data Screen"
		if sameType == 0 {
			base = "Main Screen"
		}
	}

	if sameType == 0 && used[base] == 0 {
		return base
	}
	for n := max(sameType+1, 2); ; n++ {
		candidate := fmt.Sprintf("%s %d", base, n)
		if used[candidate] == 0 {
			return candidate
		}
	}
}

// ContextualName derives a name from an object's own attributes, when they
// say enough about its purpose.
func ContextualName(obj model.Object) (string, bool) {
	switch a := obj.Attrs.(type) {
	case *model.KeyAttrs:
		switch {
		case a.KeyCode == 0:
			return "ACK/Enter Key", true
		case a.KeyCode == 1:
			return "ESC Key", true
		case a.KeyCode <= 7:
			return fmt.Sprintf("Soft Key %d", a.KeyCode-1), true
		}
	case *model.ButtonAttrs:
		switch a.KeyCode {
		case 0:
			return "OK Button", true
		case 1:
			return "Cancel Button", true
		}
	case *model.ContainerAttrs:
		switch {
		case a.Height < 100:
			return "Header Container", true
		case a.Height > 300:
			return "Main Container", true
		}
	}
	return "", false
}

// SuggestForChild proposes a name for a new object of type child about to be
// placed in parent.
func SuggestForChild(view graph.View, parent model.Object, child model.ObjectType) (string, bool) {
	countChildren := func(t model.ObjectType) int {
		n := 0
		for _, ref := range parent.Refs {
			if obj, ok := view.Lookup(ref.Target); ok && obj.Type() == t {
				n++
			}
		}
		return n
	}

	switch {
	case parent.Type() == model.SoftKeyMask && child == model.Key:
		return fmt.Sprintf("F%d Key", countChildren(model.Key)+1), true
	case parent.Type() == model.Container && child == model.Button:
		return "Container Button", true
	case parent.Type() == model.Container && child == model.OutputString:
		return "Container Label", true
	case parent.Type() == model.DataMask && child == model.Container:
		switch countChildren(model.Container) {
		case 0:
			return "Header Container", true
		case 1:
			return "Main Container", true
		case 2:
			return "Footer Container", true
		}
	}
	return "", false
}

// Unique returns name, or the first "name N" (N from 2) not in used.
func Unique(name string, used map[string]int) string {
	if used[name] == 0 {
		return name
	}
	for n := 2; n <= int(objectid.Max)+1; n++ {
		candidate := fmt.Sprintf("%s %d", name, n)
		if used[candidate] == 0 {
			return candidate
		}
	}
	return ""
}

// LabelError explains why a custom label was refused.
type LabelError struct {
	Label      string
	Reason     string
	Suggestion string // An available alternative, if one exists
}

func (e *LabelError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s. Try '%s'", e.Reason, e.Suggestion)
	}
	return e.Reason
}

func (e *LabelError) Unwrap() error { return graph.ErrValidationFailed }

// ValidateLabel checks a label a user wants to give an object. used counts the
// labels of every other object.
func ValidateLabel(label string, used map[string]int) error {
	if strings.TrimSpace(label) == "" {
		return &LabelError{Label: label, Reason: "Name cannot be empty"}
	}
	if len(label) > MaxLabelLength {
		return &LabelError{Label: label, Reason: fmt.Sprintf("Name is too long (max %d characters)", MaxLabelLength)}
	}
	if used[label] > 0 {
		err := &LabelError{Label: label, Reason: fmt.Sprintf("Name '%s' already exists", label), Suggestion: Unique(label, used)}
		if err.Suggestion == "" {
			err.Reason += " and every numbered variation is taken"
		}
		return err
	}
	return nil
}

// NameFor picks the name a new object gets: a contextual name when its
// attributes suggest one, a default name otherwise. The result is unique in g.
func NameFor(g *graph.Graph, obj model.Object) string {
	used := g.UsedNames()
	if name, ok := ContextualName(obj); ok {
		return Unique(name, used)
	}
	sameType := g.TypeCounts()[obj.Type()]
	if g.Has(obj.ID) {
		sameType--
	}
	return DefaultName(obj.Type(), sameType, used)
}

// NameAll gives every unnamed object of g a name, in insertion order, and
// returns how many objects were named. Objects are counted per type as they
// are named, so an imported pool reads like one built by hand.
func NameAll(g *graph.Graph) int {
	used := g.UsedNames()
	seen := make(map[model.ObjectType]int)
	named := 0
	for _, obj := range g.Objects() {
		t := obj.Type()
		if _, ok := g.Name(obj.ID); ok {
			seen[t]++
			continue
		}
		name, ok := ContextualName(obj)
		if ok {
			name = Unique(name, used)
		} else {
			name = DefaultName(t, seen[t], used)
		}
		seen[t]++
		if name == "" || g.SetName(obj.ID, name) != nil {
			continue
		}
		used[name]++
		named++
	}
	return named
}
