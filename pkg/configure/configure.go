// Package configure edits the attributes of a single object.
//
// Apply validates every change against the object's variant and, for
// reference-valued attributes, against the pool and the legality tables. The
// pool itself is never touched: callers store the returned object, and the
// graph re-checks its invariants when they do.
package configure

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/ritzau/vt-designer/pkg/relations"
)

// MaxStringLength is the longest string value an object may hold, in bytes.
const MaxStringLength = 255

// Change sets one attribute. Value may be a Go value of the attribute's type,
// a decoded JSON value, or a string as typed on a command line.
type Change struct {
	Attr  string `json:"attr"`
	Value any    `json:"value"`
}

// refAttrs maps reference-valued attribute names to the role they edit.
var refAttrs = []struct {
	name string
	role model.Role
}{
	{"font_attributes", model.RoleFont},
	{"line_attributes", model.RoleLine},
	{"fill_attributes", model.RoleFill},
	{"fill_pattern", model.RoleFillPattern},
	{"variable_reference", model.RoleVariable},
	{"target_value_variable", model.RoleTargetVariable},
	{"input_attributes", model.RoleInputAttributes},
	{"soft_key_mask", model.RoleSoftKeyMask},
	{"active_mask", model.RoleActiveMask},
	{"value", model.RolePointer},
	{"auxiliary_object", model.RoleAuxDesignator},
}

func refRole(t model.ObjectType, attr string) (model.Role, bool) {
	for _, ra := range refAttrs {
		if ra.name == attr && slices.Contains(relations.RolesOf(t), ra.role) {
			return ra.role, true
		}
	}
	return "", false
}

// Attributes lists the attribute names Apply accepts for obj.
func Attributes(obj model.Object) []string {
	if obj.Attrs == nil {
		return nil
	}
	var names []string
	for _, f := range fields(obj.Clone().Attrs) {
		names = append(names, f.name)
	}
	for _, ra := range refAttrs {
		if slices.Contains(relations.RolesOf(obj.Type()), ra.role) {
			names = append(names, ra.name)
		}
	}
	return names
}

// maskBound lists the attributes that cannot exceed the mask size.
var maskBound = []string{"width", "height"}

// Apply returns a copy of obj with changes applied in order. Nothing is
// returned unless every change and the resulting object are valid.
func Apply(view graph.View, obj model.Object, changes ...Change) (model.Object, error) {
	return ApplyWithin(view, obj, 0, changes...)
}

// ApplyWithin is Apply on a display maskSize pixels square: a width or height
// set by changes may not exceed it. Zero leaves sizes unbounded.
func ApplyWithin(view graph.View, obj model.Object, maskSize int, changes ...Change) (model.Object, error) {
	if obj.Attrs == nil {
		return model.Object{}, graph.Invalid(obj.ID, "", "object has no attributes")
	}
	if !obj.Type().Supported() {
		return model.Object{}, graph.Invalid(obj.ID, "", "%s objects cannot be edited", obj.Type())
	}

	updated := obj.Clone()
	byName := make(map[string]field)
	for _, f := range fields(updated.Attrs) {
		byName[f.name] = f
	}

	for _, c := range changes {
		if role, ok := refRole(obj.Type(), c.Attr); ok {
			target, err := setReference(view, updated, role, c)
			if err != nil {
				return model.Object{}, err
			}
			updated = target
			continue
		}
		f, ok := byName[c.Attr]
		if !ok {
			return model.Object{}, graph.Invalid(obj.ID, c.Attr, "%s objects have no attribute %q", obj.Type(), c.Attr)
		}
		if err := f.set(c.Value); err != nil {
			return model.Object{}, graph.Invalid(obj.ID, c.Attr, "%v", err)
		}
		if err := checkMaskBound(obj, c, maskSize); err != nil {
			return model.Object{}, err
		}
	}

	if err := check(view, &updated); err != nil {
		return model.Object{}, err
	}
	return updated, nil
}

// checkMaskBound runs after the change was accepted, so its value is a valid number.
func checkMaskBound(obj model.Object, c Change, maskSize int) error {
	// window masks are sized in layout cells
	if maskSize <= 0 || obj.Type() == model.WindowMask || !slices.Contains(maskBound, c.Attr) {
		return nil
	}
	n, err := toInt(c.Value)
	if err != nil {
		return graph.Invalid(obj.ID, c.Attr, "%v", err)
	}
	if n > int64(maskSize) {
		return graph.Invalid(obj.ID, c.Attr, "%d is larger than the %d pixel mask", n, maskSize)
	}
	return nil
}

func setReference(view graph.View, obj model.Object, role model.Role, c Change) (model.Object, error) {
	target, err := toObjectID(c.Value)
	if err != nil {
		return model.Object{}, graph.Invalid(obj.ID, c.Attr, "%v", err)
	}
	if target.IsNull() {
		return obj.WithRef(role, objectid.Null), nil
	}

	to, ok := view.Lookup(target)
	if !ok {
		return model.Object{}, &graph.IDNotFoundError{ID: target}
	}
	if !relations.IsAllowed(view.Version(), obj.Type(), role, to.Type()) {
		return model.Object{}, &graph.TypeNotAllowedError{From: obj.ID, FromType: obj.Type(), Role: role, To: target, ToType: to.Type()}
	}

	if role == model.RolePointer {
		// The target is drawn in place of the pointer, inside each of its parents
		for _, parent := range view.Parents(obj.ID) {
			if !holdsChild(parent, obj.ID) {
				continue
			}
			if !relations.IsAllowed(view.Version(), parent.Type(), model.RoleChild, to.Type()) {
				return model.Object{}, &graph.TypeNotAllowedError{
					From: parent.ID, FromType: parent.Type(), Role: model.RoleChild, To: target, ToType: to.Type(),
				}
			}
		}
	}
	return obj.WithRef(role, target), nil
}

func holdsChild(parent model.Object, id objectid.ObjectID) bool {
	return slices.ContainsFunc(parent.Refs, func(r model.Reference) bool {
		return r.Role == model.RoleChild && r.Target == id
	})
}

// field is one settable attribute bound to the object being edited.
type field struct {
	name string
	set  func(v any) error
}

func uintField[T ~uint8 | ~uint16 | ~uint32](name string, p *T, limit uint64) field {
	return field{name, func(v any) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		if n < 0 || uint64(n) > limit {
			return fmt.Errorf("%d is outside 0..%d", n, limit)
		}
		*p = T(n)
		return nil
	}}
}

func u8(name string, p *uint8) field     { return uintField(name, p, math.MaxUint8) }
func u16(name string, p *uint16) field   { return uintField(name, p, math.MaxUint16) }
func u32(name string, p *uint32) field   { return uintField(name, p, math.MaxUint32) }
func colour(name string, p *uint8) field { return uintField(name, p, math.MaxUint8) }

// enum accepts 0..limit.
func enum(name string, p *uint8, limit uint8) field { return uintField(name, p, uint64(limit)) }

func i16(name string, p *int16) field {
	return field{name, func(v any) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		if n < math.MinInt16 || n > math.MaxInt16 {
			return fmt.Errorf("%d is outside %d..%d", n, math.MinInt16, math.MaxInt16)
		}
		*p = int16(n)
		return nil
	}}
}

func i32(name string, p *int32) field {
	return field{name, func(v any) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return fmt.Errorf("%d is outside the 32-bit range", n)
		}
		*p = int32(n)
		return nil
	}}
}

func f32(name string, p *float32) field {
	return field{name, func(v any) error {
		f, err := toFloat(v)
		if err != nil {
			return err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxFloat32 {
			return fmt.Errorf("%v is not a usable number", f)
		}
		*p = float32(f)
		return nil
	}}
}

func flag(name string, p *bool) field {
	return field{name, func(v any) error {
		switch b := v.(type) {
		case bool:
			*p = b
			return nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return fmt.Errorf("%q is not a boolean", b)
			}
			*p = parsed
			return nil
		}
		return fmt.Errorf("%v is not a boolean", v)
	}}
}

func text(name string, p *string) field {
	return field{name, func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%v is not a string", v)
		}
		if len(s) > MaxStringLength {
			return fmt.Errorf("string is %d bytes long, at most %d are allowed", len(s), MaxStringLength)
		}
		*p = s
		return nil
	}}
}

// structured decodes composite values (option sets, point lists, macro
// commands) through their JSON form. Fields missing from a partial option set
// keep their current value.
func structured[T any](name string, p *T) field {
	return field{name, func(v any) error {
		if typed, ok := v.(T); ok {
			*p = typed
			return nil
		}
		var data []byte
		if s, ok := v.(string); ok {
			data = []byte(s)
		} else {
			var err error
			if data, err = json.Marshal(v); err != nil {
				return err
			}
		}
		next := *p
		if err := json.Unmarshal(data, &next); err != nil {
			return fmt.Errorf("cannot decode %s: %v", name, err)
		}
		*p = next
		return nil
	}}
}

func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%d is too large", n)
		}
		return int64(n), nil
	case float32:
		return toInt(float64(n))
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, fmt.Errorf("%v is not a whole number", n)
		}
		return int64(n), nil
	case json.Number:
		return toInt(string(n))
	case string:
		i, err := strconv.ParseInt(n, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a whole number", n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%v is not a number", v)
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", n)
		}
		return f, nil
	}
	i, err := toInt(v)
	return float64(i), err
}

func toObjectID(v any) (objectid.ObjectID, error) {
	switch id := v.(type) {
	case objectid.ObjectID:
		return id, nil
	case nil:
		return objectid.Null, nil
	case string:
		return objectid.Parse(id)
	}
	n, err := toInt(v)
	if err != nil {
		return objectid.Null, err
	}
	if n < 0 || n > math.MaxUint16 {
		return objectid.Null, fmt.Errorf("%d is not an object id", n)
	}
	return objectid.ObjectID(n), nil
}
