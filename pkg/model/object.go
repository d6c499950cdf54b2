package model

import (
	"slices"

	"github.com/google/uuid"
	"github.com/ritzau/vt-designer/pkg/objectid"
)

// Reference is a typed edge from one object to another.
type Reference struct {
	Target objectid.ObjectID `json:"target"`
	Role   Role              `json:"role"`
	X      int16             `json:"x,omitempty"`     // Child placement relative to the parent
	Y      int16             `json:"y,omitempty"`     // Child placement relative to the parent
	Event  Event             `json:"event,omitempty"` // Only for RoleMacro
}

// Attributes is the variant-specific data of an object.
// The set of implementations is closed; see the types in attributes.go.
type Attributes interface {
	Type() ObjectType
	clone() Attributes
}

// Object is one node of an object pool.
type Object struct {
	ID    objectid.ObjectID
	UID   uuid.UUID // Stable identity, unaffected by id changes
	Attrs Attributes
	Refs  []Reference
}

// New creates an object of the given type with default attributes and no references.
func New(id objectid.ObjectID, t ObjectType) (Object, error) {
	attrs, err := Default(t)
	if err != nil {
		return Object{}, err
	}
	return Object{ID: id, UID: uuid.New(), Attrs: attrs}, nil
}

// Type returns the object type of the variant.
func (o Object) Type() ObjectType {
	return o.Attrs.Type()
}

// Clone returns a deep copy.
func (o Object) Clone() Object {
	c := o
	c.Refs = slices.Clone(o.Refs)
	if o.Attrs != nil {
		c.Attrs = o.Attrs.clone()
	}
	return c
}

// RefsWithRole returns the references of one role in list order.
func (o Object) RefsWithRole(role Role) []Reference {
	var refs []Reference
	for _, r := range o.Refs {
		if r.Role == role {
			refs = append(refs, r)
		}
	}
	return refs
}

// Ref returns the single reference of a role, or Null when there is none.
func (o Object) Ref(role Role) objectid.ObjectID {
	for _, r := range o.Refs {
		if r.Role == role {
			return r.Target
		}
	}
	return objectid.Null
}

// WithRef returns a copy where the single-valued role points at target.
// A Null target removes the reference.
func (o Object) WithRef(role Role, target objectid.ObjectID) Object {
	c := o.Clone()
	c.Refs = slices.DeleteFunc(c.Refs, func(r Reference) bool { return r.Role == role })
	if !target.IsNull() {
		c.Refs = append(c.Refs, Reference{Target: target, Role: role})
	}
	return c
}

// RefersTo reports whether any reference of o targets id.
func (o Object) RefersTo(id objectid.ObjectID) bool {
	for _, r := range o.Refs {
		if r.Target == id {
			return true
		}
	}
	return false
}
