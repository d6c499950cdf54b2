// Package graph holds an object pool: typed objects, the references between
// them and the custom names users gave them.
//
// Every mutating method either succeeds with all invariants intact or fails
// and leaves the graph unchanged:
//   - ids are unique and never NULL
//   - every reference resolves to an object of the same graph
//   - every reference is legal for the graph's VT version
//   - single-valued roles hold at most one reference
//   - no object contains itself through renderable references
package graph

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/google/uuid"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
)

// Graph is an object pool.
type Graph struct {
	version  model.VtVersion
	objects  map[objectid.ObjectID]model.Object
	order    []objectid.ObjectID // Insertion order, for stable listings
	registry objectid.Registry
	names    map[objectid.ObjectID]string
}

// View is read-only access to a graph.
type View interface {
	Version() model.VtVersion
	Lookup(id objectid.ObjectID) (model.Object, bool)
	Parents(id objectid.ObjectID) []model.Object
}

// New creates an empty graph targeting version.
func New(version model.VtVersion) *Graph {
	return &Graph{
		version: version,
		objects: make(map[objectid.ObjectID]model.Object),
		names:   make(map[objectid.ObjectID]string),
	}
}

// Version returns the VT version the pool targets.
func (g *Graph) Version() model.VtVersion {
	return g.version
}

// Len returns the number of objects.
func (g *Graph) Len() int {
	return len(g.objects)
}

// Has reports whether id names an object.
func (g *Graph) Has(id objectid.ObjectID) bool {
	_, ok := g.objects[id]
	return ok
}

// Lookup returns a copy of the object with the given id.
func (g *Graph) Lookup(id objectid.ObjectID) (model.Object, bool) {
	obj, ok := g.objects[id]
	if !ok {
		return model.Object{}, false
	}
	return obj.Clone(), true
}

// Resolve is Lookup with a typed error.
func (g *Graph) Resolve(id objectid.ObjectID) (model.Object, error) {
	obj, ok := g.Lookup(id)
	if !ok {
		return model.Object{}, &IDNotFoundError{ID: id}
	}
	return obj, nil
}

// IDs returns all ids in insertion order.
func (g *Graph) IDs() []objectid.ObjectID {
	return slices.Clone(g.order)
}

// Objects returns copies of all objects in insertion order.
func (g *Graph) Objects() []model.Object {
	objs := make([]model.Object, 0, len(g.order))
	for _, id := range g.order {
		objs = append(objs, g.objects[id].Clone())
	}
	return objs
}

// Ordered returns copies of all objects by ascending id.
func (g *Graph) Ordered() []model.Object {
	ids := slices.Sorted(maps.Keys(g.objects))
	objs := make([]model.Object, 0, len(ids))
	for _, id := range ids {
		objs = append(objs, g.objects[id].Clone())
	}
	return objs
}

// Insert adds obj under its own id. The object's references are checked
// like AddReference would check them. A missing or clashing UID is replaced.
func (g *Graph) Insert(obj model.Object) error {
	if obj.Attrs == nil {
		return Invalid(obj.ID, "", "object has no attributes")
	}
	if !obj.Type().Supported() {
		return Invalid(obj.ID, "", "%s objects cannot be edited", obj.Type())
	}
	if obj.ID.IsNull() {
		return Invalid(obj.ID, "id", "NULL cannot address an object")
	}
	if g.Has(obj.ID) {
		return &DuplicateIDError{ID: obj.ID}
	}

	obj = obj.Clone()
	if _, taken := g.FindUID(obj.UID); taken || obj.UID == uuid.Nil {
		obj.UID = uuid.New()
	}

	g.objects[obj.ID] = obj
	if err := g.checkObject(obj); err != nil {
		delete(g.objects, obj.ID)
		return err
	}
	if err := g.registry.Reserve(obj.ID); err != nil {
		delete(g.objects, obj.ID)
		return fmt.Errorf("object %s: registry out of sync: %w", obj.ID, err)
	}
	g.order = append(g.order, obj.ID)
	return nil
}

// Add creates an object of type t from its template under the smallest free id.
func (g *Graph) Add(t model.ObjectType) (objectid.ObjectID, error) {
	if !t.Supported() {
		return objectid.Null, Invalid(objectid.Null, "type", "%s objects cannot be edited", t)
	}
	registry := g.registry
	id, err := registry.Allocate()
	if err != nil {
		return objectid.Null, err
	}
	obj, err := model.New(id, t)
	if err != nil {
		return objectid.Null, err
	}
	if err := g.Insert(obj); err != nil {
		return objectid.Null, err
	}
	return id, nil
}

// Replace swaps in a new version of an existing object. The type cannot change.
func (g *Graph) Replace(obj model.Object) error {
	old, ok := g.objects[obj.ID]
	if !ok {
		return &IDNotFoundError{ID: obj.ID}
	}
	if obj.Attrs == nil || obj.Type() != old.Type() {
		return Invalid(obj.ID, "type", "cannot change the type of a %s", old.Type())
	}

	obj = obj.Clone()
	obj.UID = old.UID
	g.objects[obj.ID] = obj
	if err := g.checkObject(obj); err != nil {
		g.objects[obj.ID] = old
		return err
	}
	return nil
}

// Remove deletes an object. When other objects still refer to it the call fails
// with a ReferencedElsewhereError, unless cascade is set, in which case those
// references are dropped first.
func (g *Graph) Remove(id objectid.ObjectID, cascade bool) error {
	if !g.Has(id) {
		return &IDNotFoundError{ID: id}
	}

	referrers := g.Referrers(id)
	if len(referrers) > 0 && !cascade {
		return &ReferencedElsewhereError{ID: id, Referrers: referrers}
	}
	for _, rid := range referrers {
		obj := g.objects[rid].Clone()
		obj.Refs = slices.DeleteFunc(obj.Refs, func(r model.Reference) bool { return r.Target == id })
		g.objects[rid] = obj
	}

	delete(g.objects, id)
	delete(g.names, id)
	g.order = slices.DeleteFunc(g.order, func(o objectid.ObjectID) bool { return o == id })
	g.registry.Release(id)
	return nil
}

// ChangeID moves the object at oldID to newID, rewriting every reference to it
// and carrying its custom name along.
func (g *Graph) ChangeID(oldID, newID objectid.ObjectID) error {
	if !g.Has(oldID) {
		return &IDNotFoundError{ID: oldID}
	}
	if oldID == newID {
		return nil
	}
	if newID.IsNull() {
		return Invalid(oldID, "id", "NULL cannot address an object")
	}
	if g.Has(newID) {
		return fmt.Errorf("cannot move object %s to %s: %w", oldID, newID, ErrIDInUse)
	}
	if err := g.registry.Reserve(newID); err != nil {
		return fmt.Errorf("cannot move object %s to %s: registry out of sync: %w", oldID, newID, err)
	}

	for id, obj := range g.objects {
		if !obj.RefersTo(oldID) {
			continue
		}
		obj = obj.Clone()
		for i := range obj.Refs {
			if obj.Refs[i].Target == oldID {
				obj.Refs[i].Target = newID
			}
		}
		g.objects[id] = obj
	}

	obj := g.objects[oldID]
	obj.ID = newID
	delete(g.objects, oldID)
	g.objects[newID] = obj

	g.order[slices.Index(g.order, oldID)] = newID
	if name, ok := g.names[oldID]; ok {
		delete(g.names, oldID)
		g.names[newID] = name
	}
	g.registry.Release(oldID)
	return nil
}

// Name returns the custom name of an object.
func (g *Graph) Name(id objectid.ObjectID) (string, bool) {
	name, ok := g.names[id]
	return name, ok
}

// SetName sets the custom name of an object. An empty name removes it.
func (g *Graph) SetName(id objectid.ObjectID, name string) error {
	if !g.Has(id) {
		return &IDNotFoundError{ID: id}
	}
	if name == "" {
		delete(g.names, id)
		return nil
	}
	g.names[id] = name
	return nil
}

// DeleteName drops the custom name of an object, if any.
func (g *Graph) DeleteName(id objectid.ObjectID) {
	delete(g.names, id)
}

// Names returns a copy of the custom name map.
func (g *Graph) Names() map[objectid.ObjectID]string {
	return maps.Clone(g.names)
}

// DisplayName is the custom name, or "<id>: <type>" when there is none.
func (g *Graph) DisplayName(id objectid.ObjectID) string {
	if name, ok := g.names[id]; ok {
		return name
	}
	if obj, ok := g.objects[id]; ok {
		return fmt.Sprintf("%s: %s", id, obj.Type())
	}
	return fmt.Sprintf("%s: missing", id)
}

// FindUID returns the current id of the object with the given UID.
func (g *Graph) FindUID(uid uuid.UUID) (objectid.ObjectID, bool) {
	for id, obj := range g.objects {
		if obj.UID == uid {
			return id, true
		}
	}
	return objectid.Null, false
}

// Clone returns a deep copy.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		version:  g.version,
		objects:  make(map[objectid.ObjectID]model.Object, len(g.objects)),
		order:    slices.Clone(g.order),
		registry: g.registry,
		names:    make(map[objectid.ObjectID]string, len(g.names)),
	}
	for id, obj := range g.objects {
		c.objects[id] = obj.Clone()
	}
	maps.Copy(c.names, g.names)
	return c
}

// Equal reports whether two graphs hold the same objects, order and names.
// A nil and an empty reference list are equal.
func (g *Graph) Equal(o *Graph) bool {
	return g.version == o.version &&
		slices.Equal(g.order, o.order) &&
		maps.Equal(g.names, o.names) &&
		maps.EqualFunc(g.objects, o.objects, sameObject)
}

func sameObject(a, b model.Object) bool {
	return a.ID == b.ID &&
		a.UID == b.UID &&
		slices.Equal(a.Refs, b.Refs) &&
		reflect.DeepEqual(a.Attrs, b.Attrs)
}
