package graph

import (
	"maps"
	"slices"

	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/ritzau/vt-designer/pkg/relations"
)

// Referrers returns, by ascending id, every other object holding a reference to id.
func (g *Graph) Referrers(id objectid.ObjectID) []objectid.ObjectID {
	var referrers []objectid.ObjectID
	for oid, obj := range g.objects {
		if oid != id && obj.RefersTo(id) {
			referrers = append(referrers, oid)
		}
	}
	slices.Sort(referrers)
	return referrers
}

// Parents returns the objects that render id, by ascending id.
func (g *Graph) Parents(id objectid.ObjectID) []model.Object {
	var parents []model.Object
	for _, pid := range g.Referrers(id) {
		obj := g.objects[pid]
		if slices.ContainsFunc(obj.Refs, func(r model.Reference) bool {
			return r.Target == id && r.Role.Renderable()
		}) {
			parents = append(parents, obj.Clone())
		}
	}
	return parents
}

func (g *Graph) parentsVia(id objectid.ObjectID, role model.Role) []model.Object {
	var parents []model.Object
	for _, pid := range g.Referrers(id) {
		obj := g.objects[pid]
		if slices.ContainsFunc(obj.Refs, func(r model.Reference) bool {
			return r.Target == id && r.Role == role
		}) {
			parents = append(parents, obj)
		}
	}
	return parents
}

// ObjectsByType returns, in insertion order, copies of the objects of the given types.
func (g *Graph) ObjectsByType(types ...model.ObjectType) []model.Object {
	var objs []model.Object
	for _, id := range g.order {
		obj := g.objects[id]
		if slices.Contains(types, obj.Type()) {
			objs = append(objs, obj.Clone())
		}
	}
	return objs
}

// Roots returns, in insertion order, the objects no other object renders.
func (g *Graph) Roots() []objectid.ObjectID {
	rendered := make(map[objectid.ObjectID]bool)
	for _, obj := range g.objects {
		for _, ref := range obj.Refs {
			if ref.Role.Renderable() {
				rendered[ref.Target] = true
			}
		}
	}
	var roots []objectid.ObjectID
	for _, id := range g.order {
		if !rendered[id] {
			roots = append(roots, id)
		}
	}
	return roots
}

// Candidates lists, in insertion order, the objects that from could reference
// with role without breaking an invariant. This backs reference pickers.
func (g *Graph) Candidates(from objectid.ObjectID, role model.Role) ([]objectid.ObjectID, error) {
	obj, ok := g.objects[from]
	if !ok {
		return nil, &IDNotFoundError{ID: from}
	}

	var excluded map[objectid.ObjectID]bool
	if role.Renderable() {
		excluded = g.ancestors(from)
	}

	var ids []objectid.ObjectID
	for _, id := range g.order {
		if excluded[id] {
			continue
		}
		ref := model.Reference{Target: id, Role: role, Event: firstEvent(obj, role)}
		if g.checkLegal(obj, ref, g.objects[id]) != nil || g.checkPointerRules(obj, ref, g.objects[id]) != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func firstEvent(obj model.Object, role model.Role) model.Event {
	if role != model.RoleMacro {
		return model.EventNone
	}
	events := relations.PossibleEvents(obj.Type())
	if len(events) == 0 {
		return model.EventNone
	}
	return events[0]
}

// TypeCounts returns how many objects of each type the pool holds.
func (g *Graph) TypeCounts() map[model.ObjectType]int {
	counts := make(map[model.ObjectType]int)
	for _, obj := range g.objects {
		counts[obj.Type()]++
	}
	return counts
}

// UsedNames returns how often each custom name is in use.
func (g *Graph) UsedNames() map[string]int {
	used := make(map[string]int, len(g.names))
	for name := range maps.Values(g.names) {
		used[name]++
	}
	return used
}
