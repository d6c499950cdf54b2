package graph

import (
	"slices"

	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/ritzau/vt-designer/pkg/relations"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// AddReference adds ref to the object from. For single-valued roles the
// existing reference of that role is replaced.
func (g *Graph) AddReference(from objectid.ObjectID, ref model.Reference) error {
	obj, ok := g.objects[from]
	if !ok {
		return &IDNotFoundError{ID: from}
	}
	if !g.Has(ref.Target) {
		return &IDNotFoundError{ID: ref.Target}
	}

	updated := obj.Clone()
	if ref.Role.Single() {
		updated.Refs = slices.DeleteFunc(updated.Refs, func(r model.Reference) bool { return r.Role == ref.Role })
	}
	updated.Refs = append(updated.Refs, ref)
	return g.Replace(updated)
}

// RemoveReference drops the index-th reference of role from the object.
func (g *Graph) RemoveReference(from objectid.ObjectID, role model.Role, index int) error {
	obj, ok := g.objects[from]
	if !ok {
		return &IDNotFoundError{ID: from}
	}

	n := 0
	for i, r := range obj.Refs {
		if r.Role != role {
			continue
		}
		if n == index {
			updated := obj.Clone()
			updated.Refs = slices.Delete(updated.Refs, i, i+1)
			g.objects[from] = updated
			return nil
		}
		n++
	}
	return Invalid(from, string(role), "no %s reference at index %d", role, index)
}

// SetReferences replaces the whole reference list of an object.
func (g *Graph) SetReferences(from objectid.ObjectID, refs []model.Reference) error {
	obj, ok := g.objects[from]
	if !ok {
		return &IDNotFoundError{ID: from}
	}
	updated := obj.Clone()
	updated.Refs = slices.Clone(refs)
	return g.Replace(updated)
}

// checkObject validates the outgoing references of obj, which must already be
// stored in the graph.
func (g *Graph) checkObject(obj model.Object) error {
	var containers map[objectid.ObjectID]bool
	counts := make(map[model.Role]int)
	for _, ref := range obj.Refs {
		if ref.Role.Renderable() && containers == nil {
			containers = g.ancestors(obj.ID)
		}
		if err := g.checkRef(obj, ref, containers); err != nil {
			return err
		}
		counts[ref.Role]++
		if ref.Role.Single() && counts[ref.Role] > 1 {
			return Invalid(obj.ID, string(ref.Role), "only one %s reference is allowed", ref.Role)
		}
	}
	return nil
}

// checkRef validates one reference. containers holds from and every object
// that contains it; it is only consulted for renderable roles.
func (g *Graph) checkRef(from model.Object, ref model.Reference, containers map[objectid.ObjectID]bool) error {
	to, ok := g.objects[ref.Target]
	if !ok {
		return &IDNotFoundError{ID: ref.Target}
	}
	if err := g.checkLegal(from, ref, to); err != nil {
		return err
	}
	if err := g.checkPointerRules(from, ref, to); err != nil {
		return err
	}
	if ref.Role.Renderable() && containers[ref.Target] {
		return &CycleDetectedError{From: from.ID, To: ref.Target}
	}
	return nil
}

// checkLegal applies the legality tables and the macro event rules to one reference.
func (g *Graph) checkLegal(from model.Object, ref model.Reference, to model.Object) error {
	if !relations.IsAllowed(g.version, from.Type(), ref.Role, to.Type()) {
		return &TypeNotAllowedError{From: from.ID, FromType: from.Type(), Role: ref.Role, To: to.ID, ToType: to.Type()}
	}

	if ref.Role == model.RoleMacro {
		if !relations.CanRaise(from.Type(), ref.Event) {
			return Invalid(from.ID, "event", "%s objects do not raise %s", from.Type(), ref.Event)
		}
	} else if ref.Event != model.EventNone {
		return Invalid(from.ID, "event", "only macro references carry an event")
	}
	return nil
}

// checkPointerRules makes sure an object pointer never shows its target inside
// a parent that could not hold that target directly. Pointers may point at
// pointers, so both ends of a chain are followed.
func (g *Graph) checkPointerRules(from model.Object, ref model.Reference, to model.Object) error {
	switch {
	case ref.Role == model.RolePointer:
		// the pointed-at object is drawn inside every holder of the pointer
		if target, ok := g.shownTarget(to); ok {
			return g.pointerConflict(from.ID, target)
		}
	case ref.Role == model.RoleChild && to.Type() == model.ObjectPointer:
		if target, ok := g.shownTarget(to); ok {
			return g.pointerConflict(to.ID, target)
		}
	}
	return nil
}

// shownTarget follows a chain of object pointers to the object that is drawn
// in its place. It fails when the chain ends in NULL or loops.
func (g *Graph) shownTarget(obj model.Object) (model.Object, bool) {
	seen := make(map[objectid.ObjectID]bool)
	for obj.Type() == model.ObjectPointer {
		if seen[obj.ID] {
			return model.Object{}, false
		}
		seen[obj.ID] = true
		next, ok := g.objects[obj.Ref(model.RolePointer)]
		if !ok {
			return model.Object{}, false
		}
		obj = next
	}
	return obj, true
}

// pointerHolders returns the objects that hold pointer as a child, directly or
// through other object pointers pointing at it.
func (g *Graph) pointerHolders(pointer objectid.ObjectID) []model.Object {
	var holders []model.Object
	seen := make(map[objectid.ObjectID]bool)
	queue := []objectid.ObjectID{pointer}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		holders = append(holders, g.parentsVia(id, model.RoleChild)...)
		for _, p := range g.parentsVia(id, model.RolePointer) {
			queue = append(queue, p.ID)
		}
	}
	return holders
}

// pointerConflict reports a holder of the pointer that may not hold target as a child.
func (g *Graph) pointerConflict(pointer objectid.ObjectID, target model.Object) error {
	for _, parent := range g.pointerHolders(pointer) {
		if !relations.IsAllowed(g.version, parent.Type(), model.RoleChild, target.Type()) {
			return &TypeNotAllowedError{
				From:     parent.ID,
				FromType: parent.Type(),
				Role:     model.RoleChild,
				To:       target.ID,
				ToType:   target.Type(),
			}
		}
	}
	return nil
}

// renderGraph builds the containment relation as a gonum graph. Self references
// and dangling targets are left out; callers handle them separately.
func (g *Graph) renderGraph() *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for id := range g.objects {
		dg.AddNode(simple.Node(int64(id)))
	}
	for id, obj := range g.objects {
		for _, ref := range obj.Refs {
			if !ref.Role.Renderable() || ref.Target == id || !g.Has(ref.Target) {
				continue
			}
			if !dg.HasEdgeFromTo(int64(id), int64(ref.Target)) {
				dg.SetEdge(dg.NewEdge(dg.Node(int64(id)), dg.Node(int64(ref.Target))))
			}
		}
	}
	return dg
}

// Contains reports whether from transitively renders to. Every object contains itself.
func (g *Graph) Contains(from, to objectid.ObjectID) bool {
	if from == to {
		return true
	}
	if !g.Has(from) || !g.Has(to) {
		return false
	}
	dg := g.renderGraph()
	return topo.PathExistsIn(dg, dg.Node(int64(from)), dg.Node(int64(to)))
}

// ancestors returns id and every object that transitively contains it.
func (g *Graph) ancestors(id objectid.ObjectID) map[objectid.ObjectID]bool {
	seen := map[objectid.ObjectID]bool{id: true}
	if !g.Has(id) {
		return seen
	}
	dg := g.renderGraph()
	queue := []int64{int64(id)}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		to := dg.To(next)
		for to.Next() {
			pid := objectid.ObjectID(to.Node().ID())
			if !seen[pid] {
				seen[pid] = true
				queue = append(queue, int64(pid))
			}
		}
	}
	return seen
}
