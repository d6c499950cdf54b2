package editor

import (
	"fmt"
	"strings"

	"github.com/ritzau/vt-designer/pkg/configure"
	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/naming"
	"github.com/ritzau/vt-designer/pkg/objectid"
)

// AddObject creates an object of type t from its template under the smallest
// free id. With smart naming on, the object also gets a default name.
func (p *Project) AddObject(t model.ObjectType) (objectid.ObjectID, error) {
	id := objectid.Null
	err := p.Apply("add "+naming.TypeName(t), func(g *graph.Graph) error {
		var err error
		if id, err = g.Add(t); err != nil {
			return err
		}
		return p.autoName(g, id)
	})
	if err != nil {
		return objectid.Null, err
	}
	return id, nil
}

// Insert adds a fully built object under its own id.
func (p *Project) Insert(obj model.Object) error {
	return p.Apply(fmt.Sprintf("insert %s", obj.ID), func(g *graph.Graph) error {
		if err := g.Insert(obj); err != nil {
			return err
		}
		return p.autoName(g, obj.ID)
	})
}

func (p *Project) autoName(g *graph.Graph, id objectid.ObjectID) error {
	if !p.smart {
		return nil
	}
	if _, named := g.Name(id); named {
		return nil
	}
	obj, err := g.Resolve(id)
	if err != nil {
		return err
	}
	if name := naming.NameFor(g, obj); name != "" {
		return g.SetName(id, name)
	}
	return nil
}

// Remove deletes an object. Without cascade it fails while other objects
// refer to it.
func (p *Project) Remove(id objectid.ObjectID, cascade bool) error {
	return p.Apply(fmt.Sprintf("remove %s", p.graph.DisplayName(id)), func(g *graph.Graph) error {
		return g.Remove(id, cascade)
	})
}

// ChangeID moves an object to a new id. The selection follows the object.
func (p *Project) ChangeID(oldID, newID objectid.ObjectID) error {
	return p.Apply(fmt.Sprintf("change id %s to %s", oldID, newID), func(g *graph.Graph) error {
		return g.ChangeID(oldID, newID)
	})
}

// AddReference adds a reference from an object.
func (p *Project) AddReference(from objectid.ObjectID, ref model.Reference) error {
	return p.Apply(fmt.Sprintf("add %s reference to %s", ref.Role, p.graph.DisplayName(from)), func(g *graph.Graph) error {
		if err := p.checkPlacement(g, from, ref); err != nil {
			return err
		}
		return g.AddReference(from, ref)
	})
}

// RemoveReference drops the index-th reference of role from an object.
func (p *Project) RemoveReference(from objectid.ObjectID, role model.Role, index int) error {
	return p.Apply(fmt.Sprintf("remove %s reference from %s", role, p.graph.DisplayName(from)), func(g *graph.Graph) error {
		return g.RemoveReference(from, role, index)
	})
}

// Configure changes attributes of one object. Either every change is applied
// or none is.
func (p *Project) Configure(id objectid.ObjectID, changes ...configure.Change) error {
	label := fmt.Sprintf("configure %s: %s", p.graph.DisplayName(id), strings.Join(configure.Describe(changes), ", "))
	return p.Apply(label, func(g *graph.Graph) error {
		obj, err := g.Resolve(id)
		if err != nil {
			return err
		}
		updated, err := configure.ApplyWithin(g, obj, p.sizes.Mask, changes...)
		if err != nil {
			return err
		}
		return g.Replace(updated)
	})
}

// Rename gives an object a custom label. Labels must be non-blank and unique.
func (p *Project) Rename(id objectid.ObjectID, label string) error {
	return p.Apply(fmt.Sprintf("rename %s to %q", id, label), func(g *graph.Graph) error {
		if !g.Has(id) {
			return &graph.IDNotFoundError{ID: id}
		}
		used := g.UsedNames()
		if current, ok := g.Name(id); ok {
			used[current]--
		}
		if err := naming.ValidateLabel(label, used); err != nil {
			return err
		}
		return g.SetName(id, label)
	})
}

// ClearName drops the custom label of an object.
func (p *Project) ClearName(id objectid.ObjectID) error {
	return p.Apply(fmt.Sprintf("clear name of %s", id), func(g *graph.Graph) error {
		if !g.Has(id) {
			return &graph.IDNotFoundError{ID: id}
		}
		g.DeleteName(id)
		return nil
	})
}

// NameAll names every unnamed object and returns how many got a name.
func (p *Project) NameAll() (int, error) {
	named := 0
	err := p.Apply("name all objects", func(g *graph.Graph) error {
		named = naming.NameAll(g)
		return nil
	})
	return named, err
}
