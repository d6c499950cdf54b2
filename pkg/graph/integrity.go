package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/ritzau/vt-designer/pkg/cycles"
	"github.com/ritzau/vt-designer/pkg/logging"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
)

// Record is the raw form of an object at the load and save boundaries.
type Record struct {
	ID         objectid.ObjectID `json:"id"`
	Type       model.ObjectType  `json:"type"`
	Attributes json.RawMessage   `json:"attributes"`
	Refs       []model.Reference `json:"refs,omitempty"`
}

// Assemble builds a graph from decoded records. Nothing is repaired: any
// duplicate id, undecodable or unsupported object, dangling or illegal
// reference, or containment cycle is reported in an IntegrityError.
func Assemble(version model.VtVersion, records []Record) (*Graph, error) {
	if !version.Valid() {
		return nil, &IntegrityError{Problems: []error{fmt.Errorf("unsupported VT version %d", version)}}
	}

	g := New(version)
	var problems []error
	for _, rec := range records {
		if rec.ID.IsNull() {
			problems = append(problems, Invalid(rec.ID, "id", "NULL cannot address an object"))
			continue
		}
		if g.Has(rec.ID) {
			problems = append(problems, &DuplicateIDError{ID: rec.ID})
			continue
		}
		attrs, err := model.DecodeAttributes(rec.Type, rec.Attributes)
		if err != nil {
			problems = append(problems, fmt.Errorf("object %s: %w", rec.ID, err))
			continue
		}
		g.objects[rec.ID] = model.Object{
			ID:    rec.ID,
			UID:   uuid.New(),
			Attrs: attrs,
			Refs:  slices.Clone(rec.Refs),
		}
		if err := g.registry.Reserve(rec.ID); err != nil {
			delete(g.objects, rec.ID)
			problems = append(problems, fmt.Errorf("object %s: %w", rec.ID, err))
			continue
		}
		g.order = append(g.order, rec.ID)
	}

	var integrity *IntegrityError
	if err := g.Validate(); errors.As(err, &integrity) {
		problems = append(problems, integrity.Problems...)
	}
	if len(problems) > 0 {
		logging.Debug("Object pool rejected", "records", len(records), "problems", len(problems))
		return nil, &IntegrityError{Problems: problems}
	}

	logging.Debug("Object pool assembled", "objects", g.Len(), "version", version.String())
	return g, nil
}

// Records returns the save-boundary form of every object by ascending id.
func (g *Graph) Records() ([]Record, error) {
	objs := g.Ordered()
	records := make([]Record, 0, len(objs))
	for _, obj := range objs {
		data, err := model.EncodeAttributes(obj.Attrs)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", obj.ID, err)
		}
		records = append(records, Record{
			ID:         obj.ID,
			Type:       obj.Type(),
			Attributes: data,
			Refs:       slices.Clone(obj.Refs),
		})
	}
	return records, nil
}

// Validate checks every invariant over the whole graph and reports all
// violations at once.
func (g *Graph) Validate() error {
	var problems []error
	edges := make(map[objectid.ObjectID][]objectid.ObjectID)

	for _, id := range g.order {
		obj := g.objects[id]
		if !obj.Type().Supported() {
			problems = append(problems, Invalid(id, "", "%s objects cannot be edited", obj.Type()))
		}

		counts := make(map[model.Role]int)
		for _, ref := range obj.Refs {
			counts[ref.Role]++
			if ref.Role.Single() && counts[ref.Role] == 2 {
				problems = append(problems, Invalid(id, string(ref.Role), "only one %s reference is allowed", ref.Role))
			}

			to, ok := g.objects[ref.Target]
			if !ok {
				problems = append(problems, fmt.Errorf("dangling reference from %s: %w", id, &IDNotFoundError{ID: ref.Target}))
				continue
			}
			if ref.Role.Renderable() {
				edges[id] = append(edges[id], ref.Target)
			}
			if err := g.checkLegal(obj, ref, to); err != nil {
				problems = append(problems, err)
				continue
			}
			// checked at the end of each pointer chain only, so each conflict is reported once
			if ref.Role == model.RolePointer && to.Type() != model.ObjectPointer {
				if err := g.pointerConflict(id, to); err != nil {
					problems = append(problems, err)
				}
			}
		}
	}

	for _, c := range cycles.FindContainmentCycles(edges) {
		problems = append(problems, fmt.Errorf("objects %v contain each other: %w", c.Objects, ErrCycleDetected))
	}

	if len(problems) > 0 {
		return &IntegrityError{Problems: problems}
	}
	return nil
}
