// Package projectfile reads and writes object pools as YAML project files.
//
// A project file lists the objects by ascending id:
//
//	vt_version: 6
//	objects:
//	  - id: 10
//	    type: Container
//	    name: Header Container
//	    attributes:
//	      width: 480
//	      height: 80
//	    refs:
//	      - {target: 11, role: child, x: 4, y: 4}
//
// Attributes absent from the file keep the template value of the type.
package projectfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/logging"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a project.
type Document struct {
	Version model.VtVersion `yaml:"vt_version"`
	Objects []Entry         `yaml:"objects"`
}

// Entry is one object of a project file.
type Entry struct {
	ID         objectid.ObjectID `yaml:"id"`
	Type       model.ObjectType  `yaml:"type"`
	Name       string            `yaml:"name,omitempty"`
	Attributes yaml.Node         `yaml:"attributes,omitempty"`
	Refs       []Ref             `yaml:"refs,omitempty"`
}

// Ref is one reference of an entry. Event is only written for macro references.
type Ref struct {
	Target objectid.ObjectID `yaml:"target"`
	Role   model.Role        `yaml:"role"`
	X      int16             `yaml:"x,omitempty"`
	Y      int16             `yaml:"y,omitempty"`
	Event  *model.Event      `yaml:"event,omitempty"`
}

// Decode reads a project and assembles its pool. The pool is rejected as a
// whole when any object or reference is invalid.
func Decode(r io.Reader) (*graph.Graph, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing project: %w", err)
	}
	if doc.Version == 0 {
		doc.Version = model.DefaultVersion
	}

	records := make([]graph.Record, 0, len(doc.Objects))
	for _, e := range doc.Objects {
		rec, err := e.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	g, err := graph.Assemble(doc.Version, records)
	if err != nil {
		return nil, err
	}
	for _, e := range doc.Objects {
		if e.Name != "" {
			if err := g.SetName(e.ID, e.Name); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func (e Entry) record() (graph.Record, error) {
	rec := graph.Record{ID: e.ID, Type: e.Type}
	if e.Attributes.Kind != 0 {
		var attrs any
		if err := e.Attributes.Decode(&attrs); err != nil {
			return rec, fmt.Errorf("object %s: attributes: %w", e.ID, err)
		}
		data, err := json.Marshal(attrs)
		if err != nil {
			return rec, fmt.Errorf("object %s: attributes: %w", e.ID, err)
		}
		rec.Attributes = data
	}
	for _, r := range e.Refs {
		ref := model.Reference{Target: r.Target, Role: r.Role, X: r.X, Y: r.Y}
		if r.Event != nil {
			ref.Event = *r.Event
		}
		rec.Refs = append(rec.Refs, ref)
	}
	return rec, nil
}

// Encode writes g as a project.
func Encode(w io.Writer, g *graph.Graph) error {
	records, err := g.Records()
	if err != nil {
		return err
	}

	doc := Document{Version: g.Version(), Objects: make([]Entry, 0, len(records))}
	for _, rec := range records {
		e := Entry{ID: rec.ID, Type: rec.Type}
		e.Name, _ = g.Name(rec.ID)

		// JSON is YAML: parse the attribute JSON as a node and drop the flow
		// styles so the file reads as plain block YAML.
		var node yaml.Node
		if err := yaml.Unmarshal(rec.Attributes, &node); err != nil {
			return fmt.Errorf("object %s: attributes: %w", rec.ID, err)
		}
		if len(node.Content) > 0 {
			e.Attributes = *blockStyle(node.Content[0])
		}

		for _, ref := range rec.Refs {
			r := Ref{Target: ref.Target, Role: ref.Role, X: ref.X, Y: ref.Y}
			if ref.Role == model.RoleMacro {
				event := ref.Event
				r.Event = &event
			}
			e.Refs = append(e.Refs, r)
		}
		doc.Objects = append(doc.Objects, e)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("writing project: %w", err)
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) *yaml.Node {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
	return n
}

// Load reads the project file at path.
func Load(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening project: %w", err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Info("Project loaded", "path", path, "objects", g.Len(), "version", g.Version().String())
	return g, nil
}

// Save writes g to path. The file is replaced in one step so a failed save
// never leaves a truncated project behind.
func Save(path string, g *graph.Graph) error {
	var buf bytes.Buffer
	if err := Encode(&buf, g); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".vt-designer-*.yaml")
	if err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("saving project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	logging.Info("Project saved", "path", path, "objects", g.Len())
	return nil
}
