package output

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/naming"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/ritzau/vt-designer/pkg/render"
)

var (
	bold   = color.New(color.Bold)
	red    = color.New(color.FgRed)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
)

// PrintCheckReport prints the outcome of loading a project file. g is nil
// when loading failed with loadErr.
func PrintCheckReport(w io.Writer, path string, g *graph.Graph, loadErr error) {
	bold.Fprintln(w, "VT Designer - Object Pool Check")
	bold.Fprintln(w, "===============================")
	fmt.Fprintf(w, "Project: %s\n", path)

	if loadErr != nil {
		problems := []error{loadErr}
		var integrity *graph.IntegrityError
		if errors.As(loadErr, &integrity) {
			problems = integrity.Problems
		}
		fmt.Fprintln(w)
		red.Fprintf(w, "PROBLEMS (%d):\n", len(problems))
		for _, p := range problems {
			yellow.Fprintf(w, "  %s\n", p)
		}
		fmt.Fprintln(w)
		red.Fprintln(w, "✗ The object pool cannot be loaded")
		return
	}

	fmt.Fprintf(w, "Target: %s\n", g.Version())
	fmt.Fprintf(w, "Objects: %d (%d named)\n", g.Len(), len(g.Names()))
	fmt.Fprintln(w)

	counts := g.TypeCounts()
	types := make([]model.ObjectType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	slices.Sort(types)
	for _, t := range types {
		cyan.Fprintf(w, "  %-28s", naming.TypeName(t))
		fmt.Fprintf(w, " %d\n", counts[t])
	}
	if len(types) > 0 {
		fmt.Fprintln(w)
	}

	roots := g.Roots()
	if len(g.ObjectsByType(model.WorkingSet)) == 0 && g.Len() > 0 {
		yellow.Fprintln(w, "Note: the pool has no working set")
	}
	fmt.Fprintf(w, "Top-level objects: %d\n", len(roots))
	green.Fprintln(w, "✓ The object pool is consistent")
}

// PrintTree prints the render hierarchy from every top-level object.
func PrintTree(w io.Writer, g *graph.Graph) {
	for _, id := range g.Roots() {
		printNode(w, g, id, "", "")
	}
}

func printNode(w io.Writer, g *graph.Graph, id objectid.ObjectID, indent, placement string) {
	obj, ok := g.Lookup(id)
	if !ok {
		red.Fprintf(w, "%s%s (missing)\n", indent, id)
		return
	}

	fmt.Fprint(w, indent)
	if name, named := g.Name(id); named {
		bold.Fprintf(w, "%s", name)
		cyan.Fprintf(w, " [%s %s]", id, naming.TypeName(obj.Type()))
	} else {
		cyan.Fprintf(w, "%s %s", id, naming.TypeName(obj.Type()))
	}
	fmt.Fprintln(w, placement)

	for _, ref := range obj.Refs {
		switch ref.Role {
		case model.RoleChild:
			printNode(w, g, ref.Target, indent+"  ", fmt.Sprintf(" @ %d,%d", ref.X, ref.Y))
		case model.RolePointer:
			printNode(w, g, ref.Target, indent+"  ", " (pointer)")
		case model.RoleMacro:
			yellow.Fprintf(w, "%s  %s -> %s\n", indent, ref.Event, g.DisplayName(ref.Target))
		}
	}
}

// PrintScene prints the render data of one object as an indented list of
// primitives.
func PrintScene(w io.Writer, g *graph.Graph, scene render.Scene) {
	bold.Fprintf(w, "%s", g.DisplayName(scene.Object))
	fmt.Fprintf(w, " %dx%d\n", scene.Width, scene.Height)
	printPrimitives(w, scene.Items, "  ")
}

func printPrimitives(w io.Writer, items []render.Primitive, indent string) {
	for _, p := range items {
		switch p := p.(type) {
		case render.Group:
			cyan.Fprintf(w, "%sgroup %s", indent, p.Object)
			fmt.Fprintf(w, " at %d,%d %dx%d\n", p.X, p.Y, p.Width, p.Height)
			printPrimitives(w, p.Children, indent+"  ")
		case render.Text:
			fmt.Fprintf(w, "%stext at %d,%d %q\n", indent, p.X, p.Y, strings.Join(p.Lines, "\\n"))
		case render.Rect:
			fmt.Fprintf(w, "%srect at %d,%d %dx%d\n", indent, p.X, p.Y, p.Width, p.Height)
		case render.Line:
			fmt.Fprintf(w, "%sline %d,%d to %d,%d\n", indent, p.X1, p.Y1, p.X2, p.Y2)
		case render.Ellipse:
			fmt.Fprintf(w, "%sellipse at %d,%d %dx%d\n", indent, p.X, p.Y, p.Width, p.Height)
		case render.Polygon:
			fmt.Fprintf(w, "%spolygon of %d points\n", indent, len(p.Points))
		case render.Image:
			fmt.Fprintf(w, "%simage at %d,%d %dx%d\n", indent, p.X, p.Y, p.Width, p.Height)
		case render.Placeholder:
			yellow.Fprintf(w, "%splaceholder for %s: %s\n", indent, p.Object, p.Reason)
		default:
			fmt.Fprintf(w, "%s%s\n", indent, p.Kind())
		}
	}
}
