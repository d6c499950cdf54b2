package cycles

import (
	"cmp"
	"slices"

	"github.com/ritzau/vt-designer/pkg/objectid"
	"gonum.org/v1/gonum/graph/simple"
)

// Cycle is a set of objects that transitively contain themselves.
type Cycle struct {
	Objects []objectid.ObjectID // Sorted ascending
}

// FindContainmentCycles finds every cycle in a containment relation given as
// adjacency lists. An object that contains itself is reported as a cycle of one.
func FindContainmentCycles(edges map[objectid.ObjectID][]objectid.ObjectID) []Cycle {
	g := simple.NewDirectedGraph()
	var cycles []Cycle

	node := func(id objectid.ObjectID) simple.Node {
		n := simple.Node(int64(id))
		if g.Node(n.ID()) == nil {
			g.AddNode(n)
		}
		return n
	}

	for _, from := range sortedKeys(edges) {
		src := node(from)
		for _, to := range edges[from] {
			if to == from {
				// simple graphs cannot hold self loops
				if !slices.ContainsFunc(cycles, func(c Cycle) bool { return c.Objects[0] == from && len(c.Objects) == 1 }) {
					cycles = append(cycles, Cycle{Objects: []objectid.ObjectID{from}})
				}
				continue
			}
			dst := node(to)
			if !g.HasEdgeFromTo(src.ID(), dst.ID()) {
				g.SetEdge(g.NewEdge(src, dst))
			}
		}
	}

	for _, scc := range NewTarjanSCC(g).FindSCCs() {
		ids := make([]objectid.ObjectID, len(scc))
		for i, id := range scc {
			ids[i] = objectid.ObjectID(id)
		}
		cycles = append(cycles, Cycle{Objects: ids})
	}

	slices.SortStableFunc(cycles, func(a, b Cycle) int {
		return cmp.Compare(a.Objects[0], b.Objects[0])
	})
	return cycles
}

func sortedKeys(m map[objectid.ObjectID][]objectid.ObjectID) []objectid.ObjectID {
	keys := make([]objectid.ObjectID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
