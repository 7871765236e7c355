package engine_test

import (
	"fmt"

	"github.com/katalvlaran/dynroute/engine"
	"github.com/katalvlaran/dynroute/geometry"
	"github.com/katalvlaran/dynroute/roadgraph"
)

// ExampleEngine routes across a three-node network, then blocks the
// cheap road and watches the route detour.
func ExampleEngine() {
	g := roadgraph.NewGraph()
	_ = g.AddNode("A", geometry.Point{X: 0, Y: 0})
	_ = g.AddNode("B", geometry.Point{X: 10, Y: 0})
	_ = g.AddNode("C", geometry.Point{X: 10, Y: 10})
	_ = g.AddEdge("A", "B", 10)
	_ = g.AddEdge("B", "C", 10)
	_ = g.AddEdge("A", "C", 30)
	g.SnapshotOriginals()

	e, _ := engine.New(g, nil)
	defer e.Close()

	_ = e.SelectEndpoints("A", "C")
	res, _ := e.CurrentPath()
	fmt.Println(res.Path.Nodes, res.Path.Cost)

	// A crash closes the A→B road.
	id, _ := e.AddEffect(engine.Block{
		Line: engine.Segment{A: geometry.Point{X: 5, Y: -3}, B: geometry.Point{X: 5, Y: 3}},
	})
	res, _ = e.CurrentPath()
	fmt.Println(res.Path.Nodes, res.Path.Cost)

	// The road reopens.
	_ = e.RemoveEffect(id)
	res, _ = e.CurrentPath()
	fmt.Println(res.Path.Nodes, res.Path.Cost)

	// Output:
	// [A B C] 20
	// [A C] 30
	// [A B C] 20
}
