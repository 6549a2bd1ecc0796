// Package scene assembles a complete animated network: the seeded graph,
// its edge curves, and the Driver that advances animation state once per
// frame on its own goroutine.
package scene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/A5-Website/atom-5-nexus/builder"
	"github.com/A5-Website/atom-5-nexus/core"
	"github.com/A5-Website/atom-5-nexus/dfs"
	"github.com/A5-Website/atom-5-nexus/geometry"
)

// ErrNodeNotFound is returned when a trigger names a node outside the scene.
var ErrNodeNotFound = errors.New("scene: node not found")

// ErrClosed is returned by Trigger after the driver has stopped.
var ErrClosed = errors.New("scene: driver closed")

// Params is the construction input of a scene.
type Params struct {
	Graph builder.ProximityParams
	// Seed drives node placement and curve offsets.
	Seed   int64
	Planar bool
	// NodeSizeMin/NodeSizeMax bound the visual node size; zero values use
	// builder.DefaultNodeSize.
	NodeSizeMin float64
	NodeSizeMax float64
	Geometry    []geometry.Option
}

// Scene is the static part of an animation: built once, read-only after.
type Scene struct {
	ID     uuid.UUID
	Seed   int64
	Graph  *core.Graph
	Curves *geometry.Builder
}

// Build creates the graph and its curves. Curve offsets use Seed+1 so that
// changing curve settings never moves nodes.
func Build(p Params) (*Scene, error) {
	var gopts []core.GraphOption
	gopts = append(gopts, core.WithCapacity(p.Graph.NodeCount))
	if p.Planar {
		gopts = append(gopts, core.WithPlanar())
	}
	bopts := []builder.BuilderOption{builder.WithSeed(p.Seed)}
	if p.NodeSizeMax > 0 {
		bopts = append(bopts, builder.WithNodeSize(p.NodeSizeMin, p.NodeSizeMax))
	}

	g, err := builder.BuildGraph(gopts, bopts, builder.Proximity(p.Graph))
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	gopt := append([]geometry.Option{geometry.WithSeed(p.Seed + 1)}, p.Geometry...)
	curves, err := geometry.NewBuilder(g, gopt...)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	return &Scene{ID: uuid.New(), Seed: p.Seed, Graph: g, Curves: curves}, nil
}

// Snapshot is the static JSON view of a scene.
type Snapshot struct {
	ID    string                  `json:"id"`
	Seed  int64                   `json:"seed"`
	Nodes []core.Node             `json:"nodes"`
	Edges []geometry.EdgeGeometry `json:"edges"`
	// Components lists the islands of the graph; a cascade never crosses
	// from one to another.
	Components [][]int `json:"components"`
	// Isolated lists nodes with no edge in either direction.
	Isolated []int `json:"isolated"`
}

// Snapshot returns node and edge geometry for clients that render the
// static structure themselves.
func (s *Scene) Snapshot() Snapshot {
	nodes := make([]core.Node, s.Graph.NodeCount())
	for i := range nodes {
		nodes[i], _ = s.Graph.Node(i)
	}
	comps, _ := dfs.Components(s.Graph)
	isolated, _ := dfs.Isolated(s.Graph)
	if isolated == nil {
		isolated = []int{}
	}
	return Snapshot{
		ID:         s.ID.String(),
		Seed:       s.Seed,
		Nodes:      nodes,
		Edges:      s.Curves.All(),
		Components: comps,
		Isolated:   isolated,
	}
}

// Reachable returns every node a cascade started at node could reach given
// unlimited generations, in depth-first preorder with node first. Set
// undirected for engines built WithFollowIncoming.
func (s *Scene) Reachable(node int, undirected bool) ([]int, error) {
	mode := dfs.Directed
	if undirected {
		mode = dfs.Undirected
	}
	order, err := dfs.Preorder(s.Graph, node, mode)
	if errors.Is(err, dfs.ErrStartNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, node)
	}
	return order, err
}
