package dfs_test

import (
	"fmt"

	"github.com/A5-Website/atom-5-nexus/core"
	"github.com/A5-Website/atom-5-nexus/dfs"
)

func ExampleComponents() {
	g := core.NewGraph()
	for i := 0; i < 4; i++ {
		_, _ = g.AddNode(core.V(float64(i), 0, 0), 0.1)
	}
	_ = g.Connect(0, 1)
	_ = g.Connect(3, 2)

	comps, _ := dfs.Components(g)
	fmt.Println(comps)
	// Output: [[0 1] [2 3]]
}
