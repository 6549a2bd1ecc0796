// SPDX-License-Identifier: MIT
package builder_test

import (
	"fmt"

	"github.com/A5-Website/atom-5-nexus/builder"
)

// ExampleComplete shows the deterministic circle layout used as a fixture.
func ExampleComplete() {
	g, err := builder.BuildGraph(nil, nil, builder.Complete(4, 1))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	nbrs, _ := g.Neighbors(0)
	fmt.Println(g.NodeCount(), g.EdgeCount(), nbrs)
	// Output: 4 12 [1 2 3]
}
