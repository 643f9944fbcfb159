// File: heightmap/example_test.go
package heightmap_test

import (
	"fmt"

	"github.com/katalvlaran/hillclimb/heightmap"
)

// ExampleParse loads a small heightmap and lists its lowest cells.
func ExampleParse() {
	tr, err := heightmap.ParseString("Sbc\nabE\n")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%dx%d start=%v goal=%v\n", tr.Grid.Width, tr.Grid.Height, tr.Start, tr.Goal)
	for p := range tr.Grid.CellsMatching(heightmap.AtElevation(0)) {
		fmt.Print(p, " ")
	}
	fmt.Println()
	// Output:
	// 3x2 start=(0,0) goal=(2,1)
	// (0,0) (0,1)
}

// ExampleGrid_Neighbors shows the fixed up, down, left, right order.
func ExampleGrid_Neighbors() {
	g, _ := heightmap.NewGrid([][]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
	})
	fmt.Println(g.Neighbors(heightmap.Position{X: 1, Y: 1}))
	// Output:
	// [(1,0) (1,2) (0,1) (2,1)]
}
