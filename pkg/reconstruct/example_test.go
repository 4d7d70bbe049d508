package reconstruct_test

import (
	"fmt"

	"github.com/matzehuels/commute/pkg/equation"
	"github.com/matzehuels/commute/pkg/reconstruct"
)

func ExampleFromText() {
	g, err := reconstruct.FromText("{g}{f} = {h}\n")
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, m := range g.Morphisms() {
		fmt.Println(m)
	}
	// Output:
	// f: 0 -> 1
	// g: 1 -> 2
	// h: 0 -> 2
}

func ExampleBuilder() {
	b := reconstruct.NewBuilder()
	_ = b.Add(equation.Equation{{"h", "g"}, {"k", "j"}})
	_ = b.Add(equation.Equation{{"i", "h", "g", "f"}, {"n", "m", "l"}})

	s := b.Stats()
	fmt.Println(s.Lines, "lines,", s.Objects, "objects,", s.Morphisms, "morphisms")
	// Output:
	// 2 lines, 8 objects, 9 morphisms
}
