package derive_test

import (
	"fmt"

	"github.com/matzehuels/commute/pkg/derive"
	"github.com/matzehuels/commute/pkg/diagram"
)

func ExampleText() {
	g := diagram.New()
	_ = g.AddMorphism("f", "A", "B")
	_ = g.AddMorphism("g", "B", "C")
	_ = g.AddMorphism("h", "A", "C")

	text, err := derive.Text(g)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(text)
	// Output:
	// {g}{f} = {h}
}

func ExampleEquations_cycle() {
	g := diagram.New()
	_ = g.AddMorphism("f", "A", "B")
	_ = g.AddMorphism("g", "B", "C")
	_ = g.AddMorphism("h", "C", "A")

	r, _ := derive.Equations(g, derive.Options{})
	for _, line := range r.Lines() {
		fmt.Println(line)
	}
	// Output:
	// {f}{h}{g}{f}
}
