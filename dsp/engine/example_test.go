package engine_test

import (
	"fmt"

	"github.com/nichesounds/algo-delay/dsp/core"
	"github.com/nichesounds/algo-delay/dsp/engine"
	"github.com/nichesounds/algo-delay/dsp/param"
)

func ExampleEngine_ProcessBlock() {
	e := engine.New(core.WithScaleFactor(100))
	e.SetParams(param.Snapshot{LeftDelay: 0.02, RightDelay: 0.01, Mix: 1})
	e.Activate()
	defer e.Deactivate()

	in := engine.Block{
		NumSamples: 5,
		Channels: [][]float32{
			{1, 0, 0, 0, 0},
			{1, 0, 0, 0, 0},
		},
	}
	out := engine.NewBlock(5)
	if err := e.ProcessBlock(in, out); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(out.Channels[engine.Left])
	fmt.Println(out.Channels[engine.Right])
	// Output:
	// [1 0 1 0 0]
	// [1 1 0 0 0]
}
