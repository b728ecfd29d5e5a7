package core_test

import (
	"fmt"

	"github.com/nichesounds/algo-delay/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)

	fmt.Printf("scale=%.0f sampleRate=%.0f blockSize=%d\n", cfg.ScaleFactor, cfg.SampleRate, cfg.BlockSize)

	// Output:
	// scale=100000 sampleRate=44100 blockSize=256
}

func ExampleSanitize() {
	fmt.Println(core.Sanitize(1.5, 0, 1, 0.2))

	// Output:
	// 1
}
