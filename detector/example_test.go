// SPDX-License-Identifier: MIT

package detector_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tdpad/detector"
	"github.com/katalvlaran/tdpad/embedding"
)

// ExampleSolve factors an all-zero window: nothing is explained, so the
// whole embedding lands in the residual and the score is ‖Z‖_F = √h.
func ExampleSolve() {
	const s, p, h = 4, 2, 2
	emb, err := embedding.Build(s, h, embedding.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	window := mat.NewDense(s, p, nil)
	p0 := mat.NewDense(p, h, []float64{0.5, 0.5, 0.5, 0.5})
	r0 := mat.NewDense(h, s, []float64{1, 1, 1, 1, 1, 1, 1, 1})

	res, err := detector.Solve(window, emb.Z, p0, r0, detector.Options{Alpha: 0.01, Beta: 0, MaxIt: 3})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	score, err := res.Score()
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("rounds=%d score=%.3f\n", len(res.Loss), score)
	// Output:
	// rounds=3 score=1.414
}
