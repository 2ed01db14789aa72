package dispatch_test

// A simplified heat distribution simulation over a dense grid, driven
// through ParallelizeImageRegion. Each step writes every interior
// cell of the output matrix from the previous matrix only, so the
// leaf regions are independent and the result does not depend on how
// the dispatcher splits the grid.
//
// See https://en.wikipedia.org/wiki/Heat_equation for some
// theoretical background.

import (
	"fmt"
	"runtime"

	"gonum.org/v1/gonum/mat"

	"github.com/exagrid/gridpar/dispatch"
	"github.com/exagrid/gridpar/region"
)

// heatStep computes one Jacobi relaxation step, writing u's interior
// from v. Dimension 0 of the region is the fastest-varying (column)
// axis, so the splitter prefers to divide along rows.
func heatStep(d *dispatch.Dispatcher, u, v *mat.Dense) error {
	rows, cols := u.Dims()
	interior := region.New([]int{1, 1}, []int{cols - 2, rows - 2})
	return d.ParallelizeImageRegion(interior, func(index, size []int) error {
		for row := index[1]; row < index[1]+size[1]; row++ {
			uRow := u.RawRowView(row)
			vRow := v.RawRowView(row)
			vRowUp := v.RawRowView(row - 1)
			vRowDn := v.RawRowView(row + 1)
			for col := index[0]; col < index[0]+size[0]; col++ {
				uRow[col] = (vRowUp[col] + vRowDn[col] + vRow[col-1] + vRow[col+1]) / 4.0
			}
		}
		return nil
	}, nil)
}

// simulateHeat runs a fixed number of step pairs on an M x N interior
// with the given border temperatures and returns the grid.
func simulateHeat(workers, M, N int, init, border float64) (*mat.Dense, error) {
	d, err := dispatch.New(workers)
	if err != nil {
		return nil, err
	}

	M += 2
	N += 2
	data := make([]float64, M*N)
	for i := range data {
		data[i] = init
	}
	u := mat.NewDense(M, N, data)
	for i := 0; i < N; i++ {
		u.Set(0, i, border)
		u.Set(M-1, i, border)
	}
	for i := 0; i < M; i++ {
		u.Set(i, 0, border)
		u.Set(i, N-1, border)
	}
	v := mat.NewDense(M, N, nil)
	v.Copy(u)

	for step := 0; step < 100; step++ {
		if err := heatStep(d, v, u); err != nil {
			return nil, err
		}
		if err := heatStep(d, u, v); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func Example_heatDistribution() {
	par, err := simulateHeat(runtime.GOMAXPROCS(0), 64, 64, 75, 100)
	if err != nil {
		fmt.Println(err)
		return
	}
	seq, err := simulateHeat(1, 64, 64, 75, 100)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("parallel matches sequential:", mat.Equal(par, seq))

	// Output:
	// parallel matches sequential: true
}
