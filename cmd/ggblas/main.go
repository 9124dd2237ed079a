// ggblas inspects the compiled GEMM kernels and benchmarks them.
//
// Usage:
//
//	ggblas info
//	ggblas bench --m 6 --n 2304 --k 768 --batch 1 --iters 100 --transposed
package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/ajroetker/go-ggblas/hwy"
	"github.com/ajroetker/go-ggblas/hwy/contrib/affinity"
	"github.com/ajroetker/go-ggblas/hwy/contrib/matmul"
)

type benchConfig struct {
	m, n, k    int
	batching   int
	iters      int
	transposed bool
	seed       uint64
}

func main() {
	var cfg benchConfig

	root := &cobra.Command{
		Use:          "ggblas",
		Short:        "Batched SIMD GEMM kernels",
		SilenceUsage: true,
	}

	info := &cobra.Command{
		Use:   "info",
		Short: "Show the compiled register set and the worker pool layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}

	bench := &cobra.Command{
		Use:   "bench",
		Short: "Time batched GEMM against the gonum reference BLAS",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(&cfg)
		},
	}

	f := bench.Flags()
	f.IntVar(&cfg.m, "m", 6, "rows of A and C")
	f.IntVar(&cfg.n, "n", 2304, "columns of C")
	f.IntVar(&cfg.k, "k", 768, "reduction length")
	f.IntVar(&cfg.batching, "batch", 1, "number of independent products per call")
	f.IntVar(&cfg.iters, "iters", 100, "timed calls per implementation")
	f.BoolVar(&cfg.transposed, "transposed", false, "B is NxK instead of KxN")
	f.Uint64Var(&cfg.seed, "seed", 1, "random seed for the operands")

	root.AddCommand(info, bench)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInfo() error {
	ids, err := affinity.CoreIDs()
	if err != nil {
		return err
	}
	fmt.Printf("Registers: %s (%d lanes, step %d, %d bytes)\n",
		hwy.CurrentName(), hwy.F32Lanes, hwy.F32Step, hwy.CurrentWidth())
	fmt.Printf("Half:      %d lanes, step %d\n", hwy.F16Lanes, hwy.F16Step)
	fmt.Printf("Features:  F16C=%v FMA=%v ARM-FP16=%v\n", hwy.HasF16C(), hwy.HasFMA(), hwy.HasARMFP16())
	fmt.Printf("Cores:     %d physical %v\n", len(ids), ids)
	fmt.Printf("Pinning:   %v\n", affinity.Supported())

	pool := matmul.DefaultPool()
	fmt.Printf("Pool:      %d workers, pinned=%v\n", pool.NumWorkers(), pool.Pinned())
	return nil
}

func runBench(cfg *benchConfig) error {
	if cfg.m <= 0 || cfg.n <= 0 || cfg.k <= 0 || cfg.batching <= 0 || cfg.iters <= 0 {
		return fmt.Errorf("bench: m, n, k, batch and iters must be positive")
	}

	m, n, k, batching := cfg.m, cfg.n, cfg.k, cfg.batching
	aSkip, bSkip, cSkip := m*k, n*k, m*n
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed))
	a := randomMatrix(rng, batching*aSkip)
	b := randomMatrix(rng, batching*bSkip)
	got := make([]float32, batching*cSkip)
	want := make([]float32, batching*cSkip)

	engine := func() {
		if cfg.transposed {
			matmul.BatchedMatMulKLast(a, aSkip, b, bSkip, got, cSkip, m, n, k, batching)
		} else {
			matmul.BatchedMatMul(a, aSkip, b, bSkip, got, cSkip, m, n, k, batching)
		}
	}
	reference := func() {
		for t := range batching {
			gemm(a[t*aSkip:(t+1)*aSkip], b[t*bSkip:(t+1)*bSkip], want[t*cSkip:(t+1)*cSkip], m, n, k, cfg.transposed)
		}
	}

	pool := matmul.DefaultPool()
	fmt.Printf("Shape:     %dx%dx%d batch %d transposed=%v\n", m, n, k, batching, cfg.transposed)
	fmt.Printf("Engine:    %s, %d workers pinned=%v\n\n", hwy.CurrentName(), pool.NumWorkers(), pool.Pinned())

	flops := 2 * float64(m) * float64(n) * float64(k) * float64(batching)
	for _, r := range []struct {
		name string
		fn   func()
	}{
		{"ggblas", engine},
		{"gonum", reference},
	} {
		r.fn() // warm up
		start := time.Now()
		for range cfg.iters {
			r.fn()
		}
		per := time.Since(start) / time.Duration(cfg.iters)
		fmt.Printf("%-8s %12v/call %8.2f GFLOP/s\n", r.name, per, flops/per.Seconds()/1e9)
	}

	fmt.Printf("\nMax relative error vs gonum: %.3g\n", maxRelError(got, want))
	return nil
}

// gemm computes one row-major product with the gonum reference BLAS.
func gemm(a, b, c []float32, m, n, k int, transposed bool) {
	tB := blas.NoTrans
	bg := blas32.General{Rows: k, Cols: n, Stride: n, Data: b}
	if transposed {
		tB = blas.Trans
		bg = blas32.General{Rows: n, Cols: k, Stride: k, Data: b}
	}
	blas32.Gemm(blas.NoTrans, tB, 1,
		blas32.General{Rows: m, Cols: k, Stride: k, Data: a},
		bg, 0,
		blas32.General{Rows: m, Cols: n, Stride: n, Data: c})
}

func randomMatrix(rng *rand.Rand, n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = rng.Float32()*2 - 1
	}
	return s
}

func maxRelError(got, want []float32) float64 {
	var worst float64
	for i := range got {
		diff := math.Abs(float64(got[i] - want[i]))
		scale := math.Max(1e-6, math.Abs(float64(want[i])))
		worst = math.Max(worst, diff/scale)
	}
	return worst
}
