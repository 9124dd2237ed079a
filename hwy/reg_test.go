package hwy

import (
	"math"
	"testing"
)

func TestRegisterConstants(t *testing.T) {
	t.Logf("Dispatch level: %s, width: %d bytes", CurrentName(), CurrentWidth())
	for _, c := range []struct {
		name                string
		lanes, step, blocks int
	}{
		{"F32", F32Lanes, F32Step, F32Blocks},
		{"F16", F16Lanes, F16Step, F16Blocks},
	} {
		if c.step <= 0 || c.step&(c.step-1) != 0 {
			t.Errorf("%s step %d is not a power of two", c.name, c.step)
		}
		if c.blocks*c.lanes != c.step {
			t.Errorf("%s blocks*lanes = %d, want step %d", c.name, c.blocks*c.lanes, c.step)
		}
	}
	if CurrentLevel() != registerLevel {
		t.Errorf("CurrentLevel() = %v, want %v", CurrentLevel(), registerLevel)
	}
}

func TestLoadStoreF32(t *testing.T) {
	src := make([]float32, F32Lanes+3)
	for i := range src {
		src[i] = float32(i) + 0.5
	}
	dst := make([]float32, len(src))
	StoreF32(dst, LoadF32(src))
	for i := range dst {
		want := float32(0)
		if i < F32Lanes {
			want = src[i]
		}
		if dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}
}

func TestMulAddF32(t *testing.T) {
	a := make([]float32, F32Lanes)
	b := make([]float32, F32Lanes)
	c := make([]float32, F32Lanes)
	for i := range a {
		a[i] = float32(i + 1)
		b[i] = float32(2 * i)
		c[i] = -float32(i)
	}
	out := make([]float32, F32Lanes)
	StoreF32(out, MulAddF32(LoadF32(a), LoadF32(b), LoadF32(c)))
	for i := range out {
		if want := a[i]*b[i] + c[i]; out[i] != want {
			t.Errorf("lane %d: got %v, want %v", i, out[i], want)
		}
	}

	StoreF32(out, MulAddF32(LoadF32(a), BroadcastF32(3), ZeroF32()))
	for i := range out {
		if want := a[i] * 3; out[i] != want {
			t.Errorf("broadcast lane %d: got %v, want %v", i, out[i], want)
		}
	}
}

func TestReduceF32Block(t *testing.T) {
	blk := ZeroF32Block()
	if got := ReduceF32Block(&blk); got != 0 {
		t.Errorf("zero block reduces to %v", got)
	}
	src := make([]float32, F32Step)
	var want float32
	for i := range src {
		src[i] = float32(i + 1)
		want += src[i]
	}
	for j := 0; j < F32Blocks; j++ {
		blk[j] = LoadF32(src[j*F32Lanes:])
	}
	if got := ReduceF32Block(&blk); got != want {
		t.Errorf("ReduceF32Block = %v, want %v", got, want)
	}
}

func TestLoadStoreF16(t *testing.T) {
	src := make([]Float16, F16Lanes)
	for i := range src {
		src[i] = NewFloat16(float32(i) - 1.25)
	}
	v := LoadF16(src)
	out := make([]float32, F32Lanes)
	StoreF32(out, v)
	for i := 0; i < F16Lanes; i++ {
		if want := src[i].Float32(); out[i] != want {
			t.Errorf("LoadF16 lane %d: got %v, want %v", i, out[i], want)
		}
	}

	dst := make([]Float16, F16Lanes)
	StoreF16(dst, v)
	for i := range dst {
		if dst[i] != src[i] {
			t.Errorf("StoreF16 lane %d: got 0x%04X, want 0x%04X", i, dst[i], src[i])
		}
	}

	blk := ZeroF16Block()
	for j := range blk {
		blk[j] = v
	}
	var want float32
	for i := range src {
		want += src[i].Float32()
	}
	want *= F16Blocks
	if got := ReduceF16Block(&blk); math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("ReduceF16Block = %v, want %v", got, want)
	}
}

func TestDispatchLevelString(t *testing.T) {
	for level, want := range map[DispatchLevel]string{
		DispatchScalar:    "scalar",
		DispatchPortable:  "portable",
		DispatchSSE2:      "sse2",
		DispatchNEON:      "neon",
		DispatchAVX2:      "avx2",
		DispatchLevel(99): "unknown",
	} {
		if got := level.String(); got != want {
			t.Errorf("DispatchLevel(%d).String() = %q, want %q", int(level), got, want)
		}
	}
}
