package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/RoaringBitmap/roaring"
	bs "github.com/fullmetalScience/boolset"
	"github.com/fullmetalScience/boolset/tinybench"
)

// Compares boolset against the reference roaring bitmap over a shared finite
// domain. The reference has no unbounded tail or inverted background, so
// every workload stays below the horizon.
const horizon = 1 << 22

var widths = []uint64{16, 4096}

func main() {
	tinybench.Run(func(runner *tinybench.B) {
		runUpdates(runner)
		runFlips(runner)
		runReads(runner)
		runSearches(runner)
	}, tinybench.WithReference(),
		tinybench.WithDuration(10*time.Millisecond),
		tinybench.WithSamples(100),
	)
}

func runUpdates(b *tinybench.B) {
	for _, width := range widths {
		windows := genWindows(1024, width)
		our := bs.New()
		ref := roaring.NewBitmap()

		i := 0
		name := fmt.Sprintf("setrange w=%s", formatWidth(width))
		b.Run(name,
			func() {
				w := windows[i%len(windows)]
				_ = our.SetRange(true, w[0], bs.At(w[1]))
				i++
			},
			func() {
				w := windows[i%len(windows)]
				ref.AddRange(w[0], w[1]+1)
				i++
			})
	}
}

func runFlips(b *tinybench.B) {
	for _, width := range widths {
		windows := genWindows(1024, width)
		our, ref := randomPair()

		i := 0
		name := fmt.Sprintf("fliprange w=%s", formatWidth(width))
		b.Run(name,
			func() {
				w := windows[i%len(windows)]
				_ = our.FlipRange(w[0], bs.At(w[1]))
				i++
			},
			func() {
				w := windows[i%len(windows)]
				ref.Flip(w[0], w[1]+1)
				i++
			})
	}
}

func runReads(b *tinybench.B) {
	our, ref := randomPair()

	i := uint64(0)
	b.Run("get",
		func() {
			our.Get(i % horizon)
			i++
		},
		func() {
			ref.Contains(uint32(i % horizon))
			i++
		})
}

func runSearches(b *tinybench.B) {
	our, ref := randomPair()
	windows := genWindows(1024, 1<<16)

	i := 0
	b.Run("first",
		func() {
			w := windows[i%len(windows)]
			_, _, _ = our.First(true, w[0], bs.At(w[1]))
			i++
		},
		func() {
			w := windows[i%len(windows)]
			it := ref.Iterator()
			it.AdvanceIfNeeded(uint32(w[0]))
			if it.HasNext() {
				_ = it.Next()
			}
			i++
		})
}

// genWindows produces n random closed windows of at most the given width.
func genWindows(n int, width uint64) [][2]uint64 {
	rnd := rand.New(rand.NewPCG(1, 2))
	out := make([][2]uint64, n)
	for i := range out {
		a := rnd.Uint64N(horizon - width)
		out[i] = [2]uint64{a, a + rnd.Uint64N(width)}
	}
	return out
}

// randomPair builds a boolset and a reference bitmap with identical
// fragmented coverage.
func randomPair() (*bs.Set, *roaring.Bitmap) {
	our := bs.New()
	ref := roaring.NewBitmap()
	for _, w := range genWindows(4096, 256) {
		_ = our.SetRange(true, w[0], bs.At(w[1]))
		ref.AddRange(w[0], w[1]+1)
	}
	return our, ref
}

func formatWidth(width uint64) string {
	if width >= 1024 {
		return fmt.Sprintf("%dK", width/1024)
	}
	return fmt.Sprintf("%d", width)
}
