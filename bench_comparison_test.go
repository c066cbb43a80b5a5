// Copyright (c) fullmetalScience and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package boolset

import (
	"testing"

	"github.com/RoaringBitmap/roaring"
)

// Compares windowed operations against the reference roaring bitmap over
// the same finite domain. The reference cannot represent the unbounded tail
// or the inverted background, so every benchmark stays below benchDomain.

func BenchmarkSetRangeVsReference(b *testing.B) {
	windows := genWindows(1024)

	b.Run("ours", func(b *testing.B) {
		s := New()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			w := windows[i%len(windows)]
			_ = s.SetRange(true, w[0], At(w[1]))
		}
	})

	b.Run("reference", func(b *testing.B) {
		ref := roaring.NewBitmap()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			w := windows[i%len(windows)]
			ref.AddRange(w[0], w[1]+1)
		}
	})
}

func BenchmarkFlipRangeVsReference(b *testing.B) {
	windows := genWindows(1024)

	b.Run("ours", func(b *testing.B) {
		s := benchSet()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			w := windows[i%len(windows)]
			_ = s.FlipRange(w[0], At(w[1]))
		}
	})

	b.Run("reference", func(b *testing.B) {
		ref := refSet()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			w := windows[i%len(windows)]
			ref.Flip(w[0], w[1]+1)
		}
	})
}

func BenchmarkGetVsReference(b *testing.B) {
	b.Run("ours", func(b *testing.B) {
		s := benchSet()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			s.Get(uint64(i) % benchDomain)
		}
	})

	b.Run("reference", func(b *testing.B) {
		ref := refSet()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			ref.Contains(uint32(i % benchDomain))
		}
	})
}

// refSet mirrors benchSet on the reference bitmap.
func refSet() *roaring.Bitmap {
	ref := roaring.NewBitmap()
	for _, w := range genWindows(4096) {
		ref.AddRange(w[0], w[1]+1)
	}
	return ref
}
