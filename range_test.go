package longbitset

import "testing"

func checkBits(t *testing.T, b *BitSet, start, end uint64) {
	t.Helper()
	for i := uint64(0); i < b.Len(); i++ {
		want := i >= start && i < end
		if got := b.Get(i); got != want {
			t.Fatalf("bit %d = %v, want %v", i, got, want)
		}
	}
}

func TestSetRange(t *testing.T) {
	cases := []struct {
		numBits    uint64
		start, end uint64
	}{
		{64, 3, 9},     // inside one word
		{64, 0, 64},    // a whole single word
		{128, 5, 70},   // crosses a word boundary
		{128, 64, 128}, // aligned on both ends
		{200, 0, 200},  // ends at capacity
		{320, 10, 300}, // several interior words
	}
	for _, c := range cases {
		b := New(c.numBits)
		b.SetRange(c.start, c.end)
		checkBits(t, b, c.start, c.end)
		if got := b.Count(); got != c.end-c.start {
			t.Errorf("numBits=%d range [%d,%d): Count = %d, want %d",
				c.numBits, c.start, c.end, got, c.end-c.start)
		}
		if w := b.dirtyGhostWord(); w >= 0 {
			t.Errorf("numBits=%d range [%d,%d): ghost bits set in word %d",
				c.numBits, c.start, c.end, w)
		}
	}
}

func TestSetRangeFillsInteriorWords(t *testing.T) {
	b := New(320)
	b.SetRange(10, 300)
	words := b.Snapshot()
	for i := 1; i <= 3; i++ {
		if words[i] != allOnes {
			t.Errorf("interior word %d = %#x, want all ones", i, words[i])
		}
	}
}

func TestClearRange(t *testing.T) {
	b := New(128)
	b.SetRange(0, 128)
	b.ClearRange(5, 70)
	for i := uint64(0); i < 128; i++ {
		want := i < 5 || i >= 70
		if got := b.Get(i); got != want {
			t.Fatalf("bit %d = %v, want %v", i, got, want)
		}
	}
	if got := b.Count(); got != 63 {
		t.Errorf("Count = %d, want 63", got)
	}
}

func TestFlipRange(t *testing.T) {
	b := New(192)
	b.Set(10)
	b.Set(100)
	b.FlipRange(5, 130)
	for i := uint64(0); i < 192; i++ {
		inRange := i >= 5 && i < 130
		wasSet := i == 10 || i == 100
		want := wasSet != inRange
		if got := b.Get(i); got != want {
			t.Fatalf("bit %d = %v, want %v", i, got, want)
		}
	}
	b.FlipRange(5, 130)
	for _, i := range []uint64{10, 100} {
		if !b.Get(i) {
			t.Errorf("bit %d should be restored after a double flip", i)
		}
	}
	if got := b.Count(); got != 2 {
		t.Errorf("Count = %d, want 2 after a double flip", got)
	}
}

func TestSetThenClearRangeRestoresEmpty(t *testing.T) {
	b := New(128)
	b.SetRange(5, 70)
	if b.ScanIsEmpty() {
		t.Error("the set should not be empty after SetRange")
	}
	checkBits(t, b, 5, 70)
	b.ClearRange(5, 70)
	if !b.ScanIsEmpty() {
		t.Error("clearing the same range should empty the set")
	}
}

func TestRangeEmptyIsNoOp(t *testing.T) {
	b := New(128)
	b.Set(20)
	b.SetRange(10, 10)
	b.ClearRange(20, 20)
	b.FlipRange(30, 30)
	b.SetRange(50, 40)
	if got := b.Count(); got != 1 || !b.Get(20) {
		t.Error("an empty range should change nothing")
	}
}

func TestRangeContract(t *testing.T) {
	b := New(128)
	// Validation happens before the empty-range check, so a degenerate range
	// with an out-of-range endpoint still panics.
	expectIndexPanic(t, func() { b.SetRange(128, 128) })
	expectIndexPanic(t, func() { b.ClearRange(200, 10) })
	expectIndexPanic(t, func() { b.FlipRange(0, 129) })
	expectIndexPanic(t, func() { b.SetRange(0, 129) })
}

func TestRangeKeepsGhostBitsClear(t *testing.T) {
	b := New(70)
	b.SetRange(0, 70)
	if w := b.dirtyGhostWord(); w >= 0 {
		t.Fatalf("ghost bits set in word %d", w)
	}
	b.FlipRange(0, 70)
	if !b.ScanIsEmpty() {
		t.Error("flipping a full set should empty it")
	}
	if w := b.dirtyGhostWord(); w >= 0 {
		t.Fatalf("ghost bits set in word %d", w)
	}
}

func BenchmarkSetRange(b *testing.B) {
	bs := New(1 << 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bs.SetRange(100, 1<<20-100)
	}
}
