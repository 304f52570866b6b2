package longbitset

import "testing"

func TestNextSetBit(t *testing.T) {
	b := New(200)
	for _, i := range []uint64{3, 70, 130} {
		b.Set(i)
	}
	cases := []struct {
		from uint64
		want int64
	}{
		{0, 3},
		{3, 3},
		{4, 70},
		{70, 70},
		{71, 130},
		{130, 130},
		{131, -1},
		{199, -1},
	}
	for _, c := range cases {
		if got := b.NextSetBit(c.from); got != c.want {
			t.Errorf("NextSetBit(%d) = %d, want %d", c.from, got, c.want)
		}
	}
}

func TestPrevSetBit(t *testing.T) {
	b := New(200)
	for _, i := range []uint64{3, 70, 130} {
		b.Set(i)
	}
	cases := []struct {
		from uint64
		want int64
	}{
		{199, 130},
		{130, 130},
		{129, 70},
		{70, 70},
		{69, 3},
		{3, 3},
		{2, -1},
		{0, -1},
	}
	for _, c := range cases {
		if got := b.PrevSetBit(c.from); got != c.want {
			t.Errorf("PrevSetBit(%d) = %d, want %d", c.from, got, c.want)
		}
	}
}

func TestScanWithinOneWord(t *testing.T) {
	b := New(64)
	b.Set(5)
	b.Set(9)
	if got := b.NextSetBit(6); got != 9 {
		t.Errorf("NextSetBit(6) = %d, want 9", got)
	}
	if got := b.PrevSetBit(8); got != 5 {
		t.Errorf("PrevSetBit(8) = %d, want 5", got)
	}
}

func TestScanEmpty(t *testing.T) {
	b := New(100)
	if got := b.NextSetBit(0); got != -1 {
		t.Errorf("NextSetBit(0) = %d, want -1", got)
	}
	if got := b.PrevSetBit(99); got != -1 {
		t.Errorf("PrevSetBit(99) = %d, want -1", got)
	}
}

func TestScanContract(t *testing.T) {
	b := New(200)
	expectIndexPanic(t, func() { b.NextSetBit(200) })
	expectIndexPanic(t, func() { b.PrevSetBit(200) })
}

func TestScanIsEmpty(t *testing.T) {
	b := New(200)
	if !b.ScanIsEmpty() {
		t.Error("a new set should be empty")
	}
	b.Set(199)
	if b.ScanIsEmpty() {
		t.Error("a set with bit 199 set is not empty")
	}
	b.Clear(199)
	if !b.ScanIsEmpty() {
		t.Error("the set should be empty again")
	}
}

func TestScanRoundTripsAllBits(t *testing.T) {
	b := New(300)
	want := []uint64{0, 1, 63, 64, 65, 191, 192, 299}
	for _, i := range want {
		b.Set(i)
	}
	var got []uint64
	for i := b.NextSetBit(0); i != -1; {
		got = append(got, uint64(i))
		if uint64(i)+1 == b.Len() {
			break
		}
		i = b.NextSetBit(uint64(i) + 1)
	}
	if len(got) != len(want) {
		t.Fatalf("forward scan found %d bits, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("forward scan bit %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func BenchmarkNextSetBit(b *testing.B) {
	bs := New(1 << 20)
	for i := uint64(4095); i < 1<<20; i += 4096 {
		bs.Set(i)
	}
	mask := uint64(1<<20 - 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bs.NextSetBit(uint64(i) & mask)
	}
}
