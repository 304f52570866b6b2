package longbitset

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"
)

// Distinct bits of one word written from many goroutines must all land: the
// per-word atomic contract forbids lost updates.
func TestConcurrentSetSameWord(t *testing.T) {
	b := New(64)
	var wg sync.WaitGroup
	for i := uint64(0); i < 64; i++ {
		wg.Add(1)
		go func(i uint64) {
			defer wg.Done()
			b.Set(i)
		}(i)
	}
	wg.Wait()
	if got := b.Count(); got != 64 {
		t.Errorf("Count = %d, want 64", got)
	}
}

func TestConcurrentSetClearOneWord(t *testing.T) {
	b := New(64)
	for i := uint64(1); i < 64; i += 2 {
		b.Set(i)
	}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := uint64(0); i < 64; i += 2 {
			b.Set(i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := uint64(1); i < 64; i += 2 {
			b.Clear(i)
		}
	}()
	wg.Wait()
	for i := uint64(0); i < 64; i++ {
		want := i%2 == 0
		if got := b.Get(i); got != want {
			t.Errorf("bit %d = %v, want %v", i, got, want)
		}
	}
}

func TestGetAndSetSingleWinner(t *testing.T) {
	b := New(1000)
	const goroutines = 32
	var winners atomic.Int64
	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			if !b.GetAndSet(123) {
				winners.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if got := winners.Load(); got != 1 {
		t.Errorf("%d goroutines saw the bit clear, want exactly 1", got)
	}
}

// Workers claim indices from a shared counter, so every index is set exactly
// once. A lost update under word contention would show up both as a claimed
// bit reading set and in the final count.
func TestGetAndSetClaimsAreExclusive(t *testing.T) {
	const (
		workers = 8
		numBits = 1 << 12
	)
	b := New(numBits)
	var next atomic.Uint64
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				i := next.Add(1) - 1
				if i >= numBits {
					return nil
				}
				if b.GetAndSet(i) {
					return fmt.Errorf("bit %d was already claimed", i)
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if got := b.Count(); got != numBits {
		t.Errorf("Count = %d, want %d", got, numBits)
	}
}

func TestConcurrentFlipSameWord(t *testing.T) {
	b := New(64)
	const rounds = 1001 // odd, so each bit ends set
	var wg sync.WaitGroup
	for _, i := range []uint64{10, 20} {
		wg.Add(1)
		go func(i uint64) {
			defer wg.Done()
			for n := 0; n < rounds; n++ {
				b.Flip(i)
			}
		}(i)
	}
	wg.Wait()
	if !b.Get(10) || !b.Get(20) {
		t.Error("an odd number of flips should leave both bits set")
	}
	if got := b.Count(); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
}

func TestConcurrentReadersDoNotBlock(t *testing.T) {
	const numBits = 1 << 12
	b := New(numBits)
	var g errgroup.Group
	g.Go(func() error {
		for i := uint64(0); i < numBits; i++ {
			b.Set(i)
		}
		return nil
	})
	for r := 0; r < 2; r++ {
		g.Go(func() error {
			for n := 0; n < 1000; n++ {
				if i := b.NextSetBit(0); i >= numBits {
					return fmt.Errorf("NextSetBit returned %d past the capacity", i)
				}
				b.Count()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if got := b.Count(); got != numBits {
		t.Errorf("Count = %d, want %d", got, numBits)
	}
}
