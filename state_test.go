package tourguide

import (
	"sync"
	"testing"
)

func TestGuarded_Do(t *testing.T) {
	g := NewGuarded([]string{"a"})
	g.Do(func(v *[]string) {
		*v = append(*v, "b")
	})

	var got []string
	g.View(func(v []string) { got = v })
	if len(got) != 2 || got[1] != "b" {
		t.Errorf("value = %v, want [a b]", got)
	}
}

func TestGuarded_ConcurrentUpdates(t *testing.T) {
	g := NewGuarded(0)

	const workers, perWorker = 32, 500
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				g.Do(func(n *int) { *n++ })
			}
		}()
	}
	wg.Wait()

	if got := Apply(g, func(n *int) int { return *n }); got != workers*perWorker {
		t.Errorf("counter = %d, want %d", got, workers*perWorker)
	}
}

func TestApply_ReturnsResult(t *testing.T) {
	g := NewGuarded(41)
	got := Apply(g, func(n *int) int {
		*n++
		return *n
	})
	if got != 42 {
		t.Errorf("Apply = %d, want 42", got)
	}
}

func TestGuarded_UnlocksAfterPanic(t *testing.T) {
	g := NewGuarded(0)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		g.Do(func(*int) { panic("boom") })
	}()

	done := make(chan struct{})
	go func() {
		g.Do(func(n *int) { *n = 1 })
		close(done)
	}()
	<-done
}
