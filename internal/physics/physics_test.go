package physics

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 4, H: 4}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", Rect{X: 1, Y: 1, W: 1, H: 1}, true},
		{"partial", Rect{X: 3, Y: 3, W: 4, H: 4}, true},
		{"touching edge", Rect{X: 4, Y: 0, W: 2, H: 2}, false},
		{"touching corner", Rect{X: 4, Y: 4, W: 2, H: 2}, false},
		{"left of", Rect{X: -3, Y: 0, W: 2, H: 4}, false},
		{"above", Rect{X: 0, Y: -5, W: 4, H: 4}, false},
		{"enclosing", Rect{X: -1, Y: -1, W: 10, H: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 5, H: 5}
	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if !r.Contains(14.9, 14.9) {
		t.Error("point near bottom-right should be inside")
	}
	if r.Contains(15, 12) {
		t.Error("right edge should be outside")
	}
	if r.Contains(9.9, 12) {
		t.Error("point left of rect should be outside")
	}
}

func TestRectEdgesAndCenter(t *testing.T) {
	r := CenteredRect(10, 20, 4, 6)
	if r.Left() != 8 || r.Right() != 12 || r.Top() != 17 || r.Bottom() != 23 {
		t.Fatalf("unexpected edges: %+v", r)
	}
	cx, cy := r.Center()
	if cx != 10 || cy != 20 {
		t.Fatalf("Center = (%f, %f), want (10, 20)", cx, cy)
	}
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(5, 5, 0)   // cell (0,0)
	g.Insert(15, 5, 1)  // cell (1,0)
	g.Insert(55, 55, 2) // far away
	g.Insert(-20, 5, 3) // clamped into (0,0)

	var found []int
	g.QueryAround(8, 8, func(i int) bool {
		found = append(found, i)
		return false
	})
	sort.Ints(found)
	want := []int{0, 1, 3}
	if len(found) != len(want) {
		t.Fatalf("found %v, want %v", found, want)
	}
	for i := range want {
		if found[i] != want[i] {
			t.Fatalf("found %v, want %v", found, want)
		}
	}
}

func TestSpatialGridEarlyStop(t *testing.T) {
	g := NewSpatialGrid(50, 50, 10)
	for i := 0; i < 5; i++ {
		g.Insert(5, 5, i)
	}
	calls := 0
	g.QueryAround(5, 5, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestSpatialGridClear(t *testing.T) {
	g := NewSpatialGrid(50, 50, 10)
	g.Insert(5, 5, 0)
	g.Clear()
	g.QueryAround(5, 5, func(int) bool {
		t.Fatal("grid should be empty after Clear")
		return true
	})
}

// The grid must report every overlapping pair that a brute-force scan finds.
func TestSpatialGridMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const w, h = 120.0, 80.0
	smallW, smallH := 1.0, 3.0
	bigW, bigH := 8.0, 5.0
	cell := math.Max(bigW, bigH) + math.Max(smallW, smallH)

	for round := 0; round < 50; round++ {
		var bigs, smalls []Rect
		for i := 0; i < 40; i++ {
			bigs = append(bigs, Rect{X: rng.Float64()*(w+20) - 10, Y: rng.Float64()*(h+20) - 10, W: bigW, H: bigH})
		}
		for i := 0; i < 20; i++ {
			smalls = append(smalls, Rect{X: rng.Float64()*(w+20) - 10, Y: rng.Float64()*(h+20) - 10, W: smallW, H: smallH})
		}

		g := NewSpatialGrid(w, h, cell)
		for i, b := range bigs {
			cx, cy := b.Center()
			g.Insert(cx, cy, i)
		}

		for si, s := range smalls {
			brute := map[int]bool{}
			for bi, b := range bigs {
				if s.Overlaps(b) {
					brute[bi] = true
				}
			}
			grid := map[int]bool{}
			cx, cy := s.Center()
			g.QueryAround(cx, cy, func(bi int) bool {
				if s.Overlaps(bigs[bi]) {
					grid[bi] = true
				}
				return false
			})
			if len(brute) != len(grid) {
				t.Fatalf("round %d small %d: brute %v, grid %v", round, si, brute, grid)
			}
			for bi := range brute {
				if !grid[bi] {
					t.Fatalf("round %d small %d: grid missed %d", round, si, bi)
				}
			}
		}
	}
}
