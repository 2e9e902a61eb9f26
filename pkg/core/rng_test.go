package core

import "testing"

func TestNewRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.IntN(1000) != b.IntN(1000) {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}

func TestSeedsDiffer(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.IntN(1000) == b.IntN(1000) {
			same++
		}
	}
	if same == 100 {
		t.Fatal("different seeds produced identical sequences")
	}
}

func TestStreamsIndependent(t *testing.T) {
	a := NewStreamRNG(42, 1)
	b := NewStreamRNG(42, 2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.IntN(1000) == b.IntN(1000) {
			same++
		}
	}
	if same == 100 {
		t.Fatal("distinct streams produced identical sequences")
	}

	c := NewStreamRNG(42, 1)
	d := NewStreamRNG(42, 1)
	for i := 0; i < 100; i++ {
		if c.IntN(1000) != d.IntN(1000) {
			t.Fatalf("same stream diverged at draw %d", i)
		}
	}
}

func TestIntNBounds(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		if v := r.IntN(10); v < 0 || v >= 10 {
			t.Fatalf("IntN(10) = %d", v)
		}
	}
	if v := r.IntN(0); v != 0 {
		t.Fatalf("IntN(0) = %d", v)
	}
}

func TestRangeInclusive(t *testing.T) {
	r := NewRNG(7)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.Range(-1, 1)
		if v < -1 || v > 1 {
			t.Fatalf("Range(-1, 1) = %d", v)
		}
		seen[v] = true
	}
	for v := -1; v <= 1; v++ {
		if !seen[v] {
			t.Fatalf("Range(-1, 1) never produced %d", v)
		}
	}
	if v := r.Range(5, 5); v != 5 {
		t.Fatalf("Range(5, 5) = %d", v)
	}
}

func TestChanceExtremes(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 100; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
	hits := 0
	for i := 0; i < 10000; i++ {
		if r.Chance(0.7) {
			hits++
		}
	}
	if hits < 6500 || hits > 7500 {
		t.Fatalf("Chance(0.7) hit %d of 10000", hits)
	}
}
