package colour

import (
	"math"
	"testing"

	"github.com/anvik/lenscorrect/internal/coord"
)

func TestVignettingGainAtCentreIsOne(t *testing.T) {
	m, err := NewVignetting(1, []VignettingCoeffs{{A: 0.1, B: -0.05, C: 0.2}}, 0.1, -0.2)
	if err != nil {
		t.Fatalf("NewVignetting: %v", err)
	}
	src := coord.Broadcast(1, coord.Point{X: 0.1, Y: -0.2})
	g := m.Apply(src)
	if math.Abs(g.V[0]-1) > 1e-12 {
		t.Errorf("expected gain 1 at centre, got %v", g.V[0])
	}
}

func TestVignettingCompensationBrightensCorners(t *testing.T) {
	m, err := NewVignetting(1, []VignettingCoeffs{{A: 0, B: 0, C: -0.3}}, 0, 0)
	if err != nil {
		t.Fatalf("NewVignetting: %v", err)
	}
	centre := m.Apply(coord.Broadcast(1, coord.Point{X: 0, Y: 0}))
	corner := m.Apply(coord.Broadcast(1, coord.Point{X: 1, Y: 1}))
	if !(corner.V[0] > centre.V[0]) {
		t.Errorf("expected corner gain > centre gain, got corner=%v centre=%v", corner.V[0], centre.V[0])
	}
	rCorner2 := 2.0
	want := 1 / (1 + (-0.3)*rCorner2)
	if math.Abs(corner.V[0]-want) > 0.005*want {
		t.Errorf("corner gain ratio mismatch: got %v want %v", corner.V[0], want)
	}
}

func TestQueueEvaluateEmptyIsIdentity(t *testing.T) {
	q := NewQueue()
	g := q.Evaluate(coord.Broadcast(3, coord.Point{X: 0.5, Y: 0.5}))
	for i := 0; i < 3; i++ {
		if g.V[i] != 1 {
			t.Errorf("lane %d: expected identity gain 1, got %v", i, g.V[i])
		}
	}
}

func TestQueueEvaluateComposesByMultiplication(t *testing.T) {
	m1, _ := NewVignetting(1, []VignettingCoeffs{{C: -0.1}}, 0, 0)
	m2, _ := NewVignetting(1, []VignettingCoeffs{{C: -0.2}}, 0, 0)
	q := NewQueue()
	q.Add(m1)
	q.Add(m2)

	src := coord.Broadcast(1, coord.Point{X: 0.5, Y: 0})
	got := q.Evaluate(src)
	want := m1.Apply(src).V[0] * m2.Apply(src).V[0]
	if math.Abs(got.V[0]-want) > 1e-12 {
		t.Errorf("got %v want %v", got.V[0], want)
	}
}
