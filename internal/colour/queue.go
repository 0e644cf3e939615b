package colour

import "github.com/anvik/lenscorrect/internal/coord"

// Queue owns an ordered sequence of colour models, composing their gains
// by element-wise multiplication across the queue (spec §4.3). Same
// value-owning, deep-clone-on-add ownership discipline as
// internal/geom.Queue.
type Queue struct {
	models []Model
}

// NewQueue returns an empty colour queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add appends a model to the end of the queue.
func (q *Queue) Add(m Model) {
	q.models = append(q.models, m)
}

// Len returns the number of models currently queued.
func (q *Queue) Len() int { return len(q.models) }

// Clear empties the queue.
func (q *Queue) Clear() { q.models = nil }

// Evaluate computes the composed per-channel gain at a source coordinate
// tuple (spec §4.3). An empty queue returns the identity gain (all 1s).
func (q *Queue) Evaluate(src coord.Tuple) coord.Gains {
	g := coord.Ones(src.Lanes)
	for _, m := range q.models {
		g = g.Mul(m.Apply(src))
	}
	return g
}
