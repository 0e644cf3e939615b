package geom

import "github.com/anvik/lenscorrect/internal/coord"

// Queue owns an ordered sequence of geometric models, composing them
// left-to-right (spec §3, §4.2.4). Models are value types, so Add's copy
// into the slice is already the "deep-clone on add" ownership the spec
// requires: the caller's Model value and the queue's copy never alias
// mutable state.
//
// Grounded on the "Functor queues" design note (spec §9): a value-owning
// container of tagged variants, add copies the incoming model, clear
// drops, evaluate iterates and composes results in a stack-local tuple.
type Queue struct {
	models []Model
}

// NewQueue returns an empty geometric queue.
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

// Clone returns a deep copy of the queue, used by the auto-scaler so
// that repeated evaluation of candidate scales never mutates the
// transform's own queue (spec §4.7).
func (q *Queue) Clone() *Queue {
	out := &Queue{models: make([]Model, len(q.models))}
	copy(out.models, q.models)
	return out
}

// Evaluate feeds a destination coordinate through every queued model in
// order, broadcasting the monochrome entry coordinate to all lanes
// before the first model (spec §4.2: "the output tuple of model k is
// the input tuple of model k+1, with the monochrome entry coordinate
// broadcast to all lanes at the first model").
func (q *Queue) Evaluate(lanes int, p coord.Point) coord.Tuple {
	t := coord.Broadcast(lanes, p)
	for _, m := range q.models {
		t = m.Apply(t)
	}
	return t
}
