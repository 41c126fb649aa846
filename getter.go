package tetris

import "math/rand"

// ShapeGetter supplies the shape of every spawned piece.
type ShapeGetter interface {
	Next() ShapeType
}

// RandomGetter picks uniformly among all shapes, each pick independent of the
// previous ones.
type RandomGetter struct {
	randomizer *rand.Rand
	shapes     []ShapeType
}

func NewRandomGetter(seed int64) *RandomGetter {
	return &RandomGetter{
		randomizer: rand.New(rand.NewSource(seed)),
		shapes:     ShapeTypes,
	}
}

func (r *RandomGetter) Next() ShapeType {
	return r.shapes[r.randomizer.Intn(len(r.shapes))]
}

// QueueGetter hands out pushed shapes in order. When the queue runs dry it
// falls back to the last shape it returned, or ShapeO if it never had any.
type QueueGetter struct {
	queue []ShapeType
	last  ShapeType
}

func NewQueueGetter(shapes ...ShapeType) *QueueGetter {
	return &QueueGetter{queue: append(make([]ShapeType, 0, len(shapes)), shapes...), last: ShapeO}
}

func (q *QueueGetter) Next() ShapeType {
	if len(q.queue) == 0 {
		return q.last
	}
	t := q.queue[0]
	q.queue = q.queue[1:]
	q.last = t
	return t
}

func (q *QueueGetter) Push(shapes ...ShapeType) {
	q.queue = append(q.queue, shapes...)
}

func (q *QueueGetter) Len() int {
	return len(q.queue)
}
