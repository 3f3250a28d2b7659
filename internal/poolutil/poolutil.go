package poolutil

// Pool is a bounded free list. Get never blocks: it falls back to New when
// the pool is empty, and Put drops the item when the pool is full.
type Pool[T any] struct {
	New   func() T
	Reset func(T) T
	pool  chan T
}

func NewPool[T any](new func() T, reset func(T) T, size int) *Pool[T] {
	return &Pool[T]{
		New:   new,
		Reset: reset,
		pool:  make(chan T, size),
	}
}

// NewSlicePool pools slices with the given starting capacity. Returned slices
// always have length zero.
func NewSlicePool[E any](capacity, size int) *Pool[[]E] {
	return NewPool(
		func() []E { return make([]E, 0, capacity) },
		func(s []E) []E { return s[:0] },
		size,
	)
}

func (p *Pool[T]) Get() T {
	select {
	case item := <-p.pool:
		return item
	default:
		return p.New()
	}
}

func (p *Pool[T]) Put(item T) {
	if p.Reset != nil {
		item = p.Reset(item)
	}
	select {
	case p.pool <- item:
	default:
	}
}

// Idle reports how many items are waiting in the pool.
func (p *Pool[T]) Idle() int {
	return len(p.pool)
}
