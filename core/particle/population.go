package particle

// Population is a bounded, insertion-ordered collection. Overflow is evicted
// strictly from the front: the oldest entry always leaves first.
type Population[T any] struct {
	items []T
	cap   int
}

func NewPopulation[T any](capacity int) *Population[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Population[T]{items: make([]T, 0, capacity), cap: capacity}
}

func (p *Population[T]) Len() int { return len(p.items) }

func (p *Population[T]) Cap() int { return p.cap }

// Items exposes the live entries, oldest first. The slice is only valid until
// the next mutation.
func (p *Population[T]) Items() []T { return p.items }

// Push appends items and evicts the oldest entries over capacity. It returns
// the number evicted.
func (p *Population[T]) Push(items ...T) int {
	p.items = append(p.items, items...)
	return p.evict()
}

// SetCap changes the capacity, evicting immediately if needed.
func (p *Population[T]) SetCap(capacity int) int {
	if capacity < 1 {
		capacity = 1
	}
	p.cap = capacity
	return p.evict()
}

func (p *Population[T]) evict() int {
	over := len(p.items) - p.cap
	if over <= 0 {
		return 0
	}
	n := copy(p.items, p.items[over:])
	var zero T
	for i := n; i < len(p.items); i++ {
		p.items[i] = zero
	}
	p.items = p.items[:n]
	return over
}

// Each calls fn on every entry in insertion order.
func (p *Population[T]) Each(fn func(*T)) {
	for i := range p.items {
		fn(&p.items[i])
	}
}

// Retain walks back-to-front and drops entries for which keep returns false.
// Survivors keep their order; the vacated tail is zeroed.
func (p *Population[T]) Retain(keep func(*T) bool) int {
	w := len(p.items)
	for i := len(p.items) - 1; i >= 0; i-- {
		if keep(&p.items[i]) {
			w--
			p.items[w] = p.items[i]
		}
	}
	removed := w
	n := copy(p.items, p.items[w:])
	clear(p.items[n:])
	p.items = p.items[:n]
	return removed
}

func (p *Population[T]) Clear() {
	clear(p.items)
	p.items = p.items[:0]
}
