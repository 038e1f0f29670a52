package drawlist

import "iter"

// Pool is an arena of renderer handles indexed by key.
//
// A handle is created the first time its key is requested and then reused
// for as long as the pool lives; only its content changes from frame to
// frame. Handles are addressed by a stable [Ref] so recorded commands can
// refer to them without holding the key.
//
// Pool is not safe for concurrent use.
type Pool[K comparable, H any] struct {
	index   map[K]Ref
	keys    []K
	handles []H
}

// NewPool creates an empty pool.
func NewPool[K comparable, H any]() *Pool[K, H] {
	return &Pool[K, H]{
		index:   make(map[K]Ref, 8),
		keys:    make([]K, 0, 8),
		handles: make([]H, 0, 8),
	}
}

// GetOrCreate returns the handle stored under key, calling create to build
// it on a miss. create is called at most once per key over the lifetime of
// the pool.
func (p *Pool[K, H]) GetOrCreate(key K, create func(K) H) (Ref, H) {
	if ref, ok := p.index[key]; ok {
		return ref, p.handles[ref]
	}
	h := create(key)
	// #nosec G115 -- pool size is bounded by distinct keys, well under uint32 max
	ref := Ref(uint32(len(p.handles)))
	p.index[key] = ref
	p.keys = append(p.keys, key)
	p.handles = append(p.handles, h)
	return ref, h
}

// Lookup returns the reference stored under key.
func (p *Pool[K, H]) Lookup(key K) (Ref, bool) {
	ref, ok := p.index[key]
	return ref, ok
}

// Get returns the handle for ref.
// Returns the zero handle if ref is invalid.
func (p *Pool[K, H]) Get(ref Ref) H {
	if !ref.IsValid() || int(ref) >= len(p.handles) {
		var zero H
		return zero
	}
	return p.handles[ref]
}

// Key returns the key ref was created for.
func (p *Pool[K, H]) Key(ref Ref) (K, bool) {
	if !ref.IsValid() || int(ref) >= len(p.keys) {
		var zero K
		return zero, false
	}
	return p.keys[ref], true
}

// Len returns the number of handles in the pool.
func (p *Pool[K, H]) Len() int {
	return len(p.handles)
}

// All iterates over handles in creation order.
func (p *Pool[K, H]) All() iter.Seq2[K, H] {
	return func(yield func(K, H) bool) {
		for i, h := range p.handles {
			if !yield(p.keys[i], h) {
				return
			}
		}
	}
}

// Release calls destroy for every handle in creation order and empties the
// pool. References handed out earlier become invalid.
func (p *Pool[K, H]) Release(destroy func(H)) {
	if destroy != nil {
		for _, h := range p.handles {
			destroy(h)
		}
	}
	clear(p.index)
	clear(p.handles)
	p.keys = p.keys[:0]
	p.handles = p.handles[:0]
}
