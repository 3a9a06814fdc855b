package scene

import (
	"errors"
	"sync"
	"sync/atomic"
)

var ErrNotFound = errors.New("object not found")

// Document is the live, in-memory ordered collection of scene objects being
// edited. Collection order is z-order. A document is owned by one editor
// session and mutated from one goroutine at a time; the mutex guards the
// slice against readers on other goroutines (report snapshots, serve mode),
// and the updating flag serializes the one genuinely asynchronous mutator
// (logo replacement) against itself.
type Document struct {
	// Canvas dimensions. Set once at creation or import, read-only after.
	Width  float64
	Height float64

	mu       sync.RWMutex
	objects  []*Object
	selected string // ID of the active editing target, "" for none

	onRender func()      // render-request hook, may be nil
	renders  atomic.Int64 // count of render requests, for tests and debug

	updating atomic.Bool // logo-swap in-flight guard: idle=false, updating=true
}

// New returns an empty document.
func New() *Document { return &Document{} }

// Append adds o at the top of the z-order.
func (d *Document) Append(o *Object) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.objects = append(d.objects, o)
}

// InsertAt inserts o so that it occupies z-index i. i is clamped to the
// valid range.
func (d *Document) InsertAt(i int, o *Object) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 {
		i = 0
	}
	if i > len(d.objects) {
		i = len(d.objects)
	}
	d.objects = append(d.objects, nil)
	copy(d.objects[i+1:], d.objects[i:])
	d.objects[i] = o
}

// RemoveAt removes the object at z-index i and returns it.
func (d *Document) RemoveAt(i int) (*Object, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.objects) {
		return nil, ErrNotFound
	}
	o := d.objects[i]
	d.objects = append(d.objects[:i], d.objects[i+1:]...)
	if d.selected == o.ID {
		d.selected = ""
	}
	return o, nil
}

// Remove removes the object with the given ID.
func (d *Document) Remove(id string) error {
	i := d.IndexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	_, err := d.RemoveAt(i)
	return err
}

// IndexOf returns the z-index of the object with the given ID, or -1.
func (d *Document) IndexOf(id string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i, o := range d.objects {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the object with the given ID.
func (d *Document) Get(id string) (*Object, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, o := range d.objects {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, ErrNotFound
}

// Objects returns the objects in z-order. The slice is a copy; the objects
// are shared.
func (d *Document) Objects() []*Object {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*Object, len(d.objects))
	copy(out, d.objects)
	return out
}

// Len returns the object count.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.objects)
}

// Select marks the object with the given ID as the active editing target.
// An unknown ID clears the selection.
func (d *Document) Select(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = ""
	for _, o := range d.objects {
		if o.ID == id {
			d.selected = id
			return
		}
	}
}

// Selected returns the active editing target, or nil.
func (d *Document) Selected() *Object {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.selected == "" {
		return nil
	}
	for _, o := range d.objects {
		if o.ID == d.selected {
			return o
		}
	}
	return nil
}

// OnRender installs the render-request hook. The hook runs synchronously on
// the mutating goroutine; it should only schedule work.
func (d *Document) OnRender(fn func()) { d.onRender = fn }

// RequestRender notifies the renderer that visible content changed. Every
// mutator that changes visible content calls this as its final step.
func (d *Document) RequestRender() {
	d.renders.Add(1)
	if d.onRender != nil {
		d.onRender()
	}
}

// RenderRequests returns the number of render requests so far.
func (d *Document) RenderRequests() int64 { return d.renders.Load() }

// BeginUpdate attempts the idle→updating transition of the logo-swap
// guard. It returns false if an update is already in flight; the caller
// must then reject its own call rather than interleave. Callers that see
// true must pair it with EndUpdate on every exit path.
func (d *Document) BeginUpdate() bool { return d.updating.CompareAndSwap(false, true) }

// EndUpdate returns the guard to idle.
func (d *Document) EndUpdate() { d.updating.Store(false) }
