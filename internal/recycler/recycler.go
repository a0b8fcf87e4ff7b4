package recycler

import (
	"sort"

	"github.com/young1lin/sheetview/internal/geometry"
)

type entry struct {
	identifier string
	cell       Cell
}

// Recycler is one pane's cell pool. Idle cells are grouped by identifier;
// in-use cells are keyed by the grid index they display.
type Recycler struct {
	name     string
	registry *Registry

	idle    map[string][]Cell
	inUse   map[geometry.GridIndex]entry
	created map[string]int
}

// New creates a recycler for the named pane backed by a shared registry
func New(name string, registry *Registry) *Recycler {
	return &Recycler{
		name:     name,
		registry: registry,
		idle:     make(map[string][]Cell),
		inUse:    make(map[geometry.GridIndex]entry),
		created:  make(map[string]int),
	}
}

// Name returns the pane name this pool belongs to
func (r *Recycler) Name() string {
	return r.name
}

// Dequeue returns a cell for idx, reusing an idle instance when one exists.
// A cell already occupying idx is retired first.
func (r *Recycler) Dequeue(identifier string, idx geometry.GridIndex) (Cell, error) {
	factory, ok := r.registry.Lookup(identifier)
	if !ok {
		return nil, &IdentifierError{Identifier: identifier}
	}

	r.Retire(idx)

	var cell Cell
	if pool := r.idle[identifier]; len(pool) > 0 {
		cell = pool[len(pool)-1]
		pool[len(pool)-1] = nil
		r.idle[identifier] = pool[:len(pool)-1]
		cell.PrepareForReuse()
	} else {
		cell = factory()
		r.created[identifier]++
	}

	r.inUse[idx] = entry{identifier: identifier, cell: cell}
	return cell, nil
}

// Retire moves the cell at idx back to the idle pool. Missing keys are ignored.
func (r *Recycler) Retire(idx geometry.GridIndex) {
	e, ok := r.inUse[idx]
	if !ok {
		return
	}
	delete(r.inUse, idx)
	r.idle[e.identifier] = append(r.idle[e.identifier], e.cell)
}

// Reconcile retires every in-use cell whose index is not in visible and
// returns the retired indices in row-major order
func (r *Recycler) Reconcile(visible []geometry.GridIndex) []geometry.GridIndex {
	keep := make(map[geometry.GridIndex]struct{}, len(visible))
	for _, idx := range visible {
		keep[idx] = struct{}{}
	}

	var retired []geometry.GridIndex
	for idx := range r.inUse {
		if _, ok := keep[idx]; !ok {
			retired = append(retired, idx)
		}
	}
	sortIndices(retired)
	for _, idx := range retired {
		r.Retire(idx)
	}
	return retired
}

// CellAt returns the in-use cell at idx
func (r *Recycler) CellAt(idx geometry.GridIndex) (Cell, bool) {
	e, ok := r.inUse[idx]
	return e.cell, ok
}

// IdentifierAt returns the reuse identifier of the in-use cell at idx
func (r *Recycler) IdentifierAt(idx geometry.GridIndex) (string, bool) {
	e, ok := r.inUse[idx]
	return e.identifier, ok
}

// InUse returns the occupied indices in row-major order
func (r *Recycler) InUse() []geometry.GridIndex {
	out := make([]geometry.GridIndex, 0, len(r.inUse))
	for idx := range r.inUse {
		out = append(out, idx)
	}
	sortIndices(out)
	return out
}

// IdleCount returns how many idle cells are pooled for identifier
func (r *Recycler) IdleCount(identifier string) int {
	return len(r.idle[identifier])
}

// Created returns how many cells the factory for identifier has built
func (r *Recycler) Created(identifier string) int {
	return r.created[identifier]
}

// Purge drops every cell, idle and in use
func (r *Recycler) Purge() {
	r.idle = make(map[string][]Cell)
	r.inUse = make(map[geometry.GridIndex]entry)
}

func sortIndices(idx []geometry.GridIndex) {
	sort.Slice(idx, func(i, j int) bool {
		if idx[i].Row != idx[j].Row {
			return idx[i].Row < idx[j].Row
		}
		return idx[i].Column < idx[j].Column
	})
}
