// Package app implements the primary ports: the synchronization engine and
// the services orchestrating optimistic mutations against the entity store
// and the remote gateway.
package app

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/example/deck/internal/models"
	"github.com/example/deck/internal/ports/secondary"
	"github.com/example/deck/internal/store"
)

type entityKey struct {
	kind string
	id   string
}

// Change is one entity's before/after image inside a mutation. A nil Before
// means the entity is being created; a nil After means it is being deleted.
type Change struct {
	Kind   string
	ID     string
	Before models.Entity
	After  models.Entity
}

// Call is one remote call belonging to a mutation. Do returns the
// authoritative entity when the backend reports one, nil otherwise.
// Calls of one mutation execute in order; the first failure reverts the
// whole mutation and abandons the remaining calls.
type Call struct {
	Kind string
	ID   string
	Do   func(ctx context.Context, gw secondary.Gateway) (models.Entity, error)
}

type mutation struct {
	op      string
	changes []Change
	calls   []Call
	// revs records, per touched entity, the revision this mutation's
	// optimistic apply produced. Completion handlers compare against the
	// live counter to detect staleness.
	revs map[entityKey]uint64
}

// Engine is the synchronization core. Submit applies a mutation to the
// store immediately and queues its remote calls; a single worker goroutine
// executes queued calls in submission order, which also serializes calls
// affecting the same entity. On remote failure the optimistic apply is
// reverted exactly and the failure surfaces through the Notifier.
type Engine struct {
	store    *store.Store
	gateway  secondary.Gateway
	notifier secondary.Notifier
	logger   *log.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []*mutation
	revs   map[entityKey]uint64
	busy   bool
	closed bool
}

// NewEngine starts an engine and its worker. Callers must Close it when the
// owning view is torn down.
func NewEngine(st *store.Store, gw secondary.Gateway, notifier secondary.Notifier, logger *log.Logger) *Engine {
	if notifier == nil {
		notifier = secondary.NopNotifier{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	e := &Engine{
		store:    st,
		gateway:  gw,
		notifier: notifier,
		logger:   logger,
		revs:     map[entityKey]uint64{},
	}
	e.cond = sync.NewCond(&e.mu)
	go e.run()
	return e
}

// Store exposes the engine's entity store for snapshot reads.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Gateway exposes the remote gateway for bulk (read-only) fetches.
func (e *Engine) Gateway() secondary.Gateway {
	return e.gateway
}

// Submit applies changes optimistically in one snapshot swap (observers see
// a single transition even for cascades) and queues the remote calls.
// Observers are invoked while the engine lock is held and must not call
// back into the engine synchronously.
func (e *Engine) Submit(op string, changes []Change, calls []Call) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	next := e.store.Snapshot()
	var err error
	for _, c := range changes {
		if c.After != nil {
			next, err = next.With(c.After)
			if err != nil {
				return err
			}
		} else {
			next = next.Without(c.Kind, c.ID)
		}
	}

	m := &mutation{op: op, changes: changes, calls: calls, revs: map[entityKey]uint64{}}
	for _, c := range changes {
		k := entityKey{c.Kind, c.ID}
		e.revs[k]++
		m.revs[k] = e.revs[k]
	}

	e.store.Swap(next)

	if len(calls) > 0 {
		e.queue = append(e.queue, m)
		e.cond.Broadcast()
	}
	return nil
}

// Update applies fn to the current snapshot and swaps the result, outside
// the mutation pipeline. Bulk fetches and selection changes use this; they
// have no optimistic/revert semantics.
func (e *Engine) Update(fn func(store.Snapshot) store.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.store.Swap(fn(e.store.Snapshot()))
}

// Flush blocks until every queued mutation has settled. Intended for tests
// and for process shutdown (the CLI flushes before exiting).
func (e *Engine) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for (len(e.queue) > 0 || e.busy) && !e.closed {
		e.cond.Wait()
	}
}

// Close tears the engine down. Pending mutations are dropped; completions
// of in-flight calls become no-ops rather than errors.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.queue = nil
	e.cond.Broadcast()
}

func (e *Engine) run() {
	for {
		e.mu.Lock()
		for len(e.queue) == 0 && !e.closed {
			e.cond.Wait()
		}
		if e.closed {
			e.mu.Unlock()
			return
		}
		m := e.queue[0]
		e.queue = e.queue[1:]
		e.busy = true
		e.mu.Unlock()

		e.execute(m)

		e.mu.Lock()
		e.busy = false
		e.cond.Broadcast()
		e.mu.Unlock()
	}
}

func (e *Engine) execute(m *mutation) {
	ctx := context.Background()
	for _, call := range m.calls {
		authoritative, err := call.Do(ctx, e.gateway)
		if err != nil {
			e.logger.Printf("%s: remote call for %s %s failed: %v", m.op, call.Kind, call.ID, err)
			e.revert(m)
			e.notifier.OperationFailed(m.op, err)
			return
		}
		if authoritative != nil {
			e.reconcile(m, call, authoritative)
		}
	}
}

// reconcile folds authoritative fields returned by the gateway into the
// store. When the entity has been mutated again since this mutation's
// apply, only gateway-owned fields survive the merge so the later local
// edit is not clobbered.
func (e *Engine) reconcile(m *mutation, call Call, authoritative models.Entity) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	snap := e.store.Snapshot()
	current, ok := snap.Entity(call.Kind, call.ID)
	if !ok {
		e.logger.Printf("%s: %s %s vanished before reconciliation, skipping", m.op, call.Kind, call.ID)
		return
	}

	k := entityKey{call.Kind, call.ID}
	next := authoritative
	if e.revs[k] != m.revs[k] {
		next = mergeAuthoritative(current, authoritative)
	}

	var (
		ns  store.Snapshot
		err error
	)
	if next.EntityID() != call.ID {
		ns, err = snap.Rekey(call.Kind, call.ID, next)
		if err == nil {
			e.revs[entityKey{call.Kind, next.EntityID()}] = e.revs[k]
			delete(e.revs, k)
		}
	} else {
		ns, err = snap.With(next)
	}
	if err != nil {
		e.logger.Printf("%s: reconciliation of %s %s rejected: %v", m.op, call.Kind, call.ID, err)
		return
	}
	e.store.Swap(ns)
}

// revert restores the before-images of a failed mutation. Entities mutated
// again since the optimistic apply are skipped with a warning: their state
// belongs to the later operation now.
func (e *Engine) revert(m *mutation) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	next := e.store.Snapshot()
	touched := false
	for i := len(m.changes) - 1; i >= 0; i-- {
		c := m.changes[i]
		k := entityKey{c.Kind, c.ID}
		if e.revs[k] != m.revs[k] {
			e.logger.Printf("%s: skipping revert of %s %s: modified since apply", m.op, c.Kind, c.ID)
			continue
		}
		var err error
		if c.Before != nil {
			next, err = next.With(c.Before)
			if err != nil {
				e.logger.Printf("%s: revert of %s %s rejected: %v", m.op, c.Kind, c.ID, err)
				continue
			}
		} else {
			next = next.Without(c.Kind, c.ID)
		}
		e.revs[k]++
		touched = true
	}
	if touched {
		e.store.Swap(next)
	}
}

// mergeAuthoritative keeps the current (newer) user-editable fields and
// takes only the gateway-owned ones from the authoritative record.
func mergeAuthoritative(current, authoritative models.Entity) models.Entity {
	switch cur := current.(type) {
	case *models.Board:
		auth, ok := authoritative.(*models.Board)
		if !ok {
			return current
		}
		merged := cur.Clone()
		merged.ID = auth.ID
		merged.CreatedAt = auth.CreatedAt
		return merged
	case *models.Column:
		auth, ok := authoritative.(*models.Column)
		if !ok {
			return current
		}
		merged := cur.Clone()
		merged.ID = auth.ID
		merged.CreatedAt = auth.CreatedAt
		return merged
	case *models.Card:
		auth, ok := authoritative.(*models.Card)
		if !ok {
			return current
		}
		merged := cur.Clone()
		merged.ID = auth.ID
		merged.CreatedAt = auth.CreatedAt
		return merged
	case *models.Tag:
		auth, ok := authoritative.(*models.Tag)
		if !ok {
			return current
		}
		merged := cur.Clone()
		merged.ID = auth.ID
		merged.CreatedAt = auth.CreatedAt
		return merged
	}
	return current
}
