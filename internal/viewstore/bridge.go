package viewstore

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FlushMsg fires when the debounce window of a pending write closes.
type FlushMsg struct {
	ID  string
	Seq int
}

// SavedMsg reports the outcome of a debounced write. Skipped is set when the
// write was cancelled after it had already been dispatched.
type SavedMsg struct {
	ID      string
	Err     error
	Skipped bool
}

type DeletedMsg struct {
	ID  string
	Err error
}

// RestoredMsg carries the view found on mount. Found is false when the store
// has no record for the chart.
type RestoredMsg struct {
	ID    string
	View  View
	Found bool
	Err   error
}

// Bridge owns the single pending write for one chart. It is driven from the
// bubbletea update loop; the commands it returns run the store calls.
type Bridge struct {
	store    Store
	id       string
	debounce time.Duration
	timeout  time.Duration
	log      *slog.Logger

	seq      int
	pending  *View
	restored bool

	// gen is bumped on every cancel; a dispatched save that observes a
	// different generation is dropped. annGen does the same for the
	// annotation field alone. mu serializes store calls so a delete can
	// never be overtaken by an older save.
	gen    atomic.Int64
	annGen atomic.Int64
	mu     *sync.Mutex
}

type BridgeOptions struct {
	Debounce time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger
}

func NewBridge(store Store, id string, opts BridgeOptions) *Bridge {
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Bridge{
		store:    store,
		id:       id,
		debounce: opts.Debounce,
		timeout:  opts.Timeout,
		log:      opts.Logger.With("chart", id),
		mu:       &sync.Mutex{},
	}
}

func (b *Bridge) ID() string { return b.id }

// Pending reports whether a write is waiting for its debounce window.
func (b *Bridge) Pending() bool { return b.pending != nil }

// Persist merges p into the pending write and restarts the quiet period.
func (b *Bridge) Persist(p View) tea.Cmd {
	if b == nil || b.store == nil {
		return nil
	}
	merged := p
	if b.pending != nil {
		merged = b.pending.Merge(p)
	}
	b.pending = &merged
	b.seq++
	id, seq := b.id, b.seq
	return tea.Tick(b.debounce, func(time.Time) tea.Msg {
		return FlushMsg{ID: id, Seq: seq}
	})
}

// Flush dispatches the pending write if msg belongs to the latest Persist
// call. Older ticks are ignored.
func (b *Bridge) Flush(msg FlushMsg) tea.Cmd {
	if b == nil || msg.ID != b.id || msg.Seq != b.seq || b.pending == nil {
		return nil
	}
	v := *b.pending
	b.pending = nil
	v.UpdatedAt = time.Now().UTC()

	gen, annGen := b.gen.Load(), b.annGen.Load()
	store, id, timeout, mu := b.store, b.id, b.timeout, b.mu
	log := b.log
	return func() tea.Msg {
		mu.Lock()
		defer mu.Unlock()
		if b.gen.Load() != gen {
			log.Debug("dropped cancelled view write")
			return SavedMsg{ID: id, Skipped: true}
		}
		if b.annGen.Load() != annGen {
			v.Annotation = nil
			if v.Empty() {
				log.Debug("dropped cancelled annotation write")
				return SavedMsg{ID: id, Skipped: true}
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := store.Save(ctx, id, v)
		if err != nil {
			log.Warn("save view", "err", err)
		}
		return SavedMsg{ID: id, Err: err}
	}
}

// Cancel drops the pending write and any write already dispatched but not
// yet started. State already written to the store is left alone.
func (b *Bridge) Cancel() {
	if b == nil {
		return
	}
	b.seq++
	b.pending = nil
	b.gen.Add(1)
}

// CancelAnnotation removes the annotation from the pending write and from a
// write already dispatched. Window and stride changes still go out.
func (b *Bridge) CancelAnnotation() {
	if b == nil {
		return
	}
	b.annGen.Add(1)
	if b.pending == nil {
		return
	}
	b.pending.Annotation = nil
	if b.pending.Empty() {
		b.seq++
		b.pending = nil
	}
}

// ClearExternal cancels pending work and deletes the stored view.
func (b *Bridge) ClearExternal() tea.Cmd {
	if b == nil || b.store == nil {
		return nil
	}
	b.Cancel()
	store, id, timeout, mu := b.store, b.id, b.timeout, b.mu
	log := b.log
	return func() tea.Msg {
		mu.Lock()
		defer mu.Unlock()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := store.Delete(ctx, id)
		if err != nil {
			log.Warn("delete view", "err", err)
		}
		return DeletedMsg{ID: id, Err: err}
	}
}

// Restore loads the stored view. It returns a command only on the first
// call; later calls return nil.
func (b *Bridge) Restore() tea.Cmd {
	if b == nil || b.store == nil || b.restored {
		return nil
	}
	b.restored = true
	store, id, timeout := b.store, b.id, b.timeout
	log := b.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		v, err := store.Load(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return RestoredMsg{ID: id}
		}
		if err != nil {
			log.Warn("load view", "err", err)
			return RestoredMsg{ID: id, Err: err}
		}
		return RestoredMsg{ID: id, View: v, Found: !v.Empty()}
	}
}
