// Package editstate coalesces bursts of score edits into single store
// writes. Each trip's score cells form one editable field group moving
// through clean -> pending -> dirty-awaiting-flush: a fresh edit arms (or
// re-arms) a debounce timer, the timer flushes the coalesced batch, and a
// failed flush keeps the edits and retries instead of losing keystrokes.
// While edits are in flight, Overlay reapplies them on top of a freshly
// loaded document so a read never visibly reverts typing.
package editstate

import (
	"sync"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/chaigney/golftrip/internal/models"
)

// State is the lifecycle of one trip's score edit group.
type State int

const (
	Clean State = iota
	Pending
	DirtyAwaitingFlush
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Pending:
		return "pending"
	case DirtyAwaitingFlush:
		return "dirty-awaiting-flush"
	default:
		return "unknown"
	}
}

// Edit is one score-cell change. A later edit to the same cell supersedes an
// earlier one still waiting in the batch.
type Edit struct {
	CourseKey string
	Player    models.PlayerID
	Hole      int
	Entry     models.ScoreEntry
}

type editKey struct {
	courseKey string
	player    models.PlayerID
	hole      int
}

// FlushFunc persists a coalesced batch for one trip.
type FlushFunc func(tripID string, edits []Edit) error

type group struct {
	state State
	timer *clock.Timer
	edits map[editKey]Edit
	order []editKey
}

// Tracker debounces score writes per trip.
type Tracker struct {
	mu     sync.Mutex
	clock  clock.Clock
	window time.Duration
	flush  FlushFunc
	groups map[string]*group
}

func New(c clock.Clock, window time.Duration, flush FlushFunc) *Tracker {
	return &Tracker{
		clock:  c,
		window: window,
		flush:  flush,
		groups: make(map[string]*group),
	}
}

// Record registers an edit and arms the debounce timer. An edit arriving
// while a timer is pending resets it, so a typing burst flushes once.
func (t *Tracker) Record(tripID string, e Edit) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.groups[tripID]
	if !ok {
		g = &group{edits: make(map[editKey]Edit)}
		t.groups[tripID] = g
	}

	key := editKey{courseKey: e.CourseKey, player: e.Player, hole: e.Hole}
	if _, seen := g.edits[key]; !seen {
		g.order = append(g.order, key)
	}
	g.edits[key] = e

	if g.state == Pending && g.timer != nil {
		g.timer.Reset(t.window)
		return
	}
	g.state = Pending
	g.timer = t.clock.AfterFunc(t.window, func() { t.flushTrip(tripID) })
}

// State reports the group's current state, Clean for unknown trips.
func (t *Tracker) State(tripID string) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if g, ok := t.groups[tripID]; ok {
		return g.state
	}
	return Clean
}

// Overlay reapplies in-flight edits onto a trip snapshot. Called on reads so
// a document loaded from the store cannot revert a keystroke that has not
// flushed yet.
func (t *Tracker) Overlay(tripID string, trip *models.Trip) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.groups[tripID]
	if !ok || g.state == Clean {
		return
	}
	for _, key := range g.order {
		e := g.edits[key]
		trip.SetScore(e.CourseKey, e.Player, e.Hole, e.Entry)
	}
}

// Flush forces an immediate flush, used on shutdown.
func (t *Tracker) Flush(tripID string) error {
	return t.flushTrip(tripID)
}

func (t *Tracker) flushTrip(tripID string) error {
	t.mu.Lock()
	g, ok := t.groups[tripID]
	if !ok || len(g.edits) == 0 {
		if ok {
			g.state = Clean
		}
		t.mu.Unlock()
		return nil
	}
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}

	batch := make([]Edit, 0, len(g.order))
	for _, key := range g.order {
		batch = append(batch, g.edits[key])
	}
	g.edits = make(map[editKey]Edit)
	g.order = nil
	g.state = DirtyAwaitingFlush
	t.mu.Unlock()

	err := t.flush(tripID, batch)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		// Keep the failed batch as a draft and retry after another window,
		// without clobbering edits recorded while the flush was in flight.
		for _, e := range batch {
			key := editKey{courseKey: e.CourseKey, player: e.Player, hole: e.Hole}
			if _, newer := g.edits[key]; !newer {
				g.edits[key] = e
				g.order = append(g.order, key)
			}
		}
		if g.state == DirtyAwaitingFlush {
			// A Record during the flush already re-armed the timer.
			g.state = Pending
			g.timer = t.clock.AfterFunc(t.window, func() { t.flushTrip(tripID) })
		}
		return err
	}
	if g.state == DirtyAwaitingFlush {
		g.state = Clean
	}
	return nil
}
