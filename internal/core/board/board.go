package board

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/zeusync/gridjam/internal/core/events/bus"
	"github.com/zeusync/gridjam/internal/core/models"
	"github.com/zeusync/gridjam/internal/core/observability/log"
)

type Point = models.Point

// Board is a fixed-size grid of pawn slots. It is the only writer of a
// pawn's board and position.
type Board struct {
	size  Point
	cells []*Pawn // row-major, index y*size.X+x
	tick  uint64

	logger  log.Log
	events  bus.EventBus
	filters []bus.EventFilter
}

type BoardOption func(*Board)

func WithLogger(logger log.Log) BoardOption {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithEventBus shares an existing bus instead of creating one per board.
func WithEventBus(events bus.EventBus) BoardOption {
	return func(b *Board) {
		if events != nil {
			b.events = events
		}
	}
}

// WithEventFilters drops board events rejected by any filter before they
// reach the bus subscribers.
func WithEventFilters(filters ...bus.EventFilter) BoardOption {
	return func(b *Board) {
		b.filters = append(b.filters, filters...)
	}
}

// NewBoard creates an empty board. Negative dimensions are treated as zero.
func NewBoard(size Point, opts ...BoardOption) *Board {
	size.X = max(size.X, 0)
	size.Y = max(size.Y, 0)
	b := &Board{
		size:   size,
		cells:  make([]*Pawn, size.X*size.Y),
		logger: log.NewNop(),
		events: bus.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Board) Size() Point { return b.size }

// Tick counts completed phases.
func (b *Board) Tick() uint64 { return b.tick }

func (b *Board) Events() bus.EventBus { return b.events }

// Within reports whether p addresses a cell.
func (b *Board) Within(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.size.X && p.Y < b.size.Y
}

// At returns the pawn at p, or nil if the cell is empty or p is outside the board.
func (b *Board) At(p Point) *Pawn {
	if !b.Within(p) {
		return nil
	}
	return b.cells[b.index(p)]
}

// Set places pawn at p. A pawn already on this board moves; a pawn on another
// board is removed from it first.
func (b *Board) Set(pawn *Pawn, p Point) error {
	if pawn == nil {
		return ErrNilPawn
	}
	if !b.Within(p) {
		return fmt.Errorf("set %s at %s: %w", pawn, p, ErrOutOfBounds)
	}
	if occupant := b.cells[b.index(p)]; occupant != nil && occupant != pawn {
		return fmt.Errorf("set %s at %s held by %s: %w", pawn, p, occupant, ErrCellOccupied)
	}
	b.place(pawn, p)
	return nil
}

// Put places pawn at p, evicting and returning any other occupant.
func (b *Board) Put(pawn *Pawn, p Point) (*Pawn, error) {
	if pawn == nil {
		return nil, ErrNilPawn
	}
	if !b.Within(p) {
		return nil, fmt.Errorf("put %s at %s: %w", pawn, p, ErrOutOfBounds)
	}
	evicted := b.cells[b.index(p)]
	if evicted == pawn {
		evicted = nil
	}
	if evicted != nil {
		b.Remove(evicted)
	}
	b.place(pawn, p)
	return evicted, nil
}

func (b *Board) place(pawn *Pawn, p Point) {
	if pawn.OnBoard() {
		if pawn.board == b {
			b.clear(pawn)
		} else {
			pawn.board.Remove(pawn)
		}
	}
	b.cells[b.index(p)] = pawn
	pawn.board = b
	pawn.position = p

	b.logger.Debug("pawn placed", log.Stringer("pawn", pawn), log.Stringer("at", p))
	b.publish(bus.NewEvent(EventPawnPlaced, pawn.String(), PlacementData{Pawn: pawn, At: p}, nil))
}

// Remove clears the pawn's cell. It reports false if the pawn was not on this board.
func (b *Board) Remove(pawn *Pawn) bool {
	if pawn == nil || pawn.board != b || b.At(pawn.position) != pawn {
		return false
	}
	at := pawn.position
	b.clear(pawn)

	b.logger.Debug("pawn removed", log.Stringer("pawn", pawn), log.Stringer("at", at))
	b.publish(bus.NewEvent(EventPawnRemoved, pawn.String(), PlacementData{Pawn: pawn, At: at}, nil))
	return true
}

func (b *Board) clear(pawn *Pawn) {
	b.cells[b.index(pawn.position)] = nil
	pawn.board = nil
}

// Neighbors returns the occupied cells at p+offset, in offset order.
func (b *Board) Neighbors(p Point, offsets []Point) []*Pawn {
	out := make([]*Pawn, 0, len(offsets))
	b.EachNeighbor(p, offsets, func(_ Point, n *Pawn) {
		out = append(out, n)
	})
	return out
}

// EachNeighbor calls fn for every occupied cell at p+offset, in offset order.
func (b *Board) EachNeighbor(p Point, offsets []Point, fn func(at Point, pawn *Pawn)) {
	for _, offset := range offsets {
		at := p.Add(offset)
		if n := b.At(at); n != nil {
			fn(at, n)
		}
	}
}

// Pawns lists placed pawns in scan order.
func (b *Board) Pawns() []*Pawn {
	out := make([]*Pawn, 0)
	for _, pawn := range b.cells {
		if pawn != nil {
			out = append(out, pawn)
		}
	}
	return out
}

// Next steps every placed pawn, scanning rows bottom to top and cells left to
// right. A pawn moved during the phase is stepped at most once. The first
// error aborts the phase.
func (b *Board) Next() error {
	return b.step(PhaseNext)
}

// Back is Next for the Back phase.
func (b *Board) Back() error {
	return b.step(PhaseBack)
}

func (b *Board) step(phase Phase) error {
	stepped := make(map[*Pawn]struct{})
	for i := range b.cells {
		pawn := b.cells[i]
		if pawn == nil {
			continue
		}
		if _, done := stepped[pawn]; done {
			continue
		}
		stepped[pawn] = struct{}{}

		var err error
		if phase == PhaseNext {
			err = pawn.Next()
		} else {
			err = pawn.Back()
		}
		if err != nil {
			at := b.point(i)
			b.logger.Error("phase aborted",
				log.String("phase", string(phase)),
				log.Uint64("tick", b.tick),
				log.Stringer("pawn", pawn),
				log.Stringer("at", at),
				log.Error(err),
			)
			return fmt.Errorf("%s at %s: %w", pawn, at, err)
		}
	}

	b.tick++
	b.logger.Debug("phase done",
		log.String("phase", string(phase)),
		log.Uint64("tick", b.tick),
		log.Int("pawns", len(stepped)),
	)
	b.publish(bus.NewEvent(EventPhaseDone, "board", PhaseData{Phase: phase, Tick: b.tick, Pawns: len(stepped)}, nil))
	return nil
}

// Fingerprint digests occupancy and component state in scan order. Components
// contribute their String() when they implement fmt.Stringer, otherwise their
// type name. Two boards in the same state yield the same value.
func (b *Board) Fingerprint() uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(b.size.String())
	for i, pawn := range b.cells {
		if pawn == nil {
			continue
		}
		_, _ = h.WriteString("|" + b.point(i).String() + ":")
		for _, c := range pawn.order {
			if s, ok := c.(fmt.Stringer); ok {
				_, _ = h.WriteString(s.String())
			} else {
				_, _ = h.WriteString(c.TypeName())
			}
			_, _ = h.WriteString(";")
		}
	}
	return h.Sum64()
}

func (b *Board) publish(event bus.Event) {
	if err := b.events.PublishWithFilters(event, b.filters...); err != nil {
		b.logger.Warn("event handler failed", log.String("event", event.Type()), log.Error(err))
	}
}

func (b *Board) index(p Point) int {
	return p.Y*b.size.X + p.X
}

func (b *Board) point(i int) Point {
	return Point{X: i % b.size.X, Y: i / b.size.X}
}
