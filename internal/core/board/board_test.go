package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/gridjam/internal/core/events/bus"
	"github.com/zeusync/gridjam/internal/core/models"
	"github.com/zeusync/gridjam/internal/core/observability/log"
)

// mover shifts its owner one cell right on every Next.
type mover struct {
	Base[*mover]
	owner *Pawn
	steps int
}

func (c *mover) Copy() Component { return &mover{} }

func (c *mover) OnAdd(p *Pawn) { c.owner = p }

func (c *mover) Next() error {
	c.steps++
	b := c.owner.Board()
	return b.Set(c.owner, c.owner.Position().Add(models.PointRight))
}

// recorder appends its owner's name on every phase.
type recorder struct {
	Base[*recorder]
	owner *Pawn
	calls *[]string
}

func (c *recorder) Copy() Component { return &recorder{calls: c.calls} }

func (c *recorder) OnAdd(p *Pawn) { c.owner = p }

func (c *recorder) Next() error {
	*c.calls = append(*c.calls, "next:"+c.owner.Name())
	return nil
}

func (c *recorder) Back() error {
	*c.calls = append(*c.calls, "back:"+c.owner.Name())
	return nil
}

func (c *recorder) Equal(Component) bool { return false }

func TestBoardWithin(t *testing.T) {
	b := NewBoard(Point{X: 3, Y: 2})

	assert.True(t, b.Within(Point{X: 0, Y: 0}))
	assert.True(t, b.Within(Point{X: 2, Y: 1}))
	assert.False(t, b.Within(Point{X: 3, Y: 0}))
	assert.False(t, b.Within(Point{X: 0, Y: 2}))
	assert.False(t, b.Within(Point{X: -1, Y: 0}))
	assert.False(t, b.Within(Point{X: 0, Y: -1}))

	empty := NewBoard(Point{X: -4, Y: 2})
	assert.Equal(t, Point{X: 0, Y: 2}, empty.Size())
	assert.False(t, empty.Within(Point{}))
	assert.NoError(t, empty.Next())
}

func TestBoardAtOutOfRange(t *testing.T) {
	b := NewBoard(Point{X: 3, Y: 3})
	for _, p := range []Point{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 3, Y: 0}, {X: 0, Y: 3}, {X: 100, Y: -100}} {
		assert.NotPanics(t, func() {
			assert.Nil(t, b.At(p))
		})
	}
}

func TestBoardSetAtRemove(t *testing.T) {
	b := NewBoard(Point{X: 3, Y: 3})
	pawn := NewPawn()
	at := Point{X: 2, Y: 1}

	require.NoError(t, b.Set(pawn, at))
	assert.Same(t, pawn, b.At(at))
	assert.Same(t, b, pawn.Board())
	assert.Equal(t, at, pawn.Position())
	assert.True(t, pawn.OnBoard())

	assert.True(t, b.Remove(pawn))
	assert.Nil(t, b.At(at))
	assert.False(t, pawn.OnBoard())
	assert.Nil(t, pawn.Board())
	assert.False(t, b.Remove(pawn))
	assert.False(t, b.Remove(nil))
}

func TestBoardSetErrors(t *testing.T) {
	b := NewBoard(Point{X: 2, Y: 2})
	first := NewPawn(WithName("first"))
	second := NewPawn(WithName("second"))

	err := b.Set(first, Point{X: 2, Y: 0})
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	err = b.Set(first, Point{X: 0, Y: -1})
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Nil(t, first.Board())

	assert.ErrorIs(t, b.Set(nil, Point{}), ErrNilPawn)

	require.NoError(t, b.Set(first, Point{X: 1, Y: 1}))
	err = b.Set(second, Point{X: 1, Y: 1})
	assert.ErrorIs(t, err, ErrCellOccupied)
	assert.Same(t, first, b.At(Point{X: 1, Y: 1}))
	assert.Nil(t, second.Board())

	// re-setting a pawn on its own cell is allowed
	assert.NoError(t, b.Set(first, Point{X: 1, Y: 1}))
}

func TestBoardSetMovesPawn(t *testing.T) {
	b := NewBoard(Point{X: 3, Y: 3})
	pawn := NewPawn()
	require.NoError(t, b.Set(pawn, Point{X: 0, Y: 0}))
	require.NoError(t, b.Set(pawn, Point{X: 2, Y: 2}))

	assert.Nil(t, b.At(Point{X: 0, Y: 0}))
	assert.Same(t, pawn, b.At(Point{X: 2, Y: 2}))
	assert.Len(t, b.Pawns(), 1)

	other := NewBoard(Point{X: 1, Y: 1})
	require.NoError(t, other.Set(pawn, Point{}))
	assert.Nil(t, b.At(Point{X: 2, Y: 2}))
	assert.Same(t, other, pawn.Board())
	assert.Empty(t, b.Pawns())
}

func TestBoardPutEvicts(t *testing.T) {
	b := NewBoard(Point{X: 2, Y: 2})
	first := NewPawn()
	second := NewPawn()
	at := Point{X: 1, Y: 0}

	evicted, err := b.Put(first, at)
	require.NoError(t, err)
	assert.Nil(t, evicted)

	evicted, err = b.Put(second, at)
	require.NoError(t, err)
	assert.Same(t, first, evicted)
	assert.Same(t, second, b.At(at))
	assert.False(t, first.OnBoard())

	evicted, err = b.Put(second, at)
	require.NoError(t, err)
	assert.Nil(t, evicted)

	_, err = b.Put(first, Point{X: 5, Y: 5})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestBoardNeighbors(t *testing.T) {
	b := NewBoard(Point{X: 3, Y: 3})
	center := NewPawn(WithName("center"))
	up := NewPawn(WithName("up"))
	corner := NewPawn(WithName("corner"))
	require.NoError(t, b.Set(center, Point{X: 1, Y: 1}))
	require.NoError(t, b.Set(up, Point{X: 1, Y: 2}))
	require.NoError(t, b.Set(corner, Point{X: 0, Y: 0}))

	got := b.Neighbors(Point{X: 1, Y: 1}, models.NeighborsFull[:])
	assert.Equal(t, []*Pawn{up, corner}, got)

	got = b.Neighbors(Point{X: 1, Y: 1}, models.NeighborsCardinal[:])
	assert.Equal(t, []*Pawn{up}, got)

	// corner cell: most offsets fall off the board
	got = b.Neighbors(Point{X: 0, Y: 0}, models.NeighborsFull[:])
	assert.Equal(t, []*Pawn{center}, got)
}

func TestBoardPhaseScanOrder(t *testing.T) {
	var calls []string
	b := NewBoard(Point{X: 2, Y: 2})
	for _, tc := range []struct {
		name string
		at   Point
	}{
		{"top-right", Point{X: 1, Y: 1}},
		{"bottom-left", Point{X: 0, Y: 0}},
		{"top-left", Point{X: 0, Y: 1}},
	} {
		pawn := NewPawn(WithName(tc.name))
		Add(pawn, &recorder{calls: &calls})
		require.NoError(t, b.Set(pawn, tc.at))
	}

	require.NoError(t, b.Next())
	require.NoError(t, b.Back())
	assert.Equal(t, []string{
		"next:bottom-left", "next:top-left", "next:top-right",
		"back:bottom-left", "back:top-left", "back:top-right",
	}, calls)
	assert.Equal(t, uint64(2), b.Tick())
}

func TestBoardPhaseStepsMovedPawnOnce(t *testing.T) {
	b := NewBoard(Point{X: 4, Y: 1})
	pawn := NewPawn()
	m := Add(pawn, &mover{})
	require.NoError(t, b.Set(pawn, Point{X: 0, Y: 0}))

	require.NoError(t, b.Next())
	assert.Equal(t, 1, m.steps)
	assert.Equal(t, Point{X: 1, Y: 0}, pawn.Position())
}

func TestBoardPhaseErrorAborts(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	b := NewBoard(Point{X: 2, Y: 1}, WithLogger(log.NewWithCore(core, log.LevelDebug)))

	var calls []string
	boom := errors.New("boom")
	bad := NewPawn(WithName("bad"))
	Add(bad, &failing{err: boom})
	good := NewPawn(WithName("good"))
	Add(good, &recorder{calls: &calls})
	require.NoError(t, b.Set(bad, Point{X: 0, Y: 0}))
	require.NoError(t, b.Set(good, Point{X: 1, Y: 0}))

	err := b.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad at (0,0)")
	assert.Empty(t, calls)
	assert.Zero(t, b.Tick())
	assert.Equal(t, 1, logs.FilterMessage("phase aborted").Len())
}

func TestBoardEvents(t *testing.T) {
	events := bus.New()
	b := NewBoard(Point{X: 2, Y: 2}, WithEventBus(events))
	assert.Same(t, events, b.Events())

	var seen []string
	_, err := events.Subscribe(bus.Wildcard, func(e bus.Event) error {
		seen = append(seen, e.Type())
		return nil
	})
	require.NoError(t, err)

	pawn := NewPawn()
	Add(pawn, &componentA{a: 1})
	require.NoError(t, b.Set(pawn, Point{}))
	Add(pawn, &componentA{a: 2})
	require.NoError(t, b.Next())
	b.Remove(pawn)

	assert.Equal(t, []string{EventPawnPlaced, EventComponentAdded, EventPhaseDone, EventPawnRemoved}, seen)
}

func TestBoardEventFilters(t *testing.T) {
	noPlacement := func(e bus.Event) bool { return e.Type() != EventPawnPlaced }
	b := NewBoard(Point{X: 2, Y: 2}, WithEventFilters(noPlacement))

	var seen []string
	_, err := b.Events().Subscribe(bus.Wildcard, func(e bus.Event) error {
		seen = append(seen, e.Type())
		return nil
	})
	require.NoError(t, err)

	pawn := NewPawn()
	require.NoError(t, b.Set(pawn, Point{}))
	require.NoError(t, b.Next())

	assert.Equal(t, []string{EventPhaseDone}, seen)
}

func TestBoardFingerprint(t *testing.T) {
	build := func(a int) *Board {
		b := NewBoard(Point{X: 2, Y: 2})
		pawn := NewPawn()
		Add(pawn, &componentB{B: a})
		require.NoError(t, b.Set(pawn, Point{X: 1, Y: 0}))
		return b
	}

	assert.Equal(t, build(1).Fingerprint(), build(1).Fingerprint())
	assert.Equal(t, build(1).Fingerprint(), build(2).Fingerprint(), "non-stringer state is not hashed")

	moved := build(1)
	require.NoError(t, moved.Set(moved.Pawns()[0], Point{X: 0, Y: 1}))
	assert.NotEqual(t, build(1).Fingerprint(), moved.Fingerprint())
	assert.NotEqual(t, NewBoard(Point{X: 2, Y: 2}).Fingerprint(), build(1).Fingerprint())
}
