package board

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/zeusync/gridjam/internal/core/events/bus"
)

// Pawn is an entity holding a multi-valued, type-indexed set of components.
// Its board and position are written only by the Board placement methods.
type Pawn struct {
	id   uuid.UUID
	name string

	board    *Board
	position Point

	buckets map[ComponentID][]Component
	// insertion order across all types, drives Next and Back
	order []Component

	onAddForDuplicates bool
}

type PawnOption func(*Pawn)

// WithName sets a display name used in logs and event sources.
func WithName(name string) PawnOption {
	return func(p *Pawn) {
		p.name = name
	}
}

// WithOnAddForDuplicates controls whether OnAdd runs for a component that
// AddComponent rejected as a duplicate. Defaults to true.
func WithOnAddForDuplicates(enabled bool) PawnOption {
	return func(p *Pawn) {
		p.onAddForDuplicates = enabled
	}
}

func NewPawn(opts ...PawnOption) *Pawn {
	p := &Pawn{
		id:                 uuid.New(),
		buckets:            make(map[ComponentID][]Component),
		onAddForDuplicates: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pawn) ID() uuid.UUID { return p.id }

func (p *Pawn) Name() string { return p.name }

// Board returns the board the pawn was last placed on, or nil.
func (p *Pawn) Board() *Board { return p.board }

func (p *Pawn) Position() Point { return p.position }

// OnBoard reports whether the pawn currently occupies a cell.
func (p *Pawn) OnBoard() bool {
	return p.board != nil && p.board.At(p.position) == p
}

func (p *Pawn) String() string {
	if p.name != "" {
		return p.name
	}
	return p.id.String()
}

// AddComponent attaches c unless an equal component of the same type is
// already attached, then calls c.OnAdd. It returns c.
func (p *Pawn) AddComponent(c Component) Component {
	id := IdentityOf(c)
	duplicate := slices.ContainsFunc(p.buckets[id], func(existing Component) bool {
		return equalComponents(existing, c)
	})

	if !duplicate {
		p.buckets[id] = append(p.buckets[id], c)
		p.order = append(p.order, c)
		p.Publish(EventComponentAdded, c)
	}
	if !duplicate || p.onAddForDuplicates {
		c.OnAdd(p)
	}
	return c
}

// Add is AddComponent keeping the concrete type for chaining.
func Add[C Component](p *Pawn, c C) C {
	p.AddComponent(c)
	return c
}

// Component returns the first component of type id.
func (p *Pawn) Component(id ComponentID) (Component, bool) {
	bucket := p.buckets[id]
	if len(bucket) == 0 {
		return nil, false
	}
	return bucket[0], true
}

// Components returns a copy of the type-id bucket in insertion order.
func (p *Pawn) Components(id ComponentID) []Component {
	return slices.Clone(p.buckets[id])
}

func (p *Pawn) HasComponent(id ComponentID) bool {
	return len(p.buckets[id]) > 0
}

// All returns every attached component in insertion order.
func (p *Pawn) All() []Component {
	return slices.Clone(p.order)
}

func (p *Pawn) Len() int {
	return len(p.order)
}

func GetComponent[C Component](p *Pawn) (C, bool) {
	for _, c := range p.buckets[TypeOf[C]()] {
		if typed, ok := c.(C); ok {
			return typed, true
		}
	}
	var zero C
	return zero, false
}

func GetComponents[C Component](p *Pawn) []C {
	bucket := p.buckets[TypeOf[C]()]
	out := make([]C, 0, len(bucket))
	for _, c := range bucket {
		if typed, ok := c.(C); ok {
			out = append(out, typed)
		}
	}
	return out
}

// RequireComponent is GetComponent for hard dependencies: a missing component
// is reported as ErrComponentMissing.
func RequireComponent[C Component](p *Pawn) (C, error) {
	c, ok := GetComponent[C](p)
	if !ok {
		return c, missing[C](p)
	}
	return c, nil
}

// MustComponent panics where RequireComponent would return an error.
func MustComponent[C Component](p *Pawn) C {
	c, err := RequireComponent[C](p)
	if err != nil {
		panic(err)
	}
	return c
}

func missing[C Component](p *Pawn) error {
	var zero C
	name := fmt.Sprintf("%T", zero)
	return fmt.Errorf("pawn %s: %s: %w", p, name, ErrComponentMissing)
}

// Next runs every component's Next in insertion order. Components attached
// during the phase are first stepped in the following phase. The first error
// stops the phase.
func (p *Pawn) Next() error {
	return p.step(PhaseNext)
}

// Back is Next for the Back phase.
func (p *Pawn) Back() error {
	return p.step(PhaseBack)
}

func (p *Pawn) step(phase Phase) error {
	snapshot := slices.Clone(p.order)
	for _, c := range snapshot {
		var err error
		if phase == PhaseNext {
			err = c.Next()
		} else {
			err = c.Back()
		}
		if err != nil {
			return fmt.Errorf("%s %s: %w", c.TypeName(), phase, err)
		}
	}
	return nil
}

// Clone returns an unplaced pawn with deep copies of every component, in the
// same order, each re-attached through OnAdd. Board and position are carried
// over as recorded; the clone does not occupy a cell until placed.
func (p *Pawn) Clone() *Pawn {
	clone := &Pawn{
		id:                 uuid.New(),
		name:               p.name,
		board:              p.board,
		position:           p.position,
		buckets:            make(map[ComponentID][]Component, len(p.buckets)),
		order:              make([]Component, 0, len(p.order)),
		onAddForDuplicates: p.onAddForDuplicates,
	}
	for _, c := range p.order {
		cp := c.Copy()
		id := IdentityOf(cp)
		clone.buckets[id] = append(clone.buckets[id], cp)
		clone.order = append(clone.order, cp)
	}
	for _, cp := range clone.order {
		cp.OnAdd(clone)
	}
	return clone
}

// Publish sends an event from this pawn on its board's bus. It does nothing
// while the pawn is not placed.
func (p *Pawn) Publish(eventType string, data any) {
	if !p.OnBoard() {
		return
	}
	p.board.publish(bus.NewEvent(eventType, p.String(), data, map[string]any{
		"pawn": p.id.String(),
		"at":   p.position.String(),
	}))
}
