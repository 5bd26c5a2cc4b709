package components

import (
	"fmt"
	"weak"

	"github.com/zeusync/gridjam/internal/core/board"
)

// Event types published by a placed Consumable on its board's bus.
const (
	EventDamaged = "consumable.damaged"
	EventHealed  = "consumable.healed"
	EventDied    = "consumable.died"
)

// Consumable holds health that other components can drain or restore.
type Consumable struct {
	board.Base[*Consumable]

	health int
	tag    Tag
	owner  weak.Pointer[board.Pawn]

	damaged []func(amount int)
	healed  []func(amount int)
	died    []func()
}

var _ board.Component = (*Consumable)(nil)

func NewConsumable(health int, tag Tag) *Consumable {
	return &Consumable{health: health, tag: tag}
}

func (c *Consumable) Health() int { return c.health }

func (c *Consumable) Tag() Tag { return c.tag }

func (c *Consumable) SetTag(tag Tag) { c.tag = tag }

func (c *Consumable) OnDamaged(fn func(amount int)) { c.damaged = append(c.damaged, fn) }

func (c *Consumable) OnHealed(fn func(amount int)) { c.healed = append(c.healed, fn) }

func (c *Consumable) OnDied(fn func()) { c.died = append(c.died, fn) }

// Affect adds delta to health. A negative delta notifies damage, a positive
// one healing; death is notified on top of either whenever health ends at or
// below zero.
func (c *Consumable) Affect(delta int) {
	c.health += delta

	switch {
	case delta < 0:
		for _, fn := range c.damaged {
			fn(-delta)
		}
		c.publish(EventDamaged, -delta)
	case delta > 0:
		for _, fn := range c.healed {
			fn(delta)
		}
		c.publish(EventHealed, delta)
	}

	if c.health <= 0 {
		for _, fn := range c.died {
			fn()
		}
		c.publish(EventDied, c.health)
	}
}

func (c *Consumable) OnAdd(p *board.Pawn) { c.owner = weak.Make(p) }

// Copy carries health and tag. Listeners stay with the original.
func (c *Consumable) Copy() board.Component {
	return NewConsumable(c.health, c.tag)
}

func (c *Consumable) Equal(other board.Component) bool {
	o, ok := other.(*Consumable)
	return ok && o.health == c.health && o.tag == c.tag
}

func (c *Consumable) String() string {
	if c.tag == TagNone {
		return fmt.Sprintf("consumable(health=%d)", c.health)
	}
	return fmt.Sprintf("consumable(health=%d,tag=%s)", c.health, c.tag)
}

func (c *Consumable) publish(eventType string, amount int) {
	if owner := c.owner.Value(); owner != nil {
		owner.Publish(eventType, amount)
	}
}
