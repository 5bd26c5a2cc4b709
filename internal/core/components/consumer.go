package components

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"weak"

	"github.com/zeusync/gridjam/internal/core/board"
	"github.com/zeusync/gridjam/internal/core/models"
)

// Consumer affects every adjacent Consumable on Next, by the bias registered
// for the consumable's tag.
type Consumer struct {
	board.Base[*Consumer]

	bias  map[Tag]int
	owner weak.Pointer[board.Pawn]
}

var _ board.Component = (*Consumer)(nil)

func NewConsumer(bias map[Tag]int) *Consumer {
	c := &Consumer{bias: make(map[Tag]int, len(bias))}
	maps.Copy(c.bias, bias)
	return c
}

// Bias returns the effect applied to consumables tagged tag; zero if unregistered.
func (c *Consumer) Bias(tag Tag) int {
	return c.bias[tag]
}

func (c *Consumer) OnAdd(p *board.Pawn) { c.owner = weak.Make(p) }

// Next visits the eight surrounding cells in models.NeighborsFull order.
// Empty cells and pawns without a Consumable are skipped.
func (c *Consumer) Next() error {
	owner := c.owner.Value()
	if owner == nil || !owner.OnBoard() {
		return nil
	}
	owner.Board().EachNeighbor(owner.Position(), models.NeighborsFull[:], func(_ board.Point, neighbor *board.Pawn) {
		c.consume(neighbor)
	})
	return nil
}

func (c *Consumer) consume(neighbor *board.Pawn) {
	consumable, ok := board.GetComponent[*Consumable](neighbor)
	if !ok {
		return
	}
	consumable.Affect(c.bias[consumable.Tag()])
}

func (c *Consumer) Copy() board.Component {
	return NewConsumer(c.bias)
}

func (c *Consumer) Equal(other board.Component) bool {
	o, ok := other.(*Consumer)
	return ok && maps.Equal(o.bias, c.bias)
}

func (c *Consumer) String() string {
	var sb strings.Builder
	sb.WriteString("consumer(")
	for i, tag := range slices.Sorted(maps.Keys(c.bias)) {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s=%d", tag, c.bias[tag])
	}
	sb.WriteByte(')')
	return sb.String()
}
