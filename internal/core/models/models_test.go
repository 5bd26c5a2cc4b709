package models

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type variantA struct{ a int }
type variantB struct{ b int }
type variantC struct{}

func TestComponentTypeID(t *testing.T) {
	a := ComponentTypeID[*variantA]()
	b := ComponentTypeID[*variantB]()

	assert.NotZero(t, a)
	assert.NotZero(t, b)
	assert.NotEqual(t, a, b)

	assert.Equal(t, a, ComponentTypeID[*variantA]())
	assert.Equal(t, b, ComponentTypeIDOf(reflect.TypeOf(&variantB{})))

	// pointer and value types are distinct variants
	assert.NotEqual(t, a, ComponentTypeID[variantA]())
}

func TestComponentTypeName(t *testing.T) {
	id := ComponentTypeID[*variantC]()
	name, ok := ComponentTypeName(id)
	require.True(t, ok)
	assert.Equal(t, "variantC", name)

	_, ok = ComponentTypeName(0)
	assert.False(t, ok)
}

func TestComponentTypeIDIsLazy(t *testing.T) {
	type neverSeen struct{}
	before := RegisteredComponentTypes()
	ComponentTypeID[*neverSeen]()
	assert.Equal(t, before+1, RegisteredComponentTypes())
	ComponentTypeID[*neverSeen]()
	assert.Equal(t, before+1, RegisteredComponentTypes())
}

func TestComponentTypeIDConcurrent(t *testing.T) {
	type racy struct{}
	const workers = 32

	ids := make([]ComponentID, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = ComponentTypeID[*racy]()
		}()
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestPoint(t *testing.T) {
	p := Pt(2, 3)
	assert.Equal(t, Pt(3, 4), p.Add(PointOne))
	assert.Equal(t, Pt(1, 2), p.Sub(PointOne))
	assert.Equal(t, p, p.Add(PointRight).Sub(PointRight))
	assert.Equal(t, "(2,3)", p.String())

	seen := make(map[Point]bool)
	for _, n := range NeighborsFull {
		assert.NotEqual(t, PointZero, n)
		assert.False(t, seen[n], "duplicate neighbor %v", n)
		seen[n] = true
	}
	for _, n := range NeighborsCardinal {
		assert.True(t, seen[n])
		assert.Equal(t, 1, abs(n.X)+abs(n.Y))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
