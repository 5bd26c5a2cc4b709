package board

import (
	"reflect"

	"github.com/zeusync/gridjam/internal/core/models"
)

type ComponentID = models.ComponentID

// Component is a behavior module attached to a pawn.
// A component belongs to exactly one pawn; Copy must return an unattached deep copy.
type Component interface {
	TypeID() ComponentID
	TypeName() string

	Copy() Component

	// OnAdd is called by Pawn.AddComponent with the owning pawn.
	// Implementations must not treat the pawn as owned.
	OnAdd(*Pawn)
	Next() error
	Back() error
}

// Equaler lets a component define the structural equality used by
// Pawn.AddComponent to reject duplicates. Components without it are compared
// with reflect.DeepEqual.
type Equaler interface {
	Equal(Component) bool
}

// Base supplies the type identity of variant C and no-op hooks.
// Embed it with the component's own pointer type:
//
//	type Health struct {
//		board.Base[*Health]
//		hp int
//	}
//
// A variant that embeds another component inherits its TypeID unless it
// embeds its own Base. Pawns index by the dynamic type either way, see IdentityOf.
type Base[C any] struct{}

func (Base[C]) TypeID() ComponentID {
	return models.ComponentTypeID[C]()
}

func (b Base[C]) TypeName() string {
	name, _ := models.ComponentTypeName(b.TypeID())
	return name
}

func (Base[C]) OnAdd(*Pawn) {}

func (Base[C]) Next() error { return nil }

func (Base[C]) Back() error { return nil }

// TypeOf returns the identifier shared by every instance of C.
func TypeOf[C Component]() ComponentID {
	return models.ComponentTypeID[C]()
}

// IdentityOf returns the identifier of c's dynamic type. It equals c.TypeID()
// for every variant embedding its own Base.
func IdentityOf(c Component) ComponentID {
	return models.ComponentTypeIDOf(reflect.TypeOf(c))
}

func equalComponents(a, b Component) bool {
	if eq, ok := a.(Equaler); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}
