package models

import (
	"reflect"
	"sync"
)

// ComponentID identifies a component variant. Zero is never assigned.
type ComponentID uint32

// componentTypes is the process-wide, append-only identity table.
// IDs are handed out on first lookup of a type, so variants never used never consume one.
var componentTypes = struct {
	mu     sync.RWMutex
	next   ComponentID
	byType map[reflect.Type]ComponentID
	names  map[ComponentID]string
}{
	byType: make(map[reflect.Type]ComponentID),
	names:  make(map[ComponentID]string),
}

// ComponentTypeID returns the stable identifier of component variant T,
// assigning the next free one on first use.
func ComponentTypeID[T any]() ComponentID {
	return ComponentTypeIDOf(reflect.TypeFor[T]())
}

// ComponentTypeIDOf is ComponentTypeID for a runtime type.
func ComponentTypeIDOf(t reflect.Type) ComponentID {
	componentTypes.mu.RLock()
	id, ok := componentTypes.byType[t]
	componentTypes.mu.RUnlock()
	if ok {
		return id
	}

	componentTypes.mu.Lock()
	defer componentTypes.mu.Unlock()
	if id, ok = componentTypes.byType[t]; ok {
		return id
	}
	componentTypes.next++
	id = componentTypes.next
	componentTypes.byType[t] = id
	componentTypes.names[id] = typeName(t)
	return id
}

// ComponentTypeName returns the name recorded when id was assigned.
func ComponentTypeName(id ComponentID) (string, bool) {
	componentTypes.mu.RLock()
	defer componentTypes.mu.RUnlock()
	name, ok := componentTypes.names[id]
	return name, ok
}

// RegisteredComponentTypes reports how many variants have been assigned an ID so far.
func RegisteredComponentTypes() int {
	componentTypes.mu.RLock()
	defer componentTypes.mu.RUnlock()
	return len(componentTypes.byType)
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}
