package scenario

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/gridjam/internal/core/board"
	"github.com/zeusync/gridjam/internal/core/components"
)

// ComponentFactory builds a component from its scenario params.
type ComponentFactory func(params map[string]any) (board.Component, error)

// Registry maps component type names used in scenario files to factories.
// Names are case-insensitive.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ComponentFactory
}

// NewRegistry returns a registry preloaded with the built-in components.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]ComponentFactory)}
	r.Register("consumable", newConsumable)
	r.Register("consumer", newConsumer)
	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, factory ComponentFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(name)] = factory
}

// Names lists the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build instantiates a component of the named type.
func (r *Registry) Build(name string, params map[string]any) (board.Component, error) {
	r.mu.RLock()
	factory, ok := r.factories[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	c, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", name, err)
	}
	return c, nil
}

// DecodeParams copies loosely typed params into out, a pointer to a struct
// with yaml tags. Keys without a matching field are rejected.
func DecodeParams(params map[string]any, out any) error {
	if len(params) == 0 {
		return nil
	}
	raw, err := yaml.Marshal(params)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err = dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

type consumableParams struct {
	Health int    `yaml:"health"`
	Tag    string `yaml:"tag"`
}

func newConsumable(params map[string]any) (board.Component, error) {
	var p consumableParams
	if err := DecodeParams(params, &p); err != nil {
		return nil, err
	}
	return components.NewConsumable(p.Health, components.Tag(p.Tag)), nil
}

type consumerParams struct {
	Bias map[string]int `yaml:"bias"`
}

func newConsumer(params map[string]any) (board.Component, error) {
	var p consumerParams
	if err := DecodeParams(params, &p); err != nil {
		return nil, err
	}
	bias := make(map[components.Tag]int, len(p.Bias))
	for tag, v := range p.Bias {
		bias[components.Tag(tag)] = v
	}
	return components.NewConsumer(bias), nil
}
