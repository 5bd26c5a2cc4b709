package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/gridjam/internal/core/board"
	"github.com/zeusync/gridjam/internal/core/events/bus"
	"github.com/zeusync/gridjam/internal/core/models"
)

// Config describes a board, the pawns placed on it and the phases to run.
type Config struct {
	Name  string        `json:"name" yaml:"name"`
	Size  models.Point  `json:"size" yaml:"size"`
	Ticks int           `json:"ticks,omitempty" yaml:"ticks,omitempty"`
	Steps []board.Phase `json:"steps,omitempty" yaml:"steps,omitempty"`
	Pawns []PawnConfig  `json:"pawns" yaml:"pawns"`
	// Mute lists event types the board never publishes.
	Mute []string `json:"mute,omitempty" yaml:"mute,omitempty"`
}

type PawnConfig struct {
	Name       string            `json:"name,omitempty" yaml:"name,omitempty"`
	At         models.Point      `json:"at" yaml:"at"`
	Components []ComponentConfig `json:"components,omitempty" yaml:"components,omitempty"`
}

type ComponentConfig struct {
	Type   string         `json:"type" yaml:"type"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// LoadJSON loads a scenario from a JSON reader.
func LoadJSON(r io.Reader) (*Config, error) {
	var c Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadYAML loads a scenario from a YAML reader.
func LoadYAML(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile picks the decoder from the file extension. The scenario name
// defaults to the file's base name.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c *Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		c, err = LoadYAML(f)
	case ".json":
		c, err = LoadJSON(f)
	default:
		return nil, fmt.Errorf("%s: %w: %q", path, ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

// Validate checks the board size, placements and steps.
func (c *Config) Validate() error {
	if c.Size.X <= 0 || c.Size.Y <= 0 {
		return fmt.Errorf("%w: size %s must be positive", ErrInvalidConfig, c.Size)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("%w: negative ticks %d", ErrInvalidConfig, c.Ticks)
	}
	for i, step := range c.Steps {
		if step != board.PhaseNext && step != board.PhaseBack {
			return fmt.Errorf("%w: step %d: unknown phase %q", ErrInvalidConfig, i, step)
		}
	}

	occupied := make(map[models.Point]int, len(c.Pawns))
	for i, p := range c.Pawns {
		if p.At.X < 0 || p.At.Y < 0 || p.At.X >= c.Size.X || p.At.Y >= c.Size.Y {
			return fmt.Errorf("%w: pawn %d at %s outside board %s", ErrInvalidConfig, i, p.At, c.Size)
		}
		if j, ok := occupied[p.At]; ok {
			return fmt.Errorf("%w: pawns %d and %d share cell %s", ErrInvalidConfig, j, i, p.At)
		}
		occupied[p.At] = i
		for k, comp := range p.Components {
			if comp.Type == "" {
				return fmt.Errorf("%w: pawn %d component %d has no type", ErrInvalidConfig, i, k)
			}
		}
	}
	return nil
}

// Phases expands the configured steps, defaulting to Ticks Next phases.
func (c *Config) Phases() []board.Phase {
	if len(c.Steps) > 0 {
		return c.Steps
	}
	phases := make([]board.Phase, c.Ticks)
	for i := range phases {
		phases[i] = board.PhaseNext
	}
	return phases
}

// Build validates the config and creates the board with every pawn placed.
func (c *Config) Build(reg *Registry, opts ...board.BoardOption) (*board.Board, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(c.Mute) > 0 {
		opts = append(slices.Clone(opts), board.WithEventFilters(c.audible))
	}
	b := board.NewBoard(c.Size, opts...)
	for i, pc := range c.Pawns {
		pawn := board.NewPawn(board.WithName(pc.Name))
		for _, cc := range pc.Components {
			comp, err := reg.Build(cc.Type, cc.Params)
			if err != nil {
				return nil, fmt.Errorf("pawn %d: %w", i, err)
			}
			pawn.AddComponent(comp)
		}
		if err := b.Set(pawn, pc.At); err != nil {
			return nil, fmt.Errorf("pawn %d: %w", i, err)
		}
	}
	return b, nil
}

// audible is the bus filter built from Mute.
func (c *Config) audible(event bus.Event) bool {
	return !slices.Contains(c.Mute, event.Type())
}
