// Package registry maps puzzle keys such as "gears/2" to solver factories.
// Solver packages register themselves from init; the CLI imports them for
// their side effects.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/errors"
	"github.com/ajitpratap0/linescan/pkg/logger"
	"github.com/ajitpratap0/linescan/pkg/puzzle"
)

// Factory creates a configured solver
type Factory func(cfg *config.BaseConfig) (puzzle.Solver, error)

// Info describes a registered solver
type Info struct {
	Puzzle      string `json:"puzzle"`
	Part        int    `json:"part"`
	Description string `json:"description"`
}

// Key returns the registry key of the solver
func (i Info) Key() string {
	return Key(i.Puzzle, i.Part)
}

type entry struct {
	info    Info
	factory Factory
}

// Registry manages solver registration and instantiation
type Registry struct {
	solvers map[string]entry
	mu      sync.RWMutex
	logger  *zap.Logger
}

var globalRegistry = NewRegistry()

// NewRegistry creates a new solver registry
func NewRegistry() *Registry {
	return &Registry{
		solvers: make(map[string]entry),
		logger:  logger.Get().With(zap.String("component", "puzzle_registry")),
	}
}

// Key builds the registry key for a puzzle part
func Key(name string, part int) string {
	return fmt.Sprintf("%s/%d", name, part)
}

// Register registers a solver factory
func (r *Registry) Register(info Info, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := info.Key()
	if _, exists := r.solvers[key]; exists {
		return errors.Newf(errors.ErrorTypeConfig, "solver %s already registered", key)
	}

	r.solvers[key] = entry{info: info, factory: factory}
	r.logger.Debug("solver registered", zap.String("key", key))
	return nil
}

// Create creates the solver registered for name and part. cfg is validated
// first; nil means the defaults.
func (r *Registry) Create(name string, part int, cfg *config.BaseConfig) (puzzle.Solver, error) {
	key := Key(name, part)

	r.mu.RLock()
	e, exists := r.solvers[key]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrorTypeNotFound, "solver %s not found", key)
	}

	if cfg == nil {
		cfg = config.NewBaseConfig("default")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, fmt.Sprintf("invalid configuration for %s", key))
	}

	solver, err := e.factory(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, fmt.Sprintf("failed to create solver %s", key))
	}
	return solver, nil
}

// Has checks if a solver is registered
func (r *Registry) Has(name string, part int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.solvers[Key(name, part)]
	return exists
}

// List returns the registered solvers ordered by key
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.solvers))
	for _, e := range r.solvers {
		infos = append(infos, e.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Puzzle != infos[j].Puzzle {
			return infos[i].Puzzle < infos[j].Puzzle
		}
		return infos[i].Part < infos[j].Part
	})
	return infos
}

// Register registers a solver in the global registry
func Register(info Info, factory Factory) error {
	return globalRegistry.Register(info, factory)
}

// MustRegister registers a solver in the global registry and panics on a
// duplicate key
func MustRegister(info Info, factory Factory) {
	if err := Register(info, factory); err != nil {
		panic(err)
	}
}

// Create creates a solver from the global registry
func Create(name string, part int, cfg *config.BaseConfig) (puzzle.Solver, error) {
	return globalRegistry.Create(name, part, cfg)
}

// List returns the solvers of the global registry
func List() []Info {
	return globalRegistry.List()
}

// GetRegistry returns the global registry instance
func GetRegistry() *Registry {
	return globalRegistry
}
