package dispatch

import (
	"context"
	"sort"
	"sync"
	"time"

	"hostbridge/internal/errors"
	"hostbridge/internal/logger"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// Args carries the untyped arguments of one invocation
type Args map[string]any

// String returns the argument as a string, or "" when absent. Values that
// have no string form (arrays, objects) are an invalid argument.
func (a Args) String(key string) (string, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", errors.New().WithMessage(errors.ErrInvalidArgument, key+" must be a string")
	}
	return s, nil
}

// Command is one remote-invocable operation
type Command interface {
	// Name is the unique key front-ends invoke the command by
	Name() string
	Run(ctx context.Context, args Args) (any, error)
}

// Registry routes invocations to commands by name
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates a registry holding cmds
func NewRegistry(cmds ...Command) (*Registry, error) {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, c := range cmds {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds c. Names must be non-empty and unique.
func (r *Registry) Register(c Command) error {
	errFactory := errors.New()

	if c == nil || c.Name() == "" {
		return errFactory.WithMessage(errors.ErrInvalidArgument, "command name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.commands[c.Name()]; ok {
		return errFactory.WithMessage(errors.ErrDuplicateCommand, "command already registered: "+c.Name())
	}
	r.commands[c.Name()] = c
	return nil
}

// Names returns the registered command names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named command once
func (r *Registry) Invoke(ctx context.Context, name string, args Args) (any, error) {
	r.mu.RLock()
	c, ok := r.commands[name]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.New().WithMessage(errors.ErrUnknownCommand, "unknown command: "+name)
	}
	if args == nil {
		args = Args{}
	}

	id := uuid.NewString()
	start := time.Now()
	logger.Debug().Str("invocation", id).Str("command", name).Msg("invoking command")

	data, err := c.Run(ctx, args)
	if err != nil {
		logger.ErrorWithCode(err).
			Str("invocation", id).
			Str("command", name).
			Dur("elapsed", time.Since(start)).
			Msg("command failed")
		return nil, err
	}

	logger.Info().
		Str("invocation", id).
		Str("command", name).
		Dur("elapsed", time.Since(start)).
		Msg("command completed")
	return data, nil
}
