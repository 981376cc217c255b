package dispatch

import (
	"context"
	"strings"

	"hostbridge/internal/errors"
	"hostbridge/internal/inference"
	"hostbridge/internal/system"
)

const (
	CommandSystemInfo = "get_system_info"
	CommandInference  = "query_inference"
	CommandHostInfo   = "get_host_info"
)

// Querier is the inference collaborator
type Querier interface {
	Query(ctx context.Context, prompt string) (*inference.Response, error)
}

type systemInfoCommand struct {
	collector *system.Collector
}

// NewSystemInfoCommand returns the telemetry snapshot command
func NewSystemInfoCommand(collector *system.Collector) Command {
	return &systemInfoCommand{collector: collector}
}

func (c *systemInfoCommand) Name() string { return CommandSystemInfo }

func (c *systemInfoCommand) Run(ctx context.Context, _ Args) (any, error) {
	return c.collector.Snapshot(ctx), nil
}

type inferenceCommand struct {
	querier Querier
}

// NewInferenceCommand returns the prompt forwarding command
func NewInferenceCommand(q Querier) Command {
	return &inferenceCommand{querier: q}
}

func (c *inferenceCommand) Name() string { return CommandInference }

func (c *inferenceCommand) Run(ctx context.Context, args Args) (any, error) {
	prompt, err := args.String("prompt")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.New().WithMessage(errors.ErrInvalidArgument, "prompt is required")
	}
	res, err := c.querier.Query(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// HostInfoFunc looks up static host identity
type HostInfoFunc func(ctx context.Context) (*system.HostInfo, error)

type hostInfoCommand struct {
	lookup HostInfoFunc
}

// NewHostInfoCommand returns the host identity command
func NewHostInfoCommand(lookup HostInfoFunc) Command {
	return &hostInfoCommand{lookup: lookup}
}

func (c *hostInfoCommand) Name() string { return CommandHostInfo }

func (c *hostInfoCommand) Run(ctx context.Context, _ Args) (any, error) {
	info, err := c.lookup(ctx)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrHostInfo, err)
	}
	return info, nil
}

// NewDefaultRegistry registers every built-in command
func NewDefaultRegistry(collector *system.Collector, q Querier, lookup HostInfoFunc) (*Registry, error) {
	return NewRegistry(
		NewSystemInfoCommand(collector),
		NewInferenceCommand(q),
		NewHostInfoCommand(lookup),
	)
}
