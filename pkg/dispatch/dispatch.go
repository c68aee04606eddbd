// Package dispatch walks a chain of command nodes, applying a pre-run, run and
// post-run lifecycle to each node on the way down and back up.
//
// Nodes never call each other. A node only reports its successor through
// Next, and Execute owns the traversal.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

// ErrNilCommand is returned when Execute is handed a nil command.
var ErrNilCommand = errors.New("dispatch: nil command")

// Container reports the next node of the chain, or nil when there is none.
// Composites return their selected subcommand, selectors return the populated
// alternative and leaves always return nil.
//
// Whoever builds a selector populates exactly one alternative. When several
// are set, the first in declaration order is returned.
type Container interface {
	Next() Command
}

// Command is an executable unit.
type Command interface {
	Container

	// PreRun is invoked before Run and before any descendant hook.
	PreRun() error
	// Run performs the node's own action.
	Run(ctx context.Context) error
	// PostRun is invoked after the whole descendant chain completed.
	PostRun() error
}

// Base provides no-op lifecycle hooks. Embed it and override what is needed.
// Next is intentionally not provided so every node type gets a generated one.
type Base struct{}

func (Base) PreRun() error { return nil }

func (Base) Run(context.Context) error { return nil }

func (Base) PostRun() error { return nil }

// Execute walks cmd and its descendants.
//
// PreRun and Run are applied top-down, PostRun bottom-up. The first error
// aborts the walk: no further hook of any kind is invoked, including the
// PostRun of nodes already entered, and the error is returned as raised.
func Execute(ctx context.Context, cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	return execute(ctx, logr.FromContextOrDiscard(ctx), cmd, 0)
}

func execute(ctx context.Context, base logr.Logger, cmd Command, depth int) error {
	log := base.WithValues("node", nodeName(cmd), "depth", depth)

	log.V(1).Info("pre-run")
	if err := cmd.PreRun(); err != nil {
		log.V(1).Info("pre-run failed", "error", err.Error())
		return err
	}

	log.V(1).Info("run")
	if err := cmd.Run(ctx); err != nil {
		log.V(1).Info("run failed", "error", err.Error())
		return err
	}

	if next := cmd.Next(); next != nil {
		if err := execute(ctx, base, next, depth+1); err != nil {
			return err
		}
	}

	log.V(1).Info("post-run")
	return cmd.PostRun()
}

func nodeName(cmd Command) string {
	return fmt.Sprintf("%T", cmd)
}
