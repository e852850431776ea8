// Package taskgroup runs a graph of dependent resource mutations in
// dependency order.
//
// A TaskGroup owns one root Item. Groups are linked with AddDependency (the
// root waits for the other group) and AddPostRunDependent (the other group
// waits for the root and is pulled into this group's invocation). Invoke
// flattens every reachable group into one DAG, runs nodes whose dependencies
// completed, never runs a node downstream of a failure, and finally calls
// AfterPostRun on every node whatever the outcome.
package taskgroup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultParallelism = 10

// Item is one unit of work in a task group.
type Item interface {
	// Key identifies the item within a flattened graph.
	Key() string
	Invoke(ctx context.Context) error
}

// Preparer is implemented by items that register extra dependencies or
// post-run dependents right before the graph is frozen. It may be called
// once per Graph or Invoke call and must be idempotent.
type Preparer interface {
	BeforeGroupInvoke(g *TaskGroup)
}

// PostRunner is implemented by items that clear per-batch state once the
// whole group has finished, successfully or not.
type PostRunner interface {
	AfterPostRun(ctx context.Context, isGroupFaulted bool) error
}

// TaskGroup is a root item plus its links to other groups.
type TaskGroup struct {
	root              Item
	dependencies      []*TaskGroup
	postRunDependents []*TaskGroup
}

// New returns a group rooted at item.
func New(root Item) *TaskGroup {
	return &TaskGroup{root: root}
}

// Key returns the root item's key.
func (g *TaskGroup) Key() string {
	return g.root.Key()
}

// Root returns the root item.
func (g *TaskGroup) Root() Item {
	return g.root
}

// AddDependency makes g's root wait for dep's root.
func (g *TaskGroup) AddDependency(dep *TaskGroup) {
	if dep == nil || dep == g || containsGroup(g.dependencies, dep) {
		return
	}
	g.dependencies = append(g.dependencies, dep)
}

// AddPostRunDependent makes dep's root wait for g's root and includes dep in
// every invocation of g.
func (g *TaskGroup) AddPostRunDependent(dep *TaskGroup) {
	if dep == nil || dep == g || containsGroup(g.postRunDependents, dep) {
		return
	}
	g.postRunDependents = append(g.postRunDependents, dep)
}

// RemovePostRunDependent unlinks a group added by AddPostRunDependent.
func (g *TaskGroup) RemovePostRunDependent(dep *TaskGroup) {
	for i, d := range g.postRunDependents {
		if d == dep {
			g.postRunDependents = append(g.postRunDependents[:i], g.postRunDependents[i+1:]...)
			return
		}
	}
}

// HasDependency reports whether g directly depends on a group with the given key.
func (g *TaskGroup) HasDependency(key string) bool {
	for _, d := range g.dependencies {
		if d.Key() == key {
			return true
		}
	}
	return false
}

func containsGroup(groups []*TaskGroup, g *TaskGroup) bool {
	for _, x := range groups {
		if x == g {
			return true
		}
	}
	return false
}

// Graph flattens g without invoking anything.
func (g *TaskGroup) Graph() (*Graph, error) {
	d, err := build(g)
	if err != nil {
		return nil, err
	}
	return d.snapshot(), nil
}

// Event status values.
const (
	StatusStarted   = "started"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// Event represents a progress event during an invocation.
type Event struct {
	Key      string
	Status   string
	Duration time.Duration
	Error    error
}

// Callback receives events. All events of one invocation are delivered from a
// single goroutine.
type Callback func(event Event)

type options struct {
	parallelism     int
	continueOnError bool
	callback        Callback
	logger          *slog.Logger
}

// Option configures an invocation.
type Option func(*options)

// WithParallelism bounds the number of concurrently running nodes.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

// WithContinueOnError keeps starting unrelated nodes after a failure and
// returns every failure joined.
func WithContinueOnError(v bool) Option {
	return func(o *options) { o.continueOnError = v }
}

// WithCallback registers a progress callback.
func WithCallback(cb Callback) Option {
	return func(o *options) { o.callback = cb }
}

// WithLogger sets the logger used for per-node debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func (o *options) emit(e Event) {
	if o.callback != nil {
		o.callback(e)
	}
}

type result struct {
	idx int
	err error
	dur time.Duration
}

// Invoke runs every node reachable from g in dependency order.
//
// The returned error is the first node failure as a *TaskError (or all of them
// joined when WithContinueOnError is set), followed by any AfterPostRun errors.
func (g *TaskGroup) Invoke(ctx context.Context, opts ...Option) error {
	o := &options{parallelism: defaultParallelism, logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	d, err := build(g)
	if err != nil {
		return err
	}

	runErr := d.run(ctx, o)

	faulted := runErr != nil
	for _, n := range d.nodes {
		if n.state == StateFailed || n.state == StateSkipped {
			faulted = true
			break
		}
	}

	postErr := d.afterPostRun(ctx, faulted)
	if postErr == nil {
		return runErr
	}
	if runErr == nil {
		return postErr
	}
	return errors.Join(runErr, postErr)
}

func (d *dag) run(ctx context.Context, o *options) error {
	pending := make([]int, len(d.nodes))
	var ready []int
	for _, i := range d.order {
		pending[i] = len(d.nodes[i].deps)
		if pending[i] == 0 {
			ready = append(ready, i)
		}
	}

	done := make(chan result, len(d.nodes))
	var eg errgroup.Group
	eg.SetLimit(o.parallelism)

	var errs []error
	running := 0
	stopped := false

	for {
		for len(ready) > 0 && !stopped {
			if err := ctx.Err(); err != nil {
				errs = append(errs, fmt.Errorf("invoke cancelled: %w", err))
				stopped = true
				break
			}
			i := ready[0]
			ready = ready[1:]
			n := d.nodes[i]
			n.transition(StateRunning)
			running++
			o.logger.Debug("invoking task", "key", n.key)
			o.emit(Event{Key: n.key, Status: StatusStarted})
			eg.Go(func() error {
				start := time.Now()
				err := n.item.Invoke(ctx)
				done <- result{idx: i, err: err, dur: time.Since(start)}
				return nil
			})
		}
		if running == 0 {
			break
		}

		r := <-done
		running--
		n := d.nodes[r.idx]

		if r.err != nil {
			n.transition(StateFailed)
			o.logger.Debug("task failed", "key", n.key, "error", r.err)
			o.emit(Event{Key: n.key, Status: StatusFailed, Duration: r.dur, Error: r.err})
			errs = append(errs, &TaskError{Key: n.key, Err: r.err})
			for _, s := range d.skipDependents(r.idx) {
				o.emit(Event{Key: d.nodes[s].key, Status: StatusSkipped})
			}
			if !o.continueOnError {
				stopped = true
			}
			continue
		}

		n.transition(StateCompleted)
		o.emit(Event{Key: n.key, Status: StatusCompleted, Duration: r.dur})
		for _, dep := range n.dependents {
			if d.nodes[dep].state != StatePending {
				continue
			}
			pending[dep]--
			if pending[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}
	_ = eg.Wait()

	for _, i := range d.order {
		if n := d.nodes[i]; n.state == StatePending {
			n.transition(StateSkipped)
			o.emit(Event{Key: n.key, Status: StatusSkipped})
		}
	}

	switch {
	case len(errs) == 0:
		return nil
	case o.continueOnError && len(errs) > 1:
		return fmt.Errorf("%d task(s) failed: %w", len(errs), errors.Join(errs...))
	default:
		return errs[0]
	}
}

// afterPostRun calls every PostRunner in topological order.
func (d *dag) afterPostRun(ctx context.Context, faulted bool) error {
	var errs []error
	for _, i := range d.order {
		if p, ok := d.nodes[i].item.(PostRunner); ok {
			if err := p.AfterPostRun(ctx, faulted); err != nil {
				errs = append(errs, fmt.Errorf("after post run %s: %w", d.nodes[i].key, err))
			}
		}
	}
	return errors.Join(errs...)
}
