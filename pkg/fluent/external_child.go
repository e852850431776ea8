// Package fluent holds the contracts shared by the fluent resource builders:
// the pending-action collection for external child resources and futures
// for asynchronous calls.
package fluent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/picklr-io/azmgmt/pkg/taskgroup"
)

// PendingOperation is the action queued for a child in the current batch.
type PendingOperation int

const (
	None PendingOperation = iota
	ToBeCreated
	ToBeUpdated
	ToBeRemoved
)

func (op PendingOperation) String() string {
	switch op {
	case ToBeCreated:
		return "create"
	case ToBeUpdated:
		return "update"
	case ToBeRemoved:
		return "remove"
	default:
		return "none"
	}
}

// Child is a resource addressed through its parent.
type Child interface {
	ChildName() string
	CreateResource(ctx context.Context) error
	UpdateResource(ctx context.Context) error
	DeleteResource(ctx context.Context) error
}

// PendingActionConflictError means a second action was queued for a child
// that already has one in the same batch.
type PendingActionConflictError struct {
	Kind     string
	Name     string
	Existing PendingOperation
	Rejected PendingOperation
}

func (e *PendingActionConflictError) Error() string {
	return fmt.Sprintf("%s %q already has a pending %s; cannot also %s it", e.Kind, e.Name, e.Existing, e.Rejected)
}

type pendingChild[T Child] struct {
	child T
	op    PendingOperation
	group *taskgroup.TaskGroup
}

// ExternalChildResources tracks the children of one parent that must be
// created, updated or removed when the parent's task group is invoked. Each
// queued child runs after the parent's root item.
type ExternalChildResources[T Child] struct {
	kind    string
	parent  *taskgroup.TaskGroup
	pending map[string]*pendingChild[T]
	errs    []error
}

// NewExternalChildResources returns an empty collection of kind attached to parent.
func NewExternalChildResources[T Child](kind string, parent *taskgroup.TaskGroup) *ExternalChildResources[T] {
	return &ExternalChildResources[T]{
		kind:    kind,
		parent:  parent,
		pending: make(map[string]*pendingChild[T]),
	}
}

// PrepareDefine queues child for creation.
func (c *ExternalChildResources[T]) PrepareDefine(child T) *taskgroup.TaskGroup {
	return c.prepare(child, ToBeCreated)
}

// PrepareUpdate queues child for update.
func (c *ExternalChildResources[T]) PrepareUpdate(child T) *taskgroup.TaskGroup {
	return c.prepare(child, ToBeUpdated)
}

// PrepareRemove queues child for removal.
func (c *ExternalChildResources[T]) PrepareRemove(child T) *taskgroup.TaskGroup {
	return c.prepare(child, ToBeRemoved)
}

// prepare returns the task group of the queued child. On conflict the error
// is recorded and the existing child's group is returned.
func (c *ExternalChildResources[T]) prepare(child T, op PendingOperation) *taskgroup.TaskGroup {
	name := strings.ToLower(child.ChildName())
	if p, ok := c.pending[name]; ok {
		c.errs = append(c.errs, &PendingActionConflictError{
			Kind:     c.kind,
			Name:     child.ChildName(),
			Existing: p.op,
			Rejected: op,
		})
		return p.group
	}

	item := &childTask[T]{
		key:   c.parent.Key() + "/" + c.kind + "/" + child.ChildName(),
		op:    op,
		child: child,
	}
	g := taskgroup.New(item)
	c.parent.AddPostRunDependent(g)
	c.pending[name] = &pendingChild[T]{child: child, op: op, group: g}
	return g
}

// Pending returns the queued child for name and its operation.
func (c *ExternalChildResources[T]) Pending(name string) (T, PendingOperation, bool) {
	p, ok := c.pending[strings.ToLower(name)]
	if !ok {
		var zero T
		return zero, None, false
	}
	return p.child, p.op, true
}

// Group returns the task group of the queued child for name.
func (c *ExternalChildResources[T]) Group(name string) (*taskgroup.TaskGroup, bool) {
	p, ok := c.pending[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return p.group, true
}

// Discard drops the queued action for name, if any, and unlinks its child
// from the parent. Conflicts already recorded for name are kept.
func (c *ExternalChildResources[T]) Discard(name string) bool {
	key := strings.ToLower(name)
	p, ok := c.pending[key]
	if !ok {
		return false
	}
	c.parent.RemovePostRunDependent(p.group)
	delete(c.pending, key)
	return true
}

// Names returns the queued child names in sorted order.
func (c *ExternalChildResources[T]) Names() []string {
	names := make([]string, 0, len(c.pending))
	for _, p := range c.pending {
		names = append(names, p.child.ChildName())
	}
	sort.Strings(names)
	return names
}

// Len returns the number of queued children.
func (c *ExternalChildResources[T]) Len() int {
	return len(c.pending)
}

// Err returns the conflicts recorded since the last Clear.
func (c *ExternalChildResources[T]) Err() error {
	return errors.Join(c.errs...)
}

// Clear drops every queued action and unlinks the children from the parent.
func (c *ExternalChildResources[T]) Clear() {
	for _, p := range c.pending {
		c.parent.RemovePostRunDependent(p.group)
	}
	c.pending = make(map[string]*pendingChild[T])
	c.errs = nil
}

type childTask[T Child] struct {
	key   string
	op    PendingOperation
	child T
}

func (t *childTask[T]) Key() string { return t.key }

func (t *childTask[T]) Invoke(ctx context.Context) error {
	switch t.op {
	case ToBeCreated:
		return t.child.CreateResource(ctx)
	case ToBeUpdated:
		return t.child.UpdateResource(ctx)
	case ToBeRemoved:
		return t.child.DeleteResource(ctx)
	default:
		return nil
	}
}
