package taskgroup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is matched by every CycleError.
var ErrCycle = errors.New("taskgroup: dependency cycle")

// CycleError means the flattened graph contains a dependency cycle.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "task dependency cycle detected"
	}
	return "task dependency cycle detected: " + strings.Join(e.Path, " -> ")
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// DuplicateKeyError means two different items were registered under one key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate task key %q bound to different items", e.Key)
}

// TaskError reports the failure of a single node.
type TaskError struct {
	Key string
	Err error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s failed: %v", e.Key, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}
