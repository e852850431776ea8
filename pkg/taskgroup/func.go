package taskgroup

import (
	"context"

	"github.com/google/uuid"
)

type funcItem struct {
	key string
	fn  func(ctx context.Context) error
}

// Func adapts a plain function into an Item.
func Func(key string, fn func(ctx context.Context) error) Item {
	return &funcItem{key: key, fn: fn}
}

func (f *funcItem) Key() string { return f.key }

func (f *funcItem) Invoke(ctx context.Context) error {
	return f.fn(ctx)
}

// NewKey returns a unique node key with the given prefix.
func NewKey(prefix string) string {
	return prefix + ":" + uuid.NewString()
}
