package taskgroup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects invocation and post-run order across items.
type recorder struct {
	mu       sync.Mutex
	invoked  []string
	postRuns map[string]bool
}

func newRecorder() *recorder {
	return &recorder{postRuns: make(map[string]bool)}
}

func (r *recorder) invokedKeys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.invoked...)
}

type testItem struct {
	key string
	rec *recorder
	fn  func(ctx context.Context) error
}

func (r *recorder) item(key string, fn func(ctx context.Context) error) *testItem {
	return &testItem{key: key, rec: r, fn: fn}
}

func (i *testItem) Key() string { return i.key }

func (i *testItem) Invoke(ctx context.Context) error {
	i.rec.mu.Lock()
	i.rec.invoked = append(i.rec.invoked, i.key)
	i.rec.mu.Unlock()
	if i.fn != nil {
		return i.fn(ctx)
	}
	return nil
}

func (i *testItem) AfterPostRun(ctx context.Context, isGroupFaulted bool) error {
	i.rec.mu.Lock()
	defer i.rec.mu.Unlock()
	i.rec.postRuns[i.key] = isGroupFaulted
	return nil
}

func indexOf(slice []string, s string) int {
	for i, v := range slice {
		if v == s {
			return i
		}
	}
	return -1
}

func TestInvoke_DependencyOrder(t *testing.T) {
	rec := newRecorder()
	server := New(rec.item("server", nil))
	pool := New(rec.item("pool", nil))
	db := New(rec.item("db", nil))

	server.AddPostRunDependent(pool)
	server.AddPostRunDependent(db)
	db.AddDependency(pool)

	require.NoError(t, server.Invoke(context.Background()))

	order := rec.invokedKeys()
	require.Len(t, order, 3)
	assert.Less(t, indexOf(order, "server"), indexOf(order, "pool"))
	assert.Less(t, indexOf(order, "pool"), indexOf(order, "db"))
}

func TestInvoke_FailureSkipsDependents(t *testing.T) {
	rec := newRecorder()
	boom := errors.New("conflict")

	root := New(rec.item("root", nil))
	a := New(rec.item("a", func(context.Context) error { return boom }))
	b := New(rec.item("b", nil))
	c := New(rec.item("c", nil))

	root.AddDependency(a)
	b.AddDependency(a)
	c.AddDependency(b)
	root.AddPostRunDependent(b)
	root.AddPostRunDependent(c)

	err := root.Invoke(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var taskErr *TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, "a", taskErr.Key)

	assert.Equal(t, []string{"a"}, rec.invokedKeys())

	for _, key := range []string{"root", "a", "b", "c"} {
		faulted, ok := rec.postRuns[key]
		assert.True(t, ok, "AfterPostRun not called on %s", key)
		assert.True(t, faulted, "AfterPostRun on %s should see a faulted group", key)
	}
}

func TestInvoke_PostRunOnSuccess(t *testing.T) {
	rec := newRecorder()
	root := New(rec.item("root", nil))
	root.AddDependency(New(rec.item("child", nil)))

	require.NoError(t, root.Invoke(context.Background()))

	assert.Equal(t, map[string]bool{"root": false, "child": false}, rec.postRuns)
}

func TestInvoke_SiblingsRunConcurrently(t *testing.T) {
	rec := newRecorder()
	var wg sync.WaitGroup
	wg.Add(2)
	barrier := func(context.Context) error {
		wg.Done()
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-time.After(5 * time.Second):
			return errors.New("sibling never started")
		}
	}

	root := New(rec.item("root", nil))
	root.AddDependency(New(rec.item("left", barrier)))
	root.AddDependency(New(rec.item("right", barrier)))

	require.NoError(t, root.Invoke(context.Background(), WithParallelism(2)))
	assert.Equal(t, "root", rec.invokedKeys()[2])
}

func TestInvoke_StopsStartingAfterFault(t *testing.T) {
	rec := newRecorder()
	failed := make(chan struct{})

	root := New(rec.item("root", nil))
	a := New(rec.item("a", func(context.Context) error {
		close(failed)
		return errors.New("quota exceeded")
	}))
	b := New(rec.item("b", func(context.Context) error {
		<-failed
		time.Sleep(100 * time.Millisecond)
		return nil
	}))
	c := New(rec.item("c", nil))
	c.AddDependency(b)
	root.AddDependency(a)
	root.AddDependency(c)

	err := root.Invoke(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	invoked := rec.invokedKeys()
	assert.Contains(t, invoked, "a")
	assert.Contains(t, invoked, "b")
	assert.NotContains(t, invoked, "c")
	assert.NotContains(t, invoked, "root")
}

func TestInvoke_ContinueOnError(t *testing.T) {
	rec := newRecorder()
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	root := New(rec.item("root", nil))
	root.AddDependency(New(rec.item("a", func(context.Context) error { return errA })))
	root.AddDependency(New(rec.item("b", func(context.Context) error { return errB })))
	root.AddDependency(New(rec.item("ok", nil)))

	err := root.Invoke(context.Background(), WithContinueOnError(true))
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Contains(t, err.Error(), "2 task(s) failed")

	invoked := rec.invokedKeys()
	assert.Contains(t, invoked, "ok")
	assert.NotContains(t, invoked, "root")
}

func TestInvoke_CycleDetection(t *testing.T) {
	rec := newRecorder()
	a := New(rec.item("a", nil))
	b := New(rec.item("b", nil))
	a.AddDependency(b)
	b.AddDependency(a)

	err := a.Invoke(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Contains(t, cycleErr.Path, "a")
	assert.Contains(t, cycleErr.Path, "b")
	assert.Equal(t, cycleErr.Path[0], cycleErr.Path[len(cycleErr.Path)-1])
	assert.Empty(t, rec.invokedKeys())
}

func TestInvoke_DuplicateKey(t *testing.T) {
	rec := newRecorder()
	root := New(rec.item("root", nil))
	root.AddDependency(New(rec.item("x", nil)))
	root.AddDependency(New(rec.item("x", nil)))

	err := root.Invoke(context.Background())
	var dupErr *DuplicateKeyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "x", dupErr.Key)
}

func TestInvoke_SameItemSharedAcrossGroups(t *testing.T) {
	rec := newRecorder()
	shared := rec.item("pool", nil)

	root := New(rec.item("server", nil))
	root.AddPostRunDependent(New(shared))
	db := New(rec.item("db", nil))
	db.AddDependency(New(shared))
	root.AddPostRunDependent(db)

	require.NoError(t, root.Invoke(context.Background()))
	order := rec.invokedKeys()
	assert.Len(t, order, 3)
	assert.Less(t, indexOf(order, "pool"), indexOf(order, "db"))
}

func TestInvoke_Cancelled(t *testing.T) {
	rec := newRecorder()
	root := New(rec.item("root", nil))
	root.AddDependency(New(rec.item("dep", nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := root.Invoke(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.invokedKeys())
	assert.True(t, rec.postRuns["root"])
	assert.True(t, rec.postRuns["dep"])
}

func TestInvoke_Events(t *testing.T) {
	rec := newRecorder()
	root := New(rec.item("root", nil))
	root.AddDependency(New(rec.item("bad", func(context.Context) error { return errors.New("bad request") })))

	var events []Event
	err := root.Invoke(context.Background(), WithCallback(func(e Event) {
		events = append(events, e)
	}))
	require.Error(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, Event{Key: "bad", Status: StatusStarted}, events[0])
	assert.Equal(t, "bad", events[1].Key)
	assert.Equal(t, StatusFailed, events[1].Status)
	assert.EqualError(t, events[1].Error, "bad request")
	assert.Equal(t, Event{Key: "root", Status: StatusSkipped}, events[2])
}

type preparingItem struct {
	*testItem
	calls int
	extra *TaskGroup
}

func (p *preparingItem) BeforeGroupInvoke(g *TaskGroup) {
	p.calls++
	g.AddPostRunDependent(p.extra)
}

func TestInvoke_BeforeGroupInvoke(t *testing.T) {
	rec := newRecorder()
	p := &preparingItem{testItem: rec.item("server", nil), extra: New(rec.item("rule", nil))}
	g := New(p)

	require.NoError(t, g.Invoke(context.Background()))
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, []string{"server", "rule"}, rec.invokedKeys())

	require.NoError(t, g.Invoke(context.Background()))
	assert.Equal(t, 2, p.calls)
	assert.Len(t, rec.invokedKeys(), 4)
}

func TestFunc(t *testing.T) {
	called := false
	item := Func("fn", func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, New(item).Invoke(context.Background()))
	assert.True(t, called)
	assert.Equal(t, "fn", item.Key())
}

func TestNewKey(t *testing.T) {
	a := NewKey("SqlFirewallRule")
	b := NewKey("SqlFirewallRule")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "SqlFirewallRule:")
}
