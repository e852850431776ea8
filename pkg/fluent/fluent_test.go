package fluent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/picklr-io/azmgmt/pkg/taskgroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calls struct {
	mu  sync.Mutex
	log []string
}

func (c *calls) add(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = append(c.log, s)
}

type fakeChild struct {
	name  string
	calls *calls
	err   error
}

func (f *fakeChild) ChildName() string { return f.name }

func (f *fakeChild) CreateResource(ctx context.Context) error {
	f.calls.add("create " + f.name)
	return f.err
}

func (f *fakeChild) UpdateResource(ctx context.Context) error {
	f.calls.add("update " + f.name)
	return f.err
}

func (f *fakeChild) DeleteResource(ctx context.Context) error {
	f.calls.add("delete " + f.name)
	return f.err
}

func parentGroup(c *calls) *taskgroup.TaskGroup {
	return taskgroup.New(taskgroup.Func("server", func(context.Context) error {
		c.add("parent")
		return nil
	}))
}

func TestExternalChildResources_RunAfterParent(t *testing.T) {
	c := &calls{}
	parent := parentGroup(c)
	rules := NewExternalChildResources[*fakeChild]("SqlFirewallRule", parent)

	rules.PrepareDefine(&fakeChild{name: "fr1", calls: c})
	rules.PrepareUpdate(&fakeChild{name: "fr2", calls: c})
	rules.PrepareRemove(&fakeChild{name: "fr3", calls: c})
	require.NoError(t, rules.Err())
	assert.Equal(t, 3, rules.Len())
	assert.Equal(t, []string{"fr1", "fr2", "fr3"}, rules.Names())

	require.NoError(t, parent.Invoke(context.Background()))

	require.Len(t, c.log, 4)
	assert.Equal(t, "parent", c.log[0])
	assert.ElementsMatch(t, []string{"create fr1", "update fr2", "delete fr3"}, c.log[1:])
}

func TestExternalChildResources_KeysIncludeParent(t *testing.T) {
	c := &calls{}
	parent := parentGroup(c)
	rules := NewExternalChildResources[*fakeChild]("SqlFirewallRule", parent)
	g := rules.PrepareDefine(&fakeChild{name: "fr1", calls: c})

	assert.Equal(t, "server/SqlFirewallRule/fr1", g.Key())
}

func TestExternalChildResources_Conflict(t *testing.T) {
	c := &calls{}
	parent := parentGroup(c)
	rules := NewExternalChildResources[*fakeChild]("SqlFirewallRule", parent)

	first := rules.PrepareDefine(&fakeChild{name: "fr1", calls: c})
	second := rules.PrepareRemove(&fakeChild{name: "FR1", calls: c})
	assert.Same(t, first, second)

	err := rules.Err()
	var conflict *PendingActionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ToBeCreated, conflict.Existing)
	assert.Equal(t, ToBeRemoved, conflict.Rejected)
	assert.Equal(t, 1, rules.Len())

	_, op, ok := rules.Pending("fr1")
	require.True(t, ok)
	assert.Equal(t, ToBeCreated, op)
}

func TestExternalChildResources_Clear(t *testing.T) {
	c := &calls{}
	parent := parentGroup(c)
	rules := NewExternalChildResources[*fakeChild]("SqlFirewallRule", parent)
	rules.PrepareDefine(&fakeChild{name: "fr1", calls: c})
	rules.PrepareDefine(&fakeChild{name: "fr1", calls: c})
	require.Error(t, rules.Err())

	rules.Clear()
	assert.Equal(t, 0, rules.Len())
	assert.NoError(t, rules.Err())

	require.NoError(t, parent.Invoke(context.Background()))
	assert.Equal(t, []string{"parent"}, c.log)
}

func TestExternalChildResources_Discard(t *testing.T) {
	c := &calls{}
	parent := parentGroup(c)
	rules := NewExternalChildResources[*fakeChild]("SqlFirewallRule", parent)

	rules.PrepareDefine(&fakeChild{name: "fr1", calls: c})
	rules.PrepareDefine(&fakeChild{name: "fr2", calls: c})
	assert.True(t, rules.Discard("FR1"))
	assert.False(t, rules.Discard("fr1"))
	assert.Equal(t, []string{"fr2"}, rules.Names())

	require.NoError(t, parent.Invoke(context.Background()))
	assert.Equal(t, []string{"parent", "create fr2"}, c.log)
}

func TestExternalChildResources_FailureReported(t *testing.T) {
	c := &calls{}
	parent := parentGroup(c)
	rules := NewExternalChildResources[*fakeChild]("SqlFirewallRule", parent)
	boom := errors.New("invalid ip")
	rules.PrepareDefine(&fakeChild{name: "bad", calls: c, err: boom})

	err := parent.Invoke(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFuture(t *testing.T) {
	f := Async(context.Background(), func(context.Context) (int, error) {
		return 42, nil
	})
	<-f.Done()
	v, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFuture_AwaitContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	f := Async(context.Background(), func(context.Context) (string, error) {
		<-block
		return "late", nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPendingOperationString(t *testing.T) {
	assert.Equal(t, "create", ToBeCreated.String())
	assert.Equal(t, "update", ToBeUpdated.String())
	assert.Equal(t, "remove", ToBeRemoved.String())
	assert.Equal(t, "none", None.String())
}
