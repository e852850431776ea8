package taskgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_TopoOrderAndEdges(t *testing.T) {
	rec := newRecorder()
	server := New(rec.item("server", nil))
	pool := New(rec.item("pool", nil))
	db := New(rec.item("db", nil))
	server.AddPostRunDependent(pool)
	server.AddPostRunDependent(db)
	db.AddDependency(pool)

	g, err := server.Graph()
	require.NoError(t, err)

	assert.Equal(t, []string{"server", "pool", "db"}, g.TopoOrder)
	assert.ElementsMatch(t, []string{"server", "pool"}, g.Dependencies("db"))
	assert.Equal(t, []string{"server"}, g.Dependencies("pool"))
	assert.Empty(t, g.Dependencies("server"))
	assert.Empty(t, rec.invokedKeys(), "Graph must not invoke items")
}

func TestGraph_DOT(t *testing.T) {
	rec := newRecorder()
	root := New(rec.item("root", nil))
	root.AddDependency(New(rec.item(`dep"quoted`, nil)))

	g, err := root.Graph()
	require.NoError(t, err)

	dot := g.DOT()
	assert.Contains(t, dot, "digraph taskgroup {")
	assert.Contains(t, dot, `n0 [label="root"];`)
	assert.Contains(t, dot, `n1 [label="dep\"quoted"];`)
	assert.Contains(t, dot, "n0 -> n1;")
}

func TestGraph_Mermaid(t *testing.T) {
	rec := newRecorder()
	root := New(rec.item("root", nil))
	root.AddDependency(New(rec.item("dep", nil)))

	g, err := root.Graph()
	require.NoError(t, err)

	m := g.Mermaid()
	assert.Contains(t, m, "graph BT")
	assert.Contains(t, m, `n0["root"]`)
	assert.Contains(t, m, "n0 --> n1")
}

func TestGraph_Cycle(t *testing.T) {
	rec := newRecorder()
	a := New(rec.item("a", nil))
	b := New(rec.item("b", nil))
	c := New(rec.item("c", nil))
	a.AddDependency(b)
	b.AddDependency(c)
	c.AddDependency(b)

	_, err := a.Graph()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b -> c -> b")
}

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		from, to State
		ok       bool
	}{
		{StatePending, StateRunning, true},
		{StatePending, StateSkipped, true},
		{StateRunning, StateCompleted, true},
		{StateRunning, StateFailed, true},
		{StatePending, StateCompleted, false},
		{StateCompleted, StateRunning, false},
		{StateSkipped, StateRunning, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			n := &node{key: "n", state: tt.from}
			if tt.ok {
				assert.NotPanics(t, func() { n.transition(tt.to) })
				assert.Equal(t, tt.to, n.state)
			} else {
				assert.Panics(t, func() { n.transition(tt.to) })
			}
		})
	}
}
