package taskgroup

import (
	"fmt"
	"strings"
)

// dag is the flattened, arena-indexed view of a task group built for one invocation.
type dag struct {
	nodes []*node
	index map[string]int
	order []int // topological order (dependencies first)
}

type node struct {
	key        string
	item       Item
	deps       []int // nodes this node depends on
	dependents []int // nodes that depend on this node
	state      State
}

// build walks every group reachable from root, calls each Preparer once, and
// sorts the result. Discovery order is breadth-first from root so that index
// order, and hence every derived order, is stable across runs.
func build(root *TaskGroup) (*dag, error) {
	d := &dag{index: make(map[string]int)}

	type edge struct{ from, to int }
	seenEdge := make(map[edge]bool)
	addEdge := func(from, to int) {
		if from == to {
			return
		}
		e := edge{from, to}
		if seenEdge[e] {
			return
		}
		seenEdge[e] = true
		d.nodes[from].deps = append(d.nodes[from].deps, to)
		d.nodes[to].dependents = append(d.nodes[to].dependents, from)
	}

	visited := make(map[*TaskGroup]bool)
	prepared := make(map[string]bool)
	queue := []*TaskGroup{root}
	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]
		if visited[g] {
			continue
		}
		visited[g] = true

		key := g.Key()
		if !prepared[key] {
			prepared[key] = true
			if p, ok := g.root.(Preparer); ok {
				p.BeforeGroupInvoke(g)
			}
		}

		self, err := d.add(g.root)
		if err != nil {
			return nil, err
		}
		for _, dep := range g.dependencies {
			to, err := d.add(dep.root)
			if err != nil {
				return nil, err
			}
			addEdge(self, to)
			queue = append(queue, dep)
		}
		for _, dep := range g.postRunDependents {
			from, err := d.add(dep.root)
			if err != nil {
				return nil, err
			}
			addEdge(from, self)
			queue = append(queue, dep)
		}
	}

	order, err := d.topoSort()
	if err != nil {
		return nil, err
	}
	d.order = order
	return d, nil
}

func (d *dag) add(item Item) (int, error) {
	key := item.Key()
	if i, ok := d.index[key]; ok {
		if d.nodes[i].item != item {
			return 0, &DuplicateKeyError{Key: key}
		}
		return i, nil
	}
	i := len(d.nodes)
	d.nodes = append(d.nodes, &node{key: key, item: item})
	d.index[key] = i
	return i, nil
}

// topoSort performs Kahn's algorithm, seeding and releasing nodes in index order.
func (d *dag) topoSort() ([]int, error) {
	inDegree := make([]int, len(d.nodes))
	var queue []int
	for i, n := range d.nodes {
		inDegree[i] = len(n.deps)
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	sorted := make([]int, 0, len(d.nodes))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		sorted = append(sorted, i)
		for _, dependent := range d.nodes[i].dependents {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(sorted) != len(d.nodes) {
		return nil, &CycleError{Path: d.findCycle(inDegree)}
	}
	return sorted, nil
}

// findCycle returns one cycle among the nodes Kahn's algorithm could not
// release, using an explicit stack instead of recursion.
func (d *dag) findCycle(inDegree []int) []string {
	const (
		white = iota
		grey
		black
	)
	color := make([]int, len(d.nodes))

	type frame struct {
		idx  int
		next int
	}

	for start := range d.nodes {
		if inDegree[start] == 0 || color[start] != white {
			continue
		}
		stack := []frame{{idx: start}}
		color[start] = grey
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := d.nodes[top.idx].deps
			if top.next >= len(deps) {
				color[top.idx] = black
				stack = stack[:len(stack)-1]
				continue
			}
			next := deps[top.next]
			top.next++
			switch color[next] {
			case white:
				color[next] = grey
				stack = append(stack, frame{idx: next})
			case grey:
				var path []string
				found := false
				for _, f := range stack {
					if f.idx == next {
						found = true
					}
					if found {
						path = append(path, d.nodes[f.idx].key)
					}
				}
				return append(path, d.nodes[next].key)
			}
		}
	}
	return nil
}

// skipDependents marks every pending node transitively depending on idx as
// skipped and returns them in discovery order.
func (d *dag) skipDependents(idx int) []int {
	var skipped []int
	queue := append([]int(nil), d.nodes[idx].dependents...)
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		n := d.nodes[i]
		if n.state != StatePending {
			continue
		}
		n.transition(StateSkipped)
		skipped = append(skipped, i)
		queue = append(queue, n.dependents...)
	}
	return skipped
}

// GraphNode is one task in an exported graph.
type GraphNode struct {
	Key string `json:"key"`
}

// GraphEdge means "From depends on To".
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is a snapshot of a flattened task group.
type Graph struct {
	Nodes     []GraphNode `json:"nodes"`
	Edges     []GraphEdge `json:"edges"`
	TopoOrder []string    `json:"topoOrder"`
}

func (d *dag) snapshot() *Graph {
	g := &Graph{
		Nodes:     make([]GraphNode, len(d.nodes)),
		TopoOrder: make([]string, len(d.order)),
	}
	for i, n := range d.nodes {
		g.Nodes[i] = GraphNode{Key: n.key}
		for _, dep := range n.deps {
			g.Edges = append(g.Edges, GraphEdge{From: n.key, To: d.nodes[dep].key})
		}
	}
	for i, idx := range d.order {
		g.TopoOrder[i] = d.nodes[idx].key
	}
	return g
}

// Dependencies returns the keys key depends on.
func (g *Graph) Dependencies(key string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.From == key {
			out = append(out, e.To)
		}
	}
	return out
}

// DOT exports Graphviz DOT text.
func (g *Graph) DOT() string {
	var b strings.Builder
	b.WriteString("digraph taskgroup {\n")
	b.WriteString("  rankdir = \"BT\";\n")
	b.WriteString("  node [shape = rect];\n")

	aliases := make(map[string]string, len(g.Nodes))
	for i, n := range g.Nodes {
		alias := fmt.Sprintf("n%d", i)
		aliases[n.Key] = alias
		fmt.Fprintf(&b, "  %s [label=\"%s\"];\n", alias, escapeQuotes(n.Key))
	}
	for _, e := range g.Edges {
		from, okFrom := aliases[e.From]
		to, okTo := aliases[e.To]
		if !okFrom || !okTo {
			continue
		}
		fmt.Fprintf(&b, "  %s -> %s;\n", from, to)
	}
	b.WriteString("}\n")
	return b.String()
}

// Mermaid exports Mermaid graph text.
func (g *Graph) Mermaid() string {
	var b strings.Builder
	b.WriteString("graph BT\n")

	aliases := make(map[string]string, len(g.Nodes))
	for i, n := range g.Nodes {
		alias := fmt.Sprintf("n%d", i)
		aliases[n.Key] = alias
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", alias, escapeQuotes(n.Key))
	}
	for _, e := range g.Edges {
		from, okFrom := aliases[e.From]
		to, okTo := aliases[e.To]
		if !okFrom || !okTo {
			continue
		}
		fmt.Fprintf(&b, "    %s --> %s\n", from, to)
	}
	return b.String()
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}
