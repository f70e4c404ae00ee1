package domain

import "fmt"

// Graph is the immutable conversation graph: a simple path from the unique
// start node to the unique end node. It is safe to share across any number of
// concurrent calls once constructed.
type Graph struct {
	name  string
	order []string
	nodes map[string]Node
	next  map[string]string
	start string
	end   string
}

// NewGraph validates the node and edge declarations and builds the graph.
// It fails with a *GraphIntegrityError on any structural defect: duplicate or
// unknown IDs, a non-terminal node without exactly one outgoing edge, more
// than one start or end node, unreachable nodes, or a cycle.
func NewGraph(name string, nodes []Node, edges []Edge) (*Graph, error) {
	if len(nodes) == 0 {
		return nil, &GraphIntegrityError{Reason: "graph has no nodes"}
	}

	g := &Graph{
		name:  name,
		order: make([]string, 0, len(nodes)),
		nodes: make(map[string]Node, len(nodes)),
		next:  make(map[string]string, len(edges)),
	}

	for _, n := range nodes {
		if n.ID == "" {
			return nil, &GraphIntegrityError{Reason: "node with empty id"}
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, &GraphIntegrityError{Reason: fmt.Sprintf("duplicate node id %q", n.ID)}
		}
		if err := checkNode(n); err != nil {
			return nil, err
		}
		switch n.Kind {
		case KindStart:
			if g.start != "" {
				return nil, &GraphIntegrityError{Reason: fmt.Sprintf("multiple start nodes: %q and %q", g.start, n.ID)}
			}
			g.start = n.ID
		case KindEnd:
			if g.end != "" {
				return nil, &GraphIntegrityError{Reason: fmt.Sprintf("multiple end nodes: %q and %q", g.end, n.ID)}
			}
			g.end = n.ID
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}

	if g.start == "" {
		return nil, &GraphIntegrityError{Reason: "no start node declared"}
	}
	if g.end == "" {
		return nil, &GraphIntegrityError{Reason: "no end node declared"}
	}

	for _, e := range edges {
		if _, ok := g.nodes[e.From]; !ok {
			return nil, &GraphIntegrityError{Reason: fmt.Sprintf("edge from undeclared node %q", e.From)}
		}
		if _, ok := g.nodes[e.To]; !ok {
			return nil, &GraphIntegrityError{Reason: fmt.Sprintf("edge to undeclared node %q", e.To)}
		}
		if e.From == g.end {
			return nil, &GraphIntegrityError{Reason: fmt.Sprintf("end node %q must not have outgoing edges", e.From)}
		}
		if _, dup := g.next[e.From]; dup {
			return nil, &GraphIntegrityError{Reason: fmt.Sprintf("node %q has more than one outgoing edge", e.From)}
		}
		g.next[e.From] = e.To
	}

	for id, n := range g.nodes {
		if n.Kind == KindEnd {
			continue
		}
		if _, ok := g.next[id]; !ok {
			return nil, &GraphIntegrityError{Reason: fmt.Sprintf("node %q has no outgoing edge and is not an end node", id)}
		}
	}

	// The dialogue is a single linear path: walking from start must visit
	// every node exactly once and stop at the end node.
	visited := make(map[string]bool, len(g.nodes))
	cur := g.start
	for {
		if visited[cur] {
			return nil, &GraphIntegrityError{Reason: fmt.Sprintf("cycle detected at node %q", cur)}
		}
		visited[cur] = true
		nxt, ok := g.next[cur]
		if !ok {
			break
		}
		cur = nxt
	}
	if cur != g.end {
		return nil, &GraphIntegrityError{Reason: fmt.Sprintf("path from start terminates at %q, not the end node", cur)}
	}
	if len(visited) != len(g.nodes) {
		for _, id := range g.order {
			if !visited[id] {
				return nil, &GraphIntegrityError{Reason: fmt.Sprintf("node %q is unreachable from start", id)}
			}
		}
	}

	return g, nil
}

func checkNode(n Node) error {
	switch n.Kind {
	case KindStart, KindEnd:
		if n.Tool != nil {
			return &GraphIntegrityError{Reason: fmt.Sprintf("node %q: %s nodes cannot declare a tool", n.ID, n.Kind)}
		}
	case KindPrompt:
		if n.Prompt == "" {
			return &GraphIntegrityError{Reason: fmt.Sprintf("prompt node %q has no prompt template", n.ID)}
		}
		if n.Slot != "" && n.Field == "" {
			return &GraphIntegrityError{Reason: fmt.Sprintf("prompt node %q collects slot %q but declares no field type", n.ID, n.Slot)}
		}
	case KindTool:
		if n.Tool == nil || n.Tool.Name == "" {
			return &GraphIntegrityError{Reason: fmt.Sprintf("tool node %q has no tool definition", n.ID)}
		}
	default:
		return &GraphIntegrityError{Reason: fmt.Sprintf("node %q has unknown kind %q", n.ID, n.Kind)}
	}
	return nil
}

// Name returns the graph's configured name.
func (g *Graph) Name() string { return g.name }

// Start returns the unique start node.
func (g *Graph) Start() Node { return g.nodes[g.start] }

// Node returns the node record for the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Next returns the single successor of the given node, or false if the node
// is terminal.
func (g *Graph) Next(id string) (string, bool) {
	to, ok := g.next[id]
	return to, ok
}

// Nodes returns all nodes in declaration order, for introspection and
// visualization. The returned slice is a copy.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges in path order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.next))
	for _, id := range g.order {
		if to, ok := g.next[id]; ok {
			out = append(out, Edge{From: id, To: to})
		}
	}
	return out
}
