package dsl

import "github.com/coccinelle-ai/sara/pkg/domain"

// Builder manages the graph construction.
type Builder struct {
	name  string
	order []string
	nodes map[string]*NodeBuilder
}

// New creates a new graph builder.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{node: domain.Node{ID: id}}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build compiles and validates the graph. All the structural rules enforced
// by domain.NewGraph apply: single start and end, one outgoing edge per
// non-terminal node, full reachability.
func (b *Builder) Build() (*domain.Graph, error) {
	nodes := make([]domain.Node, 0, len(b.order))
	var edges []domain.Edge
	for _, id := range b.order {
		nb := b.nodes[id]
		nodes = append(nodes, nb.node)
		if nb.to != "" {
			edges = append(edges, domain.Edge{From: id, To: nb.to})
		}
	}
	return domain.NewGraph(b.name, nodes, edges)
}
