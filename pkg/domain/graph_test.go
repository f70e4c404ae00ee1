package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearNodes() []Node {
	return []Node{
		{ID: "a", Kind: KindStart},
		{ID: "b", Kind: KindPrompt, Prompt: "Quel est votre prénom ?", Slot: "prenom", Field: FieldName},
		{ID: "c", Kind: KindTool, Tool: &ToolSpec{Name: "checkAvailability"}},
		{ID: "d", Kind: KindEnd},
	}
}

func linearEdges() []Edge {
	return []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "c", To: "d"}}
}

func TestNewGraph(t *testing.T) {
	g, err := NewGraph("test", linearNodes(), linearEdges())
	require.NoError(t, err)

	assert.Equal(t, "test", g.Name())
	assert.Equal(t, "a", g.Start().ID)

	next, ok := g.Next("b")
	require.True(t, ok)
	assert.Equal(t, "c", next)

	_, ok = g.Next("d")
	assert.False(t, ok)

	nodes := g.Nodes()
	require.Len(t, nodes, 4)
	assert.Equal(t, "a", nodes[0].ID)
	assert.Equal(t, "d", nodes[3].ID)

	assert.Equal(t, linearEdges(), g.Edges())
}

func TestNewGraphRejectsDefects(t *testing.T) {
	tests := []struct {
		name   string
		nodes  []Node
		edges  []Edge
		reason string
	}{
		{
			name:   "empty graph",
			reason: "no nodes",
		},
		{
			name: "duplicate id",
			nodes: append(linearNodes(),
				Node{ID: "b", Kind: KindPrompt, Prompt: "x"}),
			edges:  linearEdges(),
			reason: "duplicate",
		},
		{
			name: "missing outgoing edge",
			nodes: []Node{
				{ID: "a", Kind: KindStart},
				{ID: "b", Kind: KindPrompt, Prompt: "x"},
				{ID: "d", Kind: KindEnd},
			},
			edges:  []Edge{{From: "a", To: "b"}},
			reason: "no outgoing edge",
		},
		{
			name: "two outgoing edges",
			nodes: []Node{
				{ID: "a", Kind: KindStart},
				{ID: "b", Kind: KindPrompt, Prompt: "x"},
				{ID: "d", Kind: KindEnd},
			},
			edges:  []Edge{{From: "a", To: "b"}, {From: "a", To: "d"}, {From: "b", To: "d"}},
			reason: "more than one outgoing edge",
		},
		{
			name: "no start",
			nodes: []Node{
				{ID: "b", Kind: KindPrompt, Prompt: "x"},
				{ID: "d", Kind: KindEnd},
			},
			edges:  []Edge{{From: "b", To: "d"}},
			reason: "no start node",
		},
		{
			name: "no end",
			nodes: []Node{
				{ID: "a", Kind: KindStart},
				{ID: "b", Kind: KindPrompt, Prompt: "x"},
			},
			edges:  []Edge{{From: "a", To: "b"}, {From: "b", To: "a"}},
			reason: "end",
		},
		{
			name: "two starts",
			nodes: []Node{
				{ID: "a", Kind: KindStart},
				{ID: "a2", Kind: KindStart},
				{ID: "d", Kind: KindEnd},
			},
			edges:  []Edge{{From: "a", To: "d"}, {From: "a2", To: "d"}},
			reason: "multiple start nodes",
		},
		{
			name: "edge from end",
			nodes: []Node{
				{ID: "a", Kind: KindStart},
				{ID: "d", Kind: KindEnd},
			},
			edges:  []Edge{{From: "a", To: "d"}, {From: "d", To: "a"}},
			reason: "end node",
		},
		{
			name: "edge to undeclared node",
			nodes: []Node{
				{ID: "a", Kind: KindStart},
				{ID: "d", Kind: KindEnd},
			},
			edges:  []Edge{{From: "a", To: "ghost"}},
			reason: "undeclared",
		},
		{
			name: "unreachable branch",
			nodes: []Node{
				{ID: "a", Kind: KindStart},
				{ID: "b", Kind: KindPrompt, Prompt: "x"},
				{ID: "c", Kind: KindPrompt, Prompt: "y"},
				{ID: "d", Kind: KindEnd},
			},
			edges:  []Edge{{From: "a", To: "d"}, {From: "b", To: "c"}, {From: "c", To: "b"}},
			reason: "unreachable",
		},
		{
			name: "cycle",
			nodes: []Node{
				{ID: "a", Kind: KindStart},
				{ID: "b", Kind: KindPrompt, Prompt: "x"},
				{ID: "d", Kind: KindEnd},
			},
			edges:  []Edge{{From: "a", To: "b"}, {From: "b", To: "a"}},
			reason: "cycle",
		},
		{
			name: "prompt without template",
			nodes: []Node{
				{ID: "a", Kind: KindStart},
				{ID: "b", Kind: KindPrompt},
				{ID: "d", Kind: KindEnd},
			},
			edges:  linearEdgesTo("a", "b", "d"),
			reason: "no prompt template",
		},
		{
			name: "slot without field type",
			nodes: []Node{
				{ID: "a", Kind: KindStart},
				{ID: "b", Kind: KindPrompt, Prompt: "x", Slot: "prenom"},
				{ID: "d", Kind: KindEnd},
			},
			edges:  linearEdgesTo("a", "b", "d"),
			reason: "field type",
		},
		{
			name: "tool node without tool",
			nodes: []Node{
				{ID: "a", Kind: KindStart},
				{ID: "b", Kind: KindTool},
				{ID: "d", Kind: KindEnd},
			},
			edges:  linearEdgesTo("a", "b", "d"),
			reason: "no tool definition",
		},
		{
			name: "unknown kind",
			nodes: []Node{
				{ID: "a", Kind: KindStart},
				{ID: "b", Kind: "mystery"},
				{ID: "d", Kind: KindEnd},
			},
			edges:  linearEdgesTo("a", "b", "d"),
			reason: "unknown kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraph("test", tt.nodes, tt.edges)

			var gerr *GraphIntegrityError
			require.ErrorAs(t, err, &gerr)
			assert.Contains(t, gerr.Reason, tt.reason)
		})
	}
}

func linearEdgesTo(ids ...string) []Edge {
	edges := make([]Edge, 0, len(ids)-1)
	for i := 0; i < len(ids)-1; i++ {
		edges = append(edges, Edge{From: ids[i], To: ids[i+1]})
	}
	return edges
}
