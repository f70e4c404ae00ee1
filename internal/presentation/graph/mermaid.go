// Package graph renders conversation graphs for humans, currently as
// Mermaid flowcharts.
package graph

import (
	"fmt"
	"strings"

	"github.com/coccinelle-ai/sara/pkg/domain"
)

// Overlay carries per-call state to highlight on the rendered graph.
type Overlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces Mermaid flowchart syntax for a conversation graph.
// Shapes carry the node semantics:
// - Start / End: ((circle))
// - Tool: [[subroutine]]
// - Prompt with a slot: [/parallelogram/] (caller input)
// - Informational prompt: [rectangle]
// An optional overlay highlights visited nodes and the current node.
func GenerateMermaid(g *domain.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range g.Nodes() {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		label := node.ID

		switch {
		case node.Kind == domain.KindStart || node.Kind == domain.KindEnd:
			opener, closer = "((", "))"
		case node.Kind == domain.KindTool:
			opener, closer = "[[", "]]"
			label = fmt.Sprintf("%s <br/> %s", node.ID, node.Tool.Name)
		case node.Kind == domain.KindPrompt && node.Slot != "":
			opener, closer = "[/", "/]"
			label = fmt.Sprintf("%s <br/> %s", node.ID, node.Slot)
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		if next, ok := g.Next(node.ID); ok {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, sanitizeMermaidID(next)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n")
		// Force black text for contrast regardless of the viewer theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if safeID != "" && !visitedSet[safeID] {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
