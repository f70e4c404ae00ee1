// Package graphio loads conversation graphs from YAML flow files and
// validates them at construction time, so a malformed flow is rejected
// before any call can start.
package graphio

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/coccinelle-ai/sara/pkg/domain"
)

// fileDoc mirrors the flow file layout.
type fileDoc struct {
	Name  string     `yaml:"name"`
	Nodes []fileNode `yaml:"nodes"`
	Edges []fileEdge `yaml:"edges"`
}

type fileNode struct {
	ID       string    `yaml:"id"`
	Kind     string    `yaml:"kind"`
	Prompt   string    `yaml:"prompt"`
	Slot     string    `yaml:"slot"`
	Field    string    `yaml:"field"`
	Reprompt string    `yaml:"reprompt"`
	Confirm  string    `yaml:"confirm"`
	Tool     *fileTool `yaml:"tool"`
}

type fileTool struct {
	Name string `yaml:"name"`
	// Input is decoded loosely: YAML happily produces ints or bools for
	// unquoted scalars, and tool parameters are strings on the wire.
	Input     map[string]any `yaml:"input"`
	Narration struct {
		OnStart   string `yaml:"on_start"`
		OnSuccess string `yaml:"on_success"`
		OnFailure string `yaml:"on_failure"`
	} `yaml:"narration"`
}

type fileEdge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Load reads a YAML flow document and builds the validated graph.
func Load(r io.Reader) (*domain.Graph, error) {
	var doc fileDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse flow file: %w", err)
	}

	nodes := make([]domain.Node, 0, len(doc.Nodes))
	for _, fn := range doc.Nodes {
		n := domain.Node{
			ID:       fn.ID,
			Kind:     fn.Kind,
			Prompt:   fn.Prompt,
			Slot:     fn.Slot,
			Field:    fn.Field,
			Reprompt: fn.Reprompt,
			Confirm:  fn.Confirm,
		}
		if fn.Tool != nil {
			input, err := decodeInput(fn.Tool.Input)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", fn.ID, err)
			}
			n.Tool = &domain.ToolSpec{
				Name:  fn.Tool.Name,
				Input: input,
				Narration: domain.Narration{
					OnStart:   fn.Tool.Narration.OnStart,
					OnSuccess: fn.Tool.Narration.OnSuccess,
					OnFailure: fn.Tool.Narration.OnFailure,
				},
			}
		}
		nodes = append(nodes, n)
	}

	edges := make([]domain.Edge, 0, len(doc.Edges))
	for _, fe := range doc.Edges {
		edges = append(edges, domain.Edge{From: fe.From, To: fe.To})
	}

	return domain.NewGraph(doc.Name, nodes, edges)
}

// LoadFile opens and loads a YAML flow file from disk.
func LoadFile(path string) (*domain.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open flow file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// decodeInput coerces the loosely-typed YAML mapping into the string-to-string
// input template the tool protocol requires.
func decodeInput(raw map[string]any) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var input map[string]string
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &input,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid tool input template: %w", err)
	}
	return input, nil
}
