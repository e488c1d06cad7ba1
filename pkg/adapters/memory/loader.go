package memory

import (
	"fmt"
	"io"
	"sort"

	"github.com/aretw0/wayfinder/internal/compiler"
	"github.com/aretw0/wayfinder/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.GraphLoader using an in-memory map.
type Loader struct {
	nodes map[string][]byte
	root  string
}

// NewLoader creates a new MemoryLoader with the provided raw data (JSON strings).
func NewLoader(data map[string]string) *Loader {
	nodes := make(map[string][]byte)
	for k, v := range data {
		nodes[k] = []byte(v)
	}
	return &Loader{
		nodes: nodes,
	}
}

// NewFromNodes creates a new MemoryLoader from domain objects.
// This handles serialization automatically, improving DX for tests.
func NewFromNodes(nodes ...domain.Node) (*Loader, error) {
	data := make(map[string][]byte)
	for _, n := range nodes {
		if n.NodeID() == "" {
			return nil, fmt.Errorf("node missing ID")
		}
		if _, dup := data[n.NodeID()]; dup {
			return nil, &domain.CollisionError{ID: n.NodeID(), Existing: "node", Incoming: n.NodeType()}
		}
		bytes, err := compiler.Encode(n)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal node %s: %w", n.NodeID(), err)
		}
		data[n.NodeID()] = bytes
	}
	return &Loader{nodes: data}, nil
}

// GraphFile is the YAML layout of a decision graph file.
type GraphFile struct {
	Root    string          `yaml:"root"`
	Steps   []domain.Step   `yaml:"steps"`
	Results []domain.Result `yaml:"results"`
}

// LoadYAML reads a GraphFile. Options with both or neither of next/result are
// rejected while decoding.
func LoadYAML(r io.Reader) (*Loader, error) {
	var file GraphFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse graph yaml: %w", err)
	}

	nodes := make([]domain.Node, 0, len(file.Steps)+len(file.Results))
	for i := range file.Steps {
		nodes = append(nodes, &file.Steps[i])
	}
	for i := range file.Results {
		nodes = append(nodes, &file.Results[i])
	}

	loader, err := NewFromNodes(nodes...)
	if err != nil {
		return nil, err
	}
	loader.root = file.Root
	return loader, nil
}

// Root returns the root declared by the YAML file, if any.
func (l *Loader) Root() string {
	return l.root
}

// GetNode retrieves the raw definition of a node by ID.
func (l *Loader) GetNode(id string) ([]byte, error) {
	content, ok := l.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	return content, nil
}

// ListNodes returns all available node IDs.
func (l *Loader) ListNodes() ([]string, error) {
	keys := make([]string, 0, len(l.nodes))
	for k := range l.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
