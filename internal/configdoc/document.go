package configdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/edgepart/types"
)

// Well-known keys of the job configuration document.
const (
	KeyWorkerConfig     = "worker_config"
	KeyNumWorkers       = "num_workers"
	KeyVertexAssignment = "vertex_assignment"
	KeyGraphConfig      = "graph_config"
	KeyNumVertices      = "num_vertices"
	KeyEdges            = "edges"
)

// Document is an ordered YAML mapping document.
type Document struct {
	root *yaml.Node
}

// New returns an empty document.
func New() *Document {
	return &Document{root: &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}}
}

// Parse decodes a YAML document. Empty input yields an empty document.
//
// Returns:
//   - *Document: The parsed document
//   - error: ErrInvalidConfig if the input is not YAML or its top level is not a mapping
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: parse configuration: %w", types.ErrInvalidConfig, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return New(), nil
	}
	if root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: configuration top level must be a mapping", types.ErrInvalidConfig)
	}

	return &Document{root: &root}, nil
}

// Load reads and parses the document at path.
//
// Returns:
//   - *Document: The parsed document
//   - error: ErrConfigTargetMissing if path does not exist, ErrIO on read
//     failure, ErrInvalidConfig on malformed YAML
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", types.ErrConfigTargetMissing, err)
		}

		return nil, fmt.Errorf("%w: read configuration: %w", types.ErrIO, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Bytes encodes the document with two-space indentation.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return nil, fmt.Errorf("%w: encode configuration: %w", types.ErrInvalidConfig, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: encode configuration: %w", types.ErrInvalidConfig, err)
	}

	return buf.Bytes(), nil
}

// Save writes the document to path, keeping the mode of an existing file.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("%w: write configuration: %w", types.ErrIO, err)
	}

	return nil
}

func (d *Document) mapping() *yaml.Node {
	return d.root.Content[0]
}

// Lookup returns the node at the given key path, or nil if any key is absent.
func (d *Document) Lookup(path ...string) *yaml.Node {
	node := d.mapping()
	for _, key := range path {
		node = resolve(node)
		if node == nil || node.Kind != yaml.MappingNode {
			return nil
		}
		_, value := find(node, key)
		if value == nil {
			return nil
		}
		node = value
	}

	return resolve(node)
}

// Int returns the integer at path.
//
// Returns:
//   - int: The value, 0 when absent
//   - bool: Whether a non-null value was present
//   - error: ErrInvalidConfig if the value is not an integer
func (d *Document) Int(path ...string) (int, bool, error) {
	node := d.Lookup(path...)
	if isNull(node) {
		return 0, false, nil
	}

	var v int
	if err := node.Decode(&v); err != nil {
		return 0, false, fmt.Errorf("%w: %s at line %d: %w", types.ErrInvalidConfig, joinPath(path), node.Line, err)
	}

	return v, true, nil
}

// StringMap returns the scalar entries of the mapping at path, keyed and
// valued by their literal text. Non-scalar values are returned as "".
//
// Returns:
//   - map[string]string: Entries, nil when absent
//   - error: ErrInvalidConfig if the node is not a mapping
func (d *Document) StringMap(path ...string) (map[string]string, error) {
	node := d.Lookup(path...)
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s at line %d is not a mapping", types.ErrInvalidConfig, joinPath(path), node.Line)
	}

	out := make(map[string]string, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := resolve(node.Content[i]), resolve(node.Content[i+1])
		if key == nil || key.Kind != yaml.ScalarNode {
			continue
		}
		if value != nil && value.Kind == yaml.ScalarNode {
			out[key.Value] = value.Value
		} else {
			out[key.Value] = ""
		}
	}

	return out, nil
}

type edgeRecord struct {
	U *int `yaml:"u"`
	V *int `yaml:"v"`
}

// EdgeRecords returns the {u, v} records of the sequence at path.
//
// Records missing either endpoint are dropped. Extra fields such as a weight
// are ignored.
//
// Returns:
//   - []types.Edge: Records in document order, nil when absent
//   - error: ErrInvalidConfig if the node is not a sequence of mappings
func (d *Document) EdgeRecords(path ...string) ([]types.Edge, error) {
	node := d.Lookup(path...)
	if isNull(node) {
		return nil, nil
	}

	var records []edgeRecord
	if err := node.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %s at line %d: %w", types.ErrInvalidConfig, joinPath(path), node.Line, err)
	}

	edges := make([]types.Edge, 0, len(records))
	for _, r := range records {
		if r.U == nil || r.V == nil {
			continue
		}
		edges = append(edges, types.Edge{From: *r.U, To: *r.V})
	}

	return edges, nil
}

// Set replaces the value at path, creating intermediate mappings as needed.
//
// An existing key keeps its position and comments; a new key is appended to
// its parent mapping. A non-mapping value in the way of path is replaced by
// a mapping.
//
// Returns:
//   - error: ErrInvalidConfig if path is empty
func (d *Document) Set(value *yaml.Node, path ...string) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty configuration key path", types.ErrInvalidConfig)
	}

	parent := d.mapping()
	for _, key := range path[:len(path)-1] {
		parent = child(parent, key)
	}

	last := path[len(path)-1]
	if _, v := find(parent, last); v != nil {
		value.HeadComment = v.HeadComment
		value.LineComment = v.LineComment
		*v = *value

		return nil
	}
	parent.Content = append(parent.Content, stringNode(last), value)

	return nil
}

// SetInt sets an integer value at path.
func (d *Document) SetInt(value int, path ...string) error {
	return d.Set(IntNode(value), path...)
}

// child returns the mapping under key, creating or replacing it as needed.
func child(parent *yaml.Node, key string) *yaml.Node {
	_, v := find(parent, key)
	if v == nil {
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		parent.Content = append(parent.Content, stringNode(key), m)

		return m
	}
	if v.Kind == yaml.AliasNode && v.Alias != nil && v.Alias.Kind == yaml.MappingNode {
		*v = *v.Alias
	}
	if v.Kind != yaml.MappingNode {
		*v = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", LineComment: v.LineComment}
	}

	return v
}

func find(mapping *yaml.Node, key string) (*yaml.Node, *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i], mapping.Content[i+1]
		}
	}

	return nil, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}

	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func joinPath(path []string) string {
	return strings.Join(path, ".")
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// IntNode returns a plain integer scalar node.
func IntNode(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

// StringNode returns a plain string scalar node.
func StringNode(s string) *yaml.Node {
	return stringNode(s)
}

// MappingNode builds a mapping node from parallel key and value nodes.
func MappingNode(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: pairs}
}
