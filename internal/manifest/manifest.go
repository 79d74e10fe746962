package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/contraband/internal/model"
	"github.com/nao1215/contraband/internal/session"
)

var (
	// ErrManifestNotFound is returned when the manifest file does not exist.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrEmptyItemName is returned when an entry has no name.
	ErrEmptyItemName = errors.New("manifest entry has no name")
)

// Quantity is the raw quantity of an entry. It accepts any YAML scalar so
// that values like "3 crates" are normalised by the ledger, not rejected
// by the decoder.
type Quantity string

// UnmarshalYAML keeps the scalar text as written.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("quantity must be a scalar, got %s at line %d", kindName(node.Kind), node.Line)
	}
	*q = Quantity(node.Value)
	return nil
}

// Entry is one activation.
type Entry struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category,omitempty"`
	Quantity Quantity `yaml:"quantity,omitempty"`
}

// Manifest is a titled list of activations.
type Manifest struct {
	Title string  `yaml:"title,omitempty"`
	Items []Entry `yaml:"items"`
}

// Activator is the part of a session the replay needs.
type Activator interface {
	OnItemActivated(name, code string) session.Activation
	OnQuantityEdited(name, raw string) (model.Item, bool)
}

// Decode parses a manifest from r.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, err
	}

	for i, e := range m.Items {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("%w: item %d", ErrEmptyItemName, i+1)
		}
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided manifest path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Replay activates every entry in order. An entry with a quantity has it
// applied after activation; under the toggle policy that is skipped when the
// activation deselected the item.
func (m *Manifest) Replay(a Activator) {
	for _, e := range m.Items {
		name := strings.TrimSpace(e.Name)
		act := a.OnItemActivated(name, strings.TrimSpace(e.Category))
		if e.Quantity != "" && act.Selected {
			a.OnQuantityEdited(name, string(e.Quantity))
		}
	}
}

// Parse builds a manifest from inline "name:code[:qty]" arguments.
func Parse(args []string) (*Manifest, error) {
	m := &Manifest{Items: make([]Entry, 0, len(args))}
	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 3)
		e := Entry{Name: strings.TrimSpace(parts[0])}
		if e.Name == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptyItemName, arg)
		}
		if len(parts) > 1 {
			e.Category = parts[1]
		}
		if len(parts) > 2 {
			e.Quantity = Quantity(parts[2])
		}
		m.Items = append(m.Items, e)
	}
	return m, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
