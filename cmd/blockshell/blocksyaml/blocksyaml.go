package blocksyaml

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"blockkit/cmd/blockshell/blocks"

	"gopkg.in/yaml.v3"
)

// Document is the Go-level representation of a parsed block definition file.
//
// Block definitions are kept in an intermediate form until Define is called,
// because their message references can only be resolved once the message
// tables of every loaded document are merged.
type Document struct {
	Categories map[blocks.Category]blocks.Colour
	Messages   Messages
	blocks     map[string]blockDef
}

// BlockNames returns the names of the block kinds defined in the document, sorted.
func (d Document) BlockNames() []string {
	return slices.Sorted(maps.Keys(d.blocks))
}

// ---- Internal YAML parsing structs ----------------------------------------

type yamlDocument struct {
	Categories map[string]yaml.Node `yaml:"categories,omitempty"`
	Messages   map[string]string    `yaml:"messages,omitempty"`
	Blocks     map[string]yamlBlock `yaml:"blocks,omitempty"`
}

// yamlBlock is the YAML representation of a block kind.
// Tooltip uses yaml.Node (not *yaml.Node) because it is polymorphic: a
// scalar is static text, a mapping describes a computed tooltip. An absent
// key leaves Kind == 0.
type yamlBlock struct {
	Category string      `yaml:"category"`
	Output   string      `yaml:"output,omitempty"`
	Previous bool        `yaml:"previous,omitempty"`
	Next     bool        `yaml:"next,omitempty"`
	Inline   bool        `yaml:"inline,omitempty"`
	Tooltip  yaml.Node   `yaml:"tooltip,omitempty"`
	Help     string      `yaml:"help,omitempty"`
	Inputs   []yamlInput `yaml:"inputs,omitempty"`
}

type yamlInput struct {
	Name   string      `yaml:"name,omitempty"`
	Kind   string      `yaml:"kind,omitempty"`
	Check  yaml.Node   `yaml:"check,omitempty"`
	Align  string      `yaml:"align,omitempty"`
	Fields []yamlField `yaml:"fields,omitempty"`
}

type yamlField struct {
	Type    string    `yaml:"type"`
	Name    string    `yaml:"name,omitempty"`
	Text    string    `yaml:"text,omitempty"`
	Default string    `yaml:"default,omitempty"`
	Options yaml.Node `yaml:"options,omitempty"`
}

// yamlTooltip is the mapping form of the tooltip key.
type yamlTooltip struct {
	InheritParent bool   `yaml:"inherit_parent"`
	Default       string `yaml:"default"`
}

// blockDef is a decoded block whose strings may still hold message references.
type blockDef struct {
	schema        blocks.Schema
	inheritParent bool
	tooltip       string
}

// ---- Parse -----------------------------------------------------------------

// Parse parses one YAML document. Structural problems (unknown type names,
// malformed keys) are reported here; schema rules are checked by Define.
func Parse(in []byte) (Document, error) {
	var docNode yaml.Node
	if err := yaml.Unmarshal(in, &docNode); err != nil {
		return Document{}, err
	}
	if len(docNode.Content) == 0 {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: empty YAML")
	}
	root := docNode.Content[0]
	if root.Kind != yaml.MappingNode {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: expected a mapping with categories, messages or blocks, got YAML kind %d", root.Kind)
	}

	var yd yamlDocument
	if err := root.Decode(&yd); err != nil {
		return Document{}, err
	}
	return convertDocument(yd)
}

// ---- Convert: yaml types → blocks types -----------------------------------

func convertDocument(yd yamlDocument) (Document, error) {
	cats, err := convertCategories(yd.Categories)
	if err != nil {
		return Document{}, err
	}
	doc := Document{
		Categories: cats,
		Messages:   Messages(yd.Messages),
		blocks:     make(map[string]blockDef, len(yd.Blocks)),
	}
	for _, name := range slices.Sorted(maps.Keys(yd.Blocks)) {
		if strings.TrimSpace(name) == "" {
			return Document{}, fmt.Errorf("phase=parse path=<doc>: block is missing a name")
		}
		def, err := convertBlock(yd.Blocks[name])
		if err != nil {
			return Document{}, fmt.Errorf("phase=parse path=%s: %w", name, err)
		}
		doc.blocks[name] = def
	}
	return doc, nil
}

// convertCategories reads category colours. Values are "#rrggbb" or a hue in
// degrees; yaml.v3 keeps every scalar's text in Node.Value, so 230 arrives as "230".
func convertCategories(raw map[string]yaml.Node) (map[blocks.Category]blocks.Colour, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[blocks.Category]blocks.Colour, len(raw))
	for name, node := range raw {
		cat := blocks.Category(name)
		if !cat.Known() {
			return nil, fmt.Errorf("phase=parse path=categories.%s: %w", name, blocks.ErrUnknownCategory)
		}
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("phase=parse path=categories.%s: expected a colour scalar, got YAML kind %d", name, node.Kind)
		}
		colour, err := blocks.ParseColour(node.Value)
		if err != nil {
			return nil, fmt.Errorf("phase=parse path=categories.%s: %w", name, err)
		}
		out[cat] = colour
	}
	return out, nil
}

func convertBlock(yb yamlBlock) (blockDef, error) {
	s := blocks.Schema{
		Category:     blocks.Category(yb.Category),
		Chaining:     blocks.Chaining{AcceptsPrevious: yb.Previous, AcceptsNext: yb.Next},
		HelpURL:      yb.Help,
		InputsInline: yb.Inline,
	}
	if yb.Output != "" {
		t, err := blocks.ParseTypeName(yb.Output)
		if err != nil {
			return blockDef{}, fmt.Errorf("output: %w", err)
		}
		s.Output = t
	}

	for i, yi := range yb.Inputs {
		sock, err := convertInput(yi)
		if err != nil {
			label := yi.Name
			if label == "" {
				label = fmt.Sprintf("%d", i)
			}
			return blockDef{}, fmt.Errorf("inputs[%s]: %w", label, err)
		}
		s.Sockets = append(s.Sockets, sock)
	}

	def := blockDef{schema: s}
	switch yb.Tooltip.Kind {
	case 0:
		// absent: empty static tooltip
	case yaml.ScalarNode:
		def.tooltip = yb.Tooltip.Value
	case yaml.MappingNode:
		var yt yamlTooltip
		if err := yb.Tooltip.Decode(&yt); err != nil {
			return blockDef{}, fmt.Errorf("tooltip: %w", err)
		}
		if !yt.InheritParent {
			return blockDef{}, fmt.Errorf("tooltip: mapping form requires inherit_parent: true")
		}
		def.inheritParent = true
		def.tooltip = yt.Default
	default:
		return blockDef{}, fmt.Errorf("tooltip: expected text or mapping, got YAML kind %d", yb.Tooltip.Kind)
	}
	return def, nil
}

func convertInput(yi yamlInput) (blocks.Socket, error) {
	sock := blocks.Socket{Name: yi.Name}

	switch yi.Kind {
	case "", "value":
		sock.Kind = blocks.SocketValue
	case "statement":
		sock.Kind = blocks.SocketStatement
	case "dummy":
		sock.Kind = blocks.SocketDummy
	default:
		return blocks.Socket{}, fmt.Errorf("kind must be 'value', 'statement' or 'dummy' (got %q)", yi.Kind)
	}

	switch yi.Align {
	case "", "left":
		sock.Align = blocks.AlignLeft
	case "centre", "center":
		sock.Align = blocks.AlignCentre
	case "right":
		sock.Align = blocks.AlignRight
	default:
		return blocks.Socket{}, fmt.Errorf("align must be 'left', 'centre' or 'right' (got %q)", yi.Align)
	}

	check, err := convertCheck(&yi.Check)
	if err != nil {
		return blocks.Socket{}, fmt.Errorf("check: %w", err)
	}
	sock.Check = check

	for _, yf := range yi.Fields {
		f, err := convertField(yf)
		if err != nil {
			return blocks.Socket{}, err
		}
		sock.Fields = append(sock.Fields, f)
	}
	return sock, nil
}

// convertCheck accepts a single type name or a list of them.
func convertCheck(node *yaml.Node) (blocks.TypeSet, error) {
	var names []string
	switch node.Kind {
	case 0:
		return blocks.AnyType(), nil
	case yaml.ScalarNode:
		names = []string{node.Value}
	case yaml.SequenceNode:
		if err := node.Decode(&names); err != nil {
			return blocks.TypeSet{}, err
		}
	default:
		return blocks.TypeSet{}, fmt.Errorf("expected a type name or a list, got YAML kind %d", node.Kind)
	}
	types := make([]blocks.TypeName, 0, len(names))
	for _, n := range names {
		t, err := blocks.ParseTypeName(n)
		if err != nil {
			return blocks.TypeSet{}, err
		}
		types = append(types, t)
	}
	return blocks.NewTypeSet(types...), nil
}

func convertField(yf yamlField) (blocks.Field, error) {
	f := blocks.Field{
		Kind:    blocks.FieldKind(yf.Type),
		Name:    yf.Name,
		Text:    yf.Text,
		Default: yf.Default,
	}
	switch f.Kind {
	case blocks.FieldLabel, blocks.FieldColour, blocks.FieldInput, blocks.FieldNumber:
		if yf.Options.Kind != 0 {
			return blocks.Field{}, fmt.Errorf("field %s: options are only valid on %s", yf.Type, blocks.FieldDropdown)
		}
	case blocks.FieldDropdown:
		opts, err := convertOptions(&yf.Options)
		if err != nil {
			return blocks.Field{}, fmt.Errorf("field %s: %w", yf.Name, err)
		}
		f.Options = opts
	default:
		return blocks.Field{}, fmt.Errorf("unknown field type %q", yf.Type)
	}
	return f, nil
}

// convertOptions reads dropdown options. Each item is either a scalar (used as
// both label and value) or a [label, value] pair.
func convertOptions(node *yaml.Node) ([]blocks.Option, error) {
	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return nil, fmt.Errorf("dropdown requires a non-empty options list")
	}
	opts := make([]blocks.Option, 0, len(node.Content))
	for i, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			opts = append(opts, blocks.Option{Label: item.Value, Value: item.Value})
		case yaml.SequenceNode:
			if len(item.Content) != 2 {
				return nil, fmt.Errorf("options[%d]: expected [label, value]", i)
			}
			opts = append(opts, blocks.Option{Label: item.Content[0].Value, Value: item.Content[1].Value})
		default:
			return nil, fmt.Errorf("options[%d]: expected a scalar or [label, value], got YAML kind %d", i, item.Kind)
		}
	}
	return opts, nil
}
