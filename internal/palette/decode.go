package palette

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode builds a Description from a generically decoded value (JSON, TOML or
// YAML into interface{}):
//
//   - a string is a reference: "link", "#ff0000", "rebeccapurple"
//   - a list is an origin followed by adjustments: ["link", {"darken": "15%"}]
//
// Each adjustment is either a single-key map {"name": args} or a list
// ["name", arg, ...]. Args may be a scalar, a list of scalars or null.
// Multi-key maps are rejected here because generic maps lose key order.
func Decode(v any) (Description, error) {
	switch x := v.(type) {
	case Description:
		return x, x.Validate()
	case string:
		return decodeString(x)
	case []string:
		items := make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
		return decodeList(items)
	case []any:
		return decodeList(x)
	case nil:
		return Description{}, fmt.Errorf("%w: null value", ErrInvalidColorDescription)
	default:
		return Description{}, fmt.Errorf("%w: unsupported value of type %T", ErrInvalidColorDescription, v)
	}
}

func decodeString(s string) (Description, error) {
	d := Ref(s)
	return d, d.Validate()
}

func decodeList(items []any) (Description, error) {
	if len(items) == 0 {
		return Description{}, fmt.Errorf("%w: empty list", ErrInvalidColorDescription)
	}

	origin, err := Decode(items[0])
	if err != nil {
		return Description{}, err
	}
	if len(items) == 1 {
		return origin, nil
	}

	adjustments := make([]Adjustment, 0, len(items)-1)
	for i, item := range items[1:] {
		adj, err := decodeAdjustment(item)
		if err != nil {
			return Description{}, fmt.Errorf("adjustment %d: %w", i+1, err)
		}
		adjustments = append(adjustments, adj)
	}

	d := Adjusted(origin, adjustments)
	return d, d.Validate()
}

func decodeAdjustment(v any) (Adjustment, error) {
	switch x := v.(type) {
	case map[string]any:
		if len(x) != 1 {
			return Adjustment{}, fmt.Errorf("%w: adjustment map must hold exactly one function, got %d",
				ErrInvalidColorDescription, len(x))
		}
		for name, rawArgs := range x {
			args, err := decodeArgs(rawArgs)
			if err != nil {
				return Adjustment{}, err
			}
			return Adjustment{Func: strings.TrimSpace(name), Args: args}, nil
		}
	case []any:
		if len(x) == 0 {
			return Adjustment{}, fmt.Errorf("%w: empty adjustment", ErrInvalidColorDescription)
		}
		name, ok := x[0].(string)
		if !ok {
			return Adjustment{}, fmt.Errorf("%w: adjustment name must be a string, got %T",
				ErrInvalidColorDescription, x[0])
		}
		args, err := decodeArgs(x[1:])
		if err != nil {
			return Adjustment{}, err
		}
		return Adjustment{Func: strings.TrimSpace(name), Args: args}, nil
	}
	return Adjustment{}, fmt.Errorf("%w: adjustment must be a map or list, got %T", ErrInvalidColorDescription, v)
}

func decodeArgs(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []any:
		args := make([]string, 0, len(x))
		for _, item := range x {
			s, err := scalarString(item)
			if err != nil {
				return nil, err
			}
			args = append(args, s)
		}
		return args, nil
	default:
		s, err := scalarString(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func scalarString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case json.Number:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("%w: argument must be a scalar, got %T", ErrInvalidColorDescription, v)
	}
}

// DecodeNode builds a Description from a YAML node. Unlike Decode it accepts
// multi-key adjustment maps, applying them in document order.
func DecodeNode(n *yaml.Node) (Description, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Description{}, fmt.Errorf("%w: empty document", ErrInvalidColorDescription)
		}
		return DecodeNode(n.Content[0])
	case yaml.AliasNode:
		return DecodeNode(n.Alias)
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return Description{}, fmt.Errorf("%w: null value at line %d", ErrInvalidColorDescription, n.Line)
		}
		return decodeString(n.Value)
	case yaml.SequenceNode:
		return decodeSequenceNode(n)
	default:
		return Description{}, fmt.Errorf("%w: a map is not a color (line %d)", ErrInvalidColorDescription, n.Line)
	}
}

func decodeSequenceNode(n *yaml.Node) (Description, error) {
	if len(n.Content) == 0 {
		return Description{}, fmt.Errorf("%w: empty list at line %d", ErrInvalidColorDescription, n.Line)
	}

	origin, err := DecodeNode(n.Content[0])
	if err != nil {
		return Description{}, err
	}
	if len(n.Content) == 1 {
		return origin, nil
	}

	var adjustments []Adjustment
	for _, item := range n.Content[1:] {
		if item.Kind == yaml.AliasNode {
			item = item.Alias
		}
		switch item.Kind {
		case yaml.MappingNode:
			for i := 0; i+1 < len(item.Content); i += 2 {
				args, err := nodeArgs(item.Content[i+1])
				if err != nil {
					return Description{}, err
				}
				adjustments = append(adjustments, Adjustment{Func: strings.TrimSpace(item.Content[i].Value), Args: args})
			}
		case yaml.SequenceNode:
			if len(item.Content) == 0 || item.Content[0].Kind != yaml.ScalarNode {
				return Description{}, fmt.Errorf("%w: adjustment list needs a function name (line %d)",
					ErrInvalidColorDescription, item.Line)
			}
			args := make([]string, 0, len(item.Content)-1)
			for _, a := range item.Content[1:] {
				if a.Kind != yaml.ScalarNode {
					return Description{}, fmt.Errorf("%w: argument must be a scalar (line %d)", ErrInvalidColorDescription, a.Line)
				}
				args = append(args, strings.TrimSpace(a.Value))
			}
			adjustments = append(adjustments, Adjustment{Func: strings.TrimSpace(item.Content[0].Value), Args: args})
		default:
			return Description{}, fmt.Errorf("%w: adjustment must be a map or list (line %d)",
				ErrInvalidColorDescription, item.Line)
		}
	}

	d := Adjusted(origin, adjustments)
	return d, d.Validate()
}

func nodeArgs(n *yaml.Node) ([]string, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return []string{strings.TrimSpace(n.Value)}, nil
	case yaml.SequenceNode:
		args := make([]string, 0, len(n.Content))
		for _, a := range n.Content {
			if a.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: argument must be a scalar (line %d)", ErrInvalidColorDescription, a.Line)
			}
			args = append(args, strings.TrimSpace(a.Value))
		}
		return args, nil
	default:
		return nil, fmt.Errorf("%w: arguments must be a scalar or list (line %d)", ErrInvalidColorDescription, n.Line)
	}
}

// ParseExpression parses a description typed on the command line. Input
// starting with "[" is read as a YAML flow list, e.g. "[link, {darken: 15%}]";
// anything else is a single reference, so "#ff0000" needs no quoting.
func ParseExpression(s string) (Description, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") {
		return decodeString(s)
	}

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(s), &node); err != nil {
		return Description{}, fmt.Errorf("%w: %v", ErrInvalidColorDescription, err)
	}
	return DecodeNode(&node)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Description) UnmarshalYAML(n *yaml.Node) error {
	decoded, err := DecodeNode(n)
	if err != nil {
		return err
	}
	*d = decoded
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Description) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := Decode(raw)
	if err != nil {
		return err
	}
	*d = decoded
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Description) UnmarshalTOML(v any) error {
	decoded, err := Decode(v)
	if err != nil {
		return err
	}
	*d = decoded
	return nil
}
