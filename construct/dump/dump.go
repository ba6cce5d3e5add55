// Package dump converts a parsed construct.Record/construct.List tree
// to and from YAML, the shape cmd/wireform's parse/build subcommands
// hand to and read from a terminal or file. It never touches a Stream
// or Construct directly: it only walks the already-parsed value model.
package dump

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	c "github.com/wireform/wireform/construct"

	"github.com/goccy/go-yaml"
)

// Marshal renders v (typically the *c.Record or *c.List a Parse call
// returned) as YAML, preserving field order the way construct.Record
// does.
func Marshal(v any) ([]byte, error) {
	node, err := toYAML(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func toYAML(v any) (any, error) {
	switch x := v.(type) {
	case *c.Record:
		out := yaml.MapSlice{}
		var walkErr error
		x.Each(func(key string, value any) {
			if walkErr != nil {
				return
			}
			child, err := toYAML(value)
			if err != nil {
				walkErr = err
				return
			}
			out = append(out, yaml.MapItem{Key: key, Value: child})
		})
		if walkErr != nil {
			return nil, walkErr
		}
		return out, nil
	case *c.List:
		items := x.Items()
		out := make([]any, len(items))
		for i, item := range items {
			child, err := toYAML(item)
			if err != nil {
				return nil, err
			}
			out[i] = child
		}
		return out, nil
	case c.EnumValue:
		if x.Mapped {
			return x.Name, nil
		}
		return x.Value, nil
	case c.FlagsValue:
		out := yaml.MapSlice{}
		for name, set := range x {
			if !set && !c.PrintFalseFlags() {
				continue
			}
			out = append(out, yaml.MapItem{Key: name, Value: set})
		}
		return out, nil
	case c.None:
		return nil, nil
	case []byte:
		return x, nil
	default:
		return x, nil
	}
}

// MarshalJSON renders v the same way Marshal does, but as JSON:
// cmd/wireform's output_encoding = "json" setting uses this instead of
// Marshal. Field order is still preserved since *c.Record never
// becomes a plain Go map along the way.
func MarshalJSON(v any) ([]byte, error) {
	var b strings.Builder
	if err := writeJSON(&b, v); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func writeJSON(b *strings.Builder, v any) error {
	switch x := v.(type) {
	case *c.Record:
		b.WriteByte('{')
		first := true
		var walkErr error
		x.Each(func(key string, value any) {
			if walkErr != nil {
				return
			}
			if !first {
				b.WriteByte(',')
			}
			first = false
			b.WriteString(strconv.Quote(key))
			b.WriteByte(':')
			if err := writeJSON(b, value); err != nil {
				walkErr = err
			}
		})
		if walkErr != nil {
			return walkErr
		}
		b.WriteByte('}')
		return nil
	case *c.List:
		b.WriteByte('[')
		for i, item := range x.Items() {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSON(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil
	case c.EnumValue:
		if x.Mapped {
			b.WriteString(strconv.Quote(x.Name))
		} else {
			b.WriteString(strconv.FormatInt(x.Value, 10))
		}
		return nil
	case c.FlagsValue:
		rec := c.NewRecord()
		for name, set := range x {
			if !set && !c.PrintFalseFlags() {
				continue
			}
			rec.Set(name, set)
		}
		return writeJSON(b, rec)
	case c.None, nil:
		b.WriteString("null")
		return nil
	case []byte:
		b.WriteString(strconv.Quote(base64.StdEncoding.EncodeToString(x)))
		return nil
	case string:
		b.WriteString(strconv.Quote(x))
		return nil
	case bool:
		b.WriteString(strconv.FormatBool(x))
		return nil
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
		return nil
	case uint64:
		b.WriteString(strconv.FormatUint(x, 10))
		return nil
	case float64:
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		return nil
	default:
		return fmt.Errorf("dump: cannot render %T as JSON", v)
	}
}

// Unmarshal parses YAML produced by Marshal (or hand-written by a
// user) back into the construct.Record/construct.List value model a
// Build call expects.
func Unmarshal(data []byte) (any, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("dump: decode yaml: %w", err)
	}
	return fromYAML(v)
}

func fromYAML(v any) (any, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		rec := c.NewRecord()
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("dump: non-string map key %v", item.Key)
			}
			child, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			rec.Set(key, child)
		}
		return rec, nil
	case []any:
		lst := c.NewList()
		for _, item := range x {
			child, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			lst.Append(child)
		}
		return lst, nil
	case uint64:
		return int64(x), nil
	case int:
		return int64(x), nil
	default:
		return x, nil
	}
}
