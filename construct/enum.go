package construct

import "fmt"

// enumConstruct is Enum(subcon, mapping): subcon produces an integer,
// looked up against mapping to produce a named EnumValue. An integer
// with no matching name still parses, flagged Mapped=false, rather
// than failing (spec.md 4.6, "unknown integers pass through").
type enumConstruct struct {
	subcon  Construct
	names   map[int64]string
	byName  map[string]int64
}

// Enum builds a named-integer construct over subcon.
func Enum(subcon Construct, mapping map[string]int64) Construct {
	names := make(map[int64]string, len(mapping))
	for name, v := range mapping {
		names[v] = name
	}
	return &enumConstruct{subcon: subcon, names: names, byName: mapping}
}

func (c *enumConstruct) IsFixedSize() bool { return c.subcon.IsFixedSize() }

func (c *enumConstruct) sizeOf(ctx *Context, path Path) (int, error) {
	return c.subcon.sizeOf(ctx, path)
}

func (c *enumConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	v, err := c.subcon.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	i, ok := asInt64(v)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("Enum subcon produced a non-integer %T", v)}, path)
	}
	if name, ok := c.names[i]; ok {
		return EnumValue{Name: name, Value: i, Mapped: true}, nil
	}
	return EnumValue{Value: i, Mapped: false}, nil
}

func (c *enumConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	var i int64
	switch x := v.(type) {
	case EnumValue:
		i = x.Value
	case string:
		n, ok := c.byName[x]
		if !ok {
			return nil, withPath(ErrMapping{Msg: fmt.Sprintf("Enum has no symbol %q", x)}, path)
		}
		i = n
	default:
		n, ok := asInt64(v)
		if !ok {
			return nil, withPath(ErrFormat{Msg: fmt.Sprintf("Enum expects an EnumValue, string or integer, got %T", v)}, path)
		}
		i = n
	}
	if _, err := c.subcon.build(i, s, ctx, path); err != nil {
		return nil, err
	}
	if name, ok := c.names[i]; ok {
		return EnumValue{Name: name, Value: i, Mapped: true}, nil
	}
	return EnumValue{Value: i, Mapped: false}, nil
}

// flagsEnumConstruct is FlagsEnum(subcon, mapping): decomposes the
// integer subcon produces into one boolean per declared bit name.
type flagsEnumConstruct struct {
	subcon Construct
	bits   map[string]int64
}

// FlagsEnum builds a bitfield-decomposed construct over subcon.
func FlagsEnum(subcon Construct, bits map[string]int64) Construct {
	return &flagsEnumConstruct{subcon: subcon, bits: bits}
}

func (c *flagsEnumConstruct) IsFixedSize() bool { return c.subcon.IsFixedSize() }

func (c *flagsEnumConstruct) sizeOf(ctx *Context, path Path) (int, error) {
	return c.subcon.sizeOf(ctx, path)
}

func (c *flagsEnumConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	v, err := c.subcon.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	i, ok := asInt64(v)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("FlagsEnum subcon produced a non-integer %T", v)}, path)
	}
	out := make(FlagsValue, len(c.bits))
	for name, bit := range c.bits {
		out[name] = i&bit == bit && bit != 0
	}
	return out, nil
}

func (c *flagsEnumConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	flags, ok := v.(FlagsValue)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("FlagsEnum expects a FlagsValue, got %T", v)}, path)
	}
	var mask int64
	for name, set := range flags {
		if !set {
			continue
		}
		bit, ok := c.bits[name]
		if !ok {
			return nil, withPath(ErrMapping{Msg: fmt.Sprintf("FlagsEnum has no flag %q", name)}, path)
		}
		mask |= bit
	}
	if _, err := c.subcon.build(mask, s, ctx, path); err != nil {
		return nil, err
	}
	return flags, nil
}
