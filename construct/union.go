package construct

import "fmt"

// selectConstruct is Select(subcons...): tries each alternative in
// order at the same stream position, committing to the first one that
// parses without error; ErrSelect when none do (spec.md 4.6).
type selectConstruct struct {
	subcons []Construct
}

// Select builds a first-match-wins alternation over subcons.
func Select(subcons ...Construct) Construct {
	return &selectConstruct{subcons: subcons}
}

func (c *selectConstruct) IsFixedSize() bool { return false }

func (c *selectConstruct) sizeOf(*Context, Path) (int, error) {
	return 0, ErrSizeUnknown{Msg: "Select has no static size"}
}

func (c *selectConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	pos, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	for _, sc := range c.subcons {
		v, err := sc.parse(s, ctx.Child(), path.Child(nameOf(sc)))
		if err == nil {
			return v, nil
		}
		if isCancelParsing(err) {
			return nil, err
		}
		if _, err2 := s.Seek(pos, SeekStart); err2 != nil {
			return nil, withPath(ErrStream{Msg: err2.Error()}, path)
		}
	}
	return nil, withPath(ErrSelect{Msg: "no alternative matched"}, path)
}

func (c *selectConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	pos, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	for _, sc := range c.subcons {
		built, err := sc.build(v, s, ctx.Child(), path.Child(nameOf(sc)))
		if err == nil {
			return built, nil
		}
		if _, err2 := s.Seek(pos, SeekStart); err2 != nil {
			return nil, withPath(ErrStream{Msg: err2.Error()}, path)
		}
	}
	return nil, withPath(ErrSelect{Msg: fmt.Sprintf("no alternative could build %T", v)}, path)
}

// unionConstruct is Union(parseFrom, subcons...): every named subcon
// parses from the same starting offset into one Record (a field whose
// subcon fails to parse is set to nil), then the stream is
// advanced by whichever alternative parseFrom names, parseFrom<0
// meaning "the first subcon" (spec.md 4.6).
type unionConstruct struct {
	subcons   []Construct
	parseFrom int
}

// Union builds a same-offset alternation exposing every field at
// once, unlike Select which commits to a single one.
func Union(parseFrom int, subcons ...Construct) Construct {
	return &unionConstruct{subcons: subcons, parseFrom: parseFrom}
}

func (c *unionConstruct) IsFixedSize() bool { return false }

func (c *unionConstruct) sizeOf(*Context, Path) (int, error) {
	return 0, ErrSizeUnknown{Msg: "Union has no static size"}
}

func (c *unionConstruct) advanceIndex() int {
	if c.parseFrom >= 0 && c.parseFrom < len(c.subcons) {
		return c.parseFrom
	}
	return 0
}

func (c *unionConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	start, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	rec := NewRecord()
	ends := make([]int64, len(c.subcons))
	for i, sc := range c.subcons {
		if _, err := s.Seek(start, SeekStart); err != nil {
			return nil, withPath(err, path)
		}
		name := nameOf(sc)
		v, perr := sc.parse(s, ctx.Child(), path.Child(name))
		if perr != nil {
			ends[i] = start
			if name != "" {
				rec.Set(name, nil)
			}
			continue
		}
		pos, terr := s.Tell()
		if terr != nil {
			return nil, withPath(ErrStream{Msg: terr.Error()}, path)
		}
		ends[i] = pos
		if name != "" {
			rec.Set(name, v)
		}
	}
	if _, err := s.Seek(ends[c.advanceIndex()], SeekStart); err != nil {
		return nil, withPath(err, path)
	}
	return rec, nil
}

func (c *unionConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	rec, ok := v.(*Record)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("Union expects a *Record, got %T", v)}, path)
	}
	idx := c.advanceIndex()
	sc := c.subcons[idx]
	name := nameOf(sc)
	fv, _ := rec.Get(name)
	built, err := sc.build(fv, s, ctx.Child(), path.Child(name))
	if err != nil {
		return nil, err
	}
	out := NewRecord()
	out.Set(name, built)
	return out, nil
}
