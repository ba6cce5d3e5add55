package construct

// checkConstruct is Check(predicate): a zero-width assertion that
// fails with ErrValidation when predicate evaluates false (spec.md
// 4.4 supplemented feature, grounded on original_source/construct's
// Check).
type checkConstruct struct {
	predicate Expr
}

// Check builds a validation-only construct.
func Check(predicate Expr) Construct { return &checkConstruct{predicate: predicate} }

func (c *checkConstruct) IsFixedSize() bool { return true }

func (c *checkConstruct) sizeOf(*Context, Path) (int, error) { return 0, nil }

func (c *checkConstruct) verify(ctx *Context, path Path) error {
	ok, err := resolveBool(c.predicate, ctx)
	if err != nil {
		return withPath(err, path)
	}
	if !ok {
		return withPath(ErrValidation{Msg: "check failed"}, path)
	}
	return nil
}

func (c *checkConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	if err := c.verify(ctx, path); err != nil {
		return nil, err
	}
	return None{}, nil
}

func (c *checkConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	if err := c.verify(ctx, path); err != nil {
		return nil, err
	}
	return None{}, nil
}

// ifThenElseConstruct is IfThenElse(predicate, thenCon, elseCon):
// dispatches to one of two subconstructs depending on predicate,
// evaluated fresh on every parse/build.
type ifThenElseConstruct struct {
	predicate Expr
	thenCon   Construct
	elseCon   Construct
}

// IfThenElse builds a predicate-driven dispatch between two subcons.
func IfThenElse(predicate Expr, thenCon, elseCon Construct) Construct {
	return &ifThenElseConstruct{predicate: predicate, thenCon: thenCon, elseCon: elseCon}
}

// If is IfThenElse with Pass as the else branch.
func If(predicate Expr, subcon Construct) Construct {
	return IfThenElse(predicate, subcon, Pass)
}

func (c *ifThenElseConstruct) IsFixedSize() bool {
	return c.thenCon.IsFixedSize() && c.elseCon.IsFixedSize()
}

func (c *ifThenElseConstruct) sizeOf(ctx *Context, path Path) (int, error) {
	ok, err := resolveBool(c.predicate, ctx)
	if err != nil {
		return 0, withPath(err, path)
	}
	if ok {
		return c.thenCon.sizeOf(ctx, path)
	}
	return c.elseCon.sizeOf(ctx, path)
}

func (c *ifThenElseConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	ok, err := resolveBool(c.predicate, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	if ok {
		return c.thenCon.parse(s, ctx, path)
	}
	return c.elseCon.parse(s, ctx, path)
}

func (c *ifThenElseConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	ok, err := resolveBool(c.predicate, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	if ok {
		return c.thenCon.build(v, s, ctx, path)
	}
	return c.elseCon.build(v, s, ctx, path)
}

// stopIfConstruct is StopIf(predicate): raises CancelParsing when
// predicate is true, the range-consumer control signal GreedyRange and
// RepeatUntil know how to treat as a clean early stop rather than an
// error (spec.md 4.7/9).
type stopIfConstruct struct {
	predicate Expr
}

// StopIf builds a construct that signals CancelParsing when predicate
// is true, for use as one element of a GreedyRange/RepeatUntil body.
func StopIf(predicate Expr) Construct { return &stopIfConstruct{predicate: predicate} }

func (c *stopIfConstruct) IsFixedSize() bool { return true }

func (c *stopIfConstruct) sizeOf(*Context, Path) (int, error) { return 0, nil }

func (c *stopIfConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	ok, err := resolveBool(c.predicate, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	if ok {
		return nil, CancelParsing
	}
	return None{}, nil
}

func (c *stopIfConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	ok, err := resolveBool(c.predicate, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	if ok {
		return nil, CancelParsing
	}
	return None{}, nil
}

// defaultConstruct is Default(subcon, value): on build, a nil
// input falls back to value instead of failing; parse is a pure
// pass-through to subcon.
type defaultConstruct struct {
	subcon Construct
	value  any
}

// Default builds a construct that substitutes value for a nil build
// input.
func Default(subcon Construct, value any) Construct {
	return &defaultConstruct{subcon: subcon, value: value}
}

func (c *defaultConstruct) IsFixedSize() bool { return c.subcon.IsFixedSize() }

func (c *defaultConstruct) sizeOf(ctx *Context, path Path) (int, error) {
	return c.subcon.sizeOf(ctx, path)
}

func (c *defaultConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	return c.subcon.parse(s, ctx, path)
}

func (c *defaultConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	if v == nil {
		v = c.value
	}
	return c.subcon.build(v, s, ctx, path)
}
