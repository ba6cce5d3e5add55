package construct

import "fmt"

// Expr is a deferred reference evaluated against a Context at
// parse/build time, the sub-language spec.md 4.2 describes for
// `this.width * this.height`-style field sizes, counts and predicates.
// It is a small builder over a single eval closure rather than a class
// hierarchy, per the "implement via a builder API plus an evaluate
// method" design note; Func/Lambda below are the escape hatch for
// anything the builder can't express directly.
type Expr struct {
	eval func(ctx *Context) (any, error)
}

// Eval runs the expression against ctx. Expressions must be pure: two
// evaluations against equal contexts must agree.
func (e Expr) Eval(ctx *Context) (any, error) {
	if e.eval == nil {
		return nil, ErrContext{Msg: "empty expression"}
	}
	return e.eval(ctx)
}

// Func builds an Expr from an arbitrary closure, the escape hatch
// design note 9 calls for alongside the builder API.
func Func(fn func(ctx *Context) (any, error)) Expr {
	return Expr{eval: fn}
}

// Lambda is Func for callers who never fail.
func Lambda(fn func(ctx *Context) any) Expr {
	return Expr{eval: func(ctx *Context) (any, error) { return fn(ctx), nil }}
}

// Const lifts a plain value into an Expr, so `this.width.Gt(Const(10))`
// and similar comparisons read naturally.
func Const(v any) Expr {
	return Expr{eval: func(*Context) (any, error) { return v, nil }}
}

// This is the base object: "the current context". Attribute access
// chains off it via Field.
func This() Expr {
	return Expr{eval: func(ctx *Context) (any, error) { return ctx, nil }}
}

// Field builds attribute access: the equivalent of `this.name`. When
// name resolves to a parent/root Context (e.g. after Parent()), Field
// chains further; otherwise it returns the peer's parsed/built value.
func (e Expr) Field(name string) Expr {
	return Expr{eval: func(ctx *Context) (any, error) {
		base, err := e.eval(ctx)
		if err != nil {
			return nil, err
		}
		bc, ok := base.(*Context)
		if !ok {
			return nil, ErrContext{Msg: fmt.Sprintf("cannot access %q on a non-context value", name)}
		}
		v, ok := bc.Get(name)
		if !ok {
			return nil, ErrContext{Msg: fmt.Sprintf("missing key %q (have: %s)", name, bc.describeKeys())}
		}
		return v, nil
	}}
}

// Item indexes into a *Record this evaluates to, the way a Checksum's
// dataExpr reaches into a sibling RawCopy's "raw" entry.
func (e Expr) Item(key string) Expr {
	return Expr{eval: func(ctx *Context) (any, error) {
		base, err := e.eval(ctx)
		if err != nil {
			return nil, err
		}
		rec, ok := base.(*Record)
		if !ok {
			return nil, ErrContext{Msg: fmt.Sprintf("cannot index %q on a %T", key, base)}
		}
		v, ok := rec.Get(key)
		if !ok {
			return nil, ErrContext{Msg: fmt.Sprintf("record has no entry %q", key)}
		}
		return v, nil
	}}
}

// Parent navigates to "_", the enclosing frame.
func (e Expr) Parent() Expr { return e.Field(keyParent) }

// Root navigates to "_root", the outermost frame.
func (e Expr) Root() Expr { return e.Field(keyRoot) }

// Params navigates to "_params", the external keyword arguments.
func (e Expr) Params() Expr { return e.Field(keyParams) }

func binaryNumeric(a, b Expr, op func(x, y float64) float64, intOp func(x, y int64) int64) Expr {
	return Expr{eval: func(ctx *Context) (any, error) {
		av, err := a.Eval(ctx)
		if err != nil {
			return nil, err
		}
		bv, err := b.Eval(ctx)
		if err != nil {
			return nil, err
		}
		if intOp != nil {
			ai, aok := asInt64(av)
			bi, bok := asInt64(bv)
			if aok && bok {
				return intOp(ai, bi), nil
			}
		}
		af, aerr := asFloat64(av)
		bf, berr := asFloat64(bv)
		if aerr != nil {
			return nil, aerr
		}
		if berr != nil {
			return nil, berr
		}
		return op(af, bf), nil
	}}
}

// Add builds `e + other`.
func (e Expr) Add(other Expr) Expr {
	return binaryNumeric(e, other, func(x, y float64) float64 { return x + y }, func(x, y int64) int64 { return x + y })
}

// Sub builds `e - other`.
func (e Expr) Sub(other Expr) Expr {
	return binaryNumeric(e, other, func(x, y float64) float64 { return x - y }, func(x, y int64) int64 { return x - y })
}

// Mul builds `e * other`.
func (e Expr) Mul(other Expr) Expr {
	return binaryNumeric(e, other, func(x, y float64) float64 { return x * y }, func(x, y int64) int64 { return x * y })
}

// Div builds `e / other`.
func (e Expr) Div(other Expr) Expr {
	return binaryNumeric(e, other, func(x, y float64) float64 { return x / y }, func(x, y int64) int64 { return x / y })
}

// Mod builds `e % other` (integer modulo).
func (e Expr) Mod(other Expr) Expr {
	return binaryNumeric(e, other, nil, func(x, y int64) int64 { return x % y })
}

func comparison(a, b Expr, cmp func(c int) bool) Expr {
	return Expr{eval: func(ctx *Context) (any, error) {
		av, err := a.Eval(ctx)
		if err != nil {
			return nil, err
		}
		bv, err := b.Eval(ctx)
		if err != nil {
			return nil, err
		}
		af, aerr := asFloat64(av)
		bf, berr := asFloat64(bv)
		if aerr == nil && berr == nil {
			switch {
			case af < bf:
				return cmp(-1), nil
			case af > bf:
				return cmp(1), nil
			default:
				return cmp(0), nil
			}
		}
		return cmp(boolCmp(av, bv)), nil
	}}
}

func boolCmp(a, b any) int {
	if fmt.Sprint(a) == fmt.Sprint(b) {
		return 0
	}
	return 1
}

// Eq builds `e == other`.
func (e Expr) Eq(other Expr) Expr { return comparison(e, other, func(c int) bool { return c == 0 }) }

// Ne builds `e != other`.
func (e Expr) Ne(other Expr) Expr { return comparison(e, other, func(c int) bool { return c != 0 }) }

// Lt builds `e < other`.
func (e Expr) Lt(other Expr) Expr { return comparison(e, other, func(c int) bool { return c < 0 }) }

// Le builds `e <= other`.
func (e Expr) Le(other Expr) Expr { return comparison(e, other, func(c int) bool { return c <= 0 }) }

// Gt builds `e > other`.
func (e Expr) Gt(other Expr) Expr { return comparison(e, other, func(c int) bool { return c > 0 }) }

// Ge builds `e >= other`.
func (e Expr) Ge(other Expr) Expr { return comparison(e, other, func(c int) bool { return c >= 0 }) }

// And builds short-circuit logical and.
func (e Expr) And(other Expr) Expr {
	return Expr{eval: func(ctx *Context) (any, error) {
		av, err := e.Eval(ctx)
		if err != nil {
			return nil, err
		}
		if !truthy(av) {
			return false, nil
		}
		bv, err := other.Eval(ctx)
		if err != nil {
			return nil, err
		}
		return truthy(bv), nil
	}}
}

// Or builds short-circuit logical or.
func (e Expr) Or(other Expr) Expr {
	return Expr{eval: func(ctx *Context) (any, error) {
		av, err := e.Eval(ctx)
		if err != nil {
			return nil, err
		}
		if truthy(av) {
			return true, nil
		}
		bv, err := other.Eval(ctx)
		if err != nil {
			return nil, err
		}
		return truthy(bv), nil
	}}
}

// Not negates e.
func (e Expr) Not() Expr {
	return Expr{eval: func(ctx *Context) (any, error) {
		v, err := e.Eval(ctx)
		if err != nil {
			return nil, err
		}
		return !truthy(v), nil
	}}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case nil:
		return false
	default:
		if i, ok := asInt64(v); ok {
			return i != 0
		}
		return true
	}
}

// resolveExpr evaluates v if it is an Expr, or returns it unchanged
// otherwise, implementing "accepts either a constant or an expression"
// (spec.md 4.2) for every construct parameter that takes either.
func resolveExpr(v any, ctx *Context) (any, error) {
	if e, ok := v.(Expr); ok {
		return e.Eval(ctx)
	}
	return v, nil
}

func resolveInt(v any, ctx *Context) (int64, error) {
	rv, err := resolveExpr(v, ctx)
	if err != nil {
		return 0, err
	}
	i, ok := asInt64(rv)
	if !ok {
		return 0, ErrFormat{Msg: fmt.Sprintf("expected an integer, got %T", rv)}
	}
	return i, nil
}

func resolveBool(v any, ctx *Context) (bool, error) {
	rv, err := resolveExpr(v, ctx)
	if err != nil {
		return false, err
	}
	return truthy(rv), nil
}
