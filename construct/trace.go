package construct

import "github.com/wireform/wireform/log"

// traceLogger is nil by default: the engine stays silent on the hot
// path (spec.md 5, no background work) unless a caller opts in with
// SetTrace. This is the only place parse/build ever calls into the log
// package.
var traceLogger *log.Logger

// SetTrace installs a logger that receives a debug-level entry each
// time a Struct parses or builds one of its fields, tagged with the
// field's path. Constructs not directly inside a Struct (the top-level
// construct, Array or Sequence elements) get no entry of their own. Pass nil
// to disable. Intended for cmd/wireform's --trace flag, not for
// production parsing of untrusted input at scale.
func SetTrace(l *log.Logger) { traceLogger = l }

func traceParse(path Path, c Construct) {
	if traceLogger == nil {
		return
	}
	traceLogger.Debug(path.String(), "parse", "fixed", c.IsFixedSize())
}

func traceBuild(path Path, c Construct) {
	if traceLogger == nil {
		return
	}
	traceLogger.Debug(path.String(), "build", "fixed", c.IsFixedSize())
}
