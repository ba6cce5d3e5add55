package construct

import "sync"

// configT is the process-wide, pretty-printing tuning knob object
// spec.md 6 calls out ("print-false-flags, print-full-strings,
// print-private-entries — affect pretty representation only"). It is
// isolated into a single struct guarded by a mutex and is never read or
// mutated from inside parse/build, per the design note in spec.md 9:
// these flags only affect how an external formatter renders a Record
// or List, never the wire semantics.
type configT struct {
	mu sync.RWMutex

	printFalseFlags    bool
	printFullStrings   bool
	printPrivateEntries bool
}

var globalConfig configT

// SetPrintFalseFlags controls whether a FlagsValue's false entries are
// included by an external formatter.
func SetPrintFalseFlags(v bool) {
	globalConfig.mu.Lock()
	defer globalConfig.mu.Unlock()
	globalConfig.printFalseFlags = v
}

// PrintFalseFlags reports the current setting.
func PrintFalseFlags() bool {
	globalConfig.mu.RLock()
	defer globalConfig.mu.RUnlock()
	return globalConfig.printFalseFlags
}

// SetPrintFullStrings controls whether long strings are elided by an
// external formatter.
func SetPrintFullStrings(v bool) {
	globalConfig.mu.Lock()
	defer globalConfig.mu.Unlock()
	globalConfig.printFullStrings = v
}

// PrintFullStrings reports the current setting.
func PrintFullStrings() bool {
	globalConfig.mu.RLock()
	defer globalConfig.mu.RUnlock()
	return globalConfig.printFullStrings
}

// SetPrintPrivateEntries controls whether underscore-prefixed context
// entries are included by an external formatter.
func SetPrintPrivateEntries(v bool) {
	globalConfig.mu.Lock()
	defer globalConfig.mu.Unlock()
	globalConfig.printPrivateEntries = v
}

// PrintPrivateEntries reports the current setting.
func PrintPrivateEntries() bool {
	globalConfig.mu.RLock()
	defer globalConfig.mu.RUnlock()
	return globalConfig.printPrivateEntries
}
