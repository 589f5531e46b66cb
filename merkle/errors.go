package merkle

import "fmt"

// ProgrammerError marks a condition the tree engine treats as a coding
// error rather than recoverable input: capacity exhaustion, an
// out-of-range arena index, or an arena invariant violated during a
// rehash walk. The engine panics with a ProgrammerError value; a host
// that wants to recover must do so explicitly with recover().
type ProgrammerError struct {
	Op  string
	Msg string
}

func (e ProgrammerError) Error() string {
	return fmt.Sprintf("merkle: %s: %s", e.Op, e.Msg)
}

func panicf(op, format string, args ...any) {
	panic(ProgrammerError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
