package main

import (
	"flag"
)

// flagSet wraps flag.FlagSet to add support for repeatable string flags
// (the -commit flag may be given more than once).
type flagSet struct {
	*flag.FlagSet
}

// newCustomFlagSet creates a flagSet with ContinueOnError behavior.
func newCustomFlagSet(name string) *flagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &flagSet{FlagSet: fs}
}

// hexListVar binds a repeatable hex-string flag to dst, appending one
// element to it per occurrence of the flag on the command line.
func (fs *flagSet) hexListVar(dst *[]string, name, usage string) {
	fs.FlagSet.Var(&hexListValue{dst: dst}, name, usage)
}

// hexListValue implements flag.Value by appending each Set call's value
// to the bound slice instead of overwriting it.
type hexListValue struct {
	dst *[]string
}

func (v *hexListValue) String() string {
	if v.dst == nil {
		return ""
	}
	return ""
}

func (v *hexListValue) Set(s string) error {
	*v.dst = append(*v.dst, s)
	return nil
}
