package main

import (
	"flag"
	"io"
)

// newFlagSet builds a flag.FlagSet that stays silent on parse errors:
// main reports them itself via perrorf.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
