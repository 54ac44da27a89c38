// Command parqinspect is a small inspection CLI over this module's reader
// path: it exercises OpenFile, RowGroupReader and the nested
// reconstruction engine against real files instead of fixtures.
//
// Subcommands:
//
//	parqinspect schema <file>   dump the schema tree
//	parqinspect meta <file>     dump row group / column chunk statistics
//	parqinspect cat <file>      decode every row group and print rows as JSON
//	parqinspect diff <a> <b>    unified diff of two files' schema dumps
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	args := os.Args[2:]
	var err error
	switch os.Args[1] {
	case "schema":
		err = schemaCommand(args)
	case "meta":
		err = metaCommand(args)
	case "cat":
		err = catCommand(args)
	case "diff":
		err = diffCommand(args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		perrorf("%s", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: parqinspect <schema|meta|cat|diff> [flags] <file...>")
}

func perrorf(format string, args ...interface{}) {
	if len(format) == 0 || format[len(format)-1] != '\n' {
		format += "\n"
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
