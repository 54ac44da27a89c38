package main

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// diffCommand reports a unified diff of two files' schema dumps, useful
// for spotting schema drift between, say, two runs of the same producer.
func diffCommand(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: parqinspect diff <a.parquet> <b.parquet>")
	}

	fa, fra, err := openParquetFile(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer fa.Close()

	fb, frb, err := openParquetFile(args[1])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[1], err)
	}
	defer fb.Close()

	dumpA := dumpSchema(fra.Schema())
	dumpB := dumpSchema(frb.Schema())

	if dumpA == dumpB {
		fmt.Println("schemas are identical")
		return nil
	}

	edits := myers.ComputeEdits(span.URIFromPath(args[0]), dumpA, dumpB)
	diff := gotextdiff.ToUnified(args[0], args[1], dumpA, edits)
	fmt.Print(diff)
	return nil
}
