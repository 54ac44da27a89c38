package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/parquetcore/parquet-go/schema"
)

func schemaCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: parqinspect schema <file>")
	}

	f, fr, err := openParquetFile(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	printSchema(os.Stdout, fr.Schema())
	return nil
}

// printSchema renders the leaf columns of sch as a table: dotted path,
// physical type, repetition kind and the derived levels the reconstruction
// engine anchors on for that leaf.
func printSchema(w io.Writer, sch *schema.Schema) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"path", "type", "repetition", "max def", "max rep"})

	for _, leaf := range sch.Leaves() {
		desc := sch.Column(leaf)
		table.Append([]string{
			strings.Join(desc.Path, "."),
			leaf.Type.String(),
			leaf.Repetition.String(),
			fmt.Sprint(desc.MaxDefinitionLevel),
			fmt.Sprint(desc.MaxRepetitionLevel),
		})
	}
	table.Render()
}

// dumpSchema renders the same information as printSchema into a string,
// used by diffCommand to compare two files' schemas textually.
func dumpSchema(sch *schema.Schema) string {
	var b strings.Builder
	for _, leaf := range sch.Leaves() {
		desc := sch.Column(leaf)
		fmt.Fprintf(&b, "%s %s %s def=%d rep=%d\n",
			strings.Join(desc.Path, "."), leaf.Type, leaf.Repetition,
			desc.MaxDefinitionLevel, desc.MaxRepetitionLevel)
	}
	return b.String()
}
