package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/parquetcore/parquet-go/format"
)

func metaCommand(args []string) error {
	fs := newFlagSet("meta")
	tag := fs.Bool("tag", false, "prefix the report with a synthetic run identifier")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: parqinspect meta [--tag] <file>")
	}

	f, fr, err := openParquetFile(rest[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", rest[0], err)
	}
	defer f.Close()

	if *tag {
		fmt.Printf("run %s\n", uuid.New())
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"row group", "column", "values", "nulls", "compressed", "uncompressed", "codec", "min", "max"})

	for i := 0; i < fr.NumRowGroups(); i++ {
		rg, err := fr.RowGroup(i)
		if err != nil {
			return err
		}
		for _, leaf := range fr.Schema().Leaves() {
			path := fr.Schema().Column(leaf).Path
			meta, err := rg.ColumnMetaData(path...)
			if err != nil {
				return err
			}
			table.Append([]string{
				fmt.Sprint(i),
				strings.Join(path, "."),
				fmt.Sprint(meta.NumValues),
				fmt.Sprint(nullCount(meta)),
				fmt.Sprint(meta.TotalCompressedSize),
				fmt.Sprint(meta.TotalUncompressedSize),
				meta.Codec.String(),
				minStat(meta, leaf.Type),
				maxStat(meta, leaf.Type),
			})
		}
	}
	table.Render()
	return nil
}

func nullCount(meta *format.ColumnMetaData) int64 {
	if meta.Statistics == nil || meta.Statistics.NullCount == nil {
		return 0
	}
	return *meta.Statistics.NullCount
}

func minStat(meta *format.ColumnMetaData, t format.Type) string {
	if meta.Statistics == nil || meta.Statistics.MinValue == nil {
		return "-"
	}
	return formatStatBytes(meta.Statistics.MinValue, t)
}

func maxStat(meta *format.ColumnMetaData, t format.Type) string {
	if meta.Statistics == nil || meta.Statistics.MaxValue == nil {
		return "-"
	}
	return formatStatBytes(meta.Statistics.MaxValue, t)
}

// formatStatBytes renders a PLAIN-encoded min/max bound for display: byte
// arrays print as UTF-8 text (the common case for string columns), every
// other physical type prints its raw PLAIN bytes as 0x-prefixed hex, since
// the CLI does not carry
// its own PLAIN decoder independent of the one in package encoding/plain.
func formatStatBytes(b []byte, t format.Type) string {
	if t == format.ByteArray {
		return string(b)
	}
	return fmt.Sprintf("0x%x", b)
}
