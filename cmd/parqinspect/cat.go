package main

import (
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"

	"github.com/parquetcore/parquet-go/reader"
)

func catCommand(args []string) error {
	fs := newFlagSet("cat")
	limit := fs.Int("limit", -1, "stop after printing this many rows (-1: no limit)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: parqinspect cat [--limit n] <file>")
	}

	f, fr, err := openParquetFile(rest[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", rest[0], err)
	}
	defer f.Close()

	enc := json.NewEncoder(os.Stdout)
	printed := 0

	for i := 0; i < fr.NumRowGroups(); i++ {
		if *limit >= 0 && printed >= *limit {
			break
		}
		rg, err := fr.RowGroup(i)
		if err != nil {
			return err
		}
		fields, err := rg.ReadAll()
		if err != nil {
			return fmt.Errorf("row group %d: %w", i, err)
		}

		numRows := int(rg.NumRows())
		for row := 0; row < numRows; row++ {
			if *limit >= 0 && printed >= *limit {
				break
			}
			record := make(map[string]any, len(fields))
			for name, values := range fields {
				record[name] = jsonValue(values[row])
			}
			if err := enc.Encode(record); err != nil {
				return err
			}
			printed++
		}
	}
	return nil
}

// jsonValue converts a reassembled reader.Value into a plain Go value
// encoding/json (or its segmentio drop-in) can marshal directly. Map
// entries are rendered as an ordered array of {"key","value"} objects
// rather than a native JSON object, since Parquet map keys may be of any
// primitive type and JSON object keys must be strings.
func jsonValue(v reader.Value) any {
	switch v.Kind {
	case reader.Null:
		return nil
	case reader.Scalar:
		if b, ok := v.Scalar.([]byte); ok {
			return string(b)
		}
		return v.Scalar
	case reader.List:
		out := make([]any, len(v.Elements))
		for i, e := range v.Elements {
			out[i] = jsonValue(e)
		}
		return out
	case reader.Struct:
		out := make(map[string]any, len(v.Fields))
		for name, fv := range v.Fields {
			out[name] = jsonValue(fv)
		}
		return out
	case reader.Map:
		out := make([]map[string]any, len(v.Entries))
		for i, e := range v.Entries {
			out[i] = map[string]any{"key": jsonValue(e.Key), "value": jsonValue(e.Value)}
		}
		return out
	default:
		return nil
	}
}
