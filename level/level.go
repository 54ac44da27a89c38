// Package level implements the three pure level algorithms the nested
// reconstruction engine composes to turn definition/repetition level
// streams into offsets and validity bitmaps: DefRepToListInfo,
// DefRepToBitmap, and DefToBitmap.
package level

import (
	"fmt"

	"github.com/parquetcore/parquet-go/schema"
)

// InternalError reports an invariant violation detected by a level
// algorithm: a contract break the caller (decoder or reader) cannot
// recover from, such as an input that would exceed the bounded output
// limit or an i32 offset overflow.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal error: " + e.Msg }

// ValidityOutput is the result of a level algorithm run: the validity bit
// per logical slot produced at the reconstruction frame, the count of
// slots read, and how many of those were NULL.
type ValidityOutput struct {
	ValidBits []bool
	ValuesRead int
	NullCount int
}

// DefRepToListInfo is the core list-reconstruction algorithm. It
// consumes parallel def/rep level arrays and, for the frame described by
// info, appends to offsets (when non-nil) one cumulative end offset per slot
// and always populates a ValidityOutput with one entry per logical slot at
// this frame.
//
// offsets is appended to in place: its initial length and last value (or 0
// if empty) are the starting point new offsets are pushed relative to.
// valuesReadUpperBound bounds the number of validity slots this call may
// produce; exceeding it signals corrupted input.
func DefRepToListInfo(defLevels, repLevels []int32, info schema.LevelInfo, offsets *[]int32, valuesReadUpperBound int) (ValidityOutput, error) {
	if len(defLevels) != len(repLevels) {
		return ValidityOutput{}, &InternalError{Msg: fmt.Sprintf("definition level count %d does not match repetition level count %d", len(defLevels), len(repLevels))}
	}

	var out ValidityOutput

	last := func() int32 {
		if offsets == nil || len(*offsets) == 0 {
			return 0
		}
		return (*offsets)[len(*offsets)-1]
	}
	bump := func(delta int32) error {
		if offsets == nil {
			return nil
		}
		v := last() + delta
		if v < (*offsets)[len(*offsets)-1] {
			return &InternalError{Msg: "offset overflowed int32"}
		}
		(*offsets)[len(*offsets)-1] = v
		return nil
	}
	push := func(v int32) {
		if offsets != nil {
			*offsets = append(*offsets, v)
		}
	}

	for i := range defLevels {
		def, rep := defLevels[i], repLevels[i]

		switch {
		case rep > int32(info.RepLevel):
			// belongs to a deeper repeated descendant; not this frame's
			// concern

		case rep == int32(info.RepLevel):
			// continuation of the current list
			if out.ValuesRead == 0 {
				return ValidityOutput{}, &InternalError{Msg: "continuation level pair with no preceding list start"}
			}
			if def >= int32(info.RepeatedAncestorDefLevel) {
				if err := bump(1); err != nil {
					return ValidityOutput{}, err
				}
			}

		default: // rep < info.RepLevel: start of a new list at this level
			if out.ValuesRead >= valuesReadUpperBound {
				return ValidityOutput{}, &InternalError{Msg: "values_read_upper_bound exceeded"}
			}
			push(last())

			valid := def >= int32(info.DefLevel)-1
			out.ValidBits = append(out.ValidBits, valid)
			if !valid {
				out.NullCount++
			}
			out.ValuesRead++

			if def >= int32(info.DefLevel) {
				if err := bump(1); err != nil {
					return ValidityOutput{}, err
				}
			}
		}
	}

	return out, nil
}

// DefRepToBitmap computes struct validity when the struct has a repeated
// descendant: it must consult rep levels to avoid double-counting
// descendant entries as separate struct instances. It delegates to
// DefRepToListInfo with no offsets output and info.Bump() in place of the
// struct's own LevelInfo.
func DefRepToBitmap(defLevels, repLevels []int32, info schema.LevelInfo, valuesReadUpperBound int) (ValidityOutput, error) {
	return DefRepToListInfo(defLevels, repLevels, info.Bump(), nil, valuesReadUpperBound)
}

// DefToBitmap computes struct validity when no repeated descendant exists,
// or leaf nullability for non-nested optional scalars. rep_levels
// are not consulted: a column with no repeated ancestor need not even
// decode them.
func DefToBitmap(defLevels []int32, info schema.LevelInfo) ValidityOutput {
	out := ValidityOutput{
		ValidBits:  make([]bool, len(defLevels)),
		ValuesRead: len(defLevels),
	}
	for i, def := range defLevels {
		valid := def >= int32(info.DefLevel)
		out.ValidBits[i] = valid
		if !valid {
			out.NullCount++
		}
	}
	return out
}
