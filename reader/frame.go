package reader

import "github.com/parquetcore/parquet-go/schema"

// ancestorsAbove returns n's repeated ancestors, root to n order, n itself
// excluded. It is the filtering chain a node's own frame array is derived
// from: one bumpMask pass per entry, applied in order, isolates "one
// position per occurrence of n's nearest enclosing repeated ancestor" out
// of a representative leaf's full column-wide level streams.
func ancestorsAbove(n *schema.Node) []*schema.Node {
	var chain []*schema.Node
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Repeated() {
			chain = append(chain, p)
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// bumpMask reproduces level.DefRepToListInfo's new/continuation bump
// predicate as a keep-mask instead of an offsets mutation: mask[i]
// is true exactly when position i lies inside a real occurrence of the
// repeated node info is anchored at. Non-bumping new/continuation positions
// (an absent or exhausted container) are dropped. Positions at a deeper
// repetition level are kept: they continue an occurrence that has already
// been admitted, and the next, deeper filter is the one responsible for
// judging them.
func bumpMask(defLevels, repLevels []int32, info schema.LevelInfo) []bool {
	mask := make([]bool, len(defLevels))
	for i := range defLevels {
		def, rep := defLevels[i], repLevels[i]
		switch {
		case rep > int32(info.RepLevel):
			mask[i] = true
		case rep == int32(info.RepLevel):
			if def >= int32(info.RepeatedAncestorDefLevel) {
				mask[i] = true
			}
		default:
			if def >= int32(info.DefLevel) {
				mask[i] = true
			}
		}
	}
	return mask
}

// frame is one node's scoped view of a representative leaf's level
// streams: the def/rep levels and dense-value indices surviving every
// ancestorsAbove filter, in original order. Its length is the number of
// occurrences of the node's nearest enclosing repeated ancestor (or the
// row count, if it has none).
type frame struct {
	defLevels []int32
	repLevels []int32
	denseIdx  []int32
}

// frameFor narrows ls (a representative leaf's full column-wide streams)
// down to n's frame by applying one bumpMask filter per repeated ancestor
// strictly above n, in root-to-n order.
func frameFor(sch *schema.Schema, ls *leafStream, n *schema.Node) frame {
	def, rep, idx := ls.defLevels, ls.repLevels, ls.denseIdx
	for _, a := range ancestorsAbove(n) {
		mask := bumpMask(def, rep, sch.LevelInfo(a))
		def, rep, idx = filterTriple(def, rep, idx, mask)
	}
	return frame{defLevels: def, repLevels: rep, denseIdx: idx}
}

func filterTriple(def, rep, idx []int32, mask []bool) (fdef, frep, fidx []int32) {
	fdef = make([]int32, 0, len(def))
	frep = make([]int32, 0, len(rep))
	fidx = make([]int32, 0, len(idx))
	for i, keep := range mask {
		if keep {
			fdef = append(fdef, def[i])
			frep = append(frep, rep[i])
			fidx = append(fidx, idx[i])
		}
	}
	return fdef, frep, fidx
}
