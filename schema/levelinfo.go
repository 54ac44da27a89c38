package schema

// LevelInfo anchors a reconstruction frame at some schema node N: the
// definition level at which N's value is present, N's own repetition
// level, and the def level reached just before N's nearest repeated
// ancestor (or N itself, if N is repeated) adds its own repeated bump: a
// def level at or above it means that repeated node's container is
// present, and a def level equal to it means the container is empty.
//
// Invariant: RepeatedAncestorDefLevel <= DefLevel.
type LevelInfo struct {
	DefLevel                 int
	RepLevel                 int
	RepeatedAncestorDefLevel int
}

// LevelInfo computes the reconstruction LevelInfo anchored at n: the
// definition/repetition level accumulated by walking from the schema root
// down through n, inclusive.
//
// For a leaf node this matches the leaf's ColumnDescriptor exactly. For an
// interior list (repeated) node this is the LevelInfo the List reader
// passes to def_rep_to_list_info. For an interior struct (optional
// or required group) node this is the LevelInfo struct reconstruction
// passes to def_to_bitmap or, via Bump, to def_rep_to_bitmap.
func (s *Schema) LevelInfo(n *Node) LevelInfo {
	info, _ := computeLevelInfo(n)
	return info
}

// Bump returns the LevelInfo def_rep_to_bitmap must use in place of a
// struct's own LevelInfo when that struct has a repeated descendant: its
// def_level and rep_level are each raised by one, reusing the list-info
// algorithm's "new list" / "continuation" distinction to mean "new struct
// instance" / "additional descendant entry belonging to the same struct"
//.
func (l LevelInfo) Bump() LevelInfo {
	return LevelInfo{
		DefLevel:                 l.DefLevel + 1,
		RepLevel:                 l.RepLevel + 1,
		RepeatedAncestorDefLevel: l.RepeatedAncestorDefLevel,
	}
}
