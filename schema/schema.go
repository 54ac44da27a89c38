// Package schema builds the schema tree from a flat, depth-first sequence
// of format.SchemaElement values and derives the per-leaf level metadata
// (ColumnDescriptor, LevelInfo) the reconstruction engine is anchored on.
package schema

import (
	"fmt"
	"strings"

	"github.com/parquetcore/parquet-go/format"
)

// Kind distinguishes leaf nodes (carrying a physical type) from group nodes
// (carrying children).
type Kind int

const (
	Group Kind = iota
	Leaf
)

// LogicalGroup tags a group node's recognized logical shape. Recognition is
// structural (child count and repetition), not name-based: the reference
// implementations are known to use name variants such as "array" or "bag"
// for the repeated child of a LIST, so this module never keys off names.
type LogicalGroup int

const (
	PlainGroup LogicalGroup = iota
	ListGroup
	MapGroup
)

// Node is one element of the schema tree.
type Node struct {
	Name           string
	Kind           Kind
	Repetition     format.FieldRepetitionType
	Type           format.Type
	TypeLength     int32
	Logical        LogicalGroup
	Children       []*Node
	Parent         *Node

	// column is set only on leaf nodes, lazily populated by Schema.Column.
	column *ColumnDescriptor
}

func (n *Node) Required() bool { return n.Repetition == format.Required }
func (n *Node) Optional() bool { return n.Repetition == format.Optional }
func (n *Node) Repeated() bool { return n.Repetition == format.Repeated }

// Path returns the dot-separated path from the schema root to n, excluding
// the root element itself.
func (n *Node) Path() []string {
	if n.Parent == nil {
		return nil
	}
	return append(n.Parent.Path(), n.Name)
}

func (n *Node) String() string {
	return strings.Join(n.Path(), ".")
}

// HasRepeatedDescendant reports whether any node in n's subtree (n itself
// included) carries repeated repetition. Struct reconstruction uses this to
// decide between def_to_bitmap and def_rep_to_bitmap.
func (n *Node) HasRepeatedDescendant() bool {
	if n.Repeated() {
		return true
	}
	for _, c := range n.Children {
		if c.HasRepeatedDescendant() {
			return true
		}
	}
	return false
}

// Leaves appends every leaf descendant of n, in depth-first order, to dst.
func (n *Node) Leaves(dst []*Node) []*Node {
	if n.Kind == Leaf {
		return append(dst, n)
	}
	for _, c := range n.Children {
		dst = c.Leaves(dst)
	}
	return dst
}

// RepresentativeLeaf picks the leaf descendant used as the level source
// when reconstructing n: among n's children it prefers one with no
// repeated descendant of its own (the simple case), falling back to the
// first child otherwise, and recurses until a leaf is reached.
func (n *Node) RepresentativeLeaf() *Node {
	for n.Kind != Leaf {
		next := n.Children[0]
		for _, c := range n.Children {
			if !c.HasRepeatedDescendant() {
				next = c
				break
			}
		}
		n = next
	}
	return n
}

// ColumnDescriptor is a leaf node plus the per-path level metadata derived
// once at schema construction time.
type ColumnDescriptor struct {
	Node *Node
	Path []string

	MaxDefinitionLevel int
	MaxRepetitionLevel int

	// RepeatedAncestorDefLevels holds one entry per repeated ancestor,
	// counted from the root (index k-1 for the k-th): the definition level
	// reached just before that ancestor's own repeated bump. A def level
	// equal to it marks that ancestor as present with no element (1 for an
	// optional list, where def 1 is the empty list).
	RepeatedAncestorDefLevels []int

	// RepeatedAncestorDefLevel is RepeatedAncestorDefLevels' last entry
	// (the innermost repeated ancestor), used by the primary leaf decoder.
	// Zero when MaxRepetitionLevel == 0.
	RepeatedAncestorDefLevel int
}

// SchemaError reports a malformed schema discovered at build time.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return "schema: " + e.Msg }

// Schema is the immutable, parsed schema tree plus its leaf index.
type Schema struct {
	Root   *Node
	leaves []*Node
}

// New builds a Schema from a depth-first pre-order sequence of schema
// elements, as produced by a Thrift-decoded format.FileMetaData.Schema.
func New(elements []format.SchemaElement) (*Schema, error) {
	if len(elements) == 0 {
		return nil, &SchemaError{Msg: "empty schema"}
	}

	b := &builder{elements: elements}
	root, err := b.build(nil)
	if err != nil {
		return nil, err
	}
	if b.pos != len(elements) {
		return nil, &SchemaError{Msg: fmt.Sprintf("%d trailing schema elements not consumed", len(elements)-b.pos)}
	}

	s := &Schema{Root: root}
	s.leaves = root.Leaves(nil)
	for _, leaf := range s.leaves {
		leaf.column = deriveColumnDescriptor(leaf)
	}
	return s, nil
}

// Leaves returns every leaf column in depth-first order.
func (s *Schema) Leaves() []*Node { return s.leaves }

// Column returns the derived ColumnDescriptor for a leaf node. Panics if n
// is not a leaf belonging to this schema; callers only ever pass nodes
// obtained from this Schema.
func (s *Schema) Column(n *Node) *ColumnDescriptor {
	if n.column == nil {
		panic("schema: Column called on a non-leaf node")
	}
	return n.column
}

// Lookup finds the node at the given dotted path, relative to the root.
func (s *Schema) Lookup(path ...string) (*Node, error) {
	n := s.Root
	for _, name := range path {
		child := findChild(n, name)
		if child == nil {
			return nil, &SchemaError{Msg: fmt.Sprintf("no such field %q under %q", name, n)}
		}
		n = child
	}
	return n, nil
}

func findChild(n *Node, name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type builder struct {
	elements []format.SchemaElement
	pos      int
}

func (b *builder) build(parent *Node) (*Node, error) {
	if b.pos >= len(b.elements) {
		return nil, &SchemaError{Msg: "schema element sequence truncated"}
	}
	e := &b.elements[b.pos]
	b.pos++

	n := &Node{
		Name:       e.Name,
		Repetition: e.GetRepetitionType(),
		Parent:     parent,
	}
	if parent == nil {
		// the root element's own repetition is not meaningful; treat it as
		// required so level derivation never attributes a def/rep bump to
		// it regardless of what the footer happened to record
		n.Repetition = format.Required
	}

	if e.IsLeaf() {
		n.Kind = Leaf
		if e.Type == nil {
			return nil, &SchemaError{Msg: fmt.Sprintf("leaf field %q missing physical type", e.Name)}
		}
		n.Type = *e.Type
		if e.TypeLength != nil {
			n.TypeLength = *e.TypeLength
		}
		return n, nil
	}

	n.Kind = Group
	numChildren := int(e.GetNumChildren())
	for i := 0; i < numChildren; i++ {
		child, err := b.build(n)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}

	n.Logical = recognizeLogicalGroup(e, n)
	return n, nil
}

// recognizeLogicalGroup identifies LIST and MAP group shapes structurally:
// a single repeated child group, itself holding either one child (LIST's
// element) or exactly two required/optional children (MAP's key and value).
// The legacy ConvertedType/modern LogicalType annotation is consulted first
// when present, but the structural shape is what ultimately governs
// reconstruction since name variants (array, bag, key_value, ...) are not
// reliable across producers.
func recognizeLogicalGroup(e *format.SchemaElement, n *Node) LogicalGroup {
	annotated := annotatedLogicalGroup(e)

	if len(n.Children) != 1 || !n.Children[0].Repeated() {
		return PlainGroup
	}
	mid := n.Children[0]

	switch len(mid.Children) {
	case 1:
		if annotated == MapGroup {
			return PlainGroup
		}
		return ListGroup
	case 2:
		if annotated == ListGroup {
			return PlainGroup
		}
		return MapGroup
	default:
		return PlainGroup
	}
}

func annotatedLogicalGroup(e *format.SchemaElement) LogicalGroup {
	if e.LogicalType != nil {
		switch {
		case e.LogicalType.List != nil:
			return ListGroup
		case e.LogicalType.Map != nil:
			return MapGroup
		}
	}
	if e.ConvertedType != nil {
		switch *e.ConvertedType {
		case format.List:
			return ListGroup
		case format.Map, format.MapKeyValue:
			return MapGroup
		}
	}
	return PlainGroup
}

// deriveColumnDescriptor walks from the schema root to leaf, tracking the
// running definition and repetition level. A repeated ancestor's
// recorded def level is the value accumulated from its own ancestors, not
// including its own bump: that is the def level at which the repeated
// ancestor's container is reached but not yet known to hold any element,
// the threshold the level algorithms use to tell "ancestor empty or
// absent" from "ancestor holds at least this entry".
func deriveColumnDescriptor(leaf *Node) *ColumnDescriptor {
	info, repeatedAncestorDefLevels := computeLevelInfo(leaf)

	return &ColumnDescriptor{
		Node:                      leaf,
		Path:                      leaf.Path(),
		MaxDefinitionLevel:        info.DefLevel,
		MaxRepetitionLevel:        info.RepLevel,
		RepeatedAncestorDefLevels: repeatedAncestorDefLevels,
		RepeatedAncestorDefLevel:  info.RepeatedAncestorDefLevel,
	}
}

// chainFromRoot returns n's ancestors in root-to-n order, the root itself
// excluded.
func chainFromRoot(n *Node) []*Node {
	var chain []*Node
	for c := n; c.Parent != nil; c = c.Parent {
		chain = append(chain, c)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// computeLevelInfo walks root to n (n included) accumulating the running
// definition/repetition level, and returns the LevelInfo
// that governs reconstruction anchored at n, plus the full list of
// repeated-ancestor def levels crossed along the way (one per repeated
// ancestor, in root-to-leaf order).
func computeLevelInfo(n *Node) (LevelInfo, []int) {
	curDef, curRep := 0, 0
	var repeatedAncestorDefLevels []int

	for _, a := range chainFromRoot(n) {
		switch {
		case a.Repeated():
			repeatedAncestorDefLevels = append(repeatedAncestorDefLevels, curDef)
			curDef++
			curRep++
		case a.Optional():
			curDef++
		}
	}

	info := LevelInfo{DefLevel: curDef, RepLevel: curRep}
	if k := len(repeatedAncestorDefLevels); k > 0 {
		info.RepeatedAncestorDefLevel = repeatedAncestorDefLevels[k-1]
	}
	return info, repeatedAncestorDefLevels
}
