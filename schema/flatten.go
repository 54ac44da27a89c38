package schema

import "github.com/parquetcore/parquet-go/format"

// Flatten serializes a Schema back into the depth-first pre-order sequence
// of format.SchemaElement values New builds from, mirroring builder.build
// over the fields a Node keeps (name, repetition, physical type and length,
// child count). Leaf converted/logical types and any other SchemaElement
// field a Node does not hold are not carried, and every LIST or MAP group
// gets both its converted and its logical type. A file writer assembles a Schema the same way a reader
// would (schema.New against a hand-built element list, or via a fixture
// helper) and flattens it once at Close to populate FileMetaData.Schema.
func Flatten(s *Schema) []format.SchemaElement {
	var out []format.SchemaElement
	flattenNode(s.Root, &out)
	return out
}

func flattenNode(n *Node, out *[]format.SchemaElement) {
	e := format.SchemaElement{Name: n.Name}
	if n.Parent != nil {
		rep := n.Repetition
		e.RepetitionType = &rep
	}

	if n.Kind == Leaf {
		typ := n.Type
		e.Type = &typ
		if n.TypeLength != 0 {
			length := n.TypeLength
			e.TypeLength = &length
		}
		*out = append(*out, e)
		return
	}

	numChildren := int32(len(n.Children))
	e.NumChildren = &numChildren
	switch n.Logical {
	case ListGroup:
		converted := format.List
		e.ConvertedType = &converted
		e.LogicalType = &format.LogicalType{List: &format.ListType{}}
	case MapGroup:
		converted := format.Map
		e.ConvertedType = &converted
		e.LogicalType = &format.LogicalType{Map: &format.MapType{}}
	}
	*out = append(*out, e)
	for _, c := range n.Children {
		flattenNode(c, out)
	}
}
