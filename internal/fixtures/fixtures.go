// Package fixtures builds small, hand-assembled schemas and logical row
// trees covering the nested reconstruction scenarios shared by the reader
// and writer test suites.
package fixtures

import (
	"github.com/parquetcore/parquet-go/format"
	"github.com/parquetcore/parquet-go/reader"
	"github.com/parquetcore/parquet-go/schema"
)

type Value = reader.Value
type MapEntry = reader.MapEntry

func ptrType(t format.Type) *format.Type { return &t }
func ptrRep(r format.FieldRepetitionType) *format.FieldRepetitionType {
	return &r
}
func ptrInt32(n int32) *int32 { return &n }
func ptrConverted(c format.ConvertedType) *format.ConvertedType { return &c }

func leaf(name string, rep format.FieldRepetitionType, t format.Type) format.SchemaElement {
	return format.SchemaElement{Name: name, RepetitionType: ptrRep(rep), Type: ptrType(t)}
}

func group(name string, rep format.FieldRepetitionType, numChildren int32) format.SchemaElement {
	return format.SchemaElement{Name: name, RepetitionType: ptrRep(rep), NumChildren: ptrInt32(numChildren)}
}

func listGroup(name string, rep format.FieldRepetitionType, elements ...format.SchemaElement) []format.SchemaElement {
	out := []format.SchemaElement{group(name, rep, 1)}
	out[0].ConvertedType = ptrConverted(format.List)
	out = append(out, group("list", format.Repeated, 1))
	out = append(out, elements...)
	return out
}

func mapGroup(name string, rep format.FieldRepetitionType, keyType format.Type, valueRep format.FieldRepetitionType, valueType format.Type) []format.SchemaElement {
	root := group(name, rep, 1)
	root.ConvertedType = ptrConverted(format.Map)
	return []format.SchemaElement{
		root,
		group("key_value", format.Repeated, 2),
		leaf("key", format.Required, keyType),
		leaf("value", valueRep, valueType),
	}
}

func build(fields ...[]format.SchemaElement) *schema.Schema {
	var n int32
	for range fields {
		n++
	}
	elements := []format.SchemaElement{group("schema", format.Required, n)}
	for _, f := range fields {
		elements = append(elements, f...)
	}
	sch, err := schema.New(elements)
	if err != nil {
		panic(err)
	}
	return sch
}

// ListInt32Schema builds the schema optional list<int32>.
func ListInt32Schema() *schema.Schema {
	return build(listGroup("values", format.Optional, leaf("element", format.Required, format.Int32)))
}

// SingleLevelListRows returns list rows covering every single-level shape:
// [Some([1,2]), None, Some([]), Some([3])].
func SingleLevelListRows() []Value {
	ints := func(vs ...int32) []Value {
		out := make([]Value, len(vs))
		for i, v := range vs {
			out[i] = Value{Kind: reader.Scalar, Scalar: v}
		}
		return out
	}
	return []Value{
		{Kind: reader.List, Elements: ints(1, 2)},
		{Kind: reader.Null},
		{Kind: reader.List, Elements: ints()},
		{Kind: reader.List, Elements: ints(3)},
	}
}

// NestedListInt32Schema builds the schema optional list<list<int32>>.
func NestedListInt32Schema() *schema.Schema {
	return build(listGroup("values", format.Optional,
		listGroup("element", format.Optional, leaf("element", format.Required, format.Int32))...,
	))
}

// NestedListRows returns two-level nested list rows:
// [Some([Some([1,2]), Some([3])]), Some([Some([4])])].
func NestedListRows() []Value {
	innerList := func(vs ...int32) Value {
		elems := make([]Value, len(vs))
		for i, v := range vs {
			elems[i] = Value{Kind: reader.Scalar, Scalar: v}
		}
		return Value{Kind: reader.List, Elements: elems}
	}
	return []Value{
		{Kind: reader.List, Elements: []Value{innerList(1, 2), innerList(3)}},
		{Kind: reader.List, Elements: []Value{innerList(4)}},
	}
}

// MapStringInt64Schema builds the schema optional map<string,int64>.
func MapStringInt64Schema() *schema.Schema {
	return build(mapGroup("attrs", format.Optional, format.ByteArray, format.Optional, format.Int64))
}

// MapWithNullValueRows returns a single map row holding a NULL value:
// Some([("x",Some(10)),("y",None)]).
func MapWithNullValueRows() []Value {
	return []Value{
		{Kind: reader.Map, Entries: []MapEntry{
			{Key: Value{Kind: reader.Scalar, Scalar: []byte("x")}, Value: Value{Kind: reader.Scalar, Scalar: int64(10)}},
			{Key: Value{Kind: reader.Scalar, Scalar: []byte("y")}, Value: Value{Kind: reader.Null}},
		}},
	}
}

// StructOptionalSchema builds the schema
// optional struct{ name:string?; age:int32? }.
func StructOptionalSchema() *schema.Schema {
	return build([]format.SchemaElement{
		group("s", format.Optional, 2),
		leaf("name", format.Optional, format.ByteArray),
		leaf("age", format.Optional, format.Int32),
	})
}

// OptionalStructRows returns struct rows mixing present, partially-NULL and
// NULL structs:
// [Some{name:Some("Alice"), age:Some(30)}, Some{name:None, age:Some(25)}, None].
func OptionalStructRows() []Value {
	return []Value{
		{Kind: reader.Struct, Fields: map[string]Value{
			"name": {Kind: reader.Scalar, Scalar: []byte("Alice")},
			"age":  {Kind: reader.Scalar, Scalar: int32(30)},
		}},
		{Kind: reader.Struct, Fields: map[string]Value{
			"name": {Kind: reader.Null},
			"age":  {Kind: reader.Scalar, Scalar: int32(25)},
		}},
		{Kind: reader.Null},
	}
}

// StructWithMapSchema builds the schema
// optional struct{ id:int32; attrs:map<string,int64> }.
func StructWithMapSchema() *schema.Schema {
	fields := []format.SchemaElement{
		group("s", format.Optional, 2),
		leaf("id", format.Required, format.Int32),
	}
	fields = append(fields, mapGroup("attrs", format.Optional, format.ByteArray, format.Optional, format.Int64)...)
	return build(fields)
}

// StructWithMapRows returns struct rows whose map field covers the filled,
// empty, absent and NULL-valued cases:
// Some{id:1, attrs:[("a",1),("b",2)]}; Some{id:2, attrs:[]};
// None; Some{id:4, attrs:[("k",None)]}.
func StructWithMapRows() []Value {
	entry := func(k string, v *int64) MapEntry {
		val := Value{Kind: reader.Null}
		if v != nil {
			val = Value{Kind: reader.Scalar, Scalar: *v}
		}
		return MapEntry{Key: Value{Kind: reader.Scalar, Scalar: []byte(k)}, Value: val}
	}
	i := func(n int64) *int64 { return &n }
	return []Value{
		{Kind: reader.Struct, Fields: map[string]Value{
			"id":    {Kind: reader.Scalar, Scalar: int32(1)},
			"attrs": {Kind: reader.Map, Entries: []MapEntry{entry("a", i(1)), entry("b", i(2))}},
		}},
		{Kind: reader.Struct, Fields: map[string]Value{
			"id":    {Kind: reader.Scalar, Scalar: int32(2)},
			"attrs": {Kind: reader.Map, Entries: nil},
		}},
		{Kind: reader.Null},
		{Kind: reader.Struct, Fields: map[string]Value{
			"id":    {Kind: reader.Scalar, Scalar: int32(4)},
			"attrs": {Kind: reader.Map, Entries: []MapEntry{entry("k", nil)}},
		}},
	}
}

// DoubleColumnSchema builds a schema holding a single optional double column.
func DoubleColumnSchema() *schema.Schema {
	return build([]format.SchemaElement{leaf("value", format.Optional, format.Double)})
}

// DoubleStatsRows returns double rows mixing values, NULLs and a NaN:
// [Some(5), None, Some(3), Some(NaN), Some(8), None].
func DoubleStatsRows(nan float64) []Value {
	d := func(v float64) Value { return Value{Kind: reader.Scalar, Scalar: v} }
	return []Value{d(5), {Kind: reader.Null}, d(3), d(nan), d(8), {Kind: reader.Null}}
}
