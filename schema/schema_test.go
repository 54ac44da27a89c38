package schema_test

import (
	"testing"

	"github.com/parquetcore/parquet-go/format"
	"github.com/parquetcore/parquet-go/schema"
)

func ptr[T any](v T) *T { return &v }

func numChildren(n int32) *int32 { return &n }

func repType(r format.FieldRepetitionType) *format.FieldRepetitionType { return &r }

func listSchema() []format.SchemaElement {
	return []format.SchemaElement{
		{Name: "schema", NumChildren: numChildren(1)},
		{Name: "values", RepetitionType: repType(format.Optional), NumChildren: numChildren(1),
			ConvertedType: convertedType(format.List)},
		{Name: "list", RepetitionType: repType(format.Repeated), NumChildren: numChildren(1)},
		{Name: "element", RepetitionType: repType(format.Required), Type: ptr(format.Int32)},
	}
}

func convertedType(c format.ConvertedType) *format.ConvertedType { return &c }

func TestSingleLevelListLevelInfo(t *testing.T) {
	s, err := schema.New(listSchema())
	if err != nil {
		t.Fatal(err)
	}

	leaves := s.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("expected 1 leaf, got %d", len(leaves))
	}

	desc := s.Column(leaves[0])
	if desc.MaxDefinitionLevel != 2 {
		t.Errorf("max_def_level = %d, want 2", desc.MaxDefinitionLevel)
	}
	if desc.MaxRepetitionLevel != 1 {
		t.Errorf("max_rep_level = %d, want 1", desc.MaxRepetitionLevel)
	}
	if desc.RepeatedAncestorDefLevel != 1 {
		t.Errorf("repeated_ancestor_def_level = %d, want 1", desc.RepeatedAncestorDefLevel)
	}

	list, err := s.Lookup("values")
	if err != nil {
		t.Fatal(err)
	}
	if list.Logical != schema.ListGroup {
		t.Errorf("expected values to be recognized as a list group")
	}

	info := s.LevelInfo(list.Children[0])
	if info != (schema.LevelInfo{DefLevel: 2, RepLevel: 1, RepeatedAncestorDefLevel: 1}) {
		t.Errorf("list LevelInfo = %+v, want {2 1 1}", info)
	}
}

func structWithOptionalFieldsSchema() []format.SchemaElement {
	return []format.SchemaElement{
		{Name: "schema", NumChildren: numChildren(1)},
		{Name: "person", RepetitionType: repType(format.Optional), NumChildren: numChildren(2)},
		{Name: "name", RepetitionType: repType(format.Optional), Type: ptr(format.ByteArray)},
		{Name: "age", RepetitionType: repType(format.Optional), Type: ptr(format.Int32)},
	}
}

func TestStructLevelInfo(t *testing.T) {
	s, err := schema.New(structWithOptionalFieldsSchema())
	if err != nil {
		t.Fatal(err)
	}

	person, err := s.Lookup("person")
	if err != nil {
		t.Fatal(err)
	}
	if person.HasRepeatedDescendant() {
		t.Fatal("person has no repeated descendant")
	}

	info := s.LevelInfo(person)
	if info != (schema.LevelInfo{DefLevel: 1, RepLevel: 0, RepeatedAncestorDefLevel: 0}) {
		t.Errorf("struct LevelInfo = %+v, want {1 0 0}", info)
	}

	name, err := s.Lookup("person", "name")
	if err != nil {
		t.Fatal(err)
	}
	nameDesc := s.Column(name)
	if nameDesc.MaxDefinitionLevel != 2 {
		t.Errorf("name max_def_level = %d, want 2", nameDesc.MaxDefinitionLevel)
	}
}
