package lookup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/typepb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/lookup"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

func TestGetPath_ProtoMessage(t *testing.T) {
	msg := &typepb.Type{
		Name: "Point",
		Fields: []*typepb.Field{
			{Name: "x", Number: 1, Kind: typepb.Field_TYPE_DOUBLE, TypeUrl: "type.googleapis.com/x"},
		},
		Oneofs: []string{"shape"},
		Syntax: typepb.Syntax_SYNTAX_PROTO3,
	}

	tests := []struct {
		path string
		want any
	}{
		{"name", "Point"},
		{"fields.length", float64(1)},
		{"fields[0].name", "x"},
		{"fields[0].number", int32(1)},
		{"fields[0].kind", "TYPE_DOUBLE"},
		{"fields[0].typeUrl", "type.googleapis.com/x"},
		{"fields[0].type_url", "type.googleapis.com/x"},
		{"oneofs[0]", "shape"},
		{"syntax", "SYNTAX_PROTO3"},
		{"sourceContext", nil},
		{"nope", value.Undefined},
		{"sourceContext.fileName", value.Undefined},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, lookup.GetPath(msg, tt.path))
		})
	}
}

func TestGetPath_StructValue(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{
		"a": map[string]any{"b": 2},
		"l": []any{1, "x"},
		"n": nil,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(2), lookup.GetPath(s, "a.b"))
	assert.Equal(t, "x", lookup.GetPath(s, "l[1]"))
	assert.Equal(t, float64(2), lookup.GetPath(s, "l.length"))
	assert.Nil(t, lookup.GetPath(s, "n"))
	assert.Equal(t, value.Undefined, lookup.GetPath(s, "missing"))
	assert.Equal(t, float64(1), lookup.GetPath(structpb.NewListValue(&structpb.ListValue{
		Values: []*structpb.Value{structpb.NewNumberValue(1)},
	}), "0"))
}

func TestGetPath_WellKnownMessages(t *testing.T) {
	assert.Equal(t, "hi", lookup.GetPath(wrapperspb.String("hi"), "value"))
	assert.Equal(t, int64(10), lookup.GetPath(&timestamppb.Timestamp{Seconds: 10}, "seconds"))

	var nilMsg *typepb.Type
	assert.Equal(t, value.Undefined, lookup.Property(nilMsg, "name"))
}
