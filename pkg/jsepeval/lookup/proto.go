package lookup

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

// protoProperty reads a field of a protobuf message by JSON name or by
// proto field name. The well-known struct types behave like the plain
// maps and slices they stand for.
func protoProperty(m proto.Message, key string) any {
	switch msg := m.(type) {
	case *structpb.Struct:
		f, ok := msg.GetFields()[key]
		if !ok {
			return value.Undefined
		}
		return f.AsInterface()
	case *structpb.ListValue:
		vals := msg.GetValues()
		return index(len(vals), key, func(i int) any { return vals[i].AsInterface() })
	case *structpb.Value:
		v := msg.AsInterface()
		if v == nil {
			return value.Undefined
		}
		return Property(v, key)
	}

	rm := m.ProtoReflect()
	if !rm.IsValid() {
		return value.Undefined
	}
	fields := rm.Descriptor().Fields()
	fd := fields.ByJSONName(key)
	if fd == nil {
		fd = fields.ByName(protoreflect.Name(key))
	}
	if fd == nil {
		return value.Undefined
	}
	return protoField(fd, rm.Get(fd))
}

func protoField(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch {
	case fd.IsList():
		l := v.List()
		out := make([]any, l.Len())
		for i := range out {
			out[i] = protoScalar(fd, l.Get(i))
		}
		return out
	case fd.IsMap():
		m := v.Map()
		out := make(map[string]any, m.Len())
		m.Range(func(k protoreflect.MapKey, mv protoreflect.Value) bool {
			out[k.String()] = protoScalar(fd.MapValue(), mv)
			return true
		})
		return out
	}
	return protoScalar(fd, v)
}

func protoScalar(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch fd.Kind() {
	case protoreflect.EnumKind:
		if ev := fd.Enum().Values().ByNumber(v.Enum()); ev != nil {
			return string(ev.Name())
		}
		return int64(v.Enum())
	case protoreflect.MessageKind, protoreflect.GroupKind:
		msg := v.Message()
		if !msg.IsValid() {
			return nil
		}
		switch wk := msg.Interface().(type) {
		case *structpb.Struct:
			return wk.AsMap()
		case *structpb.ListValue:
			return wk.AsSlice()
		case *structpb.Value:
			return wk.AsInterface()
		}
		return msg.Interface()
	}
	return v.Interface()
}
