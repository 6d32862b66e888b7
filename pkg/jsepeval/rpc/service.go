package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/rules"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "jsepeval.v1.Evaluator"

// Full method names, as seen by interceptors.
const (
	EvaluateMethod = "/" + ServiceName + "/Evaluate"
	MatchMethod    = "/" + ServiceName + "/Match"
)

// Request and response field names.
const (
	fieldExpression = "expression"
	fieldRule       = "rule"
	fieldData       = "data"
	fieldValue      = "value"
	fieldType       = "type"
	fieldMatched    = "matched"
)

// EvaluatorServer is the server API of the Evaluator service.
type EvaluatorServer interface {
	Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Match(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the Evaluator service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EvaluatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: unaryHandler(EvaluateMethod, EvaluatorServer.Evaluate)},
		{MethodName: "Match", Handler: unaryHandler(MatchMethod, EvaluatorServer.Match)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jsepeval/v1/evaluator.proto",
}

func unaryHandler(fullMethod string, call func(EvaluatorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EvaluatorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(EvaluatorServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Register adds the Evaluator service backed by srv to s.
func Register(s grpc.ServiceRegistrar, srv EvaluatorServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Server implements EvaluatorServer on top of a jsepeval.Evaluator.
type Server struct {
	evaluator *jsepeval.Evaluator
	rules     *rules.Set
	globals   map[string]any
	logger    *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithEvaluator sets the evaluator for Evaluate requests.
// Default: an evaluator with the built-in registry.
func WithEvaluator(ev *jsepeval.Evaluator) ServerOption {
	return func(s *Server) {
		s.evaluator = ev
	}
}

// WithRules enables Match and named-rule Evaluate requests.
func WithRules(set *rules.Set) ServerOption {
	return func(s *Server) {
		s.rules = set
	}
}

// WithGlobals sets values visible to every request. Request data keys
// shadow globals of the same name. Globals may hold functions, which
// cannot travel over the wire.
func WithGlobals(globals map[string]any) ServerOption {
	return func(s *Server) {
		s.globals = globals
	}
}

// WithLogger sets the logger for request failures.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer returns a Server.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	if s.evaluator == nil {
		s.evaluator = jsepeval.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Evaluate evaluates the request expression, or the named rule, against
// the request data.
func (s *Server) Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.AsMap()
	data := s.data(fields[fieldData])

	var (
		result any
		err    error
	)
	if name, ok := fields[fieldRule].(string); ok && name != "" {
		if s.rules == nil {
			return nil, status.Error(codes.FailedPrecondition, "no rule set configured")
		}
		result, err = s.rules.Evaluate(ctx, name, data)
	} else {
		var root ast.Node
		root, err = ast.FromAny(fields[fieldExpression])
		if err == nil {
			result, err = s.evaluator.Evaluate(ctx, root, data)
		}
	}
	if err != nil {
		return nil, s.fail("Evaluate", err)
	}

	out, err := structpb.NewStruct(map[string]any{
		fieldValue: wireValue(result),
		fieldType:  value.TypeOf(result),
	})
	if err != nil {
		return nil, s.fail("Evaluate", fmt.Errorf("encode result: %w", err))
	}
	return out, nil
}

// Match returns the names of the rules the request data satisfies.
func (s *Server) Match(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.rules == nil {
		return nil, status.Error(codes.FailedPrecondition, "no rule set configured")
	}
	data := s.data(req.AsMap()[fieldData])

	matched, err := s.rules.Match(ctx, data)
	if err != nil {
		return nil, s.fail("Match", err)
	}
	names := make([]any, len(matched))
	for i, name := range matched {
		names[i] = name
	}
	out, err := structpb.NewStruct(map[string]any{fieldMatched: names})
	if err != nil {
		return nil, s.fail("Match", fmt.Errorf("encode result: %w", err))
	}
	return out, nil
}

// data overlays request data on the globals. Non-object data replaces them.
func (s *Server) data(raw any) any {
	if len(s.globals) == 0 {
		return raw
	}
	switch d := raw.(type) {
	case nil:
		return maps.Clone(s.globals)
	case map[string]any:
		merged := maps.Clone(s.globals)
		maps.Copy(merged, d)
		return merged
	default:
		return raw
	}
}

func (s *Server) fail(method string, err error) error {
	st := toStatus(err)
	s.logger.Warn("request failed",
		slog.String("method", method),
		slog.String("code", st.Code().String()),
		slog.String("error", err.Error()),
	)
	return st.Err()
}

// toStatus maps evaluation errors to gRPC status codes. Malformed trees and
// unknown operators are the caller's fault; failed calls depend on the
// server's globals.
func toStatus(err error) *status.Status {
	if st, ok := status.FromError(err); ok {
		return st
	}

	var (
		decodeErr *ast.DecodeError
		structErr *jsepeval.StructuralError
		opErr     *jsepeval.UnknownOperatorError
		callErr   *jsepeval.CallError
	)
	switch {
	case errors.As(err, &decodeErr), errors.As(err, &structErr), errors.As(err, &opErr):
		return status.New(codes.InvalidArgument, err.Error())
	case errors.Is(err, rules.ErrRuleNotFound):
		return status.New(codes.NotFound, err.Error())
	case errors.As(err, &callErr):
		return status.New(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.New(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, err.Error())
	default:
		return status.New(codes.Internal, err.Error())
	}
}

// wireValue converts v into something structpb accepts. Undefined becomes
// null; other values structpb rejects (typed slices, structs) go through
// their JSON form, and values JSON cannot encode either, such as functions,
// become their string form. The response type field still reports the
// original type.
func wireValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = wireValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = wireValue(e)
		}
		return out
	}
	if value.IsUndefined(v) {
		return nil
	}
	if _, err := structpb.NewValue(v); err == nil {
		return v
	}
	if raw, err := json.Marshal(v); err == nil {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			return decoded
		}
	}
	return value.ToString(v)
}
