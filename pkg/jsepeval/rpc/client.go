package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

// Client calls a remote Evaluator service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a Client using cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Evaluate evaluates root remotely against data. Data must be made of JSON
// compatible values. An undefined result comes back as value.Undefined.
func (c *Client) Evaluate(ctx context.Context, root ast.Node, data any, opts ...grpc.CallOption) (any, error) {
	return c.evaluate(ctx, map[string]any{
		fieldExpression: encodeTree(root),
		fieldData:       data,
	}, opts...)
}

// EvaluateRule evaluates the named rule of the server's rule set.
func (c *Client) EvaluateRule(ctx context.Context, name string, data any, opts ...grpc.CallOption) (any, error) {
	return c.evaluate(ctx, map[string]any{
		fieldRule: name,
		fieldData: data,
	}, opts...)
}

func (c *Client) evaluate(ctx context.Context, fields map[string]any, opts ...grpc.CallOption) (any, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, EvaluateMethod, in, out, opts...); err != nil {
		return nil, err
	}

	resp := out.AsMap()
	if resp[fieldType] == "undefined" {
		return value.Undefined, nil
	}
	return resp[fieldValue], nil
}

// Match returns the names of the server's rules that data satisfies.
func (c *Client) Match(ctx context.Context, data any, opts ...grpc.CallOption) ([]string, error) {
	in, err := structpb.NewStruct(map[string]any{fieldData: data})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MatchMethod, in, out, opts...); err != nil {
		return nil, err
	}

	raw, _ := out.AsMap()[fieldMatched].([]any)
	names := make([]string, 0, len(raw))
	for _, r := range raw {
		if name, ok := r.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// encodeTree keeps a nil tree as a JSON null.
func encodeTree(root ast.Node) any {
	if m := ast.Encode(root); m != nil {
		return m
	}
	return nil
}
