// Package rpc exposes an evaluator over gRPC.
//
// The service is described by a hand-built grpc.ServiceDesc and carries
// google.protobuf.Struct messages, so no generated code or .proto files are
// involved. Clients send the expression tree in its jsep map form together
// with the data to evaluate against:
//
//	{"expression": {...jsep tree...}, "data": {...}}
//
// and receive the result and its typeof name:
//
//	{"value": ..., "type": "number"}
//
// A server configured with a rules.Set also answers Match requests and
// evaluates named rules ({"rule": "name", "data": {...}}).
package rpc
