// Codegen requires protoc, protoc-gen-go, and protoc-gen-go-grpc on PATH.
//go:generate protoc --go_out=. --go-grpc_out=. --go_opt=module=pkt.systems/glharness --go-grpc_opt=module=pkt.systems/glharness proto/scheduler/v1/scheduler.proto

package glharness
