package control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name. Messages are
// well-known protobuf types so no generated code is needed.
const ServiceName = "agridash.control.v1.ControlService"

// ControlServiceServer is the server API for ControlService.
type ControlServiceServer interface {
	Snapshot(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Select(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ApplyRain(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ApplyIrrigation(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Reset(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

func fullMethod(name string) string { return "/" + ServiceName + "/" + name }

func unary[T any](name string, call func(ControlServiceServer, context.Context, *T) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(T)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ControlServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(ControlServiceServer), ctx, req.(*T))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ControlServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ControlServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Snapshot", ControlServiceServer.Snapshot),
		unary("Select", ControlServiceServer.Select),
		unary("ApplyRain", ControlServiceServer.ApplyRain),
		unary("ApplyIrrigation", ControlServiceServer.ApplyIrrigation),
		unary("Reset", ControlServiceServer.Reset),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "agridash/control/v1/control.proto",
}

func RegisterControlServiceServer(s grpc.ServiceRegistrar, srv ControlServiceServer) {
	s.RegisterService(&ControlServiceDesc, srv)
}

// ControlClient is the client side of ControlService.
type ControlClient struct {
	cc grpc.ClientConnInterface
}

func NewControlClient(cc grpc.ClientConnInterface) *ControlClient {
	return &ControlClient{cc: cc}
}

func (c *ControlClient) invoke(ctx context.Context, name string, in interface{}, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ControlClient) Snapshot(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Snapshot", &emptypb.Empty{}, opts...)
}

func (c *ControlClient) Select(ctx context.Context, plotID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Select", wrapperspb.String(plotID), opts...)
}

func (c *ControlClient) ApplyRain(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ApplyRain", &emptypb.Empty{}, opts...)
}

// ApplyIrrigation targets the current selection when plotID is empty.
func (c *ControlClient) ApplyIrrigation(ctx context.Context, plotID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ApplyIrrigation", wrapperspb.String(plotID), opts...)
}

func (c *ControlClient) Reset(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Reset", &emptypb.Empty{}, opts...)
}
