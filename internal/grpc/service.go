package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the addon gRPC service.
const ServiceName = "stremio.addon.v1.AddonService"

const (
	getManifestMethod  = "/" + ServiceName + "/GetManifest"
	getSubtitlesMethod = "/" + ServiceName + "/GetSubtitles"
)

// AddonServiceServer is the server API for the addon service. Messages are
// google.protobuf.Struct values carrying the same JSON shapes as the HTTP routes.
type AddonServiceServer interface {
	GetManifest(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSubtitles(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// AddonServiceDesc describes the addon service for grpc.Server.RegisterService.
var AddonServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AddonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetManifest", Handler: unaryHandler(getManifestMethod, AddonServiceServer.GetManifest)},
		{MethodName: "GetSubtitles", Handler: unaryHandler(getSubtitlesMethod, AddonServiceServer.GetSubtitles)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "stremio/addon/v1/addon.proto",
}

// RegisterAddonServiceServer registers srv on s.
func RegisterAddonServiceServer(s grpc.ServiceRegistrar, srv AddonServiceServer) {
	s.RegisterService(&AddonServiceDesc, srv)
}

type structMethod func(AddonServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, method structMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(srv.(AddonServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return method(srv.(AddonServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AddonServiceClient is the client API for the addon service.
type AddonServiceClient interface {
	GetManifest(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetSubtitles(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type addonServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAddonServiceClient returns an AddonServiceClient calling through cc.
func NewAddonServiceClient(cc grpc.ClientConnInterface) AddonServiceClient {
	return &addonServiceClient{cc: cc}
}

func (c *addonServiceClient) GetManifest(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getManifestMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *addonServiceClient) GetSubtitles(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getSubtitlesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
