package proto

import (
	"context"

	"google.golang.org/grpc"
)

type CreateRequest struct {
	Url       string `json:"url"`
	Validity  *int64 `json:"validity,omitempty"`
	Shortcode string `json:"shortcode,omitempty"`
}

type CreateResponse struct {
	ShortUrl string `json:"short_url"`
	Expiry   int64  `json:"expiry"`
}

type RetrieveRequest struct {
	Shortcode string `json:"shortcode"`
}

type RetrieveResponse struct {
	OriginalUrl string `json:"original_url"`
}

const (
	ShortURLService_Create_FullMethodName   = "/shorturls.ShortURLService/Create"
	ShortURLService_Retrieve_FullMethodName = "/shorturls.ShortURLService/Retrieve"
)

// ShortURLServiceServer is the server API for ShortURLService service.
type ShortURLServiceServer interface {
	Create(context.Context, *CreateRequest) (*CreateResponse, error)
	Retrieve(context.Context, *RetrieveRequest) (*RetrieveResponse, error)
}

// ShortURLServiceClient is the client API for ShortURLService service.
type ShortURLServiceClient interface {
	Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error)
	Retrieve(ctx context.Context, in *RetrieveRequest, opts ...grpc.CallOption) (*RetrieveResponse, error)
}

type shortURLServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewShortURLServiceClient returns a client that always uses Codec.
func NewShortURLServiceClient(cc grpc.ClientConnInterface) ShortURLServiceClient {
	return &shortURLServiceClient{cc: cc}
}

func (c *shortURLServiceClient) Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error) {
	out := new(CreateResponse)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := c.cc.Invoke(ctx, ShortURLService_Create_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *shortURLServiceClient) Retrieve(ctx context.Context, in *RetrieveRequest, opts ...grpc.CallOption) (*RetrieveResponse, error) {
	out := new(RetrieveResponse)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := c.cc.Invoke(ctx, ShortURLService_Retrieve_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterShortURLServiceServer(s grpc.ServiceRegistrar, srv ShortURLServiceServer) {
	s.RegisterService(&ShortURLService_ServiceDesc, srv)
}

func _ShortURLService_Create_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShortURLServiceServer).Create(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ShortURLService_Create_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ShortURLServiceServer).Create(ctx, req.(*CreateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ShortURLService_Retrieve_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RetrieveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShortURLServiceServer).Retrieve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ShortURLService_Retrieve_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ShortURLServiceServer).Retrieve(ctx, req.(*RetrieveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var ShortURLService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "shorturls.ShortURLService",
	HandlerType: (*ShortURLServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Create",
			Handler:    _ShortURLService_Create_Handler,
		},
		{
			MethodName: "Retrieve",
			Handler:    _ShortURLService_Retrieve_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shorturls.proto",
}
