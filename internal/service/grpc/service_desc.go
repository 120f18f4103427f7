package grpcsvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Полные имена методов сервиса OrderAdmin.
const (
	ServiceName = "oms.admin.v1.OrderAdmin"

	MethodListOrders   = "/oms.admin.v1.OrderAdmin/ListOrders"
	MethodGetOrder     = "/oms.admin.v1.OrderAdmin/GetOrder"
	MethodOpenEdit     = "/oms.admin.v1.OrderAdmin/OpenEdit"
	MethodSelectStatus = "/oms.admin.v1.OrderAdmin/SelectStatus"
	MethodCancelEdit   = "/oms.admin.v1.OrderAdmin/CancelEdit"
	MethodGetDialog    = "/oms.admin.v1.OrderAdmin/GetDialog"
)

// OrderAdminServer — серверная часть OrderAdmin. Сообщения передаются как
// google.protobuf.Struct, поэтому генерация кода не требуется.
type OrderAdminServer interface {
	ListOrders(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	OpenEdit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelEdit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDialog(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterOrderAdminServer регистрирует реализацию на gRPC-сервере.
func RegisterOrderAdminServer(s grpc.ServiceRegistrar, srv OrderAdminServer) {
	s.RegisterService(&OrderAdminServiceDesc, srv)
}

type unaryMethod func(OrderAdminServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(OrderAdminServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(OrderAdminServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// OrderAdminServiceDesc описывает сервис для grpc.Server.
var OrderAdminServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderAdminServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListOrders", Handler: unaryHandler(MethodListOrders, OrderAdminServer.ListOrders)},
		{MethodName: "GetOrder", Handler: unaryHandler(MethodGetOrder, OrderAdminServer.GetOrder)},
		{MethodName: "OpenEdit", Handler: unaryHandler(MethodOpenEdit, OrderAdminServer.OpenEdit)},
		{MethodName: "SelectStatus", Handler: unaryHandler(MethodSelectStatus, OrderAdminServer.SelectStatus)},
		{MethodName: "CancelEdit", Handler: unaryHandler(MethodCancelEdit, OrderAdminServer.CancelEdit)},
		{MethodName: "GetDialog", Handler: unaryHandler(MethodGetDialog, OrderAdminServer.GetDialog)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "oms/admin/v1/order_admin.proto",
}

// OrderAdminClient — клиент OrderAdmin поверх ClientConnInterface.
type OrderAdminClient struct {
	cc grpc.ClientConnInterface
}

// NewOrderAdminClient создаёт клиента.
func NewOrderAdminClient(cc grpc.ClientConnInterface) *OrderAdminClient {
	return &OrderAdminClient{cc: cc}
}

func (c *OrderAdminClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderAdminClient) ListOrders(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListOrders, in, opts...)
}

func (c *OrderAdminClient) GetOrder(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetOrder, in, opts...)
}

func (c *OrderAdminClient) OpenEdit(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodOpenEdit, in, opts...)
}

func (c *OrderAdminClient) SelectStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodSelectStatus, in, opts...)
}

func (c *OrderAdminClient) CancelEdit(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodCancelEdit, in, opts...)
}

func (c *OrderAdminClient) GetDialog(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetDialog, in, opts...)
}
