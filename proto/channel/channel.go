// Package channel describes the chatfs.ChannelService wire contract.
// Messages are encoded with the CBOR codec registered in init, selected by
// the "cbor" content subtype on every call.
package channel

import (
	"chat-fs/codec"
	"chat-fs/domain"
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// MaxMessageSize fits a full bundle plus the envelope.
const MaxMessageSize = domain.MaxBundleSize*domain.MaxChunkSize + domain.MB

func init() {
	encoding.RegisterCodec(codec.GRPCCodec{})
}

type Attachment struct {
	Filename string `cbor:"1,keyasint"`
	MimeType string `cbor:"2,keyasint"`
	Data     []byte `cbor:"3,keyasint"`
}

type AttachmentInfo struct {
	Id       string `cbor:"1,keyasint"`
	Filename string `cbor:"2,keyasint"`
	MimeType string `cbor:"3,keyasint"`
	Size     int64  `cbor:"4,keyasint"`
	Position int32  `cbor:"5,keyasint"`
}

type Message struct {
	Id          uint64            `cbor:"1,keyasint"`
	ChannelId   uint64            `cbor:"2,keyasint"`
	Content     string            `cbor:"3,keyasint"`
	Attachments []*AttachmentInfo `cbor:"4,keyasint"`
}

type SendMessageRequest struct {
	ChannelId   uint64        `cbor:"1,keyasint"`
	Content     string        `cbor:"2,keyasint"`
	Attachments []*Attachment `cbor:"3,keyasint"`
}

type SendMessageResponse struct {
	Message *Message `cbor:"1,keyasint"`
}

type GetMessageRequest struct {
	ChannelId uint64 `cbor:"1,keyasint"`
	MessageId uint64 `cbor:"2,keyasint"`
}

type GetMessageResponse struct {
	Message *Message `cbor:"1,keyasint"`
}

type GetAttachmentRequest struct {
	ChannelId uint64 `cbor:"1,keyasint"`
	MessageId uint64 `cbor:"2,keyasint"`
	Position  int32  `cbor:"3,keyasint"`
}

type GetAttachmentResponse struct {
	Data []byte `cbor:"1,keyasint"`
}

const (
	ChannelService_SendMessage_FullMethodName   = "/chatfs.ChannelService/SendMessage"
	ChannelService_GetMessage_FullMethodName    = "/chatfs.ChannelService/GetMessage"
	ChannelService_GetAttachment_FullMethodName = "/chatfs.ChannelService/GetAttachment"
)

type ChannelServiceClient interface {
	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error)
	GetMessage(ctx context.Context, in *GetMessageRequest, opts ...grpc.CallOption) (*GetMessageResponse, error)
	GetAttachment(ctx context.Context, in *GetAttachmentRequest, opts ...grpc.CallOption) (*GetAttachmentResponse, error)
}

type channelServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewChannelServiceClient(cc grpc.ClientConnInterface) ChannelServiceClient {
	return &channelServiceClient{cc}
}

func (c *channelServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error) {
	out := new(SendMessageResponse)
	if err := c.cc.Invoke(ctx, ChannelService_SendMessage_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *channelServiceClient) GetMessage(ctx context.Context, in *GetMessageRequest, opts ...grpc.CallOption) (*GetMessageResponse, error) {
	out := new(GetMessageResponse)
	if err := c.cc.Invoke(ctx, ChannelService_GetMessage_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *channelServiceClient) GetAttachment(ctx context.Context, in *GetAttachmentRequest, opts ...grpc.CallOption) (*GetAttachmentResponse, error) {
	out := new(GetAttachmentResponse)
	if err := c.cc.Invoke(ctx, ChannelService_GetAttachment_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
}

type ChannelServiceServer interface {
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	GetMessage(context.Context, *GetMessageRequest) (*GetMessageResponse, error)
	GetAttachment(context.Context, *GetAttachmentRequest) (*GetAttachmentResponse, error)
}

func RegisterChannelServiceServer(s grpc.ServiceRegistrar, srv ChannelServiceServer) {
	s.RegisterService(&ChannelService_ServiceDesc, srv)
}

func _ChannelService_SendMessage_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SendMessageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChannelServiceServer).SendMessage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ChannelService_SendMessage_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChannelServiceServer).SendMessage(ctx, req.(*SendMessageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChannelService_GetMessage_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetMessageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChannelServiceServer).GetMessage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ChannelService_GetMessage_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChannelServiceServer).GetMessage(ctx, req.(*GetMessageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChannelService_GetAttachment_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetAttachmentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChannelServiceServer).GetAttachment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ChannelService_GetAttachment_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChannelServiceServer).GetAttachment(ctx, req.(*GetAttachmentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var ChannelService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "chatfs.ChannelService",
	HandlerType: (*ChannelServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SendMessage", Handler: _ChannelService_SendMessage_Handler},
		{MethodName: "GetMessage", Handler: _ChannelService_GetMessage_Handler},
		{MethodName: "GetAttachment", Handler: _ChannelService_GetAttachment_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "channel.cbor",
}
