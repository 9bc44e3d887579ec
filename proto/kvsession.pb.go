// Messages and service bindings for kvsession.proto, written against the
// golang/protobuf 1.3 runtime. Keep field tags in sync with the .proto file.

package proto

import (
	context "context"
	fmt "fmt"
	math "math"

	proto "github.com/golang/protobuf/proto"
	empty "github.com/golang/protobuf/ptypes/empty"
	grpc "google.golang.org/grpc"
)

var _ = proto.Marshal
var _ = fmt.Errorf
var _ = math.Inf

// This is a compile-time assertion to ensure that this file is compatible
// with the proto package it is being compiled against.
const _ = proto.ProtoPackageIsVersion3

type KeyKind int32

const (
	KeyKind_NUMBER KeyKind = 0
	KeyKind_DATE   KeyKind = 1
	KeyKind_STRING KeyKind = 2
	KeyKind_BINARY KeyKind = 3
)

var KeyKind_name = map[int32]string{
	0: "NUMBER",
	1: "DATE",
	2: "STRING",
	3: "BINARY",
}

var KeyKind_value = map[string]int32{
	"NUMBER": 0,
	"DATE":   1,
	"STRING": 2,
	"BINARY": 3,
}

func (x KeyKind) String() string {
	return proto.EnumName(KeyKind_name, int32(x))
}

type Key struct {
	Kind                 KeyKind  `protobuf:"varint,1,opt,name=kind,proto3,enum=proto.KeyKind" json:"kind,omitempty"`
	Number               float64  `protobuf:"fixed64,2,opt,name=number,proto3" json:"number,omitempty"`
	Text                 string   `protobuf:"bytes,3,opt,name=text,proto3" json:"text,omitempty"`
	Binary               []byte   `protobuf:"bytes,4,opt,name=binary,proto3" json:"binary,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Key) Reset()         { *m = Key{} }
func (m *Key) String() string { return proto.CompactTextString(m) }
func (*Key) ProtoMessage()    {}

func (m *Key) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_Key.Unmarshal(m, b)
}
func (m *Key) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_Key.Marshal(b, m, deterministic)
}
func (m *Key) XXX_Merge(src proto.Message) {
	xxx_messageInfo_Key.Merge(m, src)
}
func (m *Key) XXX_Size() int {
	return xxx_messageInfo_Key.Size(m)
}
func (m *Key) XXX_DiscardUnknown() {
	xxx_messageInfo_Key.DiscardUnknown(m)
}

var xxx_messageInfo_Key proto.InternalMessageInfo

func (m *Key) GetKind() KeyKind {
	if m != nil {
		return m.Kind
	}
	return KeyKind_NUMBER
}

func (m *Key) GetNumber() float64 {
	if m != nil {
		return m.Number
	}
	return 0
}

func (m *Key) GetText() string {
	if m != nil {
		return m.Text
	}
	return ""
}

func (m *Key) GetBinary() []byte {
	if m != nil {
		return m.Binary
	}
	return nil
}

type WriteRequest struct {
	Database             string   `protobuf:"bytes,1,opt,name=database,proto3" json:"database,omitempty"`
	Collection           string   `protobuf:"bytes,2,opt,name=collection,proto3" json:"collection,omitempty"`
	Item                 []byte   `protobuf:"bytes,3,opt,name=item,proto3" json:"item,omitempty"`
	Key                  *Key     `protobuf:"bytes,4,opt,name=key,proto3" json:"key,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *WriteRequest) Reset()         { *m = WriteRequest{} }
func (m *WriteRequest) String() string { return proto.CompactTextString(m) }
func (*WriteRequest) ProtoMessage()    {}

func (m *WriteRequest) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_WriteRequest.Unmarshal(m, b)
}
func (m *WriteRequest) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_WriteRequest.Marshal(b, m, deterministic)
}
func (m *WriteRequest) XXX_Merge(src proto.Message) {
	xxx_messageInfo_WriteRequest.Merge(m, src)
}
func (m *WriteRequest) XXX_Size() int {
	return xxx_messageInfo_WriteRequest.Size(m)
}
func (m *WriteRequest) XXX_DiscardUnknown() {
	xxx_messageInfo_WriteRequest.DiscardUnknown(m)
}

var xxx_messageInfo_WriteRequest proto.InternalMessageInfo

func (m *WriteRequest) GetDatabase() string {
	if m != nil {
		return m.Database
	}
	return ""
}

func (m *WriteRequest) GetCollection() string {
	if m != nil {
		return m.Collection
	}
	return ""
}

func (m *WriteRequest) GetItem() []byte {
	if m != nil {
		return m.Item
	}
	return nil
}

func (m *WriteRequest) GetKey() *Key {
	if m != nil {
		return m.Key
	}
	return nil
}

type KeyRequest struct {
	Database             string   `protobuf:"bytes,1,opt,name=database,proto3" json:"database,omitempty"`
	Collection           string   `protobuf:"bytes,2,opt,name=collection,proto3" json:"collection,omitempty"`
	Key                  *Key     `protobuf:"bytes,3,opt,name=key,proto3" json:"key,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *KeyRequest) Reset()         { *m = KeyRequest{} }
func (m *KeyRequest) String() string { return proto.CompactTextString(m) }
func (*KeyRequest) ProtoMessage()    {}

func (m *KeyRequest) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_KeyRequest.Unmarshal(m, b)
}
func (m *KeyRequest) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_KeyRequest.Marshal(b, m, deterministic)
}
func (m *KeyRequest) XXX_Merge(src proto.Message) {
	xxx_messageInfo_KeyRequest.Merge(m, src)
}
func (m *KeyRequest) XXX_Size() int {
	return xxx_messageInfo_KeyRequest.Size(m)
}
func (m *KeyRequest) XXX_DiscardUnknown() {
	xxx_messageInfo_KeyRequest.DiscardUnknown(m)
}

var xxx_messageInfo_KeyRequest proto.InternalMessageInfo

func (m *KeyRequest) GetDatabase() string {
	if m != nil {
		return m.Database
	}
	return ""
}

func (m *KeyRequest) GetCollection() string {
	if m != nil {
		return m.Collection
	}
	return ""
}

func (m *KeyRequest) GetKey() *Key {
	if m != nil {
		return m.Key
	}
	return nil
}

type CollectionRequest struct {
	Database             string   `protobuf:"bytes,1,opt,name=database,proto3" json:"database,omitempty"`
	Collection           string   `protobuf:"bytes,2,opt,name=collection,proto3" json:"collection,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *CollectionRequest) Reset()         { *m = CollectionRequest{} }
func (m *CollectionRequest) String() string { return proto.CompactTextString(m) }
func (*CollectionRequest) ProtoMessage()    {}

func (m *CollectionRequest) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_CollectionRequest.Unmarshal(m, b)
}
func (m *CollectionRequest) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_CollectionRequest.Marshal(b, m, deterministic)
}
func (m *CollectionRequest) XXX_Merge(src proto.Message) {
	xxx_messageInfo_CollectionRequest.Merge(m, src)
}
func (m *CollectionRequest) XXX_Size() int {
	return xxx_messageInfo_CollectionRequest.Size(m)
}
func (m *CollectionRequest) XXX_DiscardUnknown() {
	xxx_messageInfo_CollectionRequest.DiscardUnknown(m)
}

var xxx_messageInfo_CollectionRequest proto.InternalMessageInfo

func (m *CollectionRequest) GetDatabase() string {
	if m != nil {
		return m.Database
	}
	return ""
}

func (m *CollectionRequest) GetCollection() string {
	if m != nil {
		return m.Collection
	}
	return ""
}

type DatabaseRequest struct {
	Database             string   `protobuf:"bytes,1,opt,name=database,proto3" json:"database,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *DatabaseRequest) Reset()         { *m = DatabaseRequest{} }
func (m *DatabaseRequest) String() string { return proto.CompactTextString(m) }
func (*DatabaseRequest) ProtoMessage()    {}

func (m *DatabaseRequest) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_DatabaseRequest.Unmarshal(m, b)
}
func (m *DatabaseRequest) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_DatabaseRequest.Marshal(b, m, deterministic)
}
func (m *DatabaseRequest) XXX_Merge(src proto.Message) {
	xxx_messageInfo_DatabaseRequest.Merge(m, src)
}
func (m *DatabaseRequest) XXX_Size() int {
	return xxx_messageInfo_DatabaseRequest.Size(m)
}
func (m *DatabaseRequest) XXX_DiscardUnknown() {
	xxx_messageInfo_DatabaseRequest.DiscardUnknown(m)
}

var xxx_messageInfo_DatabaseRequest proto.InternalMessageInfo

func (m *DatabaseRequest) GetDatabase() string {
	if m != nil {
		return m.Database
	}
	return ""
}

type ReadOneResponse struct {
	Item                 []byte   `protobuf:"bytes,1,opt,name=item,proto3" json:"item,omitempty"`
	Found                bool     `protobuf:"varint,2,opt,name=found,proto3" json:"found,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *ReadOneResponse) Reset()         { *m = ReadOneResponse{} }
func (m *ReadOneResponse) String() string { return proto.CompactTextString(m) }
func (*ReadOneResponse) ProtoMessage()    {}

func (m *ReadOneResponse) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_ReadOneResponse.Unmarshal(m, b)
}
func (m *ReadOneResponse) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_ReadOneResponse.Marshal(b, m, deterministic)
}
func (m *ReadOneResponse) XXX_Merge(src proto.Message) {
	xxx_messageInfo_ReadOneResponse.Merge(m, src)
}
func (m *ReadOneResponse) XXX_Size() int {
	return xxx_messageInfo_ReadOneResponse.Size(m)
}
func (m *ReadOneResponse) XXX_DiscardUnknown() {
	xxx_messageInfo_ReadOneResponse.DiscardUnknown(m)
}

var xxx_messageInfo_ReadOneResponse proto.InternalMessageInfo

func (m *ReadOneResponse) GetItem() []byte {
	if m != nil {
		return m.Item
	}
	return nil
}

func (m *ReadOneResponse) GetFound() bool {
	if m != nil {
		return m.Found
	}
	return false
}

type ReadAllResponse struct {
	Items                [][]byte `protobuf:"bytes,1,rep,name=items,proto3" json:"items,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *ReadAllResponse) Reset()         { *m = ReadAllResponse{} }
func (m *ReadAllResponse) String() string { return proto.CompactTextString(m) }
func (*ReadAllResponse) ProtoMessage()    {}

func (m *ReadAllResponse) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_ReadAllResponse.Unmarshal(m, b)
}
func (m *ReadAllResponse) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_ReadAllResponse.Marshal(b, m, deterministic)
}
func (m *ReadAllResponse) XXX_Merge(src proto.Message) {
	xxx_messageInfo_ReadAllResponse.Merge(m, src)
}
func (m *ReadAllResponse) XXX_Size() int {
	return xxx_messageInfo_ReadAllResponse.Size(m)
}
func (m *ReadAllResponse) XXX_DiscardUnknown() {
	xxx_messageInfo_ReadAllResponse.DiscardUnknown(m)
}

var xxx_messageInfo_ReadAllResponse proto.InternalMessageInfo

func (m *ReadAllResponse) GetItems() [][]byte {
	if m != nil {
		return m.Items
	}
	return nil
}

type VersionResponse struct {
	Version              uint64   `protobuf:"varint,1,opt,name=version,proto3" json:"version,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *VersionResponse) Reset()         { *m = VersionResponse{} }
func (m *VersionResponse) String() string { return proto.CompactTextString(m) }
func (*VersionResponse) ProtoMessage()    {}

func (m *VersionResponse) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_VersionResponse.Unmarshal(m, b)
}
func (m *VersionResponse) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_VersionResponse.Marshal(b, m, deterministic)
}
func (m *VersionResponse) XXX_Merge(src proto.Message) {
	xxx_messageInfo_VersionResponse.Merge(m, src)
}
func (m *VersionResponse) XXX_Size() int {
	return xxx_messageInfo_VersionResponse.Size(m)
}
func (m *VersionResponse) XXX_DiscardUnknown() {
	xxx_messageInfo_VersionResponse.DiscardUnknown(m)
}

var xxx_messageInfo_VersionResponse proto.InternalMessageInfo

func (m *VersionResponse) GetVersion() uint64 {
	if m != nil {
		return m.Version
	}
	return 0
}

func init() {
	proto.RegisterEnum("proto.KeyKind", KeyKind_name, KeyKind_value)
	proto.RegisterType((*Key)(nil), "proto.Key")
	proto.RegisterType((*WriteRequest)(nil), "proto.WriteRequest")
	proto.RegisterType((*KeyRequest)(nil), "proto.KeyRequest")
	proto.RegisterType((*CollectionRequest)(nil), "proto.CollectionRequest")
	proto.RegisterType((*DatabaseRequest)(nil), "proto.DatabaseRequest")
	proto.RegisterType((*ReadOneResponse)(nil), "proto.ReadOneResponse")
	proto.RegisterType((*ReadAllResponse)(nil), "proto.ReadAllResponse")
	proto.RegisterType((*VersionResponse)(nil), "proto.VersionResponse")
}

// Reference imports to suppress errors if they are not otherwise used.
var _ context.Context
var _ grpc.ClientConn

// This is a compile-time assertion to ensure that this file is compatible
// with the grpc package it is being compiled against.
const _ = grpc.SupportPackageIsVersion4

// KVSessionClient is the client API for KVSession service.
type KVSessionClient interface {
	Write(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*empty.Empty, error)
	ReadOne(ctx context.Context, in *KeyRequest, opts ...grpc.CallOption) (*ReadOneResponse, error)
	ReadAll(ctx context.Context, in *CollectionRequest, opts ...grpc.CallOption) (*ReadAllResponse, error)
	Update(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*empty.Empty, error)
	RemoveOne(ctx context.Context, in *KeyRequest, opts ...grpc.CallOption) (*empty.Empty, error)
	ClearAll(ctx context.Context, in *CollectionRequest, opts ...grpc.CallOption) (*empty.Empty, error)
	AddCollection(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*empty.Empty, error)
	CurrentVersion(ctx context.Context, in *DatabaseRequest, opts ...grpc.CallOption) (*VersionResponse, error)
	DeleteDatabase(ctx context.Context, in *DatabaseRequest, opts ...grpc.CallOption) (*empty.Empty, error)
}

type kVSessionClient struct {
	cc *grpc.ClientConn
}

func NewKVSessionClient(cc *grpc.ClientConn) KVSessionClient {
	return &kVSessionClient{cc}
}

func (c *kVSessionClient) Write(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	err := c.cc.Invoke(ctx, "/proto.KVSession/Write", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kVSessionClient) ReadOne(ctx context.Context, in *KeyRequest, opts ...grpc.CallOption) (*ReadOneResponse, error) {
	out := new(ReadOneResponse)
	err := c.cc.Invoke(ctx, "/proto.KVSession/ReadOne", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kVSessionClient) ReadAll(ctx context.Context, in *CollectionRequest, opts ...grpc.CallOption) (*ReadAllResponse, error) {
	out := new(ReadAllResponse)
	err := c.cc.Invoke(ctx, "/proto.KVSession/ReadAll", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kVSessionClient) Update(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	err := c.cc.Invoke(ctx, "/proto.KVSession/Update", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kVSessionClient) RemoveOne(ctx context.Context, in *KeyRequest, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	err := c.cc.Invoke(ctx, "/proto.KVSession/RemoveOne", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kVSessionClient) ClearAll(ctx context.Context, in *CollectionRequest, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	err := c.cc.Invoke(ctx, "/proto.KVSession/ClearAll", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kVSessionClient) AddCollection(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	err := c.cc.Invoke(ctx, "/proto.KVSession/AddCollection", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kVSessionClient) CurrentVersion(ctx context.Context, in *DatabaseRequest, opts ...grpc.CallOption) (*VersionResponse, error) {
	out := new(VersionResponse)
	err := c.cc.Invoke(ctx, "/proto.KVSession/CurrentVersion", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kVSessionClient) DeleteDatabase(ctx context.Context, in *DatabaseRequest, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	err := c.cc.Invoke(ctx, "/proto.KVSession/DeleteDatabase", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// KVSessionServer is the server API for KVSession service.
type KVSessionServer interface {
	Write(context.Context, *WriteRequest) (*empty.Empty, error)
	ReadOne(context.Context, *KeyRequest) (*ReadOneResponse, error)
	ReadAll(context.Context, *CollectionRequest) (*ReadAllResponse, error)
	Update(context.Context, *WriteRequest) (*empty.Empty, error)
	RemoveOne(context.Context, *KeyRequest) (*empty.Empty, error)
	ClearAll(context.Context, *CollectionRequest) (*empty.Empty, error)
	AddCollection(context.Context, *WriteRequest) (*empty.Empty, error)
	CurrentVersion(context.Context, *DatabaseRequest) (*VersionResponse, error)
	DeleteDatabase(context.Context, *DatabaseRequest) (*empty.Empty, error)
}

func RegisterKVSessionServer(s *grpc.Server, srv KVSessionServer) {
	s.RegisterService(&_KVSession_serviceDesc, srv)
}

func _KVSession_Write_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(WriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KVSessionServer).Write(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/proto.KVSession/Write",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KVSessionServer).Write(ctx, req.(*WriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _KVSession_ReadOne_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(KeyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KVSessionServer).ReadOne(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/proto.KVSession/ReadOne",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KVSessionServer).ReadOne(ctx, req.(*KeyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _KVSession_ReadAll_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CollectionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KVSessionServer).ReadAll(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/proto.KVSession/ReadAll",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KVSessionServer).ReadAll(ctx, req.(*CollectionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _KVSession_Update_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(WriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KVSessionServer).Update(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/proto.KVSession/Update",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KVSessionServer).Update(ctx, req.(*WriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _KVSession_RemoveOne_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(KeyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KVSessionServer).RemoveOne(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/proto.KVSession/RemoveOne",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KVSessionServer).RemoveOne(ctx, req.(*KeyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _KVSession_ClearAll_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CollectionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KVSessionServer).ClearAll(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/proto.KVSession/ClearAll",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KVSessionServer).ClearAll(ctx, req.(*CollectionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _KVSession_AddCollection_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(WriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KVSessionServer).AddCollection(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/proto.KVSession/AddCollection",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KVSessionServer).AddCollection(ctx, req.(*WriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _KVSession_CurrentVersion_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DatabaseRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KVSessionServer).CurrentVersion(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/proto.KVSession/CurrentVersion",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KVSessionServer).CurrentVersion(ctx, req.(*DatabaseRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _KVSession_DeleteDatabase_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DatabaseRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KVSessionServer).DeleteDatabase(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/proto.KVSession/DeleteDatabase",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KVSessionServer).DeleteDatabase(ctx, req.(*DatabaseRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var _KVSession_serviceDesc = grpc.ServiceDesc{
	ServiceName: "proto.KVSession",
	HandlerType: (*KVSessionServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Write",
			Handler:    _KVSession_Write_Handler,
		},
		{
			MethodName: "ReadOne",
			Handler:    _KVSession_ReadOne_Handler,
		},
		{
			MethodName: "ReadAll",
			Handler:    _KVSession_ReadAll_Handler,
		},
		{
			MethodName: "Update",
			Handler:    _KVSession_Update_Handler,
		},
		{
			MethodName: "RemoveOne",
			Handler:    _KVSession_RemoveOne_Handler,
		},
		{
			MethodName: "ClearAll",
			Handler:    _KVSession_ClearAll_Handler,
		},
		{
			MethodName: "AddCollection",
			Handler:    _KVSession_AddCollection_Handler,
		},
		{
			MethodName: "CurrentVersion",
			Handler:    _KVSession_CurrentVersion_Handler,
		},
		{
			MethodName: "DeleteDatabase",
			Handler:    _KVSession_DeleteDatabase_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kvsession.proto",
}
