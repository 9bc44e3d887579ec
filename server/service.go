package server

import (
	"context"
	"errors"

	"github.com/golang/protobuf/ptypes/empty"
	"github.com/zdnscloud/cement/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/zdnscloud/kvsession"
	pb "github.com/zdnscloud/kvsession/proto"
)

type KVSessionService struct {
	store kvsession.Store
}

var _ pb.KVSessionServer = &KVSessionService{}

func newKVSessionService(store kvsession.Store) *KVSessionService {
	return &KVSessionService{
		store: store,
	}
}

func (s *KVSessionService) Write(ctx context.Context, req *pb.WriteRequest) (*empty.Empty, error) {
	key, err := fromKey(ctx, req.GetKey())
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(ctx, req.GetDatabase(), req.GetCollection(), req.GetItem(), key); err != nil {
		return nil, toStatus(ctx, err)
	}
	return &empty.Empty{}, nil
}

func (s *KVSessionService) ReadOne(ctx context.Context, req *pb.KeyRequest) (*pb.ReadOneResponse, error) {
	key, err := fromKey(ctx, req.GetKey())
	if err != nil {
		return nil, err
	}
	item, found, err := s.store.ReadOne(ctx, req.GetDatabase(), req.GetCollection(), key)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &pb.ReadOneResponse{Item: item, Found: found}, nil
}

func (s *KVSessionService) ReadAll(ctx context.Context, req *pb.CollectionRequest) (*pb.ReadAllResponse, error) {
	items, err := s.store.ReadAll(ctx, req.GetDatabase(), req.GetCollection())
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &pb.ReadAllResponse{Items: items}, nil
}

func (s *KVSessionService) Update(ctx context.Context, req *pb.WriteRequest) (*empty.Empty, error) {
	key, err := fromKey(ctx, req.GetKey())
	if err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, req.GetDatabase(), req.GetCollection(), req.GetItem(), key); err != nil {
		return nil, toStatus(ctx, err)
	}
	return &empty.Empty{}, nil
}

func (s *KVSessionService) RemoveOne(ctx context.Context, req *pb.KeyRequest) (*empty.Empty, error) {
	key, err := fromKey(ctx, req.GetKey())
	if err != nil {
		return nil, err
	}
	if err := s.store.RemoveOne(ctx, req.GetDatabase(), req.GetCollection(), key); err != nil {
		return nil, toStatus(ctx, err)
	}
	return &empty.Empty{}, nil
}

func (s *KVSessionService) ClearAll(ctx context.Context, req *pb.CollectionRequest) (*empty.Empty, error) {
	if err := s.store.ClearAll(ctx, req.GetDatabase(), req.GetCollection()); err != nil {
		return nil, toStatus(ctx, err)
	}
	return &empty.Empty{}, nil
}

func (s *KVSessionService) AddCollection(ctx context.Context, req *pb.WriteRequest) (*empty.Empty, error) {
	key, err := fromKey(ctx, req.GetKey())
	if err != nil {
		return nil, err
	}
	if err := s.store.AddCollection(ctx, req.GetDatabase(), req.GetCollection(), req.GetItem(), key); err != nil {
		return nil, toStatus(ctx, err)
	}
	return &empty.Empty{}, nil
}

func (s *KVSessionService) CurrentVersion(ctx context.Context, req *pb.DatabaseRequest) (*pb.VersionResponse, error) {
	version, err := s.store.CurrentVersion(ctx, req.GetDatabase())
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &pb.VersionResponse{Version: version}, nil
}

func (s *KVSessionService) DeleteDatabase(ctx context.Context, req *pb.DatabaseRequest) (*empty.Empty, error) {
	if err := s.store.DeleteDatabase(ctx, req.GetDatabase()); err != nil {
		return nil, toStatus(ctx, err)
	}
	return &empty.Empty{}, nil
}

func fromKey(ctx context.Context, k *pb.Key) (kvsession.Key, error) {
	key, err := pb.FromKey(k)
	if err != nil {
		grpc.SetTrailer(ctx, metadata.Pairs(pb.CauseTrailer, pb.CauseName(err)))
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return key, nil
}

//the code tells the client which typed error to rebuild and the trailer
//which sentinel it wraps, typed errors go first so an OpenError keeps its
//type whatever it wraps
func toStatus(ctx context.Context, err error) error {
	var (
		openErr    *kvsession.OpenError
		requestErr *kvsession.RequestError
		deleteErr  *kvsession.DeleteError
		code       codes.Code
	)
	switch {
	case errors.As(err, &openErr):
		code = codes.FailedPrecondition
	case errors.As(err, &requestErr):
		code = codes.Aborted
	case errors.As(err, &deleteErr):
		code = codes.Internal
	case errors.Is(err, kvsession.ErrCapabilityUnavailable):
		code = codes.Unavailable
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		code = codes.Unknown
	}
	if cause := pb.CauseName(err); cause != "" {
		grpc.SetTrailer(ctx, metadata.Pairs(pb.CauseTrailer, cause))
	}
	log.Debugf("request failed with %s: %s", code.String(), err.Error())
	return status.Error(code, err.Error())
}
