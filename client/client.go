// Package client is a kvsession.Store backed by a remote kvsession server.
package client

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/zdnscloud/kvsession"
	pb "github.com/zdnscloud/kvsession/proto"
)

type KVSessionClient struct {
	conn   *grpc.ClientConn
	client pb.KVSessionClient
}

var _ kvsession.Store = &KVSessionClient{}

func New(addr string) (*KVSessionClient, error) {
	conn, err := grpc.Dial(addr, grpc.WithInsecure())
	if err != nil {
		return nil, err
	}

	return &KVSessionClient{
		conn:   conn,
		client: pb.NewKVSessionClient(conn),
	}, nil
}

func (c *KVSessionClient) Close() error {
	return c.conn.Close()
}

func (c *KVSessionClient) writeRequest(database, collection string, item []byte, key kvsession.Key) (*pb.WriteRequest, error) {
	k, err := pb.ToKey(key)
	if err != nil {
		return nil, &kvsession.RequestError{Database: database, Collection: collection, Cause: err}
	}
	return &pb.WriteRequest{
		Database:   database,
		Collection: collection,
		Item:       item,
		Key:        k,
	}, nil
}

func (c *KVSessionClient) keyRequest(database, collection string, key kvsession.Key) (*pb.KeyRequest, error) {
	k, err := pb.ToKey(key)
	if err != nil {
		return nil, &kvsession.RequestError{Database: database, Collection: collection, Cause: err}
	}
	return &pb.KeyRequest{
		Database:   database,
		Collection: collection,
		Key:        k,
	}, nil
}

func (c *KVSessionClient) Write(ctx context.Context, database, collection string, item []byte, key kvsession.Key) error {
	req, err := c.writeRequest(database, collection, item, key)
	if err != nil {
		return err
	}
	var trailer metadata.MD
	_, err = c.client.Write(ctx, req, grpc.Trailer(&trailer))
	return fromStatus(err, trailer, database, collection)
}

func (c *KVSessionClient) ReadOne(ctx context.Context, database, collection string, key kvsession.Key) ([]byte, bool, error) {
	req, err := c.keyRequest(database, collection, key)
	if err != nil {
		return nil, false, err
	}
	var trailer metadata.MD
	resp, err := c.client.ReadOne(ctx, req, grpc.Trailer(&trailer))
	if err != nil {
		return nil, false, fromStatus(err, trailer, database, collection)
	}
	if !resp.GetFound() {
		return nil, false, nil
	}
	item := resp.GetItem()
	if item == nil {
		item = []byte{}
	}
	return item, true, nil
}

func (c *KVSessionClient) ReadAll(ctx context.Context, database, collection string) ([][]byte, error) {
	var trailer metadata.MD
	resp, err := c.client.ReadAll(ctx, &pb.CollectionRequest{
		Database:   database,
		Collection: collection,
	}, grpc.Trailer(&trailer))
	if err != nil {
		return nil, fromStatus(err, trailer, database, collection)
	}
	items := resp.GetItems()
	if items == nil {
		items = [][]byte{}
	}
	for i, item := range items {
		if item == nil {
			items[i] = []byte{}
		}
	}
	return items, nil
}

func (c *KVSessionClient) Update(ctx context.Context, database, collection string, item []byte, key kvsession.Key) error {
	req, err := c.writeRequest(database, collection, item, key)
	if err != nil {
		return err
	}
	var trailer metadata.MD
	_, err = c.client.Update(ctx, req, grpc.Trailer(&trailer))
	return fromStatus(err, trailer, database, collection)
}

func (c *KVSessionClient) RemoveOne(ctx context.Context, database, collection string, key kvsession.Key) error {
	req, err := c.keyRequest(database, collection, key)
	if err != nil {
		return err
	}
	var trailer metadata.MD
	_, err = c.client.RemoveOne(ctx, req, grpc.Trailer(&trailer))
	return fromStatus(err, trailer, database, collection)
}

func (c *KVSessionClient) ClearAll(ctx context.Context, database, collection string) error {
	var trailer metadata.MD
	_, err := c.client.ClearAll(ctx, &pb.CollectionRequest{
		Database:   database,
		Collection: collection,
	}, grpc.Trailer(&trailer))
	return fromStatus(err, trailer, database, collection)
}

func (c *KVSessionClient) AddCollection(ctx context.Context, database, collection string, item []byte, key kvsession.Key) error {
	req, err := c.writeRequest(database, collection, item, key)
	if err != nil {
		return err
	}
	var trailer metadata.MD
	_, err = c.client.AddCollection(ctx, req, grpc.Trailer(&trailer))
	return fromStatus(err, trailer, database, collection)
}

func (c *KVSessionClient) CurrentVersion(ctx context.Context, database string) (uint64, error) {
	var trailer metadata.MD
	resp, err := c.client.CurrentVersion(ctx, &pb.DatabaseRequest{Database: database}, grpc.Trailer(&trailer))
	if err != nil {
		return 0, fromStatus(err, trailer, database, "")
	}
	return resp.GetVersion(), nil
}

func (c *KVSessionClient) DeleteDatabase(ctx context.Context, database string) error {
	var trailer metadata.MD
	_, err := c.client.DeleteDatabase(ctx, &pb.DatabaseRequest{Database: database}, grpc.Trailer(&trailer))
	return fromStatus(err, trailer, database, "")
}

//rebuilds the typed error the server reported
func fromStatus(err error, trailer metadata.MD, database, collection string) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var cause error
	if names := trailer.Get(pb.CauseTrailer); len(names) > 0 {
		cause = pb.CauseByName(names[0])
	}
	if cause == nil {
		cause = errors.New(st.Message())
	}

	switch st.Code() {
	case codes.Unavailable:
		if cause == kvsession.ErrCapabilityUnavailable {
			return cause
		}
		return err
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	case codes.FailedPrecondition:
		return &kvsession.OpenError{Database: database, Cause: cause}
	case codes.Aborted, codes.InvalidArgument:
		return &kvsession.RequestError{Database: database, Collection: collection, Cause: cause}
	case codes.Internal:
		return &kvsession.DeleteError{Database: database, Cause: cause}
	default:
		return err
	}
}
