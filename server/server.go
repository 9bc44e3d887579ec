package server

import (
	"net"

	"github.com/zdnscloud/cement/log"
	"google.golang.org/grpc"

	"github.com/zdnscloud/kvsession"
	pb "github.com/zdnscloud/kvsession/proto"
)

type KVSessionServer struct {
	server   *grpc.Server
	listener net.Listener
}

func New(addr string, store kvsession.Store) (*KVSessionServer, error) {
	server := grpc.NewServer()

	service := newKVSessionService(store)
	pb.RegisterKVSessionServer(server, service)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &KVSessionServer{
		server:   server,
		listener: listener,
	}, nil
}

func (s *KVSessionServer) Addr() string {
	return s.listener.Addr().String()
}

func (s *KVSessionServer) Start() error {
	log.Infof("kvsession server listening on %s", s.Addr())
	return s.server.Serve(s.listener)
}

func (s *KVSessionServer) Stop() error {
	s.server.GracefulStop()
	log.Infof("kvsession server on %s stopped", s.Addr())
	return nil
}
