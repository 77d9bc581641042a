// Package server runs the TCP front end that turns engine.Store operations
// into a request/response protocol, fanning per-connection work out
// through a workerpool.Pool.
package server

import (
	"net"

	"github.com/ignitedb/kvs/internal/engine"
	"github.com/ignitedb/kvs/internal/protocol"
	"github.com/ignitedb/kvs/internal/workerpool"
	kvserrors "github.com/ignitedb/kvs/pkg/errors"
	"go.uber.org/zap"
)

// Server accepts connections on a listener and serves each one against a
// clone of the given engine, on a worker drawn from pool.
type Server struct {
	store engine.Store
	pool  workerpool.Pool
	log   *zap.SugaredLogger
}

// New constructs a Server. store and pool are retained by reference; each
// accepted connection is handled against store.Clone().
func New(store engine.Store, pool workerpool.Pool, log *zap.SugaredLogger) *Server {
	return &Server{store: store, pool: pool, log: log}
}

// Run listens on addr and serves connections until the listener is closed
// or accepting fails.
func (s *Server) Run(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "failed to listen").WithPath(addr)
	}
	defer listener.Close()

	s.log.Infow("listening", "addr", addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			return kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "accept failed")
		}

		store := s.store.Clone()
		log := s.log
		err = s.pool.Submit(func() {
			if err := handleConnection(store, conn, log); err != nil {
				log.Errorw("connection handling failed", "error", err)
			}
		})
		if err != nil {
			log.Warnw("dropping accepted connection: pool is closed", "error", err)
			conn.Close()
		}
	}
}

// handleConnection reads exactly one framed request, dispatches it against
// store, writes exactly one framed response, then closes the connection -
// mirroring the one-request-per-connection protocol this server implements.
func handleConnection(store engine.Store, conn net.Conn, log *zap.SugaredLogger) error {
	defer conn.Close()

	req, err := protocol.ReadRequest(conn)
	if err != nil {
		return err
	}

	resp := dispatch(store, req)

	return protocol.WriteResponse(conn, resp)
}

func dispatch(store engine.Store, req protocol.Request) protocol.Response {
	switch {
	case req.Get != nil:
		value, ok, err := store.Get(req.Get.Key)
		if err != nil {
			return protocol.ErrResponse(err.Error())
		}
		if !ok {
			return protocol.OkResponse()
		}
		return protocol.OkValueResponse(string(value))

	case req.Set != nil:
		if err := store.Put(req.Set.Key, []byte(req.Set.Value)); err != nil {
			return protocol.ErrResponse(err.Error())
		}
		return protocol.OkResponse()

	case req.Rm != nil:
		if err := store.Remove(req.Rm.Key); err != nil {
			return protocol.ErrResponse(err.Error())
		}
		return protocol.OkResponse()

	default:
		return protocol.ErrResponse("malformed request: no command specified")
	}
}
