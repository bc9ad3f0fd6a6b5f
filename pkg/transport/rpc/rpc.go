package rpc

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"reflect"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/silenceper/pool"
	"github.com/ugorji/go/codec"

	"github.com/danl5/gofsmagent/pkg/model"
)

const (
	// initial capacity of the pool
	poolInitCap = 0
	// maximum number of idle connections in the pool
	poolMaxIdle = 5
	// maximum time a connection can be idle before being closed
	poolMaxIdleTime = 15
	// maximum number of connections in the pool
	poolMaxCap = 20
)

// NewRPC creates the msgpack RPC transport carrying the adapter
// operation surface.
func NewRPC(logger *slog.Logger) (*RPC, error) {
	if logger == nil {
		return nil, fmt.Errorf("new rpc, logger is nil")
	}

	return &RPC{
		Server: Server{
			logger: logger.With("component", "rpc server"),
		},
		Client: Client{
			logger: logger.With("component", "rpc client"),
		},
	}, nil
}

// RPCHandler is the object registered with the net/rpc server.
type RPCHandler struct {
	OpHandler model.OperationHandler
}

// Handle serves one adapter operation.
func (h *RPCHandler) Handle(request *model.Request, response *model.Response) error {
	return h.OpHandler(request, response)
}

func (h *RPCHandler) Ping(_ struct{}, reply *string) error {
	*reply = "pong"
	return nil
}

// RPC bundles the server and client sides of the transport.
type RPC struct {
	Server
	Client
}

// Decode decodes an any-typed payload into the target object. Msgpack
// delivers strings as byte slices and structs as generic maps, so the
// receiving side decodes payloads through mapstructure with a
// bytes-to-string hook.
func (r *RPC) Decode(raw any, target any) error {
	return Decode(raw, target)
}

// Decode is the package-level form of RPC.Decode.
func Decode(raw any, target any) error {
	t := reflect.TypeOf(target)
	if t == nil || t.Kind() != reflect.Ptr || reflect.ValueOf(target).IsNil() {
		return fmt.Errorf("wrong receiver for decode")
	}

	decodeHook := func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() == reflect.String && f.Kind() == reflect.Slice {
			if bytes, ok := data.([]uint8); ok {
				return string(bytes), nil
			}
		}
		return data, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: decodeHook,
		Result:     &target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// Server side of the transport.
type Server struct {
	rpcHandler *RPCHandler
	logger     *slog.Logger
}

// Start initiates the server to begin listening on the specified address.
func (s *Server) Start(listenAddress string, handler model.OperationHandler, serverConfig model.TransportConfig) error {
	cfg, ok := serverConfig.(*Config)
	if !ok {
		return errors.New("not a valid rpc server config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.rpcHandler = &RPCHandler{OpHandler: handler}
	if err := s.startServer(listenAddress, s.rpcHandler, cfg); err != nil {
		s.logger.Error("failed to start rpc server", "error", err.Error())
		return err
	}

	s.logger.Info("rpc server started", "listenAddress", listenAddress)
	return nil
}

func (s *Server) startServer(listenAddress string, handler *RPCHandler, cfg *Config) error {
	tlsConfig, err := cfg.serverTLS()
	if err != nil {
		return err
	}

	rpcServer := rpc.NewServer()
	if err := rpcServer.Register(handler); err != nil {
		return err
	}

	var l net.Listener
	if tlsConfig != nil {
		l, err = tls.Listen("tcp", listenAddress, tlsConfig)
	} else {
		l, err = net.Listen("tcp", listenAddress)
	}
	if err != nil {
		return err
	}

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				s.logger.Error("failed to accept rpc connection", "error", err.Error())
				continue
			}

			rpcCodec := codec.MsgpackSpecRpc.ServerCodec(conn, &codec.MsgpackHandle{})
			go rpcServer.ServeCodec(rpcCodec)
		}
	}()
	return nil
}

// Client side of the transport.
type Client struct {
	// endpoint id to connection pool
	// string -> pool.Pool
	pools sync.Map

	logger *slog.Logger
}

// InitConnections initializes a connection pool per endpoint.
// It returns an error if any pool fails to come up.
func (c *Client) InitConnections(endpoints []*model.Endpoint, cfg model.TransportConfig) error {
	rpcCfg, ok := cfg.(*Config)
	if !ok {
		return errors.New("not a valid rpc client config")
	}

	for _, ep := range endpoints {
		p, err := c.createPool(*ep, rpcCfg)
		if err != nil {
			c.logger.Error("error connecting to endpoint", "endpoint", ep.ID)
			return err
		}
		c.pools.Store(ep.ID, p)
	}
	return nil
}

// SendRequest sends the operation request to one endpoint. The pooled
// connection is returned on success and discarded when the call fails.
func (c *Client) SendRequest(endpointID string, request *model.Request, response *model.Response) error {
	rpcClient, err := c.getClient(endpointID)
	if err != nil {
		return err
	}

	if err := rpcClient.Call("RPCHandler.Handle", request, response); err != nil {
		// a failed call may leave the connection unusable
		c.discardClient(endpointID, rpcClient)
		return fmt.Errorf("failed to call rpc handler: %s", err.Error())
	}

	if err := c.putClient(endpointID, rpcClient); err != nil {
		c.logger.Error("failed to put rpc client back to pool", "error", err.Error())
	}

	c.logger.Debug("send rpc request", "op", request.Op.String(), "to", endpointID)
	return nil
}

// Describe fetches the structured machine snapshot from one endpoint and
// decodes the payload.
func (c *Client) Describe(endpointID string, machineName string) (*model.Description, error) {
	response := &model.Response{}
	err := c.SendRequest(endpointID, &model.Request{
		Machine: machineName,
		Op:      model.OpDescribe,
	}, response)
	if err != nil {
		return nil, err
	}
	if response.Error != "" {
		return nil, errors.New(response.Error)
	}

	description := &model.Description{}
	if err := Decode(response.Payload, description); err != nil {
		return nil, fmt.Errorf("failed to decode description: %s", err.Error())
	}
	return description, nil
}

func (c *Client) createPool(ep model.Endpoint, cfg *Config) (pool.Pool, error) {
	poolConfig := &pool.Config{
		InitialCap:  poolInitCap,
		MaxIdle:     poolMaxIdle,
		MaxCap:      poolMaxCap,
		IdleTimeout: poolMaxIdleTime * time.Second,
		Factory: func() (interface{}, error) {
			tlsConfig, err := cfg.clientTLS()
			if err != nil {
				return nil, err
			}

			dialer := &net.Dialer{
				Timeout: time.Duration(cfg.ConnectTimeout) * time.Second,
			}
			var conn net.Conn
			if tlsConfig != nil {
				conn, err = tls.DialWithDialer(dialer, "tcp", ep.Address, tlsConfig)
			} else {
				conn, err = dialer.Dial("tcp", ep.Address)
			}
			if err != nil {
				return nil, err
			}

			rpcCodec := codec.MsgpackSpecRpc.ClientCodec(conn, &codec.MsgpackHandle{})
			return rpc.NewClientWithCodec(rpcCodec), nil
		},
		Close: func(v interface{}) error { return v.(*rpc.Client).Close() },
		Ping: func(v interface{}) error {
			var reply string
			return v.(*rpc.Client).Call("RPCHandler.Ping", struct{}{}, &reply)
		},
	}
	return pool.NewChannelPool(poolConfig)
}

func (c *Client) getClient(endpointID string) (*rpc.Client, error) {
	poolInf, ok := c.pools.Load(endpointID)
	if !ok {
		return nil, fmt.Errorf("no client pool found for endpoint %s", endpointID)
	}
	clientPool := poolInf.(pool.Pool)
	conn, err := clientPool.Get()
	if err != nil {
		return nil, fmt.Errorf("can not get client from pool for endpoint %s: %s", endpointID, err.Error())
	}
	return conn.(*rpc.Client), nil
}

func (c *Client) discardClient(endpointID string, client *rpc.Client) {
	poolInf, ok := c.pools.Load(endpointID)
	if !ok {
		_ = client.Close()
		return
	}
	if err := poolInf.(pool.Pool).Close(client); err != nil {
		c.logger.Error("failed to discard rpc client", "endpoint", endpointID, "error", err.Error())
	}
}

func (c *Client) putClient(endpointID string, client *rpc.Client) error {
	poolInf, ok := c.pools.Load(endpointID)
	if !ok {
		return fmt.Errorf("no client pool found for endpoint %s", endpointID)
	}
	clientPool := poolInf.(pool.Pool)
	if err := clientPool.Put(client); err != nil {
		return fmt.Errorf("failed to put client back to pool for endpoint %s: %s", endpointID, err.Error())
	}
	return nil
}
