package schedulergrpc

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"

	"pkt.systems/glharness/internal/schedulerpb"
	"pkt.systems/pslog"
)

// Issuer mints client certificates for registered devices.
type Issuer interface {
	IssueClientPEM(name string) (certPEM, keyPEM []byte, err error)
}

// MockScheduler is an in-process scheduler used when the harness runs
// without a real backend. It keeps registrations in memory and signs
// device credentials with the environment authority.
type MockScheduler struct {
	schedulerpb.UnimplementedSchedulerServer

	issuer  Issuer
	version string
	nodeURI string
	logger  pslog.Logger

	mu        sync.Mutex
	nodes     map[string]string
	scheduled map[string]bool
}

// NewMockScheduler constructs a mock scheduler. nodeURI is the endpoint
// handed out for every scheduled node.
func NewMockScheduler(issuer Issuer, version, nodeURI string, logger pslog.Logger) *MockScheduler {
	return &MockScheduler{
		issuer:    issuer,
		version:   version,
		nodeURI:   nodeURI,
		logger:    logger,
		nodes:     make(map[string]string),
		scheduled: make(map[string]bool),
	}
}

// Serve runs the scheduler on listener until ctx is canceled.
func (s *MockScheduler) Serve(ctx context.Context, listener net.Listener, tlsCfg *tls.Config) error {
	if tlsCfg == nil {
		return errors.New("mock scheduler requires a tls config")
	}
	if s.logger == nil {
		s.logger = pslog.Ctx(ctx)
	}
	grpcServer := grpc.NewServer(grpc.Creds(credentials.NewTLS(tlsCfg)))
	schedulerpb.RegisterSchedulerServer(grpcServer, s)
	s.logger.Info("mock scheduler listening", "addr", listener.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- grpcServer.Serve(listener)
	}()
	select {
	case <-ctx.Done():
		grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// ListenAndServe listens on addr and serves until ctx is canceled.
func (s *MockScheduler) ListenAndServe(ctx context.Context, addr string, tlsCfg *tls.Config) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener, tlsCfg)
}

// Ping reports the scheduler version.
func (s *MockScheduler) Ping(ctx context.Context, _ *schedulerpb.PingRequest) (*schedulerpb.PingResponse, error) {
	s.log(ctx).Trace("mock scheduler ping")
	return &schedulerpb.PingResponse{Version: s.version}, nil
}

// Register records a node identity and mints its device credentials.
// Re-registering a known node is rejected.
func (s *MockScheduler) Register(ctx context.Context, req *schedulerpb.RegisterRequest) (*schedulerpb.RegisterResponse, error) {
	nodeID := req.GetNodeId()
	if nodeID == "" {
		return nil, status.Error(codes.InvalidArgument, "node_id is required")
	}
	s.mu.Lock()
	if _, exists := s.nodes[nodeID]; exists {
		s.mu.Unlock()
		return nil, status.Errorf(codes.AlreadyExists, "node %s is already registered", nodeID)
	}
	s.nodes[nodeID] = req.GetNetwork()
	s.mu.Unlock()

	certPEM, keyPEM, err := s.issuer.IssueClientPEM(fmt.Sprintf("device-%s", nodeID))
	if err != nil {
		s.mu.Lock()
		delete(s.nodes, nodeID)
		s.mu.Unlock()
		s.log(ctx).Warn("mock scheduler register failed", "node_id", nodeID, "err", err)
		return nil, status.Errorf(codes.Internal, "device credential issue failed: %v", err)
	}
	s.log(ctx).Info("mock scheduler register ok", "node_id", nodeID, "network", req.GetNetwork())
	return &schedulerpb.RegisterResponse{
		DeviceCert: string(certPEM),
		DeviceKey:  string(keyPEM),
	}, nil
}

// Schedule marks a registered node as running and returns its endpoint.
func (s *MockScheduler) Schedule(ctx context.Context, req *schedulerpb.ScheduleRequest) (*schedulerpb.ScheduleResponse, error) {
	nodeID := req.GetNodeId()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.nodes[nodeID]; !exists {
		return nil, status.Errorf(codes.NotFound, "node %s is not registered", nodeID)
	}
	s.scheduled[nodeID] = true
	s.log(ctx).Info("mock scheduler schedule ok", "node_id", nodeID)
	return &schedulerpb.ScheduleResponse{NodeId: nodeID, GrpcUri: s.nodeURI}, nil
}

// GetNodeInfo returns the endpoint of a scheduled node. With wait set the
// node is scheduled on demand, mirroring a scheduler that spins nodes up
// lazily.
func (s *MockScheduler) GetNodeInfo(ctx context.Context, req *schedulerpb.NodeInfoRequest) (*schedulerpb.NodeInfoResponse, error) {
	nodeID := req.GetNodeId()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.nodes[nodeID]; !exists {
		return nil, status.Errorf(codes.NotFound, "node %s is not registered", nodeID)
	}
	if !s.scheduled[nodeID] {
		if !req.GetWait() {
			return nil, status.Errorf(codes.FailedPrecondition, "node %s is not scheduled", nodeID)
		}
		s.scheduled[nodeID] = true
	}
	return &schedulerpb.NodeInfoResponse{
		NodeId:  nodeID,
		GrpcUri: s.nodeURI,
		Version: s.version,
	}, nil
}

func (s *MockScheduler) log(ctx context.Context) pslog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return pslog.Ctx(ctx)
}
