// Package schedulergrpc dials the scheduler over mutual TLS and exposes
// its calls with a stable error classification. Calls carry their own
// deadline and are never retried; a failed call surfaces immediately.
package schedulergrpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"

	"pkt.systems/glharness/internal/schedulerpb"
	"pkt.systems/glharness/schema"
	"pkt.systems/pslog"
)

const defaultCallTimeout = 10 * time.Second

// Config holds the endpoint and identity used to reach the scheduler.
type Config struct {
	// URI is the scheduler endpoint, e.g. "https://localhost:39095".
	URI       string
	CACrtPath string
	CrtPath   string
	KeyPath   string
	// CallTimeout bounds each call. Zero selects the default.
	CallTimeout time.Duration
}

// DeviceCreds is the credential pair minted during registration.
type DeviceCreds struct {
	CertPEM []byte
	KeyPEM  []byte
}

// NodeInfo describes a scheduled node.
type NodeInfo struct {
	NodeID  string
	GRPCURI string
	Version string
}

// Client calls the scheduler service.
type Client struct {
	conn    *grpc.ClientConn
	client  schedulerpb.SchedulerClient
	timeout time.Duration
}

// Dial prepares a scheduler client. The connection is lazy; transport
// failures surface on the first call.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, schema.NewError(schema.KindConfiguration, "scheduler dial",
			errors.New("scheduler uri is required"))
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, wrapCallError("dial", err)
	}
	tlsCfg, err := ClientTLS(cfg.CACrtPath, cfg.CrtPath, cfg.KeyPath)
	if err != nil {
		return nil, err
	}
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	conn, err := grpc.NewClient(
		grpcTarget(cfg.URI),
		grpc.WithTransportCredentials(credentials.NewTLS(tlsCfg)),
		grpc.WithDisableRetry(),
	)
	if err != nil {
		return nil, wrapCallError("dial", err)
	}
	return &Client{conn: conn, client: schedulerpb.NewSchedulerClient(conn), timeout: timeout}, nil
}

// Close closes the underlying gRPC connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Ping verifies the scheduler is reachable and returns its version.
func (c *Client) Ping(ctx context.Context) (string, error) {
	log := pslog.Ctx(ctx)
	log.Trace("scheduler ping")
	ctx, cancel := c.callContext(ctx)
	defer cancel()
	resp, err := c.client.Ping(ctx, &schedulerpb.PingRequest{})
	if err != nil {
		logGRPCError(log, "scheduler ping failed", err)
		return "", wrapCallError("ping", err)
	}
	return resp.GetVersion(), nil
}

// Register registers a node identity and returns its device credentials.
func (c *Client) Register(ctx context.Context, nodeID, network string) (DeviceCreds, error) {
	if strings.TrimSpace(nodeID) == "" {
		return DeviceCreds{}, schema.NewError(schema.KindConfiguration, "scheduler register",
			errors.New("node id is required"))
	}
	log := pslog.Ctx(ctx).With("node_id", nodeID)
	log.Info("scheduler register start", "network", network)
	ctx, cancel := c.callContext(ctx)
	defer cancel()
	resp, err := c.client.Register(ctx, &schedulerpb.RegisterRequest{NodeId: nodeID, Network: network})
	if err != nil {
		logGRPCError(log, "scheduler register failed", err)
		return DeviceCreds{}, wrapCallError("register", err)
	}
	log.Info("scheduler register ok")
	return DeviceCreds{
		CertPEM: []byte(resp.GetDeviceCert()),
		KeyPEM:  []byte(resp.GetDeviceKey()),
	}, nil
}

// Schedule asks the scheduler to start the node and returns its endpoint.
func (c *Client) Schedule(ctx context.Context, nodeID string) (NodeInfo, error) {
	log := pslog.Ctx(ctx).With("node_id", nodeID)
	log.Info("scheduler schedule start")
	ctx, cancel := c.callContext(ctx)
	defer cancel()
	resp, err := c.client.Schedule(ctx, &schedulerpb.ScheduleRequest{NodeId: nodeID})
	if err != nil {
		logGRPCError(log, "scheduler schedule failed", err)
		return NodeInfo{}, wrapCallError("schedule", err)
	}
	log.Info("scheduler schedule ok", "grpc_uri", resp.GetGrpcUri())
	return NodeInfo{NodeID: resp.GetNodeId(), GRPCURI: resp.GetGrpcUri()}, nil
}

// GetNodeInfo fetches the endpoint of a registered node.
func (c *Client) GetNodeInfo(ctx context.Context, nodeID string, wait bool) (NodeInfo, error) {
	log := pslog.Ctx(ctx).With("node_id", nodeID)
	log.Debug("scheduler node info", "wait", wait)
	ctx, cancel := c.callContext(ctx)
	defer cancel()
	resp, err := c.client.GetNodeInfo(ctx, &schedulerpb.NodeInfoRequest{NodeId: nodeID, Wait: wait})
	if err != nil {
		logGRPCError(log, "scheduler node info failed", err)
		return NodeInfo{}, wrapCallError("node info", err)
	}
	return NodeInfo{
		NodeID:  resp.GetNodeId(),
		GRPCURI: resp.GetGrpcUri(),
		Version: resp.GetVersion(),
	}, nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, c.timeout)
}

// grpcTarget strips a URI scheme so the endpoint can be used as a dial
// target. "https://localhost:39095" becomes "localhost:39095".
func grpcTarget(uri string) string {
	for _, scheme := range []string{"https://", "http://", "grpc://"} {
		if strings.HasPrefix(uri, scheme) {
			return strings.TrimPrefix(uri, scheme)
		}
	}
	return uri
}

func wrapCallError(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *schema.Error
	if errors.As(err, &existing) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return schema.NewError(schema.KindTimeout, op, err)
	}
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable:
			return schema.NewError(schema.KindConnection, op, err)
		case codes.DeadlineExceeded, codes.Canceled:
			return schema.NewError(schema.KindTimeout, op, err)
		default:
			return schema.NewError(schema.KindProtocol, op, err)
		}
	}
	return schema.NewError(schema.KindConnection, op, err)
}

func logGRPCError(log pslog.Logger, msg string, err error) {
	if log == nil || err == nil {
		return
	}
	if st, ok := status.FromError(err); ok {
		log.Warn(msg, "err", err, "code", st.Code().String(), "message", st.Message())
		return
	}
	log.Warn(msg, "err", err)
}
