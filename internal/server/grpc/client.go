package grpcserver

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	pb "github.com/and161185/keyvault/gen/go/keyvault/v1"
)

// Client talks to keyvaultd over its unix socket.
type Client struct {
	cc    *grpc.ClientConn
	rpc   pb.VaultClient
	token string
}

// Dial connects to the daemon listening on socketPath. No I/O happens until the first call.
func Dial(socketPath string, opts ...grpc.DialOption) (*Client, error) {
	return dialTarget("unix://"+socketPath, opts...)
}

func dialTarget(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	cc, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, rpc: pb.NewVaultClient(cc)}, nil
}

// Close closes the connection.
func (c *Client) Close() error { return c.cc.Close() }

// SetToken attaches a session token to subsequent calls.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) ctx(ctx context.Context) context.Context {
	if c.token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
}

// Unlock unlocks the vault and keeps the returned token.
func (c *Client) Unlock(ctx context.Context, password []byte, userID string) (*pb.UnlockResponse, error) {
	resp, err := c.rpc.Unlock(c.ctx(ctx), &pb.UnlockRequest{Password: password, UserId: userID})
	if err != nil {
		return nil, err
	}
	c.token = resp.GetToken()
	return resp, nil
}

func (c *Client) Lock(ctx context.Context, reason string) (bool, error) {
	resp, err := c.rpc.Lock(c.ctx(ctx), &pb.LockRequest{Reason: reason})
	return resp.GetLocked(), err
}

func (c *Client) Status(ctx context.Context) (*pb.StatusResponse, error) {
	return c.rpc.Status(c.ctx(ctx), &pb.StatusRequest{})
}

func (c *Client) History(ctx context.Context) (*pb.HistoryResponse, error) {
	return c.rpc.History(c.ctx(ctx), &pb.HistoryRequest{})
}

func (c *Client) RecordActivity(ctx context.Context) error {
	_, err := c.rpc.RecordActivity(c.ctx(ctx), &pb.RecordActivityRequest{})
	return err
}

func (c *Client) SecurityEvent(ctx context.Context, kind string) (bool, error) {
	resp, err := c.rpc.SecurityEvent(c.ctx(ctx), &pb.SecurityEventRequest{Kind: kind})
	return resp.GetLocked(), err
}

func (c *Client) Rotate(ctx context.Context, reason string) (*pb.RotateResponse, error) {
	return c.rpc.Rotate(c.ctx(ctx), &pb.RotateRequest{Reason: reason})
}

func (c *Client) Sign(ctx context.Context, msg []byte) (*pb.SignResponse, error) {
	return c.rpc.Sign(c.ctx(ctx), &pb.SignRequest{Message: msg})
}

func (c *Client) Export(ctx context.Context, password, confirm []byte) (*pb.ExportResponse, error) {
	return c.rpc.Export(c.ctx(ctx), &pb.ExportRequest{Password: password, Confirm: confirm})
}

func (c *Client) Import(ctx context.Context, data, password []byte) (*pb.ImportResponse, error) {
	return c.rpc.Import(c.ctx(ctx), &pb.ImportRequest{Data: data, Password: password})
}

// Events calls fn for every lifecycle event until ctx ends or the stream breaks.
func (c *Client) Events(ctx context.Context, fn func(*pb.Event)) error {
	stream, err := c.rpc.Events(c.ctx(ctx), &pb.EventsRequest{})
	if err != nil {
		return err
	}
	for {
		e, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		fn(e)
	}
}
