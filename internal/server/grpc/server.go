// Package grpcserver exposes the vault daemon API over gRPC.
package grpcserver

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/and161185/keyvault/gen/go/keyvault/v1"
	"github.com/and161185/keyvault/internal/convert"
	"github.com/and161185/keyvault/internal/crypto"
	"github.com/and161185/keyvault/internal/service"
	"github.com/and161185/keyvault/internal/vault"
)

// eventBuffer is how many lifecycle events a slow Events client may lag behind.
const eventBuffer = 16

// Server wires the vault service into gRPC handlers.
type Server struct {
	pb.UnimplementedVaultServer

	svc service.VaultService
	log *zap.Logger
}

var _ pb.VaultServer = (*Server)(nil)

// New constructs a gRPC server with the injected service.
func New(svc service.VaultService, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log}
}

// NewGRPCServer builds a grpc.Server with the standard interceptor chain and the
// vault service registered.
func NewGRPCServer(srv *Server, log *zap.Logger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			RecoverUnary(log),
			LoggingUnary(log),
			AuthUnary(srv.svc.ValidateSession, ProtectedMethods()),
		),
		grpc.ChainStreamInterceptor(
			RecoverStream(log),
			LoggingStream(log),
		),
	}, opts...)
	gs := grpc.NewServer(opts...)
	pb.RegisterVaultServer(gs, srv)
	return gs
}

// Unlock opens the vault and returns a session token.
func (s *Server) Unlock(ctx context.Context, req *pb.UnlockRequest) (*pb.UnlockResponse, error) {
	defer crypto.Wipe(req.GetPassword())
	if len(req.GetPassword()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "empty password")
	}
	out, err := s.svc.Unlock(ctx, req.GetPassword(), req.GetUserId())
	if err != nil {
		return nil, toStatus(err)
	}
	return convert.ToProtoUnlockResponse(out), nil
}

// Lock locks the vault. It needs no session so that any local client can lock.
func (s *Server) Lock(_ context.Context, req *pb.LockRequest) (*pb.LockResponse, error) {
	reason := vault.Reason(req.GetReason())
	if reason == "" {
		reason = vault.ReasonManual
	}
	return &pb.LockResponse{Locked: s.svc.Lock(reason)}, nil
}

// Status returns public vault metadata.
func (s *Server) Status(ctx context.Context, _ *pb.StatusRequest) (*pb.StatusResponse, error) {
	st, err := s.svc.Status(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return convert.ToProtoStatusResponse(st), nil
}

// History returns the rotation and sync history.
func (s *Server) History(ctx context.Context, _ *pb.HistoryRequest) (*pb.HistoryResponse, error) {
	h, err := s.svc.History(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return convert.ToProtoHistoryResponse(h), nil
}

// RecordActivity resets the idle timer.
func (s *Server) RecordActivity(context.Context, *pb.RecordActivityRequest) (*pb.RecordActivityResponse, error) {
	s.svc.RecordActivity()
	return &pb.RecordActivityResponse{}, nil
}

// SecurityEvent forwards a platform signal.
func (s *Server) SecurityEvent(_ context.Context, req *pb.SecurityEventRequest) (*pb.SecurityEventResponse, error) {
	locked, err := s.svc.SecurityEvent(req.GetKind())
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.SecurityEventResponse{Locked: locked}, nil
}

// Rotate replaces the current keypair.
func (s *Server) Rotate(ctx context.Context, req *pb.RotateRequest) (*pb.RotateResponse, error) {
	rec, err := s.svc.Rotate(ctx, req.GetReason())
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.RotateResponse{Rotation: convert.ToProtoRotation(rec)}, nil
}

// Sign signs a message with the current key.
func (s *Server) Sign(ctx context.Context, req *pb.SignRequest) (*pb.SignResponse, error) {
	sig, err := s.svc.Sign(req.GetMessage())
	if err != nil {
		return nil, toStatus(err)
	}
	st, err := s.svc.Status(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.SignResponse{Signature: sig, PublicKey: st.CurrentPublicKey}, nil
}

// Export returns an encrypted export file.
func (s *Server) Export(ctx context.Context, req *pb.ExportRequest) (*pb.ExportResponse, error) {
	defer crypto.Wipe(req.GetPassword())
	defer crypto.Wipe(req.GetConfirm())
	name, data, err := s.svc.Export(ctx, req.GetPassword(), req.GetConfirm())
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ExportResponse{FileName: name, Data: data}, nil
}

// Import applies an export file.
func (s *Server) Import(ctx context.Context, req *pb.ImportRequest) (*pb.ImportResponse, error) {
	defer crypto.Wipe(req.GetPassword())
	res, err := s.svc.Import(ctx, req.GetData(), req.GetPassword())
	if err != nil {
		return nil, toStatus(err)
	}
	return convert.ToProtoImportResponse(res), nil
}

// Events streams lifecycle events until the client goes away. Events are dropped
// for a client that falls more than eventBuffer behind.
func (s *Server) Events(_ *pb.EventsRequest, stream grpc.ServerStreamingServer[pb.Event]) error {
	ch := make(chan vault.Event, eventBuffer)
	unsubscribe := s.svc.Subscribe(func(e vault.Event) {
		select {
		case ch <- e:
		default:
			s.log.Warn("event dropped for slow subscriber", zap.String("reason", string(e.Reason)))
		}
	})
	defer unsubscribe()

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-ch:
			if err := stream.Send(convert.ToProtoEvent(e)); err != nil {
				return err
			}
		}
	}
}
