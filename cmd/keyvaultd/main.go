// Command keyvaultd holds one vault in memory and serves it on a local unix socket.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	pb "github.com/and161185/keyvault/gen/go/keyvault/v1"
	"github.com/and161185/keyvault/internal/app"
	"github.com/and161185/keyvault/internal/config"
	grpcserver "github.com/and161185/keyvault/internal/server/grpc"
	"github.com/and161185/keyvault/internal/service"
	"github.com/and161185/keyvault/internal/vault"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Flags
	cfgPath := flag.String("config", "", "config file (default "+config.DefaultPath()+")")
	vaultID := flag.String("vault", "", "vault id")
	store := flag.String("store", "", "keystore directory")
	dsn := flag.String("dsn", "", "PostgreSQL DSN (overrides -store)")
	socket := flag.String("socket", "", "unix socket path")
	sessionTTL := flag.Duration("session-ttl", service.DefaultSessionTTL, "maximum session lifetime")
	dev := flag.Bool("dev", false, "development logging and server reflection")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}
	if *vaultID != "" {
		cfg.VaultID = *vaultID
	}
	if *store != "" {
		cfg.StoreDir = *store
	}
	if *dsn != "" {
		cfg.DSN = *dsn
	}
	if *socket != "" {
		cfg.Socket = *socket
	}

	logger, err := cfg.Logger()
	if *dev || err != nil {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("vault", cfg.VaultID),
		zap.String("socket", cfg.Socket),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	v, err := app.Open(ctx, cfg, logger, service.WithSessionTTL(*sessionTTL))
	if err != nil {
		logger.Fatal("open vault", zap.Error(err))
	}
	defer v.Close()
	logger.Info("store ready", zap.String("backend", v.Backend))

	s := grpcserver.NewGRPCServer(grpcserver.New(v.Service, logger), logger)

	// Health & reflection (dev)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus(pb.Vault_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	if *dev {
		reflection.Register(s)
	}

	unsub := v.Service.Subscribe(func(e vault.Event) {
		if e.Type == vault.EventStateChanged {
			logger.Debug("vault state", zap.Stringer("state", e.NewState), zap.String("reason", string(e.Reason)))
		}
	})
	defer unsub()

	// Listen
	lis, err := grpcserver.ListenUnix(cfg.Socket)
	if err != nil {
		if errors.Is(err, grpcserver.ErrDaemonRunning) {
			logger.Error("refusing to start", zap.Error(err))
			os.Exit(1)
		}
		logger.Fatal("listen", zap.Error(err))
	}
	defer lis.Close()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("socket", cfg.Socket))
		errCh <- s.Serve(lis)
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		hs.Shutdown()
		v.Service.Lock(vault.ReasonShutdown)
		done := make(chan struct{})
		go func() {
			s.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			s.Stop()
		}
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		v.Close()
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
