package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	googlegrpc "google.golang.org/grpc"

	"github.com/Kwonjooeun/weaponctl/internal/adapters/grpc"
	"github.com/Kwonjooeun/weaponctl/internal/adapters/metrics"
	"github.com/Kwonjooeun/weaponctl/internal/adapters/persistence"
	"github.com/Kwonjooeun/weaponctl/internal/application/mediator"
	weaponapp "github.com/Kwonjooeun/weaponctl/internal/application/weaponctl"
	"github.com/Kwonjooeun/weaponctl/internal/domain/factory"
	"github.com/Kwonjooeun/weaponctl/internal/domain/fleet"
	"github.com/Kwonjooeun/weaponctl/internal/domain/mineplan"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/targetcache"
	"github.com/Kwonjooeun/weaponctl/internal/infrastructure/config"
	"github.com/Kwonjooeun/weaponctl/internal/infrastructure/database"
	"github.com/Kwonjooeun/weaponctl/internal/infrastructure/logging"
	"github.com/Kwonjooeun/weaponctl/internal/infrastructure/pidfile"
	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = search default paths)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("warning: failed to release PID file: %v", err)
		}
	}()

	if err := run(cfg); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	logger, err := logging.NewStdLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	clock := shared.NewRealClock()

	var mineLib mineplan.Library
	var cache *targetcache.Cache

	switch cfg.Persistence.Type {
	case "memory":
		cache = targetcache.New(clock)
		mineLib = persistence.NewFileMinePlanRepository(cfg.Paths.MineDataPath)
		logger.Log("info", "using filesystem mine plan library and in-memory target cache", nil)
	default:
		db, dbErr := database.NewConnection(&cfg.Persistence)
		if dbErr != nil {
			return fmt.Errorf("failed to connect to %s database: %w", cfg.Persistence.Type, dbErr)
		}
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		mineLib = persistence.NewGormMinePlanRepository(db)
		cache = targetcache.New(clock)
		logger.Log("info", "connected to database", map[string]interface{}{"type": cfg.Persistence.Type})
	}

	fac := factory.New(factory.Config{
		DefaultLaunchDelay: cfg.Weapon.DefaultLaunchDelay,
		MineSpeed:          cfg.Weapon.MineSpeed,
		ALMMaxRange:        cfg.Weapon.ALMMaxRange,
		ASMMaxRange:        cfg.Weapon.ASMMaxRange,
		ALMSpeed:           cfg.Weapon.ALMSpeed,
		ASMSpeed:           cfg.Weapon.ASMSpeed,
		AAMSpeed:           cfg.Weapon.AAMSpeed,
	})

	f := fleet.New(cfg.System.MaxLaunchTubes, fac, clock, cache)

	sweeper := targetcache.NewSweeper(cache, time.Duration(cfg.System.UpdateIntervalMs)*time.Millisecond, 10*time.Minute)
	sweeper.Start()
	defer sweeper.Stop()

	med := mediator.NewMediator()
	if err := weaponapp.RegisterHandlers(med, f, mineLib); err != nil {
		return fmt.Errorf("failed to register command handlers: %w", err)
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	daemonServer := grpc.NewDaemonServer(med, f, logger)
	defer daemonServer.Close()

	scheduler := grpc.NewFleetScheduler(f, time.Duration(cfg.System.UpdateIntervalMs)*time.Millisecond, logger)
	scheduler.Start()
	defer scheduler.Stop()

	server := googlegrpc.NewServer(
		googlegrpc.ChainUnaryInterceptor(grpc.RateLimitInterceptor(cfg.Daemon.RateLimit.RequestsPerSecond, cfg.Daemon.RateLimit.Burst)),
		googlegrpc.ChainStreamInterceptor(grpc.StreamRateLimitInterceptor(cfg.Daemon.RateLimit.RequestsPerSecond, cfg.Daemon.RateLimit.Burst)),
	)
	rpc.RegisterFleetServiceServer(server, daemonServer)

	listenAddr := cfg.Daemon.SocketPath
	network := "unix"
	if listenAddr == "" {
		listenAddr = cfg.Daemon.Address
		network = "tcp"
	} else {
		os.Remove(listenAddr)
	}

	lis, err := net.Listen(network, listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s %s: %w", network, listenAddr, err)
	}
	logger.Log("info", "daemon listening", map[string]interface{}{"network": network, "address": listenAddr})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(lis)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Log("info", "shutdown signal received", map[string]interface{}{"signal": sig.String()})
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("grpc server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		logger.Log("info", "daemon stopped cleanly", nil)
	case <-ctx.Done():
		server.Stop()
		logger.Log("warn", "shutdown timeout exceeded, forced stop", nil)
	}

	return nil
}
