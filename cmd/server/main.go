package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/reflection"

	grpcAdapter "github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/grpc"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/gpio"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/logled"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/memory"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/script"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/adapters/sqlite"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/led-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/led-service/pkg/ledpb"
	"github.com/quentinrf/plant-monitor/services/led-service/pkg/tlsconfig"
)

func main() {
	// Initialize logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Msg("starting led service")

	config := loadConfig()

	// Initialize repository
	var repo domain.EventRepository
	switch config.RepoType {
	case "sqlite":
		r, err := sqlite.NewEventRepository(config.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("db_path", config.DBPath).Msg("failed to open SQLite database")
		}
		defer r.Close()
		repo = r
		log.Info().Str("db_path", config.DBPath).Msg("initialized SQLite repository")
	default:
		repo = memory.NewEventRepository()
		log.Info().Msg("initialized in-memory repository")
	}

	// Initialize LED driver
	var driver ports.LEDDriver
	switch config.DriverType {
	case "gpio":
		pins, err := gpio.ParsePins(config.GPIOPins)
		if err != nil {
			log.Fatal().Err(err).Str("gpio_pins", config.GPIOPins).Msg("invalid GPIO_PINS")
		}
		bank, err := gpio.Open(pins)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open gpio led bank")
		}
		driver = bank
	case "log":
		driver = logled.New(log.Logger, config.LEDCount)
		log.Info().Int("leds", config.LEDCount).Msg("initialized logging led driver")
	default:
		driver = mock.NewFakeLEDBank(config.LEDCount)
		log.Info().Int("leds", config.LEDCount).Msg("initialized mock led bank")
	}

	recorder := ports.NewRecorder(driver, repo)
	defer recorder.Close()

	blinker := ports.NewBlinker(recorder, config.BlinkDelay, config.BlinkCycles)
	host := script.NewHost(recorder)

	handler := grpcAdapter.NewLEDServiceHandler(recorder, blinker, host, repo)

	// Configure TLS if certificates are provided
	var serverOpts []grpc.ServerOption
	if config.TLSCert != "" {
		tlsCfg, err := tlsconfig.LoadServerTLS(config.TLSCert, config.TLSKey, config.TLSCA)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load TLS config")
		}
		serverOpts = append(serverOpts, grpc.Creds(credentials.NewTLS(tlsCfg)))
		log.Info().Msg("mTLS enabled")
	} else {
		log.Warn().Msg("TLS_CERT not set, starting without TLS (dev mode only)")
	}

	grpcServer := grpc.NewServer(serverOpts...)
	ledpb.RegisterLEDServiceServer(grpcServer, handler)

	// Enable gRPC reflection for grpcurl testing
	reflection.Register(grpcServer)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", config.Port))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen")
	}

	log.Info().Str("port", config.Port).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatal().Err(err).Msg("failed to serve")
		}
	}()

	// Start background loops
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.HeartbeatInterval > 0 {
		go blinker.Start(ctx, config.HeartbeatInterval)
	}
	go recorder.StartRetention(ctx, time.Hour, config.Retention)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	cancel()
	grpcServer.GracefulStop()

	log.Info().Msg("server stopped")
}

// Config holds application configuration
type Config struct {
	Port              string
	DriverType        string // "mock" | "log" | "gpio"
	LEDCount          int    // LEDs on mock/log drivers
	GPIOPins          string // BCM pins for the gpio driver, LED order
	BlinkDelay        int    // busy-wait count between on and off
	BlinkCycles       int    // blinks per native run
	HeartbeatInterval time.Duration
	Retention         time.Duration
	RepoType          string // "memory" | "sqlite"
	DBPath            string // SQLite database file path (used when RepoType=sqlite)
	TLSCert           string // path to this service's certificate
	TLSKey            string // path to this service's private key
	TLSCA             string // path to the CA certificate
}

// loadConfig reads configuration from environment variables
func loadConfig() Config {
	return Config{
		Port:              envString("PORT", "50052"),
		DriverType:        envString("DRIVER_TYPE", "mock"),
		LEDCount:          envInt("LED_COUNT", domain.DefaultLEDCount),
		GPIOPins:          envString("GPIO_PINS", "17,27,22,23"),
		BlinkDelay:        envInt("BLINK_DELAY", ports.DefaultDelay),
		BlinkCycles:       envInt("BLINK_CYCLES", ports.DefaultCycles),
		HeartbeatInterval: envDuration("HEARTBEAT_INTERVAL", 0),
		Retention:         envDuration("RETENTION", 7*24*time.Hour),
		RepoType:          envString("REPO_TYPE", "memory"),
		DBPath:            envString("DB_PATH", "./led.db"),
		TLSCert:           os.Getenv("TLS_CERT"),
		TLSKey:            os.Getenv("TLS_KEY"),
		TLSCA:             os.Getenv("TLS_CA"),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Warn().Str(key, v).Int("default", def).Msg("ignoring invalid integer")
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warn().Str(key, v).Dur("default", def).Msg("ignoring invalid duration")
	}
	return def
}
