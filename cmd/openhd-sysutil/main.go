// Package main provides the CLI entry point for openhd-sysutil
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/adapter"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/api"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/catalog"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/control"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/dispatch"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/service"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/socket"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/store"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/config"
	"github.com/barakbk-hailo/OpenHD-SysUtils/pkg/version"
)

var (
	rootCmd = &cobra.Command{
		Use:   "openhd-sysutil",
		Short: "OpenHD wireless system utility daemon",
		Long: `openhd-sysutil inventories wireless adapters from sysfs, resolves
per-card transmit-power policy against a profile catalog and persisted
overrides, and serves the result over a unix socket. RF change requests
are relayed to the OpenHD control peer.`,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the sysutil daemon",
		Long:  `Start the daemon that answers wifi state requests and relays RF control.`,
		RunE:  runServe,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.GetInfo()
			fmt.Println(info.String())
		},
	}

	// Serve flags
	serveConfigPath    string
	serveStateDir      string
	serveRequestSocket string
	serveControlSocket string
	serveDebugListen   string
	serveLogFile       string
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to YAML config file")
	serveCmd.Flags().StringVar(&serveStateDir, "state-dir", "", "Directory for overrides and the card catalog")
	serveCmd.Flags().StringVar(&serveRequestSocket, "request-socket", "", "Unix socket to serve requests on")
	serveCmd.Flags().StringVar(&serveControlSocket, "control-socket", "", "Unix socket of the OpenHD control peer")
	serveCmd.Flags().StringVar(&serveDebugListen, "debug-listen", "", "Address for the HTTP status API (disabled when empty)")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "Tee logs to a rotating file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if serveStateDir != "" {
		cfg.StateDir = serveStateDir
	}
	if serveRequestSocket != "" {
		cfg.RequestSocket = serveRequestSocket
	}
	if serveControlSocket != "" {
		cfg.ControlSocket = serveControlSocket
	}
	if serveDebugListen != "" {
		cfg.DebugListen = serveDebugListen
	}
	if serveLogFile != "" {
		cfg.LogFile = serveLogFile
	}

	// Log to stderr; stdout stays free for scripting.
	logger := createLogger(cfg.LogFile)
	defer logger.Sync()

	logger.Info("starting openhd-sysutil",
		zap.String("version", version.Version),
		zap.String("state_dir", cfg.StateDir),
		zap.String("request_socket", cfg.RequestSocket),
		zap.String("control_socket", cfg.ControlSocket))

	wifiService := service.NewWifiService(
		adapter.NewSysfsAdapter(logger),
		catalog.New(cfg.CardsPath(), logger),
		store.NewTypeOverrideStore(cfg.OverridesPath(), logger),
		store.NewTxPowerStore(cfg.TxPowerOverridesPath(), logger),
		logger,
	)
	wifiService.Refresh()
	logger.Info("initial card scan complete",
		zap.Int("cards", len(wifiService.Cards())),
		zap.Bool("wifibroadcast", wifiService.HasWifibroadcastCards()))

	controlClient := control.NewClient(
		cfg.ControlSocket, cfg.ControlTimeout(), cfg.MaxLineBytes, logger)
	dispatcher := dispatch.New(wifiService, controlClient, logger)
	server := socket.NewServer(cfg.RequestSocket, cfg.MaxLineBytes, dispatcher, logger)

	var statusServer *api.Server
	if cfg.DebugListen != "" {
		statusServer = api.NewServer(cfg, wifiService, logger)
		go func() {
			if err := statusServer.Start(); err != nil {
				logger.Error("status API failed", zap.Error(err))
			}
		}()
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down...")
		if statusServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := statusServer.Stop(ctx); err != nil {
				logger.Error("error during status API shutdown", zap.Error(err))
			}
		}
		server.Stop()
	}()

	return server.ListenAndServe()
}

func createLogger(logFile string) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	sink := zapcore.AddSync(os.Stderr)
	if logFile != "" {
		rotated := zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		})
		sink = zapcore.NewMultiWriteSyncer(sink, rotated)
	}

	core := zapcore.NewCore(encoder, sink, zap.InfoLevel)
	return zap.New(core)
}
