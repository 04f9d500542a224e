package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/quicktime/internal/config"
	"github.com/verte-zerg/quicktime/internal/logging"
	"github.com/verte-zerg/quicktime/internal/model"
	"github.com/verte-zerg/quicktime/internal/tui"
)

const (
	defaultSSHHost  = "::"
	defaultSSHPort  = 2222
	shutdownTimeout = 5 * time.Second

	envSSHHost    = "QUICKTIME_SSH_HOST"
	envSSHPort    = "QUICKTIME_SSH_PORT"
	envSSHHostKey = "QUICKTIME_SSH_HOST_KEY"
)

var (
	serveHost    string
	servePort    int
	serveHostKey string
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the game over SSH",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveHost, "host", defaultSSHHost, "SSH listen host")
	cmd.Flags().IntVar(&servePort, "port", defaultSSHPort, "SSH listen port")
	cmd.Flags().StringVar(&serveHostKey, "host-key", "", "SSH host key path (default: $XDG_DATA_HOME/quicktime/host_key)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine.
	_ = godotenv.Load()

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, logCfg, err := resolveGameConfig(cmd, fileCfg)
	if err != nil {
		return err
	}
	serveCfg, err := resolveServeConfig(cmd, fileCfg, os.LookupEnv)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(logCfg.Level)
	if err != nil {
		return err
	}
	logger := logging.Console(os.Stderr, level)

	addr := net.JoinHostPort(serveCfg.Host, strconv.Itoa(serveCfg.Port))
	s, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(serveCfg.HostKeyPath),
		wish.WithMiddleware(
			bm.Middleware(sessionHandler(cfg, logger)),
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	logger.Info().Str("addr", addr).Msg("starting SSH server")

	errCh := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("SSH server failed: %w", err)
	case <-done:
	}

	logger.Info().Msg("stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("failed to stop SSH server: %w", err)
	}
	return nil
}

// sessionHandler starts one independent game per SSH session.
func sessionHandler(cfg model.Config, logger zerolog.Logger) bm.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		sessionLog := logger.With().
			Str("session_id", uuid.NewString()).
			Str("user", sess.User()).
			Logger()
		sessionLog.Info().Str("remote", sess.RemoteAddr().String()).Msg("session started")

		m := tui.NewModel(cfg, sessionLog, tui.WithRenderer(bm.MakeRenderer(sess)))
		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

type lookupEnvFunc func(string) (string, bool)

// resolveServeConfig applies, in increasing priority, defaults, the config
// file, environment variables and explicit flags.
func resolveServeConfig(cmd *cobra.Command, fileCfg config.FileConfig, lookup lookupEnvFunc) (model.ServeConfig, error) {
	applyStringConfig(cmd, "host", &serveHost, fileCfg.Serve.Host)
	applyIntConfig(cmd, "port", &servePort, fileCfg.Serve.Port)
	applyStringConfig(cmd, "host-key", &serveHostKey, fileCfg.Serve.HostKey)

	if !cmd.Flags().Changed("host") {
		if v, ok := lookupNonEmpty(lookup, envSSHHost); ok {
			serveHost = v
		}
	}
	if !cmd.Flags().Changed("port") {
		if v, ok := lookupNonEmpty(lookup, envSSHPort); ok {
			port, err := strconv.Atoi(v)
			if err != nil {
				return model.ServeConfig{}, fmt.Errorf("%s: invalid port %q", envSSHPort, v)
			}
			servePort = port
		}
	}
	if !cmd.Flags().Changed("host-key") {
		if v, ok := lookupNonEmpty(lookup, envSSHHostKey); ok {
			serveHostKey = v
		}
	}

	cfg := model.ServeConfig{
		Host:        serveHost,
		Port:        servePort,
		HostKeyPath: serveHostKey,
	}
	if cfg.HostKeyPath == "" {
		cfg.HostKeyPath = config.DefaultHostKeyPath()
	}
	if err := validateServeConfig(cfg); err != nil {
		return model.ServeConfig{}, err
	}
	return cfg, nil
}

func lookupNonEmpty(lookup lookupEnvFunc, name string) (string, bool) {
	v, ok := lookup(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func validateServeConfig(cfg model.ServeConfig) error {
	if strings.TrimSpace(cfg.Host) == "" {
		return fmt.Errorf("--host must not be empty")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("--port must be between 1 and 65535")
	}
	return nil
}
