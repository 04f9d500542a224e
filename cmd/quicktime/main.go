// Package main provides the CLI entrypoint for quicktime.
package main

import (
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/quicktime/internal/config"
	"github.com/verte-zerg/quicktime/internal/logging"
	"github.com/verte-zerg/quicktime/internal/model"
	"github.com/verte-zerg/quicktime/internal/sequence"
	"github.com/verte-zerg/quicktime/internal/tui"
)

const (
	defaultDuration = 3.0
	defaultConfetti = true
	defaultLogLevel = "info"
)

var (
	gameDuration float64
	gameSequence []string
	gameConfetti bool

	logLevel string
	logFile  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "quicktime",
		Short:         "Press the arrow sequence before the timer runs out",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.Float64Var(&gameDuration, "duration", defaultDuration, "seconds allowed per round")
	flags.StringSliceVar(&gameSequence, "sequence", defaultSequence(), "keys to match (ArrowUp, ArrowDown, ArrowLeft, ArrowRight)")
	flags.BoolVar(&gameConfetti, "confetti", defaultConfetti, "celebrate wins with confetti")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "log file (default: $XDG_DATA_HOME/quicktime/quicktime.log)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, logCfg, err := resolveGameConfig(cmd, fileCfg)
	if err != nil {
		return err
	}
	if logCfg.File == "" {
		logCfg.File = config.DefaultLogPath()
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("quicktime needs an interactive terminal; use `quicktime serve` to host it over SSH")
	}

	level, err := logging.ParseLevel(logCfg.Level)
	if err != nil {
		return err
	}
	logger, closer, err := logging.OpenFile(logCfg.File, level)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()
	logger = logger.With().Str("session_id", uuid.NewString()).Logger()

	m := tui.NewModel(cfg, logger)
	defer m.Close()
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveGameConfig merges flags with the config file and validates the result.
// Flags set on the command line win over file values.
func resolveGameConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.Config, model.LogConfig, error) {
	applyFloatConfig(cmd, "duration", &gameDuration, fileCfg.Game.Duration)
	applyStringSliceConfig(cmd, "sequence", &gameSequence, fileCfg.Game.Sequence)
	applyBoolConfig(cmd, "confetti", &gameConfetti, fileCfg.Confetti.Enabled)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	cfg := model.Config{
		Duration: secondsToDuration(gameDuration),
		Sequence: normalizeSequence(gameSequence),
		Confetti: gameConfetti,
	}
	logCfg := model.LogConfig{Level: logLevel, File: logFile}
	if err := validateConfig(gameDuration, cfg, logCfg); err != nil {
		return model.Config{}, model.LogConfig{}, err
	}
	return cfg, logCfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig writes the commented template unless a config already exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

func defaultSequence() []string {
	seq := sequence.DefaultSequence()
	out := make([]string, len(seq))
	for i, s := range seq {
		out[i] = string(s)
	}
	return out
}

var sequenceAliases = map[string]string{
	"up":    string(sequence.Up),
	"down":  string(sequence.Down),
	"left":  string(sequence.Left),
	"right": string(sequence.Right),
}

// normalizeSequence accepts short arrow names ("up") next to key identifiers.
func normalizeSequence(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if alias, ok := sequenceAliases[strings.ToLower(k)]; ok {
			k = alias
		}
		out = append(out, k)
	}
	return out
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# quicktime configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# duration = %.1f                # Seconds allowed per round
# sequence = ["ArrowDown", "ArrowUp", "ArrowRight", "ArrowLeft"]

[confetti]
# enabled = %t                # Celebrate wins with confetti

[serve]
# host = %q                    # SSH listen host
# port = %d                      # SSH listen port
# host-key = "/path/to/host_key"   # SSH host key (created when missing)

[log]
# level = %q                 # debug, info, warn, error
# file = "/path/to/quicktime.log"  # Log file for local play
`,
		defaultDuration,
		defaultConfetti,
		defaultSSHHost,
		defaultSSHPort,
		defaultLogLevel,
	)
}

func validateConfig(durationSeconds float64, cfg model.Config, logCfg model.LogConfig) error {
	if math.IsNaN(durationSeconds) || math.IsInf(durationSeconds, 0) || durationSeconds <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if len(cfg.Sequence) == 0 {
		return fmt.Errorf("--sequence must not be empty")
	}
	for _, k := range cfg.Sequence {
		if k == "Enter" {
			return fmt.Errorf("--sequence must not contain Enter; it starts a new round")
		}
	}
	if _, err := logging.ParseLevel(logCfg.Level); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
