package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
	"github.com/tartampluch/go-addressbook/internal/server"
	"github.com/tartampluch/go-addressbook/internal/ui"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"
)

// main delegates to runMain so deferred calls (closing the log file) run
// before os.Exit.
func main() {
	os.Exit(runMain())
}

func runMain() int {
	root := newRootCmd(config.NewViper())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// newRootCmd builds the CLI. Flags are bound to v so that an explicit flag
// wins over the settings file and ADDRESSBOOK_* variables.
func newRootCmd(v *viper.Viper) *cobra.Command {
	var (
		configPath  string
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:           config.CmdUse,
		Short:         config.CmdShort,
		Long:          config.CmdLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				printVersion(cmd.OutOrStdout())
				return nil
			}

			settings, err := config.LoadSettings(v, configPath)
			if err != nil {
				return err
			}

			logCloser := setupLogging(settings.Debug)
			if logCloser != nil {
				defer func() {
					_ = logCloser.Close()
				}()
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logStartupInfo(settings)

			if err := run(ctx, settings, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				slog.Error(config.ErrAppFailed,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
				return err
			}

			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, config.FlagConfig, "c", "", config.FlagDescConfig)
	flags.BoolVar(&showVersion, config.FlagVersion, false, config.FlagDescVersion)
	flags.Bool(config.FlagDebug, false, config.FlagDescDebug)
	flags.String(config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	flags.Bool(config.FlagServe, false, config.FlagDescServe)
	flags.String(config.FlagPort, config.DefaultPort, config.FlagDescPort)
	flags.String(config.FlagImport, "", config.FlagDescImport)
	flags.String(config.FlagImportUser, "", config.FlagDescImportUser)
	flags.String(config.FlagWindowMode, config.DefaultWindowMode, config.FlagDescWindowMode)

	bindings := map[string]string{
		config.SettingDebug:      config.FlagDebug,
		config.SettingLanguage:   config.FlagLang,
		config.SettingServe:      config.FlagServe,
		config.SettingPort:       config.FlagPort,
		config.SettingImport:     config.FlagImport,
		config.SettingImportUser: config.FlagImportUser,
		config.SettingWindowMode: config.FlagWindowMode,
	}
	for key, flag := range bindings {
		// Lookup cannot fail: every flag is registered above.
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}

// run wires the address book, the optional feed server and the command loop.
// Leaving the loop stops the server.
func run(ctx context.Context, s config.Settings, in io.Reader, out io.Writer) error {
	mode, err := engine.ParseWindowMode(s.WindowMode)
	if err != nil {
		return err
	}

	assistant := ui.NewAssistant(engine.RealClock{}, mode, ui.NewMessages(s.Language))
	assistant.ImportUser = s.ImportUser

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if s.Serve {
		srv := server.NewFeedServer(s.Port)
		assistant.Feed = srv
		g.Go(func() error {
			return srv.Start(gctx)
		})
	}

	if s.ImportSource != "" {
		_, _ = fmt.Fprintln(out, assistant.Preload(gctx, s.ImportSource))
	}
	assistant.Publish()

	g.Go(func() error {
		defer cancel()
		return assistant.Run(gctx, in, out)
	})

	return g.Wait()
}

func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo(s config.Settings) {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
		config.LogKeyLang, s.Language,
		config.LogKeyMode, s.WindowMode,
	)
}

// setupLogging configures the default slog logger. The rotating file always
// receives logs; stdout only in debug mode so the prompt stays readable.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	if debugMode {
		writers = append(writers, os.Stdout)
	}

	var rotator *lumberjack.Logger
	if logPath, err := getLogFilePath(); err == nil {
		rotator = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    config.LogMaxSizeMB,
			MaxBackups: config.LogMaxBackups,
			MaxAge:     config.LogMaxAgeDays,
			Compress:   true,
		}
		writers = append(writers, rotator)
	} else {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, config.LogFileName, err)
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))

	if rotator == nil {
		return nil
	}
	return rotator
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
