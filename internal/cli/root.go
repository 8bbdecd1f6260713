// Package cli is the trainbook command line: one-shot cobra commands and
// an interactive menu shell over the booking services.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/app"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/config"
	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/domain"
)

// Trainbook carries the flags shared by every command and the opened app.
type Trainbook struct {
	ConfigPath string
	DataDir    string
	Backend    string

	cfg      config.Config
	app      *app.App
	closeLog func() error
	getenv   func(string) string
	stderr   io.Writer
}

// Execute runs the command line with os.Args.
func Execute(ctx context.Context) error {
	tb := &Trainbook{}
	// PersistentPostRunE is skipped when a command fails.
	defer tb.close()
	return NewRootCmd(tb).ExecuteContext(ctx)
}

func NewRootCmd(tb *Trainbook) *cobra.Command {
	if tb.getenv == nil {
		tb.getenv = os.Getenv
	}

	cmd := &cobra.Command{
		Use:           "trainbook",
		Short:         "Search trains, book seats and manage tickets",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return tb.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return tb.close()
		},
	}

	cmd.PersistentFlags().StringVar(&tb.ConfigPath, "config", "", "Path to TOML configuration file")
	cmd.PersistentFlags().StringVar(&tb.DataDir, "data-dir", "", "Directory for the file backend (overrides config)")
	cmd.PersistentFlags().StringVar(&tb.Backend, "backend", "", "Storage backend: file, sqlite or redis (overrides config)")

	cmd.AddCommand(newSignUpCmd(tb))
	cmd.AddCommand(newLoginCmd(tb))
	cmd.AddCommand(newBookingsCmd(tb))
	cmd.AddCommand(newCancelCmd(tb))
	cmd.AddCommand(newSearchCmd(tb))
	cmd.AddCommand(newSeatsCmd(tb))
	cmd.AddCommand(newBookCmd(tb))
	cmd.AddCommand(newTrainsCmd(tb))
	cmd.AddCommand(newShellCmd(tb))

	return cmd
}

func (tb *Trainbook) open(cmd *cobra.Command) error {
	cfg, err := config.Load(tb.ConfigPath, tb.getenv)
	if err != nil {
		return err
	}
	if tb.DataDir != "" {
		cfg.DataDir = tb.DataDir
	}
	if tb.Backend != "" {
		cfg.Backend = tb.Backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	tb.cfg = cfg

	stderr := tb.stderr
	if stderr == nil {
		stderr = cmd.ErrOrStderr()
	}
	closeLog, err := setupLogger(cfg, stderr)
	if err != nil {
		return err
	}
	tb.closeLog = closeLog

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		slog.Error("failed to open booking data", "backend", cfg.Backend, "error", err)
		return fmt.Errorf("open booking data: %w", err)
	}
	tb.app = a
	return nil
}

func (tb *Trainbook) close() error {
	var err error
	if tb.app != nil {
		err = tb.app.Close()
		tb.app = nil
	}
	if tb.closeLog != nil {
		tb.closeLog()
		tb.closeLog = nil
	}
	return err
}

// sessionFlags are the credential flags of user-bound commands.
type sessionFlags struct {
	name     string
	password string
	token    string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "User name")
	cmd.Flags().StringVar(&f.password, "password", "", "Password")
	cmd.Flags().StringVar(&f.token, "token", "", "Session token from 'trainbook login' (default $TRAINBOOK_TOKEN)")
}

func (f *sessionFlags) session(tb *Trainbook) domain.Session {
	token := f.token
	if token == "" && f.password == "" {
		token = tb.getenv("TRAINBOOK_TOKEN")
	}
	return domain.Session{Name: f.name, Password: f.password, Token: token}
}
