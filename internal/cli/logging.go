package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Raghunandan-19/Train-Ticket-Booking-Backend/internal/config"
)

// setupLogger installs the default slog logger: text on stderr, plus JSON
// lines appended to cfg.LogFile when one is configured.
func setupLogger(cfg config.Config, stderr io.Writer) (func() error, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	logOpts := &slog.HandlerOptions{Level: level}
	text := slog.NewTextHandler(stderr, logOpts)

	if cfg.LogFile == "" {
		slog.SetDefault(slog.New(text))
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewMultiHandler(
		text,
		slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)))
	return f.Close, nil
}
