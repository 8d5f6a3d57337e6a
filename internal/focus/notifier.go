package focus

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"

	"go.uber.org/zap"
)

// BellNotifier rings the terminal bell and prints a one-line message.
type BellNotifier struct {
	w io.Writer
}

// NewBellNotifier writes to w, usually os.Stdout.
func NewBellNotifier(w io.Writer) *BellNotifier {
	return &BellNotifier{w: w}
}

// Notify implements Notifier.
func (n *BellNotifier) Notify(_ context.Context, e Event) error {
	_, err := fmt.Fprintf(n.w, "\a%s finished, next: %s (%d focus sessions done)\n",
		label(e.Completed), label(e.Next), e.CompletedFocus)
	return err
}

// LogNotifier records phase changes in the structured log.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(_ context.Context, e Event) error {
	n.logger.Info("focus phase completed",
		zap.String("completed", string(e.Completed)),
		zap.String("next", string(e.Next)),
		zap.Int("completed_focus", e.CompletedFocus),
		zap.Time("at", e.At),
	)
	return nil
}

// MultiNotifier fans an event out to every notifier and joins their errors.
type MultiNotifier []Notifier

// Notify implements Notifier.
func (m MultiNotifier) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func label(p Phase) string {
	switch p {
	case PhaseShortBreak:
		return "Short break"
	case PhaseLongBreak:
		return "Long break"
	default:
		return "Focus"
	}
}
