package reminder

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// TerminalNotifier prints reminders to a terminal.
type TerminalNotifier struct {
	writer io.Writer
}

var _ Notifier = (*TerminalNotifier)(nil)

// NewTerminalNotifier creates a notifier writing to the given stream.
func NewTerminalNotifier(writer io.Writer) *TerminalNotifier {
	return &TerminalNotifier{writer: writer}
}

// Notify implements Notifier.
func (n *TerminalNotifier) Notify(_ context.Context, dueCount int) error {
	word := "cards"
	if dueCount == 1 {
		word = "card"
	}
	message := color.New(color.Bold).Sprintf("%d %s due for review.", dueCount, word)
	if _, err := fmt.Fprintf(n.writer, "\U0001F514 %s Run `doughub review` when ready.\n", message); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}
