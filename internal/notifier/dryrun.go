package notifier

import (
	"fmt"
	"io"
	"os"

	"github.com/kojima2223-star/Fumotoppara/internal/availability"
	"github.com/kojima2223-star/Fumotoppara/internal/line"
)

// DryRunNotifier prints what would be sent without calling the API
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to stdout
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{out: os.Stdout}
}

// Notify prints the message that would be sent
func (n *DryRunNotifier) Notify(obs *availability.Observation) error {
	text := line.FormatText(obs)
	fmt.Fprintln(n.out, "--- Dry run: would send ---")
	fmt.Fprintln(n.out, text)
	fmt.Fprintf(n.out, "\n(Length: %d characters)\n", len(text))
	return nil
}
