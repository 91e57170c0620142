package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/groupcheck/packages/match"
	"github.com/fatih/color"
)

// Report is one failed group assertion, ready for rendering.
type Report struct {
	Expected string // declared expectation repr
	Reason   string // composed mismatch diagnostic
	Raised   error  // the raised error, nil if nothing was raised
}

// NewReport snapshots a failed Matches call on g against raised.
func NewReport(g *match.Group, raised error) Report {
	return Report{
		Expected: g.String(),
		Reason:   g.FailReason(),
		Raised:   raised,
	}
}

// truncate shortens long values for display.
func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatReport(r Report) {
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s %s\n", red("✗"), bold("error group did not match"))
	fmt.Fprintf(f.writer, "  %s %s\n", cyan("expected:"), r.Expected)
	for _, line := range strings.Split(strings.TrimPrefix(r.Reason, "\n"), "\n") {
		fmt.Fprintf(f.writer, "    %s\n", line)
	}

	if f.verbose && r.Raised != nil {
		fmt.Fprintf(f.writer, "  %s %T: %s\n",
			cyan("raised:"), r.Raised, truncate(fmt.Sprintf("%v", r.Raised), 200))
	}
}
