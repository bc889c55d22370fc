package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/osdeverr/find-msvc/internal/ctxlog"
	"github.com/osdeverr/find-msvc/internal/fault"
	"github.com/osdeverr/find-msvc/internal/logging"
	"github.com/osdeverr/find-msvc/internal/model"
	"github.com/osdeverr/find-msvc/internal/report"
	"github.com/osdeverr/find-msvc/internal/toolchain"
	"github.com/osdeverr/find-msvc/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

// newFinder builds the discovery pipeline; programPath is argv[0].
var newFinder = func(programPath string) tui.Finder {
	return toolchain.NewFinder(programPath)
}

func checkUpdate(w io.Writer, currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "osdeverr",
		Repository: "find-msvc",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		fmt.Fprintf(w, "Could not check for updates: %v\n", err)
		return
	}

	if res.Outdated {
		fmt.Fprintf(w, "A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Fprintln(w, "Download it from https://github.com/osdeverr/find-msvc/releases")
	} else {
		fmt.Fprintf(w, "You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes find-msvc and returns the process exit code. On success the
// result goes to stdout; on failure a single JSON error object goes to stderr
// and nothing is written to stdout.
func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("find-msvc", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: find-msvc [options]\n\n")
		fmt.Fprintf(stderr, "find-msvc locates the latest Visual Studio installation and the Windows SDK\n")
		fmt.Fprintf(stderr, "and prints the paths and environment variables a C/C++ build needs.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  find-msvc               # Print the toolchain description as JSON\n")
		fmt.Fprintf(stderr, "  find-msvc --report      # Print a human-readable report\n")
		fmt.Fprintf(stderr, "  find-msvc -r -o r.txt   # Save the report to a file\n")
		fmt.Fprintf(stderr, "  find-msvc --tui         # Browse include directories interactively\n")
	}

	reportFlag := flags.BoolP("report", "r", false, "Print a human-readable report instead of JSON")
	outputFlag := flags.StringP("output", "o", "", "Write the JSON or report to the specified file")
	tuiFlag := flags.BoolP("tui", "t", false, "Browse the result interactively")
	verboseFlag := flags.BoolP("verbose", "v", false, "Log discovery steps to stderr; adds directory sizes to the report")
	versionFlag := flags.BoolP("version", "V", false, "Print version information")
	updateFlag := flags.BoolP("update", "u", false, "Check for a newer release on GitHub")
	helpFlag := flags.BoolP("help", "h", false, "Show this help message")

	// Callers may pass flags meant for other tools; those are ignored.
	flags.ParseErrorsAllowlist.UnknownFlags = true

	var programPath string
	if len(args) > 0 {
		programPath = args[0]
		args = args[1:]
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return fault.ExitOK
		}
		return fail(stderr, fmt.Errorf("parsing arguments: %w", err))
	}

	if *helpFlag {
		flags.Usage()
		return fault.ExitOK
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "find-msvc version %s\n", model.Version)
		return fault.ExitOK
	}

	if *updateFlag {
		checkUpdate(stdout, model.Version)
		return fault.ExitOK
	}

	logger := logging.New(*verboseFlag, stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	finder := newFinder(programPath)

	if *tuiFlag {
		return runTuiMode(ctx, finder, stderr)
	}

	d, err := find(ctx, finder)
	if err != nil {
		return fail(stderr, err)
	}

	var out []byte
	if *reportFlag {
		out = []byte(report.Generate(d, *verboseFlag))
	} else {
		out, err = encodeResult(d.Result)
		if err != nil {
			return fail(stderr, err)
		}
	}

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, out, 0o644); err != nil {
			return fail(stderr, fmt.Errorf("writing %s: %w", *outputFlag, err))
		}
		if *reportFlag {
			fmt.Fprintf(stdout, "Report saved to %s\n", *outputFlag)
		}
		return fault.ExitOK
	}

	if _, err := stdout.Write(out); err != nil {
		return fail(stderr, fmt.Errorf("writing result: %w", err))
	}
	return fault.ExitOK
}

// find runs discovery, turning panics into failures.
func find(ctx context.Context, finder tui.Finder) (d *model.Discovery, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, fault.Recovered(r)
		}
	}()
	return finder.Find(ctx)
}

// encodeResult renders the result as JSON indented by four spaces with a
// trailing newline. Keys come out sorted.
func encodeResult(r model.Result) ([]byte, error) {
	if r.VCIncludeDirs == nil {
		r.VCIncludeDirs = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type failure struct {
	Code    string `json:"error_code"`
	Message string `json:"error_message"`
}

// fail writes err to w as a one-line JSON object and returns its exit code.
// The exit code stands even if w cannot be written.
func fail(w io.Writer, err error) int {
	fe := fault.Classify(err)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(failure{Code: fe.Code, Message: fe.Message})
	return fe.ExitCode()
}

func runTuiMode(ctx context.Context, finder tui.Finder, stderr io.Writer) int {
	m := tui.InitialModel(ctx, finder)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fail(stderr, fmt.Errorf("running the TUI: %w", err))
	}
	if am, ok := final.(tui.AppModel); ok {
		if fe := am.Failure(); fe != nil {
			return fail(stderr, fe)
		}
	}
	return fault.ExitOK
}
