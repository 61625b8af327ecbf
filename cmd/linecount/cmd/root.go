// Package cmd provides the Cobra CLI command structure for linecount.
//
// This package defines the root command and its flags. Counting problems
// (unreadable files, bad buffer sizes) are reported on stderr and never
// change the exit status.
package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/otuschhoff/linecount/pkg/count"
	"github.com/otuschhoff/linecount/pkg/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Counting options
	bufferSize = newBufferSizeValue()
	skipEmpty  bool
	recursive  bool

	// Output options
	perFile  bool
	noHeader bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "linecount <path>",
	Short: "Count lines in a file or directory",
	Long: `linecount counts the lines of a file, or of every file with a known text
extension (txt, md, go, py, json, yaml, ...) in a directory.

Examples:
  linecount notes.md
  linecount ./src --recursive --skip-empty
  linecount ./logs --buffer-size=64`,
	Args: cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
	SilenceUsage: true,
	RunE:         runCount,
}

// init sets up all CLI flags for the root command.
func init() {
	rootCmd.Flags().Var(bufferSize, "buffer-size",
		"Read buffer size in KB (positive, at most 1048576)")
	rootCmd.Flags().BoolVar(&skipEmpty, "skip-empty", false,
		"Skip empty and whitespace-only lines")
	rootCmd.Flags().BoolVar(&recursive, "recursive", false,
		"Process directories recursively")

	rootCmd.Flags().BoolVar(&perFile, "per-file", false,
		"Print a table of per-file counts before the total")
	rootCmd.Flags().BoolVar(&noHeader, "no-header", false,
		"Hide table headers")
}

// runCount counts the target path and prints the report.
// Without a path it prints the help text and succeeds.
func runCount(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	errLog := log.New(cmd.ErrOrStderr(), "", 0)
	if bufferSize.rejected {
		errLog.Printf("Invalid buffer size %q. Using %d KB.", bufferSize.invalid, count.DefaultBufferSize/1024)
	}

	start := time.Now()

	processor := count.NewProcessor(bufferSize.bytes, skipEmpty, cmd.ErrOrStderr())
	results := count.NewCountWalker(args[0], recursive, processor).Walk()

	formatter := output.NewFormatter(perFile, noHeader)
	if _, err := fmt.Fprint(cmd.OutOrStdout(), formatter.Format(results, time.Since(start))); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

// Execute adds all child commands to the root command and executes it.
func Execute() error {
	rootCmd.InitDefaultHelpFlag()
	rootCmd.SetArgs(stripUnknownFlags(rootCmd.Flags(), os.Args[1:]))
	return rootCmd.Execute()
}

// stripUnknownFlags drops flag tokens fs does not define. pflag would
// otherwise take the argument following an unknown flag as its value and
// swallow the target path. Everything after "--" is kept as-is.
func stripUnknownFlags(fs *pflag.FlagSet, args []string) []string {
	kept := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(kept, args[i:]...)
		}
		if isKnownFlag(fs, arg) {
			kept = append(kept, arg)
		}
	}
	return kept
}

// isKnownFlag reports whether arg is a positional argument or a flag
// defined in fs. Combined shorthands such as "-hx" must all be known.
func isKnownFlag(fs *pflag.FlagSet, arg string) bool {
	switch {
	case len(arg) < 2 || arg[0] != '-':
		return true
	case strings.HasPrefix(arg, "--"):
		name, _, _ := strings.Cut(arg[2:], "=")
		return fs.Lookup(name) != nil
	default:
		shorthands, _, _ := strings.Cut(arg[1:], "=")
		for _, c := range shorthands {
			if c >= utf8.RuneSelf || fs.ShorthandLookup(string(c)) == nil {
				return false
			}
		}
		return true
	}
}

// bufferSizeValue is the pflag.Value behind --buffer-size.
//
// Set never fails: a value that is not a positive number of kilobytes is
// remembered as rejected and the size falls back to count.DefaultBufferSize.
type bufferSizeValue struct {
	bytes    int
	rejected bool
	invalid  string
}

var _ pflag.Value = (*bufferSizeValue)(nil)

func newBufferSizeValue() *bufferSizeValue {
	return &bufferSizeValue{bytes: count.DefaultBufferSize}
}

func (v *bufferSizeValue) String() string {
	return strconv.Itoa(v.bytes / 1024)
}

func (v *bufferSizeValue) Set(s string) error {
	size, err := parseBufferSize(s)
	if err != nil {
		v.bytes = count.DefaultBufferSize
		v.rejected = true
		v.invalid = s
		return nil
	}
	v.bytes = size
	v.rejected = false
	v.invalid = ""
	return nil
}

func (v *bufferSizeValue) Type() string {
	return "KB"
}

// parseBufferSize converts a kilobyte count to bytes.
// Zero, negative, non-numeric, and values above count.MaxBufferSize are rejected.
func parseBufferSize(s string) (int, error) {
	kb, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if kb == 0 {
		return 0, fmt.Errorf("buffer size must be positive")
	}
	if kb > count.MaxBufferSize/1024 {
		return 0, fmt.Errorf("buffer size must be at most %d KB", count.MaxBufferSize/1024)
	}
	return int(kb) * 1024, nil
}
