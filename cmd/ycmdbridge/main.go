// Package main is the command line front end for the ycmd bridge: it starts
// a supervised backend for a workspace, runs one query against it, prints the
// result, and shuts the backend down.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dshills/ycmdbridge/internal/logging"
	"github.com/dshills/ycmdbridge/internal/ycmd"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	YcmdPath     string
	Python       string
	Workspace    string
	ExtraConf    string
	ConfirmExtra bool
	LogLevel     string
	Debug        bool
	Command      string
	File         string
	Line         int // 1-based
	Column       int // 1-based
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(opts.LogLevel)
	if opts.Debug {
		cfg.Level = logging.LevelDebug
	}
	logger := logging.New(cfg)

	settings := ycmd.DefaultSettings()
	settings.Path = opts.YcmdPath
	if opts.Python != "" {
		settings.Python = opts.Python
	}
	settings.GlobalExtraConf = opts.ExtraConf
	settings.ConfirmExtraConf = opts.ConfirmExtra
	settings.Debug = opts.Debug

	doc, err := loadDocument(opts.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	sup := ycmd.NewSupervisor(ycmd.SupervisorOptions{Logger: logger})
	client := ycmd.NewClient(sup, ycmd.ClientOptions{
		Documents: ycmd.StaticDocuments{doc},
		Logger:    logger,
	})
	client.Configure(opts.Workspace, settings)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer client.Shutdown(context.Background())

	if err := runCommand(ctx, client, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runCommand dispatches the requested one-shot query.
func runCommand(ctx context.Context, client *ycmd.Client, opts options) error {
	pos := ycmd.Position{Line: opts.Line - 1, Character: opts.Column - 1}

	switch opts.Command {
	case "complete":
		list, err := client.Completions(ctx, opts.File, pos)
		if err != nil {
			return err
		}
		for _, c := range list.Completions {
			line := c.InsertionText
			if c.Kind != "" {
				line += "\t" + c.Kind
			}
			if c.ExtraMenuInfo != "" {
				line += "\t" + c.ExtraMenuInfo
			}
			fmt.Println(line)
		}
		return nil

	case "type":
		msg, err := client.GetType(ctx, opts.File, pos)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil

	case "doc":
		msg, err := client.GetDoc(ctx, opts.File, pos)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil

	case "quickdoc":
		msg, err := client.GetDocQuick(ctx, opts.File, pos)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil

	case "goto":
		loc, err := client.GoToDefinition(ctx, opts.File, pos)
		if err != nil {
			return err
		}
		fmt.Printf("%s:%d:%d\n", loc.FilePath, loc.LineNum, loc.ColumnNum)
		return nil

	case "diag":
		for _, d := range client.Diagnostics(ctx, opts.File) {
			fmt.Printf("%s:%d:%d: %s: %s\n",
				d.Location.FilePath, d.Location.LineNum, d.Location.ColumnNum,
				strings.ToLower(d.Kind), d.Text)
		}
		return nil

	case "debuginfo":
		info, err := client.DebugInfo(ctx, opts.File)
		if err != nil {
			return err
		}
		fmt.Println(info)
		return nil

	case "subcommands":
		cmds, err := client.DefinedSubcommands(ctx, opts.File)
		if err != nil {
			return err
		}
		for _, c := range cmds {
			fmt.Println(c)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", opts.Command)
	}
}

// loadDocument reads the queried file as the open-document snapshot.
func loadDocument(path string) (ycmd.Document, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return ycmd.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ycmd.Document{
		Path:      path,
		Filetypes: filetypesFor(path),
		Contents:  string(contents),
	}, nil
}

// filetypesFor guesses the backend filetype from the file extension.
func filetypesFor(path string) []string {
	switch filepath.Ext(path) {
	case ".py":
		return []string{"python"}
	case ".go":
		return []string{"go"}
	case ".c", ".h":
		return []string{"c"}
	case ".cc", ".cpp", ".cxx", ".hpp":
		return []string{"cpp"}
	case ".js":
		return []string{"javascript"}
	case ".ts":
		return []string{"typescript"}
	case ".rs":
		return []string{"rust"}
	default:
		return nil
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.YcmdPath, "ycmd", "", "Path to the ycmd checkout")
	flag.StringVar(&opts.Python, "python", "", "Python interpreter used to run ycmd (default python3)")
	flag.StringVar(&opts.Workspace, "workspace", "", "Workspace/project directory")
	flag.StringVar(&opts.Workspace, "w", "", "Workspace/project directory (shorthand)")
	flag.StringVar(&opts.ExtraConf, "extra-conf", "", "Global .ycm_extra_conf.py to load")
	flag.BoolVar(&opts.ConfirmExtra, "confirm-extra-conf", false, "Require confirmation before loading extra conf files")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug mode")
	flag.BoolVar(&opts.Debug, "d", false, "Enable debug mode (shorthand)")
	flag.IntVar(&opts.Line, "line", 1, "Cursor line (1-based)")
	flag.IntVar(&opts.Column, "col", 1, "Cursor column (1-based)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ycmdbridge - query a supervised ycmd backend\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ycmdbridge -ycmd /path/to/ycmd [options] <command> <file>\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  complete     Completion candidates at -line/-col\n")
		fmt.Fprintf(os.Stderr, "  type         Type of the symbol at -line/-col\n")
		fmt.Fprintf(os.Stderr, "  doc          Documentation for the symbol at -line/-col\n")
		fmt.Fprintf(os.Stderr, "  quickdoc     Fast, imprecise documentation\n")
		fmt.Fprintf(os.Stderr, "  goto         Definition location of the symbol at -line/-col\n")
		fmt.Fprintf(os.Stderr, "  diag         Diagnostics for the file\n")
		fmt.Fprintf(os.Stderr, "  subcommands  Completer commands available for the filetype\n")
		fmt.Fprintf(os.Stderr, "  debuginfo    Backend debug information for the file's completer\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ycmdbridge -ycmd ~/src/ycmd -line 12 -col 8 complete main.py\n")
		fmt.Fprintf(os.Stderr, "  ycmdbridge -ycmd ~/src/ycmd diag main.py\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("ycmdbridge %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(1)
	}
	opts.Command = args[0]
	opts.File = args[1]

	if opts.YcmdPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -ycmd is required\n")
		os.Exit(1)
	}
	if opts.Line < 1 || opts.Column < 1 {
		fmt.Fprintf(os.Stderr, "Error: -line and -col are 1-based\n")
		os.Exit(1)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	// If no workspace was given, use the queried file's directory.
	if opts.Workspace == "" {
		absPath, err := filepath.Abs(opts.File)
		if err == nil {
			opts.Workspace = filepath.Dir(absPath)
		}
	}

	return opts
}
