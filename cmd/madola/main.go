package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"madola/internal/evaluator"
	"madola/internal/lexer"
	"madola/internal/parser"
	"madola/internal/repl"
	"madola/internal/units"
	"madola/internal/util"
)

const DefaultRootPath = "."

var (
	// Version is stamped by the build; development builds report "dev".
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel string
	logFile  string
	// config vars
	rootPath   string
	configPath string
	debugAST   bool
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	// evaluator config
	flag.StringVar(&rootPath, "root", DefaultRootPath, "Set the root directory imported modules are loaded from")
	flag.StringVar(&configPath, "config", "", "Path to a TOML configuration file")
	// parser config
	flag.BoolVar(&debugAST, "debug-ast", false, "Render the AST as a JSON file next to the script")
	// log config
	flag.StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warn, error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {

	flag.Parse()

	cfg := util.Configuration{
		Version:   Version,
		BuildDate: BuildDate,
		Commit:    Commit,
		RootPath:  DefaultRootPath,
		LogLevel:  "error",
	}
	if err := util.LoadConfiguration(configPath, &cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	applyFlagOverrides(&cfg)

	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(cfg.LogLevel),
	}
	logWriter := configureLogWriter(cfg.LogFile)
	defaultLogger := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(defaultLogger)

	if version {
		printVersion()
		return
	}

	if help {
		printHelp()
		return
	}

	for _, u := range cfg.Units {
		def := units.Definition{
			Symbol:    u.Symbol,
			Dimension: units.Dimension(u.Dimension),
			Factor:    u.Factor,
			Composite: u.Composite,
		}
		if err := units.Register(def); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	file := flag.Arg(0)
	if file == "" {
		repl.Start(os.Stdout, cfg.RootPath)
		return
	}
	os.Exit(runFile(file, cfg))
}

// applyFlagOverrides lets flags given on the command line win over values
// from the config file.
func applyFlagOverrides(cfg *util.Configuration) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root":
			cfg.RootPath = rootPath
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-file":
			cfg.LogFile = logFile
		case "debug-ast":
			cfg.DebugAST = debugAST
		}
	})
	if cfg.RootPath == "" {
		cfg.RootPath = DefaultRootPath
	}
}

func runFile(path string, cfg util.Configuration) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", path, err)
		return 2
	}
	source := string(src)

	l := lexer.New(source)
	p := parser.New(l, source)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		reportParserErrors(path, source, errs, p.ErrorPositions())
		return 2
	}

	if cfg.DebugAST {
		out := strings.TrimSuffix(path, filepath.Ext(path)) + ".ast.json"
		if err := parser.WriteASTToJSON(program, out); err != nil {
			slog.Warn("could not write AST dump", "path", out, "err", err)
		}
	}

	res := evaluator.New(cfg.RootPath).Evaluate(program)
	for _, o := range res.Outputs {
		fmt.Println(o)
	}
	if !res.Success {
		fmt.Fprintln(os.Stderr, res.Error)
		return 1
	}
	return 0
}

func reportParserErrors(path, source string, errs []string, positions []int) {
	fmt.Fprintf(os.Stderr, "%s: %d parse error(s)\n", path, len(errs))
	for _, msg := range errs {
		fmt.Fprintln(os.Stderr, "\t"+msg)
	}
	if len(positions) > 0 {
		line, col := util.GetLineAndColumn(source, positions[0])
		if ctx := util.GetContextLines(source, line, col); ctx != "" {
			fmt.Fprintln(os.Stderr, ctx)
		}
	}
}

func configureLogWriter(logFile string) *os.File {
	var logWriter *os.File
	var err error
	if logFile != "" {
		// Create parent directories if they don't exist
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
			return os.Stderr
		}
		logWriter, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
			logWriter = os.Stderr
		}
	} else {
		logWriter = os.Stderr
	}
	return logWriter
}

func printVersion() {

	fmt.Printf("madola version 'v%s' %s %s (language %s)\n", Version, BuildDate, Commit, evaluator.Version)
}

func printHelp() {
	fmt.Printf(`Usage: madola [options] [filename]

Options:
  -root <path>       Set the root directory imported modules are loaded from. Default is '.'
  -config <path>     Load settings and extra unit definitions from a TOML file.
  -debug-ast         Render the AST as a JSON file next to the script.
  -help              Display this help information and exit.
  -version           Display version information and exit.
  -log-level <level> Set the log level: debug, info, warn, error. Default is 'error'.
  -log-file <path>   Specify a log file to write logs. Default is stderr.

Details:
MADOLA is a calculation language for annotated engineering documents.
Given a file, madola evaluates it and prints its outputs; without a file it
starts an interactive session.

Examples:
  madola beam.mad               Evaluate beam.mad and print its outputs
  madola -root=calcs beam.mad   Resolve imports against the calcs directory
  madola -log-level=debug       Start the interactive session with debug logging

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
