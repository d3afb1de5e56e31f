// Command minijs analyzes and optimizes JavaScript source code.
//
// Usage:
//
//	minijs [options] <input.js>
//	cat input.js | minijs [options]
//	minijs --repl
//
// Options:
//
//	-o <file>                  Write output to file (default: stdout)
//	--config <file>            Use specific config file
//	--no-config                Ignore config files
//	--minify                   Enable all minification (default)
//	--minify-whitespace        Remove unnecessary whitespace
//	--minify-syntax            Print shorter literal spellings
//	--passes <names>           Comma-separated fold passes, or "none"
//	--convention <name>        Coding convention: default, closure or google
//	--constant-names <names>   Comma-separated names never reassigned
//	--pure-functions <names>   Comma-separated functions without side effects
//	--assume-regex-globals     Treat RegExp match state as read
//	--max-iterations <n>       Cap the fold rounds
//	--source-map               Write <output>.map, or inline the map without -o
//	--sources-content          Embed the input in the source map
//	--analyze                  Report expression facts instead of optimizing
//	--json                     Write the result as JSON
//	--pretty                   Indent JSON output
//	--repl                     Start an interactive session
//	--verbose                  Log pipeline steps to stderr
//	--version                  Print version and exit
//	--help                     Print help and exit
//
// Config file:
//
//	minijs looks for minijs.json, .minijsrc, minijs.yaml or minijs.yml in
//	the current directory and parent directories. Config file options are
//	overridden by CLI flags.
//
// Example minijs.json:
//
//	{
//	    "minifyWhitespace": true,
//	    "passes": ["removeUselessStatements", "foldConditions"],
//	    "convention": "closure",
//	    "pureFunctions": ["goog.isDef"]
//	}
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoDaniel/minijs/internal/config"
	"github.com/HugoDaniel/minijs/internal/diagnostic"
	"github.com/HugoDaniel/minijs/internal/minifier"
	"github.com/HugoDaniel/minijs/pkg/api"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Flags
	var (
		outputFile         string
		configFile         string
		noConfig           bool
		minifyAll          bool
		minifyWhitespace   bool
		minifySyntax       bool
		passes             string
		convention         string
		constantNames      string
		pureFunctions      string
		assumeRegexGlobals bool
		maxIterations      int
		sourceMap          bool
		sourcesContent     bool
		analyze            bool
		jsonOutput         bool
		pretty             bool
		repl               bool
		verbose            bool
		showVersion        bool
		showHelp           bool
	)

	flag.StringVar(&outputFile, "o", "", "Write output to `file`")
	flag.StringVar(&configFile, "config", "", "Use specific config `file`")
	flag.BoolVar(&noConfig, "no-config", false, "Ignore config files")
	flag.BoolVar(&minifyAll, "minify", true, "Enable all minification")
	flag.BoolVar(&minifyWhitespace, "minify-whitespace", false, "Remove unnecessary whitespace")
	flag.BoolVar(&minifySyntax, "minify-syntax", false, "Print shorter literal spellings")
	flag.StringVar(&passes, "passes", "", "Comma-separated fold `passes`, or \"none\"")
	flag.StringVar(&convention, "convention", "", "Coding convention: default, closure or google")
	flag.StringVar(&constantNames, "constant-names", "", "Comma-separated names never reassigned")
	flag.StringVar(&pureFunctions, "pure-functions", "", "Comma-separated functions without side effects")
	flag.BoolVar(&assumeRegexGlobals, "assume-regex-globals", false, "Treat RegExp match state as read")
	flag.IntVar(&maxIterations, "max-iterations", 0, "Cap the fold rounds")
	flag.BoolVar(&sourceMap, "source-map", false, "Write <output>.map, or inline the map without -o")
	flag.BoolVar(&sourcesContent, "sources-content", false, "Embed the input in the source map")
	flag.BoolVar(&analyze, "analyze", false, "Report expression facts instead of optimizing")
	flag.BoolVar(&jsonOutput, "json", false, "Write the result as JSON")
	flag.BoolVar(&pretty, "pretty", false, "Indent JSON output")
	flag.BoolVar(&repl, "repl", false, "Start an interactive session")
	flag.BoolVar(&verbose, "verbose", false, "Log pipeline steps to stderr")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.BoolVar(&showHelp, "help", false, "Print help and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "minijs - JavaScript Optimizer v%s\n\n", version)
		fmt.Fprintf(os.Stderr, "Usage: minijs [options] <input.js>\n")
		fmt.Fprintf(os.Stderr, "       cat input.js | minijs [options]\n")
		fmt.Fprintf(os.Stderr, "       minijs --repl\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nConfig file:\n")
		fmt.Fprintf(os.Stderr, "  Searches for minijs.json, .minijsrc, minijs.yaml or minijs.yml in current\n")
		fmt.Fprintf(os.Stderr, "  and parent directories. CLI flags override config file settings.\n")
		fmt.Fprintf(os.Stderr, "\nFold passes:\n  %s\n", strings.Join(api.Passes(), ", "))
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  minijs app.js -o app.min.js\n")
		fmt.Fprintf(os.Stderr, "  minijs app.js -o app.min.js --source-map\n")
		fmt.Fprintf(os.Stderr, "  cat app.js | minijs --passes foldConditions,mergeBlocks\n")
		fmt.Fprintf(os.Stderr, "  minijs --analyze --json --pretty app.js\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		return nil
	}

	if showVersion {
		fmt.Printf("minijs v%s (%s)\n", version, commit)
		return nil
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Load config file
	cfg := &config.Config{}
	if !noConfig {
		var loaded *config.Config
		var configPath string
		var err error
		if configFile != "" {
			// Use specified config file
			loaded, err = config.LoadFile(configFile)
			if err != nil {
				return fmt.Errorf("loading config file %s: %w", configFile, err)
			}
			configPath = configFile
		} else {
			// Search for config file
			startDir, _ := os.Getwd()
			if flag.NArg() > 0 {
				startDir = filepath.Dir(flag.Arg(0))
			}
			loaded, configPath, err = config.Load(startDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
		}
		if loaded != nil {
			cfg = loaded
			logger.Debug("using config", slog.String("path", configPath))
		}
	}

	// Build CLI overrides - only set if explicitly specified
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cliOpts := config.MergeOptions{
		Convention:    convention,
		ConstantNames: splitList(constantNames),
		PureFunctions: splitList(pureFunctions),
		MaxIterations: maxIterations,
	}
	if set["minify"] && !minifyAll {
		cliOpts.MinifyWhitespace = &minifyAll
		cliOpts.MinifySyntax = &minifyAll
	}
	if set["minify-whitespace"] {
		cliOpts.MinifyWhitespace = &minifyWhitespace
	}
	if set["minify-syntax"] {
		cliOpts.MinifySyntax = &minifySyntax
	}
	if set["passes"] {
		cliOpts.Passes = parsePasses(passes)
	}
	if set["assume-regex-globals"] {
		cliOpts.AssumeRegexGlobals = &assumeRegexGlobals
	}

	opts := cfg.Merge(cliOpts)
	opts.Logger = logger
	opts.SourceMap = sourceMap
	opts.SourcesContent = sourcesContent
	if outputFile != "" {
		opts.OutputFile = filepath.Base(outputFile)
	}

	if repl {
		return runREPL(opts)
	}

	// Read input
	var source []byte
	var err error

	if flag.NArg() > 0 {
		// Read from file
		opts.Filename = flag.Arg(0)
		source, err = os.ReadFile(flag.Arg(0))
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	} else {
		// Check if stdin is a pipe
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			flag.Usage()
			return fmt.Errorf("no input file specified")
		}
		// Read from stdin
		opts.Filename = "<stdin>"
		source, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	// Write output
	var output io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	if analyze {
		return writeAnalysis(output, string(source), opts, jsonOutput, pretty)
	}
	return writeOptimized(output, string(source), opts, jsonOutput, pretty, outputFile)
}

// writeOptimized writes the optimized code to w. When outputFile is set,
// stats go to stderr and a requested source map is written next to it.
func writeOptimized(w io.Writer, source string, opts minifier.Options, asJSON, pretty bool, outputFile string) error {
	if asJSON {
		return writeJSON(w, api.Optimize(source, apiOptions(opts)), pretty)
	}

	result, err := minifier.New(opts).Optimize(source)
	if result != nil {
		reportDiagnostics(opts.Filename, result.Diagnostics)
	}
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	code := result.Code
	if sm := result.SourceMap; sm != nil {
		if outputFile != "" {
			mapFile := outputFile + ".map"
			if err := os.WriteFile(mapFile, []byte(sm.ToJSON()), 0o644); err != nil {
				return fmt.Errorf("writing source map: %w", err)
			}
			code += "\n" + sm.ToComment(false) + "\n"
		} else {
			code += "\n" + sm.ToComment(true) + "\n"
		}
	}

	if _, err := io.WriteString(w, code); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	// Print stats to stderr if output is to file
	if outputFile != "" && result.Stats.OriginalSize > 0 {
		ratio := float64(result.Stats.MinifiedSize) / float64(result.Stats.OriginalSize) * 100
		fmt.Fprintf(os.Stderr, "Optimized: %d -> %d bytes (%.1f%%), %d fold edits\n",
			result.Stats.OriginalSize, result.Stats.MinifiedSize, ratio, result.Stats.Fold.Total())
	}
	return nil
}

func writeAnalysis(w io.Writer, source string, opts minifier.Options, asJSON, pretty bool) error {
	if asJSON {
		return writeJSON(w, api.Analyze(source, apiOptions(opts)), pretty)
	}

	analysis, err := minifier.New(opts).Analyze(source)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	reportDiagnostics(opts.Filename, analysis.Diagnostics)
	for _, f := range analysis.Facts {
		if _, err := fmt.Fprintln(w, f.Format()); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	data, err := api.MarshalJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func reportDiagnostics(filename string, ds []diagnostic.Diagnostic) {
	for _, d := range ds {
		fmt.Fprintf(os.Stderr, "%s:%s\n", filename, d.Error())
	}
}

func apiOptions(o minifier.Options) api.Options {
	return api.Options{
		MinifyWhitespace:   o.MinifyWhitespace,
		MinifySyntax:       o.MinifySyntax,
		Passes:             o.Passes,
		Convention:         o.Convention,
		ConstantNames:      o.ConstantNames,
		PureFunctions:      o.PureFunctions,
		PureConstructors:   o.PureConstructors,
		AssumeRegexGlobals: o.AssumeRegexGlobals,
		MaxIterations:      o.MaxIterations,
		Filename:           o.Filename,
		SourceMap:          o.SourceMap,
		OutputFile:         o.OutputFile,
		SourcesContent:     o.SourcesContent,
		Logger:             o.Logger,
	}
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parsePasses reads the --passes value. "none" selects no passes.
func parsePasses(s string) []string {
	if strings.TrimSpace(s) == "none" {
		return []string{}
	}
	passes := splitList(s)
	if passes == nil {
		return []string{}
	}
	return passes
}
