package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/propsmith/propsmith/pkg/config"
	"github.com/propsmith/propsmith/pkg/generator"
	"github.com/propsmith/propsmith/pkg/library"
	mcpserver "github.com/propsmith/propsmith/pkg/mcp"
	"github.com/propsmith/propsmith/pkg/modifier"
	"github.com/propsmith/propsmith/pkg/parser"
	"github.com/propsmith/propsmith/pkg/util"
	"github.com/propsmith/propsmith/pkg/validator"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logCfg := util.DefaultLoggerConfig()
	if os.Getenv("PROPSMITH_DEBUG") != "" {
		logCfg.Level = util.LevelDebug
	}
	logger := util.NewLogger(logCfg)
	util.SetDefault(logger)

	parsers := parser.NewManager(logger)
	defer parsers.Close()

	var err error
	switch command := os.Args[1]; command {
	case "generate":
		err = runGenerate(parsers, os.Args[2:])
	case "apply":
		err = runApply(parsers, os.Args[2:])
	case "validate":
		err = runValidate(parsers, os.Args[2:])
	case "import":
		err = runImport(parsers, os.Args[2:])
	case "serve":
		err = runServe(parsers, os.Args[2:])
	case "watch":
		err = runWatch(parsers, os.Args[2:])
	case "version":
		fmt.Printf("propsmith %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "propsmith %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func runGenerate(parsers *parser.Manager, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	file := fs.String("file", "", "component source file")
	name := fs.String("name", "", "component name")
	out := fs.String("out", "", "config output path (default stdout)")
	noCommon := fs.Bool("no-common-styles", false, "skip synthesized background/text-color properties")
	fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("-file is required")
	}
	source, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	gen := generator.New(parsers, nil)
	opts := generator.DefaultOptions()
	opts.ComponentName = *name
	opts.IncludeCommonStyles = !*noCommon
	cfg := gen.FromCode(string(source), config.Metadata{Name: *name}, opts)

	if *out != "" {
		return cfg.SaveToFile(*out)
	}
	data, err := cfg.ToJSON()
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runApply(parsers *parser.Manager, args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	configPath := fs.String("config", "", "component config JSON file")
	elementID := fs.String("element", "", "target element ID")
	property := fs.String("property", "", "property name")
	value := fs.String("value", "", "new property value")
	out := fs.String("out", "", "updated source output path (default stdout)")
	fs.Parse(args)

	if *configPath == "" || *elementID == "" || *property == "" {
		return fmt.Errorf("-config, -element, and -property are required")
	}
	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		return err
	}

	el := cfg.Element(*elementID)
	if el == nil {
		return fmt.Errorf("element %q not found in config", *elementID)
	}
	prop := el.Property(*property)
	if prop == nil {
		return fmt.Errorf("property %q not found on element %q", *property, *elementID)
	}

	mod := modifier.New(parsers, nil)
	updated, err := mod.ApplyValue(cfg.Code, el, prop, *value)
	if err != nil {
		return err
	}

	if *out != "" {
		return os.WriteFile(*out, []byte(updated), 0o644)
	}
	fmt.Print(updated)
	return nil
}

func runValidate(parsers *parser.Manager, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "", "component config JSON file")
	fs.Parse(args)

	if *configPath == "" {
		return fmt.Errorf("-config is required")
	}
	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		return err
	}

	res := validator.New(parsers, nil).ValidateConfig(cfg)
	for _, e := range res.Errors {
		fmt.Printf("error: %s\n", e)
	}
	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if !res.Valid {
		return fmt.Errorf("config is invalid (%d errors)", len(res.Errors))
	}
	fmt.Println("config is valid")
	return nil
}

func runImport(parsers *parser.Manager, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dir := fs.String("dir", ".", "component source directory")
	name := fs.String("name", "components", "library name")
	out := fs.String("out", "library.json", "library output path")
	fs.Parse(args)

	gen := generator.New(parsers, nil)
	cache := library.NewSourceCache(nil)
	defer cache.Close()
	imp := library.NewImporter(gen, cache, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	lib, stats, err := imp.ImportDirectory(ctx, *dir, *name, library.DefaultScanOptions(), nil)
	if err != nil {
		return err
	}
	if err := lib.SaveToFile(*out); err != nil {
		return err
	}
	fmt.Printf("imported %d components (%d failed) to %s\n",
		stats.FilesImported, stats.FilesFailed, *out)
	return nil
}

func runServe(parsers *parser.Manager, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	libraryPath := fs.String("library", "", "component library JSON file (optional)")
	fs.Parse(args)

	var query *library.QueryService
	if *libraryPath != "" {
		qs, err := library.LoadAndQuery(*libraryPath)
		if err != nil {
			return fmt.Errorf("failed to load library: %w", err)
		}
		query = qs
	}

	gen, err := generator.NewCache(generator.New(parsers, nil), 0)
	if err != nil {
		return err
	}
	srv := mcpserver.NewServer(
		gen,
		modifier.New(parsers, nil),
		validator.New(parsers, nil),
		query,
		nil,
	)
	return srv.ServeStdio()
}

func runWatch(parsers *parser.Manager, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	dir := fs.String("dir", ".", "component source directory")
	name := fs.String("name", "components", "library name")
	out := fs.String("out", "library.json", "library output path")
	fs.Parse(args)

	gen := generator.New(parsers, nil)
	cache := library.NewSourceCache(nil)
	defer cache.Close()
	imp := library.NewImporter(gen, cache, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	lib, _, err := imp.ImportDirectory(ctx, *dir, *name, library.DefaultScanOptions(), nil)
	if err != nil {
		return err
	}
	if err := lib.SaveToFile(*out); err != nil {
		return err
	}

	w, err := library.NewWatcher(imp, library.DefaultWatchOptions(), nil)
	if err != nil {
		return err
	}
	w.OnUpdate = func(path string, cfg *config.ComponentConfig) {
		lib.Upsert(*cfg)
		if err := lib.SaveToFile(*out); err != nil {
			fmt.Fprintf(os.Stderr, "failed to save library: %v\n", err)
		}
	}
	if err := w.Start(*dir); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Printf("watching %s, writing %s (ctrl-c to stop)\n", *dir, *out)
	<-ctx.Done()
	return nil
}

func printUsage() {
	fmt.Println("Usage: propsmith <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  generate   Generate a component config from source")
	fmt.Println("  apply      Apply a property edit to a component's code")
	fmt.Println("  validate   Validate a component config")
	fmt.Println("  import     Import a directory of components into a library")
	fmt.Println("  serve      Start MCP server")
	fmt.Println("  watch      Watch sources and regenerate the library on change")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
}
