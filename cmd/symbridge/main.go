// Command symbridge loads script files into an embedded JavaScript engine and
// prints the host module built from its global scope.
//
// Usage:
//
//	symbridge [-config file] [-list] [-typeof NAME] [-schema] [script.js ...]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/symbridge-dev/symbridge-go/bridge"
	"github.com/symbridge-dev/symbridge-go/config"
	gojaengine "github.com/symbridge-dev/symbridge-go/infrastructure/goja"
	bridgelog "github.com/symbridge-dev/symbridge-go/log"
)

type options struct {
	configPath string
	typeofName string
	list       bool
	schema     bool
	scripts    []string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a YAML, TOML or JSON config file")
	flag.BoolVar(&opts.list, "list", false, "list every export with its typeof tag")
	flag.StringVar(&opts.typeofName, "typeof", "", "print the typeof tag of one export")
	flag.BoolVar(&opts.schema, "schema", false, "print the config JSON Schema and exit")
	flag.Parse()
	opts.scripts = flag.Args()

	if err := run(context.Background(), os.Stdout, opts); err != nil {
		slog.Error("symbridge failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, opts options) error {
	if opts.schema {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	engine := gojaengine.NewEngine(nil,
		gojaengine.WithLogger(logger),
		gojaengine.WithDefaultFilename(cfg.Filename),
	)
	mod, err := bridge.New(ctx, engine,
		bridge.WithLogger(logger),
		bridge.WithConfig(cfg),
		bridge.WithPreload(opts.scripts...),
	)
	if err != nil {
		return err
	}

	switch {
	case opts.typeofName != "":
		v, ok := mod.Lookup(opts.typeofName)
		if !ok {
			return fmt.Errorf("unknown export: %s", opts.typeofName)
		}
		tag, err := mod.Typeof(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, tag)
		return err
	case opts.list:
		return listExports(out, mod)
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(mod.Report())
	}
}

func listExports(out io.Writer, mod *bridge.Module) error {
	for _, name := range mod.Exports() {
		v, _ := mod.Lookup(name)
		tag, err := mod.Typeof(v)
		if err != nil {
			tag = "?"
		}
		if _, err := fmt.Fprintf(out, "%s\t%s\n", name, tag); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := bridgelog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := bridgelog.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return slog.New(bridgelog.NewHandler(os.Stderr,
		bridgelog.WithLevel(level),
		bridgelog.WithFormat(format),
	)), nil
}
