package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/waliboard/internal/config"
	"github.com/1broseidon/waliboard/internal/tui"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const defaultPathHelp = "Config file path (default: ~/.config/waliboard/config.yaml)"

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  waliboard config validate [--path PATH]")
	fmt.Fprintln(w, "  waliboard config print [--path PATH] [--effective|--defaults]")
	fmt.Fprintln(w, "  waliboard config explain [--path PATH] <yaml.path>")
	fmt.Fprintln(w, "  waliboard config path")
	fmt.Fprintln(w, "  waliboard config init [--path PATH] [--force] [--defaults]")
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "validate":
		return configValidate(args[1:], os.Stdout, os.Stderr)
	case "print":
		return configPrint(args[1:], os.Stdout, os.Stderr)
	case "explain":
		return configExplain(args[1:], os.Stdout, os.Stderr)
	case "path":
		path, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(path)
		return 0
	case "init":
		return configInit(args[1:], os.Stdout, os.Stderr)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func configValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("path", "", defaultPathHelp)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if _, err := loadConfig(*path); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, "config: ok")
	return 0
}

func configPrint(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("path", "", defaultPathHelp)
	printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
	printEffective := fs.Bool("effective", false, "Print effective config (default)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.DefaultConfig()
	if !*printDefaults {
		_ = printEffective // default
		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		cfg = res.Config
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprint(stdout, string(data))
	return 0
}

func configExplain(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("explain", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("path", "", defaultPathHelp)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "explain requires <yaml.path>")
		return 2
	}
	queryPath := fs.Arg(0)

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	value, src, err := config.Explain(res, queryPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	out, err := yaml.Marshal(value)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "path: %s\n", queryPath)
	fmt.Fprintf(stdout, "source: %s\n", formatSource(src))
	fmt.Fprintf(stdout, "value:\n%s", string(out))
	return 0
}

func configInit(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("path", "", defaultPathHelp)
	force := fs.Bool("force", false, "Overwrite an existing config file")
	defaultsOnly := fs.Bool("defaults", false, "Write the built-in defaults without asking")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	target := *path
	if target == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		target = p
	}
	if _, err := os.Stat(target); err == nil && !*force {
		fmt.Fprintf(stderr, "%s already exists (use --force to overwrite)\n", target)
		return 1
	}

	cfg := config.DefaultConfig()
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	if !*defaultsOnly && interactive {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := tui.RunConfigWizard(ctx, cfg, os.Stdin, os.Stdout); err != nil {
			if errors.Is(err, tui.ErrCancelled) {
				fmt.Fprintln(stderr, "config init cancelled")
				return 1
			}
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	if err := cfg.SaveTo(target); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %s\n", target)
	return 0
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		return "default"
	default:
		return string(src.Kind)
	}
}
