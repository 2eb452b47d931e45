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

	"golang.org/x/term"

	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/prompt"
	"github.com/vaultpass/passgen/internal/service"
)

// exitInterrupted is the conventional status for a process ended by SIGINT.
const exitInterrupted = 130

var errUsage = errors.New("invalid usage")

// cliOptions holds the parsed command-line flags.
type cliOptions struct {
	opts  crypto.Options
	all   bool
	count int
	hash  bool
	seed  uint64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, interactive))
}

// run executes the command and returns the process exit code. With no
// arguments it starts the interactive session. tty reports whether stdout is
// a terminal; it only affects the flag-driven output format.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, tty bool) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := cfg.NewLogger(stderr)

	if len(args) == 0 {
		gen := crypto.NewGenerator(crypto.DefaultSource(), crypto.WithMaxAttempts(cfg.MaxAttempts))
		err := prompt.NewSession(stdin, stdout, gen, logger).Run(ctx)
		if errors.Is(err, context.Canceled) {
			logger.Debug("interactive session interrupted")
			return exitInterrupted
		}
		if err != nil {
			logger.Error("interactive session failed", "error", err)
			return 1
		}
		return 0
	}

	cli, err := parseFlags(args, cfg.MaxCount, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	src := crypto.DefaultSource()
	if cli.seed != 0 {
		src = crypto.NewSeededSource(cli.seed)
	}
	gen := crypto.NewGenerator(src, crypto.WithMaxAttempts(cfg.MaxAttempts))

	if err := generate(gen, cli, stdout, tty); err != nil {
		logger.Error("generating password", "error", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, maxCount int, stderr io.Writer) (cliOptions, error) {
	var cli cliOptions

	fs := flag.NewFlagSet("passgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cli.opts.Length, "length", crypto.MinLength, "password length (0-255, values below 4 are raised to 4)")
	fs.BoolVar(&cli.opts.Lowercase, "lower", false, "include lowercase letters")
	fs.BoolVar(&cli.opts.Uppercase, "upper", false, "include uppercase letters")
	fs.BoolVar(&cli.opts.Digits, "digits", false, "include digits")
	fs.BoolVar(&cli.opts.Special, "special", false, "include special characters")
	fs.BoolVar(&cli.all, "all", false, "include every character class")
	fs.IntVar(&cli.count, "count", 1, "number of passwords to generate")
	fs.BoolVar(&cli.hash, "hash", false, "print the Argon2id hash after each password")
	fs.Uint64Var(&cli.seed, "seed", 0, "seed for reproducible output (0 uses the system source)")

	if err := fs.Parse(args); err != nil {
		return cli, err
	}

	switch {
	case fs.NArg() > 0:
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return cli, errUsage
	case cli.opts.Length < 0 || cli.opts.Length > service.MaxLength:
		fmt.Fprintf(stderr, "length must be between 0 and %d\n", service.MaxLength)
		return cli, errUsage
	case cli.count < 1 || cli.count > maxCount:
		fmt.Fprintf(stderr, "count must be between 1 and %d\n", maxCount)
		return cli, errUsage
	}

	if cli.all {
		cli.opts = crypto.AllClasses(cli.opts.Length)
	}
	return cli, nil
}

func generate(gen *crypto.Generator, cli cliOptions, w io.Writer, tty bool) error {
	for range cli.count {
		password, err := gen.Generate(cli.opts)
		if err != nil {
			return err
		}

		if tty {
			fmt.Fprintln(w, prompt.Banner)
		}
		fmt.Fprintln(w, password)

		if cli.hash {
			hash, err := crypto.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}
			fmt.Fprintln(w, hash)
		}
	}
	return nil
}
