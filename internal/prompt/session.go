package prompt

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vaultpass/passgen/internal/crypto"
)

// Banner precedes every printed password.
const Banner = "Your new password is:"

const (
	askAll     = "Would you like to use all characters? (y/n)"
	askLower   = "Would you like to use lowercase letters? (y/n)"
	askUpper   = "Would you like to use uppercase letters? (y/n)"
	askDigits  = "Would you like to use numbers? (y/n)"
	askSpecial = "Would you like to use special characters? (y/n)"
	askLength  = "Enter a password length between 4 and 255."
	askAnother = "Would you like to generate another password? (y/n)"
)

// Generator produces a password from options.
type Generator interface {
	Generate(opts crypto.Options) (string, error)
}

// Session runs the interactive generate loop.
type Session struct {
	prompter  *Prompter
	generator Generator
	logger    *slog.Logger
}

// NewSession creates a Session reading from r and writing to w.
func NewSession(r io.Reader, w io.Writer, gen Generator, logger *slog.Logger) *Session {
	return &Session{
		prompter:  NewPrompter(r, w),
		generator: gen,
		logger:    logger,
	}
}

// Run generates passwords until the user declines another one or ctx is
// cancelled, including while a question is waiting for an answer.
func (s *Session) Run(ctx context.Context) error {
	for generated := 0; ; generated++ {
		opts, err := s.askOptions(ctx)
		if err != nil {
			return err
		}

		password, err := s.generator.Generate(opts)
		if err != nil {
			return fmt.Errorf("generating password: %w", err)
		}
		s.logger.Debug("password generated", "length", len(password), "classes", len(opts.Classes()))

		if err := s.prompter.Println(Banner); err != nil {
			return err
		}
		if err := s.prompter.Println(password); err != nil {
			return err
		}

		another, err := s.prompter.YesNo(ctx, askAnother)
		if err != nil {
			return err
		}
		if !another {
			s.logger.Debug("session finished", "passwords", generated+1)
			return nil
		}
	}
}

func (s *Session) askOptions(ctx context.Context) (crypto.Options, error) {
	var opts crypto.Options

	all, err := s.prompter.YesNo(ctx, askAll)
	if err != nil {
		return opts, err
	}

	if all {
		opts = crypto.AllClasses(0)
	} else {
		for _, q := range []struct {
			msg  string
			flag *bool
		}{
			{askLower, &opts.Lowercase},
			{askUpper, &opts.Uppercase},
			{askDigits, &opts.Digits},
			{askSpecial, &opts.Special},
		} {
			if *q.flag, err = s.prompter.YesNo(ctx, q.msg); err != nil {
				return opts, err
			}
		}
	}

	if opts.Length, err = s.prompter.Length(ctx, askLength); err != nil {
		return opts, err
	}
	return opts, nil
}
