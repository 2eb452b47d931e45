package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
)

// MaxLength is the longest password that can be requested.
const MaxLength = 255

var (
	ErrLengthOutOfRange = errors.New("length must be between 0 and 255")
	ErrCountOutOfRange  = errors.New("count is out of range")
)

// PasswordGenerator is satisfied by *crypto.Generator.
type PasswordGenerator interface {
	Generate(opts crypto.Options) (string, error)
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen      PasswordGenerator
	hash     func(string) (string, error)
	maxCount int
	logger   *slog.Logger
}

// NewGeneratorService creates a new GeneratorService. maxCount bounds how
// many passwords one request may ask for.
func NewGeneratorService(gen PasswordGenerator, maxCount int, logger *slog.Logger) *GeneratorService {
	return &GeneratorService{
		gen:      gen,
		hash:     crypto.HashPassword,
		maxCount: maxCount,
		logger:   logger,
	}
}

// Generate produces the passwords described by req. A zero count means one.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	if req.Length < 0 || req.Length > MaxLength {
		return model.GenerateResponse{}, ErrLengthOutOfRange
	}

	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || count > s.maxCount {
		return model.GenerateResponse{}, fmt.Errorf("%w: must be between 1 and %d", ErrCountOutOfRange, s.maxCount)
	}

	opts := OptionsFromRequest(req)

	resp := model.GenerateResponse{
		Length:    opts.EffectiveLength(),
		Classes:   classNames(opts),
		Passwords: make([]model.GeneratedPassword, 0, count),
	}

	for range count {
		if err := ctx.Err(); err != nil {
			return model.GenerateResponse{}, err
		}

		password, err := s.gen.Generate(opts)
		if err != nil {
			s.logger.ErrorContext(ctx, "password generation failed", "error", err)
			return model.GenerateResponse{}, err
		}

		generated := model.GeneratedPassword{Password: password}
		if req.Hash {
			if generated.Hash, err = s.hash(password); err != nil {
				s.logger.ErrorContext(ctx, "password hashing failed", "error", err)
				return model.GenerateResponse{}, err
			}
		}
		resp.Passwords = append(resp.Passwords, generated)
	}

	s.logger.InfoContext(ctx, "passwords generated",
		"count", count,
		"length", resp.Length,
		"classes", resp.Classes,
		"hashed", req.Hash,
	)

	return resp, nil
}

// OptionsFromRequest maps a wire request onto generator options.
func OptionsFromRequest(req model.GenerateRequest) crypto.Options {
	if req.All {
		return crypto.AllClasses(req.Length)
	}
	return crypto.Options{
		Length:    req.Length,
		Lowercase: req.Lowercase,
		Uppercase: req.Uppercase,
		Digits:    req.Digits,
		Special:   req.Special,
	}
}

// classNames lists the classes a password may contain. The default set is
// reported as digits.
func classNames(opts crypto.Options) []string {
	enabled := opts.Classes()
	if len(enabled) == 0 {
		return []string{crypto.Digits.String()}
	}

	names := make([]string, len(enabled))
	for i, c := range enabled {
		names[i] = c.String()
	}
	return names
}
