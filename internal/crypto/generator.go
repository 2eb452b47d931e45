package crypto

import (
	"errors"
	"strings"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "1234567890"
	specialChars   = "!@#$%^&*()"

	// MinLength is the shortest password ever produced. Shorter requests are
	// clamped up so every class can get its guaranteed character.
	MinLength = 4

	// DefaultMaxAttempts bounds the generate-and-validate loop.
	DefaultMaxAttempts = 1000
)

// ErrAttemptsExhausted is returned when no candidate passed validation within
// the attempt limit.
var ErrAttemptsExhausted = errors.New("password generation did not converge")

// Class is one of the fixed character categories.
type Class int

const (
	Lowercase Class = iota
	Uppercase
	Digits
	Special
)

// classes lists every Class in declaration order.
var classes = [...]Class{Lowercase, Uppercase, Digits, Special}

// Charset returns the characters belonging to the class.
func (c Class) Charset() string {
	switch c {
	case Lowercase:
		return lowercaseChars
	case Uppercase:
		return uppercaseChars
	case Digits:
		return digitChars
	case Special:
		return specialChars
	}
	return ""
}

func (c Class) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Digits:
		return "digits"
	case Special:
		return "special"
	}
	return "unknown"
}

// classify returns the first class containing ch, in declaration order.
func classify(ch byte) (Class, bool) {
	for _, c := range classes {
		if strings.IndexByte(c.Charset(), ch) >= 0 {
			return c, true
		}
	}
	return 0, false
}

// Options configures a single password. With no class enabled the password
// is made of digits only.
type Options struct {
	Length    int
	Lowercase bool
	Uppercase bool
	Digits    bool
	Special   bool
}

// AllClasses returns options with every class enabled.
func AllClasses(length int) Options {
	return Options{
		Length:    length,
		Lowercase: true,
		Uppercase: true,
		Digits:    true,
		Special:   true,
	}
}

// Enabled reports whether the class was requested.
func (o Options) Enabled(c Class) bool {
	switch c {
	case Lowercase:
		return o.Lowercase
	case Uppercase:
		return o.Uppercase
	case Digits:
		return o.Digits
	case Special:
		return o.Special
	}
	return false
}

// Classes returns the requested classes in declaration order.
func (o Options) Classes() []Class {
	var out []Class
	for _, c := range classes {
		if o.Enabled(c) {
			out = append(out, c)
		}
	}
	return out
}

// EffectiveLength is the requested length clamped to MinLength.
func (o Options) EffectiveLength() int {
	return max(o.Length, MinLength)
}

// Generator produces passwords from a random Source.
type Generator struct {
	src         Source
	maxAttempts int
}

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithMaxAttempts caps how many candidates are tried before giving up.
// Values below 1 keep the default.
func WithMaxAttempts(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// NewGenerator creates a Generator drawing from src. A nil src uses the
// runtime-seeded default source.
func NewGenerator(src Source, opts ...GeneratorOption) *Generator {
	if src == nil {
		src = DefaultSource()
	}
	g := &Generator{src: src, maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = NewGenerator(nil)

// Generate creates a password with the default generator.
func Generate(opts Options) (string, error) {
	return defaultGenerator.Generate(opts)
}

// Generate creates a password of opts.EffectiveLength() characters in which
// every requested class appears at least once and no other class appears.
//
// One character per requested class is placed first, in random class order,
// and the rest is filled from the combined alphabet. The guaranteed
// characters are therefore always at the front of the password.
func (g *Generator) Generate(opts Options) (string, error) {
	guaranteed := opts.Classes()

	var alphabet strings.Builder
	for _, c := range guaranteed {
		alphabet.WriteString(c.Charset())
	}
	want := opts
	if len(guaranteed) == 0 {
		alphabet.WriteString(digitChars)
		want = Options{Digits: true}
	}

	length := opts.EffectiveLength()
	for range g.maxAttempts {
		candidate := g.candidate(alphabet.String(), guaranteed, length)
		if accept(candidate, want) {
			return string(candidate), nil
		}
	}

	return "", ErrAttemptsExhausted
}

// candidate builds one unvalidated password.
func (g *Generator) candidate(alphabet string, guaranteed []Class, length int) []byte {
	buf := make([]byte, 0, length)
	remaining := length

	pool := append([]Class(nil), guaranteed...)
	for len(pool) > 0 && remaining > 0 {
		i := g.src.IntN(len(pool))
		buf = append(buf, g.pick(pool[i].Charset()))
		remaining--
		pool = append(pool[:i], pool[i+1:]...)
	}

	for ; remaining > 0; remaining-- {
		buf = append(buf, g.pick(alphabet))
	}

	return buf
}

func (g *Generator) pick(charset string) byte {
	return charset[g.src.IntN(len(charset))]
}

// accept reports whether the classes present in password are exactly the
// classes enabled in want. Characters outside every class reject it.
func accept(password []byte, want Options) bool {
	var has [len(classes)]bool
	for _, ch := range password {
		c, ok := classify(ch)
		if !ok {
			return false
		}
		has[c] = true
	}

	for _, c := range classes {
		if has[c] != want.Enabled(c) {
			return false
		}
	}
	return true
}
