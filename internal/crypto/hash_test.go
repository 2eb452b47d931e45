package crypto

import (
	"errors"
	"strings"
	"testing"
)

// fastParams keeps the suite quick; the format is identical to the defaults.
var fastParams = HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashPasswordFormat(t *testing.T) {
	hash, err := HashPassword("aZ0)aZ0)")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("HashPassword() expected 6 parts, got %d: %q", len(parts), hash)
	}
	if parts[1] != "argon2id" {
		t.Errorf("HashPassword() algorithm = %q, want %q", parts[1], "argon2id")
	}
	if parts[2] != "v=19" {
		t.Errorf("HashPassword() version = %q, want %q", parts[2], "v=19")
	}
	if parts[3] != "m=65536,t=3,p=2" {
		t.Errorf("HashPassword() params = %q, want %q", parts[3], "m=65536,t=3,p=2")
	}
}

func TestVerifyGeneratedPassword(t *testing.T) {
	password, err := Generate(AllClasses(24))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	hash, err := HashPasswordWithParams(password, fastParams)
	if err != nil {
		t.Fatalf("HashPasswordWithParams() unexpected error: %v", err)
	}

	match, err := VerifyPassword(password, hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if !match {
		t.Error("VerifyPassword() returned false for the hashed password")
	}

	match, err = VerifyPassword(password+"x", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if match {
		t.Error("VerifyPassword() returned true for a different password")
	}
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	a, err := HashPasswordWithParams("1234", fastParams)
	if err != nil {
		t.Fatalf("HashPasswordWithParams() unexpected error: %v", err)
	}
	b, err := HashPasswordWithParams("1234", fastParams)
	if err != nil {
		t.Fatalf("HashPasswordWithParams() unexpected error: %v", err)
	}

	if a == b {
		t.Error("identical hashes for the same password (salt should differ)")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{name: "not phc", encoded: "invalid-hash-format", wantErr: ErrInvalidHashFormat},
		{name: "wrong algorithm", encoded: "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5", wantErr: ErrInvalidHashFormat},
		{name: "missing key", encoded: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA", wantErr: ErrInvalidHashFormat},
		{name: "bad params", encoded: "$argon2id$v=19$memory$c2FsdA$a2V5", wantErr: ErrInvalidHashFormat},
		{name: "bad salt", encoded: "$argon2id$v=19$m=1024,t=1,p=1$!!$a2V5", wantErr: ErrInvalidHashFormat},
		{name: "old version", encoded: "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5", wantErr: ErrIncompatibleVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPassword("password", tt.encoded)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("VerifyPassword() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
