package password

import (
	"errors"
	"strings"
	"testing"
)

func testHashers() map[string]Hasher {
	return map[string]Hasher{
		"bcrypt":   NewBcryptHasher(WithCost(4)),
		"argon2id": NewArgon2Hasher(WithArgon2Memory(1024), WithArgon2Threads(1)),
	}
}

func TestHashAndVerify(t *testing.T) {
	for name, h := range testHashers() {
		t.Run(name, func(t *testing.T) {
			encoded, err := h.Hash("pw1")
			if err != nil {
				t.Fatalf("Hash failed: %v", err)
			}
			if encoded == "pw1" {
				t.Fatal("hash must not equal the plaintext")
			}

			ok, err := h.Verify("pw1", encoded)
			if err != nil || !ok {
				t.Fatalf("expected match, got ok=%v err=%v", ok, err)
			}

			ok, err = h.Verify("pw2", encoded)
			if err != nil {
				t.Fatalf("mismatch should not be an error: %v", err)
			}
			if ok {
				t.Fatal("expected mismatch for wrong password")
			}
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	for name, h := range testHashers() {
		t.Run(name, func(t *testing.T) {
			a, _ := h.Hash("same")
			b, _ := h.Hash("same")
			if a == b {
				t.Fatal("expected different hashes for the same password")
			}
			for _, encoded := range []string{a, b} {
				if ok, _ := h.Verify("same", encoded); !ok {
					t.Errorf("expected %q to verify", encoded)
				}
			}
		})
	}
}

func TestHashEmptyPassword(t *testing.T) {
	for name, h := range testHashers() {
		t.Run(name, func(t *testing.T) {
			if _, err := h.Hash(""); !errors.Is(err, ErrEmptyPassword) {
				t.Fatalf("expected ErrEmptyPassword, got %v", err)
			}
		})
	}
}

func TestVerifyMalformed(t *testing.T) {
	tests := []struct {
		name    string
		hasher  Hasher
		encoded string
	}{
		{"bcrypt garbage", NewBcryptHasher(WithCost(4)), "not-a-hash"},
		{"bcrypt empty", NewBcryptHasher(WithCost(4)), ""},
		{"argon2 garbage", NewArgon2Hasher(), "not-a-hash"},
		{"argon2 wrong variant", NewArgon2Hasher(), "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5"},
		{"argon2 bad params", NewArgon2Hasher(), "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5"},
		{"argon2 bad salt", NewArgon2Hasher(), "$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5"},
		{"argon2 bad version", NewArgon2Hasher(), "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := tt.hasher.Verify("pw1", tt.encoded)
			if ok {
				t.Fatal("malformed hash must not verify")
			}
			if !errors.Is(err, ErrMalformedCredential) {
				t.Fatalf("expected ErrMalformedCredential, got %v", err)
			}
		})
	}
}

func TestBcryptRejectsLongPassword(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))
	if _, err := h.Hash(strings.Repeat("a", 73)); err == nil {
		t.Fatal("expected error for password over 72 bytes")
	}
}

func TestWithCostIgnoresOutOfRange(t *testing.T) {
	if h := NewBcryptHasher(WithCost(1)); h.cost != 12 {
		t.Errorf("expected default cost 12, got %d", h.cost)
	}
	if h := NewBcryptHasher(WithCost(5)); h.cost != 5 {
		t.Errorf("expected cost 5, got %d", h.cost)
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Algorithm != AlgorithmBcrypt || cfg.BcryptCost != 12 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	bad := Config{Algorithm: "md5", BcryptCost: 12}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
	low := Config{Algorithm: AlgorithmBcrypt, BcryptCost: 2}
	if err := low.Validate(); err == nil {
		t.Fatal("expected error for bcrypt cost below 4")
	}
}

func TestNewHasher(t *testing.T) {
	if _, ok := NewHasher(Config{}).(*BcryptHasher); !ok {
		t.Error("expected bcrypt by default")
	}
	if _, ok := NewHasher(Config{Algorithm: AlgorithmArgon2id}).(*Argon2Hasher); !ok {
		t.Error("expected argon2id hasher")
	}
}
