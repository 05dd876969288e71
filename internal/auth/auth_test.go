package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dalbodeule/loco-gate/internal/logging"
)

func TestStaticValidator(t *testing.T) {
	v := NewStaticValidator([]string{"secret-token", " padded "})

	principal, err := v.ValidateToken(context.Background(), "secret-token")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if principal != "secr********" {
		t.Fatalf("principal = %q", principal)
	}

	if _, err := v.ValidateToken(context.Background(), "padded"); err != nil {
		t.Fatalf("trimmed token rejected: %v", err)
	}
	if _, err := v.ValidateToken(context.Background(), "wrong"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
	if _, err := v.ValidateToken(context.Background(), ""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("empty token err = %v, want ErrInvalidToken", err)
	}
}

func TestMaskToken(t *testing.T) {
	if got := MaskToken("ab"); got != "****" {
		t.Fatalf("MaskToken(short) = %q", got)
	}
	if got := MaskToken("abcdefgh"); got != "abcd****" {
		t.Fatalf("MaskToken = %q", got)
	}
}

func TestFileValidator(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens")
	content := "# tunnel clients\nalice:tok-alice\nbob: tok-bob \n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	v, err := NewFileValidator(path, logging.NewLeveledJSONLogger("test", logging.ErrorLevel))
	if err != nil {
		t.Fatalf("NewFileValidator: %v", err)
	}
	defer v.Close()

	principal, err := v.ValidateToken(context.Background(), "tok-alice")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if principal != "alice" {
		t.Fatalf("principal = %q, want alice", principal)
	}
	if principal, _ := v.ValidateToken(context.Background(), "tok-bob"); principal != "bob" {
		t.Fatalf("principal = %q, want bob", principal)
	}
	if _, err := v.ValidateToken(context.Background(), "tok-carol"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestFileValidatorReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens")
	if err := os.WriteFile(path, []byte("alice:tok-alice\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	v, err := NewFileValidator(path, logging.NewLeveledJSONLogger("test", logging.ErrorLevel))
	if err != nil {
		t.Fatalf("NewFileValidator: %v", err)
	}
	defer v.Close()

	if err := os.WriteFile(path, []byte("carol:tok-carol\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		if principal, err := v.ValidateToken(context.Background(), "tok-carol"); err == nil {
			if principal != "carol" {
				t.Fatalf("principal = %q, want carol", principal)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("token file change never picked up")
		}
		time.Sleep(20 * time.Millisecond)
	}

	// The replaced file must also revoke the old token.
	if _, err := v.ValidateToken(context.Background(), "tok-alice"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("revoked token err = %v, want ErrInvalidToken", err)
	}
}

func TestFileValidatorBadFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens")
	if err := os.WriteFile(path, []byte("no-colon-here\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileValidator(path, logging.NewLeveledJSONLogger("test", logging.ErrorLevel)); err == nil {
		t.Fatal("want error for malformed token file")
	}
}

func TestChain(t *testing.T) {
	static := NewStaticValidator([]string{"tok-static"})
	chain := Chain{static, NewStaticValidator([]string{"tok-other"})}

	if _, err := chain.ValidateToken(context.Background(), "tok-other"); err != nil {
		t.Fatalf("chain fallthrough: %v", err)
	}
	if _, err := chain.ValidateToken(context.Background(), "nope"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
