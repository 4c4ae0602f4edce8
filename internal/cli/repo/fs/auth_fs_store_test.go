package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ListKeeper/internal/cli/model"
	"ListKeeper/internal/cli/repo"
)

func TestAuthFSStore_SaveLoad_Token_TrimsWhitespace(t *testing.T) {
	st := AuthFSStore{Dir: filepath.Join(t.TempDir(), "nested")}
	if err := st.Save("tok-123\n\n"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	// Дозапишем вручную лишние пробелы в конец файла, чтобы проверить trim
	f, _ := os.OpenFile(filepath.Join(st.Dir, tokenFile), os.O_APPEND|os.O_WRONLY, 0o600)
	_, _ = f.WriteString("  \r\n")
	_ = f.Close()

	tok, err := st.Load()
	if err != nil {
		t.Fatalf("load token: %v", err)
	}
	if tok != "tok-123" {
		t.Fatalf("token not trimmed, got %q", tok)
	}
}

func TestAuthFSStore_Load_TokenMissingOrEmpty(t *testing.T) {
	st := AuthFSStore{Dir: t.TempDir()}
	if _, err := st.Load(); !errors.Is(err, repo.ErrNoToken) {
		t.Fatalf("expected ErrNoToken for missing file, got %v", err)
	}
	_ = os.WriteFile(filepath.Join(st.Dir, tokenFile), []byte(" \n"), 0o600)
	if _, err := st.Load(); !errors.Is(err, repo.ErrNoToken) {
		t.Fatalf("expected ErrNoToken for empty file, got %v", err)
	}
	if err := st.Save("  "); err == nil {
		t.Fatalf("expected error for empty token")
	}
}

func TestAuthFSStore_Clear(t *testing.T) {
	st := AuthFSStore{Dir: t.TempDir()}
	if err := st.Clear(); err != nil {
		t.Fatalf("clear on missing file: %v", err)
	}
	_ = st.Save("tok")
	if err := st.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := st.Load(); !errors.Is(err, repo.ErrNoToken) {
		t.Fatalf("token must be gone, got %v", err)
	}
}

func TestAuthFSStore_Profile(t *testing.T) {
	st := AuthFSStore{Dir: t.TempDir()}
	p, err := st.LoadProfile()
	if err != nil || p != nil {
		t.Fatalf("expected no profile, got %v %v", p, err)
	}

	want := &model.Profile{ID: "u1", Name: "Ann", Email: "ann@example.com"}
	if err := st.SaveProfile(want); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	got, err := st.LoadProfile()
	if err != nil || *got != *want {
		t.Fatalf("profile mismatch: %+v %v", got, err)
	}

	if err := st.ClearProfile(); err != nil {
		t.Fatalf("clear profile: %v", err)
	}
	if p, _ := st.LoadProfile(); p != nil {
		t.Fatalf("profile must be cleared")
	}

	if err := st.SaveProfile(nil); err == nil {
		t.Fatalf("expected error for nil profile")
	}
}

func TestAuthFSStore_NoDir(t *testing.T) {
	if err := (AuthFSStore{}).Save("tok"); err == nil {
		t.Fatalf("expected error without dir")
	}
}
