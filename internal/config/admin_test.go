package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetAdminAbsentFile(t *testing.T) {
	admin, err := GetAdmin(filepath.Join(t.TempDir(), ".config"))
	if err != nil {
		t.Fatalf("GetAdmin() error = %v", err)
	}
	if admin != "" {
		t.Errorf("GetAdmin() on absent file = %q, want empty", admin)
	}
}

func TestSetAdminThenGetAdmin(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".config")

	if err := SetAdmin(path, "headteacher"); err != nil {
		t.Fatalf("SetAdmin() error = %v", err)
	}

	admin, err := GetAdmin(path)
	if err != nil {
		t.Fatalf("GetAdmin() error = %v", err)
	}
	if admin != "headteacher" {
		t.Errorf("GetAdmin() = %q, want %q", admin, "headteacher")
	}
}

func TestGetAdminMalformedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "wrong key", content: "owner=somebody"},
		{name: "no separator", content: "garbage"},
		{name: "empty file", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".config")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			admin, err := GetAdmin(path)
			if err != nil {
				t.Fatalf("GetAdmin() error = %v", err)
			}
			if admin != "" {
				t.Errorf("GetAdmin() = %q, want empty", admin)
			}
		})
	}
}
