package config

import (
	"fmt"
	"os"
	"strings"
)

// SetAdmin records the administrator's username in the marker file.
func SetAdmin(path, username string) error {
	if err := os.WriteFile(path, []byte("admin="+username), 0o600); err != nil {
		return fmt.Errorf("failed to write admin file: %w", err)
	}
	return nil
}

// GetAdmin returns the administrator's username from the marker file.
// An absent file means no administrator has been configured yet, which
// is reported as an empty name, not an error.
func GetAdmin(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read admin file: %w", err)
	}

	line := strings.TrimSpace(strings.SplitN(string(data), "\n", 2)[0])
	key, value, found := strings.Cut(line, "=")
	if !found || key != "admin" {
		return "", nil
	}
	return value, nil
}
