package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// User represents a student or administrator account. Scores maps a
// word-list name to the ordered history of session scores for that list,
// oldest first.
type User struct {
	Username     string
	RealName     string
	PasswordHash string
	Birthday     string
	Photo        string
	Scores       map[string][]int
}

// NewUser creates a user with an empty score history. The password must
// already be hashed; plain text never reaches the model.
func NewUser(username, realName, passwordHash, birthday, photo string) *User {
	return &User{
		Username:     username,
		RealName:     realName,
		PasswordHash: passwordHash,
		Birthday:     birthday,
		Photo:        photo,
		Scores:       make(map[string][]int),
	}
}

// AddScore appends a session score to the history for the named list.
func (u *User) AddScore(list string, score int) {
	if u.Scores == nil {
		u.Scores = make(map[string][]int)
	}
	u.Scores[list] = append(u.Scores[list], score)
}

// HighScore returns the best historical score for the named list, or 0
// if the user has never played it.
func (u *User) HighScore(list string) int {
	best := 0
	for _, score := range u.Scores[list] {
		if score > best {
			best = score
		}
	}
	return best
}

// Encode serialises the user as delimiter-joined fields. The score
// history is the final field, packed as base64-wrapped JSON so the blob
// can never contain the delimiter or a newline.
func (u *User) Encode() (string, error) {
	scores := u.Scores
	if scores == nil {
		scores = map[string][]int{}
	}
	blob, err := json.Marshal(scores)
	if err != nil {
		return "", fmt.Errorf("failed to encode score history: %w", err)
	}
	fields := []string{
		u.Username,
		u.RealName,
		u.PasswordHash,
		u.Birthday,
		u.Photo,
		base64.StdEncoding.EncodeToString(blob),
	}
	return strings.Join(fields, fieldDelimiter), nil
}

// DecodeUser parses a serialised user record. The last segment is the
// opaque score-history blob.
func DecodeUser(s string) (*User, error) {
	parts := strings.Split(s, fieldDelimiter)
	if len(parts) != 6 {
		return nil, fmt.Errorf("malformed user record: expected 6 fields, got %d", len(parts))
	}

	blob, err := base64.StdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("failed to decode score history blob: %w", err)
	}
	scores := make(map[string][]int)
	if err := json.Unmarshal(blob, &scores); err != nil {
		return nil, fmt.Errorf("failed to decode score history: %w", err)
	}

	return &User{
		Username:     parts[0],
		RealName:     parts[1],
		PasswordHash: parts[2],
		Birthday:     parts[3],
		Photo:        parts[4],
		Scores:       scores,
	}, nil
}
