package userdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UserType controls whether list views show populated data or forced empty
// states. It simulates different account states in demo environments.
type UserType string

const (
	UserTypeNew      UserType = "new"
	UserTypeExisting UserType = "existing"
	UserTypeRegular  UserType = "regular"
)

// FileName is the default name of the user data file inside the config dir.
const FileName = "user_data.json"

// UserData is the persisted blob. Only userType is interpreted.
type UserData struct {
	UserType UserType `json:"userType"`
}

// ParseUserType maps user input to a UserType. Anything unrecognized,
// including the empty string, is the regular user.
func ParseUserType(s string) UserType {
	switch UserType(strings.ToLower(strings.TrimSpace(s))) {
	case UserTypeNew:
		return UserTypeNew
	case UserTypeExisting:
		return UserTypeExisting
	default:
		return UserTypeRegular
	}
}

// Valid reports whether s names one of the known user types exactly.
func Valid(s string) bool {
	switch UserType(s) {
	case UserTypeNew, UserTypeExisting, UserTypeRegular:
		return true
	}
	return false
}

// Load reads the user data file. A missing or malformed file yields the
// regular user; only unexpected read errors are returned.
func Load(path string) (UserData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return UserData{UserType: UserTypeRegular}, nil
		}
		return UserData{UserType: UserTypeRegular}, fmt.Errorf("reading user data: %w", err)
	}

	var raw struct {
		UserType string `json:"userType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return UserData{UserType: UserTypeRegular}, nil
	}
	return UserData{UserType: ParseUserType(raw.UserType)}, nil
}

// Save writes the user data file, creating its directory.
func Save(path string, ud UserData) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating user data dir: %w", err)
	}
	data, err := json.MarshalIndent(ud, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding user data: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing user data: %w", err)
	}
	return nil
}
