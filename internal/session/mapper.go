package session

import (
	"encoding/json"

	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/repository/sqlite"
)

// UserMapper handles conversion between the cached user and its stored row.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToStore encodes a user as the value stored under KeyUser.
func (m *UserMapper) ToStore(user domain.User) (*sqlite.SessionValue, error) {
	encoded, err := json.Marshal(user)
	if err != nil {
		return nil, errors.NewStorageError("encode session user", err)
	}
	return &sqlite.SessionValue{Key: KeyUser, Value: string(encoded)}, nil
}

// FromStore decodes a stored user. An empty or unreadable value yields no user.
func (m *UserMapper) FromStore(raw string) (*domain.User, bool) {
	if raw == "" {
		return nil, false
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &user, true
}
