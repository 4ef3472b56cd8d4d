package store

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openportal/portald/pkg/types"
)

// UserFile is a YAML-backed user registry.
type UserFile struct {
	path string
}

type userDocument struct {
	Users []types.User `yaml:"users"`
}

// NewUserFile creates a registry backed by a users YAML file.
func NewUserFile(path string) *UserFile {
	return &UserFile{path: path}
}

// GetAllUsers implements Users.
func (s *UserFile) GetAllUsers() ([]types.User, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// GetUserByUsername implements Users.
func (s *UserFile) GetUserByUsername(name string) (types.User, bool, error) {
	doc, err := s.load()
	if err != nil {
		return types.User{}, false, err
	}
	for _, user := range doc.Users {
		if strings.EqualFold(user.Username, name) {
			return user, true, nil
		}
	}
	return types.User{}, false, nil
}

// AddUser implements Users. The username is stored lowercased; an empty
// role defaults to "user".
func (s *UserFile) AddUser(name, role string) (bool, error) {
	doc, err := s.load()
	if err != nil {
		return false, err
	}

	for _, user := range doc.Users {
		if strings.EqualFold(user.Username, name) {
			return false, nil
		}
	}

	if strings.TrimSpace(role) == "" {
		role = types.RoleUser
	}
	doc.Users = append(doc.Users, types.User{
		Username: strings.ToLower(strings.TrimSpace(name)),
		Role:     role,
	})

	if err := s.save(doc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserFile) load() (userDocument, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return userDocument{}, fmt.Errorf("reading user registry: %w", err)
	}
	var doc userDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return userDocument{}, fmt.Errorf("decoding user registry: %w", err)
	}
	return doc, nil
}

func (s *UserFile) save(doc userDocument) error {
	encoded, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding user registry: %w", err)
	}
	if err := os.WriteFile(s.path, encoded, 0o644); err != nil {
		return fmt.Errorf("writing user registry: %w", err)
	}
	return nil
}
