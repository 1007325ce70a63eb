package services

import (
	"errors"
	"fmt"

	"asset-dashboard/backend/app/models"
	"asset-dashboard/backend/app/repo"
	"asset-dashboard/backend/global"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("unknown role")
)

type UserService struct{ users *repo.UserRepository }

func NewUserService(users *repo.UserRepository) *UserService { return &UserService{users: users} }

// EnsureAdmin makes sure the configured account exists with the admin role.
// An existing account keeps its password but is promoted if needed.
func (s *UserService) EnsureAdmin(username, password string) error {
	u, err := s.users.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.CreateUser(username, password, models.RoleAdmin)
	}
	if err != nil {
		return err
	}
	if u.IsAdmin() {
		return nil
	}
	global.Logger.Warn().Str("user", username).Msg("promoting configured account to admin")
	return s.users.SetRole(u.ID, models.RoleAdmin)
}

// CreateUser stores a bcrypt hash of password. An empty role means operator.
func (s *UserService) CreateUser(username, password string, role models.Role) error {
	if role == "" {
		role = models.RoleOperator
	}
	if !role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Create(&models.User{Username: username, PasswordHash: string(hash), Role: role})
}

func (s *UserService) ValidateCredentials(username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Admins counts accounts allowed to force asset state.
func (s *UserService) Admins() (int64, error) { return s.users.CountByRole(models.RoleAdmin) }
