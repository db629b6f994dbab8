package services

import (
	"errors"
	"fmt"

	"socialstream/models"
	"socialstream/repositories"

	"golang.org/x/crypto/bcrypt"
)

// The IdentityService interface defines account creation and credential
// verification.
type IdentityService interface {
	CreateUser(input *CreateUserInput) (*models.User, error)
	VerifyCredentials(email, password string) (*models.User, error)
}

type CreateUserInput struct {
	Username string `json:"username" description:"Unique username"`
	Email    string `json:"email" description:"Unique email address"`
	Password string `json:"password" description:"Plaintext password, stored only as a bcrypt hash"`
	IsAdmin  bool   `json:"-"`
}

// identityService is the implementation of the IdentityService interface
type identityService struct {
	users      repositories.UserRepository
	bcryptCost int
}

var _ IdentityService = (*identityService)(nil)

// NewIdentityService creates a new IdentityService instance. bcryptCost
// falls back to the library default when out of range.
func NewIdentityService(users repositories.UserRepository, bcryptCost int) IdentityService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &identityService{users: users, bcryptCost: bcryptCost}
}

// CreateUser persists a new account with a hashed password. The unique
// constraints are the source of truth for duplicates: the insert is one
// transaction, and an integrity violation surfaces as ErrDuplicateIdentity
// rather than a storage error.
func (s *identityService) CreateUser(input *CreateUserInput) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
		IsAdmin:  input.IsAdmin,
	}

	if err := s.users.Create(&user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// VerifyCredentials looks an account up by email and checks the password.
// Unknown email and wrong password return the identical error.
func (s *identityService) VerifyCredentials(email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
