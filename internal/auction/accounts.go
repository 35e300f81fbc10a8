package auction

import (
	"fmt"
	"regexp"
	"strings"

	"auction_house/internal/auctionerrors"
	"auction_house/internal/domain"
	"auction_house/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Accounts handles registration and credential checks
type Accounts struct {
	store repository.Store
}

// NewAccounts creates an Accounts service over a Store
func NewAccounts(store repository.Store) *Accounts {
	return &Accounts{store: store}
}

// Register creates a new user. The password must match its confirmation and
// the username must be unique; usernames are stored lowercase so uniqueness
// is case-insensitive.
func (a *Accounts) Register(username, email, password, confirmation string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(email) == "" || password == "" {
		return domain.User{}, fmt.Errorf("register: username, email and password are required: %w", auctionerrors.ErrInvalidInput)
	}
	if !usernamePattern.MatchString(username) {
		return domain.User{}, fmt.Errorf("register: username must start with a letter and contain only letters, digits and underscores: %w", auctionerrors.ErrInvalidInput)
	}
	if len(password) < 8 {
		return domain.User{}, fmt.Errorf("register: password must be at least 8 characters: %w", auctionerrors.ErrInvalidInput)
	}
	if password != confirmation {
		return domain.User{}, fmt.Errorf("register: %w", auctionerrors.ErrPasswordMismatch)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("register: hash password: %w", err)
	}
	user := domain.User{
		Username: strings.ToLower(username),
		Email:    strings.TrimSpace(email),
		Password: string(hash),
		Role:     "user",
	}
	if err := a.store.CreateUser(&user); err != nil {
		return domain.User{}, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// Authenticate checks a username/password pair and returns the user.
// Unknown usernames and wrong passwords both map to ErrInvalidCredentials.
func (a *Accounts) Authenticate(username, password string) (domain.User, error) {
	user, err := a.store.GetUserByUsername(strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return domain.User{}, fmt.Errorf("authenticate: %w", auctionerrors.ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, fmt.Errorf("authenticate: %w", auctionerrors.ErrInvalidCredentials)
	}
	return user, nil
}
