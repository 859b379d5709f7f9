package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/autotradecenter/autotrade-api/models"
)

// Sentinel errors surfaced by the guard; controllers translate them into
// response envelope codes.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
)

// ValidationError reports a rejected registration before any store call
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Identity is the authenticated principal held by a session. Role is
// models.RoleClient for client accounts and the stored employee role
// otherwise.
type Identity struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// IsClient reports whether the identity belongs to a client account
func (i Identity) IsClient() bool {
	return i.Role == models.RoleClient
}

// HashPassword returns the unsalted SHA-256 hex digest of the password.
// The digest must stay byte-for-byte compatible with the hashes already
// stored in the database, so no per-user salt is applied.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// RegisterInput carries a registration form submission
type RegisterInput struct {
	FirstName       string
	LastName        string
	Phone           string
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
	Role            string
	Position        string
}

// Register validates the input and creates a new client or employee account.
// Username uniqueness is checked within the target table only: a client and
// an employee may share a username.
func Register(db *gorm.DB, in RegisterInput) error {
	if err := validateRegistration(in); err != nil {
		return err
	}

	passwordHash := HashPassword(in.Password)

	if in.Role == models.RoleClient {
		var count int64
		if err := db.Model(&models.Client{}).Where(`"Username" = ?`, in.Username).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		client := models.Client{
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Phone:        in.Phone,
			Email:        in.Email,
			Username:     in.Username,
			PasswordHash: passwordHash,
		}
		if err := db.Create(&client).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("failed to create client: %w", err)
		}
		return nil
	}

	var count int64
	if err := db.Model(&models.Employee{}).Where(`"Username" = ?`, in.Username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	employee := models.Employee{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Position:     in.Position,
		Phone:        in.Phone,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: passwordHash,
		Role:         in.Role,
	}
	if err := db.Create(&employee).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

// Authenticate checks the credentials against the table implied by the
// claimed role. A client login attempt is never checked against the
// Employees table and vice versa, so valid credentials submitted under the
// wrong role fail.
func Authenticate(db *gorm.DB, username, password, claimedRole string) (*Identity, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	passwordHash := HashPassword(password)

	if claimedRole == models.RoleClient {
		var client models.Client
		err := db.Where(`"Username" = ? AND "PasswordHash" = ?`, username, passwordHash).First(&client).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, fmt.Errorf("failed to look up client: %w", err)
		}
		return &Identity{
			ID:        client.ID,
			FirstName: client.FirstName,
			LastName:  client.LastName,
			Role:      models.RoleClient,
		}, nil
	}

	var employee models.Employee
	err := db.Where(`"Username" = ? AND "PasswordHash" = ?`, username, passwordHash).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}

	// The stored role must match the claimed one
	if employee.Role != claimedRole {
		return nil, ErrInvalidCredentials
	}

	return &Identity{
		ID:        employee.ID,
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		Role:      employee.Role,
	}, nil
}

func validateRegistration(in RegisterInput) error {
	if in.FirstName == "" || in.LastName == "" || in.Phone == "" || in.Username == "" || in.Password == "" {
		return &ValidationError{Message: "First name, last name, phone, username and password are required"}
	}
	if in.Password != in.ConfirmPassword {
		return &ValidationError{Message: "Passwords do not match"}
	}
	if !models.IsValidRole(in.Role) {
		return &ValidationError{Message: "Unknown role"}
	}
	if in.Role != models.RoleClient && in.Position == "" {
		return &ValidationError{Message: "Position is required for employees"}
	}
	return nil
}

// isUniqueViolation detects a unique constraint error from either
// PostgreSQL or SQLite
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
