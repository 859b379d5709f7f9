package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/autotradecenter/autotrade-api/models"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Employee{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestHashPassword(t *testing.T) {
	// Known SHA-256 digest; stored hashes depend on this exact scheme
	assert.Equal(t,
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		HashPassword("password"))

	assert.Equal(t, HashPassword("secret"), HashPassword("secret"))
	assert.NotEqual(t, HashPassword("secret"), HashPassword("Secret"))
}

func TestRegisterValidation(t *testing.T) {
	db := setupAuthTestDB(t)

	valid := RegisterInput{
		FirstName: "Alice", LastName: "Smith", Phone: "555-0100",
		Username: "alice", Password: "pw1", ConfirmPassword: "pw1",
		Role: models.RoleClient,
	}

	tests := []struct {
		name   string
		mutate func(in *RegisterInput)
	}{
		{"Missing first name", func(in *RegisterInput) { in.FirstName = "" }},
		{"Missing phone", func(in *RegisterInput) { in.Phone = "" }},
		{"Missing password", func(in *RegisterInput) { in.Password = ""; in.ConfirmPassword = "" }},
		{"Password mismatch", func(in *RegisterInput) { in.ConfirmPassword = "pw2" }},
		{"Unknown role", func(in *RegisterInput) { in.Role = "Janitor" }},
		{"Staff without position", func(in *RegisterInput) { in.Role = models.RoleManager }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := Register(db, in)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}

	// Nothing was written by the rejected attempts
	var count int64
	db.Model(&models.Client{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db := setupAuthTestDB(t)

	assert.NoError(t, Register(db, RegisterInput{
		FirstName: "Alice", LastName: "Smith", Phone: "555-0100",
		Username: "alice", Password: "pw1", ConfirmPassword: "pw1",
		Role: models.RoleClient,
	}))
	assert.NoError(t, Register(db, RegisterInput{
		FirstName: "Bob", LastName: "Jones", Phone: "555-0101",
		Username: "bob", Password: "pw2", ConfirmPassword: "pw2",
		Role: models.RoleManager, Position: "Sales",
	}))

	// The stored hash is the digest, never the password itself
	var client models.Client
	db.Where(`"Username" = ?`, "alice").First(&client)
	assert.Equal(t, HashPassword("pw1"), client.PasswordHash)

	identity, err := Authenticate(db, "alice", "pw1", models.RoleClient)
	assert.NoError(t, err)
	assert.Equal(t, client.ID, identity.ID)
	assert.Equal(t, "Alice", identity.FirstName)
	assert.Equal(t, models.RoleClient, identity.Role)
	assert.True(t, identity.IsClient())

	identity, err = Authenticate(db, "bob", "pw2", models.RoleManager)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleManager, identity.Role)
	assert.False(t, identity.IsClient())
}

func TestAuthenticateRejections(t *testing.T) {
	db := setupAuthTestDB(t)

	assert.NoError(t, Register(db, RegisterInput{
		FirstName: "Alice", LastName: "Smith", Phone: "555-0100",
		Username: "alice", Password: "pw1", ConfirmPassword: "pw1",
		Role: models.RoleClient,
	}))
	assert.NoError(t, Register(db, RegisterInput{
		FirstName: "Bob", LastName: "Jones", Phone: "555-0101",
		Username: "bob", Password: "pw2", ConfirmPassword: "pw2",
		Role: models.RoleManager, Position: "Sales",
	}))

	tests := []struct {
		name     string
		username string
		password string
		role     string
	}{
		{"Wrong password", "alice", "wrong", models.RoleClient},
		{"Unknown username", "carol", "pw1", models.RoleClient},
		{"Empty username", "", "pw1", models.RoleClient},
		{"Empty password", "alice", "", models.RoleClient},
		{"Client credentials under staff role", "alice", "pw1", models.RoleManager},
		{"Staff credentials under client role", "bob", "pw2", models.RoleClient},
		{"Staff credentials under wrong staff role", "bob", "pw2", models.RoleAccountant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := Authenticate(db, tt.username, tt.password, tt.role)
			assert.Nil(t, identity)
			assert.True(t, errors.Is(err, ErrInvalidCredentials))
		})
	}
}

func TestRegisterUsernameScoping(t *testing.T) {
	db := setupAuthTestDB(t)

	base := RegisterInput{
		FirstName: "Alice", LastName: "Smith", Phone: "555-0100",
		Username: "shared", Password: "pw1", ConfirmPassword: "pw1",
		Role: models.RoleClient,
	}
	assert.NoError(t, Register(db, base))

	// Same username in the same table is rejected
	dup := base
	dup.FirstName = "Alina"
	assert.True(t, errors.Is(Register(db, dup), ErrUsernameTaken))

	// The same username across tables is two independent accounts
	staff := base
	staff.FirstName = "Bob"
	staff.Role = models.RoleConsultant
	staff.Position = "Sales"
	staff.Password = "pw2"
	staff.ConfirmPassword = "pw2"
	assert.NoError(t, Register(db, staff))

	clientIdentity, err := Authenticate(db, "shared", "pw1", models.RoleClient)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleClient, clientIdentity.Role)

	staffIdentity, err := Authenticate(db, "shared", "pw2", models.RoleConsultant)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleConsultant, staffIdentity.Role)
}
