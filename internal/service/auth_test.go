package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
)

func TestRegister_NewUserGetsToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := newFakeUserRepo()
	svc := service.NewAuthService(testLogger(), users, time.Hour)

	token, err := svc.Register(context.Background(), "new@example.com", "password123", "New User")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "new@example.com", claims["email"])
	assert.Equal(t, models.RoleCustomer, claims["role"])

	user, err := users.GetUserByEmail(context.Background(), "new@example.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), user.CoinBalance, "wallet starts empty")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := newFakeUserRepo()
	users.add(&models.User{ID: 1, Email: "taken@example.com"})

	svc := service.NewAuthService(testLogger(), users, time.Hour)

	_, err := svc.Register(context.Background(), "taken@example.com", "password123", "Someone")
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	users := newFakeUserRepo()
	users.add(&models.User{ID: 1, Email: "a@example.com", PassHash: hash, Role: models.RoleCustomer})

	svc := service.NewAuthService(testLogger(), users, time.Hour)

	token, err := svc.Login(context.Background(), "a@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	users := newFakeUserRepo()
	users.add(&models.User{ID: 1, Email: "a@example.com", PassHash: hash})

	svc := service.NewAuthService(testLogger(), users, time.Hour)

	_, err = svc.Login(context.Background(), "a@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := service.NewAuthService(testLogger(), newFakeUserRepo(), time.Hour)

	_, err := svc.Login(context.Background(), "ghost@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
