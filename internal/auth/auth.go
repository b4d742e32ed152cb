package auth

import (
	"context"
	"time"

	"github.com/frahmantamala/portal-management/internal/approval"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ctxKey string

// ContextUserKey is where AuthMiddleware stores the authenticated user.
const ContextUserKey ctxKey = "authUser"

// User is the authenticated principal loaded into the request context.
type User struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	Role         approval.Role `json:"role"`
	DepartmentID *int64        `json:"department_id,omitempty"`
}

// Caller projects the user into the shape the authorization rules consume.
func (u *User) Caller() approval.Caller {
	return approval.Caller{
		ID:           u.ID,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == approval.RoleAdmin
}

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(ContextUserKey).(*User)
	return user, ok
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID, email string) (string, error)
	GenerateRefreshToken(userID, email string) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
