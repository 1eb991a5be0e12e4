package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mjdelrosario/bpo-portal/internal"
	"github.com/mjdelrosario/bpo-portal/internal/rbac"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// User is the authenticated principal carried through request context,
// with its effective permissions already resolved.
type User struct {
	ID          int64              `json:"id"`
	EmployeeNo  string             `json:"employee_no"`
	Email       string             `json:"email"`
	FullName    string             `json:"full_name"`
	RoleID      *int64             `json:"role_id,omitempty"`
	IsActive    bool               `json:"is_active"`
	Permissions rbac.PermissionMap `json:"permissions,omitempty"`
}

// Can reports whether the user may perform action on the named module.
func (u *User) Can(moduleName, action string) bool {
	if u == nil {
		return false
	}
	return u.Permissions.Can(moduleName, action)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = internal.ErrInvalidCredentials
	ErrInvalidToken       = internal.ErrInvalidToken
	ErrTokenExpired       = internal.ErrTokenExpired
	ErrUserInactive       = internal.ErrUserInactive
)
