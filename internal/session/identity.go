package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sakif/learnhub/internal/model"
)

// identityFromEmail is the canonical identity-derivation rule: the backend
// supplies only {email, role}, so ID is the lowercased email (stable and
// unique per email) and Name is the local part of the address.
func identityFromEmail(email string, role model.Role, now time.Time) *model.User {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return &model.User{
		ID:        strings.ToLower(email),
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: now,
	}
}

// identityClaims is the claim set a JWT-issuing backend puts in its tokens.
type identityClaims struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// identityFromToken rebuilds the identity from a JWT's claims. The parse is
// deliberately unverified — the client has no signing secret, and the token
// was handed to us by the backend over the authenticated channel. Returns nil
// for opaque (non-JWT) tokens or tokens without an email claim; ID still
// follows the email-derivation rule, never a separate backend field.
func identityFromToken(token string, now time.Time) *model.User {
	var claims identityClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.Email == "" {
		return nil
	}
	role := claims.Role
	if role == "" {
		role = model.RoleUser
	}
	return identityFromEmail(claims.Email, role, now)
}
