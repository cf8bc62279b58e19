package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Organization roles as issued by the identity provider.
const (
	RoleAdmin  = "org:admin"
	RoleMember = "org:member"
)

// Principal is the authenticated caller passed explicitly into every action.
// UserID is the identity provider's user id, not the local user id.
type Principal struct {
	UserID         string
	OrganizationID string
	Role           string
}

func (p Principal) IsOrgAdmin() bool {
	return p.Role == RoleAdmin
}

// Claims carries the active organization next to the registered claims.
type Claims struct {
	OrgID   string `json:"org_id,omitempty"`
	OrgRole string `json:"org_role,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(secret, issuer string, p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		OrgID:   p.OrganizationID,
		OrgRole: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates tokenStr and returns its principal. A non-empty issuer
// must match the token's iss claim.
func ParseToken(secret, issuer, tokenStr string) (Principal, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return Principal{}, errors.New("invalid token")
	}

	if claims.Subject == "" {
		return Principal{}, errors.New("invalid claims")
	}

	return Principal{
		UserID:         claims.Subject,
		OrganizationID: claims.OrgID,
		Role:           claims.OrgRole,
	}, nil
}
