package middleware

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
)

// ValidateToken checks the token's RS256 signature plus the exp and iss
// claims. Any deviation returns a descriptive error; an expired token
// returns jwt.ErrTokenExpired.
func ValidateToken(tokenString string, publicKey *rsa.PublicKey, issuer string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, jwt.ErrTokenExpired
		}
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	// ─── Standard claim checks ────────────────────────────────────────────
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("missing expiration claim")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, jwt.ErrTokenExpired
	}

	iss, ok := claims["iss"].(string)
	if !ok {
		return nil, errors.New("missing issuer claim")
	}
	if iss != issuer {
		return nil, errors.New("invalid token issuer")
	}
	return claims, nil
}

/*
CallerFromClaims maps the access-token claims onto a Caller.

	sub          user id (required, numeric string or number)
	tenant_id    required
	org_id       optional; absent or 0 means platform scope
	role         optional
	hospital_id  optional UUID
*/
func CallerFromClaims(claims jwt.MapClaims) (models.Caller, error) {
	var c models.Caller

	userID, err := int64Claim(claims, "sub")
	if err != nil {
		return c, err
	}
	tenantID, err := int64Claim(claims, "tenant_id")
	if err != nil {
		return c, err
	}
	c.UserID, c.TenantID = userID, tenantID

	if _, present := claims["org_id"]; present {
		if c.OrgID, err = int64Claim(claims, "org_id"); err != nil {
			return c, err
		}
	}
	c.Role, _ = claims["role"].(string)

	if raw, ok := claims["hospital_id"].(string); ok && raw != "" {
		if c.HospitalID, err = uuid.Parse(raw); err != nil {
			return c, fmt.Errorf("invalid hospital_id claim: %w", err)
		}
	}
	return c, nil
}

func int64Claim(claims jwt.MapClaims, name string) (int64, error) {
	switch v := claims[name].(type) {
	case float64:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s claim", name)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("missing %s claim", name)
	default:
		return 0, fmt.Errorf("invalid %s claim", name)
	}
}
