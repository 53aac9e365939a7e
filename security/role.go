package security

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt"
)

// RoleHeader is set by the upstream authentication layer. It is trusted as-is;
// when it is absent the role claim of a Bearer token issued by that same
// layer is used instead.
const RoleHeader = "X-User-Role"

type roleKey struct{}

type roleClaims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

func parseRoleToken(accessToken string) (string, error) {
	parsed, err := jwt.ParseWithClaims(accessToken, &roleClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("TOKEN_SECRET")), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*roleClaims)
	if !ok {
		return "", jwt.NewValidationError("invalid claims", jwt.ValidationErrorClaimsInvalid)
	}
	return claims.Role, nil
}

// ExtractRole resolves the caller's role and stores it on the request context.
func ExtractRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := r.Header.Get(RoleHeader)

		if role == "" {
			authHeader := r.Header.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				parsed, err := parseRoleToken(parts[1])
				if err != nil {
					http.Error(w, "Invalid token", http.StatusUnauthorized)
					return
				}
				role = parsed
			}
		}

		ctx := context.WithValue(r.Context(), roleKey{}, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RoleFrom returns the caller role stored by ExtractRole.
func RoleFrom(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}

// RequireRole rejects callers whose role is not in the allowed set.
func RequireRole(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerRole := RoleFrom(r.Context())
		for _, role := range roles {
			if callerRole == role {
				next(w, r)
				return
			}
		}
		http.Error(w, "Access denied", http.StatusForbidden)
	}
}
