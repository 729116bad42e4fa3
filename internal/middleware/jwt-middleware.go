package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"

	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type claimsKey string

const UserClaimsKey claimsKey = "userClaims"

func writeAppError(w http.ResponseWriter, appErr *app_error.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	json.NewEncoder(w).Encode(map[string]any{
		"message": "Error occur",
		"errors": map[string]any{
			"code":    appErr.Code,
			"field":   appErr.Field,
			"message": appErr.Message,
		},
		"data": nil,
	})
}

// JWTAuth verifies the bearer token and puts the claims on the request
// context. Expired tokens get a distinct message so clients know to refresh.
func JWTAuth(publicKey *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAppError(w, app_error.NewAppError(http.StatusUnauthorized, "Missing authorization header", "authorization"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeAppError(w, app_error.NewAppError(http.StatusUnauthorized, "Invalid authorization header", "authorization"))
				return
			}

			claims, err := utils.ParseAndVerifySign(parts[1], publicKey)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					writeAppError(w, app_error.NewAppError(http.StatusUnauthorized, "Access token expired", "token"))
					return
				}
				writeAppError(w, app_error.NewAppError(http.StatusUnauthorized, "Invalid access token", "token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext is the typed accessor handlers use after JWTAuth ran.
func ClaimsFromContext(ctx context.Context) (*utils.Claims, *app_error.AppError) {
	claims, ok := ctx.Value(UserClaimsKey).(*utils.Claims)
	if !ok || claims == nil {
		return nil, app_error.NewAppError(http.StatusUnauthorized, "Missing user claims", "token")
	}
	return claims, nil
}
