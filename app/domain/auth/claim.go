package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"vowboard.io/planner-gateway/config/environment_variables"
)

// UserClaim is the payload of an access token issued by the BaaS auth
// endpoint. Subject carries the user id.
type UserClaim struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthenticatedRole is the claim role of a signed-in user, as opposed to the
// anonymous key.
const AuthenticatedRole = "authenticated"

func CreateJwtSignedString(u UserClaim) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, u)
	return token.SignedString([]byte(environment_variables.EnvironmentVariables.SUPABASE_JWT_SECRET))
}

func ParseJwt(tokenString string) (*UserClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaim{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(environment_variables.EnvironmentVariables.SUPABASE_JWT_SECRET), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*UserClaim)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
