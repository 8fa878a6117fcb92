package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/domain/profile"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/app/interfaces/http/requests"
	"vowboard.io/planner-gateway/app/interfaces/http/responses"
	"vowboard.io/planner-gateway/app/utils/logger"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type SessionProvider interface {
	SignInWithPassword(ctx context.Context, email string, password string) (*supabase.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*supabase.Session, error)
}

type AuthService struct {
	profileService *profile.ProfileService
	sessions       SessionProvider
}

func NewAuthService(profileService *profile.ProfileService, sessions SessionProvider) *AuthService {
	return &AuthService{
		profileService: profileService,
		sessions:       sessions,
	}
}

type UserContextKey string

const (
	UserContextKeyEntity UserContextKey = "UserContextKeyEntity"
	UserContextKeyID     UserContextKey = "UserContextKeyID"
)

func (s *AuthService) SignIn(ctx context.Context, email string, password string) (*supabase.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	session, err := s.sessions.SignInWithPassword(ctx, email, password)
	if err != nil {
		if isRejected(err) {
			return nil, ErrInvalidCredentials
		}
		logger.GetLogger().WithError(err).Error("sign in failed")
		return nil, err
	}
	return session, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*supabase.Session, error) {
	if refreshToken == "" {
		return nil, ErrInvalidCredentials
	}
	session, err := s.sessions.RefreshSession(ctx, refreshToken)
	if err != nil {
		if isRejected(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return session, nil
}

// isRejected reports an auth endpoint refusal, e.g. invalid_grant (400).
func isRejected(err error) bool {
	var remoteErr *supabase.Error
	return errors.As(err, &remoteErr) && remoteErr.Status >= 400 && remoteErr.Status < 500
}

// JWTAuthMiddleware validates the bearer token and forwards it on the
// request context so remote reads run under the caller's row policies.
func (s *AuthService) JWTAuthMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		tokenString, ok := requests.GetTokenFromBearer(reqCtx)
		if !ok {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "55312c8d-4fa4-4ecf-a0a2-6fee16c8d7e0",
				Error: "missing bearer token",
			})
			return
		}
		claims, err := ParseJwt(tokenString)
		if err != nil || claims.Subject == "" || claims.Role != AuthenticatedRole {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "9d7a21c4-d94c-4451-841b-4d9333f86942",
				Error: "invalid token",
			})
			return
		}

		SetUserIDToContext(reqCtx, claims.Subject)
		reqCtx.Request = reqCtx.Request.WithContext(
			supabase.WithAccessToken(reqCtx.Request.Context(), tokenString),
		)
		reqCtx.Next()
	}
}

// RegisteredUserMiddleware loads the caller's profile. It must run after
// JWTAuthMiddleware.
func (s *AuthService) RegisteredUserMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		ctx := reqCtx.Request.Context()
		userID, ok := GetUserIDFromContext(reqCtx)
		if !ok || userID == "" {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "3296ce86-783b-4c05-9fdb-930d3713024e",
			})
			return
		}
		p, err := s.profileService.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, profile.ErrProfileNotFound) {
				reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
					Code:  "b1ef40e7-9db9-477d-bb59-f3783585195d",
					Error: err.Error(),
				})
				return
			}
			reqCtx.AbortWithStatusJSON(http.StatusBadGateway, responses.ErrorResponse{
				Code:  "6272df83-f538-421b-93ba-c2b6f6d39f39",
				Error: "profile unavailable",
			})
			return
		}
		SetProfileToContext(reqCtx, p)
		reqCtx.Next()
	}
}

func (s *AuthService) OrganizerOnlyMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		p, ok := GetProfileFromContext(reqCtx)
		if !ok || !p.IsOrganizer() {
			reqCtx.AbortWithStatusJSON(http.StatusForbidden, responses.ErrorResponse{
				Code:  "a8c1f1a2-54b4-4c4e-8a59-0b3f0b7f3d11",
				Error: "organizer role required",
			})
			return
		}
		reqCtx.Next()
	}
}

func GetProfileFromContext(reqCtx *gin.Context) (*profile.Profile, bool) {
	v, ok := reqCtx.Get(string(UserContextKeyEntity))
	if !ok {
		return nil, false
	}
	p, ok := v.(*profile.Profile)
	return p, ok
}

func SetProfileToContext(reqCtx *gin.Context, p *profile.Profile) {
	reqCtx.Set(string(UserContextKeyEntity), p)
}

func GetUserIDFromContext(reqCtx *gin.Context) (string, bool) {
	userId, ok := reqCtx.Get(string(UserContextKeyID))
	if !ok {
		return "", false
	}
	v, ok := userId.(string)
	if !ok {
		return "", false
	}
	return v, true
}

func SetUserIDToContext(reqCtx *gin.Context, v string) {
	reqCtx.Set(string(UserContextKeyID), v)
}
