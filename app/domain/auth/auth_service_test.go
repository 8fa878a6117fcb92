package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vowboard.io/planner-gateway/app/domain/profile"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/config/environment_variables"
)

type stubProfiles map[string]*profile.Profile

func (s stubProfiles) FindByID(_ context.Context, id string) (*profile.Profile, error) {
	return s[id], nil
}

type stubSessions struct {
	err error
}

func (s stubSessions) SignInWithPassword(_ context.Context, email string, _ string) (*supabase.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &supabase.Session{AccessToken: "tok", User: supabase.AuthUser{Email: email}}, nil
}

func (s stubSessions) RefreshSession(context.Context, string) (*supabase.Session, error) {
	return nil, s.err
}

func signedToken(t *testing.T, subject string, role string) string {
	t.Helper()
	token, err := CreateJwtSignedString(UserClaim{
		Email: "planner@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)
	return token
}

func newTestEngine(svc *AuthService, seenToken *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/me",
		svc.JWTAuthMiddleware(),
		svc.RegisteredUserMiddleware(),
		svc.OrganizerOnlyMiddleware(),
		func(c *gin.Context) {
			*seenToken = supabase.AccessTokenFromContext(c.Request.Context())
			p, _ := GetProfileFromContext(c)
			c.JSON(http.StatusOK, p.ID)
		})
	return engine
}

func TestMiddlewareChain(t *testing.T) {
	environment_variables.EnvironmentVariables.SUPABASE_JWT_SECRET = "test-secret"
	clientID := "c1"
	profiles := stubProfiles{
		"org":    {ID: "org", Role: profile.RoleOrganizer},
		"couple": {ID: "couple", Role: profile.RoleClient, ClientID: &clientID},
	}
	svc := NewAuthService(profile.NewService(profiles), stubSessions{})
	var seen string
	engine := newTestEngine(svc, &seen)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"anon role", "Bearer " + signedToken(t, "org", "anon"), http.StatusUnauthorized},
		{"unknown profile", "Bearer " + signedToken(t, "ghost", AuthenticatedRole), http.StatusUnauthorized},
		{"client role", "Bearer " + signedToken(t, "couple", AuthenticatedRole), http.StatusForbidden},
		{"organizer", "Bearer " + signedToken(t, "org", AuthenticatedRole), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
	assert.NotEmpty(t, seen)
}

func TestSignInMapsRejectionToInvalidCredentials(t *testing.T) {
	svc := NewAuthService(profile.NewService(stubProfiles{}), stubSessions{err: &supabase.Error{Status: 400, ErrorCode: "invalid_grant"}})
	_, err := svc.SignIn(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(context.Background(), " ", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	ok := NewAuthService(profile.NewService(stubProfiles{}), stubSessions{})
	session, err := ok.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", session.AccessToken)
}
