package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/domain/auth"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/app/interfaces/http/helpers"
)

const RefreshTokenKey = "vowboard_refresh_token"

type AuthRoute struct {
	authService *auth.AuthService
}

func NewAuthRoute(authService *auth.AuthService) *AuthRoute {
	return &AuthRoute{authService}
}

func (authRoute *AuthRoute) RegisterRouter(router gin.IRouter) {
	authRouter := router.Group("/auth")
	authRouter.POST("/token", authRoute.SignIn)
	authRouter.POST("/refresh-token", authRoute.RefreshToken)
	authRouter.GET("/me",
		authRoute.authService.JWTAuthMiddleware(),
		authRoute.authService.RegisteredUserMiddleware(),
		authRoute.GetMe,
	)
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AccessTokenResponse struct {
	Object      string `json:"object"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      string `json:"user_id"`
}

type GetMeResponse struct {
	Object   string  `json:"object"`
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role"`
	ClientID *string `json:"client_id"`
}

// @Summary Sign in with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} AccessTokenResponse "Session issued; the refresh token is also set as a cookie"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Router /v1/auth/token [post]
func (authRoute *AuthRoute) SignIn(reqCtx *gin.Context) {
	var request SignInRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "1b0a7c52-9a54-4f3c-9e0e-4c1f0d3b6a21", err)
		return
	}
	session, err := authRoute.authService.SignIn(reqCtx.Request.Context(), request.Email, request.Password)
	if err != nil {
		helpers.AbortWithError(reqCtx, "d5e4b0b8-27b4-4d55-a9b6-7f7e9b1d2c40", err)
		return
	}
	authRoute.respondWithSession(reqCtx, session)
}

// RefreshToken accepts the refresh token from the body or, failing that,
// from the cookie set at sign in.
// @Summary Refresh an access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest false "Refresh token, optional when the cookie is present"
// @Success 200 {object} AccessTokenResponse "Session refreshed"
// @Failure 401 {object} responses.ErrorResponse "Expired or missing refresh token"
// @Router /v1/auth/refresh-token [post]
func (authRoute *AuthRoute) RefreshToken(reqCtx *gin.Context) {
	var request RefreshTokenRequest
	_ = reqCtx.ShouldBindJSON(&request)
	if request.RefreshToken == "" {
		if cookie, err := reqCtx.Cookie(RefreshTokenKey); err == nil {
			request.RefreshToken = cookie
		}
	}
	session, err := authRoute.authService.Refresh(reqCtx.Request.Context(), request.RefreshToken)
	if err != nil {
		helpers.AbortWithError(reqCtx, "7c7b8a48-311c-4beb-a2a1-1c13a87610bb", err)
		return
	}
	authRoute.respondWithSession(reqCtx, session)
}

// @Summary Get the caller's profile
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} GetMeResponse "Profile of the authenticated user"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/auth/me [get]
func (authRoute *AuthRoute) GetMe(reqCtx *gin.Context) {
	p, _ := auth.GetProfileFromContext(reqCtx)
	reqCtx.JSON(http.StatusOK, GetMeResponse{
		Object:   "me",
		ID:       p.ID,
		Email:    p.Email,
		FullName: p.FullName,
		Role:     string(p.Role),
		ClientID: p.ClientID,
	})
}

func (authRoute *AuthRoute) respondWithSession(reqCtx *gin.Context, session *supabase.Session) {
	http.SetCookie(reqCtx.Writer, &http.Cookie{
		Name:     RefreshTokenKey,
		Value:    session.RefreshToken,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	})
	reqCtx.JSON(http.StatusOK, AccessTokenResponse{
		Object:      "access.token",
		AccessToken: session.AccessToken,
		ExpiresIn:   session.ExpiresIn,
		UserID:      session.User.ID,
	})
}
