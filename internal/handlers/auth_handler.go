package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/careflow-api/internal/auth"
	"github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/dto"
	"github.com/BruksfildServices01/careflow-api/internal/httperr"
	"github.com/BruksfildServices01/careflow-api/internal/httpresp"
	"github.com/BruksfildServices01/careflow-api/internal/middleware"
	usecase "github.com/BruksfildServices01/careflow-api/internal/usecase/user"
)

type Revoker interface {
	Revoke(ctx context.Context, claims *auth.Claims) error
}

type AuthHandler struct {
	signup  *usecase.Signup
	login   *usecase.Login
	revoker Revoker
}

func NewAuthHandler(
	signup *usecase.Signup,
	login *usecase.Login,
	revoker Revoker,
) *AuthHandler {
	return &AuthHandler{
		signup:  signup,
		login:   login,
		revoker: revoker,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.signup.Execute(c.Request.Context(), usecase.SignupInput{
		Email:    strings.TrimSpace(req.Email),
		Name:     strings.TrimSpace(req.Name),
		Password: req.Password,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, tokenResponse(s))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.login.Execute(c.Request.Context(), usecase.LoginInput{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, tokenResponse(s))
}

// Logout revokes the token when a denylist is configured; otherwise the
// client simply discards it.
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := middleware.TokenClaims(c); claims != nil && h.revoker != nil {
		if err := h.revoker.Revoke(c.Request.Context(), claims); err != nil {
			log.Warn().Err(err).Str("request_id", c.GetString(middleware.ContextRequestID)).Msg("token revoke failed")
		}
	}

	httpresp.Success(c, "Successfully logged out")
}

func (h *AuthHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		httperr.Unauthorized(c, "invalid_token", "Could not validate credentials.")
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

func tokenResponse(s *usecase.Session) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken: s.Token,
		TokenType:   "bearer",
		User:        s.User.Public(),
	}
}
