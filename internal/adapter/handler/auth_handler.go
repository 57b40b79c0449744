package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/famly-backend/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/famly-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/famly-backend/internal/domain"
	"github.com/marcos-nsantos/famly-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/famly-backend/internal/usecase/auth"
)

type AuthHandler struct {
	authSvc  AuthService
	recorder OutcomeRecorder
}

func NewAuthHandler(authSvc AuthService, recorder OutcomeRecorder) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, recorder: recorder}
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Create a user account from an email and a non-blank password
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.RegisterRequest	true	"Registration data"
//	@Success		200		{object}	response.AuthResponse	"registered"
//	@Failure		400		{object}	response.AuthResponse	"invalid_input or email_exists"
//	@Failure		500		{object}	httputil.ErrorResponse
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, http.StatusBadRequest, response.Outcome(domain.OutcomeInvalidInput))
		return
	}

	_, err := h.authSvc.Register(c.Request.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.respond(c, http.StatusBadRequest, response.Outcome(domain.OutcomeInvalidInput))
		case errors.Is(err, domain.ErrUserAlreadyExists):
			h.respond(c, http.StatusBadRequest, response.Outcome(domain.OutcomeEmailExists))
		default:
			httputil.InternalError(c, err)
		}
		return
	}

	h.respond(c, http.StatusOK, response.Outcome(domain.OutcomeRegistered))
}

// Login godoc
//
//	@Summary		Login user
//	@Description	Verify credentials. Unknown email and wrong password give the same response.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.LoginRequest	true	"Login credentials"
//	@Success		200		{object}	response.AuthResponse	"login_ok"
//	@Failure		400		{object}	response.AuthResponse	"invalid_input for an unreadable body"
//	@Failure		401		{object}	response.AuthResponse	"invalid_credentials"
//	@Failure		500		{object}	httputil.ErrorResponse
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, http.StatusBadRequest, response.Outcome(domain.OutcomeInvalidInput))
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.respond(c, http.StatusUnauthorized, response.Outcome(domain.OutcomeInvalidCredentials))
			return
		}
		httputil.InternalError(c, err)
		return
	}

	resp := response.Outcome(domain.OutcomeLoginOK)
	if result.AccessToken != "" {
		resp.AccessToken = result.AccessToken
		resp.ExpiresAt = &result.ExpiresAt
	}
	h.respond(c, http.StatusOK, resp)
}

// Me godoc
//
//	@Summary		Current user
//	@Description	Profile of the user the bearer token was issued to
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.UserResponse
//	@Failure		401	{object}	httputil.ErrorResponse
//	@Router			/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authSvc.Me(c.Request.Context(), httputil.GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "user not found")
			return
		}
		httputil.InternalError(c, err)
		return
	}

	httputil.OK(c, response.UserFromEntity(user))
}

func (h *AuthHandler) respond(c *gin.Context, status int, resp response.AuthResponse) {
	if h.recorder != nil {
		h.recorder.RecordOutcome(resp.Message.String())
	}
	httputil.JSON(c, status, resp)
}
