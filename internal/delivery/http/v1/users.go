package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskvault/taskvault/internal/services"
)

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
	FullName string `json:"full_name" binding:"required,max=255"`
}

func (h *handlerImpl) HandleSignUp(c *gin.Context) {
	var req signUpRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind sign up request")
		abortValidation(c, err)
		return
	}

	uid, err := h.users.SignUp(c, services.SignUpParams{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to sign up")
		switch {
		case errors.Is(err, services.ErrEmailAlreadyExists):
			abort(c, newBadRequestError(services.ErrEmailAlreadyExists.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("user account created for %s", uid),
	})
}

type logInRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

func (h *handlerImpl) HandleLogIn(c *gin.Context) {
	var req logInRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind log in request")
		abortValidation(c, err)
		return
	}

	token, err := h.users.LogIn(c, req.Email, req.Password)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to log in")
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			abort(c, newBadRequestError(services.ErrInvalidCredentials.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type profileResponse struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *handlerImpl) HandleGetProfile(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		h.logger.Error().Msg("no uid found in context")
		abort(c, newUnauthorizedError(unauthorizedMessage))
		return
	}

	profile, err := h.users.Profile(c, uid)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("uid", uid).
			Msg("failed to fetch profile")
		abort(c, newUnauthorizedError(unauthorizedMessage))
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		UID:         profile.UID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		CreatedAt:   profile.CreatedAt,
	})
}

type updateProfileRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
}

func (h *handlerImpl) HandleUpdateProfile(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		h.logger.Error().Msg("no uid found in context")
		abort(c, newUnauthorizedError(unauthorizedMessage))
		return
	}

	var req updateProfileRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind update profile request")
		abortValidation(c, err)
		return
	}

	err = h.users.UpdateProfile(c, uid, req.FullName)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("uid", uid).
			Msg("failed to update profile")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated successfully"})
}
