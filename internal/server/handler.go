// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staffpass/staffpass/internal/auth"
	"github.com/staffpass/staffpass/internal/observability"
	"github.com/staffpass/staffpass/pkg/errutil"
)

// issuanceMessage is returned by forgot-password whether or not the account
// exists. A single constant keeps the two response bodies byte-identical, so
// the endpoint cannot be used to enumerate employee IDs.
const issuanceMessage = "If an account with that employee ID exists, a reset token has been generated."

// AuthHandler exposes the auth flows over HTTP.
type AuthHandler struct {
	service *auth.Service
	resets  *auth.ResetService
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(service *auth.Service, resets *auth.ResetService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{service: service, resets: resets, logger: logger}
}

// registerRequest is the payload for POST /api/auth/register.
type registerRequest struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Password   string `json:"password"`
}

// loginRequest is the payload for POST /api/auth/login.
type loginRequest struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

// forgotPasswordRequest is the payload for POST /api/auth/forgot-password.
type forgotPasswordRequest struct {
	EmployeeID string `json:"employee_id"`
}

// resetPasswordRequest is the payload for POST /api/auth/reset-password.
type resetPasswordRequest struct {
	EmployeeID  string `json:"employee_id"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	profile, err := h.service.Register(c.Request.Context(), req.EmployeeID, req.Name, req.Password)
	if err != nil {
		h.countRegistration("error")
		h.fail(c, err)
		return
	}

	h.countRegistration("ok")
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully!",
		"user":    profile,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	profile, err := h.service.Authenticate(c.Request.Context(), req.EmployeeID, req.Password)
	if err != nil {
		h.countLogin("error")
		h.fail(c, err)
		return
	}

	h.countLogin("ok")
	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful!",
		"employee": profile,
	})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response is
// identical whether or not the account exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	if err := h.resets.Issue(c.Request.Context(), req.EmployeeID); err != nil {
		h.countRecovery("issue", "error")
		h.fail(c, err)
		return
	}

	h.countRecovery("issue", "ok")
	c.JSON(http.StatusOK, gin.H{"message": issuanceMessage})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	if err := h.resets.Redeem(c.Request.Context(), req.EmployeeID, req.Token, req.NewPassword); err != nil {
		h.countRecovery("redeem", "error")
		h.fail(c, err)
		return
	}

	h.countRecovery("redeem", "ok")
	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully."})
}

// fail translates a flow error into an HTTP response. Known domain codes
// carry client-safe messages; anything else is logged server-side and
// returned as an opaque 500.
func (h *AuthHandler) fail(c *gin.Context, err error) {
	status, message := httpError(err)
	if status == http.StatusInternalServerError {
		errutil.LogError(h.logger, "request failed", err)
	}
	c.JSON(status, gin.H{"message": message})
}

// httpError maps domain error codes to an HTTP status and a client-safe
// message. Storage details never reach the client.
func httpError(err error) (int, string) {
	switch errutil.Code(err) {
	case "AUTH_VALIDATION", "AUTH_EMPTY_PASSWORD":
		return http.StatusBadRequest, err.Error()
	case "AUTH_DUPLICATE_EMPLOYEE_ID":
		return http.StatusBadRequest, "Employee ID already exists."
	case "AUTH_INVALID_CREDENTIALS":
		return http.StatusUnauthorized, "Invalid credentials."
	case "RESET_TOKEN_INVALID":
		return http.StatusBadRequest, "Invalid or expired token."
	case "RESET_TOKEN_EXPIRED":
		return http.StatusBadRequest, "Token has expired."
	default:
		return http.StatusInternalServerError, "Server error."
	}
}

func (h *AuthHandler) countRegistration(status string) {
	if h.metrics != nil {
		h.metrics.RegistrationsTotal.WithLabelValues(status).Inc()
	}
}

func (h *AuthHandler) countLogin(status string) {
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(status).Inc()
	}
}

func (h *AuthHandler) countRecovery(phase, status string) {
	if h.metrics != nil {
		h.metrics.RecoveryTotal.WithLabelValues(phase, status).Inc()
	}
}
