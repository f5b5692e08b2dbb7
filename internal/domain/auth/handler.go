package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type registerRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	OTPCode string `json:"otp_code"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger.With().Str("component", "auth-handler").Logger()}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/verify-otp", h.VerifyOTP)
	g.POST("/verify-account", h.VerifyAccount)
	g.POST("/refresh", h.Refresh)
	g.POST("/resend-otp", h.ResendOTP)
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	if req.Role != "" && !ValidRoles[req.Role] {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role: "+req.Role)
	}

	u, err := h.svc.Register(c.Request().Context(), RegisterInput{
		Email:    req.Email,
		Phone:    req.Phone,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	switch {
	case errors.Is(err, ErrEmailTaken):
		return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
	case errors.Is(err, ErrPhoneTaken):
		return echo.NewHTTPError(http.StatusBadRequest, "Phone number already registered")
	case errors.Is(err, ErrUsernameTaken):
		return echo.NewHTTPError(http.StatusBadRequest, "Username already taken")
	case errors.Is(err, ErrIdentityRequired):
		return echo.NewHTTPError(http.StatusBadRequest, "Either email or phone must be provided")
	case errors.Is(err, ErrNotificationFailed):
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send OTP")
	case err != nil:
		return h.internal(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully. Please verify your account with OTP.",
		"user_id": u.ID,
	})
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, method, err := h.svc.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, ErrIdentityRequired):
		return echo.NewHTTPError(http.StatusBadRequest, "Either email or phone must be provided")
	case errors.Is(err, ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrNotificationFailed):
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send OTP")
	case err != nil:
		return h.internal(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "OTP sent successfully",
		"method":  method,
		"user_id": u.ID,
	})
}

func (h *Handler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.OTPCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "otp_code is required")
	}

	pair, err := h.svc.VerifyOTP(c.Request().Context(), req.Email, req.Phone, req.OTPCode)
	switch {
	case errors.Is(err, ErrIdentityRequired):
		return echo.NewHTTPError(http.StatusBadRequest, "Either email or phone must be provided")
	case errors.Is(err, ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, ErrInvalidOTP):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired OTP")
	case err != nil:
		return h.internal(c, err)
	}

	return c.JSON(http.StatusOK, pair)
}

func (h *Handler) VerifyAccount(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.OTPCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "otp_code is required")
	}

	err := h.svc.VerifyAccount(c.Request().Context(), req.Email, req.Phone, req.OTPCode)
	switch {
	case errors.Is(err, ErrIdentityRequired):
		return echo.NewHTTPError(http.StatusBadRequest, "Either email or phone must be provided")
	case errors.Is(err, ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, ErrInvalidOTP):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired OTP")
	case err != nil:
		return h.internal(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Account verified successfully"})
}

func (h *Handler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	access, err := h.svc.Refresh(c.Request().Context(), req.RefreshToken)
	switch {
	case errors.Is(err, ErrInvalidRefreshToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	case errors.Is(err, ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case err != nil:
		return h.internal(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"access_token": access,
		"token_type":   "bearer",
	})
}

func (h *Handler) ResendOTP(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	method, err := h.svc.ResendOTP(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, ErrIdentityRequired):
		return echo.NewHTTPError(http.StatusBadRequest, "Either email or phone must be provided")
	case errors.Is(err, ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrNotificationFailed):
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send OTP")
	case err != nil:
		return h.internal(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "OTP resent successfully",
		"method":  method,
	})
}

func (h *Handler) internal(c echo.Context, err error) error {
	h.logger.Error().Err(err).Str("path", c.Path()).Msg("auth operation failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
