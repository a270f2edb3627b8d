package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
	"github.com/fideleatome/loyalty/internal/server/http/dto"
	"github.com/fideleatome/loyalty/internal/server/http/middleware"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// RegisterCustomer handles POST /api/auth/register/customer.
func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req dto.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.RegisterCustomer(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		registerError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{Token: token})
}

// RegisterBusiness handles POST /api/auth/register/business.
func (h *AuthHandler) RegisterBusiness(c *gin.Context) {
	var req dto.RegisterBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.RegisterBusiness(c.Request.Context(), req.Email, req.Password, req.BusinessName, req.ContactName, req.Phone)
	if err != nil {
		registerError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{Token: token})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{Token: token})
}

func registerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.Status(http.StatusConflict)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
