package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/server/http/dto"
	"github.com/polkiloo/meatmarket/internal/server/http/middleware"
)

// AuthHandler processes registration, login, and logout.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/auth/register. Self-service registration always
// creates customer accounts; drivers and admins are provisioned separately.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.facade.Register(c.Request.Context(), req.Email, req.Name, req.Phone, req.Password, model.RoleCustomer)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	respondData(c, http.StatusOK, dto.AuthResponse{Token: token, User: userResponse(user)})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	respondData(c, http.StatusOK, dto.AuthResponse{Token: token, User: userResponse(user)})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.ExtractToken(c)
	if token == "" {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.facade.Logout(c.Request.Context(), token); err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, nil)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	respondData(c, http.StatusOK, userResponse(user))
}

// RegisterStaff handles POST /api/admin/users: provisioning driver and admin
// accounts.
func (h *AuthHandler) RegisterStaff(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	role := model.Role(req.Role)
	if role != model.RoleDriver && role != model.RoleAdmin {
		respondError(c, http.StatusBadRequest, "invalid role")
		return
	}

	user, _, err := h.facade.Register(c.Request.Context(), req.Email, req.Name, req.Phone, req.Password, role)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, userResponse(user))
}

// Drivers handles GET /api/admin/drivers.
func (h *AuthHandler) Drivers(c *gin.Context) {
	drivers, err := h.facade.ListDrivers(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	resp := make([]dto.UserResponse, 0, len(drivers))
	for i := range drivers {
		resp = append(resp, userResponse(&drivers[i]))
	}
	respondData(c, http.StatusOK, resp)
}

func userResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Phone: u.Phone,
		Role:  string(u.Role),
	}
}
