package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskpro-api/internal/dto"
	"taskpro-api/internal/response"
	"taskpro-api/internal/service"
)

type AuthHandler struct {
	directoryService service.DirectoryService
}

func NewAuthHandler(directoryService service.DirectoryService) *AuthHandler {
	return &AuthHandler{directoryService: directoryService}
}

// Register creates an account and opens a session.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	session, err := h.directoryService.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, session)
}

// Login checks local credentials and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	session, err := h.directoryService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, session)
}

// Logout forgets the remembered session user.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.directoryService.Logout(c.Request.Context()); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"loggedOut": true})
}
