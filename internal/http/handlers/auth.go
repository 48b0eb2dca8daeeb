package handlers

import (
	"net/http"

	"bikerental/internal/services"

	"github.com/gin-gonic/gin"
)

// Register creates a User account and returns {token, id, role}.
func (h Handler) Register(c *gin.Context) {
	var in services.Credentials
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.userService(c).Register(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handler) Login(c *gin.Context) {
	var in services.Credentials
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.userService(c).Login(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
