package handlers

import (
	"net/http"

	"bikerental/internal/domain/models"
	"bikerental/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) GetUsers(c *gin.Context) {
	list, err := h.userService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handler) CreateUser(c *gin.Context) {
	var in services.Credentials
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := h.userService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h Handler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.UserUpdate
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := h.userService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h Handler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.userService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted", "id": id})
}

// GetUserBikes lists what a user has rented.
func (h Handler) GetUserBikes(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, err := h.reservationService(c).RentalsByUser(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
