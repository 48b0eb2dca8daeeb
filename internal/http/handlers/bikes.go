package handlers

import (
	"net/http"

	"bikerental/internal/domain"
	"bikerental/internal/domain/models"
	"bikerental/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) GetBikes(c *gin.Context) {
	list, err := h.bikeService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handler) GetBike(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := h.bikeService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h Handler) CreateBike(c *gin.Context) {
	var in services.BikeInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := h.bikeService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBike edits model, color, location and available. A rating in the body is ignored.
func (h Handler) UpdateBike(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.BikeUpdate
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := h.bikeService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h Handler) DeleteBike(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.bikeService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bike deleted", "id": id})
}

// GetBikeUsers lists who rented a bike and when.
func (h Handler) GetBikeUsers(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, err := h.reservationService(c).RentersByBike(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetAvailableBikes handles ?fromDate=YYYY-MM-DD&toDate=YYYY-MM-DD.
func (h Handler) GetAvailableBikes(c *gin.Context) {
	from, err := domain.ParseDate(c.Query("fromDate"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	to, err := domain.ParseDate(c.Query("toDate"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	list, err := h.availabilityService().FindAvailable(c.Request.Context(), from, to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
