package handlers

import (
	"net/http"

	"bikerental/internal/domain"

	"github.com/gin-gonic/gin"
)

type bookRequest struct {
	BikeID   domain.ID `json:"bikeId" binding:"required"`
	FromDate string    `json:"fromDate" binding:"required"`
	ToDate   string    `json:"toDate" binding:"required"`
}

type rateRequest struct {
	Rating *int `json:"rating" binding:"required"`
}

// GetReservations lists the caller's own reservations with their bikes.
func (h Handler) GetReservations(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	list, err := h.reservationService(c).ListForUser(c.Request.Context(), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handler) CreateReservation(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var in bookRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	from, err := domain.ParseDate(in.FromDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	to, err := domain.ParseDate(in.ToDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	res, err := h.reservationService(c).Book(c.Request.Context(), rc.UserID, in.BikeID, from, to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h Handler) DeleteReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.reservationService(c).Cancel(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation cancelled", "id": id})
}

// RateReservation handles PUT /rate/:id with {"rating": 0..5} and returns the bike.
func (h Handler) RateReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in rateRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	bike, err := h.ratingService(c).SubmitRating(c.Request.Context(), id, *in.Rating)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bike)
}
