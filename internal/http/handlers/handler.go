package handlers

import (
	"bikerental/internal/db"
	"bikerental/internal/http/middleware"
	"bikerental/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler holds the collaborators the HTTP layer builds services from. Nil stores
// fall back to the MySQL repositories on the shared connection.
type Handler struct {
	DB           db.Querier
	Bikes        services.BikeStore
	Reservations services.ReservationStore
	Users        services.UserStore
	Ledger       services.Ledger
	Tokens       services.TokenService
}

func (h Handler) bikeService(c *gin.Context) services.BikeService {
	return services.BikeService{Bikes: h.Bikes, RequestID: middleware.GetRequestID(c)}
}

func (h Handler) availabilityService() services.AvailabilityService {
	return services.AvailabilityService{Bikes: h.Bikes}
}

func (h Handler) reservationService(c *gin.Context) services.ReservationService {
	return services.ReservationService{Ledger: h.Ledger, Reservations: h.Reservations, RequestID: middleware.GetRequestID(c)}
}

func (h Handler) ratingService(c *gin.Context) services.RatingService {
	return services.RatingService{Ledger: h.Ledger, Reservations: h.Reservations, RequestID: middleware.GetRequestID(c)}
}

func (h Handler) userService(c *gin.Context) services.UserService {
	return services.UserService{Users: h.Users, Tokens: h.Tokens, RequestID: middleware.GetRequestID(c)}
}

func (h Handler) docsService(c *gin.Context) services.DocsService {
	return services.DocsService{Reservations: h.Reservations, Bikes: h.Bikes, Users: h.Users, RequestID: middleware.GetRequestID(c)}
}

// Authenticator adapts the user service for middleware.Auth.
func (h Handler) Authenticator() middleware.Authenticator {
	return services.UserService{Users: h.Users, Tokens: h.Tokens}
}
