package models

import "bikerental/internal/domain"

// Reservation books one bike for one user over an inclusive date range.
// Rating 0 means the renter has not rated it yet.
type Reservation struct {
	ID       domain.ID   `json:"id"`
	FromDate domain.Date `json:"fromDate"`
	ToDate   domain.Date `json:"toDate"`
	BikeID   domain.ID   `json:"bikeId"`
	UserID   domain.ID   `json:"userId"`
	Rating   int         `json:"rating"`
	Bike     *Bike       `json:"bike,omitempty"`
}

func (r Reservation) Range() domain.DateRange {
	return domain.DateRange{From: r.FromDate, To: r.ToDate}
}

// RentalRecord is a bike a user rented, as shown on the user's history.
type RentalRecord struct {
	BikeID   domain.ID   `json:"id"`
	Model    string      `json:"model"`
	Color    string      `json:"color"`
	FromDate domain.Date `json:"fromDate"`
	ToDate   domain.Date `json:"toDate"`
}

// RenterRecord is a user who rented a bike, as shown on the bike's history.
type RenterRecord struct {
	Username string      `json:"username"`
	FromDate domain.Date `json:"fromDate"`
	ToDate   domain.Date `json:"toDate"`
}
