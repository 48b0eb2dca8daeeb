package models

import "bikerental/internal/domain"

// Bike is a rentable bike. Rating is derived from its reservations and only the
// rating aggregator writes it.
type Bike struct {
	ID        domain.ID `json:"id"`
	Model     string    `json:"model"`
	Color     string    `json:"color"`
	Location  string    `json:"location"`
	Rating    float64   `json:"rating"`
	Available bool      `json:"available"`
}

// BikeUpdate supports PATCH-style edits via key presence.
type BikeUpdate struct {
	Model     *string `json:"model"`
	Color     *string `json:"color"`
	Location  *string `json:"location"`
	Available *bool   `json:"available"`
}

func (u BikeUpdate) Empty() bool {
	return u.Model == nil && u.Color == nil && u.Location == nil && u.Available == nil
}

// Apply merges the present fields into b.
func (u BikeUpdate) Apply(b Bike) Bike {
	if u.Model != nil {
		b.Model = *u.Model
	}
	if u.Color != nil {
		b.Color = *u.Color
	}
	if u.Location != nil {
		b.Location = *u.Location
	}
	if u.Available != nil {
		b.Available = *u.Available
	}
	return b
}
