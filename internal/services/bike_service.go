package services

import (
	"context"
	"fmt"
	"strings"

	"bikerental/internal/domain"
	"bikerental/internal/domain/models"
	"bikerental/internal/repositories"
	"bikerental/internal/utils"
)

// BikeService is the bike registry: administrative CRUD over bikes. The rating
// field is owned by RatingService and cannot be set from here.
type BikeService struct {
	Bikes     BikeStore
	RequestID string
}

func (s BikeService) bikes() BikeStore {
	if s.Bikes != nil {
		return s.Bikes
	}
	return repositories.BikeRepository{}
}

type BikeInput struct {
	Model    string `json:"model"`
	Color    string `json:"color"`
	Location string `json:"location"`
}

func (s BikeService) List(ctx context.Context) ([]models.Bike, error) {
	list, err := s.bikes().List(ctx)
	return list, asDomainErr("failed to load bikes", err)
}

func (s BikeService) Get(ctx context.Context, id domain.ID) (models.Bike, error) {
	if id <= 0 {
		return models.Bike{}, domain.NotFoundError{Resource: "bike"}
	}
	b, err := s.bikes().GetByID(ctx, id)
	return b, asDomainErr("failed to load bike", err)
}

// Create registers a new bike, unrated and switched on.
func (s BikeService) Create(ctx context.Context, in BikeInput) (models.Bike, error) {
	b := models.Bike{
		Model:     utils.NormalizeSpace(in.Model),
		Color:     utils.NormalizeSpace(in.Color),
		Location:  utils.NormalizeSpace(in.Location),
		Rating:    0,
		Available: true,
	}
	if b.Model == "" || b.Color == "" || b.Location == "" {
		return models.Bike{}, domain.ValidationError{Msg: "model, color and location are required"}
	}
	created, err := s.bikes().Create(ctx, b)
	if err != nil {
		utils.LogEvent(s.RequestID, "bike", "create_error", err.Error())
		return models.Bike{}, asDomainErr("failed to create bike", err)
	}
	utils.LogEvent(s.RequestID, "bike", "create_done", fmt.Sprintf("id=%d", created.ID))
	return created, nil
}

// Update applies an administrative edit and returns the stored bike.
func (s BikeService) Update(ctx context.Context, id domain.ID, u models.BikeUpdate) (models.Bike, error) {
	if id <= 0 {
		return models.Bike{}, domain.NotFoundError{Resource: "bike"}
	}
	for _, f := range []*string{u.Model, u.Color, u.Location} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return models.Bike{}, domain.ValidationError{Msg: "model, color and location cannot be blank"}
		}
	}
	if !u.Empty() {
		if err := s.bikes().Update(ctx, id, u); err != nil {
			utils.LogEvent(s.RequestID, "bike", "update_error", err.Error())
			return models.Bike{}, asDomainErr("failed to update bike", err)
		}
		utils.LogEvent(s.RequestID, "bike", "update_done", fmt.Sprintf("id=%d", id))
	}
	return s.Get(ctx, id)
}

// Delete removes the bike and, by cascade, its reservations.
func (s BikeService) Delete(ctx context.Context, id domain.ID) error {
	if id <= 0 {
		return domain.NotFoundError{Resource: "bike"}
	}
	if err := s.bikes().Delete(ctx, id); err != nil {
		utils.LogEvent(s.RequestID, "bike", "delete_error", err.Error())
		return asDomainErr("failed to delete bike", err)
	}
	utils.LogEvent(s.RequestID, "bike", "delete_done", fmt.Sprintf("id=%d", id))
	return nil
}
