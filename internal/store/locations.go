package store

import (
	"context"

	"github.com/PaceTNT/office-map/internal/models"
)

// LocationPatch carries the optional coordinates of a location update.
type LocationPatch struct {
	X *float64
	Y *float64
}

func (p LocationPatch) updates() map[string]interface{} {
	u := make(map[string]interface{})
	if p.X != nil {
		u["x"] = *p.X
	}
	if p.Y != nil {
		u["y"] = *p.Y
	}
	return u
}

// ListLocations returns all locations with their map and employee.
func (s *Store) ListLocations(ctx context.Context) ([]models.Location, error) {
	locations := make([]models.Location, 0)
	err := s.db.WithContext(ctx).
		Preload("Map").
		Preload("Employee").
		Find(&locations).Error

	return locations, err
}

func (s *Store) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	l := models.Location{}
	err := s.db.WithContext(ctx).
		Preload("Map").
		Preload("Employee").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "location")
	}

	return &l, nil
}

// LocationExists checks the reference without loading relations.
func (s *Store) LocationExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("id = ?", id).
		Count(&count).Error

	return count > 0, err
}

// CreateLocation inserts the pin and returns it with nested relations.
func (s *Store) CreateLocation(ctx context.Context, l *models.Location) (*models.Location, error) {
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}

	return s.GetLocation(ctx, l.Id)
}

// UpdateLocation applies a partial coordinate update and returns the
// updated row with nested relations.
func (s *Store) UpdateLocation(ctx context.Context, id string, patch LocationPatch) (*models.Location, error) {
	l := models.Location{}
	if err := s.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "location")
	}

	if u := patch.updates(); len(u) > 0 {
		if err := s.db.WithContext(ctx).Model(&l).Updates(u).Error; err != nil {
			return nil, err
		}
	}

	return s.GetLocation(ctx, id)
}

func (s *Store) DeleteLocation(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Location{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFoundError{Resource: "location"}
	}

	return nil
}
