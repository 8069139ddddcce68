package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/PaceTNT/office-map/internal/models"
)

// MapPatch carries the optional fields of a map update. Nil means the
// field keeps its current value.
type MapPatch struct {
	Name     *string
	State    *string
	City     *string
	Building *string
	Floor    *string
	ImageUrl *string
}

func (p MapPatch) updates() map[string]interface{} {
	u := make(map[string]interface{})
	if p.Name != nil {
		u["name"] = *p.Name
	}
	if p.State != nil {
		u["state"] = *p.State
	}
	if p.City != nil {
		u["city"] = *p.City
	}
	if p.Building != nil {
		u["building"] = *p.Building
	}
	if p.Floor != nil {
		u["floor"] = *p.Floor
	}
	if p.ImageUrl != nil {
		u["image_url"] = *p.ImageUrl
	}
	return u
}

// ListMaps returns all maps sorted by locale.
func (s *Store) ListMaps(ctx context.Context) ([]models.Map, error) {
	maps := make([]models.Map, 0)
	err := s.db.WithContext(ctx).
		Order("state asc, city asc, building asc").
		Find(&maps).Error

	return maps, err
}

// GetMap returns one map with its locations and their employees.
func (s *Store) GetMap(ctx context.Context, id string) (*models.Map, error) {
	m := models.Map{}
	err := s.db.WithContext(ctx).
		Preload("Locations.Employee").
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "map")
	}

	return &m, nil
}

// MapExists checks the reference without loading relations.
func (s *Store) MapExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Map{}).
		Where("id = ?", id).
		Count(&count).Error

	return count > 0, err
}

func (s *Store) CreateMap(ctx context.Context, m *models.Map) error {
	return s.db.WithContext(ctx).Create(m).Error
}

// UpdateMap applies a partial update and returns the updated row.
func (s *Store) UpdateMap(ctx context.Context, id string, patch MapPatch) (*models.Map, error) {
	m := models.Map{}
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "map")
	}

	if u := patch.updates(); len(u) > 0 {
		if err := s.db.WithContext(ctx).Model(&m).Updates(u).Error; err != nil {
			return nil, err
		}
	}

	return &m, nil
}

// DeleteMap removes a map and cascades to its dependent locations.
func (s *Store) DeleteMap(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("map_id = ?", id).Delete(&models.Location{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Map{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFoundError{Resource: "map"}
		}

		return nil
	})
}
