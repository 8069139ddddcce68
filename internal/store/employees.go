package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/PaceTNT/office-map/internal/models"
)

// EmployeePatch carries the optional fields of an employee update.
type EmployeePatch struct {
	Name       *string
	Phone      *string
	Email      *string
	PictureUrl *string
}

func (p EmployeePatch) updates() map[string]interface{} {
	u := make(map[string]interface{})
	if p.Name != nil {
		u["name"] = *p.Name
	}
	if p.Phone != nil {
		u["phone"] = *p.Phone
	}
	if p.Email != nil {
		u["email"] = *p.Email
	}
	if p.PictureUrl != nil {
		u["picture_url"] = *p.PictureUrl
	}
	return u
}

// ListEmployees returns all employees sorted by name, with their
// locations and each location's map.
func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	employees := make([]models.Employee, 0)
	err := s.db.WithContext(ctx).
		Preload("Locations.Map").
		Order("name asc, created_at asc, id asc").
		Find(&employees).Error

	return employees, err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	e := models.Employee{}
	err := s.db.WithContext(ctx).
		Preload("Locations.Map").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "employee")
	}

	return &e, nil
}

// EmployeeExists checks the reference without loading relations.
func (s *Store) EmployeeExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", id).
		Count(&count).Error

	return count > 0, err
}

// EmailTaken reports whether another employee already uses the email.
// excludeId skips the employee being updated.
func (s *Store) EmailTaken(ctx context.Context, email string, excludeId string) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("email = ?", email)
	if excludeId != "" {
		q = q.Where("id <> ?", excludeId)
	}

	err := q.Count(&count).Error
	return count > 0, err
}

func (s *Store) CreateEmployee(ctx context.Context, e *models.Employee) error {
	return s.db.WithContext(ctx).Create(e).Error
}

// UpdateEmployee applies a partial update and returns the updated row.
func (s *Store) UpdateEmployee(ctx context.Context, id string, patch EmployeePatch) (*models.Employee, error) {
	e := models.Employee{}
	if err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "employee")
	}

	if u := patch.updates(); len(u) > 0 {
		if err := s.db.WithContext(ctx).Model(&e).Updates(u).Error; err != nil {
			return nil, err
		}
	}

	return &e, nil
}

// DeleteEmployee removes an employee and cascades to its locations.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&models.Location{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Employee{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFoundError{Resource: "employee"}
		}

		return nil
	})
}
