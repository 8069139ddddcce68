package store

import (
	"context"
	"strings"

	"github.com/PaceTNT/office-map/internal/models"
)

// SearchFilter is the explicit value-object for employee search. Empty
// fields are ignored; no dynamic filter shapes are assembled per request.
type SearchFilter struct {
	Query    string
	State    string
	City     string
	Building string
	Floor    string
}

// NewSearchFilter trims the raw query parameters into a filter.
func NewSearchFilter(query, state, city, building, floor string) SearchFilter {
	return SearchFilter{
		Query:    strings.TrimSpace(query),
		State:    strings.TrimSpace(state),
		City:     strings.TrimSpace(city),
		Building: strings.TrimSpace(building),
		Floor:    strings.TrimSpace(floor),
	}
}

// HasLocaleFilter reports whether any map locale filter is set.
func (f SearchFilter) HasLocaleFilter() bool {
	return f.State != "" || f.City != "" || f.Building != "" || f.Floor != ""
}

func containsLower(v string) string {
	return "%" + strings.ToLower(v) + "%"
}

// SearchEmployees returns employees matching the filter, sorted by name.
//
// The free-text term matches name, email (case-insensitive) or phone
// (substring). Locale filters are ANDed and must all be satisfied by the
// map of a single one of the employee's locations; an employee with
// several locations qualifies when any one of them matches the whole
// conjunction. Results carry nested locations with their maps.
func (s *Store) SearchEmployees(ctx context.Context, f SearchFilter) ([]models.Employee, error) {
	q := s.db.WithContext(ctx).Model(&models.Employee{})

	if f.Query != "" {
		term := containsLower(f.Query)
		q = q.Where(
			"LOWER(employees.name) LIKE ? OR LOWER(employees.email) LIKE ? OR employees.phone LIKE ?",
			term, term, "%"+f.Query+"%",
		)
	}

	if f.HasLocaleFilter() {
		sub := s.db.Model(&models.Location{}).
			Select("1").
			Joins("JOIN maps ON maps.id = locations.map_id").
			Where("locations.employee_id = employees.id")

		if f.State != "" {
			sub = sub.Where("LOWER(maps.state) LIKE ?", containsLower(f.State))
		}
		if f.City != "" {
			sub = sub.Where("LOWER(maps.city) LIKE ?", containsLower(f.City))
		}
		if f.Building != "" {
			sub = sub.Where("LOWER(maps.building) LIKE ?", containsLower(f.Building))
		}
		if f.Floor != "" {
			sub = sub.Where("LOWER(maps.floor) LIKE ?", containsLower(f.Floor))
		}

		q = q.Where("EXISTS (?)", sub)
	}

	employees := make([]models.Employee, 0)
	err := q.Preload("Locations.Map").
		Order("employees.name asc, employees.created_at asc, employees.id asc").
		Find(&employees).Error

	return employees, err
}
