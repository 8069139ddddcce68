package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Map represents a floor plan image with its locale metadata
type Map struct {
	Id        string     `gorm:"primaryKey;size:36" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	State     string     `gorm:"not null" json:"state"`
	City      string     `gorm:"not null" json:"city"`
	Building  string     `gorm:"not null" json:"building"`
	Floor     string     `gorm:"not null" json:"floor"`
	ImageUrl  string     `gorm:"not null" json:"imageUrl"`
	Locations []Location `gorm:"foreignKey:MapId" json:"locations,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Employee represents a directory entry with contact fields
type Employee struct {
	Id         string     `gorm:"primaryKey;size:36" json:"id"`
	Name       string     `gorm:"not null" json:"name"`
	Phone      string     `gorm:"not null" json:"phone"`
	Email      string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PictureUrl string     `json:"pictureUrl,omitempty"`
	Locations  []Location `gorm:"foreignKey:EmployeeId" json:"locations,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Location pins one employee onto one map at a fractional position.
// X and Y are in [0,1] relative to the map image bounding box.
type Location struct {
	Id         string    `gorm:"primaryKey;size:36" json:"id"`
	MapId      string    `gorm:"size:36;not null;index" json:"mapId"`
	EmployeeId string    `gorm:"size:36;not null;index" json:"employeeId"`
	X          float64   `gorm:"not null" json:"x"`
	Y          float64   `gorm:"not null" json:"y"`
	Map        *Map      `gorm:"foreignKey:MapId" json:"map,omitempty"`
	Employee   *Employee `gorm:"foreignKey:EmployeeId" json:"employee,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (m *Map) BeforeCreate(tx *gorm.DB) error {
	if m.Id == "" {
		m.Id = uuid.NewString()
	}
	return nil
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.Id == "" {
		e.Id = uuid.NewString()
	}
	return nil
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.Id == "" {
		l.Id = uuid.NewString()
	}
	return nil
}
