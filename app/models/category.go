package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var ErrEmptySlug = errors.New("slug cannot be derived from an empty name")

type Category struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string    `gorm:"size:100;not null"`
	Slug      string    `gorm:"size:100;not null;uniqueIndex"`
	Image     string    `gorm:"size:255"`
	Products  []Product `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Category) String() string {
	return c.Name
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	s, err := EnsureSlug(c.Slug, c.Name)
	if err != nil {
		return err
	}
	c.Slug = s
	return nil
}

// EnsureSlug keeps a set slug and derives one from name otherwise.
func EnsureSlug(current, name string) (string, error) {
	if current != "" {
		return current, nil
	}
	derived := slug.Make(name)
	if derived == "" {
		return "", ErrEmptySlug
	}
	return derived, nil
}
