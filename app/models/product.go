package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name          string          `gorm:"size:200;not null"`
	Slug          string          `gorm:"size:200;not null;uniqueIndex"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Image         string          `gorm:"size:255"`
	CategoryID    string          `gorm:"size:36;not null;index"`
	Category      Category        `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	GalleryImages []ImageGallery  `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Advantages    []Advantage     `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Product) String() string {
	return p.Name
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	s, err := EnsureSlug(p.Slug, p.Name)
	if err != nil {
		return err
	}
	p.Slug = s
	return nil
}

type ImageGallery struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string `gorm:"size:36;not null;index"`
	Image     string `gorm:"size:255"`
	CreatedAt time.Time
}

func (ImageGallery) TableName() string {
	return "image_galleries"
}

func (g *ImageGallery) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

type Advantage struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID   string `gorm:"size:36;not null;index"`
	Description string `gorm:"size:255;not null"`
	CreatedAt   time.Time
}

func (a Advantage) String() string {
	return a.Description
}

func (a *Advantage) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
