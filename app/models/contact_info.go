package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ContactInfoID is the only primary key a contact row may have.
const ContactInfoID uint = 1

type ContactInfo struct {
	ID             uint   `gorm:"primaryKey;autoIncrement:false;check:chk_contact_info_singleton,id = 1"`
	PhoneNumber    string `gorm:"size:20"`
	WhatsAppNumber string `gorm:"column:whatsapp_number;size:20"`
	Email          string `gorm:"size:254"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ContactInfo) TableName() string {
	return "contact_info"
}

func (c ContactInfo) String() string {
	return c.PhoneNumber
}

func (c *ContactInfo) BeforeSave(tx *gorm.DB) error {
	c.ID = ContactInfoID
	c.WhatsAppNumber = NormalizeWhatsApp(c.WhatsAppNumber)
	return nil
}

// NormalizeWhatsApp keeps only digits and '+'.
func NormalizeWhatsApp(number string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '+' {
			return r
		}
		return -1
	}, number)
}

// WhatsAppLink is the click-to-chat URL for the stored number.
func (c ContactInfo) WhatsAppLink() string {
	if c.WhatsAppNumber == "" {
		return ""
	}
	return "https://wa.me/" + strings.TrimPrefix(c.WhatsAppNumber, "+")
}
