package fakers

import (
	"math"
	"math/rand"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

func CategoryFaker() *models.Category {
	name := faker.Word() + " " + faker.Word()

	return &models.Category{
		Name: name,
		Slug: slug.Make(name + "-" + uuid.NewString()[:6]),
	}
}

// ProductFaker builds an unsaved product in category with a few advantages.
func ProductFaker(category *models.Category) *models.Product {
	name := faker.Name()

	numAdvantages := rand.Intn(3) + 1
	advantages := make([]models.Advantage, numAdvantages)
	for i := range advantages {
		advantages[i] = models.Advantage{Description: faker.Sentence()}
	}

	return &models.Product{
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Price:       decimal.NewFromFloat(fakePrice()).Round(2),
		Description: faker.Paragraph(),
		CategoryID:  category.ID,
		Advantages:  advantages,
	}
}

func ContactInfoFaker() *models.ContactInfo {
	return &models.ContactInfo{
		PhoneNumber:    faker.Phonenumber(),
		WhatsAppNumber: faker.E164PhoneNumber(),
		Email:          faker.Email(),
	}
}

func fakePrice() float64 {
	return precision(rand.Float64()*math.Pow10(rand.Intn(5)+1), 2)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}
