package repositories_test

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/utils/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db         *gorm.DB
	categories repositories.CategoryRepositoryImpl
	products   repositories.ProductRepositoryImpl
	gallery    repositories.GalleryRepositoryImpl
	advantages repositories.AdvantageRepositoryImpl
}

func newFixture(t *testing.T) *fixture {
	db := testdb.New(t)
	return &fixture{
		db:         db,
		categories: repositories.NewCategoryRepository(db),
		products:   repositories.NewProductRepository(db),
		gallery:    repositories.NewGalleryRepository(db),
		advantages: repositories.NewAdvantageRepository(db),
	}
}

func (f *fixture) category(t *testing.T, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	require.NoError(t, f.categories.Create(context.Background(), c))
	return c
}

func (f *fixture) product(t *testing.T, c *models.Category, name string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: decimal.NewFromInt(100), CategoryID: c.ID}
	require.NoError(t, f.products.Save(context.Background(), p, repositories.ProductChanges{}))
	return p
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestListPaginatedFiltersByCategorySlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	masks := f.category(t, "Masks")
	soaps := f.category(t, "Soaps")
	f.product(t, masks, "Clay Mask")
	f.product(t, soaps, "Olive Soap")

	products, total, err := f.products.ListPaginated(ctx, masks.Slug, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"Clay Mask"}, names(products))
	assert.Equal(t, "Masks", products[0].Category.Name)

	products, total, err = f.products.ListPaginated(ctx, soaps.Slug, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.NotContains(t, names(products), "Clay Mask")

	products, total, err = f.products.ListPaginated(ctx, "unknown", 6, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, products)
}

func TestListPaginatedOrdersByName(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Masks")
	for _, n := range []string{"Charcoal", "Aloe", "Bamboo"} {
		f.product(t, c, n)
	}

	products, total, err := f.products.ListPaginated(context.Background(), "", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"Aloe", "Bamboo"}, names(products))

	products, _, err = f.products.ListPaginated(context.Background(), "", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Charcoal"}, names(products))
}

func TestGetBySlugLoadsCollections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Masks")

	p := &models.Product{Name: "Clay Mask", Price: decimal.NewFromInt(10), CategoryID: c.ID}
	require.NoError(t, f.products.Save(ctx, p, repositories.ProductChanges{
		Advantages: []string{"Natural", "Vegan"},
		AddGallery: []string{"gallery/a.jpg", "gallery/b.jpg"},
	}))

	got, err := f.products.GetBySlug(ctx, "clay-mask")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Masks", got.Category.Name)
	assert.Len(t, got.GalleryImages, 2)
	assert.Len(t, got.Advantages, 2)

	missing, err := f.products.GetBySlug(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaveReplacesAdvantagesAndEditsGallery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Masks")

	p := &models.Product{Name: "Clay Mask", Price: decimal.NewFromInt(10), CategoryID: c.ID}
	require.NoError(t, f.products.Save(ctx, p, repositories.ProductChanges{
		Advantages: []string{"Natural"},
		AddGallery: []string{"gallery/a.jpg"},
	}))

	images, err := f.gallery.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)

	require.NoError(t, f.products.Save(ctx, p, repositories.ProductChanges{
		Advantages:      []string{"Vegan", "Handmade"},
		AddGallery:      []string{"gallery/b.jpg"},
		RemoveGalleryID: []string{images[0].ID},
	}))

	advantages, err := f.advantages.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, advantages, 2)

	images, err = f.gallery.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "gallery/b.jpg", images[0].Image)

	// A nil advantages slice leaves them alone.
	require.NoError(t, f.products.Save(ctx, p, repositories.ProductChanges{}))
	count, err := f.advantages.CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGalleryAndAdvantageCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Masks")
	p := f.product(t, c, "Clay Mask")
	other := f.product(t, c, "Mud Mask")

	require.NoError(t, f.gallery.Create(ctx, &models.ImageGallery{ProductID: p.ID, Image: "gallery/a.jpg"}))
	require.NoError(t, f.gallery.Create(ctx, &models.ImageGallery{ProductID: p.ID, Image: "gallery/b.jpg"}))
	require.NoError(t, f.advantages.Create(ctx, &models.Advantage{ProductID: p.ID, Description: "Natural"}))

	galleryCount, err := f.gallery.CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), galleryCount)

	advantageCount, err := f.advantages.CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), advantageCount)

	counts, err := f.gallery.CountsByProduct(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[p.ID])
	assert.Zero(t, counts[other.ID])

	total, err := f.gallery.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	images, err := f.gallery.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, f.gallery.Delete(ctx, images[0].ID))
	galleryCount, err = f.gallery.CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), galleryCount)
}

func TestCategorySearchAndProductCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	soaps := f.category(t, "Soaps")
	masks := f.category(t, "Masks")
	f.product(t, masks, "Clay Mask")
	f.product(t, masks, "Mud Mask")

	all, err := f.categories.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Masks", all[0].Name)

	found, err := f.categories.Search(ctx, "SOA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, soaps.ID, found[0].ID)

	counts, err := f.categories.ProductCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[masks.ID])
	assert.Zero(t, counts[soaps.ID])

	exists, err := f.categories.SlugExists(ctx, "masks", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.categories.SlugExists(ctx, "masks", masks.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	bySlug, err := f.categories.GetBySlug(ctx, "soaps")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, soaps.ID, bySlug.ID)
}

func TestCategoryDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Masks")
	p := f.product(t, c, "Clay Mask")

	require.NoError(t, f.categories.Delete(ctx, c.ID))

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductSearchAndPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	soaps := f.category(t, "Soaps")
	masks := f.category(t, "Masks")
	f.product(t, soaps, "Olive Soap")
	mask := f.product(t, masks, "Clay Mask")
	f.product(t, masks, "Anti Mask")

	products, err := f.products.Search(ctx, repositories.AdminProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Anti Mask", "Clay Mask", "Olive Soap"}, names(products))

	products, err = f.products.Search(ctx, repositories.AdminProductFilter{Query: "clay"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Clay Mask"}, names(products))

	products, err = f.products.Search(ctx, repositories.AdminProductFilter{CategoryID: soaps.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Olive Soap"}, names(products))

	require.NoError(t, f.products.UpdatePrice(ctx, mask.ID, decimal.RequireFromString("-5.50")))
	got, err := f.products.GetByID(ctx, mask.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("-5.5")))
	assert.Equal(t, "clay-mask", got.Slug)

	assert.ErrorIs(t, f.products.UpdatePrice(ctx, "missing", decimal.NewFromInt(1)), gorm.ErrRecordNotFound)
}
