package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
)

// CatalogPageSize is the fixed number of products per listing page.
const CatalogPageSize = 6

var (
	ErrProductNotFound = errors.New("product not found")
	ErrPageOutOfRange  = errors.New("page out of range")
)

type ListParams struct {
	CategorySlug string
	Page         int
}

type ProductPage struct {
	Products []models.Product
	Number   int
	NumPages int
	Total    int64
}

func (p *ProductPage) HasPrevious() bool { return p.Number > 1 }
func (p *ProductPage) HasNext() bool     { return p.Number < p.NumPages }
func (p *ProductPage) PreviousPage() int { return p.Number - 1 }
func (p *ProductPage) NextPage() int     { return p.Number + 1 }

// PageNumbers lists 1..NumPages for pagination links.
func (p *ProductPage) PageNumbers() []int {
	numbers := make([]int, p.NumPages)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}

type CatalogService interface {
	List(ctx context.Context, params ListParams) (*ProductPage, error)
	Detail(ctx context.Context, slug string) (*models.Product, error)
	LastPage(ctx context.Context, categorySlug string) (int, error)
}

type catalogService struct {
	products repositories.ProductRepositoryImpl
}

func NewCatalogService(products repositories.ProductRepositoryImpl) CatalogService {
	return &catalogService{products: products}
}

// NumPages never returns less than one so an empty catalog still has a first page.
func NumPages(total int64, size int) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

func (s *catalogService) List(ctx context.Context, params ListParams) (*ProductPage, error) {
	if params.Page < 1 {
		return nil, ErrPageOutOfRange
	}

	offset := (params.Page - 1) * CatalogPageSize
	products, total, err := s.products.ListPaginated(ctx, params.CategorySlug, CatalogPageSize, offset)
	if err != nil {
		return nil, err
	}

	numPages := NumPages(total, CatalogPageSize)
	if params.Page > numPages {
		return nil, ErrPageOutOfRange
	}

	return &ProductPage{
		Products: products,
		Number:   params.Page,
		NumPages: numPages,
		Total:    total,
	}, nil
}

func (s *catalogService) LastPage(ctx context.Context, categorySlug string) (int, error) {
	total, err := s.products.CountInCategory(ctx, categorySlug)
	if err != nil {
		return 0, err
	}
	return NumPages(total, CatalogPageSize), nil
}

func (s *catalogService) Detail(ctx context.Context, slug string) (*models.Product, error) {
	if slug == "" {
		return nil, ErrProductNotFound
	}

	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %q: %w", slug, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}
