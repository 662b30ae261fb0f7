package services

import (
	"mistica/internal/apperr"
	"mistica/internal/models"
	"mistica/internal/store"
)

const featuredCount = 4

// CatalogService is read-mostly product and category lookup.
type CatalogService struct {
	catalog store.CatalogRepository
	reviews store.ReviewRepository
}

func NewCatalogService(catalog store.CatalogRepository, reviews store.ReviewRepository) *CatalogService {
	return &CatalogService{catalog: catalog, reviews: reviews}
}

// Products filters by category (0 = all) and a case-insensitive search over
// name and description.
func (s *CatalogService) Products(categoryID int64, search string) []models.Product {
	return s.catalog.Products(categoryID, search)
}

func (s *CatalogService) Featured() []models.Product {
	return s.catalog.FeaturedProducts(featuredCount)
}

func (s *CatalogService) Product(id int64) (models.Product, error) {
	p, ok := s.catalog.Product(id)
	if !ok {
		return models.Product{}, apperr.NotFound("product %d not found", id)
	}
	return p, nil
}

// ProductDetail joins the product with its gallery and reviews for the
// product page.
func (s *CatalogService) ProductDetail(id int64) (models.ProductDetail, error) {
	p, err := s.Product(id)
	if err != nil {
		return models.ProductDetail{}, err
	}
	return models.ProductDetail{
		Product:   p,
		Galleries: s.catalog.Galleries(id),
		Reviews:   s.reviews.Reviews(id),
	}, nil
}

func (s *CatalogService) Categories() []models.Category {
	return s.catalog.Categories()
}

func (s *CatalogService) Category(id int64) (models.Category, error) {
	c, ok := s.catalog.Category(id)
	if !ok {
		return models.Category{}, apperr.NotFound("category %d not found", id)
	}
	return c, nil
}

// AdjustStock is the only stock writer; checkout never touches stock.
func (s *CatalogService) AdjustStock(productID int64, stock int) (models.Product, error) {
	return s.catalog.SetStock(productID, stock)
}
