package services

import (
	"rewear/internal/domain"
	"rewear/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// ProductPage is the list envelope: products plus pagination metadata.
type ProductPage struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
	Pages    int              `json:"pages"`
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) List(f repos.Filter) (ProductPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = 12
	}
	products, total, err := s.Prods.List(f)
	if err != nil {
		return ProductPage{}, err
	}
	for i := range products {
		products[i].Hydrate()
	}
	pages := (total + f.PerPage - 1) / f.PerPage
	if pages < 1 {
		pages = 1
	}
	return ProductPage{Products: products, Total: total, Page: f.Page, PerPage: f.PerPage, Pages: pages}, nil
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	p.Hydrate()
	return p, nil
}

func (s *CatalogService) Featured(limit int) ([]domain.Product, error) {
	products, err := s.Prods.Featured(limit)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Hydrate()
	}
	return products, nil
}
