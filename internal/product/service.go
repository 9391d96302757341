package product

import "errors"

// ServiceInterface lets other packages (orders) depend on the catalog without
// importing the concrete service.
type ServiceInterface interface {
	List(category string) ([]Product, error)
	GetByID(id int) (Product, error)
	ListByIDs(ids []int) ([]Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(category string) ([]Product, error) {
	return s.repo.List(category)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) Create(p Product) (Product, error) {
	if err := normalize(&p); err != nil {
		return Product{}, err
	}
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	if err := normalize(&p); err != nil {
		return Product{}, err
	}
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

// normalize validates the writable fields and derives the final price.
// Products created without option lists get the default configuration axes.
func normalize(p *Product) error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	if p.Price < 0 || p.DiscountPercent < 0 || p.DiscountPercent > 100 {
		return errors.New("invalid price or discount")
	}
	if p.Category != "" && !contains(AllowedCategories, p.Category) {
		return errors.New("unknown category")
	}
	if p.Condition == "" {
		p.Condition = "Excellent"
	} else if !contains(AllowedConditions, p.Condition) {
		return errors.New("unknown condition")
	}
	if len(p.ConfigOptions.RAM) == 0 {
		p.ConfigOptions.RAM = DefaultConfigOptions.RAM
	}
	if len(p.ConfigOptions.Storage) == 0 {
		p.ConfigOptions.Storage = DefaultConfigOptions.Storage
	}
	if len(p.ConfigOptions.Warranty) == 0 {
		p.ConfigOptions.Warranty = DefaultConfigOptions.Warranty
	}
	p.FinalPrice = ComputeFinalPrice(p.Price, p.DiscountPercent)
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
