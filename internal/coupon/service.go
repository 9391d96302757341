package coupon

import (
	"errors"
	"strings"
	"time"
)

// Validation outcomes. These map to a "valid: false" response rather than an
// HTTP error; the storefront shows the message next to the coupon field.
var (
	ErrDisabled      = errors.New("coupon is disabled")
	ErrExpired       = errors.New("coupon expired")
	ErrLimitReached  = errors.New("coupon usage limit reached")
	ErrBelowMinOrder = errors.New("cart total below minimum order value")
)

// ServiceInterface is what the order engine depends on.
type ServiceInterface interface {
	List() ([]Coupon, error)
	GetByCode(code string) (Coupon, error)
	Create(cp Coupon) (Coupon, error)
	Update(id int, cp Coupon) (Coupon, error)
	Delete(id int) error
	Validate(code string, cartTotal int64) (Coupon, int64, error)
	MarkUsed(code string) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List() ([]Coupon, error) {
	return s.repo.List()
}

func (s *Service) GetByCode(code string) (Coupon, error) {
	return s.repo.GetByCode(code)
}

func (s *Service) Create(cp Coupon) (Coupon, error) {
	if err := validateFields(cp); err != nil {
		return Coupon{}, err
	}
	cp.Code = strings.ToUpper(strings.TrimSpace(cp.Code))
	return s.repo.Create(cp)
}

func (s *Service) Update(id int, cp Coupon) (Coupon, error) {
	if err := validateFields(cp); err != nil {
		return Coupon{}, err
	}
	cp.Code = strings.ToUpper(strings.TrimSpace(cp.Code))
	return s.repo.Update(id, cp)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

// Validate runs the full applicability rule chain and returns the coupon plus
// the discount it grants against cartTotal. The same computation is used at
// checkout so the quoted and charged discounts can never diverge.
func (s *Service) Validate(code string, cartTotal int64) (Coupon, int64, error) {
	cp, err := s.repo.GetByCode(code)
	if err != nil {
		return Coupon{}, 0, err
	}
	if !cp.IsActive {
		return cp, 0, ErrDisabled
	}
	if cp.ExpiryDate.Before(s.now()) {
		return cp, 0, ErrExpired
	}
	if cp.UsedCount >= cp.UsageLimit {
		return cp, 0, ErrLimitReached
	}
	if cartTotal < cp.MinOrderValue {
		return cp, 0, ErrBelowMinOrder
	}
	return cp, cp.Discount(cartTotal), nil
}

func (s *Service) MarkUsed(code string) error {
	return s.repo.IncrementUsage(code)
}

func validateFields(cp Coupon) error {
	if strings.TrimSpace(cp.Code) == "" {
		return errors.New("code is required")
	}
	if cp.Type != TypePercentage && cp.Type != TypeFixed {
		return errors.New("type must be percentage or fixed")
	}
	if cp.Value <= 0 {
		return errors.New("value must be positive")
	}
	if cp.Type == TypePercentage && cp.Value > 100 {
		return errors.New("percentage value cannot exceed 100")
	}
	if cp.MinOrderValue < 0 {
		return errors.New("minOrderValue cannot be negative")
	}
	return nil
}
