package address

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(userID int) ([]Address, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByUser(userID)
}

func (s *Service) Get(userID int, id string) (Address, error) {
	return s.repo.GetByID(userID, id)
}

func (s *Service) Add(userID int, a Address) (Address, error) {
	if userID <= 0 {
		return Address{}, ErrNotFound
	}
	if err := validate(&a); err != nil {
		return Address{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	a.ID = uuid.NewString()
	a.UserID = userID
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.repo.Create(a)
}

func (s *Service) Update(userID int, id string, a Address) (Address, error) {
	if userID <= 0 || id == "" {
		return Address{}, ErrNotFound
	}
	if err := validate(&a); err != nil {
		return Address{}, err
	}

	a.ID = id
	a.UserID = userID
	a.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(a)
}

func (s *Service) Delete(userID int, id string) error {
	if userID <= 0 || id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(userID, id)
}

func validate(a *Address) error {
	if a.Street == "" || a.City == "" {
		return errors.New("street and city are required")
	}
	if a.Type == "" {
		a.Type = "Home"
	} else {
		ok := false
		for _, t := range AllowedTypes {
			if a.Type == t {
				ok = true
				break
			}
		}
		if !ok {
			return errors.New("type must be Home, Work or Other")
		}
	}
	return nil
}
