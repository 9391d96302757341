package user

import (
	"context"
	"crypto/rand"
	"log"
	"math/big"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const otpTTL = 5 * time.Minute

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

// OTPSender delivers a one-time password to a mobile number.
type OTPSender interface {
	Send(ctx context.Context, mobile, code string) error
}

// ServiceInterface is consumed by handlers in this and other packages.
type ServiceInterface interface {
	List() ([]User, error)
	GetByID(id int) (User, error)
	SendOTP(ctx context.Context, mobile string) error
	CustomerLogin(mobile, otp string) (User, bool, error)
	AdminLogin(email, password string) (User, error)
	UpdateProfile(id int, name, email string) (User, error)
	SetBlocked(id int, blocked bool) (User, error)
	SetDefaultAddress(id int, addressID string) error
}

type Service struct {
	repo   Repository
	otps   *OTPStore
	sender OTPSender
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, otps *OTPStore, sender OTPSender) *Service {
	return &Service{repo: repo, otps: otps, sender: sender}
}

func (s *Service) List() ([]User, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// SendOTP generates a 6-digit code, stores it with a 5-minute expiry and
// hands it to the delivery channel.
func (s *Service) SendOTP(ctx context.Context, mobile string) error {
	if !mobilePattern.MatchString(mobile) {
		return ErrInvalidMobile
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	s.otps.Put(mobile, code, otpTTL)

	if err := s.sender.Send(ctx, mobile, code); err != nil {
		log.Printf("[user][otp] delivery failed mobile=%s err=%v", mobile, err)
		return err
	}
	return nil
}

// CustomerLogin consumes the pending OTP for the mobile number. A first-time
// login creates the customer account on the spot; the bool result reports
// whether that happened.
func (s *Service) CustomerLogin(mobile, otp string) (User, bool, error) {
	stored, err := s.otps.Get(mobile)
	if err != nil {
		return User{}, false, err
	}
	if stored != otp {
		return User{}, false, ErrOTPInvalid
	}
	s.otps.Delete(mobile)

	u, err := s.repo.GetByMobile(mobile)
	if err == ErrNotFound {
		now := time.Now().UTC().Format(time.RFC3339)
		created, err := s.repo.Create(User{
			Mobile:            mobile,
			Role:              RoleCustomer,
			IsProfileComplete: false,
			Status:            StatusActive,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		if err != nil {
			return User{}, false, err
		}
		return created, true, nil
	}
	if err != nil {
		return User{}, false, err
	}
	if u.Status == StatusBlocked {
		return User{}, false, ErrBlocked
	}
	return u, u.Name == "", nil
}

func (s *Service) AdminLogin(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) UpdateProfile(id int, name, email string) (User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}
	u.IsProfileComplete = u.Name != ""
	u.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(id, u)
}

func (s *Service) SetBlocked(id int, blocked bool) (User, error) {
	return s.repo.SetBlocked(id, blocked)
}

func (s *Service) SetDefaultAddress(id int, addressID string) error {
	return s.repo.SetDefaultAddress(id, addressID)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return (n.Add(n, big.NewInt(100000))).String(), nil
}
