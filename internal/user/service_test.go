package user

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// captureSender records the last delivered code instead of sending anything.
type captureSender struct {
	mobile string
	code   string
	fail   error
}

func (c *captureSender) Send(_ context.Context, mobile, code string) error {
	if c.fail != nil {
		return c.fail
	}
	c.mobile = mobile
	c.code = code
	return nil
}

func newLoginService(t *testing.T, seed ...User) (*Service, *captureSender) {
	t.Helper()
	sender := &captureSender{}
	return NewService(NewInMemoryRepository(seed), NewOTPStore(), sender), sender
}

func TestSendOTP_RejectsBadMobile(t *testing.T) {
	s, _ := newLoginService(t)

	for _, mobile := range []string{"", "12345", "98765432101", "98765abcde", "+919876543210"} {
		if err := s.SendOTP(context.Background(), mobile); !errors.Is(err, ErrInvalidMobile) {
			t.Errorf("mobile %q: expected ErrInvalidMobile, got %v", mobile, err)
		}
	}
}

func TestSendOTP_GeneratesSixDigits(t *testing.T) {
	s, sender := newLoginService(t)

	if err := s.SendOTP(context.Background(), "9876543210"); err != nil {
		t.Fatal(err)
	}
	if sender.mobile != "9876543210" {
		t.Errorf("sender got mobile %q", sender.mobile)
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(sender.code) {
		t.Errorf("expected 6-digit code, got %q", sender.code)
	}
}

func TestCustomerLogin_FirstLoginCreatesAccount(t *testing.T) {
	s, sender := newLoginService(t)

	if err := s.SendOTP(context.Background(), "9876543210"); err != nil {
		t.Fatal(err)
	}

	u, isNew, err := s.CustomerLogin("9876543210", sender.code)
	if err != nil {
		t.Fatal(err)
	}
	if !isNew {
		t.Error("expected first login to report a new account")
	}
	if u.Mobile != "9876543210" || u.Role != RoleCustomer || u.Status != StatusActive {
		t.Errorf("unexpected created user %+v", u)
	}
	if u.IsProfileComplete {
		t.Error("fresh account should have an incomplete profile")
	}
}

func TestCustomerLogin_WrongOTP(t *testing.T) {
	s, sender := newLoginService(t)
	s.SendOTP(context.Background(), "9876543210")

	if _, _, err := s.CustomerLogin("9876543210", "000000"); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid, got %v", err)
	}

	// the wrong guess must not consume the pending code
	if _, _, err := s.CustomerLogin("9876543210", sender.code); err != nil {
		t.Errorf("correct code rejected after wrong guess: %v", err)
	}
}

func TestCustomerLogin_CodeIsSingleUse(t *testing.T) {
	s, sender := newLoginService(t)
	s.SendOTP(context.Background(), "9876543210")

	if _, _, err := s.CustomerLogin("9876543210", sender.code); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.CustomerLogin("9876543210", sender.code); !errors.Is(err, ErrOTPNotFound) {
		t.Errorf("expected ErrOTPNotFound on reuse, got %v", err)
	}
}

func TestCustomerLogin_BlockedUser(t *testing.T) {
	s, sender := newLoginService(t, User{
		ID: 1, Name: "Asha", Mobile: "9876543210", Role: RoleCustomer, Status: StatusBlocked,
	})
	s.SendOTP(context.Background(), "9876543210")

	if _, _, err := s.CustomerLogin("9876543210", sender.code); !errors.Is(err, ErrBlocked) {
		t.Errorf("expected ErrBlocked, got %v", err)
	}
}

func TestCustomerLogin_ReturningUser(t *testing.T) {
	s, sender := newLoginService(t, User{
		ID: 1, Name: "Asha", Mobile: "9876543210", Role: RoleCustomer, Status: StatusActive,
	})
	s.SendOTP(context.Background(), "9876543210")

	u, isNew, err := s.CustomerLogin("9876543210", sender.code)
	if err != nil {
		t.Fatal(err)
	}
	if isNew {
		t.Error("returning user with a name should not be flagged new")
	}
	if u.ID != 1 {
		t.Errorf("expected existing user, got %+v", u)
	}
}

func TestAdminLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := newLoginService(t, User{
		ID: 1, Email: "admin@store.test", Password: string(hash), Role: RoleAdmin, Status: StatusActive,
	})

	if _, err := s.AdminLogin("admin@store.test", "hunter2"); err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if _, err := s.AdminLogin("admin@store.test", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.AdminLogin("nobody@store.test", "hunter2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfile_MarksComplete(t *testing.T) {
	s, _ := newLoginService(t, User{
		ID: 1, Mobile: "9876543210", Role: RoleCustomer, Status: StatusActive,
	})

	u, err := s.UpdateProfile(1, "Asha", "asha@store.test")
	if err != nil {
		t.Fatal(err)
	}
	if !u.IsProfileComplete {
		t.Error("profile with a name should be complete")
	}
	if u.Email != "asha@store.test" {
		t.Errorf("email not updated: %+v", u)
	}
}
