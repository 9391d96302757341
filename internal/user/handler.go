package user

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type Handler struct {
	service   ServiceInterface
	jwtSecret string
}

func NewHandler(service ServiceInterface, jwtSecret string) *Handler {
	return &Handler{service: service, jwtSecret: jwtSecret}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/users/otp", h.sendOTP)
	app.Post("/api/users/login", h.customerLogin)
	app.Post("/api/users/admin/login", h.adminLogin)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/users/profile", h.getProfile)
	app.Put("/api/users/profile", h.updateProfile)
}

func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/api/users", h.getUsers)
	router.Put("/api/users/:id<[0-9]+>/block", h.blockUser)
}

type sendOTPRequest struct {
	Mobile string `json:"mobile"`
}

func (h *Handler) sendOTP(c *fiber.Ctx) error {
	payload := new(sendOTPRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.SendOTP(c.Context(), payload.Mobile); err != nil {
		if err == ErrInvalidMobile {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid mobile number"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "OTP sent successfully", "mobile": payload.Mobile})
}

type customerLoginRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

func (h *Handler) customerLogin(c *fiber.Ctx) error {
	payload := new(customerLoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Mobile == "" || payload.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Mobile and OTP are required"})
	}

	u, isNew, err := h.service.CustomerLogin(payload.Mobile, payload.OTP)
	if err != nil {
		switch err {
		case ErrOTPNotFound:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "OTP not found or expired"})
		case ErrOTPExpired:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "OTP expired"})
		case ErrOTPInvalid:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid OTP"})
		case ErrBlocked:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Account is blocked"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	token, err := h.signToken(u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"isNewUser": isNew,
		"user":      sanitizeUser(u),
		"token":     token,
	})
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) adminLogin(c *fiber.Ctx) error {
	payload := new(adminLoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email and password are required"})
	}

	u, err := h.service.AdminLogin(payload.Email, payload.Password)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		default:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid password"})
		}
	}

	token, err := h.signToken(u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	return c.JSON(fiber.Map{"success": true, "user": sanitizeUser(u), "token": token})
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	u, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}
	return c.JSON(sanitizeUser(u))
}

type profileUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(profileUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	u, err := h.service.UpdateProfile(userID, payload.Name, payload.Email)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(sanitizeUser(u))
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, sanitizeUser(u))
	}
	return c.JSON(out)
}

type blockRequest struct {
	Blocked bool `json:"blocked"`
}

func (h *Handler) blockUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(blockRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	u, err := h.service.SetBlocked(id, payload.Blocked)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(sanitizeUser(u))
}

func (h *Handler) signToken(u User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"exp":     time.Now().Add(30 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

func sanitizeUser(u User) User {
	u.Password = ""
	return u
}
