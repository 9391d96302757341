package user

// Roles and account statuses.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"

	StatusActive  = "active"
	StatusBlocked = "blocked"
)

type User struct {
	ID                int    `json:"userId"`
	Name              string `json:"name"`
	Email             string `json:"email,omitempty"`
	Password          string `json:"password,omitempty"`
	Mobile            string `json:"mobile"`
	Role              string `json:"role"`
	IsProfileComplete bool   `json:"isProfileComplete"`
	DefaultAddressID  string `json:"defaultAddressId,omitempty"`
	Status            string `json:"status"`
	CreatedAt         string `json:"createdAt,omitempty"`
	UpdatedAt         string `json:"updatedAt,omitempty"`
}
