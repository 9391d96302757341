package address

// Address is one entry in a customer's address book. Orders copy the chosen
// entry at checkout instead of referencing it.
type Address struct {
	ID        string `json:"id"`
	UserID    int    `json:"userId"`
	Name      string `json:"name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// AllowedTypes for address labels.
var AllowedTypes = []string{"Home", "Work", "Other"}
