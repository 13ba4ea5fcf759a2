package staff

// UserCreateRequest is the payload for creating a staff account.
type UserCreateRequest struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// UserUpdateRequest is the payload for partial account updates.
type UserUpdateRequest struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Active      *bool    `json:"active"`
}
