package api

import "time"

// Profile is the identity endpoint's view of the signed-in user.
type Profile struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	StoreID   *int   `json:"store_id"`
}

// TokenResponse is returned by login and invite completion.
type TokenResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	TokenType    string  `json:"token_type"`
	User         Profile `json:"user"`
}

// Notification is a server-created notification record. The client never
// deletes notifications; it only flips read state.
type Notification struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	StoreID   *int       `json:"store_id"`
	ProductID *int       `json:"product_id"`
	Category  string     `json:"category"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
}

// AdminInviteRegistration completes an admin account from an invite token.
type AdminInviteRegistration struct {
	InviteToken string `json:"invite_token"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	Phone       string `json:"phone,omitempty"`
}
