package domain

// User is the authenticated account as reported by the backend.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Credentials are sent to log in; Identifier is a username or an email.
type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Profile is sent to register a new account.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// MeResponse is returned by the current-user endpoint.
type MeResponse struct {
	User User `json:"user"`
}
