package domain

type UserID string

// User is the identity the server resolves from a session token.
type User struct {
	ID    UserID `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
