package users

// CredentialsRequest is the body of both registration and login.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse returns the id of the newly created account.
type RegisterResponse struct {
	Inserted int64 `json:"inserted"`
}

// LoginResponse returns the issued API key together with the identity it
// asserts, matching what the frontend stores after login.
type LoginResponse struct {
	APIKey string `json:"apiKey"`
	ID     int64  `json:"id"`
	Email  string `json:"email"`
}

// DisconnectResponse acknowledges an API key revocation.
type DisconnectResponse struct {
	Removed bool `json:"removed"`
}
