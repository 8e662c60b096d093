package auth

import "ess-api/internal/employee"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the denormalized user+employee record. It is persisted
// verbatim by the client as its session; the password hash never appears.
type LoginResponse struct {
	UserID   int                      `json:"user_id"`
	UserName string                   `json:"user_name"`
	BioID    int                      `json:"bio_id"`
	Employee employee.ProfileResponse `json:"employee"`
}
