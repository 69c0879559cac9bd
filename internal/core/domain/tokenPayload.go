package domain

type TokenPayload struct {
	UserID string
	Role   UserRole
}
