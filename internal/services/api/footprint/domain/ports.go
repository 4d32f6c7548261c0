package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Check(ctx context.Context, in CheckInput) (*Report, error)
	DeleteUserData(ctx context.Context, userID string) (DeleteResult, error)
}
