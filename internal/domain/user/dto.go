package user

import "context"

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type UserService interface {
	List(ctx context.Context) ([]UserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
}
