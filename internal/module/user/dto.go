package user

import (
	"time"

	"github.com/zharkyn/carmarket/internal/domain"
)

// UpdateUserRequest represents the input for profile updates. All fields are
// optional; absent fields are left unchanged.
type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
	Password  *string `json:"password" binding:"omitempty,min=8,max=72"`
	Role      *string `json:"role" binding:"omitempty,oneof=user admin"`
	IsActive  *bool   `json:"is_active"`
}

// toUpdate converts the request into the domain update struct.
func (r UpdateUserRequest) toUpdate() domain.UserUpdate {
	return domain.UserUpdate{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Password:  r.Password,
		Role:      r.Role,
		IsActive:  r.IsActive,
	}
}

// UserResponse represents public account data.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func toResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toResponse(&users[i]))
	}
	return out
}
