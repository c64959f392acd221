package domain

import "context"

// User roles. Admins moderate content and manage other accounts.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the system.
type User struct {
	BaseModel
	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Phone        string `gorm:"size:30" json:"phone"`
	Role         string `gorm:"size:20;not null;default:user" json:"role"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`

	Favorites []Car `gorm:"many2many:favorites" json:"-"`
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, req PageRequest) (*PageResult[User], error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error

	AddFavorite(ctx context.Context, userID, carID uint) error
	RemoveFavorite(ctx context.Context, userID, carID uint) error
	ListFavorites(ctx context.Context, userID uint) ([]Car, error)
	IsFavorite(ctx context.Context, userID, carID uint) (bool, error)
}

// UserUpdate carries the mutable profile fields. Nil means leave unchanged.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
	Password  *string
	IsActive  *bool
	Role      *string
}

// UserService defines the business logic interface for users.
type UserService interface {
	GetUser(ctx context.Context, actor Actor, id uint) (*User, error)
	ListUsers(ctx context.Context, req PageRequest) (*PageResult[User], error)
	UpdateUser(ctx context.Context, actor Actor, id uint, upd UserUpdate) (*User, error)
	DeleteUser(ctx context.Context, actor Actor, id uint) error

	AddFavorite(ctx context.Context, userID, carID uint) error
	RemoveFavorite(ctx context.Context, userID, carID uint) error
	ListFavorites(ctx context.Context, userID uint) ([]Car, error)
}
