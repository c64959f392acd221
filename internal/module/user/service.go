package user

import (
	"context"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/zharkyn/carmarket/internal/domain"
)

// userService implements domain.UserService.
type userService struct {
	repo domain.UserRepository
	cars domain.CarRepository
}

// NewService creates a new UserService with the given repositories.
func NewService(repo domain.UserRepository, cars domain.CarRepository) domain.UserService {
	return &userService{repo: repo, cars: cars}
}

// GetUser retrieves a user by ID. Profiles carry contact details, so a
// user may only read their own profile; admins may read anyone's.
func (s *userService) GetUser(ctx context.Context, actor domain.Actor, id uint) (*domain.User, error) {
	if !actor.CanManage(id) {
		return nil, domain.ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.User], error) {
	return s.repo.List(ctx, req)
}

// UpdateUser loads the existing user, applies the requested changes, and
// persists them. Users may edit their own profile; only admins may edit other
// accounts or touch the role and active flags.
func (s *userService) UpdateUser(ctx context.Context, actor domain.Actor, id uint, upd domain.UserUpdate) (*domain.User, error) {
	if !actor.CanManage(id) {
		return nil, domain.ErrForbidden
	}
	if (upd.Role != nil || upd.IsActive != nil) && !actor.IsAdmin() {
		return nil, domain.NewAppError(domain.CodeForbidden, "only admins can change role or active status", nil)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
		}
		user.Email = email
	}
	if upd.FirstName != nil {
		user.FirstName = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		user.LastName = strings.TrimSpace(*upd.LastName)
	}
	if upd.Phone != nil {
		user.Phone = strings.TrimSpace(*upd.Phone)
	}
	if upd.Password != nil {
		if len(*upd.Password) < 8 {
			return nil, domain.NewAppError(domain.CodeValidation, "password must be at least 8 characters", nil)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}
	if upd.Role != nil {
		role := strings.TrimSpace(*upd.Role)
		if role != domain.RoleUser && role != domain.RoleAdmin {
			return nil, domain.NewAppError(domain.CodeValidation, "role must be user or admin", nil)
		}
		user.Role = role
	}
	if upd.IsActive != nil {
		user.IsActive = *upd.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user account. Users may delete themselves; admins may
// delete anyone.
func (s *userService) DeleteUser(ctx context.Context, actor domain.Actor, id uint) error {
	if !actor.CanManage(id) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// AddFavorite marks a car as a favorite of the user. The car must exist.
func (s *userService) AddFavorite(ctx context.Context, userID, carID uint) error {
	if _, err := s.cars.GetByID(ctx, carID); err != nil {
		return err
	}
	return s.repo.AddFavorite(ctx, userID, carID)
}

// RemoveFavorite unmarks a favorite car.
func (s *userService) RemoveFavorite(ctx context.Context, userID, carID uint) error {
	return s.repo.RemoveFavorite(ctx, userID, carID)
}

// ListFavorites returns the user's favorite cars.
func (s *userService) ListFavorites(ctx context.Context, userID uint) ([]domain.Car, error) {
	return s.repo.ListFavorites(ctx, userID)
}
