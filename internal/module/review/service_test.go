package review

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/module/car"
)

// setupTestDB creates an in-memory SQLite database with the review and car
// tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Review{}, &domain.Car{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (domain.ReviewService, uint) {
	t.Helper()
	db := setupTestDB(t)
	cars := car.NewRepository(db)

	c := &domain.Car{Brand: "BMW", Model: "X5", Price: 15_000_000}
	if err := cars.Create(context.Background(), c); err != nil {
		t.Fatalf("seed car: %v", err)
	}
	return NewService(NewRepository(db), cars), c.ID
}

var (
	alice = domain.Actor{ID: 1, Role: domain.RoleUser}
	bob   = domain.Actor{ID: 2, Role: domain.RoleUser}
	admin = domain.Actor{ID: 9, Role: domain.RoleAdmin}
)

func TestCreateReview(t *testing.T) {
	svc, carID := newTestService(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, alice, carID, 4, "  good car  ")
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if review.Rating != 4 || review.Comment != "good car" {
		t.Errorf("got %+v, want rating 4 with trimmed comment", review)
	}
}

func TestCreateReview_InvalidRating(t *testing.T) {
	svc, carID := newTestService(t)
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6} {
		if _, err := svc.CreateReview(ctx, alice, carID, rating, ""); !domain.IsValidation(err) {
			t.Errorf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}

func TestCreateReview_UnknownCar(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.CreateReview(context.Background(), alice, 999, 4, ""); !domain.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCreateReview_OnePerUserPerCar(t *testing.T) {
	svc, carID := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateReview(ctx, alice, carID, 4, ""); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := svc.CreateReview(ctx, alice, carID, 5, ""); !domain.IsAlreadyExists(err) {
		t.Errorf("expected already exists, got %v", err)
	}
	// A different user may still review.
	if _, err := svc.CreateReview(ctx, bob, carID, 2, "overpriced"); err != nil {
		t.Errorf("second user review: %v", err)
	}
}

func TestCarRating(t *testing.T) {
	svc, carID := newTestService(t)
	ctx := context.Background()

	avg, count, err := svc.CarRating(ctx, carID)
	if err != nil {
		t.Fatalf("CarRating: %v", err)
	}
	if avg != 0 || count != 0 {
		t.Errorf("got avg=%v count=%d, want 0 0 with no reviews", avg, count)
	}

	if _, err := svc.CreateReview(ctx, alice, carID, 4, ""); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if _, err := svc.CreateReview(ctx, bob, carID, 5, ""); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	avg, count, err = svc.CarRating(ctx, carID)
	if err != nil {
		t.Fatalf("CarRating: %v", err)
	}
	if avg != 4.5 || count != 2 {
		t.Errorf("got avg=%v count=%d, want 4.5 2", avg, count)
	}
}

func TestUpdateReview(t *testing.T) {
	svc, carID := newTestService(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, alice, carID, 4, "good")
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	updated, err := svc.UpdateReview(ctx, alice, review.ID, 2, "engine trouble")
	if err != nil {
		t.Fatalf("UpdateReview: %v", err)
	}
	if updated.Rating != 2 || updated.Comment != "engine trouble" {
		t.Errorf("got %+v, want rating 2", updated)
	}

	if _, err := svc.UpdateReview(ctx, bob, review.ID, 5, ""); !domain.IsForbidden(err) {
		t.Errorf("expected forbidden for other user, got %v", err)
	}
	if _, err := svc.UpdateReview(ctx, admin, review.ID, 3, "moderated"); err != nil {
		t.Errorf("admin update: %v", err)
	}
}

func TestDeleteReview(t *testing.T) {
	svc, carID := newTestService(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, alice, carID, 4, "")
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	if err := svc.DeleteReview(ctx, bob, review.ID); !domain.IsForbidden(err) {
		t.Errorf("expected forbidden, got %v", err)
	}
	if err := svc.DeleteReview(ctx, alice, review.ID); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if err := svc.DeleteReview(ctx, alice, review.ID); !domain.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
