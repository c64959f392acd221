package blog

import (
	"context"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/pkg"
	"gorm.io/gorm"
)

// Allowed fields for sorting and filtering in List queries.
var (
	allowedSortFields   = []string{"id", "title", "views", "likes_count", "status", "created_at", "updated_at"}
	allowedFilterFields = []string{"status", "author_id", "featured"}
)

// blogRepository implements domain.BlogRepository using GORM.
type blogRepository struct {
	db *gorm.DB
}

// NewRepository creates a new BlogRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.BlogRepository {
	return &blogRepository{db: db}
}

// Create inserts a new post.
func (r *blogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a post by its primary key.
func (r *blogRepository) GetByID(ctx context.Context, id uint) (*domain.Blog, error) {
	var blog domain.Blog
	if err := r.db.WithContext(ctx).First(&blog, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &blog, nil
}

// List returns a paginated, sorted, and filtered list of posts.
func (r *blogRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Blog], error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&domain.Blog{}), req)
}

// ListByAuthor returns the posts written by one user.
func (r *blogRepository) ListByAuthor(ctx context.Context, authorID uint, req domain.PageRequest) (*domain.PageResult[domain.Blog], error) {
	base := r.db.WithContext(ctx).Model(&domain.Blog{}).Where("author_id = ?", authorID)
	return r.list(ctx, base, req)
}

// ListByStatus returns the posts in one moderation state.
func (r *blogRepository) ListByStatus(ctx context.Context, status domain.ModerationStatus, req domain.PageRequest) (*domain.PageResult[domain.Blog], error) {
	base := r.db.WithContext(ctx).Model(&domain.Blog{}).Where("status = ?", status)
	return r.list(ctx, base, req)
}

// ListFeatured returns up to limit approved featured posts, most read first.
func (r *blogRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Blog, error) {
	var posts []domain.Blog
	err := r.db.WithContext(ctx).
		Where("featured = ? AND status = ?", true, domain.StatusApproved).
		Order("views DESC, created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return posts, nil
}

func (r *blogRepository) list(ctx context.Context, base *gorm.DB, req domain.PageRequest) (*domain.PageResult[domain.Blog], error) {
	base = base.Scopes(pkg.Filter(req, allowedFilterFields))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var posts []domain.Blog
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&posts).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(posts, total, req), nil
}

// Update saves changes to an existing post.
func (r *blogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a post and its comments and likes.
func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	return pkg.WithTx(r.db, func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Where("blog_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return pkg.MapDBError(err)
		}
		if err := tx.WithContext(ctx).Where("blog_id = ?", id).Delete(&domain.BlogLike{}).Error; err != nil {
			return pkg.MapDBError(err)
		}
		result := tx.WithContext(ctx).Delete(&domain.Blog{}, id)
		if result.Error != nil {
			return pkg.MapDBError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// IncrementViews bumps the view counter without loading the row.
func (r *blogRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&domain.Blog{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	return pkg.MapDBError(err)
}

// AddLike records a like and bumps the counter atomically.
func (r *blogRepository) AddLike(ctx context.Context, blogID, userID uint) error {
	return pkg.WithTx(r.db, func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(&domain.BlogLike{BlogID: blogID, UserID: userID}).Error; err != nil {
			return pkg.MapDBError(err)
		}
		err := tx.WithContext(ctx).Model(&domain.Blog{}).
			Where("id = ?", blogID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
		return pkg.MapDBError(err)
	})
}

// RemoveLike deletes a like and decrements the counter atomically.
func (r *blogRepository) RemoveLike(ctx context.Context, blogID, userID uint) error {
	return pkg.WithTx(r.db, func(tx *gorm.DB) error {
		result := tx.WithContext(ctx).
			Where("blog_id = ? AND user_id = ?", blogID, userID).
			Delete(&domain.BlogLike{})
		if result.Error != nil {
			return pkg.MapDBError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		err := tx.WithContext(ctx).Model(&domain.Blog{}).
			Where("id = ? AND likes_count > 0", blogID).
			UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
		return pkg.MapDBError(err)
	})
}

// HasLiked reports whether the user has liked the post.
func (r *blogRepository) HasLiked(ctx context.Context, blogID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.BlogLike{}).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Count(&count).Error
	if err != nil {
		return false, pkg.MapDBError(err)
	}
	return count > 0, nil
}

// CreateComment inserts a new comment.
func (r *blogRepository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// ListComments returns a paginated list of comments on a post, oldest first.
func (r *blogRepository) ListComments(ctx context.Context, blogID uint, req domain.PageRequest) (*domain.PageResult[domain.Comment], error) {
	base := r.db.WithContext(ctx).Model(&domain.Comment{}).Where("blog_id = ?", blogID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var comments []domain.Comment
	if err := base.Order("created_at ASC").
		Scopes(pkg.Paginate(req)).
		Find(&comments).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(comments, total, req), nil
}

// GetComment retrieves a comment by its primary key.
func (r *blogRepository) GetComment(ctx context.Context, id uint) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &comment, nil
}

// DeleteComment removes a comment by ID.
func (r *blogRepository) DeleteComment(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Comment{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
