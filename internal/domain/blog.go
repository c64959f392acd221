package domain

import "context"

// Blog is a user-authored post. Like listings, posts go through moderation
// before they are publicly visible.
type Blog struct {
	BaseModel
	Moderation
	AuthorID         uint   `gorm:"not null;index" json:"author_id"`
	Title            string `gorm:"size:255;not null" json:"title"`
	ShortDescription string `gorm:"size:1000" json:"short_description"`
	FullContent      string `gorm:"type:text" json:"full_content"`
	Image            string `gorm:"size:500" json:"image"`
	ReadTime         int    `json:"read_time"`
	Views            int64  `gorm:"not null;default:0" json:"views"`
	LikesCount       int64  `gorm:"not null;default:0" json:"likes_count"`
	Featured         bool   `gorm:"not null;default:false;index" json:"featured"`

	Comments []Comment `json:"comments,omitempty"`
}

// Comment is a reader comment on an approved post.
type Comment struct {
	BaseModel
	BlogID  uint   `gorm:"not null;index" json:"blog_id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Content string `gorm:"size:2000;not null" json:"content"`
}

// BlogLike records that a user liked a post. The (blog, user) pair is
// unique so a like is a toggle, not a counter.
type BlogLike struct {
	BlogID uint `gorm:"primaryKey"`
	UserID uint `gorm:"primaryKey"`
}

// BlogRepository defines the data access interface for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, blog *Blog) error
	GetByID(ctx context.Context, id uint) (*Blog, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Blog], error)
	ListByAuthor(ctx context.Context, authorID uint, req PageRequest) (*PageResult[Blog], error)
	ListByStatus(ctx context.Context, status ModerationStatus, req PageRequest) (*PageResult[Blog], error)
	ListFeatured(ctx context.Context, limit int) ([]Blog, error)
	Update(ctx context.Context, blog *Blog) error
	Delete(ctx context.Context, id uint) error

	IncrementViews(ctx context.Context, id uint) error
	AddLike(ctx context.Context, blogID, userID uint) error
	RemoveLike(ctx context.Context, blogID, userID uint) error
	HasLiked(ctx context.Context, blogID, userID uint) (bool, error)

	CreateComment(ctx context.Context, comment *Comment) error
	ListComments(ctx context.Context, blogID uint, req PageRequest) (*PageResult[Comment], error)
	DeleteComment(ctx context.Context, id uint) error
	GetComment(ctx context.Context, id uint) (*Comment, error)
}

// BlogService defines the business logic interface for blog posts.
type BlogService interface {
	SubmitPost(ctx context.Context, actor Actor, blog *Blog) (*Blog, error)
	GetPost(ctx context.Context, actor Actor, id uint) (*Blog, error)
	ListPosts(ctx context.Context, actor Actor, req PageRequest) (*PageResult[Blog], error)
	ListMyPosts(ctx context.Context, actor Actor, req PageRequest) (*PageResult[Blog], error)
	ListFeatured(ctx context.Context, limit int) ([]Blog, error)
	UpdatePost(ctx context.Context, actor Actor, id uint, blog *Blog) (*Blog, error)
	DeletePost(ctx context.Context, actor Actor, id uint) error
	Moderate(ctx context.Context, actor Actor, id uint, decision ModerationStatus, comment string) (*Blog, error)
	SetFeatured(ctx context.Context, actor Actor, id uint, featured bool) (*Blog, error)

	RecordView(ctx context.Context, id uint) error

	ToggleLike(ctx context.Context, actor Actor, id uint) (liked bool, count int64, err error)
	HasLiked(ctx context.Context, actor Actor, id uint) (bool, error)
	AddComment(ctx context.Context, actor Actor, blogID uint, content string) (*Comment, error)
	ListComments(ctx context.Context, blogID uint, req PageRequest) (*PageResult[Comment], error)
	DeleteComment(ctx context.Context, actor Actor, commentID uint) error
}
