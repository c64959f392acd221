package blog

import "github.com/zharkyn/carmarket/internal/domain"

// PostRequest represents the input for creating or editing a post.
type PostRequest struct {
	Title            string `json:"title" binding:"required,max=255"`
	ShortDescription string `json:"short_description" binding:"max=1000"`
	FullContent      string `json:"full_content" binding:"required"`
	Image            string `json:"image" binding:"max=500"`
	ReadTime         int    `json:"read_time" binding:"gte=0"`
}

// toDomain converts the request into a domain Blog.
func (r PostRequest) toDomain() *domain.Blog {
	return &domain.Blog{
		Title:            r.Title,
		ShortDescription: r.ShortDescription,
		FullContent:      r.FullContent,
		Image:            r.Image,
		ReadTime:         r.ReadTime,
	}
}

// ModerateRequest represents the input for a moderation decision.
type ModerateRequest struct {
	Status  string `json:"status" binding:"required,oneof=approved rejected"`
	Comment string `json:"comment" binding:"max=1000"`
}

// FeatureRequest represents the input for front-page placement.
type FeatureRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

// CommentRequest represents the input for adding a comment.
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// LikeResponse represents the outcome of a like toggle.
type LikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// PostDetail is a post together with the caller's like state.
type PostDetail struct {
	*domain.Blog
	UserHasLiked bool `json:"user_has_liked"`
}
