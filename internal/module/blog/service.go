package blog

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/zharkyn/carmarket/internal/domain"
)

// wordsPerMinute is used to estimate read time from content length.
const wordsPerMinute = 200

// blogService implements domain.BlogService.
type blogService struct {
	repo domain.BlogRepository
}

// NewService creates a new BlogService with the given repository.
func NewService(repo domain.BlogRepository) domain.BlogService {
	return &blogService{repo: repo}
}

// SubmitPost validates and persists a new post. New posts are always pending.
func (s *blogService) SubmitPost(ctx context.Context, actor domain.Actor, blog *domain.Blog) (*domain.Blog, error) {
	if err := validatePost(blog); err != nil {
		return nil, err
	}

	blog.AuthorID = actor.ID
	blog.Views = 0
	blog.LikesCount = 0
	blog.Featured = false
	if blog.ReadTime <= 0 {
		blog.ReadTime = estimateReadTime(blog.FullContent)
	}
	blog.Submit()

	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// GetPost retrieves a post. Approved posts are public; pending and rejected
// posts are visible only to their author and to admins. Views are counted
// separately through RecordView, so cached re-renders don't inflate them.
func (s *blogService) GetPost(ctx context.Context, actor domain.Actor, id uint) (*domain.Blog, error) {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if blog.Status != domain.StatusApproved && !actor.CanManage(blog.AuthorID) {
		return nil, domain.ErrNotFound
	}
	return blog, nil
}

// RecordView counts one read of an approved post.
func (s *blogService) RecordView(ctx context.Context, id uint) error {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if blog.Status != domain.StatusApproved {
		return domain.ErrNotFound
	}
	return s.repo.IncrementViews(ctx, id)
}

// ListPosts returns posts. Anonymous callers and plain users see approved
// posts; admins see everything and may filter by status.
func (s *blogService) ListPosts(ctx context.Context, actor domain.Actor, req domain.PageRequest) (*domain.PageResult[domain.Blog], error) {
	if actor.IsAdmin() {
		return s.repo.List(ctx, req)
	}
	return s.repo.ListByStatus(ctx, domain.StatusApproved, req)
}

// ListMyPosts returns the posts written by the acting user.
func (s *blogService) ListMyPosts(ctx context.Context, actor domain.Actor, req domain.PageRequest) (*domain.PageResult[domain.Blog], error) {
	return s.repo.ListByAuthor(ctx, actor.ID, req)
}

// ListFeatured returns approved featured posts for the front page.
func (s *blogService) ListFeatured(ctx context.Context, limit int) ([]domain.Blog, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.repo.ListFeatured(ctx, limit)
}

// UpdatePost applies author edits. Approved posts are frozen; any other edit
// resets the post to pending.
func (s *blogService) UpdatePost(ctx context.Context, actor domain.Actor, id uint, upd *domain.Blog) (*domain.Blog, error) {
	if err := validatePost(upd); err != nil {
		return nil, err
	}

	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(blog.AuthorID) {
		return nil, domain.ErrForbidden
	}
	if err := blog.ResetForEdit(); err != nil {
		return nil, err
	}

	blog.Title = upd.Title
	blog.ShortDescription = upd.ShortDescription
	blog.FullContent = upd.FullContent
	blog.Image = upd.Image
	blog.ReadTime = upd.ReadTime
	if blog.ReadTime <= 0 {
		blog.ReadTime = estimateReadTime(blog.FullContent)
	}

	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// DeletePost removes a post.
func (s *blogService) DeletePost(ctx context.Context, actor domain.Actor, id uint) error {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(blog.AuthorID) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// Moderate applies an admin decision to a post.
func (s *blogService) Moderate(ctx context.Context, actor domain.Actor, id uint, decision domain.ModerationStatus, comment string) (*domain.Blog, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := blog.Decide(decision, actor.ID, comment); err != nil {
		return nil, err
	}
	if blog.Status != domain.StatusApproved {
		blog.Featured = false
	}

	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// SetFeatured toggles front-page placement. Admin only; the post must be
// approved.
func (s *blogService) SetFeatured(ctx context.Context, actor domain.Actor, id uint, featured bool) (*domain.Blog, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if featured && blog.Status != domain.StatusApproved {
		return nil, domain.NewAppError(domain.CodeConflict, "only approved posts can be featured", nil)
	}

	blog.Featured = featured
	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// ToggleLike adds or removes the acting user's like on an approved post and
// returns the new state and counter.
func (s *blogService) ToggleLike(ctx context.Context, actor domain.Actor, id uint) (bool, int64, error) {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, 0, err
	}
	if blog.Status != domain.StatusApproved {
		return false, 0, domain.ErrNotFound
	}

	liked, err := s.repo.HasLiked(ctx, id, actor.ID)
	if err != nil {
		return false, 0, err
	}

	if liked {
		if err := s.repo.RemoveLike(ctx, id, actor.ID); err != nil {
			return false, 0, err
		}
		return false, blog.LikesCount - 1, nil
	}

	if err := s.repo.AddLike(ctx, id, actor.ID); err != nil {
		return false, 0, err
	}
	return true, blog.LikesCount + 1, nil
}

// HasLiked reports whether the acting user has liked the post. Anonymous
// callers never have.
func (s *blogService) HasLiked(ctx context.Context, actor domain.Actor, id uint) (bool, error) {
	if actor.ID == 0 {
		return false, nil
	}
	return s.repo.HasLiked(ctx, id, actor.ID)
}

// AddComment attaches a comment to an approved post.
func (s *blogService) AddComment(ctx context.Context, actor domain.Actor, blogID uint, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "comment content is required", nil)
	}
	if utf8.RuneCountInString(content) > 2000 {
		return nil, domain.NewAppError(domain.CodeValidation, "comment must not exceed 2000 characters", nil)
	}

	blog, err := s.repo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.Status != domain.StatusApproved {
		return nil, domain.ErrNotFound
	}

	comment := &domain.Comment{
		BlogID:  blogID,
		UserID:  actor.ID,
		Content: content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the comments on a post.
func (s *blogService) ListComments(ctx context.Context, blogID uint, req domain.PageRequest) (*domain.PageResult[domain.Comment], error) {
	return s.repo.ListComments(ctx, blogID, req)
}

// DeleteComment removes a comment. Allowed for the comment's author, the
// author of the post it sits on, and admins.
func (s *blogService) DeleteComment(ctx context.Context, actor domain.Actor, commentID uint) error {
	comment, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if !actor.CanManage(comment.UserID) {
		blog, err := s.repo.GetByID(ctx, comment.BlogID)
		if err != nil {
			return err
		}
		if actor.ID != blog.AuthorID {
			return domain.ErrForbidden
		}
	}
	return s.repo.DeleteComment(ctx, commentID)
}

// estimateReadTime derives minutes from a word count, rounding up.
func estimateReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 1
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return minutes
}

// validatePost checks the fields every post must carry.
func validatePost(blog *domain.Blog) error {
	title := strings.TrimSpace(blog.Title)
	if title == "" {
		return domain.NewAppError(domain.CodeValidation, "title is required", nil)
	}
	if utf8.RuneCountInString(title) > 255 {
		return domain.NewAppError(domain.CodeValidation, "title must not exceed 255 characters", nil)
	}
	if strings.TrimSpace(blog.FullContent) == "" {
		return domain.NewAppError(domain.CodeValidation, "content is required", nil)
	}
	return nil
}
