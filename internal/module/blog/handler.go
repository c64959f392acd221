package blog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zharkyn/carmarket/internal/domain"
	"github.com/zharkyn/carmarket/internal/middleware"
	"github.com/zharkyn/carmarket/internal/pkg"
)

// BlogHandler handles REST API requests for blog posts.
type BlogHandler struct {
	svc domain.BlogService
}

// NewHandler creates a new BlogHandler with the given service.
func NewHandler(svc domain.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

// actorOrAnonymous returns the current actor, or the zero actor for
// unauthenticated requests. Read endpoints serve both.
func actorOrAnonymous(c *gin.Context) domain.Actor {
	actor, _ := middleware.CurrentActor(c)
	return actor
}

// Create handles POST /api/v1/blogs.
func (h *BlogHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	var req PostRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	blog, err := h.svc.SubmitPost(c.Request.Context(), actor, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "post submitted for moderation",
		Data:    blog,
	})
}

// Get handles GET /api/v1/blogs/:id.
func (h *BlogHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	actor := actorOrAnonymous(c)
	blog, err := h.svc.GetPost(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	liked, err := h.svc.HasLiked(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	// The detail view ships the first page of comments; older pages come
	// from GET /blogs/:id/comments.
	comments, err := h.svc.ListComments(c.Request.Context(), id, domain.PageRequest{Page: 1, PageSize: 20})
	if err != nil {
		pkg.Error(c, err)
		return
	}
	blog.Comments = comments.Items

	pkg.Success(c, PostDetail{Blog: blog, UserHasLiked: liked})
}

// View handles POST /api/v1/blogs/:id/view.
func (h *BlogHandler) View(c *gin.Context) {
	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.RecordView(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// List handles GET /api/v1/blogs.
func (h *BlogHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListPosts(c.Request.Context(), actorOrAnonymous(c), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// ListMine handles GET /api/v1/blogs/my.
func (h *BlogHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListMyPosts(c.Request.Context(), actor, req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// ListFeatured handles GET /api/v1/blogs/featured.
func (h *BlogHandler) ListFeatured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	posts, err := h.svc.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, posts)
}

// Update handles PUT /api/v1/blogs/:id.
func (h *BlogHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req PostRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	blog, err := h.svc.UpdatePost(c.Request.Context(), actor, id, req.toDomain())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, blog)
}

// Delete handles DELETE /api/v1/blogs/:id.
func (h *BlogHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeletePost(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// Moderate handles PUT /api/v1/blogs/:id/moderate. Admin only.
func (h *BlogHandler) Moderate(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req ModerateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	blog, err := h.svc.Moderate(c.Request.Context(), actor, id, domain.ModerationStatus(req.Status), req.Comment)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, blog)
}

// Feature handles POST /api/v1/blogs/:id/feature. Admin only.
func (h *BlogHandler) Feature(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req FeatureRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	blog, err := h.svc.SetFeatured(c.Request.Context(), actor, id, *req.Featured)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, blog)
}

// ToggleLike handles POST /api/v1/blogs/:id/like.
func (h *BlogHandler) ToggleLike(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	liked, count, err := h.svc.ToggleLike(c.Request.Context(), actor, id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, LikeResponse{Liked: liked, LikesCount: count})
}

// AddComment handles POST /api/v1/blogs/:id/comments.
func (h *BlogHandler) AddComment(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req CommentRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), actor, id, req.Content)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, comment)
}

// ListComments handles GET /api/v1/blogs/:id/comments.
func (h *BlogHandler) ListComments(c *gin.Context) {
	id, err := pkg.ParseIDParam(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListComments(c.Request.Context(), id, req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// DeleteComment handles DELETE /api/v1/blogs/comments/:commentId.
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	commentID, err := pkg.ParseIDParam(c, "commentId")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeleteComment(c.Request.Context(), actor, commentID); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}
