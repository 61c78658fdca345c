package repositories

import (
	"context"

	"agrotrack/internal/database"
	"agrotrack/internal/logger"
	. "agrotrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ForumRepository interface {
	GetPost(ctx context.Context, id uuid.UUID) (*ForumPost, error)
	ListPosts(ctx context.Context, search string, tag string, limit int) ([]ForumPost, error)
	CreatePost(ctx context.Context, post *ForumPost) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	CreateComment(ctx context.Context, comment *ForumComment) error
	DeleteComment(ctx context.Context, id uuid.UUID) error
	GetComment(ctx context.Context, id uuid.UUID) (*ForumComment, error)
	CountPosts(ctx context.Context) (int64, error)
}

type forumRepository struct {
	db  database.DB
	log logger.Logger
}

func NewForumRepository(db database.DB) ForumRepository {
	return &forumRepository{
		db:  db,
		log: logger.New("forumRepository"),
	}
}

func (r *forumRepository) GetPost(ctx context.Context, id uuid.UUID) (*ForumPost, error) {
	log := r.log.Function("GetPost")

	var post ForumPost
	if err := r.db.SQLWithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Comments.User").
		First(&post, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get forum post", err, "postID", id)
	}

	return &post, nil
}

func (r *forumRepository) ListPosts(
	ctx context.Context,
	search string,
	tag string,
	limit int,
) ([]ForumPost, error) {
	log := r.log.Function("ListPosts")

	if limit <= 0 {
		limit = 25
	}

	query := r.db.SQLWithContext(ctx).Preload("User")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR body ILIKE ?", pattern, pattern)
	}
	if tag != "" {
		query = query.Where("tag = ?", tag)
	}

	var posts []ForumPost
	if err := query.
		Order("pinned DESC, created_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, log.Err("failed to list forum posts", err)
	}

	return posts, nil
}

func (r *forumRepository) CreatePost(ctx context.Context, post *ForumPost) error {
	log := r.log.Function("CreatePost")

	if err := r.db.SQLWithContext(ctx).Create(post).Error; err != nil {
		return log.Err("failed to create forum post", err, "userID", post.UserID)
	}

	return nil
}

func (r *forumRepository) DeletePost(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("DeletePost")

	if err := r.db.SQLWithContext(ctx).
		Where("post_id = ?", id).
		Delete(&ForumComment{}).Error; err != nil {
		return log.Err("failed to delete post comments", err, "postID", id)
	}

	if err := r.db.SQLWithContext(ctx).Delete(&ForumPost{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete forum post", err, "postID", id)
	}

	return nil
}

func (r *forumRepository) CreateComment(ctx context.Context, comment *ForumComment) error {
	log := r.log.Function("CreateComment")

	if err := r.db.SQLWithContext(ctx).Create(comment).Error; err != nil {
		return log.Err("failed to create comment", err, "postID", comment.PostID)
	}

	return nil
}

func (r *forumRepository) GetComment(ctx context.Context, id uuid.UUID) (*ForumComment, error) {
	log := r.log.Function("GetComment")

	var comment ForumComment
	if err := r.db.SQLWithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get comment", err, "commentID", id)
	}

	return &comment, nil
}

func (r *forumRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("DeleteComment")

	if err := r.db.SQLWithContext(ctx).Delete(&ForumComment{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete comment", err, "commentID", id)
	}

	return nil
}

func (r *forumRepository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.SQLWithContext(ctx).Model(&ForumPost{}).Count(&count).Error
	return count, err
}
