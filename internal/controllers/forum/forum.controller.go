package forumController

import (
	"context"
	"errors"

	"agrotrack/internal/events"
	"agrotrack/internal/logger"
	. "agrotrack/internal/models"
	"agrotrack/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrEmptyPost    = errors.New("post title and body are required")
	ErrEmptyComment = errors.New("comment body is required")
	ErrNotOwner     = errors.New("not the author")
)

type ForumController struct {
	forumRepo repositories.ForumRepository
	eventBus  *events.EventBus
	log       logger.Logger
}

type ForumControllerInterface interface {
	GetPost(ctx context.Context, postID uuid.UUID) (*ForumPost, error)
	ListPosts(ctx context.Context, search string, tag string, limit int) ([]ForumPost, error)
	CreatePost(ctx context.Context, user *User, request ForumPostRequest) (*ForumPost, error)
	DeletePost(ctx context.Context, user *User, postID uuid.UUID) error
	CreateComment(ctx context.Context, user *User, postID uuid.UUID, request ForumCommentRequest) (*ForumComment, error)
	DeleteComment(ctx context.Context, user *User, commentID uuid.UUID) error
}

func New(repos repositories.Repository, eventBus *events.EventBus) ForumControllerInterface {
	return &ForumController{
		forumRepo: repos.Forum,
		eventBus:  eventBus,
		log:       logger.New("forumController"),
	}
}

func (c *ForumController) GetPost(ctx context.Context, postID uuid.UUID) (*ForumPost, error) {
	log := c.log.TraceFromContext(ctx).Function("GetPost")

	post, err := c.forumRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, log.Err("failed to get post", err, "postID", postID)
	}

	return post, nil
}

func (c *ForumController) ListPosts(
	ctx context.Context,
	search string,
	tag string,
	limit int,
) ([]ForumPost, error) {
	log := c.log.TraceFromContext(ctx).Function("ListPosts")

	posts, err := c.forumRepo.ListPosts(ctx, search, tag, limit)
	if err != nil {
		return nil, log.Err("failed to list posts", err)
	}

	return posts, nil
}

func (c *ForumController) CreatePost(
	ctx context.Context,
	user *User,
	request ForumPostRequest,
) (*ForumPost, error) {
	log := c.log.TraceFromContext(ctx).Function("CreatePost")

	if request.Title == "" || request.Body == "" {
		return nil, ErrEmptyPost
	}

	post := &ForumPost{
		UserID: user.ID,
		Title:  request.Title,
		Body:   request.Body,
		Tag:    request.Tag,
	}

	if err := c.forumRepo.CreatePost(ctx, post); err != nil {
		return nil, log.Err("failed to create post", err, "userID", user.ID)
	}

	if err := c.eventBus.Publish(events.FORUM_CHANNEL, events.Event{
		Type: events.FORUM_POST_CREATED,
		Data: map[string]any{
			"postId": post.ID.String(),
			"title":  post.Title,
		},
	}); err != nil {
		log.Warn("failed to publish forum event", "postID", post.ID, "error", err)
	}

	log.Info("forum post created", "postID", post.ID, "userID", user.ID)
	return post, nil
}

// DeletePost allows the author or an admin to remove a post and its comments.
func (c *ForumController) DeletePost(ctx context.Context, user *User, postID uuid.UUID) error {
	log := c.log.TraceFromContext(ctx).Function("DeletePost")

	post, err := c.forumRepo.GetPost(ctx, postID)
	if err != nil {
		return log.Err("failed to get post", err, "postID", postID)
	}

	if post.UserID != user.ID && !user.IsAdmin {
		return ErrNotOwner
	}

	if err := c.forumRepo.DeletePost(ctx, postID); err != nil {
		return log.Err("failed to delete post", err, "postID", postID)
	}

	log.Info("forum post deleted", "postID", postID, "byUserID", user.ID)
	return nil
}

func (c *ForumController) CreateComment(
	ctx context.Context,
	user *User,
	postID uuid.UUID,
	request ForumCommentRequest,
) (*ForumComment, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateComment")

	if request.Body == "" {
		return nil, ErrEmptyComment
	}

	if _, err := c.forumRepo.GetPost(ctx, postID); err != nil {
		return nil, log.Err("failed to get post", err, "postID", postID)
	}

	comment := &ForumComment{
		PostID: postID,
		UserID: user.ID,
		Body:   request.Body,
	}

	if err := c.forumRepo.CreateComment(ctx, comment); err != nil {
		return nil, log.Err("failed to create comment", err, "postID", postID)
	}

	log.Info("forum comment created", "commentID", comment.ID, "postID", postID)
	return comment, nil
}

func (c *ForumController) DeleteComment(ctx context.Context, user *User, commentID uuid.UUID) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteComment")

	comment, err := c.forumRepo.GetComment(ctx, commentID)
	if err != nil {
		return log.Err("failed to get comment", err, "commentID", commentID)
	}

	if comment.UserID != user.ID && !user.IsAdmin {
		return ErrNotOwner
	}

	if err := c.forumRepo.DeleteComment(ctx, commentID); err != nil {
		return log.Err("failed to delete comment", err, "commentID", commentID)
	}

	log.Info("forum comment deleted", "commentID", commentID, "byUserID", user.ID)
	return nil
}
