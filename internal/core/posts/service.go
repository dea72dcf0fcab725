package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"miniblog/internal/core/users"
)

type postService struct {
	repo    Repository
	userDir UserDirectory
	logger  *slog.Logger
}

// NewPostService creates a new post service.
// userDir resolves stored user ids to display attributes at read time.
func NewPostService(repo Repository, userDir UserDirectory, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:    repo,
		userDir: userDir,
		logger:  logger,
	}
}

// ListPosts returns every post newest first with all user references
// resolved. The resolution is a single batch user lookup across the
// whole result set, merged in memory.
func (s *postService) ListPosts(ctx context.Context) ([]*PostView, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	refs, err := s.resolveUsers(ctx, posts)
	if err != nil {
		return nil, err
	}

	views := make([]*PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, buildView(post, refs))
	}
	return views, nil
}

func (s *postService) GetPost(ctx context.Context, id string) (*PostView, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, post)
}

func (s *postService) CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (*PostView, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, NewValidationError("text", "Please provide post text")
	}
	if authorID == "" {
		return nil, fmt.Errorf("no authenticated user for post creation")
	}

	post := &Post{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Text:     req.Text,
		ImageURL: req.ImageURL,
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created", "post", created.ID, "author", authorID)

	return s.resolveOne(ctx, created)
}

// ToggleLike flips the caller's like on a post. Membership checking
// and the write happen inside one repository transaction, so two
// concurrent toggles cannot produce a duplicate like entry.
func (s *postService) ToggleLike(ctx context.Context, postID, userID string) (*PostView, error) {
	liked, err := s.repo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("like toggled", "post", postID, "user", userID, "liked", liked)

	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, post)
}

func (s *postService) AddComment(ctx context.Context, postID, userID, text string) (*PostView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, NewValidationError("text", "Please provide comment text")
	}

	comment := &Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}
	if _, err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, post)
}

func (s *postService) resolveOne(ctx context.Context, post *Post) (*PostView, error) {
	refs, err := s.resolveUsers(ctx, []*Post{post})
	if err != nil {
		return nil, err
	}
	return buildView(post, refs), nil
}

// resolveUsers batch-fetches every user referenced by the given posts:
// authors, likers and commenters. One query regardless of result size.
func (s *postService) resolveUsers(ctx context.Context, posts []*Post) (map[string]UserRef, error) {
	var ids []string
	for _, post := range posts {
		ids = append(ids, post.AuthorID)
		for _, like := range post.Likes {
			ids = append(ids, like.UserID)
		}
		for _, comment := range post.Comments {
			ids = append(ids, comment.UserID)
		}
	}
	ids = lo.Uniq(ids)

	found, err := s.userDir.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user references: %w", err)
	}

	refs := make(map[string]UserRef, len(found))
	for id, user := range found {
		refs[id] = UserRef{ID: user.ID, Name: user.Name}
	}
	return refs, nil
}

func buildView(post *Post, refs map[string]UserRef) *PostView {
	view := &PostView{
		ID:        post.ID,
		Text:      post.Text,
		ImageURL:  post.ImageURL,
		CreatedAt: post.CreatedAt,
		User:      refFor(post.AuthorID, refs),
		Likes: lo.Map(post.Likes, func(like Like, _ int) LikeView {
			return LikeView{
				User:      refFor(like.UserID, refs),
				CreatedAt: like.CreatedAt,
			}
		}),
		Comments: lo.Map(post.Comments, func(comment Comment, _ int) CommentView {
			return CommentView{
				User:      refFor(comment.UserID, refs),
				Text:      comment.Text,
				CreatedAt: comment.CreatedAt,
			}
		}),
	}
	return view
}

// refFor falls back to a bare id when the referenced user row is gone.
func refFor(id string, refs map[string]UserRef) UserRef {
	if ref, ok := refs[id]; ok {
		return ref
	}
	return UserRef{ID: id}
}

// users.Repository satisfies the narrow directory slice the service needs.
var _ UserDirectory = users.Repository(nil)
