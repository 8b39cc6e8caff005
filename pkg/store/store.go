// Package store holds the client's shared view of posts: the timeline,
// the user's own posts, the explore list, and the currently open post.
// Every mutation fans out to all views that hold the affected post so no
// list lags another, and every optimistic mutation snapshots the state
// it touches and restores it when the server rejects the call.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/logger"
)

// ErrAnonymous rejects mutations attempted without a user id, before
// any network call is made.
var ErrAnonymous = errors.New("not authenticated")

// API is the slice of the remote API the store drives. The default
// delegates to the api package; tests substitute a fake.
type API interface {
	GetTimeline(ctx context.Context, userID string, page, pageSize int) (*api.PostPage, error)
	GetUserPosts(ctx context.Context, userID string, page, pageSize int) (*api.PostPage, error)
	GetPost(ctx context.Context, postID string) (*api.Post, error)
	GetPostsByTag(ctx context.Context, tag string, page, pageSize int) (*api.PostPage, error)
	GetPostsByLocation(ctx context.Context, location string, page, pageSize int) (*api.PostPage, error)
	CreatePost(ctx context.Context, req api.CreatePostRequest) (*api.Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
	LikePost(ctx context.Context, postID, userID string) error
	SavePost(ctx context.Context, postID, userID string) error
	AddComment(ctx context.Context, postID string, req api.AddCommentRequest) (*api.Comment, error)
	ReplyToComment(ctx context.Context, postID, commentID string, req api.AddCommentRequest) (*api.Reply, error)
	LikeComment(ctx context.Context, postID, commentID, userID string) error
	LikeReply(ctx context.Context, postID, commentID, replyID, userID string) error
	CreateNotification(ctx context.Context, req api.CreateNotificationRequest) error
}

type apiClient struct{}

func (apiClient) GetTimeline(ctx context.Context, userID string, page, pageSize int) (*api.PostPage, error) {
	return api.GetTimeline(ctx, userID, page, pageSize)
}
func (apiClient) GetUserPosts(ctx context.Context, userID string, page, pageSize int) (*api.PostPage, error) {
	return api.GetUserPosts(ctx, userID, page, pageSize)
}
func (apiClient) GetPost(ctx context.Context, postID string) (*api.Post, error) {
	return api.GetPost(ctx, postID)
}
func (apiClient) GetPostsByTag(ctx context.Context, tag string, page, pageSize int) (*api.PostPage, error) {
	return api.GetPostsByTag(ctx, tag, page, pageSize)
}
func (apiClient) GetPostsByLocation(ctx context.Context, location string, page, pageSize int) (*api.PostPage, error) {
	return api.GetPostsByLocation(ctx, location, page, pageSize)
}
func (apiClient) CreatePost(ctx context.Context, req api.CreatePostRequest) (*api.Post, error) {
	return api.CreatePost(ctx, req)
}
func (apiClient) DeletePost(ctx context.Context, postID, userID string) error {
	return api.DeletePost(ctx, postID, userID)
}
func (apiClient) LikePost(ctx context.Context, postID, userID string) error {
	return api.LikePost(ctx, postID, userID)
}
func (apiClient) SavePost(ctx context.Context, postID, userID string) error {
	return api.SavePost(ctx, postID, userID)
}
func (apiClient) AddComment(ctx context.Context, postID string, req api.AddCommentRequest) (*api.Comment, error) {
	return api.AddComment(ctx, postID, req)
}
func (apiClient) ReplyToComment(ctx context.Context, postID, commentID string, req api.AddCommentRequest) (*api.Reply, error) {
	return api.ReplyToComment(ctx, postID, commentID, req)
}
func (apiClient) LikeComment(ctx context.Context, postID, commentID, userID string) error {
	return api.LikeComment(ctx, postID, commentID, userID)
}
func (apiClient) LikeReply(ctx context.Context, postID, commentID, replyID, userID string) error {
	return api.LikeReply(ctx, postID, commentID, replyID, userID)
}
func (apiClient) CreateNotification(ctx context.Context, req api.CreateNotificationRequest) error {
	return api.CreateNotification(ctx, req)
}

// Store is the post collection store.
type Store struct {
	mu       sync.Mutex
	api      API
	timeline []api.Post
	own      []api.Post
	explore  []api.Post
	current  *api.Post
	loading  bool
	lastErr  string
}

// New builds a store around an API implementation.
func New(a API) *Store {
	return &Store{api: a}
}

// Default builds a store wired to the real API.
func Default() *Store {
	return New(apiClient{})
}

// Reset clears all lists, the current post, and the error channel.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeline = nil
	s.own = nil
	s.explore = nil
	s.current = nil
	s.loading = false
	s.lastErr = ""
}

// Timeline returns a copy of the timeline list.
func (s *Store) Timeline() []api.Post { return s.copyList(&s.timeline) }

// Own returns a copy of the user's own posts list.
func (s *Store) Own() []api.Post { return s.copyList(&s.own) }

// Explore returns a copy of the explore list.
func (s *Store) Explore() []api.Post { return s.copyList(&s.explore) }

// Current returns a copy of the currently open post, nil when none.
func (s *Store) Current() *api.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	post := clonePost(*s.current)
	return &post
}

// Loading reports whether a fetch or create is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recorded error message, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearErr clears the recorded error message.
func (s *Store) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// FetchTimeline replaces the timeline wholesale with the fetched page
// and mirrors it into explore. No merging.
func (s *Store) FetchTimeline(ctx context.Context, userID string, page, pageSize int) error {
	if userID == "" {
		return s.fail(ErrAnonymous)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.GetTimeline(ctx, userID, page, pageSize)
	if ctx.Err() != nil {
		// The caller's scope is gone; drop the response on the floor.
		return ctx.Err()
	}
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.timeline = clonePosts(resp.Posts)
	s.explore = clonePosts(resp.Posts)
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// FetchUserPosts replaces the own list with posts authored by userID.
func (s *Store) FetchUserPosts(ctx context.Context, userID string, page, pageSize int) error {
	if userID == "" {
		return s.fail(ErrAnonymous)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.GetUserPosts(ctx, userID, page, pageSize)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.own = clonePosts(resp.Posts)
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// FetchPost loads a single post into current.
func (s *Store) FetchPost(ctx context.Context, postID string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	post, err := s.api.GetPost(ctx, postID)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	p := clonePost(*post)
	s.current = &p
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// FetchByTag replaces the explore list with posts carrying a hashtag.
func (s *Store) FetchByTag(ctx context.Context, tag string, page, pageSize int) error {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.GetPostsByTag(ctx, tag, page, pageSize)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.explore = clonePosts(resp.Posts)
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// FetchByLocation replaces the explore list with posts from a place.
func (s *Store) FetchByLocation(ctx context.Context, location string, page, pageSize int) error {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.GetPostsByLocation(ctx, location, page, pageSize)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.explore = clonePosts(resp.Posts)
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// CreatePost validates locally, publishes, and prepends the confirmed
// post to every list. Unlike the other mutations the error is returned
// to the caller as well as recorded, so UIs can branch on it.
func (s *Store) CreatePost(ctx context.Context, req api.CreatePostRequest) (*api.Post, error) {
	if req.Description == "" {
		return nil, s.fail(errors.New("a post needs a description"))
	}
	if req.ImageURL == "" {
		return nil, s.fail(errors.New("a post needs an image"))
	}

	s.setLoading(true)
	defer s.setLoading(false)

	post, err := s.api.CreatePost(ctx, req)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.timeline = append([]api.Post{clonePost(*post)}, s.timeline...)
	s.own = append([]api.Post{clonePost(*post)}, s.own...)
	s.explore = append([]api.Post{clonePost(*post)}, s.explore...)
	s.lastErr = ""
	s.mu.Unlock()

	created := clonePost(*post)
	return &created, nil
}

// DeletePost removes the post from every list only after the server
// confirms. No optimistic removal.
func (s *Store) DeletePost(ctx context.Context, postID, userID string) error {
	if userID == "" {
		return s.fail(ErrAnonymous)
	}

	err := s.api.DeletePost(ctx, postID, userID)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.timeline = dropPost(s.timeline, postID)
	s.own = dropPost(s.own, postID)
	s.explore = dropPost(s.explore, postID)
	if s.current != nil && s.current.ID == postID {
		s.current = nil
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// ToggleLike optimistically toggles userID in the post's like set across
// every view, then confirms with the server; the snapshot is restored if
// the call fails. A fresh like on someone else's post also fires a
// best-effort notification whose failure never surfaces.
func (s *Store) ToggleLike(ctx context.Context, postID, userID string) error {
	if userID == "" {
		return s.fail(ErrAnonymous)
	}

	snap := s.snapshot()

	var liked bool
	var authorID string
	s.applyAll(postID, func(p *api.Post) {
		authorID = p.AuthorID
		if contains(p.Likes, userID) {
			p.Likes = remove(p.Likes, userID)
			liked = false
		} else {
			p.Likes = append(p.Likes, userID)
			liked = true
		}
	})

	err := s.api.LikePost(ctx, postID, userID)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.restore(snap)
		return s.fail(err)
	}

	if liked && authorID != "" && authorID != userID {
		// Secondary side effect: its failure must not fail the like.
		if nerr := s.api.CreateNotification(ctx, api.CreateNotificationRequest{
			RecipientID: authorID,
			SenderID:    userID,
			Type:        "like",
			PostID:      postID,
		}); nerr != nil {
			logger.Warn("Like notification failed", "post_id", postID, "error", nerr)
		}
	}

	s.clearErr()
	return nil
}

// ToggleSave is ToggleLike's contract applied to the saved-by set. Saves
// are private, so no notification is sent.
func (s *Store) ToggleSave(ctx context.Context, postID, userID string) error {
	if userID == "" {
		return s.fail(ErrAnonymous)
	}

	snap := s.snapshot()

	s.applyAll(postID, func(p *api.Post) {
		if contains(p.SavedBy, userID) {
			p.SavedBy = remove(p.SavedBy, userID)
		} else {
			p.SavedBy = append(p.SavedBy, userID)
		}
	})

	err := s.api.SavePost(ctx, postID, userID)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.restore(snap)
		return s.fail(err)
	}

	s.clearErr()
	return nil
}

// AddComment appends a temporary comment immediately, then reconciles it
// with the server's copy. The temporary comment is removed if the call
// fails.
func (s *Store) AddComment(ctx context.Context, postID, userID, text string) error {
	if userID == "" {
		return s.fail(ErrAnonymous)
	}

	tmp := tempID()
	s.applyAll(postID, func(p *api.Post) {
		p.Comments = append(p.Comments, api.Comment{
			ID:        tmp,
			AuthorID:  userID,
			Text:      text,
			CreatedAt: time.Now(),
		})
	})

	comment, err := s.api.AddComment(ctx, postID, api.AddCommentRequest{UserID: userID, Text: text})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.applyAll(postID, func(p *api.Post) {
			p.Comments = dropComment(p.Comments, tmp)
		})
		return s.fail(err)
	}

	s.applyAll(postID, func(p *api.Post) {
		for i := range p.Comments {
			if p.Comments[i].ID == tmp {
				p.Comments[i] = cloneComment(*comment)
			}
		}
	})

	s.clearErr()
	return nil
}

// ReplyToComment is AddComment's contract nested under a comment.
func (s *Store) ReplyToComment(ctx context.Context, postID, commentID, userID, text string) error {
	if userID == "" {
		return s.fail(ErrAnonymous)
	}

	tmp := tempID()
	s.applyComment(postID, commentID, func(c *api.Comment) {
		c.Replies = append(c.Replies, api.Reply{
			ID:        tmp,
			AuthorID:  userID,
			Text:      text,
			CreatedAt: time.Now(),
		})
	})

	reply, err := s.api.ReplyToComment(ctx, postID, commentID, api.AddCommentRequest{UserID: userID, Text: text})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.applyComment(postID, commentID, func(c *api.Comment) {
			c.Replies = dropReply(c.Replies, tmp)
		})
		return s.fail(err)
	}

	s.applyComment(postID, commentID, func(c *api.Comment) {
		for i := range c.Replies {
			if c.Replies[i].ID == tmp {
				c.Replies[i] = cloneReply(*reply)
			}
		}
	})

	s.clearErr()
	return nil
}

// ToggleCommentLike optimistically toggles userID in a comment's like
// set, restoring the snapshot on failure.
func (s *Store) ToggleCommentLike(ctx context.Context, postID, commentID, userID string) error {
	if userID == "" {
		return s.fail(ErrAnonymous)
	}

	snap := s.snapshot()

	s.applyComment(postID, commentID, func(c *api.Comment) {
		if contains(c.Likes, userID) {
			c.Likes = remove(c.Likes, userID)
		} else {
			c.Likes = append(c.Likes, userID)
		}
	})

	err := s.api.LikeComment(ctx, postID, commentID, userID)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.restore(snap)
		return s.fail(err)
	}

	s.clearErr()
	return nil
}

// ToggleReplyLike is ToggleCommentLike's contract for a reply.
func (s *Store) ToggleReplyLike(ctx context.Context, postID, commentID, replyID, userID string) error {
	if userID == "" {
		return s.fail(ErrAnonymous)
	}

	snap := s.snapshot()

	s.applyComment(postID, commentID, func(c *api.Comment) {
		for i := range c.Replies {
			if c.Replies[i].ID != replyID {
				continue
			}
			r := &c.Replies[i]
			if contains(r.Likes, userID) {
				r.Likes = remove(r.Likes, userID)
			} else {
				r.Likes = append(r.Likes, userID)
			}
		}
	})

	err := s.api.LikeReply(ctx, postID, commentID, replyID, userID)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.restore(snap)
		return s.fail(err)
	}

	s.clearErr()
	return nil
}

// applyAll runs fn against every copy of the post the store holds: each
// named list plus current. This is the fan-out that keeps all views of
// one post identical.
func (s *Store) applyAll(postID string, fn func(*api.Post)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range [][]api.Post{s.timeline, s.own, s.explore} {
		for i := range list {
			if list[i].ID == postID {
				fn(&list[i])
			}
		}
	}
	if s.current != nil && s.current.ID == postID {
		fn(s.current)
	}
}

// applyComment fans fn out to the comment in every view of the post.
func (s *Store) applyComment(postID, commentID string, fn func(*api.Comment)) {
	s.applyAll(postID, func(p *api.Post) {
		for i := range p.Comments {
			if p.Comments[i].ID == commentID {
				fn(&p.Comments[i])
			}
		}
	})
}

type snapshot struct {
	timeline []api.Post
	own      []api.Post
	explore  []api.Post
	current  *api.Post
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		timeline: clonePosts(s.timeline),
		own:      clonePosts(s.own),
		explore:  clonePosts(s.explore),
	}
	if s.current != nil {
		p := clonePost(*s.current)
		snap.current = &p
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeline = snap.timeline
	s.own = snap.own
	s.explore = snap.explore
	s.current = snap.current
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *Store) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	return err
}

func (s *Store) clearErr() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Store) copyList(list *[]api.Post) []api.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePosts(*list)
}

func tempID() string {
	return fmt.Sprintf("temp-%d", time.Now().UnixNano())
}

// IsTempID reports whether id is a client-generated placeholder that has
// not been confirmed by the server.
func IsTempID(id string) bool {
	return len(id) > 5 && id[:5] == "temp-"
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func dropPost(list []api.Post, postID string) []api.Post {
	out := list[:0]
	for _, p := range list {
		if p.ID != postID {
			out = append(out, p)
		}
	}
	return out
}

func dropComment(list []api.Comment, commentID string) []api.Comment {
	out := list[:0]
	for _, c := range list {
		if c.ID != commentID {
			out = append(out, c)
		}
	}
	return out
}

func dropReply(list []api.Reply, replyID string) []api.Reply {
	out := list[:0]
	for _, r := range list {
		if r.ID != replyID {
			out = append(out, r)
		}
	}
	return out
}

func clonePosts(posts []api.Post) []api.Post {
	out := make([]api.Post, len(posts))
	for i := range posts {
		out[i] = clonePost(posts[i])
	}
	return out
}

func clonePost(p api.Post) api.Post {
	p.Likes = append([]string(nil), p.Likes...)
	p.SavedBy = append([]string(nil), p.SavedBy...)
	p.TaggedUsers = append([]api.TaggedUser(nil), p.TaggedUsers...)
	if p.Location != nil {
		loc := *p.Location
		p.Location = &loc
	}
	comments := make([]api.Comment, len(p.Comments))
	for i := range p.Comments {
		comments[i] = cloneComment(p.Comments[i])
	}
	p.Comments = comments
	return p
}

func cloneReply(r api.Reply) api.Reply {
	r.Likes = append([]string(nil), r.Likes...)
	return r
}

func cloneComment(c api.Comment) api.Comment {
	c.Likes = append([]string(nil), c.Likes...)
	replies := make([]api.Reply, len(c.Replies))
	for i := range c.Replies {
		r := c.Replies[i]
		r.Likes = append([]string(nil), r.Likes...)
		replies[i] = r
	}
	c.Replies = replies
	return c
}
