package store

import (
	"context"
	"errors"
	"testing"

	"github.com/lumen-social/cli/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI records calls and fails on demand.
type fakeAPI struct {
	calls []string

	failLike    error
	failSave    error
	failComment error
	failReply   error
	failNotify  error

	posts   map[string]*api.Post
	comment *api.Comment
	reply   *api.Reply

	notifications []api.CreateNotificationRequest
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{posts: make(map[string]*api.Post)}
}

func (f *fakeAPI) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeAPI) GetTimeline(ctx context.Context, userID string, page, pageSize int) (*api.PostPage, error) {
	f.record("GetTimeline")
	var posts []api.Post
	for _, p := range f.posts {
		posts = append(posts, *p)
	}
	return &api.PostPage{Posts: posts, TotalCount: len(posts), Page: page, PageSize: pageSize}, nil
}

func (f *fakeAPI) GetUserPosts(ctx context.Context, userID string, page, pageSize int) (*api.PostPage, error) {
	f.record("GetUserPosts")
	var posts []api.Post
	for _, p := range f.posts {
		if p.AuthorID == userID {
			posts = append(posts, *p)
		}
	}
	return &api.PostPage{Posts: posts, TotalCount: len(posts), Page: page, PageSize: pageSize}, nil
}

func (f *fakeAPI) GetPost(ctx context.Context, postID string) (*api.Post, error) {
	f.record("GetPost")
	p, ok := f.posts[postID]
	if !ok {
		return nil, &api.Error{StatusCode: 404, Message: "post not found"}
	}
	return p, nil
}

func (f *fakeAPI) GetPostsByTag(ctx context.Context, tag string, page, pageSize int) (*api.PostPage, error) {
	f.record("GetPostsByTag")
	return &api.PostPage{Page: page, PageSize: pageSize}, nil
}

func (f *fakeAPI) GetPostsByLocation(ctx context.Context, location string, page, pageSize int) (*api.PostPage, error) {
	f.record("GetPostsByLocation")
	return &api.PostPage{Page: page, PageSize: pageSize}, nil
}

func (f *fakeAPI) CreatePost(ctx context.Context, req api.CreatePostRequest) (*api.Post, error) {
	f.record("CreatePost")
	return &api.Post{ID: "new-post", AuthorID: "me", Description: req.Description, ImageURL: req.ImageURL}, nil
}

func (f *fakeAPI) DeletePost(ctx context.Context, postID, userID string) error {
	f.record("DeletePost")
	return nil
}

func (f *fakeAPI) LikePost(ctx context.Context, postID, userID string) error {
	f.record("LikePost")
	return f.failLike
}

func (f *fakeAPI) SavePost(ctx context.Context, postID, userID string) error {
	f.record("SavePost")
	return f.failSave
}

func (f *fakeAPI) AddComment(ctx context.Context, postID string, req api.AddCommentRequest) (*api.Comment, error) {
	f.record("AddComment")
	if f.failComment != nil {
		return nil, f.failComment
	}
	if f.comment != nil {
		return f.comment, nil
	}
	return &api.Comment{ID: "c-server", AuthorID: req.UserID, Text: req.Text}, nil
}

func (f *fakeAPI) ReplyToComment(ctx context.Context, postID, commentID string, req api.AddCommentRequest) (*api.Reply, error) {
	f.record("ReplyToComment")
	if f.failReply != nil {
		return nil, f.failReply
	}
	if f.reply != nil {
		return f.reply, nil
	}
	return &api.Reply{ID: "r-server", AuthorID: req.UserID, Text: req.Text}, nil
}

func (f *fakeAPI) LikeComment(ctx context.Context, postID, commentID, userID string) error {
	f.record("LikeComment")
	return f.failLike
}

func (f *fakeAPI) LikeReply(ctx context.Context, postID, commentID, replyID, userID string) error {
	f.record("LikeReply")
	return f.failLike
}

func (f *fakeAPI) CreateNotification(ctx context.Context, req api.CreateNotificationRequest) error {
	f.record("CreateNotification")
	if f.failNotify != nil {
		return f.failNotify
	}
	f.notifications = append(f.notifications, req)
	return nil
}

// seed puts the same post into every list plus current, the worst case
// for fan-out consistency.
func seed(s *Store, post api.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeline = []api.Post{clonePost(post)}
	s.own = []api.Post{clonePost(post)}
	s.explore = []api.Post{clonePost(post)}
	p := clonePost(post)
	s.current = &p
}

// everyView collects each copy of the post the store holds.
func everyView(t *testing.T, s *Store, postID string) []api.Post {
	t.Helper()
	var views []api.Post
	for _, list := range [][]api.Post{s.Timeline(), s.Own(), s.Explore()} {
		for _, p := range list {
			if p.ID == postID {
				views = append(views, p)
			}
		}
	}
	if cur := s.Current(); cur != nil && cur.ID == postID {
		views = append(views, *cur)
	}
	return views
}

func TestToggleLikeFansOutToEveryView(t *testing.T) {
	f := newFakeAPI()
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author"})

	require.NoError(t, s.ToggleLike(context.Background(), "p1", "me"))

	views := everyView(t, s, "p1")
	require.Len(t, views, 4)
	for _, v := range views {
		assert.Equal(t, []string{"me"}, v.Likes, "every view of the post must agree")
	}
}

func TestToggleLikeIsAToggle(t *testing.T) {
	f := newFakeAPI()
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author", Likes: []string{"me", "other"}})

	// Already liked: the toggle removes.
	require.NoError(t, s.ToggleLike(context.Background(), "p1", "me"))
	for _, v := range everyView(t, s, "p1") {
		assert.Equal(t, []string{"other"}, v.Likes)
	}

	// And back again.
	require.NoError(t, s.ToggleLike(context.Background(), "p1", "me"))
	for _, v := range everyView(t, s, "p1") {
		assert.Equal(t, []string{"other", "me"}, v.Likes)
	}
}

func TestToggleLikeRollsBackOnFailure(t *testing.T) {
	f := newFakeAPI()
	f.failLike = errors.New("server error")
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author", Likes: []string{"other"}})

	err := s.ToggleLike(context.Background(), "p1", "me")
	require.Error(t, err)

	for _, v := range everyView(t, s, "p1") {
		assert.Equal(t, []string{"other"}, v.Likes, "failed likes must be rolled back everywhere")
	}
	assert.Equal(t, "server error", s.Err())
}

func TestToggleLikeNotifiesAuthorOnFreshLike(t *testing.T) {
	f := newFakeAPI()
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author"})

	require.NoError(t, s.ToggleLike(context.Background(), "p1", "me"))

	require.Len(t, f.notifications, 1)
	n := f.notifications[0]
	assert.Equal(t, "author", n.RecipientID)
	assert.Equal(t, "me", n.SenderID)
	assert.Equal(t, "like", n.Type)
	assert.Equal(t, "p1", n.PostID)
}

func TestToggleLikeNoNotificationOnUnlikeOrOwnPost(t *testing.T) {
	f := newFakeAPI()
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "me", Likes: nil})

	// Liking your own post: no notification.
	require.NoError(t, s.ToggleLike(context.Background(), "p1", "me"))
	assert.Empty(t, f.notifications)

	// Unliking: no notification either.
	require.NoError(t, s.ToggleLike(context.Background(), "p1", "me"))
	assert.Empty(t, f.notifications)
}

func TestToggleLikeNotificationFailureDoesNotFailLike(t *testing.T) {
	f := newFakeAPI()
	f.failNotify = errors.New("notification service down")
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author"})

	require.NoError(t, s.ToggleLike(context.Background(), "p1", "me"))

	// The like stands and no error is recorded.
	for _, v := range everyView(t, s, "p1") {
		assert.Equal(t, []string{"me"}, v.Likes)
	}
	assert.Empty(t, s.Err())
}

func TestAnonymousMutationsRejectedLocally(t *testing.T) {
	f := newFakeAPI()
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author"})
	ctx := context.Background()

	assert.ErrorIs(t, s.ToggleLike(ctx, "p1", ""), ErrAnonymous)
	assert.ErrorIs(t, s.ToggleSave(ctx, "p1", ""), ErrAnonymous)
	assert.ErrorIs(t, s.AddComment(ctx, "p1", "", "hi"), ErrAnonymous)
	assert.ErrorIs(t, s.ReplyToComment(ctx, "p1", "c1", "", "hi"), ErrAnonymous)
	assert.ErrorIs(t, s.ToggleCommentLike(ctx, "p1", "c1", ""), ErrAnonymous)
	assert.ErrorIs(t, s.ToggleReplyLike(ctx, "p1", "c1", "r1", ""), ErrAnonymous)
	assert.ErrorIs(t, s.DeletePost(ctx, "p1", ""), ErrAnonymous)
	assert.ErrorIs(t, s.FetchTimeline(ctx, "", 1, 20), ErrAnonymous)

	assert.Empty(t, f.calls, "anonymous rejections must not reach the network")
	assert.Equal(t, ErrAnonymous.Error(), s.Err())
}

func TestToggleSaveRollsBackOnFailure(t *testing.T) {
	f := newFakeAPI()
	f.failSave = errors.New("server error")
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author"})

	require.Error(t, s.ToggleSave(context.Background(), "p1", "me"))
	for _, v := range everyView(t, s, "p1") {
		assert.Empty(t, v.SavedBy)
	}
}

func TestAddCommentReconcilesTempWithServerCopy(t *testing.T) {
	f := newFakeAPI()
	f.comment = &api.Comment{ID: "c-42", AuthorID: "me", Text: "nice shot"}
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author"})

	require.NoError(t, s.AddComment(context.Background(), "p1", "me", "nice shot"))

	for _, v := range everyView(t, s, "p1") {
		require.Len(t, v.Comments, 1)
		assert.Equal(t, "c-42", v.Comments[0].ID)
		assert.False(t, IsTempID(v.Comments[0].ID), "temp ids must not survive reconciliation")
	}
}

func TestAddCommentRollsBackOnFailure(t *testing.T) {
	f := newFakeAPI()
	f.failComment = errors.New("server error")
	s := New(f)
	existing := api.Comment{ID: "c-old", AuthorID: "other", Text: "first"}
	seed(s, api.Post{ID: "p1", AuthorID: "author", Comments: []api.Comment{existing}})

	require.Error(t, s.AddComment(context.Background(), "p1", "me", "doomed"))

	for _, v := range everyView(t, s, "p1") {
		require.Len(t, v.Comments, 1, "the temp comment must be removed")
		assert.Equal(t, "c-old", v.Comments[0].ID)
	}
}

func TestReplyReconciliation(t *testing.T) {
	f := newFakeAPI()
	f.reply = &api.Reply{ID: "r-9", AuthorID: "me", Text: "agreed"}
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author", Comments: []api.Comment{{ID: "c1", Text: "first"}}})

	require.NoError(t, s.ReplyToComment(context.Background(), "p1", "c1", "me", "agreed"))

	for _, v := range everyView(t, s, "p1") {
		require.Len(t, v.Comments[0].Replies, 1)
		assert.Equal(t, "r-9", v.Comments[0].Replies[0].ID)
	}
}

func TestReplyReconciliationCopiesServerLikes(t *testing.T) {
	f := newFakeAPI()
	f.reply = &api.Reply{ID: "r-9", AuthorID: "me", Text: "agreed", Likes: []string{"fan"}}
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author", Comments: []api.Comment{{ID: "c1", Text: "first"}}})

	require.NoError(t, s.ReplyToComment(context.Background(), "p1", "c1", "me", "agreed"))

	// Each view holds its own copy of the reply's like set.
	f.reply.Likes[0] = "clobbered"
	for _, v := range everyView(t, s, "p1") {
		require.Len(t, v.Comments[0].Replies, 1)
		assert.Equal(t, []string{"fan"}, v.Comments[0].Replies[0].Likes)
	}
}

func TestReplyRollsBackOnFailure(t *testing.T) {
	f := newFakeAPI()
	f.failReply = errors.New("server error")
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author", Comments: []api.Comment{{ID: "c1", Text: "first"}}})

	require.Error(t, s.ReplyToComment(context.Background(), "p1", "c1", "me", "doomed"))

	for _, v := range everyView(t, s, "p1") {
		assert.Empty(t, v.Comments[0].Replies)
	}
}

func TestToggleCommentLikeRollbackRestoresComments(t *testing.T) {
	f := newFakeAPI()
	f.failLike = errors.New("server error")
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author", Comments: []api.Comment{{ID: "c1", Likes: []string{"other"}}}})

	require.Error(t, s.ToggleCommentLike(context.Background(), "p1", "c1", "me"))

	for _, v := range everyView(t, s, "p1") {
		assert.Equal(t, []string{"other"}, v.Comments[0].Likes)
	}
}

func TestToggleReplyLike(t *testing.T) {
	f := newFakeAPI()
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author", Comments: []api.Comment{
		{ID: "c1", Replies: []api.Reply{{ID: "r1"}}},
	}})

	require.NoError(t, s.ToggleReplyLike(context.Background(), "p1", "c1", "r1", "me"))
	for _, v := range everyView(t, s, "p1") {
		assert.Equal(t, []string{"me"}, v.Comments[0].Replies[0].Likes)
	}
}

func TestCreatePostValidatesLocally(t *testing.T) {
	f := newFakeAPI()
	s := New(f)

	_, err := s.CreatePost(context.Background(), api.CreatePostRequest{ImageURL: "http://img"})
	require.Error(t, err, "description is required")

	_, err = s.CreatePost(context.Background(), api.CreatePostRequest{Description: "hi"})
	require.Error(t, err, "image is required")

	assert.Empty(t, f.calls)
	assert.NotEmpty(t, s.Err())
}

func TestCreatePostPrependsEverywhere(t *testing.T) {
	f := newFakeAPI()
	s := New(f)
	seed(s, api.Post{ID: "old", AuthorID: "me"})

	post, err := s.CreatePost(context.Background(), api.CreatePostRequest{
		Description: "sunset #nofilter", ImageURL: "http://img",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-post", post.ID)

	for _, list := range [][]api.Post{s.Timeline(), s.Own(), s.Explore()} {
		require.Len(t, list, 2)
		assert.Equal(t, "new-post", list[0].ID, "new posts go to the front")
		assert.Equal(t, "old", list[1].ID)
	}
}

func TestDeletePostRemovesEverywhereAfterConfirm(t *testing.T) {
	f := newFakeAPI()
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "me"})

	require.NoError(t, s.DeletePost(context.Background(), "p1", "me"))

	assert.Empty(t, s.Timeline())
	assert.Empty(t, s.Own())
	assert.Empty(t, s.Explore())
	assert.Nil(t, s.Current(), "deleting the open post clears it")
}

func TestCancelledContextDiscardsResponse(t *testing.T) {
	f := newFakeAPI()
	f.posts["p1"] = &api.Post{ID: "p1", AuthorID: "author"}
	s := New(f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.FetchPost(ctx, "p1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, s.Current(), "responses for dead scopes must not land in state")

	err = s.FetchTimeline(ctx, "me", 1, 20)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.Timeline())
}

func TestFetchTimelineMirrorsExplore(t *testing.T) {
	f := newFakeAPI()
	f.posts["p1"] = &api.Post{ID: "p1", AuthorID: "author"}
	s := New(f)

	require.NoError(t, s.FetchTimeline(context.Background(), "me", 1, 20))

	assert.Len(t, s.Timeline(), 1)
	assert.Len(t, s.Explore(), 1)
	assert.Empty(t, s.Own())
}

func TestAccessorsReturnCopies(t *testing.T) {
	f := newFakeAPI()
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author", Likes: []string{"other"}})

	list := s.Timeline()
	list[0].Likes[0] = "mutated"
	list[0].ID = "mutated"

	fresh := s.Timeline()
	assert.Equal(t, "p1", fresh[0].ID)
	assert.Equal(t, []string{"other"}, fresh[0].Likes, "callers must not be able to reach store internals")

	cur := s.Current()
	cur.Likes[0] = "mutated"
	assert.Equal(t, []string{"other"}, s.Current().Likes)
}

func TestResetClearsEverything(t *testing.T) {
	f := newFakeAPI()
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author"})
	s.fail(errors.New("stale"))

	s.Reset()

	assert.Empty(t, s.Timeline())
	assert.Empty(t, s.Own())
	assert.Empty(t, s.Explore())
	assert.Nil(t, s.Current())
	assert.Empty(t, s.Err())
}

func TestErrChannelClearedOnSuccess(t *testing.T) {
	f := newFakeAPI()
	f.failLike = errors.New("first attempt fails")
	s := New(f)
	seed(s, api.Post{ID: "p1", AuthorID: "author"})

	require.Error(t, s.ToggleLike(context.Background(), "p1", "me"))
	assert.NotEmpty(t, s.Err())

	f.failLike = nil
	require.NoError(t, s.ToggleLike(context.Background(), "p1", "me"))
	assert.Empty(t, s.Err(), "a successful operation clears the error channel")
}

func TestIsTempID(t *testing.T) {
	assert.True(t, IsTempID(tempID()))
	assert.True(t, IsTempID("temp-123"))
	assert.False(t, IsTempID("c-42"))
	assert.False(t, IsTempID("temp-"))
	assert.False(t, IsTempID(""))
}
