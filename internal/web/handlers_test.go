package web_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pressfeed/internal/api/middleware"
	"Pressfeed/internal/api/routes"
	"Pressfeed/internal/core/feeds"
	"Pressfeed/internal/core/groups"
	"Pressfeed/internal/core/posts"
	"Pressfeed/internal/core/sessions"
	"Pressfeed/internal/core/users"
	"Pressfeed/internal/web"
)

// memoryStore is an in-memory stand-in for the postgres repositories so the
// handlers can be exercised through the real router.
type memoryStore struct {
	usersByID    map[int64]*users.User
	groups       map[string]*groups.Group
	postsByID    map[int64]*posts.Post
	sessionsByID map[string]*sessions.Session
	nextUserID   int64
	nextGroupID  int64
	nextPostID   int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		usersByID:    make(map[int64]*users.User),
		groups:       make(map[string]*groups.Group),
		postsByID:    make(map[int64]*posts.Post),
		sessionsByID: make(map[string]*sessions.Session),
	}
}

func (m *memoryStore) Create(ctx context.Context, user *users.User) (*users.User, error) {
	for _, u := range m.usersByID {
		if u.Username == user.Username {
			return nil, users.ErrUsernameTaken
		}
	}
	m.nextUserID++
	user.ID = m.nextUserID
	stored := *user
	m.usersByID[user.ID] = &stored
	out := stored
	return &out, nil
}

func (m *memoryStore) GetByID(ctx context.Context, id int64) (*users.User, error) {
	if u, ok := m.usersByID[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, users.ErrUserNotFound
}

func (m *memoryStore) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	for _, u := range m.usersByID {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, users.ErrUserNotFound
}

type groupStore struct{ m *memoryStore }

func (g groupStore) Create(ctx context.Context, group *groups.Group) (*groups.Group, error) {
	if _, ok := g.m.groups[group.Slug]; ok {
		return nil, groups.ErrSlugTaken
	}
	g.m.nextGroupID++
	group.ID = g.m.nextGroupID
	stored := *group
	g.m.groups[group.Slug] = &stored
	out := stored
	return &out, nil
}

func (g groupStore) GetBySlug(ctx context.Context, slug string) (*groups.Group, error) {
	if grp, ok := g.m.groups[slug]; ok {
		out := *grp
		return &out, nil
	}
	return nil, groups.ErrGroupNotFound
}

func (g groupStore) List(ctx context.Context) ([]*groups.Group, error) {
	list := make([]*groups.Group, 0, len(g.m.groups))
	for _, grp := range g.m.groups {
		out := *grp
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Title < list[j].Title })
	return list, nil
}

type postStore struct{ m *memoryStore }

func (p postStore) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	author, ok := p.m.usersByID[post.AuthorID]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	p.m.nextPostID++
	post.ID = p.m.nextPostID
	post.AuthorUsername = author.Username
	stored := *post
	p.m.postsByID[post.ID] = &stored
	out := stored
	return &out, nil
}

func (p postStore) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	if post, ok := p.m.postsByID[id]; ok {
		out := *post
		return &out, nil
	}
	return nil, posts.ErrPostNotFound
}

func (p postStore) Update(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	if _, ok := p.m.postsByID[post.ID]; !ok {
		return nil, posts.ErrPostNotFound
	}
	stored := *post
	p.m.postsByID[post.ID] = &stored
	out := stored
	return &out, nil
}

func (p postStore) list(match func(*posts.Post) bool) []*posts.Post {
	var list []*posts.Post
	for _, post := range p.m.postsByID {
		if match(post) {
			out := *post
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].PublishedAt.Equal(list[j].PublishedAt) {
			return list[i].PublishedAt.After(list[j].PublishedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

func (p postStore) ListAll(ctx context.Context) ([]*posts.Post, error) {
	return p.list(func(*posts.Post) bool { return true }), nil
}

func (p postStore) ListByGroupID(ctx context.Context, groupID int64) ([]*posts.Post, error) {
	return p.list(func(post *posts.Post) bool {
		return post.GroupID != nil && *post.GroupID == groupID
	}), nil
}

func (p postStore) ListByAuthorID(ctx context.Context, authorID int64) ([]*posts.Post, error) {
	return p.list(func(post *posts.Post) bool { return post.AuthorID == authorID }), nil
}

type sessionStore struct{ m *memoryStore }

func (s sessionStore) Create(ctx context.Context, session *sessions.Session) error {
	stored := *session
	s.m.sessionsByID[session.ID] = &stored
	return nil
}

func (s sessionStore) GetByID(ctx context.Context, id string) (*sessions.Session, error) {
	if sess, ok := s.m.sessionsByID[id]; ok {
		out := *sess
		return &out, nil
	}
	return nil, sessions.ErrSessionNotFound
}

func (s sessionStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.m.sessionsByID[id]; !ok {
		return sessions.ErrSessionNotFound
	}
	delete(s.m.sessionsByID, id)
	return nil
}

func (s sessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	var removed int64
	for id, sess := range s.m.sessionsByID {
		if sess.Expired() {
			delete(s.m.sessionsByID, id)
			removed++
		}
	}
	return removed, nil
}

type testEnv struct {
	server *httptest.Server
	store  *memoryStore

	userService  users.Service
	groupService groups.Service
	postService  posts.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemoryStore()
	userService := users.NewService(store)
	groupService := groups.NewService(groupStore{store})
	postService := posts.NewService(postStore{store}, groupStore{store})
	feedService := feeds.NewService(postStore{store}, groupStore{store}, store)
	sessionService := sessions.NewService(sessionStore{store})

	auth := middleware.NewSessionAuth([]byte("test-secret"), sessionService, userService)

	templates, err := web.NewTemplates()
	require.NoError(t, err)

	handlers := web.NewHandlers(templates, auth, feedService, postService, groupService, userService, sessionService)

	r := chi.NewRouter()
	routes.RegisterWebRoutes(r, handlers, auth)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &testEnv{
		server:       server,
		store:        store,
		userService:  userService,
		groupService: groupService,
		postService:  postService,
	}
}

// newClient returns a client with a cookie jar that never follows redirects,
// so tests can assert on Location headers.
func (e *testEnv) newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *testEnv) get(t *testing.T, client *http.Client, path string) *http.Response {
	t.Helper()
	resp, err := client.Get(e.server.URL + path)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) postForm(t *testing.T, client *http.Client, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(e.server.URL+path, form)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func (e *testEnv) signup(t *testing.T, client *http.Client, username, password string) {
	t.Helper()
	resp := e.postForm(t, client, "/auth/signup/", url.Values{
		"username": {username},
		"password": {password},
	})
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func (e *testEnv) seedUser(t *testing.T, username string) *users.User {
	t.Helper()
	user, err := e.userService.Register(context.Background(), users.RegisterRequest{
		Username: username,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) seedPost(t *testing.T, author *users.User, text, groupSlug string) *posts.Post {
	t.Helper()
	post, err := e.postService.CreatePost(context.Background(), posts.CreatePostRequest{
		Text:      text,
		GroupSlug: groupSlug,
		AuthorID:  author.ID,
	})
	require.NoError(t, err)
	return post
}

func TestHomePage(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	author := env.seedUser(t, "alice")
	env.seedPost(t, author, "first post", "")

	resp := env.get(t, client, "/")
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "first post")
	assert.Contains(t, body, "alice")
}

func TestHomeUnknownPathIs404(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	resp := env.get(t, client, "/no-such-page")
	readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHomePagination(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	author := env.seedUser(t, "alice")
	for i := 1; i <= 13; i++ {
		env.seedPost(t, author, fmt.Sprintf("entry number %02d", i), "")
	}

	// Newest first: page 1 carries entries 13..4, page 2 the remaining 3
	resp := env.get(t, client, "/")
	page1 := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page1, "entry number 13")
	assert.NotContains(t, page1, "entry number 03")

	resp = env.get(t, client, "/?page=2")
	page2 := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page2, "entry number 03")
	assert.NotContains(t, page2, "entry number 13")

	// Out-of-range pages clamp instead of failing
	resp = env.get(t, client, "/?page=99")
	clamped := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, clamped, "entry number 01")

	resp = env.get(t, client, "/?page=bogus")
	readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGroupPage(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	_, err := env.groupService.CreateGroup(context.Background(), groups.CreateGroupRequest{
		Title: "Cats", Slug: "cats", Description: "Only cats",
	})
	require.NoError(t, err)

	author := env.seedUser(t, "alice")
	env.seedPost(t, author, "a cat post", "cats")
	env.seedPost(t, author, "an ungrouped post", "")

	resp := env.get(t, client, "/group/cats/")
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "a cat post")
	assert.NotContains(t, body, "an ungrouped post")

	resp = env.get(t, client, "/group/dogs/")
	readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProfilePage(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	env.seedPost(t, alice, "written by alice", "")
	env.seedPost(t, bob, "written by bob", "")

	resp := env.get(t, client, "/profile/alice/")
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "written by alice")
	assert.NotContains(t, body, "written by bob")

	resp = env.get(t, client, "/profile/nobody/")
	readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostDetail(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	author := env.seedUser(t, "alice")
	post := env.seedPost(t, author, "the full text", "")

	resp := env.get(t, client, fmt.Sprintf("/posts/%d/", post.ID))
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "the full text")

	resp = env.get(t, client, "/posts/999/")
	readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.get(t, client, "/posts/abc/")
	readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateRequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	resp := env.get(t, client, "/create/")
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login/?next=%2Fcreate%2F", resp.Header.Get("Location"))
}

func TestLoginRedirectsToNext(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	env.seedUser(t, "alice")

	resp := env.postForm(t, client, "/auth/login/", url.Values{
		"username": {"alice"},
		"password": {"password123"},
		"next":     {"/create/"},
	})
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/create/", resp.Header.Get("Location"))

	resp = env.get(t, client, "/create/")
	readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginRejectsOffsiteNext(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	env.seedUser(t, "alice")

	resp := env.postForm(t, client, "/auth/login/", url.Values{
		"username": {"alice"},
		"password": {"password123"},
		"next":     {"https://evil.example/"},
	})
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	env.seedUser(t, "alice")

	resp := env.postForm(t, client, "/auth/login/", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password.")

	// Still anonymous
	resp = env.get(t, client, "/create/")
	readBody(t, resp)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestSignupDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	env.seedUser(t, "alice")

	resp := env.postForm(t, client, "/auth/signup/", url.Values{
		"username": {"alice"},
		"password": {"password123"},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "already taken")
}

func TestCreatePostFlow(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	env.signup(t, client, "alice", "password123")

	resp := env.postForm(t, client, "/create/", url.Values{
		"text": {"hello from alice"},
	})
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/alice/", resp.Header.Get("Location"))

	resp = env.get(t, client, "/profile/alice/")
	body := readBody(t, resp)
	assert.Contains(t, body, "hello from alice")
}

func TestCreatePostEmptyText(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	env.signup(t, client, "alice", "password123")

	resp := env.postForm(t, client, "/create/", url.Values{
		"text": {"   "},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "text is required")
	assert.Empty(t, env.store.postsByID, "nothing should be persisted")
}

func TestCreatePostUnknownGroup(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	env.signup(t, client, "alice", "password123")

	resp := env.postForm(t, client, "/create/", url.Values{
		"text":  {"some text"},
		"group": {"missing"},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "group does not exist")
	assert.Empty(t, env.store.postsByID)
}

func TestEditPostByAuthor(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	env.signup(t, client, "alice", "password123")

	resp := env.postForm(t, client, "/create/", url.Values{"text": {"original text"}})
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	// The form comes pre-populated
	resp = env.get(t, client, "/posts/1/edit/")
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "original text")

	resp = env.postForm(t, client, "/posts/1/edit/", url.Values{"text": {"revised text"}})
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/posts/1/", resp.Header.Get("Location"))

	resp = env.get(t, client, "/posts/1/")
	body = readBody(t, resp)
	assert.Contains(t, body, "revised text")
	assert.NotContains(t, body, "original text")
}

func TestEditPostByNonAuthorRedirects(t *testing.T) {
	env := newTestEnv(t)

	alice := env.seedUser(t, "alice")
	post := env.seedPost(t, alice, "alice's words", "")

	client := env.newClient(t)
	env.signup(t, client, "bob", "password123")

	editPath := fmt.Sprintf("/posts/%d/edit/", post.ID)
	detailPath := fmt.Sprintf("/posts/%d/", post.ID)

	resp := env.get(t, client, editPath)
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, detailPath, resp.Header.Get("Location"))

	resp = env.postForm(t, client, editPath, url.Values{"text": {"bob's takeover"}})
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, detailPath, resp.Header.Get("Location"))

	stored := env.store.postsByID[post.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "alice's words", stored.Text)
}

func TestEditUnknownPostIs404(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	env.signup(t, client, "alice", "password123")

	resp := env.get(t, client, "/posts/42/edit/")
	readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient(t)

	env.signup(t, client, "alice", "password123")

	resp := env.postForm(t, client, "/auth/logout/", url.Values{})
	readBody(t, resp)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
	assert.Empty(t, env.store.sessionsByID)

	resp = env.get(t, client, "/create/")
	readBody(t, resp)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/auth/login/"))
}
