package pages

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/2beens/devfolio/internal/blog"
	"github.com/2beens/devfolio/internal/blog/fallback"
	"github.com/2beens/devfolio/internal/content"
	"github.com/2beens/devfolio/internal/telemetry/metrics"
	"github.com/2beens/devfolio/pkg"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testRequestRateLimiter struct {
	allowed int
}

func (l *testRequestRateLimiter) Allow(_ context.Context, _ string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	if l.allowed <= 0 {
		return &redis_rate.Result{Limit: limit, Allowed: 0, RetryAfter: 30 * time.Second}, nil
	}
	l.allowed--
	return &redis_rate.Result{Limit: limit, Allowed: 1, Remaining: l.allowed}, nil
}

type testCreator struct {
	posts map[string]int
}

func (c *testCreator) CreatePost(_ context.Context, post *blog.Post) (int, bool, error) {
	if err := post.Validate(); err != nil {
		return 0, false, err
	}
	if id, ok := c.posts[post.Slug]; ok {
		return id, false, nil
	}
	id := len(c.posts) + 1
	c.posts[post.Slug] = id
	return id, true, nil
}

type testPinger struct {
	err error
}

func (p *testPinger) Ping(context.Context) error {
	return p.err
}

type testSetup struct {
	router         *mux.Router
	metricsManager *metrics.Manager
	creator        *testCreator
}

func newTestSetup(t *testing.T, withRemote bool, store *fallback.Store, limiter *testRequestRateLimiter) *testSetup {
	t.Helper()

	metricsManager := metrics.NewTestManager()
	params := NewHandlerParams{
		Resolver:       content.NewResolver(nil, store, content.FallbackOnEmpty, metricsManager),
		Seeds:          store,
		MetricsManager: metricsManager,
		VersionInfo:    "abc123\n",
	}
	setup := &testSetup{metricsManager: metricsManager}
	if withRemote {
		setup.creator = &testCreator{posts: map[string]int{}}
		params.Creator = setup.creator
		params.Remote = &testPinger{}
	}
	if limiter == nil {
		limiter = &testRequestRateLimiter{allowed: 1000}
	}

	setup.router = mux.NewRouter()
	NewHandler(params).SetupRoutes(setup.router, limiter, 10)
	return setup
}

func (s *testSetup) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_Routes(t *testing.T) {
	router := newTestSetup(t, false, fallback.NewStore(), nil).router

	for caseName, route := range map[string]struct {
		name   string
		path   string
		method string
	}{
		"health":           {name: "health", path: "/health", method: "GET"},
		"list-posts":       {name: "list-posts", path: "/blog/posts", method: "GET"},
		"list-posts-tag":   {name: "list-posts", path: "/blog/posts?tag=react", method: "GET"},
		"list-posts-opts":  {name: "list-posts", path: "/blog/posts", method: "OPTIONS"},
		"featured-posts":   {name: "featured-posts", path: "/blog/posts/featured", method: "GET"},
		"get-post":         {name: "get-post", path: "/blog/posts/some-slug", method: "GET"},
		"get-post-meta":    {name: "get-post-meta", path: "/blog/posts/some-slug/meta", method: "GET"},
		"blog-page":        {name: "blog-page", path: "/blog", method: "GET"},
		"post-page":        {name: "post-page", path: "/blog/some-slug", method: "GET"},
		"create-post":      {name: "create-post", path: "/admin/posts", method: "POST"},
		"seed-posts":       {name: "seed-posts", path: "/admin/posts/seed", method: "POST"},
		"create-post-opts": {name: "create-post", path: "/admin/posts", method: "OPTIONS"},
		"seed-posts-opts":  {name: "seed-posts", path: "/admin/posts/seed", method: "OPTIONS"},
	} {
		t.Run(caseName, func(t *testing.T) {
			req, err := http.NewRequest(route.method, route.path, nil)
			require.NoError(t, err)

			routeMatch := &mux.RouteMatch{}
			route := router.Get(route.name)
			require.NotNil(t, route)
			isMatch := route.Match(req, routeMatch)
			assert.True(t, isMatch, caseName)
		})
	}

	// featured must not be swallowed by the slug route
	routeMatch := &mux.RouteMatch{}
	req := httptest.NewRequest("GET", "/blog/posts/featured", nil)
	require.True(t, router.Match(req, routeMatch))
	assert.Equal(t, "featured-posts", routeMatch.Route.GetName())
}

func TestHandler_ListPosts_Fallback(t *testing.T) {
	setup := newTestSetup(t, false, fallback.NewStore(), nil)

	rr := setup.do(t, "GET", "/blog/posts", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "fallback", rr.Header().Get(pkg.HeaderContentSource))

	var resp PostsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 8, resp.Total)
	assert.Len(t, resp.Posts, 8)
	assert.Equal(t, content.SourceFallback, resp.Source)

	rr = setup.do(t, "GET", "/blog/posts?tag=react", "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp = PostsResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)

	rr = setup.do(t, "GET", "/blog/posts?tag=cobol", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"posts":[],"total":0,"source":"fallback"}`, rr.Body.String())

	rr = setup.do(t, "GET", "/blog/posts/featured", "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp = PostsResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
}

func TestHandler_GetPost(t *testing.T) {
	setup := newTestSetup(t, false, fallback.NewStore(), nil)

	rr := setup.do(t, "GET", "/blog/posts/microservices-nodejs-docker", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var post blog.Post
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &post))
	assert.Equal(t, "microservices-nodejs-docker", post.Slug)
	assert.Len(t, post.Sections, 3)

	// known only by its metadata
	rr = setup.do(t, "GET", "/blog/posts/scalable-react-nextjs-14", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not_found", rr.Header().Get(pkg.HeaderContentSource))

	rr = setup.do(t, "GET", "/blog/posts/scalable-react-nextjs-14/meta", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var meta blog.PostMeta
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &meta))
	assert.True(t, meta.Featured)

	rr = setup.do(t, "GET", "/blog/posts/nope/meta", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	for _, path := range []string{
		"/blog/posts/Microservices_NodeJS",
		"/blog/posts/Microservices_NodeJS/meta",
		"/blog/Microservices_NodeJS",
	} {
		rr = setup.do(t, "GET", path, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.Equal(t, "not_found", rr.Header().Get(pkg.HeaderContentSource), path)
	}
}

func TestHandler_Pages(t *testing.T) {
	setup := newTestSetup(t, false, fallback.NewStore(), nil)

	rr := setup.do(t, "GET", "/blog", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, pkg.ContentType.HTML, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), `href="/blog/microservices-nodejs-docker"`)

	rr = setup.do(t, "GET", "/blog?tag=react", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Tagged: react")
	assert.NotContains(t, rr.Body.String(), `href="/blog/microservices-nodejs-docker"`)

	rr = setup.do(t, "GET", "/blog/microservices-nodejs-docker", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Dockerizing Node.js Services")
	assert.NotContains(t, rr.Body.String(), "section-error")

	rr = setup.do(t, "GET", "/blog/scalable-react-nextjs-14", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "404")

	assert.Equal(t, float64(0), testutil.ToFloat64(setup.metricsManager.CounterSectionRenderErrors))
}

func TestHandler_PostPage_BrokenSectionIsContained(t *testing.T) {
	store := fallback.NewStoreFrom(
		map[string]blog.PostMeta{
			"broken-table": {Slug: "broken-table", Title: "Broken Table", Date: "2024-05-01"},
		},
		map[string]blog.Post{
			"broken-table": {
				Sections: []blog.Section{
					{Title: "Intro", Content: "still here"},
					{Title: "Numbers", Type: blog.SectionTypeTable, Content: "{not json"},
				},
			},
		},
	)
	setup := newTestSetup(t, false, store, nil)

	rr := setup.do(t, "GET", "/blog/broken-table", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "still here")
	assert.Contains(t, rr.Body.String(), "section-error")
	assert.Equal(t, float64(1), testutil.ToFloat64(setup.metricsManager.CounterSectionRenderErrors))
}

func TestHandler_CreatePost_NoRemote(t *testing.T) {
	setup := newTestSetup(t, false, fallback.NewStore(), nil)

	rr := setup.do(t, "POST", "/admin/posts", `{"slug":"a-post","title":"A","date":"2024-01-01"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = setup.do(t, "POST", "/admin/posts/seed", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHandler_CreatePost(t *testing.T) {
	setup := newTestSetup(t, true, fallback.NewStore(), nil)

	body := `{"slug":"go-generics","title":"Go Generics","date":"2024-03-01","sections":[{"title":"Intro","content":"hi"}]}`
	rr := setup.do(t, "POST", "/admin/posts", body)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "created:1", rr.Body.String())

	rr = setup.do(t, "POST", "/admin/posts", body)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "exists:1", rr.Body.String())
	assert.Equal(t, float64(1), testutil.ToFloat64(setup.metricsManager.CounterPostsCreated))

	rr = setup.do(t, "POST", "/admin/posts", `{"slug":"Bad Slug","title":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = setup.do(t, "POST", "/admin/posts", `{"slug":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_SeedPosts(t *testing.T) {
	setup := newTestSetup(t, true, fallback.NewStore(), nil)

	rr := setup.do(t, "POST", "/admin/posts/seed", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var report content.SeedReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, 3, report.Created)
	assert.Len(t, report.Results, 3)

	rr = setup.do(t, "POST", "/admin/posts/seed", "")
	require.Equal(t, http.StatusOK, rr.Code)
	report = content.SeedReport{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 3, report.Existing)
	assert.Equal(t, float64(3), testutil.ToFloat64(setup.metricsManager.CounterPostsCreated))
}

func TestHandler_AdminPreflightWritesNothing(t *testing.T) {
	setup := newTestSetup(t, true, fallback.NewStore(), nil)

	rr := setup.do(t, "OPTIONS", "/admin/posts/seed", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = setup.do(t, "OPTIONS", "/admin/posts", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	assert.Empty(t, setup.creator.posts)
	assert.Equal(t, float64(0), testutil.ToFloat64(setup.metricsManager.CounterPostsCreated))
}

func TestHandler_AdminRateLimited(t *testing.T) {
	setup := newTestSetup(t, true, fallback.NewStore(), &testRequestRateLimiter{allowed: 1})

	rr := setup.do(t, "POST", "/admin/posts", `{"slug":"first","title":"First","date":"2024-01-01"}`)
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = setup.do(t, "POST", "/admin/posts", `{"slug":"second","title":"Second","date":"2024-01-01"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(setup.metricsManager.CounterRateLimitedRequests))

	// public routes are not limited
	rr = setup.do(t, "GET", "/blog/posts", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_Health(t *testing.T) {
	rr := newTestSetup(t, false, fallback.NewStore(), nil).do(t, "GET", "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","remote_configured":false,"remote_reachable":false,"version":"abc123"}`, rr.Body.String())

	metricsManager := metrics.NewTestManager()
	router := mux.NewRouter()
	NewHandler(NewHandlerParams{
		Resolver:       content.NewResolver(nil, fallback.NewStore(), content.FallbackOnEmpty, metricsManager),
		Remote:         &testPinger{err: errors.New("connection refused")},
		MetricsManager: metricsManager,
	}).SetupRoutes(router, &testRequestRateLimiter{}, 10)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","remote_configured":false,"remote_reachable":false}`, rr.Body.String())
}

func TestHandler_UnknownPath(t *testing.T) {
	setup := newTestSetup(t, false, fallback.NewStore(), nil)

	rr := setup.do(t, "GET", "/wp-admin.php", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req := httptest.NewRequest("GET", "/blog/a/b/c", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rr = httptest.NewRecorder()
	setup.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Back to the blog")
}
