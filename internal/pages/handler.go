package pages

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/devfolio/internal/blog"
	"github.com/2beens/devfolio/internal/content"
	"github.com/2beens/devfolio/internal/middleware"
	"github.com/2beens/devfolio/internal/render"
	"github.com/2beens/devfolio/internal/telemetry/metrics"
	"github.com/2beens/devfolio/pkg"
)

const maxPostBodyBytes = 1 << 20

type pinger interface {
	Ping(ctx context.Context) error
}

type seedSource interface {
	SeedPosts() []*blog.Post
}

type PostsResponse struct {
	Posts  []blog.PostMeta `json:"posts"`
	Total  int             `json:"total"`
	Source content.Source  `json:"source"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	RemoteConfigured bool   `json:"remote_configured"`
	RemoteReachable  bool   `json:"remote_reachable"`
	Version          string `json:"version,omitempty"`
}

type Handler struct {
	resolver       *content.Resolver
	creator        content.PostCreator
	remote         pinger
	seeds          seedSource
	metricsManager *metrics.Manager
	versionInfo    string
}

type NewHandlerParams struct {
	Resolver *content.Resolver
	// Creator and Remote stay nil when the remote store is not configured.
	Creator        content.PostCreator
	Remote         pinger
	Seeds          seedSource
	MetricsManager *metrics.Manager
	VersionInfo    string
}

func NewHandler(params NewHandlerParams) *Handler {
	return &Handler{
		resolver:       params.Resolver,
		creator:        params.Creator,
		remote:         params.Remote,
		seeds:          params.Seeds,
		metricsManager: params.MetricsManager,
		versionInfo:    params.VersionInfo,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	adminAllowedPerMin int,
) {
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")

	mainRouter.HandleFunc("/blog/posts", handler.handleListPosts).Methods("GET", "OPTIONS").Name("list-posts")
	mainRouter.HandleFunc("/blog/posts/featured", handler.handleFeaturedPosts).Methods("GET", "OPTIONS").Name("featured-posts")
	mainRouter.HandleFunc("/blog/posts/{slug}", handler.handleGetPost).Methods("GET", "OPTIONS").Name("get-post")
	mainRouter.HandleFunc("/blog/posts/{slug}/meta", handler.handleGetPostMeta).Methods("GET", "OPTIONS").Name("get-post-meta")

	mainRouter.HandleFunc("/blog", handler.handleBlogPage).Methods("GET").Name("blog-page")
	mainRouter.HandleFunc("/blog/{slug}", handler.handlePostPage).Methods("GET").Name("post-page")

	adminRouter := mainRouter.PathPrefix("/admin").Subrouter()
	adminRouter.HandleFunc("/posts", handler.handleCreatePost).Methods("POST", "OPTIONS").Name("create-post")
	adminRouter.HandleFunc("/posts/seed", handler.handleSeedPosts).Methods("POST", "OPTIONS").Name("seed-posts")

	// no auth on admin routes, so at least make brute use expensive
	adminRouter.Use(middleware.RateLimit(rateLimiter, "admin", adminAllowedPerMin, handler.metricsManager))

	mainRouter.NotFoundHandler = http.HandlerFunc(handler.handleNotFound)
}

func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:           "ok",
		RemoteConfigured: handler.resolver.RemoteConfigured(),
		Version:          strings.TrimSpace(handler.versionInfo),
	}
	if handler.remote != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := handler.remote.Ping(ctx); err != nil {
			log.Warnf("health: remote ping: %s", err)
		} else {
			resp.RemoteReachable = true
		}
	}
	pkg.WriteJSONResponseOK(w, resp)
}

func (handler *Handler) handleListPosts(w http.ResponseWriter, r *http.Request) {
	var (
		metas  []blog.PostMeta
		source content.Source
	)
	if tag := strings.TrimSpace(r.URL.Query().Get("tag")); tag != "" {
		metas, source = handler.resolver.ResolveByTag(r.Context(), tag)
	} else {
		metas, source = handler.resolver.ResolvePostListWithSource(r.Context())
	}
	writePosts(w, metas, source)
}

func (handler *Handler) handleFeaturedPosts(w http.ResponseWriter, r *http.Request) {
	metas, source := handler.resolver.ResolveFeatured(r.Context())
	writePosts(w, metas, source)
}

func writePosts(w http.ResponseWriter, metas []blog.PostMeta, source content.Source) {
	if metas == nil {
		metas = []blog.PostMeta{}
	}
	w.Header().Set(pkg.HeaderContentSource, string(source))
	pkg.WriteJSONResponseOK(w, PostsResponse{
		Posts:  metas,
		Total:  len(metas),
		Source: source,
	})
}

func (handler *Handler) handleGetPost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	post, source := handler.resolver.ResolvePostWithSource(r.Context(), slug)
	w.Header().Set(pkg.HeaderContentSource, string(source))
	if post == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	pkg.WriteJSONResponseOK(w, post)
}

func (handler *Handler) handleGetPostMeta(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	meta, source := handler.resolver.ResolvePostMeta(r.Context(), slug)
	w.Header().Set(pkg.HeaderContentSource, string(source))
	if meta == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	pkg.WriteJSONResponseOK(w, meta)
}

func (handler *Handler) handleBlogPage(w http.ResponseWriter, r *http.Request) {
	var (
		metas  []blog.PostMeta
		source content.Source
	)
	tag := strings.TrimSpace(r.URL.Query().Get("tag"))
	if tag != "" {
		metas, source = handler.resolver.ResolveByTag(r.Context(), tag)
	} else {
		metas, source = handler.resolver.ResolvePostListWithSource(r.Context())
	}
	w.Header().Set(pkg.HeaderContentSource, string(source))
	writeComponent(r.Context(), w, render.PostListComponent(metas, tag), http.StatusOK)
}

func (handler *Handler) handlePostPage(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	post, source := handler.resolver.ResolvePostWithSource(r.Context(), slug)
	w.Header().Set(pkg.HeaderContentSource, string(source))
	if post == nil {
		writeComponent(r.Context(), w, render.NotFoundComponent(), http.StatusNotFound)
		return
	}

	doc := render.RenderPost(post)
	if failed := doc.Failed(); failed > 0 && handler.metricsManager != nil {
		handler.metricsManager.CounterSectionRenderErrors.Add(float64(failed))
	}
	writeComponent(r.Context(), w, render.PostComponent(doc), http.StatusOK)
}

func (handler *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Accept"), "text/html") {
		writeComponent(r.Context(), w, render.NotFoundComponent(), http.StatusNotFound)
		return
	}
	http.NotFound(w, r)
}

func (handler *Handler) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	// preflight without an Origin header never reaches the write path
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if handler.creator == nil {
		http.Error(w, blog.ErrRemoteNotEnabled.Error(), http.StatusServiceUnavailable)
		return
	}

	post := &blog.Post{}
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPostBodyBytes))
	if err := decoder.Decode(post); err != nil {
		log.Debugf("create post, decode body: %s", err)
		http.Error(w, "invalid post body", http.StatusBadRequest)
		return
	}

	id, created, err := handler.creator.CreatePost(r.Context(), post)
	if err != nil {
		if errors.Is(err, blog.ErrInvalidPost) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("create post [%s]: %s", post.Slug, err)
		http.Error(w, "failed to create post", http.StatusInternalServerError)
		return
	}

	if !created {
		log.Debugf("create post [%s]: already exists with id %d", post.Slug, id)
		pkg.WriteResponse(w, pkg.ContentType.Text, fmt.Sprintf("exists:%d", id), http.StatusOK)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterPostsCreated.Inc()
	}
	log.Printf("new post created: [%s]: %d", post.Slug, id)
	pkg.WriteResponse(w, pkg.ContentType.Text, fmt.Sprintf("created:%d", id), http.StatusCreated)
}

func (handler *Handler) handleSeedPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if handler.creator == nil {
		http.Error(w, blog.ErrRemoteNotEnabled.Error(), http.StatusServiceUnavailable)
		return
	}

	report := content.Seed(r.Context(), handler.creator, handler.seeds.SeedPosts())
	if handler.metricsManager != nil {
		handler.metricsManager.CounterPostsCreated.Add(float64(report.Created))
	}
	log.Infof("seed posts: created %d, existing %d, failed %d", report.Created, report.Existing, report.Failed)
	pkg.WriteJSONResponseOK(w, report)
}

func writeComponent(ctx context.Context, w http.ResponseWriter, component templ.Component, statusCode int) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		log.Errorf("render component: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.HTML, buf.Bytes(), statusCode)
}
