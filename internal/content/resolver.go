package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/devfolio/internal/blog"
	"github.com/2beens/devfolio/internal/telemetry/metrics"
	"github.com/2beens/devfolio/internal/telemetry/tracing"
	"github.com/2beens/devfolio/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=content_test

type remoteSource interface {
	ListPostMeta(ctx context.Context) ([]blog.PostMeta, error)
	ListFeaturedMeta(ctx context.Context) ([]blog.PostMeta, error)
	ListMetaByTag(ctx context.Context, tag string) ([]blog.PostMeta, error)
	GetPostMeta(ctx context.Context, slug string) (*blog.PostMeta, error)
	GetPost(ctx context.Context, slug string) (*blog.Post, error)
}

type fallbackSource interface {
	AllMeta() []blog.PostMeta
	Meta(slug string) (blog.PostMeta, bool)
	FullPost(slug string) (*blog.Post, bool)
}

type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
	SourceNone     Source = "not_found"
)

// ListFallbackPolicy decides when a list from the remote store is replaced by
// the bundled one.
type ListFallbackPolicy string

const (
	// FallbackOnEmpty substitutes whenever the remote list is empty, failed
	// call or not.
	FallbackOnEmpty ListFallbackPolicy = "on_empty"
	// FallbackOnError substitutes only when the remote call failed.
	FallbackOnError ListFallbackPolicy = "on_error"
)

var ErrUnknownPolicy = errors.New("unknown list fallback policy")

func ParseListFallbackPolicy(s string) (ListFallbackPolicy, error) {
	switch ListFallbackPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", FallbackOnEmpty:
		return FallbackOnEmpty, nil
	case FallbackOnError:
		return FallbackOnError, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownPolicy, s)
	}
}

const (
	kindPost     = "post"
	kindMeta     = "meta"
	kindList     = "list"
	kindFeatured = "featured"
	kindTag      = "tag"
)

// Resolver looks content up in the remote store first, then in the bundled
// fallback. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	remote         remoteSource
	fallback       fallbackSource
	policy         ListFallbackPolicy
	metricsManager *metrics.Manager
}

// NewResolver takes a nil remote when the remote store is not configured.
func NewResolver(
	remote remoteSource,
	fallback fallbackSource,
	policy ListFallbackPolicy,
	metricsManager *metrics.Manager,
) *Resolver {
	if policy == "" {
		policy = FallbackOnEmpty
	}
	return &Resolver{
		remote:         remote,
		fallback:       fallback,
		policy:         policy,
		metricsManager: metricsManager,
	}
}

func (r *Resolver) RemoteConfigured() bool {
	return r.remote != nil
}

func (r *Resolver) Policy() ListFallbackPolicy {
	return r.policy
}

// ResolvePost returns the post from the first source that has it. The remote
// result always wins, the two are never merged.
func (r *Resolver) ResolvePost(ctx context.Context, slug string) (*blog.Post, bool) {
	post, _ := r.ResolvePostWithSource(ctx, slug)
	return post, post != nil
}

func (r *Resolver) ResolvePostWithSource(ctx context.Context, slug string) (*blog.Post, Source) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "contentResolver.ResolvePost")
	span.SetAttributes(attribute.String("slug", slug))
	defer span.End()

	source := SourceNone
	defer func() {
		span.SetAttributes(attribute.String("source", string(source)))
		r.observe(kindPost, source)
	}()

	if !blog.ValidSlug(slug) {
		log.Tracef("post [%s]: invalid slug", slug)
		return nil, source
	}

	if r.remote != nil {
		post, err := r.remote.GetPost(ctx, slug)
		if err == nil && post != nil {
			source = SourceRemote
			return post, source
		}
		logRemoteErr("get post", slug, err)
	}

	if post, ok := r.fallback.FullPost(slug); ok {
		source = SourceFallback
		return post, source
	}

	log.Tracef("post [%s] not found in any source", slug)
	return nil, source
}

func (r *Resolver) ResolvePostMeta(ctx context.Context, slug string) (*blog.PostMeta, Source) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "contentResolver.ResolvePostMeta")
	span.SetAttributes(attribute.String("slug", slug))
	defer span.End()

	source := SourceNone
	defer func() {
		r.observe(kindMeta, source)
	}()

	if !blog.ValidSlug(slug) {
		return nil, source
	}

	if r.remote != nil {
		meta, err := r.remote.GetPostMeta(ctx, slug)
		if err == nil && meta != nil {
			source = SourceRemote
			return meta, source
		}
		logRemoteErr("get post meta", slug, err)
	}

	if meta, ok := r.fallback.Meta(slug); ok {
		source = SourceFallback
		return &meta, source
	}

	return nil, source
}

func (r *Resolver) ResolvePostList(ctx context.Context) []blog.PostMeta {
	metas, _ := r.ResolvePostListWithSource(ctx)
	return metas
}

func (r *Resolver) ResolvePostListWithSource(ctx context.Context) ([]blog.PostMeta, Source) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "contentResolver.ResolvePostList")
	defer span.End()

	return r.resolveList(ctx, kindList, "", r.remoteList, func(blog.PostMeta) bool { return true })
}

func (r *Resolver) ResolveFeatured(ctx context.Context) ([]blog.PostMeta, Source) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "contentResolver.ResolveFeatured")
	defer span.End()

	return r.resolveList(ctx, kindFeatured, "", r.remoteFeatured, func(m blog.PostMeta) bool { return m.Featured })
}

func (r *Resolver) ResolveByTag(ctx context.Context, tag string) ([]blog.PostMeta, Source) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "contentResolver.ResolveByTag")
	span.SetAttributes(attribute.String("tag", tag))
	defer span.End()

	return r.resolveList(ctx, kindTag, tag, r.remoteByTag, func(m blog.PostMeta) bool { return m.HasTag(tag) })
}

func (r *Resolver) remoteList(ctx context.Context, _ string) ([]blog.PostMeta, error) {
	return r.remote.ListPostMeta(ctx)
}

func (r *Resolver) remoteFeatured(ctx context.Context, _ string) ([]blog.PostMeta, error) {
	return r.remote.ListFeaturedMeta(ctx)
}

func (r *Resolver) remoteByTag(ctx context.Context, tag string) ([]blog.PostMeta, error) {
	return r.remote.ListMetaByTag(ctx, tag)
}

func (r *Resolver) resolveList(
	ctx context.Context,
	kind string,
	arg string,
	fromRemote func(ctx context.Context, arg string) ([]blog.PostMeta, error),
	keep func(blog.PostMeta) bool,
) (_ []blog.PostMeta, source Source) {
	defer func() {
		r.observe(kind, source)
	}()

	if r.remote != nil {
		metas, err := fromRemote(ctx, arg)
		switch {
		case err != nil:
			logRemoteErr(kind+" list", arg, err)
		case len(metas) > 0:
			return metas, SourceRemote
		case r.policy == FallbackOnError:
			log.Tracef("content resolver, remote %s list [%s] empty, keeping it", kind, arg)
			return metas, SourceRemote
		default:
			log.Tracef("content resolver, remote %s list [%s] empty, using fallback", kind, arg)
		}
	}

	all := r.fallback.AllMeta()
	metas := make([]blog.PostMeta, 0, len(all))
	for _, m := range all {
		if keep(m) {
			metas = append(metas, m)
		}
	}
	blog.SortByDateDesc(metas)
	return metas, SourceFallback
}

func (r *Resolver) observe(kind string, source Source) {
	if r.metricsManager == nil {
		return
	}
	r.metricsManager.CounterContentResolutions.WithLabelValues(kind, string(source)).Inc()
}

func logRemoteErr(op, slug string, err error) {
	switch {
	case err == nil:
		log.Tracef("content resolver, remote %s [%s]: empty result", op, slug)
	case errors.Is(err, blog.ErrPostNotFound):
		log.Tracef("content resolver, remote %s [%s]: not found", op, slug)
	case errors.Is(err, context.Canceled):
		log.Debugf("content resolver, remote %s [%s]: %s", op, slug, err)
	case pkg.IsUndefinedTableError(err):
		log.Errorf("content resolver, remote %s [%s]: schema missing, run migrate: %s", op, slug, err)
	default:
		log.Warnf("content resolver, remote %s [%s]: %s", op, slug, err)
	}
}
