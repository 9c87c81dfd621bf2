package blog

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/multierr"

	"github.com/2beens/devfolio/internal/telemetry/tracing"
)

// manual caching of blog posts not needed (at least for this use case):
// https://github.com/jackc/pgx/wiki/Automatic-Prepared-Statement-Caching

//go:embed schema.sql
var schemaSQL string

const dateLayout = "2006-01-02"

const metaColumns = `slug, title, subtitle, date, read_time, tags, excerpt, featured`

// Repo is the remote content client, backed by the posts and sections tables.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (r *Repo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *Repo) ListPostMeta(ctx context.Context) ([]PostMeta, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.ListPostMeta")
	defer span.End()

	return r.queryMeta(ctx, `SELECT `+metaColumns+` FROM posts ORDER BY date DESC, id DESC;`)
}

func (r *Repo) ListFeaturedMeta(ctx context.Context) ([]PostMeta, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.ListFeaturedMeta")
	defer span.End()

	return r.queryMeta(ctx, `SELECT `+metaColumns+` FROM posts WHERE featured = TRUE ORDER BY date DESC, id DESC;`)
}

func (r *Repo) ListMetaByTag(ctx context.Context, tag string) ([]PostMeta, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.ListMetaByTag")
	span.SetAttributes(attribute.String("tag", tag))
	defer span.End()

	return r.queryMeta(
		ctx,
		`SELECT `+metaColumns+` FROM posts WHERE tags @> ARRAY[$1]::TEXT[] ORDER BY date DESC, id DESC;`,
		tag,
	)
}

func (r *Repo) GetPostMeta(ctx context.Context, slug string) (*PostMeta, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.GetPostMeta")
	span.SetAttributes(attribute.String("slug", slug))
	defer span.End()

	metas, err := r.queryMeta(ctx, `SELECT `+metaColumns+` FROM posts WHERE slug = $1;`, slug)
	if err != nil {
		return nil, err
	}
	if len(metas) == 0 {
		return nil, ErrPostNotFound
	}
	return &metas[0], nil
}

// GetPost fetches the post row by slug and then its sections in order.
func (r *Repo) GetPost(ctx context.Context, slug string) (*Post, error) {
	log.Tracef("getting post [%s]", slug)

	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.GetPost")
	span.SetAttributes(attribute.String("slug", slug))
	defer span.End()

	var (
		postID int
		post   Post
		date   time.Time
	)
	err := r.db.QueryRow(
		ctx,
		`
			SELECT id, `+metaColumns+`, estimated_read_time, audience, overview
			FROM posts
			WHERE slug = $1;
		`,
		slug,
	).Scan(
		&postID,
		&post.Slug, &post.Title, &post.Subtitle, &date, &post.ReadTime, &post.Tags, &post.Excerpt, &post.Featured,
		&post.EstimatedReadTime, &post.Audience, &post.Overview,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		span.SetStatus(codes.Ok, "not-found")
		return nil, ErrPostNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query-post")
		return nil, fmt.Errorf("query post [%s]: %w", slug, err)
	}
	post.Date = date.Format(dateLayout)

	sections, err := r.getSections(ctx, postID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query-sections")
		return nil, fmt.Errorf("query sections of post [%s]: %w", slug, err)
	}
	post.Sections = sections

	span.SetAttributes(attribute.Int("sections", len(sections)))
	return &post, nil
}

func (r *Repo) getSections(ctx context.Context, postID int) ([]Section, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT title, content, type, metadata
			FROM sections
			WHERE post_id = $1
			ORDER BY order_index ASC;
		`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := make([]Section, 0)
	for rows.Next() {
		var (
			s           Section
			content     *string
			sectionType *string
			metadata    []byte
		)
		if err := rows.Scan(&s.Title, &content, &sectionType, &metadata); err != nil {
			return nil, err
		}
		if content != nil {
			s.Content = *content
		}
		if sectionType != nil {
			s.Type = SectionType(*sectionType)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &s.Extras); err != nil {
				return nil, fmt.Errorf("unmarshal metadata of section [%s]: %w", s.Title, err)
			}
		}
		sections = append(sections, s)
	}

	return sections, rows.Err()
}

// CreatePost inserts the post and all of its sections in one transaction.
// If a post with the same slug exists, its id is returned with created=false
// and nothing is written.
func (r *Repo) CreatePost(ctx context.Context, post *Post) (id int, created bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.CreatePost")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if err := post.Validate(); err != nil {
		return 0, false, err
	}
	span.SetAttributes(attribute.String("slug", post.Slug))

	date := time.Now().UTC()
	if post.Date != "" {
		date, err = time.Parse(dateLayout, post.Date)
		if err != nil {
			return 0, false, fmt.Errorf("%w: date [%s]: %s", ErrInvalidPost, post.Date, err)
		}
	}

	existingID, err := postID(ctx, r.db, post.Slug)
	if err == nil {
		log.Debugf("post [%s] exists already with id %d, skipping", post.Slug, existingID)
		return existingID, false, nil
	}
	if !errors.Is(err, ErrPostNotFound) {
		return 0, false, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("begin tx: %w", err)
	}
	// no-op after commit
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			// the post row may stay behind without its sections
			log.Errorf("[ALERT] create post [%s]: rollback failed: %s", post.Slug, rbErr)
			err = multierr.Append(err, rbErr)
		}
	}()

	err = tx.QueryRow(
		ctx,
		`
			INSERT INTO posts (slug, title, subtitle, estimated_read_time, audience, overview, date, read_time, tags, excerpt, featured)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (slug) DO NOTHING
			RETURNING id;
		`,
		post.Slug, post.Title, post.Subtitle, post.EstimatedReadTime, nonNilStrings(post.Audience), post.Overview,
		date, post.ReadTime, nonNilStrings(post.Tags), post.Excerpt, post.Featured,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		// inserted concurrently between the lookup and the insert
		existingID, err := postID(ctx, tx, post.Slug)
		if err != nil {
			return 0, false, err
		}
		return existingID, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("insert post: %w", err)
	}

	if len(post.Sections) > 0 {
		if err = insertSections(ctx, tx, id, post.Sections); err != nil {
			return 0, false, fmt.Errorf("insert sections: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, false, fmt.Errorf("commit: %w", err)
	}

	log.Debugf("post [%s] created with id %d and %d sections", post.Slug, id, len(post.Sections))
	span.SetStatus(codes.Ok, "created")
	return id, true, nil
}

func insertSections(ctx context.Context, tx pgx.Tx, postID int, sections []Section) (err error) {
	batch := &pgx.Batch{}
	for i := range sections {
		s := &sections[i]
		metadata, err := json.Marshal(s.Extras)
		if err != nil {
			return fmt.Errorf("marshal metadata of section %d: %w", i, err)
		}
		batch.Queue(
			`INSERT INTO sections (post_id, title, content, type, order_index, metadata) VALUES ($1, $2, $3, $4, $5, $6);`,
			postID, s.Title, nullIfEmpty(s.Content), nullIfEmpty(string(s.Type)), i, metadata,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer func() {
		err = multierr.Append(err, br.Close())
	}()

	for i := range sections {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("section %d [%s]: %w", i, sections[i].Title, err)
		}
	}
	return nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postID works on the pool and inside a tx, so a tx never waits on a second conn.
func postID(ctx context.Context, q rowQuerier, slug string) (int, error) {
	var id int
	err := q.QueryRow(ctx, `SELECT id FROM posts WHERE slug = $1;`, slug).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query post id [%s]: %w", slug, err)
	}
	return id, nil
}

func (r *Repo) queryMeta(ctx context.Context, sql string, args ...interface{}) ([]PostMeta, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts meta: %w", err)
	}
	defer rows.Close()

	metas := make([]PostMeta, 0)
	for rows.Next() {
		var (
			m    PostMeta
			date time.Time
		)
		if err := rows.Scan(&m.Slug, &m.Title, &m.Subtitle, &date, &m.ReadTime, &m.Tags, &m.Excerpt, &m.Featured); err != nil {
			return nil, fmt.Errorf("scan post meta: %w", err)
		}
		m.Date = date.Format(dateLayout)
		metas = append(metas, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts meta: %w", err)
	}
	return metas, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
