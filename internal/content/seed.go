package content

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/devfolio/internal/blog"
)

type PostCreator interface {
	CreatePost(ctx context.Context, post *blog.Post) (id int, created bool, err error)
}

type SeedStatus string

const (
	SeedCreated SeedStatus = "created"
	SeedExists  SeedStatus = "exists"
	SeedFailed  SeedStatus = "failed"
)

type SeedResult struct {
	Slug   string     `json:"slug"`
	ID     int        `json:"id,omitempty"`
	Status SeedStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

type SeedReport struct {
	Results  []SeedResult `json:"results"`
	Created  int          `json:"created"`
	Existing int          `json:"existing"`
	Failed   int          `json:"failed"`
}

// Seed inserts posts one by one. A failing post is recorded and does not stop
// the rest; posts already in the store are reported as existing.
func Seed(ctx context.Context, creator PostCreator, posts []*blog.Post) SeedReport {
	report := SeedReport{Results: make([]SeedResult, 0, len(posts))}
	for _, post := range posts {
		res := SeedResult{Slug: post.Slug}
		id, created, err := creator.CreatePost(ctx, post)
		switch {
		case err != nil:
			log.Errorf("seed post [%s]: %s", post.Slug, err)
			res.Status = SeedFailed
			res.Error = err.Error()
			report.Failed++
		case created:
			res.ID = id
			res.Status = SeedCreated
			report.Created++
		default:
			res.ID = id
			res.Status = SeedExists
			report.Existing++
		}
		report.Results = append(report.Results, res)
	}
	return report
}
