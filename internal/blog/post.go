package blog

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrInvalidPost      = errors.New("invalid post")
	ErrRemoteNotEnabled = errors.New("remote content store not configured")
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// PostMeta is the list view projection of a Post.
type PostMeta struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Date     string   `json:"date"`     // ISO date, e.g. 2024-01-15
	ReadTime string   `json:"readTime"` // free text, e.g. "12-15 min read"
	Tags     []string `json:"tags"`
	Excerpt  string   `json:"excerpt"`
	Featured bool     `json:"featured"`
}

// Post is a blog entry with its body. EstimatedReadTime is kept separate from
// ReadTime, nothing guarantees the two agree.
type Post struct {
	PostMeta

	EstimatedReadTime string    `json:"estimated_read_time"`
	Audience          []string  `json:"audience"`
	Overview          string    `json:"overview"`
	Sections          []Section `json:"sections"`
}

func (p *Post) Meta() PostMeta {
	return p.PostMeta.Clone()
}

func (m PostMeta) Clone() PostMeta {
	m.Tags = cloneStrings(m.Tags)
	return m
}

func (m PostMeta) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if equalFoldTrim(t, tag) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the post, sections included.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := &Post{
		PostMeta:          p.PostMeta.Clone(),
		EstimatedReadTime: p.EstimatedReadTime,
		Audience:          cloneStrings(p.Audience),
		Overview:          p.Overview,
	}
	if p.Sections != nil {
		c.Sections = make([]Section, len(p.Sections))
		for i := range p.Sections {
			c.Sections[i] = p.Sections[i].Clone()
		}
	}
	return c
}

func (p *Post) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil post", ErrInvalidPost)
	}
	if !slugRegex.MatchString(p.Slug) {
		return fmt.Errorf("%w: bad slug [%s]", ErrInvalidPost, p.Slug)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: title empty", ErrInvalidPost)
	}
	for i := range p.Sections {
		if p.Sections[i].Title == "" {
			return fmt.Errorf("%w: section %d title empty", ErrInvalidPost, i)
		}
		if p.Sections[i].Type != "" && !p.Sections[i].Type.Valid() {
			return fmt.Errorf("%w: section %d unknown type [%s]", ErrInvalidPost, i, p.Sections[i].Type)
		}
	}
	return nil
}

func ValidSlug(slug string) bool {
	return slugRegex.MatchString(slug)
}

// SortByDateDesc orders metas newest first, ties broken by slug.
func SortByDateDesc(metas []PostMeta) {
	sort.SliceStable(metas, func(i, j int) bool {
		if metas[i].Date != metas[j].Date {
			return metas[i].Date > metas[j].Date
		}
		return metas[i].Slug < metas[j].Slug
	})
}
