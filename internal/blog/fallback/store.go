package fallback

import (
	"sort"

	"github.com/2beens/devfolio/internal/blog"
)

// Store serves the content bundled into the binary. It is read only after
// construction, and every getter hands out a deep copy.
type Store struct {
	metas map[string]blog.PostMeta
	posts map[string]*blog.Post
}

// NewStore builds the store from the bundled tables.
func NewStore() *Store {
	return NewStoreFrom(metaTable, bodyTable)
}

// NewStoreFrom builds a store from custom tables. A body without matching
// metadata is ignored.
func NewStoreFrom(metas map[string]blog.PostMeta, bodies map[string]blog.Post) *Store {
	s := &Store{
		metas: make(map[string]blog.PostMeta, len(metas)),
		posts: make(map[string]*blog.Post, len(bodies)),
	}
	for slug, m := range metas {
		m.Slug = slug
		s.metas[slug] = m.Clone()
	}
	for slug, body := range bodies {
		m, ok := s.metas[slug]
		if !ok {
			continue
		}
		p := body.Clone()
		p.PostMeta = m.Clone()
		s.posts[slug] = p
	}
	return s
}

// AllMeta returns all bundled metadata.
func (s *Store) AllMeta() []blog.PostMeta {
	metas := make([]blog.PostMeta, 0, len(s.metas))
	for _, m := range s.metas {
		metas = append(metas, m.Clone())
	}
	blog.SortByDateDesc(metas)
	return metas
}

func (s *Store) Meta(slug string) (blog.PostMeta, bool) {
	m, ok := s.metas[slug]
	if !ok {
		return blog.PostMeta{}, false
	}
	return m.Clone(), true
}

// FullPost only knows the posts bundled with a body. Having metadata for a
// slug does not imply having its content.
func (s *Store) FullPost(slug string) (*blog.Post, bool) {
	p, ok := s.posts[slug]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// SeedPosts returns the full posts, ordered by slug, for loading into the
// remote store.
func (s *Store) SeedPosts() []*blog.Post {
	slugs := make([]string, 0, len(s.posts))
	for slug := range s.posts {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	posts := make([]*blog.Post, 0, len(slugs))
	for _, slug := range slugs {
		posts = append(posts, s.posts[slug].Clone())
	}
	return posts
}
