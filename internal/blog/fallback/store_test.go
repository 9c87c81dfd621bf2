package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/2beens/devfolio/internal/blog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStore_FullPost_Microservices(t *testing.T) {
	s := NewStore()

	post, ok := s.FullPost("microservices-nodejs-docker")
	require.True(t, ok)
	require.NotNil(t, post)
	assert.Equal(t, "Microservices Architecture with Node.js and Docker", post.Title)
	assert.Len(t, post.Sections, 3)
	assert.Equal(t, "microservices-nodejs-docker", post.Slug)
	assert.Equal(t, "12-15 min read", post.ReadTime)
	assert.Equal(t, "12-15 minutes", post.EstimatedReadTime)
	require.NoError(t, post.Validate())
}

func TestStore_MetaOnlyHasNoContent(t *testing.T) {
	s := NewStore()

	meta, ok := s.Meta("scalable-react-nextjs-14")
	require.True(t, ok)
	assert.Equal(t, "Building Scalable React Applications with Next.js 14", meta.Title)

	post, ok := s.FullPost("scalable-react-nextjs-14")
	assert.False(t, ok)
	assert.Nil(t, post)
}

func TestStore_UnknownSlug(t *testing.T) {
	s := NewStore()

	_, ok := s.Meta("nope")
	assert.False(t, ok)
	_, ok = s.FullPost("nope")
	assert.False(t, ok)
	_, ok = s.FullPost("Microservices-NodeJS-Docker")
	assert.False(t, ok)
}

func TestStore_AllMeta(t *testing.T) {
	s := NewStore()
	metas := s.AllMeta()
	require.Len(t, metas, 8)

	// newest first
	assert.Equal(t, "automate-anything-building-smart-workflows-n8n", metas[0].Slug)
	assert.Equal(t, "ai-agents-developer-productivity", metas[1].Slug)
	for i := 1; i < len(metas); i++ {
		assert.GreaterOrEqual(t, metas[i-1].Date, metas[i].Date)
	}

	// every full post has metadata
	for _, p := range s.SeedPosts() {
		_, ok := s.Meta(p.Slug)
		assert.True(t, ok, p.Slug)
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := NewStore()

	post, ok := s.FullPost("state-management-react-redux-zustand-context")
	require.True(t, ok)
	post.Title = "changed"
	post.Tags[0] = "changed"
	post.Sections[2].Pros[0] = "changed"
	post.Sections = post.Sections[:1]

	again, ok := s.FullPost("state-management-react-redux-zustand-context")
	require.True(t, ok)
	assert.Equal(t, "State Management in React: Redux vs Zustand vs Context", again.Title)
	assert.Equal(t, "React", again.Tags[0])
	assert.Equal(t, "Built-in to React", again.Sections[2].Pros[0])
	assert.Len(t, again.Sections, 7)

	metas := s.AllMeta()
	metas[0].Tags[0] = "changed"
	assert.NotEqual(t, "changed", s.AllMeta()[0].Tags[0])
}

func TestStore_SeedPosts(t *testing.T) {
	s := NewStore()
	posts := s.SeedPosts()
	require.Len(t, posts, 3)
	assert.Equal(t, "ai-agents-developer-productivity", posts[0].Slug)
	assert.Equal(t, "microservices-nodejs-docker", posts[1].Slug)
	assert.Equal(t, "state-management-react-redux-zustand-context", posts[2].Slug)
	for _, p := range posts {
		assert.NoError(t, p.Validate(), p.Slug)
	}
}

func TestNewStoreFrom_IgnoresBodyWithoutMeta(t *testing.T) {
	s := NewStoreFrom(
		map[string]blog.PostMeta{
			"a": {Title: "A", Date: "2024-01-01"},
		},
		map[string]blog.Post{
			"a": {Overview: "a overview", Sections: []blog.Section{{Title: "s1"}}},
			"b": {Overview: "b overview"},
		},
	)

	p, ok := s.FullPost("a")
	require.True(t, ok)
	assert.Equal(t, "a", p.Slug)
	assert.Equal(t, "A", p.Title)
	assert.Equal(t, "a overview", p.Overview)

	_, ok = s.FullPost("b")
	assert.False(t, ok)
}
