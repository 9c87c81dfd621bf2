package render

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/2beens/devfolio/internal/blog"
)

var listMarkers = map[ListStyle]string{
	ListBullet: "",
	ListCheck:  "✓ ",
	ListCross:  "✗ ",
}

// htmlWriter keeps the first write error, later writes are dropped.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err == nil {
		_, hw.err = io.WriteString(hw.w, s)
	}
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// el writes <tag class="class">text</tag>, class is omitted when empty.
func (hw *htmlWriter) el(tag, class, text string) {
	hw.open(tag, class)
	hw.text(text)
	hw.raw(`</` + tag + `>`)
}

func (hw *htmlWriter) open(tag, class string) {
	if class == "" {
		hw.raw(`<` + tag + `>`)
		return
	}
	hw.raw(`<` + tag + ` class="` + templ.EscapeString(class) + `">`)
}

func (hw *htmlWriter) child(c templ.Component) {
	if hw.err == nil {
		hw.err = c.Render(hw.ctx, hw.w)
	}
}

func component(fn func(hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{ctx: ctx, w: w}
		fn(hw)
		return hw.err
	})
}

func page(title string, body templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.el("title", "", title)
		hw.raw(`</head><body>`)
		hw.child(body)
		hw.raw(`</body></html>`)
	})
}

// PostComponent renders a full post page.
func PostComponent(doc Document) templ.Component {
	return page(doc.Post.Title, postArticle(doc))
}

func postArticle(doc Document) templ.Component {
	p := doc.Post
	return component(func(hw *htmlWriter) {
		hw.raw(`<article class="post"><header>`)
		hw.el("h1", "", p.Title)
		if p.Subtitle != "" {
			hw.el("p", "subtitle", p.Subtitle)
		}
		hw.raw(`<p class="meta">`)
		hw.child(dateTime(p.Date))
		if readTime := firstNonEmpty(p.ReadTime, p.EstimatedReadTime); readTime != "" {
			hw.raw(` · `)
			hw.el("span", "read-time", readTime)
		}
		hw.raw(`</p>`)
		hw.child(tagList(p.Tags))
		if len(p.Audience) > 0 {
			hw.raw(`<p class="audience">For: `)
			for i, a := range p.Audience {
				if i > 0 {
					hw.raw(", ")
				}
				hw.text(a)
			}
			hw.raw(`</p>`)
		}
		hw.raw(`</header>`)

		if p.Overview != "" {
			hw.raw(`<section class="overview"><h2>Overview</h2>`)
			hw.el("p", "", p.Overview)
			hw.raw(`</section>`)
		}
		for _, s := range doc.Sections {
			hw.child(SectionComponent(s))
		}
		hw.raw(`</article>`)
	})
}

// PostListComponent renders the blog index. An empty list shows a notice
// instead of an empty grid.
func PostListComponent(metas []blog.PostMeta, activeTag string) templ.Component {
	return page("Blog", component(func(hw *htmlWriter) {
		hw.raw(`<main class="post-list"><h1>Blog</h1>`)
		if activeTag != "" {
			hw.raw(`<p class="active-tag">Tagged: `)
			hw.text(activeTag)
			hw.raw(` · <a href="/blog">all posts</a></p>`)
		}
		if len(metas) == 0 {
			hw.el("p", "empty", "No posts yet.")
		}
		for _, m := range metas {
			hw.child(postCard(m))
		}
		hw.raw(`</main>`)
	}))
}

func postCard(m blog.PostMeta) templ.Component {
	return component(func(hw *htmlWriter) {
		class := "post-card"
		if m.Featured {
			class += " featured"
		}
		hw.open("article", class)
		hw.raw(`<h2>`)
		hw.child(link("/blog/"+m.Slug, m.Title))
		hw.raw(`</h2><p class="meta">`)
		hw.child(dateTime(m.Date))
		if m.ReadTime != "" {
			hw.raw(` · `)
			hw.text(m.ReadTime)
		}
		hw.raw(`</p>`)
		if m.Excerpt != "" {
			hw.el("p", "excerpt", m.Excerpt)
		}
		hw.child(tagList(m.Tags))
		hw.raw(`</article>`)
	})
}

func NotFoundComponent() templ.Component {
	return page("Not Found", component(func(hw *htmlWriter) {
		hw.raw(`<main class="not-found"><h1>404</h1><p>The page you are looking for does not exist.</p>`)
		hw.raw(`<p><a href="/blog">Back to the blog</a></p></main>`)
	}))
}

func link(href, text string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<a href="` + templ.EscapeString(string(templ.URL(href))) + `">`)
		hw.text(text)
		hw.raw(`</a>`)
	})
}

func dateTime(date string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<time datetime="` + templ.EscapeString(date) + `">`)
		hw.text(date)
		hw.raw(`</time>`)
	})
}

func tagList(tags []string) templ.Component {
	return component(func(hw *htmlWriter) {
		if len(tags) == 0 {
			return
		}
		hw.raw(`<ul class="tags">`)
		for _, t := range tags {
			hw.raw(`<li>`)
			hw.child(link("/blog?tag="+url.QueryEscape(t), t))
			hw.raw(`</li>`)
		}
		hw.raw(`</ul>`)
	})
}

// SectionComponent renders one already dispatched section.
func SectionComponent(section RenderedSection) templ.Component {
	return component(func(hw *htmlWriter) {
		class := "section"
		if section.Err != nil {
			class += " section-error"
		}
		hw.open("section", class)
		for _, b := range section.Blocks {
			hw.child(blockComponent(b))
		}
		hw.raw(`</section>`)
	})
}

func blockComponent(b Block) templ.Component {
	switch b.Kind {
	case KindTable:
		return tableComponent(b.Table)
	case KindList:
		return listComponent(b)
	}

	return component(func(hw *htmlWriter) {
		switch b.Kind {
		case KindHeading:
			hw.el("h2", "", b.Text)
		case KindParagraph:
			hw.el("p", "", b.Text)
		case KindCode:
			if b.Label != "" {
				hw.el("h4", "", b.Label)
			}
			hw.child(codeBlockComponent(b.Code))
		case KindMethods:
			hw.raw(`<div class="methods">`)
			for _, m := range b.Methods {
				hw.raw(`<div class="method">`)
				hw.el("h4", "", m.Method)
				hw.raw(`<p class="benefit"><strong>Benefit:</strong> `)
				hw.text(m.Benefit)
				hw.raw(`</p><p class="drawback"><strong>Drawback:</strong> `)
				hw.text(m.Drawback)
				hw.raw(`</p></div>`)
			}
			hw.raw(`</div>`)
		case KindExamples:
			hw.raw(`<div class="examples">`)
			for _, e := range b.Examples {
				hw.raw(`<div class="example">`)
				hw.el("h4", "", e.Type)
				hw.el("p", "", e.UseCase)
				hw.child(codeBlockComponent(&blog.CodeBlock{Language: "typescript", Content: e.Code}))
				hw.raw(`</div>`)
			}
			hw.raw(`</div>`)
		case KindExample:
			hw.raw(`<div class="example">`)
			hw.el("h4", "", b.Label)
			if b.Code != nil {
				hw.child(codeBlockComponent(b.Code))
			} else {
				hw.el("p", "", b.Text)
			}
			hw.raw(`</div>`)
		case KindDecisionMatrix:
			hw.raw(`<div class="decision-matrix">`)
			for _, d := range b.Decisions {
				hw.raw(`<div class="decision"><h4>Scenario:</h4>`)
				hw.el("p", "", d.Scenario)
				hw.raw(`<h4>Recommendation:</h4>`)
				hw.el("p", "", d.Recommendation)
				hw.raw(`</div>`)
			}
			hw.raw(`</div>`)
		case KindPatterns:
			hw.raw(`<div class="patterns">`)
			for _, p := range b.Patterns {
				hw.raw(`<div class="pattern">`)
				hw.el("h4", "", p.Title)
				if p.Code != nil {
					hw.child(codeBlockComponent(p.Code))
				}
				if p.Tool != "" {
					hw.raw(`<p><strong>Tool:</strong> `)
					hw.text(p.Tool)
					hw.raw(`</p>`)
				}
				if p.Command != "" {
					hw.raw(`<pre><code>`)
					hw.text(p.Command)
					hw.raw(`</code></pre>`)
				}
				if p.Tip != "" {
					hw.el("p", "tip", p.Tip)
				}
				hw.raw(`</div>`)
			}
			hw.raw(`</div>`)
		case KindCallout:
			hw.open("aside", "callout callout-"+calloutClass(b.Label))
			hw.el("h4", "", b.Label+":")
			hw.el("p", "", b.Text)
			hw.raw(`</aside>`)
		case KindError:
			hw.el("h2", "", b.Label)
			hw.el("p", "error", b.Text)
		}
	})
}

func tableComponent(t *Table) templ.Component {
	return component(func(hw *htmlWriter) {
		if t == nil {
			return
		}
		hw.open("table", "table-"+string(t.Variant))
		hw.raw(`<thead><tr>`)
		for _, h := range t.Headers {
			hw.el("th", "", h)
		}
		hw.raw(`</tr></thead><tbody>`)
		for _, row := range t.Rows {
			hw.raw(`<tr>`)
			for _, cell := range row {
				hw.el("td", "", cell)
			}
			hw.raw(`</tr>`)
		}
		hw.raw(`</tbody></table>`)
	})
}

func codeBlockComponent(cb *blog.CodeBlock) templ.Component {
	return component(func(hw *htmlWriter) {
		if cb == nil {
			return
		}
		if cb.File != "" {
			hw.el("p", "code-file", cb.File)
		}
		hw.raw(`<pre class="code-block" data-language="` + templ.EscapeString(cb.Language) + `"><code>`)
		hw.text(cb.Content)
		hw.raw(`</code></pre>`)
	})
}

func listComponent(b Block) templ.Component {
	return component(func(hw *htmlWriter) {
		if b.Label != "" {
			hw.el("h4", "", b.Label+":")
		}
		if b.Style == ListChips {
			hw.raw(`<div class="chips">`)
			for _, item := range b.Items {
				hw.el("span", "chip", item)
			}
			hw.raw(`</div>`)
			return
		}
		hw.raw(`<ul class="list-` + templ.EscapeString(string(b.Style)) + `" data-count="` + strconv.Itoa(len(b.Items)) + `">`)
		for _, item := range b.Items {
			hw.el("li", "", listMarkers[b.Style]+item)
		}
		hw.raw(`</ul>`)
	})
}

func calloutClass(label string) string {
	switch label {
	case "Real-world Use Case", "Use Case":
		return "use-case"
	case "Benefit":
		return "benefit"
	case "Note":
		return "note"
	case "Advice":
		return "advice"
	default:
		return "tip"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
