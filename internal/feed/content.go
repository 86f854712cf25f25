package feed

import (
	"strings"

	"github.com/itchan-dev/musicthread-rss/internal/domain"
)

// itemContent is the HTML shown by feed readers for a single link. Title and
// artist are escaped here; the description is trusted markup and goes in as
// is (through the sanitizer when one is configured).
func (g *Generator) itemContent(link *domain.Link) string {
	var b strings.Builder
	b.WriteString(`<img src="` + escapeURL(link.ThumbnailURL) + `">`)
	b.WriteString("\n<h1>" + Escape(link.Title) + "</h1>")
	b.WriteString("\n<h3>by " + Escape(link.Artist) + "</h3>")
	if link.HasDescription() {
		b.WriteString("\n<p>" + g.description(link.Description) + "</p>")
	}
	b.WriteString("\n" + `<p><a href="` + escapeURL(g.linkURL(link.Key)) + `">Open in MusicThread</a></p>`)
	return b.String()
}

func (g *Generator) description(s string) string {
	if g.policy == nil {
		return s
	}
	return g.policy.Sanitize(s)
}
