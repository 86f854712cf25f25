package feed

import (
	"net/url"
	"strings"

	"github.com/itchan-dev/musicthread-rss/internal/domain"
	internal_errors "github.com/itchan-dev/musicthread-rss/internal/errors"
	"github.com/itchan-dev/musicthread-rss/internal/utils"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const (
	atomNamespace  = "http://www.w3.org/2005/Atom"
	mediaNamespace = "http://search.yahoo.com/mrss/"

	generatorName    = "MusicThread RSS"
	generatorURI     = "https://github.com/brushedtype/musicthread-rss"
	generatorVersion = "0.9.0"

	// ISO-8601 in UTC with milliseconds
	updatedLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Options struct {
	SiteBaseURL          string // thread and link pages
	FeedBaseURL          string // where this service is reachable
	SanitizeDescriptions bool
}

// Generator turns a fetched thread into an Atom document. It does no I/O
// and is safe for concurrent use.
type Generator struct {
	clock       Clock
	siteBaseURL string
	feedBaseURL string
	policy      *bluemonday.Policy
}

func NewGenerator(clock Clock, opts Options) *Generator {
	if clock == nil {
		clock = SystemClock
	}
	g := &Generator{
		clock:       clock,
		siteBaseURL: strings.TrimRight(opts.SiteBaseURL, "/"),
		feedBaseURL: strings.TrimRight(opts.FeedBaseURL, "/"),
	}
	if opts.SanitizeDescriptions {
		g.policy = bluemonday.UGCPolicy()
	}
	return g
}

// Render validates the payload and returns the serialized feed. Payloads
// with missing required fields fail with a GenerationFailure.
func (g *Generator) Render(payload *domain.ThreadResponse) ([]byte, error) {
	if payload == nil {
		return nil, internal_errors.GenerationFailure(errors.New("empty thread payload"))
	}
	if err := utils.Validate(payload); err != nil {
		return nil, internal_errors.GenerationFailure(errors.Wrapf(err, "invalid payload for thread %q", payload.Thread.Key))
	}
	return Document(g.feed(payload)), nil
}

func (g *Generator) feed(payload *domain.ThreadResponse) *Node {
	thread := &payload.Thread
	selfURL := g.feedURL(thread.Key)

	root := El("feed").RawAttr("xmlns", atomNamespace)
	root.Append(
		El("generator").
			RawAttr("uri", generatorURI).
			RawAttr("version", generatorVersion).
			Text(generatorName),
		El("updated").RawText(g.clock.Now().UTC().Format(updatedLayout)),
		El("author", El("name").Text(thread.Author.Name)),
		El("link").
			RawAttr("href", escapeURL(selfURL)).
			RawAttr("rel", "self").
			RawAttr("type", "application/atom+xml"),
		El("link").
			RawAttr("href", escapeURL(g.threadURL(thread.Key))).
			RawAttr("rel", "alternate").
			RawAttr("type", "text/html"),
		El("id").RawText(escapeURL(selfURL)),
		// thread titles come from MusicThread already formatted as HTML
		El("title").RawAttr("type", "html").RawText(thread.Title),
	)
	if thread.HasDescription() {
		root.Append(El("subtitle").Text(thread.Description))
	}
	root.Append(lo.Map(thread.Tags, func(tag string, _ int) *Node {
		return El("category").Attr("term", tag)
	})...)

	for i := range payload.Links {
		root.Append(g.entry(&payload.Links[i]))
	}
	return root
}

func (g *Generator) entry(link *domain.Link) *Node {
	linkURL := escapeURL(g.linkURL(link.Key))

	entry := El("entry",
		El("title").RawAttr("type", "html").Text(link.Title),
		El("link").
			RawAttr("href", linkURL).
			RawAttr("rel", "alternate").
			Attr("title", link.Title).
			RawAttr("type", "text/html"),
		El("published").RawText(link.SubmittedAt),
		El("updated").RawText(link.SubmittedAt),
		El("id").RawText(linkURL),
		El("author", El("name").Text(link.Artist)),
		El("category").
			RawAttr("term", "type").
			Attr("label", CapitalizeFirstLowerRest(link.Type)),
	)
	if link.HasDescription() {
		entry.Append(El("summary").RawAttr("type", "html").Text(link.Description))
	}
	entry.Append(
		El("media:thumbnail").
			RawAttr("url", escapeURL(link.ThumbnailURL)).
			RawAttr("xmlns:media", mediaNamespace),
		// the fragment escapes its own text, Text escapes the whole
		// fragment again so readers get the HTML back after one decode
		El("content").RawAttr("type", "html").Text(g.itemContent(link)),
	)
	return entry
}

func (g *Generator) feedURL(threadKey string) string {
	return g.feedBaseURL + "/thread/" + url.PathEscape(threadKey)
}

func (g *Generator) threadURL(threadKey string) string {
	return g.siteBaseURL + "/thread/" + url.PathEscape(threadKey)
}

func (g *Generator) linkURL(linkKey string) string {
	return g.siteBaseURL + "/link/" + url.PathEscape(linkKey)
}
