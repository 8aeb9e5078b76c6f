package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrBaseURL indicates the base URL for link rewriting is unusable.
var ErrBaseURL = errors.New("invalid base URL")

// bodyContext parses fragments as children of <body>.
var bodyContext = &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}

// LinkRewriter prefixes relative link and image targets of rendered
// fragments with a base URL. A nil LinkRewriter leaves fragments alone.
// It is immutable and safe for concurrent use.
type LinkRewriter struct {
	base *url.URL
}

// NewLinkRewriter parses baseURL, which must be absolute or root-relative,
// and treats it as a directory. An empty baseURL yields a nil rewriter.
func NewLinkRewriter(baseURL string) (*LinkRewriter, error) {
	if baseURL == "" {
		return nil, nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBaseURL, err)
	}
	if !base.IsAbs() && !strings.HasPrefix(base.Path, "/") {
		return nil, fmt.Errorf("%w: %q must be absolute or root-relative", ErrBaseURL, baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return &LinkRewriter{base: base}, nil
}

// Rewrite resolves a[href] and img[src] targets that carry neither scheme,
// host, leading slash nor leading "#". Everything else is kept as written,
// including targets that fail to parse.
func (r *LinkRewriter) Rewrite(fragment string) (string, error) {
	if r == nil {
		return fragment, nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyContext)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range nodes {
		r.visit(n)
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func (r *LinkRewriter) visit(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.A:
			r.resolveAttr(n, "href")
		case atom.Img:
			r.resolveAttr(n, "src")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.visit(c)
	}
}

func (r *LinkRewriter) resolveAttr(n *html.Node, key string) {
	for i := range n.Attr {
		if n.Attr[i].Key != key {
			continue
		}
		if ref, ok := relativeTarget(n.Attr[i].Val); ok {
			n.Attr[i].Val = r.base.ResolveReference(ref).String()
		}
	}
}

// relativeTarget parses target when it is relative to the page directory.
func relativeTarget(target string) (*url.URL, bool) {
	if target == "" || target[0] == '#' || target[0] == '/' {
		return nil, false
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return nil, false
	}
	return u, true
}
