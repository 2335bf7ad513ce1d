package fetcher

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	defaultTitle       = "Extracted Content"
	minParagraphLength = 20
)

// matcher is a tiny stand-in for a CSS selector
type matcher func(n *html.Node) bool

func tag(a atom.Atom) matcher {
	return func(n *html.Node) bool { return n.DataAtom == a }
}

func attr(key, value string) matcher {
	return func(n *html.Node) bool { return attrValue(n, key) == value }
}

func class(name string) matcher {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(attrValue(n, "class")) {
			if c == name {
				return true
			}
		}
		return false
	}
}

// contentSelectors are tried in order, first element found wins
var contentSelectors = []matcher{
	tag(atom.Main),
	attr("role", "main"),
	class("content"),
	class("main-content"),
	class("assignment"),
	class("announcement"),
	class("post-content"),
	tag(atom.Article),
	class("description"),
}

type page struct {
	title string
	text  string
}

// parsePage pulls the title and the main text out of an HTML document
func parsePage(body string) (page, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return page{}, err
	}

	return page{
		title: pageTitle(doc),
		text:  cleanText(mainText(doc)),
	}, nil
}

func pageTitle(doc *html.Node) string {
	for _, m := range []matcher{tag(atom.Title), tag(atom.H1)} {
		if n := findFirst(doc, m); n != nil {
			if title := cleanText(textContent(n)); title != "" {
				return title
			}
		}
	}
	return defaultTitle
}

// mainText tries the content selectors, then long paragraphs, then the body
func mainText(doc *html.Node) string {
	for _, m := range contentSelectors {
		if n := findFirst(doc, m); n != nil {
			if text := textContent(n); strings.TrimSpace(text) != "" {
				return text
			}
		}
	}

	var paragraphs []string
	for _, p := range findAll(doc, tag(atom.P)) {
		text := strings.TrimSpace(textContent(p))
		if len(text) > minParagraphLength {
			paragraphs = append(paragraphs, text)
		}
	}
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n\n")
	}

	if body := findFirst(doc, tag(atom.Body)); body != nil {
		return textContent(body)
	}
	return ""
}

// findFirst walks the tree depth-first in document order
func findFirst(n *html.Node, m matcher) *html.Node {
	if n.Type == html.ElementNode && m(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, m); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, m matcher) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && m(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

// textContent joins the text below n, skipping scripts and styles
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteString(" ")
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// cleanText collapses whitespace runs into single spaces
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
