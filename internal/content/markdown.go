package content

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page content is the editor's HTML, stored verbatim. Nothing here is used by the
// store; these helpers exist for display (TUI), previews and markdown export.

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
	})
	return policy
}

// ToMarkdown converts the editor's HTML subset to markdown. Unknown elements
// degrade to their text.
func ToMarkdown(src string) string {
	nodes := parse(src)
	if len(nodes) == 0 {
		return ""
	}
	var w blockWriter
	for _, n := range nodes {
		w.block(n)
	}
	return strings.TrimSpace(w.String())
}

// PlainText strips all markup and collapses whitespace.
func PlainText(src string) string {
	nodes := parse(src)
	var parts []string
	for _, n := range nodes {
		if t := collapse(textOf(n)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Excerpt returns the first max runes of PlainText, with an ellipsis when cut.
func Excerpt(src string, max int) string {
	t := PlainText(src)
	r := []rune(t)
	if max <= 0 || len(r) <= max {
		return t
	}
	return strings.TrimRightFunc(string(r[:max]), unicode.IsSpace) + "…"
}

func WordCount(src string) int {
	return len(strings.Fields(PlainText(src)))
}

func parse(src string) []*html.Node {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil
	}
	clean := sanitizer().Sanitize(src)
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(clean), body)
	if err != nil {
		return []*html.Node{{Type: html.TextNode, Data: clean}}
	}
	return nodes
}

type blockWriter struct {
	strings.Builder
}

func (w *blockWriter) para(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	w.WriteString(s)
	w.WriteString("\n\n")
}

func (w *blockWriter) block(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.para(collapse(n.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		w.para(strings.Repeat("#", level) + " " + inlineChildren(n))
	case atom.P:
		w.para(inlineChildren(n))
	case atom.Ul, atom.Ol:
		w.WriteString(renderList(n, 0))
		w.WriteString("\n")
	case atom.Pre:
		code := textOf(n)
		w.WriteString("```\n")
		w.WriteString(strings.TrimRight(code, "\n"))
		w.WriteString("\n```\n\n")
	case atom.Blockquote:
		var inner blockWriter
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			inner.block(c)
		}
		body := strings.TrimSpace(inner.String())
		if body == "" {
			return
		}
		lines := strings.Split(body, "\n")
		for i, l := range lines {
			if l == "" {
				lines[i] = ">"
				continue
			}
			lines[i] = "> " + l
		}
		w.WriteString(strings.Join(lines, "\n"))
		w.WriteString("\n\n")
	case atom.Hr:
		w.WriteString("---\n\n")
	case atom.Div, atom.Section, atom.Article, atom.Body:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.block(c)
		}
	default:
		w.para(inline(n))
	}
}

func renderList(n *html.Node, depth int) string {
	var b strings.Builder
	ordered := n.DataAtom == atom.Ol
	idx := 0
	indent := strings.Repeat("  ", depth)
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		idx++
		marker := "- "
		if ordered {
			marker = strconv.Itoa(idx) + ". "
		}

		var text strings.Builder
		var nested []string
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
				nested = append(nested, renderList(c, depth+1))
				continue
			}
			if c.Type == html.ElementNode && c.DataAtom == atom.P {
				text.WriteString(" " + inlineChildren(c) + " ")
				continue
			}
			text.WriteString(inline(c))
		}
		b.WriteString(indent + marker + collapse(text.String()) + "\n")
		for _, s := range nested {
			b.WriteString(s)
		}
	}
	return b.String()
}

func inlineChildren(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(inline(c))
	}
	return strings.TrimSpace(b.String())
}

func inline(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return collapseKeepEdges(n.Data)
	case html.ElementNode:
	default:
		return ""
	}

	switch n.DataAtom {
	case atom.Strong, atom.B:
		return wrap("**", inlineChildren(n))
	case atom.Em, atom.I:
		return wrap("*", inlineChildren(n))
	case atom.S, atom.Del, atom.Strike:
		return wrap("~~", inlineChildren(n))
	case atom.Code:
		return wrap("`", textOf(n))
	case atom.Br:
		return "  \n"
	case atom.A:
		text := inlineChildren(n)
		href := attr(n, "href")
		if href == "" {
			return text
		}
		if text == "" {
			text = href
		}
		return "[" + text + "](" + href + ")"
	default:
		return inlineChildren(n)
	}
}

func wrap(marker, s string) string {
	if s == "" {
		return ""
	}
	return marker + s + marker
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Br {
			b.WriteString("\n")
			continue
		}
		b.WriteString(textOf(c))
		if c.Type == html.ElementNode && isBlock(c.DataAtom) {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Li, atom.Ul, atom.Ol, atom.Pre, atom.Blockquote, atom.Div:
		return true
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// collapseKeepEdges collapses inner whitespace but keeps a single leading/trailing
// space so "a <b>b</b> c" keeps its word breaks.
func collapseKeepEdges(s string) string {
	if s == "" {
		return ""
	}
	c := collapse(s)
	if c == "" {
		return " "
	}
	if unicode.IsSpace(rune(s[0])) {
		c = " " + c
	}
	if unicode.IsSpace(rune(s[len(s)-1])) {
		c += " "
	}
	return c
}
