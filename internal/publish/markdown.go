package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"wikispace/internal/content"
	"wikispace/internal/model"
	"wikispace/internal/store"
)

type RenderOptions struct {
	// SkipMeta omits the "## Meta" block.
	SkipMeta bool
	// Inline renders every page body into the space document instead of linking
	// to per-page files.
	Inline bool
}

func RenderPageMarkdown(st *store.Store, pageID string, opt RenderOptions) (string, error) {
	if st == nil {
		return "", fmt.Errorf("missing store")
	}
	page, ok := st.GetPage(strings.TrimSpace(pageID))
	if !ok || page == nil {
		return "", fmt.Errorf("page not found: %s", pageID)
	}

	var buf bytes.Buffer
	writePage(&buf, st, *page, 1, opt)
	return buf.String(), nil
}

func writePage(buf *bytes.Buffer, st *store.Store, page model.Page, level int, opt RenderOptions) {
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}
	h := strings.Repeat("#", level)

	writeLn(h + " " + pageHeading(page))
	writeLn("")

	if !opt.SkipMeta {
		writeLn(h + "# Meta")
		writeLn("")
		writeLn("- ID: " + page.ID)
		if sp, ok := st.GetSpace(page.SpaceID); ok {
			writeLn("- Space: " + strings.TrimSpace(sp.Name) + " (" + sp.ID + ")")
		} else {
			writeLn("- Space: " + page.SpaceID)
		}
		if pid := page.Parent(); pid != "" {
			if parent, ok := st.GetPage(pid); ok {
				writeLn("- Parent: " + strings.TrimSpace(parent.Title) + " (" + pid + ")")
			} else {
				writeLn("- Parent: " + pid)
			}
		}
		if page.IsFavorite {
			writeLn("- Favorite: true")
		}
		writeLn("- Created: " + page.CreatedAt.UTC().Format(time.RFC3339))
		writeLn("- Updated: " + page.UpdatedAt.UTC().Format(time.RFC3339))
		writeLn("")
	}

	body := content.ToMarkdown(page.Content)
	// The editor's first heading usually repeats the title.
	if first, rest, _ := strings.Cut(body, "\n"); first == "# "+strings.TrimSpace(page.Title) {
		body = strings.TrimSpace(rest)
	}
	if body != "" {
		writeLn(shiftHeadings(body, level-1))
		writeLn("")
	}

	children := st.GetChildPages(page.ID)
	if len(children) > 0 && !opt.Inline {
		writeLn(h + "# Children")
		writeLn("")
		for _, ch := range children {
			fmt.Fprintf(buf, "- [%s](%s.md)\n", pageHeading(ch), ch.ID)
		}
		writeLn("")
	}
}

// RenderSpaceMarkdown renders a space index: the page tree depth-first, linked to
// per-page files, or with every page inlined when opt.Inline is set.
func RenderSpaceMarkdown(st *store.Store, spaceID string, opt RenderOptions) (string, error) {
	if st == nil {
		return "", fmt.Errorf("missing store")
	}
	sp, ok := st.GetSpace(strings.TrimSpace(spaceID))
	if !ok || sp == nil {
		return "", fmt.Errorf("space not found: %s", spaceID)
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(sp.Name)
	if sp.Icon != "" {
		title = sp.Icon + " " + title
	}
	writeLn("# " + title)
	writeLn("")
	if d := strings.TrimSpace(sp.Description); d != "" {
		writeLn(d)
		writeLn("")
	}

	forest := allExpanded(st.Tree(sp.ID))
	if opt.Inline {
		for _, n := range store.VisibleRows(forest) {
			writePage(&buf, st, n.Page, min(n.Depth+2, 6), opt)
		}
		return strings.TrimRight(buf.String(), "\n") + "\n", nil
	}

	writeLn("## Pages")
	writeLn("")
	for _, n := range store.VisibleRows(forest) {
		prefix := strings.Repeat("  ", n.Depth)
		fmt.Fprintf(&buf, "%s- [%s](pages/%s.md)\n", prefix, pageHeading(n.Page), n.Page.ID)
	}
	return buf.String(), nil
}

// allExpanded marks the whole forest expanded so VisibleRows walks every page,
// whatever the UI has collapsed.
func allExpanded(forest []*model.TreeNode) []*model.TreeNode {
	stack := append([]*model.TreeNode(nil), forest...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n.Expanded = true
		stack = append(stack, n.Children...)
	}
	return forest
}

func pageHeading(p model.Page) string {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "(untitled)"
	}
	if p.Emoji != "" {
		return p.Emoji + " " + title
	}
	return title
}

// shiftHeadings demotes markdown headings by n levels, capped at h6. Fenced code is
// left alone.
func shiftHeadings(md string, n int) string {
	if n <= 0 {
		return md
	}
	lines := strings.Split(md, "\n")
	inFence := false
	for i, l := range lines {
		if strings.HasPrefix(l, "```") {
			inFence = !inFence
			continue
		}
		if inFence || !strings.HasPrefix(l, "#") {
			continue
		}
		hashes := len(l) - len(strings.TrimLeft(l, "#"))
		lines[i] = strings.Repeat("#", min(n, 6-hashes)) + l
	}
	return strings.Join(lines, "\n")
}
