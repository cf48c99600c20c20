package cli

import (
	"strings"

	"wikispace/internal/content"
	"wikispace/internal/model"
	"wikispace/internal/store"

	"github.com/spf13/cobra"
)

func newPagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pages",
		Aliases: []string{"page"},
		Short:   "Page commands",
	}
	cmd.AddCommand(newPagesListCmd(app))
	cmd.AddCommand(newPagesShowCmd(app))
	cmd.AddCommand(newPagesChildrenCmd(app))
	cmd.AddCommand(newPagesTreeCmd(app))
	cmd.AddCommand(newPagesCreateCmd(app))
	cmd.AddCommand(newPagesUpdateCmd(app))
	cmd.AddCommand(newPagesDeleteCmd(app))
	cmd.AddCommand(newPagesFavoriteCmd(app))
	return cmd
}

func newPagesListCmd(app *App) *cobra.Command {
	var spaceID string
	var favorites bool
	var roots bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pages (collection order)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			spaceID = strings.TrimSpace(spaceID)
			if roots && spaceID == "" {
				return writeErr(cmd, errUsage("--roots requires --space"))
			}
			if spaceID != "" {
				if _, ok := st.GetSpace(spaceID); !ok {
					return writeErr(cmd, errNotFound("space", spaceID))
				}
			}

			var pages []model.Page
			switch {
			case roots:
				pages = st.RootPages(spaceID)
			case spaceID != "":
				pages = st.GetPagesForSpace(spaceID)
			default:
				pages = st.Pages()
			}
			if favorites {
				pages = filterPages(pages, func(p model.Page) bool { return p.IsFavorite })
			}
			return writeOut(cmd, app, map[string]any{"data": nonNilPages(pages)})
		},
	}

	cmd.Flags().StringVar(&spaceID, "space", "", "Only pages in this space")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "Only favourite pages")
	cmd.Flags().BoolVar(&roots, "roots", false, "Only root pages (requires --space)")
	return cmd
}

func newPagesShowCmd(app *App) *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "show <page-id>",
		Short: "Show a page with its breadcrumb and children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, ok := st.GetPage(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("page", args[0]))
			}

			out := map[string]any{
				"page":        p,
				"ancestors":   nonNilPages(st.Ancestors(p.ID)),
				"children":    nonNilPages(st.GetChildPages(p.ID)),
				"descendants": len(st.Descendants(p.ID)),
				"wordCount":   content.WordCount(p.Content),
			}
			if sp, ok := st.GetSpace(p.SpaceID); ok {
				out["space"] = sp
			}
			if markdown {
				out["markdown"] = content.ToMarkdown(p.Content)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Include the content converted to markdown")
	return cmd
}

func newPagesChildrenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "children <page-id>",
		Short: "List the direct children of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := st.GetPage(args[0]); !ok {
				return writeErr(cmd, errNotFound("page", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": nonNilPages(st.GetChildPages(args[0]))})
		},
	}
}

type treeRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Emoji       string `json:"emoji"`
	Depth       int    `json:"depth"`
	HasChildren bool   `json:"hasChildren"`
}

func newPagesTreeCmd(app *App) *cobra.Command {
	var spaceID string
	var flat bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a space's page tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			spaceID = strings.TrimSpace(spaceID)
			if spaceID == "" {
				spaceID = st.UI().SelectedSpace()
			}
			if _, ok := st.GetSpace(spaceID); !ok {
				return writeErr(cmd, errNotFound("space", spaceID))
			}

			forest := st.Tree(spaceID)
			if !flat {
				return writeOut(cmd, app, map[string]any{"data": forest})
			}
			expandAll(forest)
			rows := []treeRow{}
			for _, n := range store.VisibleRows(forest) {
				rows = append(rows, treeRow{ID: n.Page.ID, Title: n.Page.Title, Emoji: n.Page.Emoji, Depth: n.Depth, HasChildren: len(n.Children) > 0})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}

	cmd.Flags().StringVar(&spaceID, "space", "", "Space id (default: first space)")
	cmd.Flags().BoolVar(&flat, "flat", false, "Depth-first rows instead of nested nodes")
	return cmd
}

func newPagesCreateCmd(app *App) *cobra.Command {
	var spaceID string
	var title string
	var parentID string
	var emoji string
	var md string
	var body string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a page",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := st.GetSpace(spaceID); !ok {
				return writeErr(cmd, errNotFound("space", spaceID))
			}
			var parent *string
			if pid := strings.TrimSpace(parentID); pid != "" {
				if err := checkNewParent(st, spaceID, pid); err != nil {
					return writeErr(cmd, err)
				}
				parent = &pid
			}

			var initial model.PageUpdate
			if cmd.Flags().Changed("emoji") {
				initial.Emoji = &emoji
			}
			if cmd.Flags().Changed("content") {
				initial.Content = &body
			}
			if cmd.Flags().Changed("markdown") {
				converted, err := content.FromMarkdown(md)
				if err != nil {
					return writeErr(cmd, err)
				}
				initial.Content = &converted
			}
			p := st.CreatePageWith(spaceID, strings.TrimSpace(title), parent, initial)
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&spaceID, "space", "", "Space id")
	cmd.Flags().StringVar(&title, "title", "", "Page title")
	cmd.Flags().StringVar(&parentID, "parent", "", "Parent page id (same space)")
	cmd.Flags().StringVar(&emoji, "emoji", "", "Page emoji (default "+store.DefaultPageEmoji+")")
	cmd.Flags().StringVar(&body, "content", "", "Initial content (editor HTML)")
	cmd.Flags().StringVar(&md, "markdown", "", "Initial content as markdown (converted to editor HTML)")
	cmd.MarkFlagsMutuallyExclusive("content", "markdown")
	_ = cmd.MarkFlagRequired("space")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newPagesUpdateCmd(app *App) *cobra.Command {
	var title, body, md, emoji, spaceID, parentID string
	var root bool
	var favorite bool

	cmd := &cobra.Command{
		Use:   "update <page-id>",
		Short: "Update page fields (only the flags given are changed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := args[0]
			if _, ok := st.GetPage(id); !ok {
				return writeErr(cmd, errNotFound("page", id))
			}

			flags := cmd.Flags()
			var u model.PageUpdate
			if flags.Changed("title") {
				u.Title = &title
			}
			if flags.Changed("content") {
				u.Content = &body
			}
			if flags.Changed("markdown") {
				converted, err := content.FromMarkdown(md)
				if err != nil {
					return writeErr(cmd, err)
				}
				u.Content = &converted
			}
			if flags.Changed("emoji") {
				u.Emoji = &emoji
			}
			if flags.Changed("space") {
				u.SpaceID = &spaceID
			}
			if flags.Changed("favorite") {
				u.IsFavorite = &favorite
			}
			switch {
			case root && flags.Changed("parent"):
				return writeErr(cmd, errUsage("--root and --parent are mutually exclusive"))
			case root:
				u.Parent = &model.ParentUpdate{}
			case flags.Changed("parent"):
				pid := parentID
				u.Parent = &model.ParentUpdate{ID: &pid}
			}
			if u.Empty() {
				return writeErr(cmd, errUsage("nothing to update (pass at least one field flag)"))
			}
			followers, err := planMove(st, id, &u)
			if err != nil {
				return writeErr(cmd, err)
			}

			applyMove(st, id, u, followers)
			p, _ := st.GetPage(id)
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&body, "content", "", "New content (editor HTML)")
	cmd.Flags().StringVar(&md, "markdown", "", "New content as markdown (converted to editor HTML)")
	cmd.MarkFlagsMutuallyExclusive("content", "markdown")
	cmd.Flags().StringVar(&emoji, "emoji", "", "New emoji")
	cmd.Flags().StringVar(&spaceID, "space", "", "Move to space with its subtree (becomes a root there unless --parent is given)")
	cmd.Flags().StringVar(&parentID, "parent", "", "New parent page id")
	cmd.Flags().BoolVar(&root, "root", false, "Make this a root page")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "Set the favourite flag")
	return cmd
}

func newPagesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <page-id>",
		Short: "Delete a page and all of its descendants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := st.GetPage(args[0]); !ok {
				return writeErr(cmd, errNotFound("page", args[0]))
			}
			removed := st.DeletePage(args[0])
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"deleted":   removed,
					"remaining": len(st.Pages()),
				},
			})
		},
	}
}

func newPagesFavoriteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <page-id>",
		Short: "Toggle a page's favourite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !st.ToggleFavorite(args[0]) {
				return writeErr(cmd, errNotFound("page", args[0]))
			}
			p, _ := st.GetPage(args[0])
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}

func filterPages(pages []model.Page, keep func(model.Page) bool) []model.Page {
	out := []model.Page{}
	for _, p := range pages {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func nonNilPages(pages []model.Page) []model.Page {
	if pages == nil {
		return []model.Page{}
	}
	return pages
}

func expandAll(forest []*model.TreeNode) {
	stack := append([]*model.TreeNode(nil), forest...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n.Expanded = true
		stack = append(stack, n.Children...)
	}
}

func checkSpace(st *store.Store, spaceID string) error {
	if _, ok := st.GetSpace(spaceID); !ok {
		return errNotFound("space", spaceID)
	}
	return nil
}

// checkNewParent validates the parent of a page about to be created in spaceID.
func checkNewParent(st *store.Store, spaceID, parentID string) error {
	pp, ok := st.GetPage(parentID)
	if !ok {
		return errNotFound("page", parentID)
	}
	if pp.SpaceID != spaceID {
		return errUsage("parent %s is in space %s, not %s", parentID, pp.SpaceID, spaceID)
	}
	return nil
}

// checkReparent rejects moves that would orphan id, close a parent cycle or nest it
// under a page of another space. spaceID is the space id will live in after the move.
func checkReparent(st *store.Store, id, parentID, spaceID string) error {
	if parentID == id {
		return errUsage("a page cannot be its own parent")
	}
	pp, ok := st.GetPage(parentID)
	if !ok {
		return errNotFound("page", parentID)
	}
	if pp.SpaceID != spaceID {
		return errUsage("parent %s is in space %s, not %s", parentID, pp.SpaceID, spaceID)
	}
	for _, d := range st.Descendants(id) {
		if d == parentID {
			return errUsage("cannot move %s under its own descendant %s", id, parentID)
		}
	}
	return nil
}

// planMove validates the space and parent changes in u for page id. A move to another
// space without an explicit parent makes the page a root there. The returned ids are
// the descendants that have to follow the page into its new space.
func planMove(st *store.Store, id string, u *model.PageUpdate) ([]string, error) {
	p, ok := st.GetPage(id)
	if !ok {
		return nil, errNotFound("page", id)
	}
	target := p.SpaceID
	if u.SpaceID != nil {
		if err := checkSpace(st, *u.SpaceID); err != nil {
			return nil, err
		}
		target = *u.SpaceID
	}
	if u.Parent != nil && u.Parent.ID != nil {
		if err := checkReparent(st, id, *u.Parent.ID, target); err != nil {
			return nil, err
		}
	}
	if target == p.SpaceID {
		return nil, nil
	}
	if u.Parent == nil && p.ParentID != nil {
		u.Parent = &model.ParentUpdate{}
	}
	return st.Descendants(id), nil
}

// applyMove writes u and carries the followers returned by planMove into the page's
// new space.
func applyMove(st *store.Store, id string, u model.PageUpdate, followers []string) {
	st.UpdatePage(id, u)
	if u.SpaceID == nil {
		return
	}
	for _, d := range followers {
		sid := *u.SpaceID
		st.UpdatePage(d, model.PageUpdate{SpaceID: &sid})
	}
}
