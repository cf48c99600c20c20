package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wikispace/internal/content"
	"wikispace/internal/model"
	"wikispace/internal/store"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// op is one scripted mutation. Page and Parent may name an earlier create's Ref as
// "$ref".
type op struct {
	Op       string  `json:"op" yaml:"op" toml:"op"`
	Ref      string  `json:"ref,omitempty" yaml:"ref,omitempty" toml:"ref,omitempty"`
	Page     string  `json:"page,omitempty" yaml:"page,omitempty" toml:"page,omitempty"`
	Space    string  `json:"space,omitempty" yaml:"space,omitempty" toml:"space,omitempty"`
	Parent   *string `json:"parent,omitempty" yaml:"parent,omitempty" toml:"parent,omitempty"`
	Title    *string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Content  *string `json:"content,omitempty" yaml:"content,omitempty" toml:"content,omitempty"`
	Markdown *string `json:"markdown,omitempty" yaml:"markdown,omitempty" toml:"markdown,omitempty"`
	Emoji    *string `json:"emoji,omitempty" yaml:"emoji,omitempty" toml:"emoji,omitempty"`
	Favorite *bool   `json:"favorite,omitempty" yaml:"favorite,omitempty" toml:"favorite,omitempty"`
}

type opsFile struct {
	Ops []op `json:"ops" yaml:"ops" toml:"ops"`
}

type opResult struct {
	Index   int      `json:"index"`
	Op      string   `json:"op"`
	PageID  string   `json:"pageId,omitempty"`
	Deleted []string `json:"deleted,omitempty"`
}

func newApplyCmd(app *App) *cobra.Command {
	var withPages bool

	cmd := &cobra.Command{
		Use:   "apply <ops-file>",
		Short: "Apply scripted page operations to the seeded store and print the outcome",
		Long: strings.TrimSpace(`
Runs create/update/delete/favorite operations from a YAML, TOML or JSON file
against this invocation's store. Nothing is persisted: the output (results,
events and optionally the final pages) is the only trace.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ops, err := loadOps(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			results, err := applyOps(st, ops)
			if err != nil {
				return writeErr(cmd, err)
			}
			data := map[string]any{
				"results": results,
				"events":  st.RecentEvents(0),
			}
			if withPages {
				data["pages"] = st.Pages()
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}

	cmd.Flags().BoolVar(&withPages, "pages", false, "Include the resulting page collection")
	return cmd
}

func loadOps(path string) ([]op, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ops: %w", err)
	}
	var f opsFile
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "yaml", "yml":
		err = yaml.Unmarshal(b, &f)
	case "toml":
		err = toml.Unmarshal(b, &f)
	case "json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	default:
		return nil, fmt.Errorf("ops %s: unsupported format", path)
	}
	if err != nil {
		return nil, fmt.Errorf("ops %s: %w", path, err)
	}
	return f.Ops, nil
}

// applyOps runs ops in order and stops at the first one that names something
// missing. Earlier ops stay applied.
func applyOps(st *store.Store, ops []op) ([]opResult, error) {
	refs := map[string]string{}
	resolve := func(id string) string {
		if strings.HasPrefix(id, "$") {
			if real, ok := refs[id[1:]]; ok {
				return real
			}
		}
		return id
	}

	results := make([]opResult, 0, len(ops))
	for i, o := range ops {
		kind := strings.ToLower(strings.TrimSpace(o.Op))
		res := opResult{Index: i, Op: kind}
		pageID := resolve(strings.TrimSpace(o.Page))
		body, err := opContent(o)
		if err != nil {
			return results, fmt.Errorf("op #%d: %w", i+1, err)
		}

		switch kind {
		case "create":
			if err := checkSpace(st, o.Space); err != nil {
				return results, fmt.Errorf("op #%d: %w", i+1, err)
			}
			var parent *string
			if o.Parent != nil && strings.TrimSpace(*o.Parent) != "" {
				pid := resolve(strings.TrimSpace(*o.Parent))
				if err := checkNewParent(st, o.Space, pid); err != nil {
					return results, fmt.Errorf("op #%d: %w", i+1, err)
				}
				parent = &pid
			}
			title := ""
			if o.Title != nil {
				title = *o.Title
			}
			p := st.CreatePageWith(o.Space, title, parent, model.PageUpdate{Content: body, Emoji: o.Emoji, IsFavorite: o.Favorite})
			if o.Ref != "" {
				refs[o.Ref] = p.ID
			}
			res.PageID = p.ID

		case "update":
			if _, ok := st.GetPage(pageID); !ok {
				return results, fmt.Errorf("op #%d: %w", i+1, errNotFound("page", pageID))
			}
			u := model.PageUpdate{Title: o.Title, Content: body, Emoji: o.Emoji, IsFavorite: o.Favorite}
			if o.Space != "" {
				sid := o.Space
				u.SpaceID = &sid
			}
			if o.Parent != nil {
				if pid := strings.TrimSpace(*o.Parent); pid == "" {
					u.Parent = &model.ParentUpdate{}
				} else {
					pid = resolve(pid)
					u.Parent = &model.ParentUpdate{ID: &pid}
				}
			}
			followers, err := planMove(st, pageID, &u)
			if err != nil {
				return results, fmt.Errorf("op #%d: %w", i+1, err)
			}
			applyMove(st, pageID, u, followers)
			res.PageID = pageID

		case "delete":
			if _, ok := st.GetPage(pageID); !ok {
				return results, fmt.Errorf("op #%d: %w", i+1, errNotFound("page", pageID))
			}
			res.PageID = pageID
			res.Deleted = st.DeletePage(pageID)

		case "favorite":
			if !st.ToggleFavorite(pageID) {
				return results, fmt.Errorf("op #%d: %w", i+1, errNotFound("page", pageID))
			}
			res.PageID = pageID

		default:
			return results, fmt.Errorf("op #%d: unknown op %q (want create|update|delete|favorite)", i+1, o.Op)
		}
		results = append(results, res)
	}
	return results, nil
}

// opContent picks the op's content, converting markdown when that is what was given.
func opContent(o op) (*string, error) {
	switch {
	case o.Content != nil && o.Markdown != nil:
		return nil, errUsage("content and markdown are mutually exclusive")
	case o.Markdown != nil:
		html, err := content.FromMarkdown(*o.Markdown)
		if err != nil {
			return nil, err
		}
		return &html, nil
	}
	return o.Content, nil
}
