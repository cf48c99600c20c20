package cli

import (
	"fmt"
	"strings"

	"wikispace/internal/publish"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var toDir string
	var overwrite bool
	var skipMeta bool
	var raw bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export pages or spaces as Markdown (derived, read-only)",
	}

	pageCmd := &cobra.Command{
		Use:   "page <page-id>",
		Short: "Export a single page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := st.GetPage(args[0]); !ok {
				return writeErr(cmd, errNotFound("page", args[0]))
			}
			if strings.TrimSpace(toDir) != "" {
				res, err := publish.WritePage(st, args[0], toDir, publish.WriteOptions{SkipMeta: skipMeta, Overwrite: overwrite})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			}
			md, err := publish.RenderPageMarkdown(st, args[0], publish.RenderOptions{SkipMeta: skipMeta})
			if err != nil {
				return writeErr(cmd, err)
			}
			return emitMarkdown(cmd, app, raw, args[0], md)
		},
	}

	var inline bool
	spaceCmd := &cobra.Command{
		Use:   "space <space-id>",
		Short: "Export a space index (and, with --to, one file per page)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := st.GetSpace(args[0]); !ok {
				return writeErr(cmd, errNotFound("space", args[0]))
			}
			if strings.TrimSpace(toDir) != "" {
				if inline {
					return writeErr(cmd, errUsage("--inline cannot be combined with --to"))
				}
				res, err := publish.WriteSpace(st, args[0], toDir, publish.WriteOptions{SkipMeta: skipMeta, Overwrite: overwrite})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			}
			md, err := publish.RenderSpaceMarkdown(st, args[0], publish.RenderOptions{SkipMeta: skipMeta, Inline: inline})
			if err != nil {
				return writeErr(cmd, err)
			}
			return emitMarkdown(cmd, app, raw, args[0], md)
		},
	}
	spaceCmd.Flags().BoolVar(&inline, "inline", false, "Render every page into one document")

	cmd.PersistentFlags().StringVar(&toDir, "to", "", "Write files under this directory instead of printing")
	cmd.PersistentFlags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	cmd.PersistentFlags().BoolVar(&skipMeta, "no-meta", false, "Omit the Meta section")
	cmd.PersistentFlags().BoolVar(&raw, "raw", false, "Print raw markdown (no envelope)")

	cmd.AddCommand(pageCmd)
	cmd.AddCommand(spaceCmd)
	return cmd
}

func emitMarkdown(cmd *cobra.Command, app *App, raw bool, id, md string) error {
	if raw {
		_, err := fmt.Fprint(cmd.OutOrStdout(), md)
		return err
	}
	return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "markdown": md}})
}
