package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"wikispace/internal/model"
	"wikispace/internal/store"
)

type WriteOptions struct {
	SkipMeta  bool
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

func WritePage(st *store.Store, pageID string, toDir string, opt WriteOptions) (WriteResult, error) {
	if st == nil {
		return WriteResult{}, errors.New("missing store")
	}
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return WriteResult{}, errors.New("missing pageID")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	md, err := RenderPageMarkdown(st, pageID, RenderOptions{SkipMeta: opt.SkipMeta})
	if err != nil {
		return WriteResult{}, err
	}

	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(toDir, pageID+".md")
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

// WriteSpace writes <to>/<space>/index.md plus one file per page under pages/.
func WriteSpace(st *store.Store, spaceID string, toDir string, opt WriteOptions) (WriteResult, error) {
	if st == nil {
		return WriteResult{}, errors.New("missing store")
	}
	spaceID = strings.TrimSpace(spaceID)
	if spaceID == "" {
		return WriteResult{}, errors.New("missing spaceID")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	indexMD, err := RenderSpaceMarkdown(st, spaceID, RenderOptions{SkipMeta: opt.SkipMeta})
	if err != nil {
		return WriteResult{}, err
	}

	spaceDir := filepath.Join(toDir, spaceID)
	pagesDir := filepath.Join(spaceDir, "pages")
	if err := os.MkdirAll(pagesDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(spaceDir, "index.md")
	if err := writeFile(indexPath, []byte(indexMD), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	// Depth-first, same order as the index (stop on first error).
	written := []string{indexPath}
	for _, n := range store.VisibleRows(allExpanded(st.Tree(spaceID))) {
		if err := writeOne(st, n.Page, pagesDir, opt, &written); err != nil {
			return WriteResult{}, err
		}
	}
	return WriteResult{Written: written}, nil
}

func writeOne(st *store.Store, p model.Page, dir string, opt WriteOptions, written *[]string) error {
	md, err := RenderPageMarkdown(st, p.ID, RenderOptions{SkipMeta: opt.SkipMeta})
	if err != nil {
		return err
	}
	path := filepath.Join(dir, p.ID+".md")
	if err := writeFile(path, []byte(md), opt.Overwrite); err != nil {
		return err
	}
	*written = append(*written, path)
	return nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
