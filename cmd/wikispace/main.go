package main

import (
	"fmt"
	"os"
	"strings"

	"wikispace/internal/cli"
)

func isPageID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "page-") && len(s) > len("page-")
}

// rewriteDirectPageLookupArgs turns `wikispace <page-id>` into
// `wikispace pages show <page-id>`. Cobra treats the first positional as a
// subcommand, so argv is rewritten before parsing. Persistent flags may come first.
func rewriteDirectPageLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--format":    true,
		"--seed":      true,
		"--log-level": true,
		"--log-file":  true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	insertAt := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "pages", "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isPageID(argv[i+1]) {
				// Nothing after the page id can be a flag for us; drop the separator.
				out := append([]string{}, argv[:i]...)
				out = append(out, "pages", "show")
				return append(out, argv[i+1:]...)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			// Unknown flags: don't guess whether they take a value.
			continue
		}

		if isPageID(a) {
			return insertAt(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectPageLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
