package uitcell

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// escapeMeta quotes the glob metacharacters in s.
func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\*?[]{}`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// expandHome replaces a leading ~/ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// complete extends input to the longest prefix shared by the directory entries it could
// name. Directories always qualify, files only when they match filter. It returns the
// new input and the candidate names.
func complete(input, filter string) (string, []string) {
	input = expandHome(input)
	i := strings.LastIndex(input, "/")
	dir, base := input[:i+1], input[i+1:]
	root := dir
	if root == "" {
		root = "."
	}

	matches, err := doublestar.Glob(os.DirFS(root), escapeMeta(base)+"*")
	if err != nil {
		return input, nil
	}

	var candidates []string
	for _, m := range matches {
		if strings.HasPrefix(m, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		info, err := fs.Stat(os.DirFS(root), m)
		if err != nil {
			continue
		}
		if info.IsDir() {
			candidates = append(candidates, m+"/")
			continue
		}
		if filter != "" {
			if ok, _ := doublestar.Match(filter, m); !ok {
				continue
			}
		}
		candidates = append(candidates, m)
	}
	if len(candidates) == 0 {
		return input, nil
	}
	sort.Strings(candidates)

	prefix := candidates[0]
	for _, c := range candidates[1:] {
		for !strings.HasPrefix(c, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	for !utf8.ValidString(prefix) {
		prefix = prefix[:len(prefix)-1]
	}
	if len(prefix) < len(base) {
		prefix = base
	}
	return dir + prefix, candidates
}
