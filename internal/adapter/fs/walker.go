package fs

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker finds text files for batch analysis. Arguments that name a
// directory are walked with the configured include/exclude patterns;
// anything else is treated as a doublestar glob relative to the working
// directory.
type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*.txt"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

// Expand resolves each argument to a sorted, de-duplicated list of files.
func (w *Walker) Expand(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			walked, err := w.walkDir(arg)
			if err != nil {
				return nil, err
			}
			for _, f := range walked {
				add(f)
			}
			continue
		}
		if err == nil {
			add(arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (w *Walker) walkDir(root string) ([]string, error) {
	var files []string

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if w.shouldExclude(relPath + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		if w.shouldInclude(relPath) && !w.shouldExclude(relPath) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}
