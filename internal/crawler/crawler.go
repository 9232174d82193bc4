package crawler

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Directories that never contain hand-written production sources.
var skippedDirs = map[string]bool{
	"test":         true,
	"tests":        true,
	"target":       true,
	"build":        true,
	"out":          true,
	".git":         true,
	".idea":        true,
	".vscode":      true,
	"node_modules": true,
}

// File name patterns excluded from annotation.
var skippedPatterns = []string{
	"*Test.java",
	"*Tests.java",
	"*TestCase.java",
	"*Generated*.java",
	"*generated*.java",
	"package-info.java",
}

// FindJavaFiles walks root and returns the Java source files eligible for
// processing, sorted by path. Test sources, generated sources and anything
// matched by the repository's .gitignore are excluded.
func FindJavaFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	matcher := loadGitignore(root)

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			if path != root && shouldSkipDir(d.Name(), rel, matcher) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".java") {
			return nil
		}
		if matchesSkipPattern(d.Name()) {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to crawl %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// CopySupportFiles mirrors every non-Java file from root into dst so the
// annotated tree stays buildable. Skipped directories are not copied.
func CopySupportFiles(root, dst string) (int, error) {
	matcher := loadGitignore(root)
	copied := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			if path != root && shouldSkipDir(d.Name(), rel, matcher) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".java") {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		if err := copyFile(path, filepath.Join(dst, rel)); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("failed to copy support files: %w", err)
	}
	return copied, nil
}

func shouldSkipDir(name, rel string, matcher *ignore.GitIgnore) bool {
	if skippedDirs[strings.ToLower(name)] {
		return true
	}
	if matcher != nil && matcher.MatchesPath(rel+"/") {
		return true
	}
	return false
}

func matchesSkipPattern(name string) bool {
	for _, pattern := range skippedPatterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func loadGitignore(root string) *ignore.GitIgnore {
	matcher, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return matcher
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
