package testrunner

import (
	"os"
	"path/filepath"
	"strings"
)

// walkAndProcessFiles walks a path (file or directory) and invokes onFile for each file.
// Hidden and vendor directories are skipped. Subdirectories are entered only when recursive is set.
func walkAndProcessFiles(root string, recursive bool, onFile func(p string, info os.FileInfo)) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		onFile(root, info)
		return nil
	}

	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			onFile(p, info)
			return nil
		}

		if p == root {
			return nil
		}

		name := info.Name()
		if !recursive || name == "vendor" || name == "node_modules" || strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}

		return nil
	})
}
