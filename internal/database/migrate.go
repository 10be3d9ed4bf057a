package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// ApplyMigrations executes every .surql file in fsys, in name order.
// Schema statements use IF NOT EXISTS so applying twice is harmless.
func ApplyMigrations(ctx context.Context, db Database, fsys fs.FS) (int, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return 0, fmt.Errorf("reading migrations: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".surql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for i, name := range files {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return i, fmt.Errorf("reading %s: %w", name, err)
		}
		if err := db.Execute(ctx, string(content), nil); err != nil {
			return i, fmt.Errorf("migration %s: %w", name, err)
		}
	}

	return len(files), nil
}
