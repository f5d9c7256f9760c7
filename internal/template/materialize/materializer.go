// Package materialize copies a resolved template tree into a target
// project directory, substituting variables into file contents and
// paths. Writes are staged in a private temporary directory and moved
// into the target only on full success, so a failed materialization
// leaves the target without partial writes.
package materialize

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stratacms/strata/internal/fsutil"
	"github.com/stratacms/strata/internal/logging"
	"github.com/stratacms/strata/internal/template/cache"
)

// placeholderFiles are files that exist in templates only to keep
// otherwise-empty directories under version control. Their parent
// directory is created in the output but the file itself is neither
// copied nor reported.
var placeholderFiles = map[string]bool{
	".gitkeep": true,
	".keep":    true,
}

// Options configures a materialization request.
type Options struct {
	// TemplateDir is the resolved template directory to copy from.
	TemplateDir string
	// TargetDir is the directory project files are written into.
	TargetDir string
	// Vars holds the substitution variables (e.g., projectName).
	Vars Variables
	// UseCurrentDir indicates the target is the caller's current
	// working directory; it is not created, but must still be empty.
	UseCurrentDir bool
	// Force skips the target-emptiness check. Existing files with
	// colliding names may be overwritten.
	Force bool
}

// Result reports what a materialization wrote.
type Result struct {
	// TargetDir is the absolute path of the populated directory.
	TargetDir string
	// Files is the ordered list of target-relative file paths written,
	// with placeholder files filtered out.
	Files []string
}

// Materialize copies the template into the target directory.
// Preconditions (template exists, target empty unless forced) are
// verified before any write to the target.
func Materialize(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("materialize")

	info, err := os.Stat(opts.TemplateDir)
	if err != nil || !info.IsDir() {
		return nil, NewInvalidTemplateError(opts.TemplateDir, err)
	}

	targetDir, err := filepath.Abs(opts.TargetDir)
	if err != nil {
		return nil, NewWriteError(opts.TargetDir, err)
	}

	if !opts.Force {
		empty, err := fsutil.IsDirEmpty(targetDir)
		if err != nil {
			return nil, NewWriteError(targetDir, err)
		}
		if !empty {
			return nil, NewTargetNotEmptyError(targetDir)
		}
	}

	log.Debug().Str("template", opts.TemplateDir).Str("target", targetDir).Msg("materializing template")

	// Stage the whole tree first; the target is only touched once
	// every file has been processed.
	stageDir, err := os.MkdirTemp("", "strata-scaffold-*")
	if err != nil {
		return nil, NewWriteError(targetDir, err)
	}
	defer func() {
		if err := os.RemoveAll(stageDir); err != nil {
			log.Warn().Err(err).Str("dir", stageDir).Msg("failed to remove staging directory")
		}
	}()

	files, err := stageTree(ctx, opts.TemplateDir, stageDir, opts.Vars)
	if err != nil {
		return nil, err
	}

	if !opts.UseCurrentDir {
		if err := os.MkdirAll(targetDir, 0755); err != nil {
			return nil, NewWriteError(targetDir, err)
		}
	}
	if err := fsutil.MoveEntries(stageDir, targetDir); err != nil {
		return nil, NewWriteError(targetDir, err)
	}

	log.Info().Str("target", targetDir).Int("files", len(files)).Msg("template materialized")
	return &Result{
		TargetDir: targetDir,
		Files:     files,
	}, nil
}

// stageTree walks the template and writes the substituted tree into
// stageDir, returning the relative paths of the files written.
func stageTree(ctx context.Context, templateDir, stageDir string, vars Variables) ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(templateDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return NewWriteError(path, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, err := filepath.Rel(templateDir, path)
		if err != nil {
			return NewWriteError(path, err)
		}
		if rel == "." {
			return nil
		}

		// The cache marker is bookkeeping, never project content.
		if rel == cache.ManifestFileName {
			return nil
		}

		outRel, subErr := SubstitutePath(filepath.ToSlash(rel), vars)
		if subErr != nil {
			return subErr
		}
		outPath := filepath.Join(stageDir, filepath.FromSlash(outRel))

		if d.IsDir() {
			if err := os.MkdirAll(outPath, 0755); err != nil {
				return NewWriteError(outPath, err)
			}
			return nil
		}

		if placeholderFiles[d.Name()] {
			// Keep the directory, drop the placeholder.
			if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
				return NewWriteError(outPath, err)
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return NewWriteError(path, err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return NewWriteError(path, err)
		}
		content = SubstituteContent(content, vars)

		mode := info.Mode()
		if mode&0600 == 0 {
			mode = mode | 0600
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return NewWriteError(outPath, err)
		}
		if err := os.WriteFile(outPath, content, mode); err != nil {
			return NewWriteError(outPath, err)
		}

		files = append(files, filepath.FromSlash(outRel))
		return nil
	})

	if err != nil {
		return nil, err
	}
	return files, nil
}
