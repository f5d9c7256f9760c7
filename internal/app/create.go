// Package app implements the scaffolding workflow behind the strata
// and create-strata-app commands.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/stratacms/strata/internal/config"
	"github.com/stratacms/strata/internal/logging"
	"github.com/stratacms/strata/internal/template/cache"
	"github.com/stratacms/strata/internal/template/fetch"
	"github.com/stratacms/strata/internal/template/materialize"
	"github.com/stratacms/strata/internal/template/model"
	"github.com/stratacms/strata/internal/template/registry"
	"github.com/stratacms/strata/internal/template/resolver"
)

// CreateOptions holds options for creating a new project.
type CreateOptions struct {
	// ProjectName is the new project's name, substituted for the
	// {{projectName}} token in template files and paths.
	ProjectName string
	// Template is the template identifier (e.g., "minimal", "default").
	Template string
	// Ref overrides the configured template repository ref.
	Ref string
	// TargetDir overrides the target directory; defaults to
	// ./<ProjectName>. Ignored when UseCurrentDir is set.
	TargetDir string
	// UseCurrentDir materializes into the current working directory
	// instead of creating a project directory.
	UseCurrentDir bool
	// Force skips the target-emptiness check.
	Force bool
	// CacheDir overrides the configured template cache root.
	CacheDir string
	// Source overrides the configured template repository coordinates.
	Source *fetch.Source
}

// CreateResult holds the result of project creation.
type CreateResult struct {
	// Path is the populated project directory.
	Path string
	// Template is the reference the project was created from.
	Template model.TemplateRef
	// Files is the ordered list of project-relative files written.
	Files []string
}

// Create generates a new project: it validates the request, resolves
// the template (from cache or by fetching), and materializes it into
// the target directory.
func Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	log := logging.GetLogger("app")

	if err := validateProjectName(opts.ProjectName); err != nil {
		return nil, NewValidationError("invalid project name", err)
	}

	// Reject unknown templates before touching config, disk, or network.
	if _, err := registry.Lookup(opts.Template); err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, NewConfigLoadError("failed to load configuration", err)
	}

	source := fetch.Source{
		Host:  cfg.Templates.Host,
		Owner: cfg.Templates.Owner,
		Repo:  cfg.Templates.Repo,
	}
	if opts.Source != nil {
		source = *opts.Source
	}

	ref := model.TemplateRef{
		Identifier: opts.Template,
		Ref:        cfg.Templates.Ref,
	}
	if opts.Ref != "" {
		ref.Ref = opts.Ref
	}

	cacheDir := cfg.CacheDir
	if opts.CacheDir != "" {
		cacheDir = opts.CacheDir
	}

	targetDir := opts.TargetDir
	if opts.UseCurrentDir {
		targetDir = "."
	} else if targetDir == "" {
		targetDir = opts.ProjectName
	}

	log.Debug().
		Str("template", ref.String()).
		Str("target", targetDir).
		Str("cacheDir", cacheDir).
		Msg("creating project")

	store := cache.New(cacheDir)
	res := resolver.New(store, fetch.New(source, store))

	templateDir, err := res.Resolve(ctx, ref)
	if err != nil {
		// Unknown templates and fetch failures carry their own typed
		// context; pass them through for the CLI to render.
		return nil, err
	}

	result, err := materialize.Materialize(ctx, materialize.Options{
		TemplateDir: templateDir,
		TargetDir:   targetDir,
		Vars: materialize.Variables{
			"projectName": opts.ProjectName,
		},
		UseCurrentDir: opts.UseCurrentDir,
		Force:         opts.Force,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("path", result.TargetDir).Int("files", len(result.Files)).Msg("project created")
	return &CreateResult{
		Path:     result.TargetDir,
		Template: ref,
		Files:    result.Files,
	}, nil
}

// validateProjectName checks that a project name is usable as a
// directory name and as a substitution value.
func validateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("project name cannot contain '..'")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("project name cannot contain path separators")
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("project name cannot start with '.'")
	}
	return nil
}
