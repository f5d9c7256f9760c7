// Package fetch downloads template archives from the remote template
// repository and populates the local template cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stratacms/strata/internal/fsutil"
	"github.com/stratacms/strata/internal/logging"
	"github.com/stratacms/strata/internal/template/cache"
	"github.com/stratacms/strata/internal/template/model"
)

// templatesDirName is the directory inside the archive root folder
// that holds one subdirectory per template identifier.
const templatesDirName = "templates"

// Source identifies the remote repository that template archives are
// downloaded from.
type Source struct {
	// Host is the archive host (e.g., "github.com"). A scheme may be
	// included; https is assumed otherwise.
	Host string
	// Owner is the repository owner.
	Owner string
	// Repo is the repository name.
	Repo string
}

// ArchiveURL builds the ZIP archive download URL for a branch ref.
func (s Source) ArchiveURL(ref string) string {
	base := s.Host
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/%s/%s/archive/refs/heads/%s.zip",
		base, s.Owner, s.Repo, ref)
}

// Fetcher downloads template archives and commits them to the cache.
type Fetcher struct {
	client *http.Client
	source Source
	cache  *cache.Cache
}

// New creates a Fetcher for the given source and cache, with a bounded
// request timeout so a stalled download cannot hang indefinitely.
func New(source Source, c *cache.Cache) *Fetcher {
	return NewWithClient(source, c, &http.Client{Timeout: 30 * time.Second})
}

// NewWithClient creates a Fetcher with a caller-supplied HTTP client.
func NewWithClient(source Source, c *cache.Cache, client *http.Client) *Fetcher {
	return &Fetcher{
		client: client,
		source: source,
		cache:  c,
	}
}

// FetchAndCache resolves ref to a local cache entry, downloading and
// extracting the archive on a cache miss. Failures never leave a
// directory at the final cache path, and all transient artifacts (the
// downloaded archive, the extraction directory, the staging directory)
// are removed on every exit path.
func (f *Fetcher) FetchAndCache(ctx context.Context, ref model.TemplateRef) (string, error) {
	log := logging.GetLogger("fetch")

	key := ref.CacheKey()
	if path, ok := f.cache.Lookup(key); ok {
		log.Debug().Str("template", ref.String()).Str("path", path).Msg("using cached template")
		return path, nil
	}

	archiveURL := f.source.ArchiveURL(ref.Ref)
	log.Debug().Str("template", ref.String()).Str("url", archiveURL).Msg("cache miss, downloading archive")

	// Private working directory for this fetch; removed unconditionally.
	workDir, err := os.MkdirTemp("", "strata-fetch-*")
	if err != nil {
		return "", NewDownloadError(archiveURL, "failed to create temp directory", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			log.Warn().Err(err).Str("dir", workDir).Msg("failed to remove temp directory")
		}
	}()

	archivePath := filepath.Join(workDir, "archive.zip")
	if err := f.download(ctx, archiveURL, archivePath); err != nil {
		return "", err
	}

	extractDir := filepath.Join(workDir, "extracted")
	if err := os.Mkdir(extractDir, 0755); err != nil {
		return "", NewExtractError(archiveURL, err)
	}
	if err := extractZip(archivePath, extractDir); err != nil {
		return "", NewExtractError(archiveURL, err)
	}

	// Archive layout: <repo>-<ref>/templates/<identifier>
	rootDir, err := archiveRootDir(extractDir)
	if err != nil {
		return "", NewExtractError(archiveURL, err)
	}
	templateDir := filepath.Join(rootDir, templatesDirName, ref.Identifier)
	if info, err := os.Stat(templateDir); err != nil || !info.IsDir() {
		return "", NewNotFoundInArchiveError(archiveURL,
			templatesDirName+"/"+ref.Identifier)
	}

	// Stage under the cache root so the final commit is a same-volume
	// rename; losers of a concurrent race just discard their staging dir.
	stagingDir, err := f.cache.NewStagingDir(key)
	if err != nil {
		return "", NewCacheWriteError(archiveURL, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(stagingDir)
		}
	}()

	if err := fsutil.MoveEntries(templateDir, stagingDir); err != nil {
		return "", NewCacheWriteError(archiveURL, err)
	}

	finalPath, err := f.cache.Commit(stagingDir, key, cache.Manifest{
		Identifier: ref.Identifier,
		Ref:        ref.Ref,
		Source:     archiveURL,
		FetchedAt:  time.Now().UTC(),
	})
	if err != nil {
		return "", NewCacheWriteError(archiveURL, err)
	}
	committed = true

	log.Info().Str("template", ref.String()).Str("path", finalPath).Msg("template fetched")
	return finalPath, nil
}

// download issues the archive GET and persists the full response body
// to destPath.
func (f *Fetcher) download(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewDownloadError(url, "failed to build request", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return NewDownloadError(url, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewDownloadError(url,
			fmt.Sprintf("unexpected response: %s", resp.Status), nil)
	}

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return NewDownloadError(url, "failed to create archive file", err)
	}

	_, err = io.Copy(out, resp.Body)
	closeErr := out.Close()

	if err != nil {
		return NewDownloadError(url, "failed to save archive", err)
	}
	if closeErr != nil {
		return NewDownloadError(url, "failed to close archive file", closeErr)
	}
	return nil
}
