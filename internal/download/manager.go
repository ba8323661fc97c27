package download

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/handiism/release-fetcher/internal/config"
	"github.com/handiism/release-fetcher/internal/filter"
	"github.com/handiism/release-fetcher/internal/format"
	"github.com/handiism/release-fetcher/internal/github"
	"github.com/handiism/release-fetcher/internal/http"
	ioutils "github.com/handiism/release-fetcher/internal/io"
	"github.com/handiism/release-fetcher/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Request describes which release to fetch and which of its assets to keep.
type Request struct {
	// Reference is a GitHub web or API URL.
	Reference string

	// Tag is an explicitly requested release tag. Empty means the tag
	// embedded in Reference, or the latest release.
	Tag string

	// Include and Exclude are mutually exclusive asset name filters.
	Include []string
	Exclude []string
}

// Manager coordinates release lookup and asset downloads.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	locator    *github.Locator
	engine     *Engine
	logger     *log.Logger

	ref     model.Reference
	release *model.Release
	assets  []model.Asset

	totalBytes      int64
	receivedBytes   int64
	totalFiles      int32
	downloadedFiles int32

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new download Manager.
//
// onProgress receives user facing messages; it may be nil. A nil logger
// discards debug output.
func NewManager(settings *config.Settings, logger *log.Logger, onProgress func(ProgressEvent)) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	client := http.NewClient(settings.UserAgent, settings.HeaderTimeout)
	locator := github.NewLocator(client, settings.APIBaseURL, logger)
	locator.Timeout = settings.RequestTimeout

	return &Manager{
		settings:   settings,
		httpClient: client,
		locator:    locator,
		engine:     NewEngine(client, settings.ChunkSize, logger),
		logger:     logger,
		onProgress: onProgress,
	}
}

// Initialize resolves the reference, fetches the release manifest and
// applies the asset filter.
//
// All returned errors are fatal for the run. The filter is checked before
// any network call.
func (m *Manager) Initialize(ctx context.Context, req Request) error {
	f, err := filter.New(req.Include, req.Exclude)
	if err != nil {
		return err
	}

	ref, err := github.Resolve(req.Reference, req.Tag)
	if err != nil {
		return err
	}
	m.logger.Debug("resolved reference", "owner", ref.Owner, "repo", ref.Repo, "tag", ref.Tag)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching release info: %s", m.locator.Endpoint(ref)), Level: LevelVerbose})

	release, err := m.locator.Locate(ctx, ref)
	if err != nil {
		return err
	}

	assets, err := filter.Select(release.Assets, f)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.ref = ref
	m.release = release
	m.assets = assets
	m.totalBytes = model.TotalSize(assets)
	m.totalFiles = int32(len(assets))
	m.mu.Unlock()
	atomic.StoreInt64(&m.receivedBytes, 0)
	atomic.StoreInt32(&m.downloadedFiles, 0)

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found release: %s (%d of %d files, %s)", release.Tag, len(assets), len(release.Assets), format.Size(m.totalBytes)),
		Level:   LevelVerbose,
	})

	return nil
}

// Reference returns the repository reference resolved by Initialize.
func (m *Manager) Reference() model.Reference {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ref
}

// Release returns the release found by Initialize, or nil.
func (m *Manager) Release() *model.Release {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.release
}

// Assets returns the selected assets in manifest order.
func (m *Manager) Assets() []model.Asset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assets
}

// OutputDir returns the directory the assets are saved to: base joined with
// the release tag.
func (m *Manager) OutputDir(base string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.release == nil {
		return base
	}
	return filepath.Join(base, m.release.Tag)
}

// StartDownloads downloads the selected assets one after another into
// OutputDir(baseDir).
//
// A failed asset is reported and the next one is started; its result is in
// the returned outcomes. The returned error is non-nil only when the output
// directory cannot be created or ctx is cancelled, in which case the
// outcomes of the assets processed so far are still returned.
func (m *Manager) StartDownloads(ctx context.Context, baseDir string, observer Observer) ([]model.Outcome, error) {
	if m.Release() == nil {
		return nil, fmt.Errorf("no release initialized")
	}

	dir := m.OutputDir(baseDir)
	if err := ioutils.EnsureDir(dir); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory: %v", err), Level: LevelError})
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading files to: %s", dir), Level: LevelInfo})

	assets := m.Assets()
	outcomes := make([]model.Outcome, 0, len(assets))

	for _, asset := range assets {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading: %s (%s)", asset.Name, format.Size(asset.Size)), Level: LevelInfo})

		outcome := m.engine.Download(ctx, asset, asset.TargetPath(dir), m.track(observer))
		outcomes = append(outcomes, outcome)
		m.report(outcome)

		if outcome.Status.OK() {
			atomic.AddInt32(&m.downloadedFiles, 1)
		}
		if ctx.Err() != nil {
			return outcomes, ctx.Err()
		}
	}

	return outcomes, nil
}

// GetProgress returns current download progress. received counts bytes
// transferred in this run, not bytes found on disk.
func (m *Manager) GetProgress() (received, total int64, filesReceived, filesTotal int32) {
	m.mu.RLock()
	total, filesTotal = m.totalBytes, m.totalFiles
	m.mu.RUnlock()
	return atomic.LoadInt64(&m.receivedBytes), total, atomic.LoadInt32(&m.downloadedFiles), filesTotal
}

// Summary counts download outcomes by result.
type Summary struct {
	Completed int
	Skipped   int
	Failed    int
}

// Summarize tallies outcomes. Already complete files count as skipped.
func Summarize(outcomes []model.Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case model.StatusCompleted:
			s.Completed++
		case model.StatusAlreadyComplete:
			s.Skipped++
		default:
			s.Failed++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d downloaded, %d already present, %d failed", s.Completed, s.Skipped, s.Failed)
}

// track wraps observer so the manager's byte counter follows every chunk.
func (m *Manager) track(observer Observer) Observer {
	var last int64
	return ObserverFunc(func(p model.Progress) {
		atomic.AddInt64(&m.receivedBytes, p.Transferred-last)
		last = p.Transferred
		if observer != nil {
			observer.Observe(p)
		}
	})
}

func (m *Manager) report(o model.Outcome) {
	switch o.Status {
	case model.StatusCompleted:
		msg := fmt.Sprintf("Done: %s", o.Path)
		if o.Resumed {
			msg += " (resumed)"
		}
		m.progress(ProgressEvent{Message: msg, Level: LevelSuccess})
	case model.StatusAlreadyComplete:
		m.progress(ProgressEvent{Message: fmt.Sprintf("File already exists and matches expected size: %s", o.Path), Level: LevelSuccess})
	case model.StatusSizeMismatch:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error: File size mismatch for %s (%v)", o.Path, o.Err), Level: LevelError})
	case model.StatusTransferFailed:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error: Failed to download %s - %v", o.Path, o.Err), Level: LevelError})
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
