package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/remoroo/shipit/internal/domain"
)

const (
	// JournalFilePermissions defines the permissions for journal files
	JournalFilePermissions = 0600
	// JournalDirPermissions defines the permissions for the journal directory
	JournalDirPermissions = 0700
	// JournalLockTimeout defines the maximum time to wait for a lock
	JournalLockTimeout = 10 * time.Second
	// JournalLockRetryInterval defines the interval between lock retries
	JournalLockRetryInterval = 100 * time.Millisecond
)

// RunJournal defines the interface for persisting release run records.
type RunJournal interface {
	Save(ctx context.Context, run *domain.RunRecord) error
	Load(ctx context.Context, runID string) (*domain.RunRecord, error)
	List(ctx context.Context) ([]*domain.RunRecord, error)
}

// JSONRunJournal implements RunJournal using JSON files under a journal
// directory, one file per run.
type JSONRunJournal struct {
	fs         afero.Fs
	journalDir string
	mu         sync.RWMutex
}

// NewJSONRunJournal creates a new JSON-based run journal.
func NewJSONRunJournal(fs afero.Fs, journalDir string) RunJournal {
	if journalDir == "" {
		journalDir = filepath.Join(".shipit", "runs")
	}
	return &JSONRunJournal{
		fs:         fs,
		journalDir: journalDir,
	}
}

// Save persists the run record, holding a file lock so concurrent
// invocations cannot interleave partial writes.
func (j *JSONRunJournal) Save(ctx context.Context, run *domain.RunRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if run.RunID == "" {
		return fmt.Errorf("run record has no run ID")
	}
	if err := j.fs.MkdirAll(j.journalDir, JournalDirPermissions); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}
	filename := j.runFilename(run.RunID)
	lock := flock.New(filename + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, JournalLockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, JournalLockRetryInterval)
	if err != nil {
		return fmt.Errorf("failed to acquire journal lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire journal lock within %s", JournalLockTimeout)
	}
	defer lock.Unlock() //nolint:errcheck // best effort unlock
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}
	// Write atomically using a temp file
	tempFile := filename + ".tmp"
	if err := afero.WriteFile(j.fs, tempFile, data, JournalFilePermissions); err != nil {
		return fmt.Errorf("failed to write journal file: %w", err)
	}
	if err := j.fs.Rename(tempFile, filename); err != nil {
		return fmt.Errorf("failed to finalize journal file: %w", err)
	}
	return nil
}

// Load reads a single run record by ID.
func (j *JSONRunJournal) Load(_ context.Context, runID string) (*domain.RunRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	data, err := afero.ReadFile(j.fs, j.runFilename(runID))
	if err != nil {
		return nil, fmt.Errorf("failed to read run %s: %w", runID, err)
	}
	var run domain.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to parse run %s: %w", runID, err)
	}
	return &run, nil
}

// List returns all recorded runs, most recent first.
func (j *JSONRunJournal) List(_ context.Context) ([]*domain.RunRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	exists, err := afero.DirExists(j.fs, j.journalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to check journal directory: %w", err)
	}
	if !exists {
		return nil, nil
	}
	entries, err := afero.ReadDir(j.fs, j.journalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal directory: %w", err)
	}
	var runs []*domain.RunRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := afero.ReadFile(j.fs, filepath.Join(j.journalDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		var run domain.RunRecord
		if err := json.Unmarshal(data, &run); err != nil {
			continue // Skip corrupt journal files
		}
		runs = append(runs, &run)
	}
	sort.Slice(runs, func(i, k int) bool {
		return runs[i].StartedAt.After(runs[k].StartedAt)
	})
	return runs, nil
}

func (j *JSONRunJournal) runFilename(runID string) string {
	return filepath.Join(j.journalDir, runID+".json")
}
