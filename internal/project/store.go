package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
	cberrors "github.com/mrz1836/classboard/internal/errors"
	"github.com/mrz1836/classboard/internal/flock"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// validProjectIDRegex keeps project ids usable as directory names.
var validProjectIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// Store defines the persistence operations for project snapshots.
type Store interface {
	// Create saves a new project. Returns ErrProjectExists if the id is taken.
	Create(ctx context.Context, p *domain.Project) error

	// Get loads a project by id. Returns ErrProjectNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Project, error)

	// Update replaces an existing project (atomic write).
	Update(ctx context.Context, p *domain.Project) error

	// Modify loads a project, applies fn and saves the result while holding
	// the project lock. Nothing is written when fn returns an error.
	Modify(ctx context.Context, id string, fn func(p *domain.Project) error) (*domain.Project, error)

	// List returns every readable project, sorted by id.
	List(ctx context.Context) ([]*domain.Project, error)

	// Delete removes a project and its directory.
	Delete(ctx context.Context, id string) error
}

// FileStore implements Store on the local filesystem, one directory per
// project under <base>/projects.
type FileStore struct {
	baseDir     string
	lockTimeout time.Duration
}

// StoreOption configures a FileStore.
type StoreOption func(*FileStore)

// WithLockTimeout sets how long an operation waits for a project lock.
// Non-positive values keep the default.
func WithLockTimeout(d time.Duration) StoreOption {
	return func(s *FileStore) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// NewFileStore creates a FileStore rooted at baseDir, or at ~/.classboard
// when baseDir is empty.
func NewFileStore(baseDir string, opts ...StoreOption) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		baseDir = filepath.Join(home, constants.ClassboardHome)
	}
	s := &FileStore{baseDir: baseDir, lockTimeout: constants.LockTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the root directory of the store.
func (s *FileStore) Dir() string {
	return s.baseDir
}

// Create saves a new project.
func (s *FileStore) Create(ctx context.Context, p *domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("failed to create project: project %w", cberrors.ErrEmptyValue)
	}
	if err := checkID(p.ID); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	lock, err := s.lock(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to create project '%s': %w", p.ID, err)
	}
	defer func() { _ = lock.Release() }()

	if _, err := os.Stat(s.projectFilePath(p.ID)); err == nil {
		return fmt.Errorf("failed to create project '%s': %w", p.ID, cberrors.ErrProjectExists)
	}

	if err := s.write(p); err != nil {
		return fmt.Errorf("failed to create project '%s': %w", p.ID, err)
	}
	return nil
}

// Get loads a project by id.
func (s *FileStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if _, err := os.Stat(s.projectDir(id)); os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to get project '%s': %w", id, cberrors.ErrProjectNotFound)
	}

	lock, err := s.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project '%s': %w", id, err)
	}
	defer func() { _ = lock.Release() }()

	return s.read(id)
}

// Update replaces an existing project.
func (s *FileStore) Update(ctx context.Context, p *domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("failed to update project: project %w", cberrors.ErrEmptyValue)
	}
	if err := checkID(p.ID); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if _, err := os.Stat(s.projectFilePath(p.ID)); os.IsNotExist(err) {
		return fmt.Errorf("failed to update project '%s': %w", p.ID, cberrors.ErrProjectNotFound)
	}

	lock, err := s.lock(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update project '%s': %w", p.ID, err)
	}
	defer func() { _ = lock.Release() }()

	if err := s.write(p); err != nil {
		return fmt.Errorf("failed to update project '%s': %w", p.ID, err)
	}
	return nil
}

// Modify applies fn to the stored project under the project lock.
func (s *FileStore) Modify(ctx context.Context, id string, fn func(p *domain.Project) error) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, fmt.Errorf("failed to modify project: %w", err)
	}
	if _, err := os.Stat(s.projectFilePath(id)); os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to modify project '%s': %w", id, cberrors.ErrProjectNotFound)
	}

	lock, err := s.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to modify project '%s': %w", id, err)
	}
	defer func() { _ = lock.Release() }()

	p, err := s.read(id)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	if p.ID != id {
		return nil, fmt.Errorf("failed to modify project '%s': id changed to '%s': %w", id, p.ID, cberrors.ErrInvalidArgument)
	}
	if err := s.write(p); err != nil {
		return nil, fmt.Errorf("failed to modify project '%s': %w", id, err)
	}
	return p, nil
}

// List returns every readable project sorted by id. Directories without a
// readable snapshot are skipped.
func (s *FileStore) List(ctx context.Context) ([]*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.projectsDir())
	if errors.Is(err, os.ErrNotExist) {
		return []*domain.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*domain.Project, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || !validProjectIDRegex.MatchString(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := s.Get(ctx, entry.Name())
		if err != nil {
			continue
		}
		projects = append(projects, p)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ID < projects[j].ID
	})
	return projects, nil
}

// Delete removes a project directory.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if _, err := os.Stat(s.projectDir(id)); os.IsNotExist(err) {
		return fmt.Errorf("failed to delete project '%s': %w", id, cberrors.ErrProjectNotFound)
	}

	lock, err := s.lock(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete project '%s': %w", id, err)
	}
	_ = lock.Release()

	if err := os.RemoveAll(s.projectDir(id)); err != nil {
		return fmt.Errorf("failed to delete project '%s': %w", id, err)
	}
	return nil
}

func (s *FileStore) projectsDir() string {
	return filepath.Join(s.baseDir, constants.ProjectsDir)
}

func (s *FileStore) projectDir(id string) string {
	return filepath.Join(s.projectsDir(), id)
}

func (s *FileStore) projectFilePath(id string) string {
	return filepath.Join(s.projectDir(id), constants.ProjectFileName)
}

func (s *FileStore) lock(ctx context.Context, id string) (*flock.Lock, error) {
	return flock.Acquire(ctx, filepath.Join(s.projectDir(id), constants.LockFileName), s.lockTimeout)
}

// read loads a snapshot. The caller holds the lock.
func (s *FileStore) read(id string) (*domain.Project, error) {
	data, err := os.ReadFile(s.projectFilePath(id)) //#nosec G304 -- id is validated
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to get project '%s': %w", id, cberrors.ErrProjectNotFound)
		}
		return nil, fmt.Errorf("failed to read project '%s': %w", id, err)
	}
	var p domain.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project '%s': corrupted snapshot: %w", id, err)
	}
	return &p, nil
}

// write stamps the schema version and saves p. The caller holds the lock.
func (s *FileStore) write(p *domain.Project) error {
	if err := os.MkdirAll(s.projectDir(p.ID), dirPerm); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	p.SchemaVersion = constants.SnapshotSchemaVersion
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(s.projectFilePath(p.ID), data)
}

func checkID(id string) error {
	if id == "" {
		return fmt.Errorf("project ID %w", cberrors.ErrEmptyValue)
	}
	if !validProjectIDRegex.MatchString(id) {
		return fmt.Errorf("project ID %q: %w", id, cberrors.ErrPathTraversal)
	}
	return nil
}

// atomicWrite writes data to a temp file then renames it over path.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
