// file: internals/features/backup/service/backup_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"eduanalytics_backend/internals/configs"
)

const (
	// FormatVersion is stamped into every archive's metadata. Restore
	// refuses archives from a newer format.
	FormatVersion = "1.0"

	metadataFilename = "metadata.json"
)

// Metadata describes one archive. It is the source of truth for what the
// archive contains; filenames only carry the timestamp.
type Metadata struct {
	Timestamp    string         `json:"timestamp"`
	SchoolID     *uuid.UUID     `json:"schoolId"`
	Version      string         `json:"version"`
	Models       []string       `json:"models"`
	RecordCounts map[string]int `json:"recordCounts"`
}

// Archive is a finished backup on disk.
type Archive struct {
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
	Metadata  Metadata  `json:"metadata"`
}

// Uploader pushes a finished archive to remote storage.
type Uploader interface {
	Upload(localPath, objectKey string) error
}

// BackupService packs registered collections into zip archives and restores
// them. Collections and the uploader are injected; the service owns no
// storage handles of its own.
type BackupService struct {
	cfg      configs.BackupConfig
	registry []Collection
	uploader Uploader
}

func NewBackupService(cfg configs.BackupConfig, registry []Collection, uploader Uploader) *BackupService {
	return &BackupService{cfg: cfg, registry: registry, uploader: uploader}
}

// Create exports every registered collection (or, when schoolID is set, only
// the tenant-scoped ones filtered to that school) into a single zip archive.
// The staging directory is removed in every outcome; a half-written archive
// never survives a failure.
func (s *BackupService) Create(ctx context.Context, schoolID *uuid.UUID) (*Archive, error) {
	now := time.Now().UTC()
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(now.Format("2006-01-02T15:04:05.000Z07:00"))
	filename := stamp + ".zip"

	staging := filepath.Join(s.cfg.TempDir, "backup-"+stamp)
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	zipPath := filepath.Join(s.cfg.Dir, filename)

	ok := false
	defer func() {
		os.RemoveAll(staging)
		if !ok {
			os.Remove(zipPath)
		}
	}()

	meta := Metadata{
		Timestamp:    now.Format(time.RFC3339Nano),
		SchoolID:     schoolID,
		Version:      FormatVersion,
		RecordCounts: map[string]int{},
	}
	for _, col := range s.registry {
		if schoolID != nil && !col.Scoped {
			continue
		}
		records, count, err := col.Fetch(ctx, schoolID)
		if err != nil {
			return nil, err
		}
		payload, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", col.Name, err)
		}
		if err := os.WriteFile(filepath.Join(staging, col.Name+".json"), payload, 0o644); err != nil {
			return nil, fmt.Errorf("stage %s: %w", col.Name, err)
		}
		meta.Models = append(meta.Models, col.Name)
		meta.RecordCounts[col.Name] = count
	}

	metaRaw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(staging, metadataFilename), metaRaw, 0o644); err != nil {
		return nil, fmt.Errorf("stage metadata: %w", err)
	}

	if err := zipDirectory(staging, zipPath); err != nil {
		return nil, err
	}

	if s.uploader != nil {
		if err := s.uploader.Upload(zipPath, filename); err != nil {
			return nil, fmt.Errorf("upload archive: %w", err)
		}
		log.Printf("[BACKUP] uploaded %s to remote storage", filename)
	}

	info, err := os.Stat(zipPath)
	if err != nil {
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	ok = true
	return &Archive{
		Filename:  filename,
		SizeBytes: info.Size(),
		CreatedAt: now,
		Metadata:  meta,
	}, nil
}

// Restore replaces current data with the archive's contents, model by model.
// Every payload the metadata promises must be present and decodable before
// any row is touched; a missing payload aborts with the model named.
func (s *BackupService) Restore(ctx context.Context, filename string) (*Metadata, error) {
	zipPath, err := s.archivePath(filename)
	if err != nil {
		return nil, err
	}

	extractDir := filepath.Join(s.cfg.TempDir, fmt.Sprintf("restore-%d", time.Now().UnixNano()))
	defer os.RemoveAll(extractDir)
	if err := unzipArchive(zipPath, extractDir); err != nil {
		return nil, err
	}

	metaRaw, err := os.ReadFile(filepath.Join(extractDir, metadataFilename))
	if err != nil {
		return nil, fmt.Errorf("read backup metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, fmt.Errorf("decode backup metadata: %w", err)
	}
	if meta.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported backup format version %q", meta.Version)
	}

	byName := make(map[string]Collection, len(s.registry))
	for _, col := range s.registry {
		byName[col.Name] = col
	}

	// Validate the whole manifest before touching a single row.
	payloads := make(map[string]json.RawMessage, len(meta.Models))
	for _, name := range meta.Models {
		if _, known := byName[name]; !known {
			return nil, fmt.Errorf("backup references unknown model %s", name)
		}
		raw, err := os.ReadFile(filepath.Join(extractDir, name+".json"))
		if err != nil {
			return nil, fmt.Errorf("backup payload for model %s is missing: %w", name, err)
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("backup payload for model %s is not valid JSON", name)
		}
		payloads[name] = raw
	}

	for _, name := range meta.Models {
		inserted, err := byName[name].Restore(ctx, meta.SchoolID, payloads[name])
		if err != nil {
			return nil, fmt.Errorf("restore %s: %w", name, err)
		}
		log.Printf("[BACKUP] restored %s: %d records", name, inserted)
	}

	return &meta, nil
}

// List returns archives newest first, filtered to the given school when
// schoolID is set. Scope comes from each archive's metadata, never from its
// filename. Archives whose metadata cannot be read are skipped with a log
// line rather than failing the listing.
func (s *BackupService) List(schoolID *uuid.UUID) ([]Archive, error) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Archive{}, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	out := make([]Archive, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".zip") {
			continue
		}
		path := filepath.Join(s.cfg.Dir, entry.Name())
		meta, err := readMetadataFromArchive(path)
		if err != nil {
			log.Printf("[BACKUP] skipping unreadable archive %s: %v", entry.Name(), err)
			continue
		}
		if schoolID != nil {
			if meta.SchoolID == nil || *meta.SchoolID != *schoolID {
				continue
			}
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		created := info.ModTime().UTC()
		if ts, err := time.Parse(time.RFC3339Nano, meta.Timestamp); err == nil {
			created = ts
		}
		out = append(out, Archive{
			Filename:  entry.Name(),
			SizeBytes: info.Size(),
			CreatedAt: created,
			Metadata:  *meta,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ArchiveFile resolves a listed archive back to its path for download.
func (s *BackupService) ArchiveFile(filename string) (string, error) {
	return s.archivePath(filename)
}

func (s *BackupService) archivePath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || !strings.HasSuffix(filename, ".zip") {
		return "", fmt.Errorf("invalid archive name %q", filename)
	}
	path := filepath.Join(s.cfg.Dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("archive %s not found: %w", filename, err)
	}
	return path, nil
}
