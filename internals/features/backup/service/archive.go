// file: internals/features/backup/service/archive.go
package service

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// zipDirectory packs every file at the top level of srcDir into outPath.
// Archive entries are flat; staging never nests directories.
func zipDirectory(srcDir, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	defer zw.Close()

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("read staging dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addFileToZip(zw, filepath.Join(srcDir, entry.Name()), entry.Name()); err != nil {
			return err
		}
	}
	return nil
}

func addFileToZip(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	hdr := &zip.FileHeader{Name: name, Method: zip.Deflate}
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("add %s to archive: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("write %s to archive: %w", name, err)
	}
	return nil
}

// unzipArchive extracts srcPath into destDir, refusing entries that would
// escape destDir.
func unzipArchive(srcPath, destDir string) error {
	r, err := zip.OpenReader(srcPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create extract dir: %w", err)
	}
	for _, f := range r.File {
		target := filepath.Join(destDir, f.Name)
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes extract dir", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("extract dir %s: %w", f.Name, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("extract dir for %s: %w", f.Name, err)
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return nil
}

// readMetadataFromArchive pulls metadata.json out of a backup zip without
// extracting the payload files.
func readMetadataFromArchive(path string) (*Metadata, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != metadataFilename {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open metadata: %w", err)
		}
		defer rc.Close()

		var meta Metadata
		if err := json.NewDecoder(rc).Decode(&meta); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
		return &meta, nil
	}
	return nil, fmt.Errorf("archive has no %s", metadataFilename)
}
