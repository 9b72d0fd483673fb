// file: internals/features/backup/service/backup_service_test.go
package service

import (
	"archive/zip"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"eduanalytics_backend/internals/configs"
)

type fakeRecord struct {
	ID       string `json:"id"`
	SchoolID string `json:"school_id"`
	Value    int    `json:"value"`
}

// memCollection backs a Collection with an in-memory slice so engine
// behavior is testable without a database.
func memCollection(name string, scoped bool, store *[]fakeRecord) Collection {
	return Collection{
		Name:   name,
		Scoped: scoped,
		Fetch: func(_ context.Context, schoolID *uuid.UUID) (any, int, error) {
			if schoolID == nil || !scoped {
				return *store, len(*store), nil
			}
			var out []fakeRecord
			for _, r := range *store {
				if r.SchoolID == schoolID.String() {
					out = append(out, r)
				}
			}
			return out, len(out), nil
		},
		Restore: func(_ context.Context, schoolID *uuid.UUID, payload json.RawMessage) (int, error) {
			var rows []fakeRecord
			if err := json.Unmarshal(payload, &rows); err != nil {
				return 0, err
			}
			if schoolID == nil || !scoped {
				*store = rows
				return len(rows), nil
			}
			var kept []fakeRecord
			for _, r := range *store {
				if r.SchoolID != schoolID.String() {
					kept = append(kept, r)
				}
			}
			*store = append(kept, rows...)
			return len(rows), nil
		},
	}
}

func newTestService(t *testing.T, registry []Collection) *BackupService {
	t.Helper()
	root := t.TempDir()
	cfg := configs.BackupConfig{
		Dir:     filepath.Join(root, "backups"),
		TempDir: filepath.Join(root, "temp"),
	}
	return NewBackupService(cfg, registry, nil)
}

func TestCreateFullBackup(t *testing.T) {
	users := []fakeRecord{
		{ID: "u1", SchoolID: "s1", Value: 1},
		{ID: "u2", SchoolID: "s2", Value: 2},
	}
	resets := []fakeRecord{{ID: "r1", Value: 9}}
	svc := newTestService(t, []Collection{
		memCollection("User", true, &users),
		memCollection("PasswordReset", false, &resets),
	})

	arch, err := svc.Create(context.Background(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasSuffix(arch.Filename, ".zip") {
		t.Fatalf("filename %q has no .zip suffix", arch.Filename)
	}
	if base := strings.TrimSuffix(arch.Filename, ".zip"); strings.ContainsAny(base, ":.") {
		t.Fatalf("filename %q carries unsanitized timestamp characters", arch.Filename)
	}
	if arch.Metadata.SchoolID != nil {
		t.Fatalf("full backup metadata should carry null schoolId, got %v", arch.Metadata.SchoolID)
	}
	if arch.Metadata.Version != FormatVersion {
		t.Fatalf("version = %q, want %q", arch.Metadata.Version, FormatVersion)
	}

	wantCounts := map[string]int{"User": 2, "PasswordReset": 1}
	for name, want := range wantCounts {
		if got := arch.Metadata.RecordCounts[name]; got != want {
			t.Fatalf("recordCounts[%s] = %d, want %d", name, got, want)
		}
	}

	// The archive on disk must hold exactly metadata.json plus one payload
	// per model, flat at the root.
	path, err := svc.ArchiveFile(arch.Filename)
	if err != nil {
		t.Fatalf("ArchiveFile: %v", err)
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer r.Close()
	names := map[string]bool{}
	for _, f := range r.File {
		names[f.Name] = true
	}
	for _, want := range []string{"metadata.json", "User.json", "PasswordReset.json"} {
		if !names[want] {
			t.Fatalf("archive is missing %s (has %v)", want, names)
		}
	}
}

func TestCreateScopedBackupSkipsUnscoped(t *testing.T) {
	school := uuid.New()
	users := []fakeRecord{
		{ID: "u1", SchoolID: school.String(), Value: 1},
		{ID: "u2", SchoolID: uuid.NewString(), Value: 2},
	}
	resets := []fakeRecord{{ID: "r1"}}
	svc := newTestService(t, []Collection{
		memCollection("User", true, &users),
		memCollection("PasswordReset", false, &resets),
	})

	arch, err := svc.Create(context.Background(), &school)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if arch.Metadata.SchoolID == nil || *arch.Metadata.SchoolID != school {
		t.Fatalf("metadata schoolId = %v, want %s", arch.Metadata.SchoolID, school)
	}
	if len(arch.Metadata.Models) != 1 || arch.Metadata.Models[0] != "User" {
		t.Fatalf("scoped backup models = %v, want [User]", arch.Metadata.Models)
	}
	if got := arch.Metadata.RecordCounts["User"]; got != 1 {
		t.Fatalf("scoped recordCounts[User] = %d, want 1", got)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	users := []fakeRecord{
		{ID: "u1", SchoolID: "s1", Value: 1},
		{ID: "u2", SchoolID: "s1", Value: 2},
	}
	svc := newTestService(t, []Collection{memCollection("User", true, &users)})

	arch, err := svc.Create(context.Background(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Mutate live data, then restore.
	users = []fakeRecord{{ID: "u9", SchoolID: "s9", Value: 99}}
	meta, err := svc.Restore(context.Background(), arch.Filename)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(users) != 2 || users[0].ID != "u1" || users[1].ID != "u2" {
		t.Fatalf("restore did not reinstate archived rows: %+v", users)
	}
	if meta.RecordCounts["User"] != 2 {
		t.Fatalf("restore metadata recordCounts[User] = %d, want 2", meta.RecordCounts["User"])
	}
}

func TestRestoreScopedLeavesOtherTenants(t *testing.T) {
	school := uuid.New()
	other := uuid.New()
	users := []fakeRecord{
		{ID: "mine", SchoolID: school.String(), Value: 1},
		{ID: "theirs", SchoolID: other.String(), Value: 2},
	}
	svc := newTestService(t, []Collection{memCollection("User", true, &users)})

	arch, err := svc.Create(context.Background(), &school)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Drift both tenants, then restore only one.
	users = []fakeRecord{
		{ID: "mine-drifted", SchoolID: school.String(), Value: 5},
		{ID: "theirs", SchoolID: other.String(), Value: 2},
	}
	if _, err := svc.Restore(context.Background(), arch.Filename); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	var mine, theirs int
	for _, r := range users {
		switch r.SchoolID {
		case school.String():
			mine++
			if r.ID != "mine" {
				t.Fatalf("scoped restore kept drifted row %+v", r)
			}
		case other.String():
			theirs++
		}
	}
	if mine != 1 || theirs != 1 {
		t.Fatalf("scoped restore changed tenant row counts: mine=%d theirs=%d", mine, theirs)
	}
}

func TestRestoreMissingPayloadFailsWithoutChanges(t *testing.T) {
	users := []fakeRecord{{ID: "u1", SchoolID: "s1"}}
	svc := newTestService(t, []Collection{memCollection("User", true, &users)})

	arch, err := svc.Create(context.Background(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Rebuild the archive without the User payload but with metadata that
	// still promises it.
	path, err := svc.ArchiveFile(arch.Filename)
	if err != nil {
		t.Fatalf("ArchiveFile: %v", err)
	}
	stripArchiveEntry(t, path, "User.json")

	before := append([]fakeRecord(nil), users...)
	_, err = svc.Restore(context.Background(), arch.Filename)
	if err == nil {
		t.Fatal("Restore should fail when a promised payload is missing")
	}
	if !strings.Contains(err.Error(), "User") {
		t.Fatalf("error %q does not name the missing model", err)
	}
	if len(users) != len(before) || users[0] != before[0] {
		t.Fatalf("failed restore modified data: %+v", users)
	}
}

func TestRestoreRejectsUnknownVersion(t *testing.T) {
	svc := newTestService(t, nil)
	dir := svc.cfg.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "bad-version.zip")
	writeArchive(t, path, map[string]string{
		"metadata.json": `{"timestamp":"2026-01-01T00:00:00Z","schoolId":null,"version":"9.9","models":[],"recordCounts":{}}`,
	})
	if _, err := svc.Restore(context.Background(), "bad-version.zip"); err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("want version error, got %v", err)
	}
}

func TestListScopeComesFromMetadata(t *testing.T) {
	school := uuid.New()
	users := []fakeRecord{{ID: "u1", SchoolID: school.String()}}
	svc := newTestService(t, []Collection{memCollection("User", true, &users)})

	if _, err := svc.Create(context.Background(), nil); err != nil {
		t.Fatalf("Create full: %v", err)
	}
	time.Sleep(5 * time.Millisecond) // distinct timestamps in filenames
	scoped, err := svc.Create(context.Background(), &school)
	if err != nil {
		t.Fatalf("Create scoped: %v", err)
	}

	all, err := svc.List(nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List(nil) = %d archives, want 2", len(all))
	}
	if !all[0].CreatedAt.After(all[1].CreatedAt) {
		t.Fatalf("listing not newest-first: %v then %v", all[0].CreatedAt, all[1].CreatedAt)
	}

	mine, err := svc.List(&school)
	if err != nil {
		t.Fatalf("List scoped: %v", err)
	}
	if len(mine) != 1 || mine[0].Filename != scoped.Filename {
		t.Fatalf("scoped listing = %+v, want only %s", mine, scoped.Filename)
	}
}

func TestListSkipsUnreadableArchives(t *testing.T) {
	svc := newTestService(t, nil)
	if err := os.MkdirAll(svc.cfg.Dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(svc.cfg.Dir, "garbage.zip"), []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := svc.List(nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("unreadable archive leaked into listing: %+v", out)
	}
}

// stripArchiveEntry rewrites the zip at path without the named entry.
func stripArchiveEntry(t *testing.T, path, drop string) {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	contents := map[string]string{}
	for _, f := range r.File {
		if f.Name == drop {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		contents[f.Name] = string(body)
	}
	r.Close()
	writeArchive(t, path, contents)
}

func writeArchive(t *testing.T, path string, contents map[string]string) {
	t.Helper()
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(out)
	for name, body := range contents {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
}
