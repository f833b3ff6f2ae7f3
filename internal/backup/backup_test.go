package backup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/routine/internal/constants"
	"github.com/julianstephens/routine/internal/storage/sqlite"
)

// setupTestDB creates a routine database holding one key and closes it.
func setupTestDB(t *testing.T, value string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "routine.db")

	store, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := store.Set(context.Background(), constants.KeyActivities, []byte(value)); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close test database: %v", err)
	}
	return dbPath
}

func readActivities(t *testing.T, dbPath string) string {
	t.Helper()
	store, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()
	got, err := store.Get(context.Background(), constants.KeyActivities)
	if err != nil {
		t.Fatalf("failed to read activities: %v", err)
	}
	return string(got)
}

// steppingClock advances one minute per call.
func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t, `[{"id":1}]`)

	mgr := NewManager(dbPath)
	mgr.now = func() time.Time { return time.Date(2026, 3, 2, 9, 30, 0, 0, time.Local) }
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if filepath.Base(backupPath) != "routine-20260302-0930.db" {
		t.Errorf("unexpected backup name %s", filepath.Base(backupPath))
	}
	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want %s", filepath.Dir(backupPath), mgr.GetBackupDir())
	}
	if got := readActivities(t, backupPath); got != `[{"id":1}]` {
		t.Errorf("backup holds %q", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup should fail without a database")
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t, "[]")
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local))

	for i := 0; i < constants.MaxBackups+4; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups, got %d", constants.MaxBackups, len(backups))
	}
	// the four oldest (08:00..08:03) are gone
	if oldest := backups[len(backups)-1].Name(); oldest != "routine-20260301-0804.db" {
		t.Errorf("oldest remaining backup = %s", oldest)
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupTestDB(t, "[]")
	mgr := NewManager(dbPath)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}

	mgr.now = steppingClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local))
	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatal(err)
		}
	}
	// files that are not backups are ignored
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "routine-garbage.db"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i-1].Timestamp.After(backups[i].Timestamp) {
			t.Errorf("backups not sorted newest first: %v before %v", backups[i-1].Timestamp, backups[i].Timestamp)
		}
	}
	if backups[0].Size == 0 || backups[0].SizeLabel() == "" {
		t.Errorf("expected size information, got %d %q", backups[0].Size, backups[0].SizeLabel())
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name string
		want time.Time
		ok   bool
	}{
		{"routine-20260302-0930.db", time.Date(2026, 3, 2, 9, 30, 0, 0, time.Local), true},
		{"routine-20260302-093015.db", time.Date(2026, 3, 2, 9, 30, 15, 0, time.Local), true},
		{"routine-20260302-093015-2.db", time.Date(2026, 3, 2, 9, 30, 15, 0, time.Local), true},
		{"other-20260302-0930.db", time.Time{}, false},
		{"routine-20260302-0930.sql", time.Time{}, false},
		{"routine-yesterday.db", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseBackupName(tt.name)
			if ok != tt.ok || !got.Equal(tt.want) {
				t.Errorf("parseBackupName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t, `["before"]`)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(context.Background(), constants.KeyActivities, []byte(`["after"]`)); err != nil {
		t.Fatal(err)
	}
	store.Close()

	snapshot, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := readActivities(t, dbPath); got != `["before"]` {
		t.Errorf("restored database holds %q", got)
	}

	if snapshot == "" {
		t.Fatal("expected a pre-restore snapshot")
	}
	if got := readActivities(t, snapshot); got != `["after"]` {
		t.Errorf("pre-restore snapshot holds %q", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreBackupRejectsInvalidFiles(t *testing.T) {
	dbPath := setupTestDB(t, "[]")
	mgr := NewManager(dbPath)

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("RestoreBackup should fail for a missing file")
	}

	invalidPath := filepath.Join(t.TempDir(), "invalid.db")
	if err := os.WriteFile(invalidPath, []byte("this is not a database file at all, just text"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := mgr.RestoreBackup(invalidPath)
	if err == nil || !strings.Contains(err.Error(), "corrupted or invalid") {
		t.Errorf("RestoreBackup(invalid) error = %v", err)
	}
	if got := readActivities(t, dbPath); got != "[]" {
		t.Errorf("database changed after rejected restore: %q", got)
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupTestDB(t, "[]")
	mgr := NewManager(dbPath)
	mgr.now = func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local) }

	paths := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		filename := filepath.Base(backupPath)
		if paths[filename] {
			t.Errorf("duplicate backup filename: %s", filename)
		}
		paths[filename] = true
	}
}
