package service_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/db"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/service"
)

func TestRunDoctorReportsAndFixesCategories(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.CreatePost(sqldb, service.PostInput{Category: "Sleep", Content: "fine"}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := sqldb.Exec(`
INSERT INTO posts(category, content, timestamp) VALUES
  ('sleep', 'miscased', '2026-01-02 07:00'),
  ('Gossip', 'unknown', '2026-01-02 07:01'),
  ('Exercise', 'bad time', 'yesterday')
`); err != nil {
		t.Fatalf("seed posts: %v", err)
	}

	report, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.Healthy() {
		t.Fatalf("expected issues, got %+v", report)
	}
	if report.MiscasedCategory != 1 || report.UnknownCategory != 1 || report.BadTimestamp != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(report.IntegrityErrors) != 0 {
		t.Fatalf("expected sqlite integrity ok, got %v", report.IntegrityErrors)
	}

	report, err = service.RunDoctor(sqldb, true)
	if err != nil {
		t.Fatalf("doctor fix: %v", err)
	}
	if report.FixedCategoryRows != 1 {
		t.Fatalf("expected one fixed row, got %d", report.FixedCategoryRows)
	}
	sleep, err := service.ListPostsByCategory(sqldb, "Sleep")
	if err != nil {
		t.Fatalf("list sleep: %v", err)
	}
	if len(sleep) != 2 {
		t.Fatalf("expected miscased post to be recategorized, got %d sleep posts", len(sleep))
	}

	report, err = service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("doctor recheck: %v", err)
	}
	if report.MiscasedCategory != 0 {
		t.Fatalf("expected no miscased rows after fix, got %d", report.MiscasedCategory)
	}
}

func TestBackupCreateListRestore(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.CreatePost(sqldb, service.PostInput{Category: "Biomarkers", Content: "hba1c 5.1"}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "backups")
	backupPath := filepath.Join(dir, "immortalis-1.db")
	info, err := service.CreateBackup(sqldb, backupPath)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("unexpected backup info %+v", info)
	}
	if _, err := service.CreateBackup(sqldb, backupPath); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected existing backup to be rejected, got %v", err)
	}

	items, err := service.ListBackups(dir)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(items) != 1 || items[0].Checksum != info.Checksum {
		t.Fatalf("unexpected backups %+v", items)
	}

	restored := filepath.Join(t.TempDir(), "restored.db")
	if err := service.RestoreBackup(backupPath, restored, false); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := service.RestoreBackup(backupPath, restored, false); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected restore over existing db without force to fail, got %v", err)
	}

	rdb, err := db.Open(restored)
	if err != nil {
		t.Fatalf("open restored: %v", err)
	}
	defer rdb.Close()
	posts, err := service.ListPosts(rdb, service.PostFilter{})
	if err != nil {
		t.Fatalf("list restored posts: %v", err)
	}
	if len(posts) != 1 || posts[0].Content != "hba1c 5.1" {
		t.Fatalf("unexpected restored posts %+v", posts)
	}

	if err := os.WriteFile(backupPath+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("corrupt checksum: %v", err)
	}
	if err := service.RestoreBackup(backupPath, restored, true); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestListBackupsMissingDir(t *testing.T) {
	t.Parallel()
	_, err := service.ListBackups(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
