package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/model"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	IntegrityErrors   []string `json:"integrity_errors,omitempty"`
	UnknownCategory   int      `json:"unknown_category"`
	MiscasedCategory  int      `json:"miscased_category"`
	BadTimestamp      int      `json:"bad_timestamp"`
	FixedCategoryRows int      `json:"fixed_category_rows,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return len(r.IntegrityErrors) == 0 && r.UnknownCategory == 0 && r.MiscasedCategory == 0 && r.BadTimestamp == 0
}

// CreateBackup snapshots the open database with VACUUM INTO and writes a
// sha256 sidecar next to it.
func CreateBackup(db *sql.DB, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, invalidf("backup output path is required")
	}
	if _, err := os.Stat(outPath); err == nil {
		return BackupInfo{}, invalidf("backup %s already exists", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := db.Exec(`VACUUM INTO ?`, outPath); err != nil {
		return BackupInfo{}, storageErr("snapshot database", err)
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// RestoreBackup copies a backup over dbPath. The database must not be open.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return invalidf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return invalidf("target db already exists; use --force to overwrite")
		}
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return invalidf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("backup dir %s: %w", dir, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor checks SQLite integrity and that every post carries a configured
// category and a parseable timestamp. With fix, categories that differ from
// the configured spelling only by case are rewritten.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	rows, err := db.Query(`PRAGMA integrity_check`)
	if err != nil {
		return report, storageErr("doctor integrity check", err)
	}
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			_ = rows.Close()
			return report, storageErr("doctor integrity scan", err)
		}
		if line != "ok" {
			report.IntegrityErrors = append(report.IntegrityErrors, line)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return report, storageErr("doctor integrity iterate", err)
	}
	_ = rows.Close()

	allowed, err := PostCategories(db)
	if err != nil {
		return report, err
	}

	posts, err := ListPosts(db, PostFilter{})
	if err != nil {
		return report, err
	}
	type recase struct {
		id       int64
		category string
	}
	fixes := make([]recase, 0)
	for _, p := range posts {
		canonical, ok := canonicalCategory(allowed, p.Category)
		switch {
		case !ok:
			report.UnknownCategory++
		case canonical != p.Category:
			report.MiscasedCategory++
			fixes = append(fixes, recase{id: p.ID, category: canonical})
		}
		if _, err := time.ParseInLocation(model.TimestampLayout, p.Timestamp, time.Local); err != nil {
			report.BadTimestamp++
		}
	}

	if fix && len(fixes) > 0 {
		tx, err := db.Begin()
		if err != nil {
			return report, storageErr("doctor fix begin tx", err)
		}
		for _, f := range fixes {
			if _, err := tx.Exec(`UPDATE posts SET category = ? WHERE id = ?`, f.category, f.id); err != nil {
				_ = tx.Rollback()
				return report, storageErr(fmt.Sprintf("doctor fix post %d", f.id), err)
			}
			report.FixedCategoryRows++
		}
		if err := tx.Commit(); err != nil {
			return report, storageErr("doctor fix commit", err)
		}
	}

	return report, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
