package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"resumequiz/internal/database"
	"resumequiz/internal/logger"
)

const backupVersion = "1.0"

// BackupData is the portable JSON form of the credential store
type BackupData struct {
	Version    string       `json:"version"`
	ExportedAt time.Time    `json:"exported_at"`
	Users      []UserBackup `json:"users"`
}

// UserBackup is one exported account. IDs are not carried over; usernames
// identify accounts across databases.
type UserBackup struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImportResult counts what an import did
type ImportResult struct {
	Imported int
	Skipped  int
}

// BackupService exports and imports user accounts
type BackupService struct {
	db  *database.DB
	log logger.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, log logger.Logger) *BackupService {
	return &BackupService{db: db, log: log}
}

// Export writes every account as indented JSON to w
func (s *BackupService) Export(ctx context.Context, w io.Writer) (int, error) {
	backup := &BackupData{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC(),
		Users:      []UserBackup{},
	}

	rows, err := s.db.QueryContext(ctx, "SELECT username, password_hash, created_at FROM users ORDER BY id")
	if err != nil {
		return 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		var createdAt sql.NullTime
		if err := rows.Scan(&u.Username, &u.PasswordHash, &createdAt); err != nil {
			return 0, fmt.Errorf("failed to scan user: %w", err)
		}
		if createdAt.Valid {
			u.CreatedAt = createdAt.Time
		}
		backup.Users = append(backup.Users, u)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to read users: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return 0, fmt.Errorf("failed to encode backup: %w", err)
	}

	s.log.Info("users exported", map[string]interface{}{"count": len(backup.Users)})
	return len(backup.Users), nil
}

// ExportToFile writes the backup to outputPath
func (s *BackupService) ExportToFile(ctx context.Context, outputPath string) (int, error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return s.Export(ctx, file)
}

// Import merges accounts from a backup into the database. Accounts whose
// username already exists are skipped.
func (s *BackupService) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	var result ImportResult

	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return result, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return result, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	s.log.Info("importing users", map[string]interface{}{
		"count":       len(backup.Users),
		"exported_at": backup.ExportedAt,
	})

	for _, u := range backup.Users {
		createdAt := u.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
			u.Username, u.PasswordHash, createdAt)
		if err != nil {
			if s.db.Dialect.IsUniqueViolation(err) {
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("failed to import user %q: %w", u.Username, err)
		}
		result.Imported++
	}

	s.log.Info("users imported", map[string]interface{}{"imported": result.Imported, "skipped": result.Skipped})
	return result, nil
}

// ImportFile imports the backup stored at inputPath
func (s *BackupService) ImportFile(ctx context.Context, inputPath string) (ImportResult, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.Import(ctx, file)
}

// Clear deletes every account
func (s *BackupService) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM users"); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}
