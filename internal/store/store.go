package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/linsy89/sp-data-analysis-tool/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store SQLite 快照存储层
// 保存最近一次提取后的表格，供详情页在进程重启后继续下钻
type Store struct {
	db *sql.DB
}

// Snapshot 提取结果快照
type Snapshot struct {
	FileID     string
	FileName   string
	UploadedAt time.Time
	Table      *model.Table
}

// New 创建新的 Store 实例
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite 建议单连接
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema 初始化数据库结构
func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}

	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot 保存提取结果快照，覆盖旧快照
func (s *Store) SaveSnapshot(fileID, fileName string, t *model.Table) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshot (id, file_id, file_name, uploaded_at, payload)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			file_id = excluded.file_id,
			file_name = excluded.file_name,
			uploaded_at = excluded.uploaded_at,
			payload = excluded.payload
	`, fileID, fileName, time.Now().UTC().Format(time.RFC3339), string(payload))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot 加载最近的快照，没有快照时返回 (nil, nil)
func (s *Store) LoadSnapshot() (*Snapshot, error) {
	var fileID, fileName, uploadedAt, payload string
	err := s.db.QueryRow(`
		SELECT file_id, file_name, uploaded_at, payload FROM snapshot WHERE id = 1
	`).Scan(&fileID, &fileName, &uploadedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var table model.Table
	if err := json.Unmarshal([]byte(payload), &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal table: %w", err)
	}

	ts, _ := time.Parse(time.RFC3339, uploadedAt)

	return &Snapshot{
		FileID:     fileID,
		FileName:   fileName,
		UploadedAt: ts,
		Table:      &table,
	}, nil
}

// ClearSnapshot 清除快照
func (s *Store) ClearSnapshot() error {
	if _, err := s.db.Exec(`DELETE FROM snapshot WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}
