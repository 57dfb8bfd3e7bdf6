package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"waveform/config"
	"waveform/types"

	_ "modernc.org/sqlite" // SQLite 驱动
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshot (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	body       TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLite 单行快照存储，保存在事务中整体替换
type SQLite struct {
	db *sql.DB
}

// OpenSQLite 打开或创建数据库
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: 创建目录 %s: %v", types.ErrConfigIO, dir, err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("%w: 打开数据库: %v", types.ErrConfigIO, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: 初始化表: %v", types.ErrConfigIO, err)
	}
	return &SQLite{db: db}, nil
}

// Load 读取快照，没有记录时返回默认值
func (s *SQLite) Load(ctx context.Context) (config.Snapshot, []string, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM snapshot WHERE id = 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return config.Default(), nil, nil
	}
	if err != nil {
		return config.Default(), nil, fmt.Errorf("%w: 查询快照: %v", types.ErrConfigIO, err)
	}
	return config.Decode(bytes.NewBufferString(body))
}

// Save 在事务中替换快照
func (s *SQLite) Save(ctx context.Context, snap config.Snapshot) error {
	var buf bytes.Buffer
	if err := config.Encode(&buf, snap); err != nil {
		return fmt.Errorf("%w: 编码快照: %v", types.ErrConfigIO, err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: 开始事务: %v", types.ErrConfigIO, err)
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot (id, body, updated_at) VALUES (1, ?, datetime('now'))
		 ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		buf.String()); err != nil {
		return fmt.Errorf("%w: 写入快照: %v", types.ErrConfigIO, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: 提交事务: %v", types.ErrConfigIO, err)
	}
	return nil
}

// Close 关闭数据库
func (s *SQLite) Close() error { return s.db.Close() }

// Open 按设置打开存储
func Open(ctx context.Context, st config.StoreSettings) (Store, error) {
	switch st.Driver {
	case config.DriverSQLite:
		path := st.Path
		if path == "" {
			path = filepath.Join(filepath.Dir(config.DefaultPath()), "config.db")
		}
		return OpenSQLite(ctx, path)
	case config.DriverFile, "":
		return NewFileStore(st.Path), nil
	}
	return nil, fmt.Errorf("%w: 未知存储驱动: %s", types.ErrConfigIO, st.Driver)
}
