package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"waveform/config"
	"waveform/types"
)

// FileStore JSON 文件存储
type FileStore struct {
	Path string
}

// NewFileStore 创建文件存储，路径为空时使用默认路径
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = config.DefaultPath()
	}
	return &FileStore{Path: path}
}

// Load 读取快照，文件不存在时返回默认值
func (f *FileStore) Load(ctx context.Context) (config.Snapshot, []string, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil, nil
	}
	if err != nil {
		return config.Default(), nil, fmt.Errorf("%w: 打开 %s: %v", types.ErrConfigIO, f.Path, err)
	}
	defer file.Close()
	return config.Decode(file)
}

// Save 写入临时文件后替换
func (f *FileStore) Save(ctx context.Context, s config.Snapshot) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: 创建目录 %s: %v", types.ErrConfigIO, dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("%w: 创建临时文件: %v", types.ErrConfigIO, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = config.Encode(tmp, s); err != nil {
		return fmt.Errorf("%w: 写入快照: %v", types.ErrConfigIO, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: 同步快照: %v", types.ErrConfigIO, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: 关闭临时文件: %v", types.ErrConfigIO, err)
	}
	if err = os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("%w: 替换 %s: %v", types.ErrConfigIO, f.Path, err)
	}
	return nil
}

// Close 无操作
func (f *FileStore) Close() error { return nil }
