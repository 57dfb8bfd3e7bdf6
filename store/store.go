// Package store 保存与读取样式快照。
//
// 保存先写入同目录的临时文件或事务，完成后再替换，
// 失败时原有快照保持不变。
package store

import (
	"context"
	"sync"
	"waveform/config"
)

// Store 快照存储
type Store interface {
	// Load 读取快照，同时返回被丢弃的旧字段
	// 快照不存在时返回默认快照
	Load(ctx context.Context) (s config.Snapshot, dropped []string, err error)
	// Save 替换保存的快照
	Save(ctx context.Context, s config.Snapshot) error
	Close() error
}

// Memory 内存存储，不落盘
type Memory struct {
	mu    sync.Mutex
	snap  *config.Snapshot
	Saves int // 保存次数
}

// NewMemory 创建内存存储，初始快照可为空
func NewMemory(initial *config.Snapshot) *Memory {
	m := &Memory{}
	if initial != nil {
		s := initial.Clone()
		m.snap = &s
	}
	return m
}

// Load 读取快照
func (m *Memory) Load(ctx context.Context) (config.Snapshot, []string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return config.Default(), nil, nil
	}
	return m.snap.Clone(), nil, nil
}

// Save 保存快照
func (m *Memory) Save(ctx context.Context, s config.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := s.Clone()
	m.snap = &c
	m.Saves++
	return nil
}

// Close 无操作
func (m *Memory) Close() error { return nil }
