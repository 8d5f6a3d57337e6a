package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lk2023060901/ai-study-backend/internal/notes/types"
)

// FileStore 将笔记列表保存为一个 JSON 文件
type FileStore struct {
	path string
}

// NewFileStore 创建文件存储
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load 读取文件，文件不存在时返回空列表
func (s *FileStore) Load(ctx context.Context) ([]*types.Note, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*types.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read notes file: %w", err)
	}
	return decodeNotes(raw)
}

// Save 写临时文件后 rename，保证文件要么是旧内容要么是新内容
func (s *FileStore) Save(ctx context.Context, notes []*types.Note) error {
	raw, err := encodeNotes(notes)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write notes: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync notes: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace notes file: %w", err)
	}
	return nil
}

func encodeNotes(notes []*types.Note) ([]byte, error) {
	if notes == nil {
		notes = []*types.Note{}
	}
	raw, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notes: %w", err)
	}
	return raw, nil
}

func decodeNotes(raw []byte) ([]*types.Note, error) {
	var notes []*types.Note
	if err := json.Unmarshal(raw, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	// null 元素直接丢弃
	out := make([]*types.Note, 0, len(notes))
	for _, n := range notes {
		if n == nil {
			continue
		}
		if n.Font == "" {
			n.Font = types.DefaultFont
		}
		out = append(out, n)
	}
	return out, nil
}
