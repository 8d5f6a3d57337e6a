package data

import (
	"context"
	"fmt"

	"github.com/lk2023060901/ai-study-backend/internal/notes/types"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/database"

	"gorm.io/gorm"
)

// NoteModel notes 表，Position 保存列表顺序
type NoteModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	Topic     string `gorm:"size:512"`
	Content   string `gorm:"type:text"`
	Timestamp int64  `gorm:"not null;index"`
	Font      string `gorm:"size:16;not null;default:sans"`
	Position  int    `gorm:"not null"`
}

// TableName 表名
func (NoteModel) TableName() string {
	return "notes"
}

// DBStore 基于 PostgreSQL 的笔记存储，每次保存在一个事务内整体替换
type DBStore struct {
	db *database.DB
}

// NewDBStore 创建数据库存储并按配置迁移表结构
func NewDBStore(db *database.DB) (*DBStore, error) {
	if err := db.Migrate(&NoteModel{}); err != nil {
		return nil, err
	}
	return &DBStore{db: db}, nil
}

// Load 按 Position 顺序读取所有笔记
func (s *DBStore) Load(ctx context.Context) ([]*types.Note, error) {
	var models []NoteModel
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	notes := make([]*types.Note, 0, len(models))
	for i := range models {
		notes = append(notes, toDomain(&models[i]))
	}
	return notes, nil
}

// Save 删除全部旧记录并写入新列表
func (s *DBStore) Save(ctx context.Context, notes []*types.Note) error {
	return s.db.InTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&NoteModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear notes: %w", err)
		}
		if len(notes) == 0 {
			return nil
		}

		models := make([]NoteModel, 0, len(notes))
		for i, n := range notes {
			models = append(models, toModel(n, i))
		}
		if err := tx.CreateInBatches(models, 100).Error; err != nil {
			return fmt.Errorf("failed to insert notes: %w", err)
		}
		return nil
	})
}

func toModel(n *types.Note, position int) NoteModel {
	return NoteModel{
		ID:        n.ID,
		Topic:     n.Topic,
		Content:   n.Content,
		Timestamp: n.Timestamp,
		Font:      string(n.Font),
		Position:  position,
	}
}

func toDomain(m *NoteModel) *types.Note {
	font := types.Font(m.Font)
	if font == "" {
		font = types.DefaultFont
	}
	return &types.Note{
		ID:        m.ID,
		Topic:     m.Topic,
		Content:   m.Content,
		Timestamp: m.Timestamp,
		Font:      font,
	}
}
