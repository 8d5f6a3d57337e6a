package biz

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lk2023060901/ai-study-backend/internal/markdown"
	"github.com/lk2023060901/ai-study-backend/internal/notes/types"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"
	searchtypes "github.com/lk2023060901/ai-study-backend/internal/search/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NoteStore 持久化整个笔记列表（整体读、整体写）
type NoteStore interface {
	Load(ctx context.Context) ([]*types.Note, error)
	Save(ctx context.Context, notes []*types.Note) error
}

// Clock 时间来源
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option 配置 NoteUseCase
type Option func(*NoteUseCase)

// WithClock 注入时间来源
func WithClock(clock Clock) Option {
	return func(uc *NoteUseCase) {
		uc.clock = clock
	}
}

// WithIDGenerator 注入 ID 生成器
func WithIDGenerator(gen func() string) Option {
	return func(uc *NoteUseCase) {
		uc.newID = gen
	}
}

// WithLogger 设置日志
func WithLogger(log *logger.Logger) Option {
	return func(uc *NoteUseCase) {
		uc.logger = log
	}
}

// NoteUseCase 笔记业务逻辑。启动时加载一次，之后每次修改都整体保存
type NoteUseCase struct {
	store  NoteStore
	clock  Clock
	newID  func() string
	logger *logger.Logger

	mu    sync.RWMutex
	notes []*types.Note // 最新的在前
}

// NewNoteUseCase 创建用例并从 store 加载笔记
func NewNoteUseCase(ctx context.Context, store NoteStore, opts ...Option) (*NoteUseCase, error) {
	uc := &NoteUseCase{
		store:  store,
		clock:  systemClock{},
		newID:  func() string { return uuid.New().String() },
		logger: logger.L(),
	}
	for _, opt := range opts {
		opt(uc)
	}

	notes, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	uc.notes = notes
	sortNewestFirst(uc.notes)

	uc.logger.Info("notes loaded", zap.Int("count", len(notes)))
	return uc, nil
}

// Create 创建笔记
func (uc *NoteUseCase) Create(ctx context.Context, topic, content, font string) (*types.Note, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" && strings.TrimSpace(content) == "" {
		return nil, types.ErrEmptyNote
	}
	f, err := types.ParseFont(font)
	if err != nil {
		return nil, err
	}

	note := &types.Note{
		ID:        uc.newID(),
		Topic:     topic,
		Content:   content,
		Timestamp: uc.clock.Now().UnixMilli(),
		Font:      f,
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := make([]*types.Note, 0, len(uc.notes)+1)
	next = append(next, note)
	next = append(next, uc.notes...)
	if err := uc.commitLocked(ctx, next); err != nil {
		return nil, err
	}
	return note.Clone(), nil
}

// CreateFromResult 将验证搜索结果保存为笔记，内容为纯文本
func (uc *NoteUseCase) CreateFromResult(ctx context.Context, topic string, result *searchtypes.VerifiedResult) (*types.Note, error) {
	if result == nil {
		return nil, types.ErrEmptyNote
	}
	return uc.Create(ctx, topic, ResultContent(result), string(types.DefaultFont))
}

// ResultContent 将结果渲染为笔记正文
func ResultContent(result *searchtypes.VerifiedResult) string {
	var b strings.Builder
	if result.Summary != "" {
		b.WriteString(result.Summary)
		b.WriteString("\n\n")
	}
	if body := markdown.PlainText(result.DetailedExplanation); body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Reliability: %d%%", result.ReliabilityScore)
	if result.ConsensusNote != "" {
		b.WriteString("\n")
		b.WriteString(result.ConsensusNote)
	}
	if len(result.Sources) > 0 {
		b.WriteString("\n\nSources:")
		for _, s := range result.Sources {
			title := s.Title
			if title == "" {
				title = s.Source
			}
			fmt.Fprintf(&b, "\n- %s (%s)", title, s.URL)
		}
	}
	return b.String()
}

// Get 按 ID 获取笔记
func (uc *NoteUseCase) Get(ctx context.Context, id string) (*types.Note, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	i := uc.indexLocked(id)
	if i < 0 {
		return nil, types.ErrNoteNotFound
	}
	return uc.notes[i].Clone(), nil
}

// List 列出所有笔记，最新的在前
func (uc *NoteUseCase) List(ctx context.Context) []*types.Note {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	result := make([]*types.Note, 0, len(uc.notes))
	for _, n := range uc.notes {
		result = append(result, n.Clone())
	}
	return result
}

// Update 部分更新笔记并刷新时间戳
func (uc *NoteUseCase) Update(ctx context.Context, id string, update types.NoteUpdate) (*types.Note, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := uc.indexLocked(id)
	if i < 0 {
		return nil, types.ErrNoteNotFound
	}

	note := uc.notes[i].Clone()
	if update.Topic != nil {
		note.Topic = strings.TrimSpace(*update.Topic)
	}
	if update.Content != nil {
		note.Content = *update.Content
	}
	if update.Font != nil {
		f, err := types.ParseFont(*update.Font)
		if err != nil {
			return nil, err
		}
		note.Font = f
	}
	if note.Topic == "" && strings.TrimSpace(note.Content) == "" {
		return nil, types.ErrEmptyNote
	}
	note.Timestamp = uc.clock.Now().UnixMilli()

	next := make([]*types.Note, 0, len(uc.notes))
	next = append(next, note)
	next = append(next, uc.notes[:i]...)
	next = append(next, uc.notes[i+1:]...)
	if err := uc.commitLocked(ctx, next); err != nil {
		return nil, err
	}
	return note.Clone(), nil
}

// Delete 删除笔记
func (uc *NoteUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := uc.indexLocked(id)
	if i < 0 {
		return types.ErrNoteNotFound
	}

	next := make([]*types.Note, 0, len(uc.notes)-1)
	next = append(next, uc.notes[:i]...)
	next = append(next, uc.notes[i+1:]...)
	return uc.commitLocked(ctx, next)
}

// commitLocked 先保存，成功后才替换内存中的列表
func (uc *NoteUseCase) commitLocked(ctx context.Context, next []*types.Note) error {
	if err := uc.store.Save(ctx, next); err != nil {
		uc.logger.Error("failed to save notes", zap.Int("count", len(next)), zap.Error(err))
		return fmt.Errorf("failed to save notes: %w", err)
	}
	uc.notes = next
	return nil
}

func (uc *NoteUseCase) indexLocked(id string) int {
	for i, n := range uc.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func sortNewestFirst(notes []*types.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Timestamp > notes[j].Timestamp
	})
}
