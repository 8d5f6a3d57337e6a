package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var gormLevels = map[string]gormlogger.LogLevel{
	"silent": gormlogger.Silent,
	"error":  gormlogger.Error,
	"warn":   gormlogger.Warn,
	"info":   gormlogger.Info,
}

// queryLogger sends gorm output to zap. Failed queries log at error,
// slow ones at warn, everything else at debug when level is info.
type queryLogger struct {
	log   *logger.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

func newQueryLogger(log *logger.Logger, level string, slow time.Duration) *queryLogger {
	lv, ok := gormLevels[level]
	if !ok {
		lv = gormlogger.Warn
	}
	return &queryLogger{log: log.Named("gorm"), level: lv, slow: slow}
}

func (q *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *q
	cp.level = level
	return &cp
}

func (q *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	if q.level >= gormlogger.Info {
		q.log.WithContext(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (q *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	if q.level >= gormlogger.Warn {
		q.log.WithContext(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (q *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	if q.level >= gormlogger.Error {
		q.log.WithContext(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (q *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if q.level <= gormlogger.Silent {
		return
	}

	took := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := q.slow > 0 && took > q.slow

	var emit func(string, ...zap.Field)
	var msg string
	switch {
	case failed && q.level >= gormlogger.Error:
		emit, msg = q.log.WithContext(ctx).Error, "query failed"
	case slow && q.level >= gormlogger.Warn:
		emit, msg = q.log.WithContext(ctx).Warn, "slow query"
	case q.level >= gormlogger.Info:
		emit, msg = q.log.WithContext(ctx).Debug, "query"
	default:
		return
	}

	sql, rows := fc()
	fields := []zap.Field{zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("took", took)}
	if failed {
		fields = append(fields, zap.Error(err))
	}
	emit(msg, fields...)
}
