// Package journal records every move of a match as one JSON line, so a
// session can be inspected or replayed later.
package journal

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
)

type Journal struct {
	log    *logrus.Logger
	closer io.Closer
}

func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.Out = w
	log.Formatter = &logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano}
	log.Level = logrus.InfoLevel
	return log
}

// New writes the journal to w. If w is an io.Closer it is closed by Close.
func New(w io.Writer) *Journal {
	j := &Journal{log: newLogger(w)}
	if c, ok := w.(io.Closer); ok {
		j.closer = c
	}
	return j
}

// Discard returns a journal that drops everything.
func Discard() *Journal {
	return New(io.Discard)
}

// Open returns a journal writing to a size-rotated file, or a discarding one
// when no file is configured. The file is created on the first record and
// released by Close.
func Open(cfg config.Journal) (*Journal, error) {
	if cfg.File == "" {
		return Discard(), nil
	}
	if cfg.MaxSizeMB < 0 || cfg.MaxBackups < 0 || cfg.MaxAgeDays < 0 {
		return nil, fmt.Errorf("journal %s: negative rotation limit", cfg.File)
	}
	return New(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}), nil
}

// Start opens a match. Replaying the same moves on a game built from info
// and seed reproduces the match; a zero seed means the layout was fixed.
func (j *Journal) Start(match uuid.UUID, info mines.FieldInfo, seed uint64) {
	j.log.WithFields(logrus.Fields{
		"match":  match.String(),
		"height": info.Height,
		"width":  info.Width,
		"mines":  info.MineCount,
		"seed":   seed,
	}).Info("start")
}

// Move records one command. A rejected move is recorded with its error.
func (j *Journal) Move(match uuid.UUID, action string, p mines.Position, res mines.Result, err error) {
	entry := j.log.WithFields(logrus.Fields{
		"match":  match.String(),
		"action": action,
		"row":    p.Row,
		"col":    p.Col,
	})
	if err != nil {
		entry.WithError(err).Warn("rejected")
		return
	}
	entry.WithFields(logrus.Fields{
		"outcome":  res.Outcome.String(),
		"revealed": len(res.Cells),
	}).Info("move")
}

func (j *Journal) End(match uuid.UUID, state mines.State, elapsed time.Duration) {
	j.log.WithFields(logrus.Fields{
		"match":   match.String(),
		"state":   state.String(),
		"elapsed": elapsed.Seconds(),
	}).Info("end")
}

func (j *Journal) Close() error {
	if j.closer == nil {
		return nil
	}
	err := j.closer.Close()
	j.closer = nil
	return err
}
