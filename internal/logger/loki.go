package logger

import (
	"context"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/ats/pkg/loki"
	"path/filepath"
	"strconv"
)

var lokiPusher *loki.Pusher

type logrusAdapter struct {
}

func (l *logrusAdapter) Error(msg string, args ...any) {
	log.WithFields(log.Fields{"args": args, "source": "loki"}).Error(msg)
}

type lokiHook struct {
	pusher   *loki.Pusher
	minLevel log.Level
}

func (h *lokiHook) Fire(entry *log.Entry) error {
	if entry.Data["source"] == "loki" {
		return nil
	}

	caller := ""
	if entry.Caller != nil {
		caller = filepath.Base(entry.Caller.Function) + ":" + strconv.Itoa(entry.Caller.Line)
	}

	errorType, _ := entry.Data[ErrorTypeField].(string)

	return h.pusher.Push(loki.LogEntry{
		Time:      entry.Time,
		Level:     entry.Level.String(),
		Message:   entry.Message,
		Caller:    caller,
		ErrorType: errorType,
		Fields:    lokiFields(entry.Data),
	})
}

// lokiFields keeps request context such as route, op or candidate id.
func lokiFields(data log.Fields) map[string]string {
	var fields map[string]string
	for key, value := range data {
		if key == ErrorTypeField || key == "source" {
			continue
		}
		if fields == nil {
			fields = make(map[string]string, len(data))
		}
		if err, ok := value.(error); ok {
			fields[key] = err.Error()
		} else {
			fields[key] = fmt.Sprint(value)
		}
	}
	return fields
}

func (h *lokiHook) Levels() []log.Level {
	var levels []log.Level
	for _, level := range log.AllLevels {
		if level <= h.minLevel {
			levels = append(levels, level)
		}
	}
	return levels
}

func addLokiHook(ctx context.Context, cfg loki.Config, minLevel log.Level) error {
	pusher, err := loki.New(ctx, cfg, &logrusAdapter{})
	if err != nil {
		return err
	}
	lokiPusher = pusher
	log.AddHook(&lokiHook{pusher: pusher, minLevel: minLevel})
	log.Info("Loki logging enabled")
	return nil
}
