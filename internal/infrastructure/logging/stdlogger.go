package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/Kwonjooeun/weaponctl/internal/infrastructure/config"
)

var levelOrder = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

// StdLogger is a concrete FleetLogger writing JSON or text lines to
// stdout, stderr, or a rotating file, per LoggingConfig.
type StdLogger struct {
	mu       sync.Mutex
	cfg      config.LoggingConfig
	out      io.Writer
	rotating *rotatingFile
}

func NewStdLogger(cfg config.LoggingConfig) (*StdLogger, error) {
	l := &StdLogger{cfg: cfg}

	switch cfg.Output {
	case "stdout":
		l.out = os.Stdout
	case "stderr":
		l.out = os.Stderr
	case "file":
		rf, err := newRotatingFile(cfg.FilePath, cfg.Rotation)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.rotating = rf
		l.out = rf
	default:
		return nil, fmt.Errorf("unknown log output: %s", cfg.Output)
	}

	return l, nil
}

func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	if levelOrder[level] < levelOrder[l.cfg.Level] {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := l.format(level, message, metadata)

	if l.rotating != nil {
		if err := l.rotating.rotateIfNeeded(len(line)); err != nil {
			fmt.Fprintf(os.Stderr, "weaponctl: log rotation failed: %v\n", err)
		}
	}

	l.out.Write([]byte(line))
}

func (l *StdLogger) format(level, message string, metadata map[string]interface{}) string {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	if l.cfg.Format == "json" {
		entry := map[string]interface{}{
			"time":    now,
			"level":   level,
			"message": message,
		}
		for k, v := range metadata {
			entry[k] = v
		}
		b, err := json.Marshal(entry)
		if err != nil {
			return fmt.Sprintf(`{"time":%q,"level":"error","message":"log marshal failed: %s"}`+"\n", now, err)
		}
		return string(b) + "\n"
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	line := fmt.Sprintf("%s [%s] %s", now, level, message)
	for _, k := range keys {
		line += fmt.Sprintf(" %s=%v", k, metadata[k])
	}
	return line + "\n"
}

func (l *StdLogger) Close() error {
	if l.rotating != nil {
		return l.rotating.Close()
	}
	return nil
}
