package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Kwonjooeun/weaponctl/internal/infrastructure/config"
)

// rotatingFile is a minimal size-based rotation writer: when the
// current file would exceed Rotation.MaxSize megabytes, it is renamed
// with a timestamp suffix and a fresh file is opened. MaxBackups caps
// how many rotated files are kept; MaxAge prunes by modification time.
// The teacher's config carries these fields as plumbing only; the pack
// has no logging library anywhere to delegate this to, so it is
// implemented directly against os/filepath per LoggingConfig's shape.
type rotatingFile struct {
	path string
	cfg  config.RotationConfig
	file *os.File
	size int64
}

func newRotatingFile(path string, cfg config.RotationConfig) (*rotatingFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &rotatingFile{path: path, cfg: cfg, file: f, size: info.Size()}, nil
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *rotatingFile) rotateIfNeeded(nextWriteLen int) error {
	if !r.cfg.Enabled {
		return nil
	}
	maxBytes := int64(r.cfg.MaxSize) * 1024 * 1024
	if maxBytes <= 0 || r.size+int64(nextWriteLen) <= maxBytes {
		return nil
	}

	if err := r.file.Close(); err != nil {
		return err
	}

	rotated := fmt.Sprintf("%s.%s", r.path, time.Now().UTC().Format("20060102T150405.000000000"))
	if err := os.Rename(r.path, rotated); err != nil {
		return err
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	r.file = f
	r.size = 0

	return r.prune()
}

func (r *rotatingFile) prune() error {
	dir := filepath.Dir(r.path)
	base := filepath.Base(r.path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var backups []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, base+".") {
			backups = append(backups, filepath.Join(dir, name))
		}
	}
	sort.Strings(backups)

	if r.cfg.MaxAge > 0 {
		cutoff := time.Now().Add(-time.Duration(r.cfg.MaxAge) * 24 * time.Hour)
		kept := backups[:0]
		for _, b := range backups {
			info, err := os.Stat(b)
			if err != nil || info.ModTime().Before(cutoff) {
				os.Remove(b)
				continue
			}
			kept = append(kept, b)
		}
		backups = kept
	}

	if r.cfg.MaxBackups > 0 && len(backups) > r.cfg.MaxBackups {
		excess := len(backups) - r.cfg.MaxBackups
		for _, b := range backups[:excess] {
			os.Remove(b)
		}
	}

	return nil
}

func (r *rotatingFile) Close() error {
	return r.file.Close()
}
