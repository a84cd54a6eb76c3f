package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// LogManager handles log file rotation and management
type LogManager struct {
	config     *LogConfig
	currentLog *os.File
	now        func() time.Time
}

// NewLogManager creates a new log manager
func NewLogManager(cfg *LogConfig) *LogManager {
	return &LogManager{
		config: cfg,
		now:    time.Now,
	}
}

// CleanupLogFile truncates an existing log file. A missing file is not an error.
func CleanupLogFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil
	}

	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return errors.New(ErrLogFileOpenFailed, "failed to open log file for cleanup", err).AddContext("path", filePath)
	}
	return file.Close()
}

// GetWriter returns the log file, rotating it first when it grew past MaxSize
func (lm *LogManager) GetWriter() (io.Writer, error) {
	if lm.config.FilePath == "" {
		return nil, errors.New(ErrLogFilePathRequired, "no log file path specified", nil)
	}

	logDir := filepath.Dir(lm.config.FilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, errors.New(ErrLogDirectoryCreationFailed, "failed to create log directory", err).AddContext("dir", logDir)
	}

	if err := lm.checkRotation(); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(lm.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, errors.New(ErrLogFileOpenFailed, "failed to open log file", err).AddContext("path", lm.config.FilePath)
	}

	lm.currentLog = file
	return file, nil
}

func (lm *LogManager) checkRotation() error {
	if lm.config.MaxSize <= 0 {
		return nil
	}

	info, err := os.Stat(lm.config.FilePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.New(ErrLogFileStatFailed, "failed to stat log file", err)
	}

	maxSizeBytes := int64(lm.config.MaxSize) * 1024 * 1024
	if info.Size() < maxSizeBytes {
		return nil
	}

	return lm.rotateLog()
}

func (lm *LogManager) rotateLog() error {
	if lm.currentLog != nil {
		lm.currentLog.Close()
		lm.currentLog = nil
	}

	backupPath := fmt.Sprintf("%s.%s", lm.config.FilePath, lm.now().Format("2006-01-02-15-04-05.000"))
	if err := os.Rename(lm.config.FilePath, backupPath); err != nil {
		return errors.New(ErrLogRotationFailed, "failed to rotate log file", err).AddContext("backup_path", backupPath)
	}

	if err := lm.cleanupOldBackups(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to cleanup old log backups: %v\n", err)
	}

	return nil
}

// cleanupOldBackups enforces MaxBackups and MaxAge over rotated files
func (lm *LogManager) cleanupOldBackups() error {
	if lm.config.MaxBackups <= 0 && lm.config.MaxAge <= 0 {
		return nil
	}

	logDir := filepath.Dir(lm.config.FilePath)
	logBase := filepath.Base(lm.config.FilePath)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return errors.New(ErrLogBackupReadFailed, "failed to read log directory", err)
	}

	var backups []backupInfo
	for _, entry := range entries {
		if entry.IsDir() || !isBackupFile(entry.Name(), logBase) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backupInfo{
			path:    filepath.Join(logDir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	// oldest first
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.Before(backups[j].modTime)
	})

	removed := make(map[string]bool)
	if lm.config.MaxBackups > 0 && len(backups) > lm.config.MaxBackups {
		for _, backup := range backups[:len(backups)-lm.config.MaxBackups] {
			if err := os.Remove(backup.path); err != nil {
				return errors.New(ErrLogBackupRemoveFailed, "failed to remove old backup", err).AddContext("backup_path", backup.path)
			}
			removed[backup.path] = true
		}
	}

	if lm.config.MaxAge > 0 {
		cutoff := lm.now().AddDate(0, 0, -lm.config.MaxAge)
		for _, backup := range backups {
			if removed[backup.path] || !backup.modTime.Before(cutoff) {
				continue
			}
			if err := os.Remove(backup.path); err != nil {
				return errors.New(ErrLogBackupRemoveFailed, "failed to remove old backup", err).AddContext("backup_path", backup.path)
			}
		}
	}

	return nil
}

// Close closes the log manager and any open files
func (lm *LogManager) Close() error {
	if lm.currentLog != nil {
		err := lm.currentLog.Close()
		lm.currentLog = nil
		return err
	}
	return nil
}

type backupInfo struct {
	path    string
	modTime time.Time
}

func isBackupFile(name, baseName string) bool {
	return len(name) > len(baseName) && strings.HasPrefix(name, baseName) && name[len(baseName)] == '.'
}

// useConsole resolves the "auto" format against the output stream.
func useConsole(format string, out io.Writer) bool {
	switch strings.ToLower(format) {
	case "console":
		return true
	case "json":
		return false
	}
	if f, ok := out.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SetupLogger creates a zerolog logger writing to stderr, plus the rotated
// log file when one is configured. The returned LogManager is nil when no
// file is used; callers close it when done.
func SetupLogger(cfg *Config, runID string) (zerolog.Logger, *LogManager, error) {
	return setupLogger(cfg, runID, os.Stderr)
}

func setupLogger(cfg *Config, runID string, out io.Writer) (zerolog.Logger, *LogManager, error) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if cfg.Log.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
		if err != nil {
			return zerolog.Logger{}, nil, errors.New(ErrLogValidationFailed, "invalid log level", err).AddContext("level", cfg.Log.Level)
		}
		level = parsed
	}

	var writers []io.Writer
	if useConsole(cfg.Log.Format, out) {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
		})
	} else {
		writers = append(writers, out)
	}

	var logManager *LogManager
	if cfg.Log.FilePath != "" {
		if cfg.Log.Cleanup {
			if err := CleanupLogFile(cfg.Log.FilePath); err != nil {
				return zerolog.Logger{}, nil, errors.New(ErrLogCleanupFailed, "failed to cleanup log file", err)
			}
		}

		logManager = NewLogManager(&cfg.Log)
		fileWriter, err := logManager.GetWriter()
		if err != nil {
			return zerolog.Logger{}, nil, errors.New(ErrLogFileWriterSetupFailed, "failed to setup file writer", err)
		}
		writers = append(writers, fileWriter)
	}

	var writer io.Writer
	if len(writers) == 1 {
		writer = writers[0]
	} else {
		writer = zerolog.MultiLevelWriter(writers...)
	}

	ctx := zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("component", "fixturegen")
	if runID != "" {
		ctx = ctx.Str("run_id", runID)
	}

	return ctx.Logger(), logManager, nil
}
