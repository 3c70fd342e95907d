package update

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ardnew/rdmx/lang"
)

// Errors returned by [Updater.Update]. The original file is never modified
// when one of them is returned.
var (
	ErrReadFile    = lang.NewError("read_file", "read file")
	ErrWriteFile   = lang.NewError("write_file", "write file")
	ErrIsDirectory = lang.NewError("is_directory", "path is a directory")
	ErrBackup      = lang.NewError("backup", "back up file")
)

// TimestampLayout names the backup directory created for each update.
const TimestampLayout = "20060102T150405.000Z"

const backupDirMode fs.FileMode = 0o700

// Transformer renders the content of a document.
// It is implemented by *render.Pipeline.
type Transformer interface {
	Transform(ctx context.Context, file, input string) (string, error)
}

// Status describes what an update did to a file.
type Status int

const (
	// StatusUnchanged means rendering reproduced the file content, so the
	// file was neither backed up nor written.
	StatusUnchanged Status = iota
	// StatusUpdated means the file was rewritten.
	StatusUpdated
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Result reports the outcome of updating one file.
type Result struct {
	Path   string
	Status Status
	Backup string // Path of the backup copy, or "" if none was made.
}

// Updater applies a [Transformer] to files.
// It holds no state between calls and may be shared by goroutines updating
// different files.
type Updater struct {
	transformer Transformer
	config
}

// New returns an Updater rendering files with t.
func New(t Transformer, opts ...Option) *Updater {
	return &Updater{
		transformer: t,
		config:      apply(defaultConfig(), opts...),
	}
}

// Update renders the file at path and writes the result back.
func (u *Updater) Update(ctx context.Context, path string) (Result, error) {
	res := Result{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return res, ErrReadFile.Wrap(err).In(path)
	}

	if info.IsDir() {
		return res, ErrIsDirectory.In(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, ErrReadFile.Wrap(err).In(path)
	}

	input := string(data)

	out, err := u.transformer.Transform(ctx, path, input)
	if err != nil {
		return res, err
	}

	if out == input {
		u.logger.DebugContext(ctx, "unchanged", slog.String("path", path))

		return res, nil
	}

	if u.backup {
		res.Backup, err = u.saveBackup(path, data, info.Mode().Perm())
		if err != nil {
			return res, err
		}

		u.logger.DebugContext(ctx, "backup",
			slog.String("path", path),
			slog.String("backup", res.Backup))
	}

	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return res, ErrWriteFile.Wrap(err).In(path)
	}

	res.Status = StatusUpdated

	u.logger.InfoContext(ctx, "updated",
		slog.String("path", path),
		slog.Int("bytes", len(out)))

	return res, nil
}

// UpdateAll updates each file in order and stops at the first error.
// The results of the files processed so far are returned with it.
func (u *Updater) UpdateAll(ctx context.Context, paths ...string) ([]Result, error) {
	results := make([]Result, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := u.Update(ctx, path)
		if err != nil {
			return results, err
		}

		results = append(results, res)
	}

	return results, nil
}

// BackupPath returns where a backup of path taken at t is stored under dir.
func BackupPath(dir string, t time.Time, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	rel := strings.TrimPrefix(abs, filepath.VolumeName(abs))
	rel = strings.TrimLeft(rel, string(filepath.Separator))

	return filepath.Join(dir, t.UTC().Format(TimestampLayout), rel), nil
}

func (u *Updater) saveBackup(path string, data []byte, perm fs.FileMode) (string, error) {
	dst, err := BackupPath(u.backupDir, u.now(), path)
	if err != nil {
		return "", ErrBackup.Wrap(err).In(path)
	}

	if err := os.MkdirAll(filepath.Dir(dst), backupDirMode); err != nil {
		return "", ErrBackup.Wrap(err).In(path)
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return "", ErrBackup.Wrap(err).In(path).With(slog.String("backup", dst))
	}

	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return "", ErrBackup.Wrap(errors.Join(err, os.Remove(dst))).In(path).
			With(slog.String("backup", dst))
	}

	return dst, nil
}
