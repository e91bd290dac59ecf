// Package deploy installs a release tarball into a service directory:
// validate, back up, mirror-sync and restart.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	apperrors "interview-ai/internal/app/errors"
)

// backupTimeFormat is a compact UTC timestamp, e.g. 20250806T101530Z
const backupTimeFormat = "20060102T150405Z"

// ErrNoTarball is returned when no release path was given
var ErrNoTarball = errors.New("missing release tarball argument")

// Result describes a completed deploy
type Result struct {
	Manifest   *Manifest
	BackupPath string // empty on first deploy
	Stats      SyncStats
}

// Deployer runs deploys
type Deployer struct {
	restarter Restarter
	logger    *zap.Logger
	progress  io.Writer
}

// NewDeployer creates a Deployer. progress receives the sync bar; nil means stderr.
func NewDeployer(restarter Restarter, logger *zap.Logger, progress io.Writer) *Deployer {
	if restarter == nil {
		restarter = CommandRestarter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deployer{restarter: restarter, logger: logger, progress: progress}
}

// Deploy installs opts.Tarball into opts.Target. Every failure is an
// *ExitError: ExitUsage when nothing was changed, ExitFailure otherwise.
func (d *Deployer) Deploy(ctx context.Context, opts Options) (*Result, error) {
	opts.applyDefaults()
	log := d.logger.With(zap.String("target", opts.Target))

	if opts.Tarball == "" {
		return nil, usageError(ErrNoTarball)
	}
	if info, err := os.Stat(opts.Tarball); err != nil || info.IsDir() {
		return nil, usageError(fmt.Errorf("%w: %s", apperrors.ErrTarballNotFound, opts.Tarball))
	}
	if isWithin(opts.BackupDir, opts.Target) {
		return nil, usageError(fmt.Errorf("backup directory %s must be outside the target %s", opts.BackupDir, opts.Target))
	}
	matcher, err := NewMatcher(opts.Excludes)
	if err != nil {
		return nil, usageError(err)
	}

	workDir, err := os.MkdirTemp("", "interview-ai-deploy-*")
	if err != nil {
		return nil, failure(apperrors.Wrap(err, "failed to create temp directory"))
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			log.Warn("failed to remove temp directory", zap.String("dir", workDir), zap.Error(err))
		}
	}()

	if err := Extract(opts.Tarball, workDir); err != nil {
		return nil, usageError(fmt.Errorf("%w: %v", apperrors.ErrInvalidArchive, err))
	}

	root, err := FindPackageRoot(workDir, opts.RequiredFiles())
	if err != nil {
		return nil, usageError(err)
	}

	manifest, err := LoadManifest(filepath.Join(root, opts.ManifestFile))
	if err != nil {
		return nil, usageError(fmt.Errorf("%w: %v", apperrors.ErrInvalidArchive, err))
	}
	log.Info("release validated",
		zap.String("name", manifest.Name),
		zap.String("version", manifest.Version),
		zap.String("commit", manifest.Commit),
		zap.String("built_at", manifest.BuiltAt),
	)

	result := &Result{Manifest: manifest}

	if _, err := os.Stat(opts.Target); err == nil {
		result.BackupPath = backupPath(opts.BackupDir, filepath.Base(filepath.Clean(opts.Target)), opts.now())
		if err := WriteBackup(opts.Target, result.BackupPath, matcher); err != nil {
			return nil, failure(fmt.Errorf("%w: %v", apperrors.ErrBackupFailed, err))
		}
		log.Info("backup written", zap.String("path", result.BackupPath))
	} else if os.IsNotExist(err) {
		log.Info("first deploy, no backup")
		if err := os.MkdirAll(opts.Target, 0o755); err != nil {
			return nil, failure(apperrors.Wrapf(err, "failed to create target directory %s", opts.Target))
		}
	} else {
		return nil, failure(apperrors.Wrap(err, "failed to inspect target directory"))
	}

	total, err := CountFiles(root, matcher)
	if err != nil {
		return nil, failure(fmt.Errorf("%w: %v", apperrors.ErrSyncFailed, err))
	}
	progress := NewProgressManager(ProgressConfig{Enabled: opts.Progress, Writer: d.progress})
	bar := progress.CreateBar(total, "sync")
	result.Stats, err = Mirror(root, opts.Target, matcher, bar)
	progress.Wait()
	if err != nil {
		return nil, failure(fmt.Errorf("%w: %v", apperrors.ErrSyncFailed, err))
	}
	log.Info("files synced",
		zap.Int("copied", result.Stats.Copied),
		zap.Int("unchanged", result.Stats.Unchanged),
		zap.Int("removed", result.Stats.Removed),
	)

	if !opts.Restart {
		log.Info("restart skipped")
		return result, nil
	}
	if err := d.restarter.Restart(ctx, opts.Service); err != nil {
		msg := "service " + opts.Service
		if result.BackupPath != "" {
			msg += "; restore manually from " + result.BackupPath
		}
		log.Error("service restart failed", zap.String("service", opts.Service), zap.Error(err))
		return result, failure(fmt.Errorf("%w: %s: %v", apperrors.ErrRestartFailed, msg, err))
	}
	log.Info("service restarted", zap.String("service", opts.Service))
	return result, nil
}

// FindPackageRoot returns dir when it holds every required file, or its
// deploy-package subdirectory when that does.
func FindPackageRoot(dir string, required []string) (string, error) {
	missingIn := func(candidate string) []string {
		return lo.Filter(required, func(name string, _ int) bool {
			info, err := os.Stat(filepath.Join(candidate, name))
			return err != nil || info.IsDir()
		})
	}

	missing := missingIn(dir)
	if len(missing) == 0 {
		return dir, nil
	}
	nested := filepath.Join(dir, PackageSubdir)
	if len(missingIn(nested)) == 0 {
		return nested, nil
	}
	return "", fmt.Errorf("%w: %s (looked in archive root and %s/)",
		apperrors.ErrMissingRequiredFile, strings.Join(missing, ", "), PackageSubdir)
}

// backupPath names the backup <name>-<UTC timestamp>.tar.gz, adding -1, -2,
// ... when an earlier deploy in the same second already used the name.
func backupPath(dir, name string, now time.Time) string {
	stamp := now.UTC().Format(backupTimeFormat)
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.tar.gz", name, stamp))
	for i := 1; ; i++ {
		if _, err := os.Lstat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s-%s-%d.tar.gz", name, stamp, i))
	}
}

func isWithin(path, dir string) bool {
	absPath, err1 := filepath.Abs(path)
	absDir, err2 := filepath.Abs(dir)
	if err1 != nil || err2 != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
