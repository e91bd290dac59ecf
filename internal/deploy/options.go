package deploy

import (
	"path/filepath"
	"time"
)

// PackageSubdir is where the release may nest its files inside the archive
const PackageSubdir = "deploy-package"

// Defaults
const (
	DefaultTarget       = "/opt/interview-ai"
	DefaultService      = "interview-ai"
	DefaultEntryPoint   = "interview-ai"
	DefaultManifestFile = "manifest.yaml"
)

// DefaultExcludes are never synced, deleted or backed up: environment-local state.
var DefaultExcludes = []string{".venv", "venv", ".git", "__pycache__", "*.pyc", ".env", ".env.*"}

// DefaultRestartCommand is run with the service name appended
var DefaultRestartCommand = []string{"systemctl", "restart"}

// Options configures one deploy run
type Options struct {
	Tarball   string
	Target    string
	BackupDir string // defaults to <target parent>/backups
	Service   string
	Excludes  []string
	Restart   bool

	EntryPoint   string
	ManifestFile string

	// Progress enables the sync progress bar
	Progress bool

	now func() time.Time
}

func (o *Options) applyDefaults() {
	if o.Target == "" {
		o.Target = DefaultTarget
	}
	if o.BackupDir == "" {
		o.BackupDir = filepath.Join(filepath.Dir(filepath.Clean(o.Target)), "backups")
	}
	if o.Service == "" {
		o.Service = DefaultService
	}
	if o.Excludes == nil {
		o.Excludes = DefaultExcludes
	}
	if o.EntryPoint == "" {
		o.EntryPoint = DefaultEntryPoint
	}
	if o.ManifestFile == "" {
		o.ManifestFile = DefaultManifestFile
	}
	if o.now == nil {
		o.now = time.Now
	}
}

// RequiredFiles lists the files a release must contain at its package root
func (o *Options) RequiredFiles() []string {
	return []string{o.EntryPoint, o.ManifestFile}
}
