package deploy

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"interview-ai/internal/config"
	deployer "interview-ai/internal/deploy"
	"interview-ai/internal/logging"
)

var (
	target     string
	backupDir  string
	service    string
	excludes   []string
	noRestart  bool
	noProgress bool
)

func init() {
	Cmd.Flags().StringVar(&target, "target", deployer.DefaultTarget, "service directory to deploy into")
	Cmd.Flags().StringVar(&backupDir, "backup-dir", "", "where backups are written (default <target parent>/backups)")
	Cmd.Flags().StringVar(&service, "service", deployer.DefaultService, "systemd unit restarted after the sync")
	Cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "extra glob excluded from sync and backup (repeatable)")
	Cmd.Flags().BoolVar(&noRestart, "no-restart", false, "skip the service restart")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the sync progress bar")
}

// Cmd represents the deploy command
var Cmd = &cobra.Command{
	Use:   "deploy [flags] <tarball>",
	Short: "Install a release tarball into the service directory",
	Long: `Install a release tarball into the service directory

- Validate the archive: it must hold the entry point and manifest.yaml
  at its root or under deploy-package/
- Back up the current directory to a UTC-timestamped tar.gz
- Mirror the release into the target, keeping .venv, .git, .env and caches
- Restart the service

Exit status is 2 for usage errors or an invalid release (nothing changed)
and 1 when the backup, sync or restart failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Usage()
			return &deployer.ExitError{Code: deployer.ExitUsage, Err: deployer.ErrNoTarball}
		}

		logger, err := logging.New(config.EnvLocal, "")
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		opts := deployer.Options{
			Tarball:   args[0],
			Target:    target,
			BackupDir: backupDir,
			Service:   service,
			Excludes:  append(append([]string{}, deployer.DefaultExcludes...), excludes...),
			Restart:   !noRestart,
			Progress:  !noProgress && deployer.IsTTY(os.Stderr),
		}

		result, err := deployer.NewDeployer(deployer.CommandRestarter{}, logger, os.Stderr).Deploy(cmd.Context(), opts)
		if err != nil {
			return err
		}

		logger.Info("deploy complete",
			zap.String("version", result.Manifest.Version),
			zap.String("backup", result.BackupPath),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "deployed %s %s to %s\n", result.Manifest.Name, result.Manifest.Version, target)
		return nil
	},
}
