package main

import (
	"context"
	"fmt"
	"os"

	"github.com/edgeap/edgeap/config"
	"github.com/edgeap/edgeap/manager/app"
	"github.com/edgeap/edgeap/manager/rest"
	"github.com/edgeap/edgeap/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	logger.InitLogger()
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configName, configDir string

	root := &cobra.Command{
		Use:          "edgeap",
		Short:        "Places containerized applications on a managed set of edge nodes",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configName, "config-name", "manager_config", "config file name without extension (env EDGEAP_* overrides keys)")
	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory searched for the config file before ./config")

	managerCmd := &cobra.Command{
		Use:   "manager",
		Short: "Run the placement manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManager(cmd.Context(), configName, configDir)
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check-config",
		Short: "Load and validate the configuration, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitManagerConfig(configName, configDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "manager %s, %d remotes, ports [%d, %d)\n",
				cfg.Manager.Address, len(cfg.Remotes), cfg.Placement.PortMin, cfg.Placement.PortMax)
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), rest.AppVersion)
		},
	}

	root.AddCommand(managerCmd, checkCmd, versionCmd)
	return root
}

func runManager(ctx context.Context, configName, configDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	managerApp, err := app.NewManagerApp(configName, configDir)
	if err != nil {
		return err
	}
	startCtx, cancel := context.WithTimeout(ctx, managerApp.StartTimeout())
	defer cancel()
	if err := managerApp.Start(startCtx); err != nil {
		return fmt.Errorf("start manager: %w", err)
	}

	sig := <-managerApp.Wait()
	logger.Logger(ctx).Info().Msgf("received %s, stopping", sig.Signal)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), managerApp.StopTimeout())
	defer stopCancel()
	if err := managerApp.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop manager: %w", err)
	}
	if sig.ExitCode != 0 {
		return fmt.Errorf("manager exited with code %d", sig.ExitCode)
	}
	return nil
}
