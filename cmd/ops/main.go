package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Arslan1Ali/Daily-Reminder/internal/alertstate"
	"github.com/Arslan1Ali/Daily-Reminder/internal/engine"
	"github.com/Arslan1Ali/Daily-Reminder/internal/notify"
	"github.com/Arslan1Ali/Daily-Reminder/internal/ops"
	"github.com/Arslan1Ali/Daily-Reminder/internal/push"
	"github.com/Arslan1Ali/Daily-Reminder/internal/task"
)

func main() {
	root := &cobra.Command{
		Use:           "ops",
		Short:         "Operator tooling for the reminder daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(backupCmd(), listCmd(), vapidCmd(), tickCmd())

	if err := root.Execute(); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func backupCmd() *cobra.Command {
	var dataDir, out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the data dir to a tar.gz",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = fmt.Sprintf("reminder-backup-%s.tar.gz", time.Now().Format("20060102-150405"))
			}
			if err := ops.BackupDataDir(dataDir, out); err != nil {
				return err
			}
			color.Green("backed up %s -> %s", dataDir, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "data", "data directory to archive")
	cmd.Flags().StringVar(&out, "out", "", "archive path (default timestamped)")
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <archive>",
		Short: "List the entries of a backup archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := ops.ListArchive(args[0])
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}
	return cmd
}

func vapidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vapid-keygen",
		Short: "Generate a VAPID key pair for web push",
		RunE: func(cmd *cobra.Command, args []string) error {
			private, public, err := push.GenerateVAPIDKeys()
			if err != nil {
				return err
			}
			fmt.Printf("VAPID_PUBLIC=%s\n", public)
			fmt.Printf("VAPID_PRIVATE=%s\n", private)
			color.Yellow("keep the private key out of version control")
			return nil
		},
	}
}

func tickCmd() *cobra.Command {
	var dataDir string
	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Run one engine tick against the data dir and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := task.NewFileRepo(dataDir)
			if err != nil {
				return err
			}
			store, err := alertstate.NewFileStore(dataDir)
			if err != nil {
				return err
			}

			logger := log.New(os.Stderr, "", 0)
			eng := engine.Engine{
				Tasks:      repo,
				States:     store,
				Dispatcher: notify.NewMulti(10*time.Second, notify.NewDesktop()),
				Clock:      engine.RealClock{},
				Logger:     logger,
			}

			res, err := eng.RunTick(context.Background())
			if err != nil {
				return err
			}
			color.Green("tick at %s: %d seen, %d dispatched, %d cleared, persisted=%v",
				res.At.Format(time.RFC3339), res.TasksSeen, res.Dispatched, res.Cleared, res.Persisted)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "data", "data directory")
	return cmd
}
