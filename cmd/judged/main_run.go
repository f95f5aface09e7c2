package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/magurofly/magjudge/internal/config"
	"github.com/magurofly/magjudge/internal/judge"
	"github.com/magurofly/magjudge/internal/judgelog"
)

type cmdRun struct {
	global *cmdGlobal
}

// Command returns the root `judged` command (the teacher's lxd-user splits
// a cmdDaemon/command() the same way; here the daemon behavior lives
// directly on the root command since judged has no subcommands of its own).
func (c *cmdRun) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdRun) Run(cmd *cobra.Command, args []string) error {
	log := judgelog.New()

	cfg, err := config.Load(c.global.flagConfig)
	if err != nil {
		return fmt.Errorf("Failed to load configuration: %w", err)
	}

	log.WithFields(logrus.Fields{
		"source_dir":  cfg.Program.SourceDir,
		"execute_dir": cfg.Program.ExecuteDir,
	}).Info("Starting judged")

	// Constructing the Client starts the single submission worker goroutine
	// (spec.md §4.3); nothing else in this process submits to it, since the
	// HTTP surface is an external collaborator (spec.md §1).
	_ = judge.NewClient(cfg, log)

	log.Info("judged is running; waiting for an external API layer to submit work")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("Shutting down")

	return nil
}
