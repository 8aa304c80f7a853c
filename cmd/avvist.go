// Copyright © 2025 NAV (Arbeids- og velferdsetaten)
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
	"github.com/navikt/avvist-til-oppgave/internal/log"
	"github.com/navikt/avvist-til-oppgave/internal/orchestrator"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var sigs = make(chan os.Signal, 1)

var rootCmd = &cobra.Command{
	Use:   "avvist-til-oppgave",
	Short: "Creates oppgaver for job seekers rejected because they are under 18",
	Long: `Consumes the job seeker event log with exactly-once effect, keeps one open
oppgave per rejected person under 18, and creates each oppgave in the Oppgave API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var cfgFile string

var _utOrchestrator orchestrator.Orchestrator

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file")
}

func getOrchestrator() orchestrator.Orchestrator {
	if _utOrchestrator != nil {
		return _utOrchestrator
	}
	return orchestrator.NewOrchestrator()
}

// Execute is called by the main method of the package
func Execute() error {
	return rootCmd.Execute()
}

func setupLogging() {
	log.SetLevel(config.GetString(config.LogLevel))
	log.SetFormatting(log.Formatting{
		DisableColor:    !config.GetBool(config.LogColor),
		TimestampFormat: config.GetString(config.LogTimeFormat),
		UTC:             config.GetBool(config.LogUTC),
	})
}

func run() error {
	// Read the configuration first of all
	err := config.ReadConfig(cfgFile)

	// Setup logging after reading config (even if failed), to output header correctly
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()
	ctx = log.WithLogger(ctx, logrus.WithField("pid", os.Getpid()))
	setupLogging()
	log.L(ctx).Infof("avvist-til-oppgave")

	// Deferred error return from reading config
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgConfigFailed, cfgFile)
	}

	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	o := getOrchestrator()
	errChan := make(chan error, 1)
	go startOrchestrator(ctx, cancelCtx, o, errChan)
	select {
	case sig := <-sigs:
		log.L(ctx).Infof("Shutting down due to %s", sig.String())
		cancelCtx()
		return o.WaitStop()
	case err := <-errChan:
		return err
	}
}

func startOrchestrator(ctx context.Context, cancelCtx context.CancelFunc, o orchestrator.Orchestrator, errChan chan error) {
	err := o.Init(ctx, cancelCtx)
	if err == nil {
		err = o.Start()
	}
	if err == nil {
		err = o.WaitStop()
	}
	if err != nil {
		log.L(ctx).Errorf("Exiting: %s", err)
	}
	errChan <- err
}
