// Copyright © 2025 Coldledger Technologies
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
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coldledger-io/coldledger/internal/apiserver"
	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/i18n"
	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/internal/orchestrator"
)

var sigs = make(chan os.Signal, 1)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "coldledger",
	Short: "Coldledger seals pharmaceutical cold-chain batches to a distributed ledger, and verifies their integrity end to end",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "file", "f", "", "config file")
	apiserver.InitConfig()
}

// Execute is called by the main method of the package
func Execute() error {
	return rootCmd.Execute()
}

func run() error {

	// Read the configuration first of all
	err := config.ReadConfig(cfgFile)

	// Setup logging after reading config (even if failed), to output header correctly
	rootCtx, cancelRootCtx := context.WithCancel(context.Background())
	defer cancelRootCtx()
	ctx := log.WithLogger(rootCtx, logrus.WithField("pid", os.Getpid()))
	log.SetFormatting(log.Formatting{
		DisableColor: !config.GetBool(config.LogColor),
		UTC:          config.GetBool(config.LogUTC),
	})
	log.SetLevel(config.GetString(config.LogLevel))
	log.L(ctx).Infof("Coldledger")
	log.L(ctx).Infof("© Copyright 2025 Coldledger Technologies")

	// Deferred error return from reading config
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgConfigFailed, cfgFile)
	}

	debugPort := config.GetInt(config.DebugPort)
	if debugPort >= 0 {
		go func() {
			log.L(ctx).Debugf("Debug HTTP endpoint listening on localhost:%d: %s", debugPort, http.ListenAndServe(fmt.Sprintf("localhost:%d", debugPort), nil))
		}()
	}

	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		sig := <-sigs
		log.L(ctx).Infof("Shutting down due to %s", sig)
		cancelRootCtx()
	}()

	o := orchestrator.NewOrchestrator()
	if err := o.Init(ctx); err != nil {
		return err
	}
	o.Start()
	defer o.WaitStop()

	return apiserver.NewAPIServer().Serve(ctx, o)
}
