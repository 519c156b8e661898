// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/keelstake/keel/log"
	"github.com/keelstake/keel/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "keel")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "keel"
	app.Usage = "NFT staking ledger"
	app.Flags = []cli.Flag{
		dataDirFlag,
		configFlag,
		keyFileFlag,
		verbosityFlag,
		enableMetricsFlag,
		metricsAddrFlag,
		ntpServerFlag,
	}
	app.Before = initLogger
	app.Commands = []cli.Command{
		{
			Name:   "keygen",
			Usage:  "generate a keypair file",
			Flags:  []cli.Flag{outFlag},
			Action: keygenAction,
		},
		{
			Name:   "mint-nft",
			Usage:  "mint a unique token with metadata and master edition to the keyfile identity",
			Flags:  []cli.Flag{nameFlag, symbolFlag, uriFlag},
			Action: withLedger(mintNFTAction),
		},
		{
			Name:   "init-pool",
			Usage:  "initialize the staking pool with the keyfile identity as authority",
			Flags:  []cli.Flag{periodsFlag},
			Action: withLedger(initPoolAction),
		},
		{
			Name:   "stake",
			Usage:  "stake a token held by the keyfile identity",
			Flags:  []cli.Flag{mintFlag, periodFlag},
			Action: withLedger(stakeAction),
		},
		{
			Name:   "unstake",
			Usage:  "unstake a token of the keyfile identity",
			Flags:  []cli.Flag{mintFlag},
			Action: withLedger(unstakeAction),
		},
		{
			Name:   "record",
			Usage:  "print the stake record of (owner, mint)",
			Flags:  []cli.Flag{ownerFlag, mintFlag, dumpFlag},
			Action: withLedger(recordAction),
		},
		{
			Name:   "derive",
			Usage:  "print the stake record address of (owner, mint)",
			Flags:  []cli.Flag{ownerFlag, mintFlag},
			Action: deriveAction,
		},
		{
			Name:   "verify",
			Usage:  "check every ledger entry against its receipt",
			Action: withLedger(verifyAction),
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// startMetrics enables prometheus and serves it when the flag is set.
func startMetrics(ctx *cli.Context, cfg *Config) (func(), error) {
	if !ctx.GlobalBool(enableMetricsFlag.Name) {
		return func() {}, nil
	}
	metrics.InitializePrometheusMetrics()
	url, closeFunc, err := startMetricsServer(cfg.MetricsAddr)
	if err != nil {
		return nil, fmt.Errorf("unable to start metrics server - %w", err)
	}
	logger.Info("metrics server started", "url", url)
	return closeFunc, nil
}
