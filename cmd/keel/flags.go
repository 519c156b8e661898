// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/keelstake/keel/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory for the ledger database (overrides the config file)",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the yaml config file",
	}
	keyFileFlag = cli.StringFlag{
		Name:  "keyfile",
		Value: defaultKeyFile(),
		Usage: "keypair file in solana-keygen format",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-5)",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "metrics service listening address (overrides the config file)",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Usage: "NTP server used to correct the ledger clock",
	}

	outFlag = cli.StringFlag{
		Name:  "out",
		Value: defaultKeyFile(),
		Usage: "path of the generated keypair file",
	}
	mintFlag = cli.StringFlag{
		Name:  "mint",
		Usage: "mint address of the token (base58)",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "owner address (base58), defaults to the keyfile identity",
	}
	periodFlag = cli.Uint64Flag{
		Name:  "period",
		Usage: "locking period in seconds",
	}
	periodsFlag = cli.StringFlag{
		Name:  "periods",
		Usage: "comma separated allowed locking periods in seconds (overrides the config file)",
	}
	nameFlag = cli.StringFlag{
		Name:  "name",
		Value: "Keel NFT",
		Usage: "token name",
	}
	symbolFlag = cli.StringFlag{
		Name:  "symbol",
		Value: "KEEL",
		Usage: "token symbol",
	}
	uriFlag = cli.StringFlag{
		Name:  "uri",
		Usage: "token metadata uri",
	}
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "dump the raw record",
	}
)
