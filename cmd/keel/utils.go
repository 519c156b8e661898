// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/ntp"
	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/gagliardetto/solana-go"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/keelstake/keel/ledger"
	"github.com/keelstake/keel/log"
	"github.com/keelstake/keel/lvldb"
)

func initLogger(ctx *cli.Context) error {
	lvl := ctx.GlobalUint64(verbosityFlag.Name)
	if lvl > log.LegacyLevelTrace {
		return errors.Errorf("invalid verbosity %v", lvl)
	}
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.SetDefault(ethlog.NewTerminalHandlerWithLevel(os.Stderr, log.FromLegacyLevel(int(lvl)), useColor))
	return nil
}

func makeConfig(ctx *cli.Context) (*Config, error) {
	cfg, err := loadConfig(ctx.GlobalString(configFlag.Name))
	if err != nil {
		return nil, err
	}
	if dir := ctx.GlobalString(dataDirFlag.Name); dir != "" {
		cfg.DataDir = dir
	}
	if addr := ctx.GlobalString(metricsAddrFlag.Name); addr != "" {
		cfg.MetricsAddr = addr
	}
	if server := ctx.GlobalString(ntpServerFlag.Name); server != "" {
		cfg.NTPServer = server
	}
	return cfg, cfg.validate()
}

// loadKey reads a keypair file in solana-keygen format.
func loadKey(path string) (solana.PrivateKey, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load key %v", path)
	}
	return key, nil
}

// saveKey writes key in solana-keygen format. An existing file is never overwritten.
func saveKey(path string, key solana.PrivateKey) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}

// clockOf returns the ledger clock, corrected by the offset reported by the
// NTP server if any.
func clockOf(server string) func() uint64 {
	var offset time.Duration
	if server != "" {
		resp, err := ntp.Query(server)
		if err != nil {
			logger.Warn("failed to access NTP, using local clock", "server", server, "err", err)
		} else {
			offset = resp.ClockOffset
			logger.Debug("clock offset", "offset", offset)
		}
	}
	return func() uint64 {
		return uint64(time.Now().Add(offset).Unix())
	}
}

func openLedger(cfg *Config) (*ledger.Ledger, func(), error) {
	db, err := lvldb.New(filepath.Join(cfg.DataDir, "ledger"), cfg.LevelDB)
	if err != nil {
		return nil, nil, err
	}
	l, err := ledger.New(db, ledger.WithClock(clockOf(cfg.NTPServer)))
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return l, func() {
		logger.Debug("closing ledger database...")
		db.Close()
	}, nil
}

func parsePublicKey(ctx *cli.Context, flag cli.StringFlag) (solana.PublicKey, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return solana.PublicKey{}, errors.Errorf("missing --%v", flag.Name)
	}
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(err, "--%v", flag.Name)
	}
	return pk, nil
}

func parsePeriods(s string) ([]uint64, error) {
	var periods []uint64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "period %q", part)
		}
		periods = append(periods, p)
	}
	return periods, nil
}
