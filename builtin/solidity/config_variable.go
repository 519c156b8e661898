// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/log"
)

var logger = log.WithContext("pkg", "solidity")

// ConfigVariable is a program parameter with a default value, which can be
// overridden by a value written into the program's storage.
type ConfigVariable struct {
	slot  keel.Bytes32
	name  string
	value uint64
}

func NewConfigVariable(name string, defaultValue uint64) *ConfigVariable {
	return &ConfigVariable{
		slot:  keel.BytesToBytes32([]byte(name)),
		name:  name,
		value: defaultValue,
	}
}

func (c *ConfigVariable) Name() string {
	return c.name
}

func (c *ConfigVariable) Slot() keel.Bytes32 {
	return c.slot
}

// Get returns the overridden value in ctx if any, the default otherwise.
func (c *ConfigVariable) Get(ctx *Context) uint64 {
	raw, err := ctx.state.GetRawStorage(ctx.address, c.slot)
	if err != nil {
		logger.Warn("failed to read config value", "slot", c.name, "error", err)
		return c.value
	}
	if len(raw) == 0 {
		return c.value
	}
	var v uint64
	if err := rlp.DecodeBytes(raw, &v); err != nil || v == 0 {
		return c.value
	}
	logger.Debug("config value overridden", "slot", c.name, "value", v)
	return v
}

// Override writes v into ctx's storage.
func (c *ConfigVariable) Override(ctx *Context, v uint64) error {
	return ctx.state.EncodeStorage(ctx.address, c.slot, func() ([]byte, error) {
		return rlp.EncodeToBytes(v)
	})
}
