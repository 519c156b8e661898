// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/keelstake/keel/kv"
)

// Stater is the state creator.
type Stater struct {
	db kv.Getter
}

// NewStater create a new stater.
func NewStater(db kv.Getter) *Stater {
	return &Stater{db}
}

// NewState create a new state object.
func (s *Stater) NewState() *State {
	return New(s.db)
}
