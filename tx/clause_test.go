// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keelstake/keel/keel"
)

func TestClauseCopies(t *testing.T) {
	data := []byte{1, 2, 3}
	c := NewClause(keel.TokenProgramID, "transfer").WithData(data)

	data[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, c.Data())

	out := c.Data()
	out[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, c.Data())

	assert.Contains(t, c.String(), "transfer")
}
