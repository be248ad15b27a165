package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_BalanceOf(t *testing.T) {
	pool := &Pool{
		Balances: []*PoolBalance{
			{AssetType: "SUI", Balance: 1_000_000},
			{AssetType: "USDC", Balance: 42},
		},
	}

	assert.Equal(t, uint64(1_000_000), pool.BalanceOf("SUI"))
	assert.Equal(t, uint64(42), pool.BalanceOf("USDC"))
	assert.Equal(t, uint64(0), pool.BalanceOf("WAL"))
}
