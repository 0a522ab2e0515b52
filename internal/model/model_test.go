package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryOrOther(t *testing.T) {
	assert.Equal(t, "Food", Transaction{Category: "Food"}.CategoryOrOther())
	assert.Equal(t, CategoryOther, Transaction{}.CategoryOrOther())
}

func TestIsTransfer(t *testing.T) {
	assert.True(t, Transaction{Category: "Transfer"}.IsTransfer())
	assert.True(t, Transaction{Category: "TRANSFER"}.IsTransfer())
	assert.True(t, Transaction{Category: "transfer"}.IsTransfer())
	assert.False(t, Transaction{Category: "Transfers"}.IsTransfer())
	assert.False(t, Transaction{}.IsTransfer())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "t1", Transaction{TransactionID: "t1", Description: "Coffee"}.Key())
	// Description fallback is not guaranteed unique.
	assert.Equal(t, "Coffee", Transaction{Description: "Coffee"}.Key())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Sapphire", AccountBalance{CardName: "Sapphire", AccountName: "x"}.DisplayName())
	assert.Equal(t, "Checking", AccountBalance{AccountName: "Checking"}.DisplayName())
}
