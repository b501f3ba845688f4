package checkout

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceNumbersFormat(t *testing.T) {
	now := time.Date(2025, 1, 2, 15, 4, 0, 0, time.UTC)
	got := InvoiceNumbers{}.Next(now)
	assert.Regexp(t, regexp.MustCompile(`^INV-20250102-1504-[0-9A-F]{8}$`), got)
}

func TestInvoiceNumbersUnique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := InvoiceNumbers{}.Next(now)
		assert.False(t, seen[n], "duplicate %s", n)
		seen[n] = true
	}
}

func TestCanFulfill(t *testing.T) {
	tests := []struct {
		available, requested int
		want                 bool
	}{
		{10, 4, true},
		{3, 5, false},
		{5, 5, true},
		{0, 1, false},
		{0, 0, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanFulfill(tt.available, tt.requested), "available=%d requested=%d", tt.available, tt.requested)
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, Outcome(nil))
	assert.Equal(t, OutcomeEmptyCart, Outcome(ErrEmptyCart))
	assert.Equal(t, OutcomeInvalidQuantity, Outcome(&InvalidQuantityError{Quantity: 0}))
	assert.Equal(t, OutcomeInsufficientStock, Outcome(&InsufficientStockError{}))
	assert.Equal(t, OutcomeCommitFailed, Outcome(&CommitFailedError{Err: ErrVersionConflict}))
}
