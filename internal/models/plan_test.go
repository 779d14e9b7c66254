package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTradeSlotValid(t *testing.T) {
	assert.True(t, SlotPrimary.Valid())
	assert.True(t, SlotSecondary.Valid())
	assert.False(t, TradeSlot(0).Valid())
	assert.False(t, TradeSlot(3).Valid())
}

func TestTradeSlotString(t *testing.T) {
	assert.Equal(t, "primary", SlotPrimary.String())
	assert.Equal(t, "secondary", SlotSecondary.String())
	assert.Equal(t, "slot(7)", TradeSlot(7).String())
}

func TestRequestValidate(t *testing.T) {
	valid := Request{
		Balance:        467,
		EntryPrice:     0.25,
		Slot:           SlotPrimary,
		TargetGainPct:  0.80,
		FeePerContract: 0.04,
	}

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr string
	}{
		{"valid", func(r *Request) {}, ""},
		{"zero balance allowed", func(r *Request) { r.Balance = 0 }, ""},
		{"negative balance", func(r *Request) { r.Balance = -1 }, "balance"},
		{"zero entry price", func(r *Request) { r.EntryPrice = 0 }, "entry_price"},
		{"invalid slot", func(r *Request) { r.Slot = 3 }, "trade_slot"},
		{"target below band", func(r *Request) { r.TargetGainPct = 0.10 }, "target_gain_pct"},
		{"target above band", func(r *Request) { r.TargetGainPct = 1.50 }, "target_gain_pct"},
		{"negative fee", func(r *Request) { r.FeePerContract = -0.01 }, "fee_per_contract"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate(0.20, 1.00)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
