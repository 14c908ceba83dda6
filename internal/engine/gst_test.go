package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitGSTIntraState(t *testing.T) {
	split := SplitGST(dec("1000"), dec("18"), false)

	assert.True(t, split.CGSTRate.Equal(dec("9")), "cgst rate %s", split.CGSTRate)
	assert.True(t, split.CGSTAmount.Equal(dec("90")), "cgst amount %s", split.CGSTAmount)
	assert.True(t, split.SGSTAmount.Equal(dec("90")), "sgst amount %s", split.SGSTAmount)
	assert.True(t, split.IGSTAmount.IsZero(), "igst amount %s", split.IGSTAmount)
	assert.True(t, split.Total().Equal(dec("180")))
}

func TestSplitGSTInterState(t *testing.T) {
	split := SplitGST(dec("1000"), dec("18"), true)

	assert.True(t, split.IGSTRate.Equal(dec("18")))
	assert.True(t, split.IGSTAmount.Equal(dec("180")), "igst amount %s", split.IGSTAmount)
	assert.True(t, split.CGSTAmount.IsZero())
	assert.True(t, split.SGSTAmount.IsZero())
}

func TestSplitGSTZeroRate(t *testing.T) {
	split := SplitGST(dec("500"), dec("0"), false)
	assert.True(t, split.Total().IsZero())
}

func TestSplitGSTOddRateHalves(t *testing.T) {
	// 5% intra-state splits into 2.5% + 2.5%
	split := SplitGST(dec("200"), dec("5"), false)
	assert.True(t, split.CGSTRate.Equal(dec("2.5")))
	assert.True(t, split.CGSTAmount.Equal(dec("5")), "cgst amount %s", split.CGSTAmount)
	assert.True(t, split.SGSTAmount.Equal(dec("5")))
}

func TestInterState(t *testing.T) {
	assert.False(t, InterState("MH", "MH"))
	assert.True(t, InterState("MH", "DL"))
	// blank state on either side defaults to intra-state
	assert.False(t, InterState("", "DL"))
	assert.False(t, InterState("MH", ""))
	assert.False(t, InterState("", ""))
}
