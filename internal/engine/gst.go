package engine

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// GSTSplit is the CGST/SGST/IGST decomposition of one taxable amount.
type GSTSplit struct {
	CGSTRate   decimal.Decimal
	CGSTAmount decimal.Decimal
	SGSTRate   decimal.Decimal
	SGSTAmount decimal.Decimal
	IGSTRate   decimal.Decimal
	IGSTAmount decimal.Decimal
}

// Total returns the summed tax amount of the split.
func (s GSTSplit) Total() decimal.Decimal {
	return s.CGSTAmount.Add(s.SGSTAmount).Add(s.IGSTAmount)
}

// SplitGST decomposes taxable*rate/100 into the inter-state (IGST) or
// intra-state (CGST+SGST, half rate each) buckets.
func SplitGST(taxable, rate decimal.Decimal, interState bool) GSTSplit {
	if interState {
		return GSTSplit{
			IGSTRate:   rate,
			IGSTAmount: taxable.Mul(rate).Div(hundred).Round(2),
		}
	}
	half := rate.Div(decimal.NewFromInt(2))
	amount := taxable.Mul(half).Div(hundred).Round(2)
	return GSTSplit{
		CGSTRate:   half,
		CGSTAmount: amount,
		SGSTRate:   half,
		SGSTAmount: amount,
	}
}

// InterState reports whether a transaction between the company's state
// and the party's state crosses state lines. A blank state on either
// side defaults to intra-state so that incomplete master data never
// produces spurious IGST; the fallback is logged so misconfigured
// charts stay visible.
func InterState(companyState, partyState string) bool {
	if companyState == "" || partyState == "" {
		log.Warn().
			Str("company_state", companyState).
			Str("party_state", partyState).
			Msg("blank GST state, defaulting to intra-state")
		return false
	}
	return companyState != partyState
}
