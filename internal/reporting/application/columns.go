package application

import (
	"github.com/shopspring/decimal"

	commission "advisory-portal/internal/commission/domain"
	reporting "advisory-portal/internal/reporting/domain"
)

// Column is one projectable report column: a stable key, a display label
// and the cell renderer. Monetary and percentage cells format to 2 places.
type Column struct {
	Key   string
	Label string
	Cell  func(commission.DetailRow) string
}

// Columns is the registry of projectable columns in canonical order.
// Projections select from this order; unknown keys are rejected rather
// than silently dropped.
var Columns = []Column{
	{Key: "payment_id", Label: "Payment ID", Cell: func(r commission.DetailRow) string { return r.PaymentID }},
	{Key: "date", Label: "Date", Cell: func(r commission.DetailRow) string { return r.Date.Format("2006-01-02") }},
	{Key: "provider", Label: "Provider", Cell: func(r commission.DetailRow) string { return r.Provider }},
	{Key: "product_id", Label: "Product ID", Cell: func(r commission.DetailRow) string { return r.ProductID }},
	{Key: "product", Label: "Product", Cell: func(r commission.DetailRow) string { return r.ProductName }},
	{Key: "advisor", Label: "Advisor", Cell: func(r commission.DetailRow) string { return r.Advisor }},
	{Key: "introducer", Label: "Introducer", Cell: func(r commission.DetailRow) string { return r.Introducer }},
	{Key: "method", Label: "Method", Cell: func(r commission.DetailRow) string { return string(r.Method) }},
	{Key: "rate_percent", Label: "Rate %", Cell: money(func(r commission.DetailRow) decimal.Decimal { return r.RatePercent })},
	{Key: "margin_percent", Label: "Margin %", Cell: money(func(r commission.DetailRow) decimal.Decimal { return r.MarginPercent })},
	{Key: "ape", Label: "APE", Cell: money(func(r commission.DetailRow) decimal.Decimal { return r.APE })},
	{Key: "receipts", Label: "Receipts", Cell: money(func(r commission.DetailRow) decimal.Decimal { return r.Receipts })},
	{Key: "base", Label: "Commission Base", Cell: money(func(r commission.DetailRow) decimal.Decimal { return r.Base })},
	{Key: "pool", Label: "Commission Pool", Cell: money(func(r commission.DetailRow) decimal.Decimal { return r.Pool })},
	{Key: "status", Label: "Status", Cell: func(r commission.DetailRow) string { return string(r.Status) }},
	{Key: "share_advisor", Label: "Advisor Share", Cell: share(commission.ShareAdvisor)},
	{Key: "share_introducer", Label: "Introducer Share", Cell: share(commission.ShareIntroducer)},
	{Key: "share_manager", Label: "Manager Share", Cell: share(commission.ShareManager)},
	{Key: "share_executive_sales_manager", Label: "Executive Sales Manager Share", Cell: share(commission.ShareExecutive)},
}

func money(get func(commission.DetailRow) decimal.Decimal) func(commission.DetailRow) string {
	return func(r commission.DetailRow) string {
		return get(r).RoundBank(2).StringFixed(2)
	}
}

func share(role commission.ShareRole) func(commission.DetailRow) string {
	return func(r commission.DetailRow) string {
		return r.Share(role).StringFixed(2)
	}
}

// Project resolves column keys against the registry, preserving the
// caller's order so saved selections reload exactly as created. Duplicate
// keys collapse to their first occurrence. An empty selection means every
// column.
func Project(keys []string) ([]Column, error) {
	if len(keys) == 0 {
		columns := make([]Column, len(Columns))
		copy(columns, Columns)
		return columns, nil
	}

	known := make(map[string]Column, len(Columns))
	for _, column := range Columns {
		known[column.Key] = column
	}

	seen := make(map[string]struct{}, len(keys))
	columns := make([]Column, 0, len(keys))
	for _, key := range keys {
		column, ok := known[key]
		if !ok {
			return nil, reporting.ErrUnknownColumn
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		columns = append(columns, column)
	}
	return columns, nil
}
