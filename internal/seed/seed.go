// Package seed provides fixture data for database-less deployments, demos
// and local development.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	catalog "advisory-portal/internal/catalog/domain"
	payments "advisory-portal/internal/payments/domain"
)

// Products returns the demo product catalog.
func Products() []catalog.Product {
	return []catalog.Product{
		{
			ID:       "prod-term-life",
			Name:     "Term Assurance",
			Provider: "Aviva",
			Rate:     decimal.RequireFromString("0.03"),
			Margin:   decimal.RequireFromString("0.10"),
			Bands: []catalog.Band{
				{Threshold: decimal.NewFromInt(50000), Bonus: decimal.RequireFromString("0.005")},
				{Threshold: decimal.NewFromInt(100000), Bonus: decimal.RequireFromString("0.0025")},
			},
		},
		{
			ID:       "prod-wol",
			Name:     "Whole of Life",
			Provider: "Zurich",
			Rate:     decimal.RequireFromString("0.025"),
			Margin:   decimal.RequireFromString("0.12"),
		},
		{
			ID:       "prod-pension",
			Name:     "Personal Pension",
			Provider: "Royal London",
			Rate:     decimal.RequireFromString("0.02"),
			Margin:   decimal.RequireFromString("0.08"),
			Bands: []catalog.Band{
				{Threshold: decimal.NewFromInt(75000), Bonus: decimal.RequireFromString("0.004")},
			},
		},
		{
			ID:       "prod-income-protection",
			Name:     "Income Protection",
			Provider: "Legal & General",
			Rate:     decimal.RequireFromString("0.04"),
			Margin:   decimal.RequireFromString("0.10"),
			Bands: []catalog.Band{
				{Threshold: decimal.NewFromInt(25000), Bonus: decimal.RequireFromString("0.003")},
			},
		},
	}
}

// Payments returns demo payment records spread over several months, mixing
// advisors, statuses and introduced business.
func Payments() []payments.Record {
	on := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
	amount := func(value string) decimal.Decimal { return decimal.RequireFromString(value) }

	return []payments.Record{
		{
			ID: "pay-0001", ProductID: "prod-term-life", Advisor: "amy.shaw@firm.example",
			Date: on(2026, time.January, 8), APE: amount("60000"), Receipts: amount("55000"),
			Status: payments.StatusPaid,
		},
		{
			ID: "pay-0002", ProductID: "prod-pension", Advisor: "amy.shaw@firm.example",
			Introducer: "jt.referrals@partners.example",
			Date:       on(2026, time.January, 19), APE: amount("24000"), Receipts: amount("26500"),
			Status: payments.StatusApproved,
		},
		{
			ID: "pay-0003", ProductID: "prod-wol", Advisor: "ben.osei@firm.example",
			Date: on(2026, time.February, 3), APE: amount("18000"), Receipts: amount("15200"),
			Status: payments.StatusApproved,
		},
		{
			ID: "pay-0004", ProductID: "prod-income-protection", Advisor: "ben.osei@firm.example",
			Introducer: "clio.intro@partners.example",
			Date:       on(2026, time.February, 17), APE: amount("31000"), Receipts: amount("29000"),
			Status: payments.StatusPaid,
		},
		{
			ID: "pay-0005", ProductID: "prod-term-life", Advisor: "carol.nduka@firm.example",
			Date: on(2026, time.March, 2), APE: amount("42000"), Receipts: amount("47000"),
			Status: payments.StatusPending,
		},
		{
			ID: "pay-0006", ProductID: "prod-pension", Advisor: "amy.shaw@firm.example",
			Date: on(2026, time.March, 12), APE: amount("52000"), Receipts: amount("49800"),
			Status: payments.StatusApproved,
		},
		{
			ID: "pay-0007", ProductID: "prod-term-life", Advisor: "ben.osei@firm.example",
			Date: on(2026, time.April, 7), APE: amount("12500"), Receipts: amount("11800"),
			Status: payments.StatusException, ExceptionReason: "provider premium mismatch",
		},
		{
			ID: "pay-0008", ProductID: "prod-income-protection", Advisor: "carol.nduka@firm.example",
			Introducer: "jt.referrals@partners.example",
			Date:       on(2026, time.April, 22), APE: amount("27500"), Receipts: amount("30100"),
			Status: payments.StatusApproved,
		},
		{
			ID: "pay-0009", ProductID: "prod-wol", Advisor: "amy.shaw@firm.example",
			Date: on(2026, time.May, 5), APE: amount("9800"), Receipts: amount("10400"),
			Status: payments.StatusPaid,
		},
		{
			ID: "pay-0010", ProductID: "prod-term-life", Advisor: "carol.nduka@firm.example",
			Date: on(2026, time.May, 28), APE: amount("36000"), Receipts: amount("33500"),
			Status: payments.StatusApproved,
		},
	}
}
