package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grocery/backend/internal/domain/sales"
)

// Reporting ranges accepted by Aggregate. Anything else falls back to week.
const (
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"
)

const (
	dayKeyFormat   = "2006-01-02"
	dayLabelFormat = "Mon 2"
	monthFormat    = "Jan"
)

// ChartBucket is one pre-zeroed slot in the reporting series.
type ChartBucket struct {
	Label  string          `json:"label"`
	Sales  decimal.Decimal `json:"sales"`
	Profit decimal.Decimal `json:"profit"`
	Date   string          `json:"date"`
}

// AnalyticsResponse carries the dashboard payload: all-time summary
// totals plus the time-bucketed chart series for the requested range.
type AnalyticsResponse struct {
	TotalSalesAmount decimal.Decimal `json:"totalSalesAmount"`
	TotalProfit      decimal.Decimal `json:"totalProfit"`
	ChartData        []ChartBucket   `json:"chartData"`
}

// AnalyticsService aggregates sales into revenue and profit series.
//
// Trashed sales count toward both the chart and the all-time totals
// when includeTrashed is set (the analytics.include_trashed config key).
type AnalyticsService struct {
	saleRepo       sales.SaleRepository
	includeTrashed bool
	now            func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(saleRepo sales.SaleRepository, includeTrashed bool) *AnalyticsService {
	return &AnalyticsService{
		saleRepo:       saleRepo,
		includeTrashed: includeTrashed,
		now:            time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// Aggregate builds the bucket series for the range keyword and computes
// all-time totals over every sale ever recorded. Buckets exist at zero
// before any sale is scanned, so sparse periods chart as zero instead
// of disappearing. A sale whose canonical key matches no bucket is
// silently dropped.
func (s *AnalyticsService) Aggregate(ctx context.Context, rangeKeyword string) (*AnalyticsResponse, error) {
	buckets, index, from, to, keyOf := s.buildBuckets(rangeKeyword)

	inRange, err := s.saleRepo.FindCreatedBetween(ctx, from, to, s.includeTrashed)
	if err != nil {
		return nil, err
	}
	for i := range inRange {
		sale := &inRange[i]
		pos, ok := index[keyOf(sale.CreatedAt)]
		if !ok {
			continue
		}
		buckets[pos].Sales = buckets[pos].Sales.Add(sale.TotalAmount)
		buckets[pos].Profit = buckets[pos].Profit.Add(sale.Profit())
	}

	// All-time totals feed the summary cards, not the chart. They scan
	// every sale regardless of the requested range.
	all, err := s.saleRepo.FindAllSales(ctx, s.includeTrashed)
	if err != nil {
		return nil, err
	}
	totalSales := decimal.Zero
	totalProfit := decimal.Zero
	for i := range all {
		totalSales = totalSales.Add(all[i].TotalAmount)
		totalProfit = totalProfit.Add(all[i].Profit())
	}

	return &AnalyticsResponse{
		TotalSalesAmount: totalSales,
		TotalProfit:      totalProfit,
		ChartData:        buckets,
	}, nil
}

// buildBuckets pre-creates the zeroed series for the range and returns
// the scan window [from, to) plus the function mapping a sale timestamp
// to its canonical bucket key.
func (s *AnalyticsService) buildBuckets(rangeKeyword string) ([]ChartBucket, map[string]int, time.Time, time.Time, func(time.Time) string) {
	now := s.now()
	today := startOfDay(now)

	dayKey := func(t time.Time) string { return t.Format(dayKeyFormat) }
	monthKey := func(t time.Time) string { return t.Format(monthFormat) }

	switch rangeKeyword {
	case RangeYear:
		// Twelve monthly buckets for the current calendar year, future
		// months included at zero.
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		buckets := make([]ChartBucket, 0, 12)
		index := make(map[string]int, 12)
		for m := 0; m < 12; m++ {
			first := start.AddDate(0, m, 0)
			index[monthKey(first)] = len(buckets)
			buckets = append(buckets, ChartBucket{
				Label:  first.Format(monthFormat),
				Sales:  decimal.Zero,
				Profit: decimal.Zero,
				Date:   first.Format(dayKeyFormat),
			})
		}
		return buckets, index, start, start.AddDate(1, 0, 0), monthKey

	case RangeMonth:
		return dailyBuckets(today, 31, dayKey)

	default:
		return dailyBuckets(today, 7, dayKey)
	}
}

// dailyBuckets builds n daily buckets ending today.
func dailyBuckets(today time.Time, n int, dayKey func(time.Time) string) ([]ChartBucket, map[string]int, time.Time, time.Time, func(time.Time) string) {
	start := today.AddDate(0, 0, -(n - 1))
	buckets := make([]ChartBucket, 0, n)
	index := make(map[string]int, n)
	for d := 0; d < n; d++ {
		day := start.AddDate(0, 0, d)
		index[dayKey(day)] = len(buckets)
		buckets = append(buckets, ChartBucket{
			Label:  day.Format(dayLabelFormat),
			Sales:  decimal.Zero,
			Profit: decimal.Zero,
			Date:   day.Format(dayKeyFormat),
		})
	}
	return buckets, index, start, today.AddDate(0, 0, 1), dayKey
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
