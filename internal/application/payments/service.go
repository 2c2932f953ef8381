// Package payments turns flat payout rows into the year→month→day report
// shapes the earnings pages render. Grouping and currency formatting happen
// here, in SQL result order, with floats accumulated raw and formatted to
// two decimals only when the output rows are built.
package payments

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Service owns every payout/earnings report query.
type Service struct {
	DB *gorm.DB
}

// payoutRow is one flat row: a paid amount tagged with its payout date.
type payoutRow struct {
	PayoutDate    time.Time `gorm:"column:payout_date"`
	RentBasePrice float64   `gorm:"column:rent_base_price"`
	RentalID      int64     `gorm:"column:rental_id"`
}

// rowFilter narrows the flat payout query. ownerID <= 0 means all owners.
type rowFilter struct {
	ownerID     int64
	paidOnly    bool // p.status = 'P'
	beforeToday bool // p.payout_date < today
}

// rows fetches payment rows joined through rental to the property owner,
// ordered ascending by payout date so group insertion order matches the
// report order.
func (s *Service) rows(ctx context.Context, f rowFilter) ([]payoutRow, error) {
	q := s.DB.WithContext(ctx).
		Table("Payment p").
		Select("p.payout_date, p.rent_base_price, p.rental_id").
		Joins("JOIN Rental r ON p.rental_id = r.rental_id").
		Joins("JOIN PropertyListing pl ON r.property_id = pl.property_id").
		Where("p.payout_date IS NOT NULL")
	if f.ownerID > 0 {
		q = q.Where("pl.userID = ?", f.ownerID)
	}
	if f.paidOnly {
		q = q.Where("p.status = 'P'")
	}
	if f.beforeToday {
		year, month, day := time.Now().UTC().Date()
		today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		q = q.Where("p.payout_date < ?", today)
	}
	var out []payoutRow
	if err := q.Order("p.payout_date").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// PayoutRow is one row of GET /api/getPayouts.
type PayoutRow struct {
	ID     int    `json:"id"`
	Year   int    `json:"year"`
	Month  string `json:"month"`
	Amount string `json:"amount"`
}

// Payouts returns monthly payout totals for one owner, formatted as display
// currency ("$123.40").
func (s *Service) Payouts(ctx context.Context, ownerID int64) ([]PayoutRow, error) {
	rows, err := s.rows(ctx, rowFilter{ownerID: ownerID})
	if err != nil {
		return nil, err
	}

	type key struct {
		year  int
		month time.Month
	}
	order := []key{}
	totals := map[key]float64{}
	for _, r := range rows {
		k := key{r.PayoutDate.Year(), r.PayoutDate.Month()}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] += r.RentBasePrice
	}

	out := make([]PayoutRow, 0, len(order))
	for i, k := range order {
		out = append(out, PayoutRow{
			ID:     i + 1,
			Year:   k.year,
			Month:  k.month.String(),
			Amount: fmt.Sprintf("$%.2f", totals[k]),
		})
	}
	return out, nil
}

// PayoutDetail is one day entry inside a MonthlyPayout.
type PayoutDetail struct {
	Day    int    `json:"day"`
	Amount string `json:"amount"`
}

// MonthlyPayout is one row of GET /api/getDetailedPayouts.
type MonthlyPayout struct {
	Year    int            `json:"year"`
	Month   string         `json:"month"`
	Total   string         `json:"total"`
	Details []PayoutDetail `json:"details"`
}

// DetailedPayouts groups per-day payout amounts under their month with a
// running monthly total.
func (s *Service) DetailedPayouts(ctx context.Context, ownerID int64) ([]MonthlyPayout, error) {
	rows, err := s.rows(ctx, rowFilter{ownerID: ownerID})
	if err != nil {
		return nil, err
	}

	type group struct {
		year    int
		month   time.Month
		total   float64
		details []PayoutDetail
	}
	order := []string{}
	groups := map[string]*group{}
	for _, r := range rows {
		k := fmt.Sprintf("%d-%s", r.PayoutDate.Year(), r.PayoutDate.Month())
		g, ok := groups[k]
		if !ok {
			g = &group{year: r.PayoutDate.Year(), month: r.PayoutDate.Month()}
			groups[k] = g
			order = append(order, k)
		}
		g.details = append(g.details, PayoutDetail{
			Day:    r.PayoutDate.Day(),
			Amount: fmt.Sprintf("%.2f", r.RentBasePrice),
		})
		g.total += r.RentBasePrice
	}

	out := make([]MonthlyPayout, 0, len(order))
	for _, k := range order {
		g := groups[k]
		out = append(out, MonthlyPayout{
			Year:    g.year,
			Month:   g.month.String(),
			Total:   fmt.Sprintf("%.2f", g.total),
			Details: g.details,
		})
	}
	return out, nil
}

// EarningRow is one row of GET /api/getEarnings and the platform-wide
// report. The uppercase keys are Express parity (SQL aliases YEAR/MONTH).
type EarningRow struct {
	Year      int     `json:"YEAR"`
	Month     int     `json:"MONTH"`
	TotalRent float64 `json:"total_rent"`
}

// Earnings returns paid-out monthly rent sums for one owner, excluding
// payouts dated today or later.
func (s *Service) Earnings(ctx context.Context, ownerID int64) ([]EarningRow, error) {
	rows, err := s.rows(ctx, rowFilter{ownerID: ownerID, paidOnly: true, beforeToday: true})
	if err != nil {
		return nil, err
	}
	return groupMonthly(rows), nil
}

// AllEarnings returns monthly rent sums across every owner (moderator
// report, GetAllEarningsReportAPI.js).
func (s *Service) AllEarnings(ctx context.Context) ([]EarningRow, error) {
	rows, err := s.rows(ctx, rowFilter{})
	if err != nil {
		return nil, err
	}
	return groupMonthly(rows), nil
}

func groupMonthly(rows []payoutRow) []EarningRow {
	type key struct {
		year  int
		month int
	}
	order := []key{}
	totals := map[key]float64{}
	for _, r := range rows {
		k := key{r.PayoutDate.Year(), int(r.PayoutDate.Month())}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] += r.RentBasePrice
	}
	out := make([]EarningRow, 0, len(order))
	for _, k := range order {
		out = append(out, EarningRow{Year: k.year, Month: k.month, TotalRent: totals[k]})
	}
	return out
}

// DailyEarningRow is one row of GET /api/getEarnings/details.
type DailyEarningRow struct {
	Day       int     `json:"day"`
	TotalRent float64 `json:"daily_total_rent"`
}

// EarningsDetails returns per-day rent sums for one owner and month.
func (s *Service) EarningsDetails(ctx context.Context, ownerID int64, year, month int) ([]DailyEarningRow, error) {
	rows, err := s.rows(ctx, rowFilter{ownerID: ownerID, paidOnly: true, beforeToday: true})
	if err != nil {
		return nil, err
	}
	return groupDaily(rows, year, month), nil
}

// ModeratorSummary is Earnings without the before-today cutoff
// (ModeratorReportAPI.js summary route).
func (s *Service) ModeratorSummary(ctx context.Context, ownerID int64) ([]EarningRow, error) {
	rows, err := s.rows(ctx, rowFilter{ownerID: ownerID, paidOnly: true})
	if err != nil {
		return nil, err
	}
	return groupMonthly(rows), nil
}

// ModeratorDetails returns per-day sums for one owner and month without the
// before-today cutoff.
func (s *Service) ModeratorDetails(ctx context.Context, ownerID int64, year, month int) ([]DailyEarningRow, error) {
	rows, err := s.rows(ctx, rowFilter{ownerID: ownerID, paidOnly: true})
	if err != nil {
		return nil, err
	}
	return groupDaily(rows, year, month), nil
}

func groupDaily(rows []payoutRow, year, month int) []DailyEarningRow {
	order := []int{}
	totals := map[int]float64{}
	for _, r := range rows {
		if r.PayoutDate.Year() != year || int(r.PayoutDate.Month()) != month {
			continue
		}
		d := r.PayoutDate.Day()
		if _, ok := totals[d]; !ok {
			order = append(order, d)
		}
		totals[d] += r.RentBasePrice
	}
	out := make([]DailyEarningRow, 0, len(order))
	for _, d := range order {
		out = append(out, DailyEarningRow{Day: d, TotalRent: totals[d]})
	}
	return out
}

// MonthlyReport is the GET /api/getAllMonthlyReport payload. Revenue is the
// platform's 3% cut, formatted at serialization.
type MonthlyReport struct {
	NumberOfBookings   int     `json:"number_of_bookings"`
	TotalBookingAmount float64 `json:"total_booking_amount"`
	TotalRevenue       string  `json:"total_revenue"`
}

const platformFeeRate = 0.03

// Report aggregates bookings and revenue for one calendar month across all
// owners (GetAllMonthlyReportAPI.js).
func (s *Service) Report(ctx context.Context, year, month int) (*MonthlyReport, error) {
	rows, err := s.rows(ctx, rowFilter{paidOnly: true})
	if err != nil {
		return nil, err
	}
	var count int
	var total float64
	for _, r := range rows {
		if r.PayoutDate.Year() != year || int(r.PayoutDate.Month()) != month {
			continue
		}
		count++
		total += r.RentBasePrice
	}
	return &MonthlyReport{
		NumberOfBookings:   count,
		TotalBookingAmount: total,
		TotalRevenue:       fmt.Sprintf("%.2f", total*platformFeeRate),
	}, nil
}
