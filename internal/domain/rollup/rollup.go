// Package rollup implements the monthly analytics engine: a pure, synchronous
// transformation of an in-memory snapshot of expense and inventory records
// into totals, breakdowns, rankings, stock alerts, a bounded performance
// score and a list of recommendations.
//
// The engine performs no I/O and reads no ambient clock; callers inject the
// reference instant through Options. Identical inputs and reference time
// always produce identical output, so it is safe to invoke concurrently.
package rollup

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thesarya/expense/internal/domain/entity"
)

// Default thresholds. The absolute and relative low-stock definitions grew
// independently in the product and stay independent here: an item can trip
// several alerts at once.
const (
	DefaultRecentN           = 5
	DefaultLowStockThreshold = 3    // quantity strictly below this is "low stock"
	DefaultCriticalThreshold = 2    // quantity strictly below this is "critical"
	DefaultLowStockRatio     = 0.20 // quantity below ratio*originalQuantity is "running out"
)

// Severity levels for recommendations.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Recommendation is one generated advice line.
type Recommendation struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Filter restricts the working set before aggregation. Empty string fields
// match everything; set fields are an exact-match conjunction. Month (1-12)
// matches records whose Timestamp falls within that calendar month of the
// reference year.
type Filter struct {
	Centre   string
	Category string
	User     string
	Month    *int
}

// Options carry the injected clock, filters and thresholds.
type Options struct {
	ReferenceTime time.Time
	Filter        Filter

	RecentN                int     // size of the recent-expenses list; 0 means DefaultRecentN
	LowStockThreshold      int     // 0 means DefaultLowStockThreshold
	CriticalStockThreshold int     // 0 means DefaultCriticalThreshold
	LowStockRatio          float64 // 0 means DefaultLowStockRatio
}

// ItemCount ranks an item by how often it was bought.
type ItemCount struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// SpenderTotal ranks a user by total spend.
type SpenderTotal struct {
	User  string          `json:"user"`
	Total decimal.Decimal `json:"total"`
}

// MonthOverMonth compares the reference month with the one before it.
// PercentageChange is defined as 0 when the previous total is 0.
type MonthOverMonth struct {
	CurrentTotal     decimal.Decimal `json:"current_total"`
	PreviousTotal    decimal.Decimal `json:"previous_total"`
	CurrentCount     int             `json:"current_count"`
	PreviousCount    int             `json:"previous_count"`
	PercentageChange decimal.Decimal `json:"percentage_change"`
}

// Result is the full analytics output. Slices are sorted so that identical
// inputs yield identical results.
type Result struct {
	TotalAmount  decimal.Decimal
	ExpenseCount int

	CountsByCategory map[string]int
	CountsByCentre   map[string]int
	TotalsByCategory map[string]decimal.Decimal
	TotalsByCentre   map[string]decimal.Decimal

	Centres    []string
	Users      []string
	Categories []string

	TopItems       []ItemCount
	TopSpenders    []SpenderTotal
	RecentExpenses []entity.Expense

	MonthOverMonth MonthOverMonth

	LowStock         []entity.InventoryItem
	Critical         []entity.InventoryItem
	OutOfStock       []entity.InventoryItem
	RelativeLowStock []entity.InventoryItem

	Score           int
	Recommendations []Recommendation
}

const topN = 5

var (
	hundred     = decimal.NewFromInt(100)
	thousand    = decimal.NewFromInt(1000)
	ten         = decimal.NewFromInt(10)
	maxPenalty  = decimal.NewFromInt(20)
	maxBonus    = decimal.NewFromInt(15)
	perLowStock = decimal.NewFromInt(2)
	perOutStock = decimal.NewFromInt(5)
)

// Compute runs the rollup over a point-in-time snapshot.
//
// The month filter applies to totals, breakdowns and rankings. The
// month-over-month comparison ignores it and always buckets the
// centre/category/user-scoped set around ReferenceTime; applying a month
// filter there would leave the previous month empty by construction.
func Compute(expenses []entity.Expense, inventory []entity.InventoryItem, opts Options) Result {
	opts = withDefaults(opts)

	base := filterExpenses(expenses, opts.Filter)

	working := base
	if opts.Filter.Month != nil {
		from, to := monthWindow(opts.ReferenceTime, *opts.Filter.Month)
		working = filterByWindow(base, from, to)
	}

	res := Result{
		CountsByCategory: map[string]int{},
		CountsByCentre:   map[string]int{},
		TotalsByCategory: map[string]decimal.Decimal{},
		TotalsByCentre:   map[string]decimal.Decimal{},
	}

	itemCounts := map[string]int{}
	spenderTotals := map[string]decimal.Decimal{}
	categorySet := map[string]struct{}{}
	centreSet := map[string]struct{}{}
	userSet := map[string]struct{}{}

	for _, e := range working {
		res.TotalAmount = res.TotalAmount.Add(e.Amount)
		res.ExpenseCount++

		res.CountsByCategory[e.Category]++
		res.CountsByCentre[e.Centre]++
		res.TotalsByCategory[e.Category] = res.TotalsByCategory[e.Category].Add(e.Amount)
		res.TotalsByCentre[e.Centre] = res.TotalsByCentre[e.Centre].Add(e.Amount)

		itemCounts[e.Item]++
		spenderTotals[e.CreatedBy] = spenderTotals[e.CreatedBy].Add(e.Amount)
		categorySet[e.Category] = struct{}{}
		centreSet[e.Centre] = struct{}{}
		userSet[e.CreatedBy] = struct{}{}
	}

	res.Categories = sortedKeys(categorySet)
	res.Centres = sortedKeys(centreSet)
	res.Users = sortedKeys(userSet)
	res.TopItems = topItems(itemCounts)
	res.TopSpenders = topSpenders(spenderTotals)
	res.RecentExpenses = recentExpenses(working, opts.RecentN)

	res.MonthOverMonth = monthOverMonth(base, opts.ReferenceTime)

	items := filterInventory(inventory, opts.Filter)
	for _, it := range items {
		if it.Quantity < opts.LowStockThreshold {
			res.LowStock = append(res.LowStock, it)
		}
		if it.Quantity < opts.CriticalStockThreshold {
			res.Critical = append(res.Critical, it)
		}
		if it.Quantity == 0 {
			res.OutOfStock = append(res.OutOfStock, it)
		}
		if it.OriginalQuantity != nil && *it.OriginalQuantity > 0 &&
			float64(it.Quantity) < opts.LowStockRatio*float64(*it.OriginalQuantity) {
			res.RelativeLowStock = append(res.RelativeLowStock, it)
		}
	}

	res.Score = score(res.MonthOverMonth, len(res.LowStock), len(res.OutOfStock))
	res.Recommendations = recommendations(res.MonthOverMonth, len(res.LowStock), len(res.OutOfStock))

	return res
}

func withDefaults(opts Options) Options {
	if opts.RecentN <= 0 {
		opts.RecentN = DefaultRecentN
	}
	if opts.LowStockThreshold <= 0 {
		opts.LowStockThreshold = DefaultLowStockThreshold
	}
	if opts.CriticalStockThreshold <= 0 {
		opts.CriticalStockThreshold = DefaultCriticalThreshold
	}
	if opts.LowStockRatio <= 0 {
		opts.LowStockRatio = DefaultLowStockRatio
	}
	return opts
}

// filterExpenses applies the centre/category/user exact-match conjunction.
func filterExpenses(expenses []entity.Expense, f Filter) []entity.Expense {
	out := make([]entity.Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Centre != "" && e.Centre != f.Centre {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.User != "" && e.CreatedBy != f.User {
			continue
		}
		out = append(out, e)
	}
	return out
}

func filterByWindow(expenses []entity.Expense, from, to time.Time) []entity.Expense {
	out := make([]entity.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Timestamp.Before(from) || !e.Timestamp.Before(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// filterInventory applies the centre and category filters; user and month
// have no meaning for inventory records.
func filterInventory(items []entity.InventoryItem, f Filter) []entity.InventoryItem {
	out := make([]entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if f.Centre != "" && it.Centre != f.Centre {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		out = append(out, it)
	}
	return out
}

// monthWindow returns [start, end) of the given calendar month in the
// reference year and location.
func monthWindow(ref time.Time, month int) (time.Time, time.Time) {
	start := time.Date(ref.Year(), time.Month(month), 1, 0, 0, 0, 0, ref.Location())
	return start, start.AddDate(0, 1, 0)
}

func monthOverMonth(expenses []entity.Expense, ref time.Time) MonthOverMonth {
	curStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	prevStart := curStart.AddDate(0, -1, 0)
	curEnd := curStart.AddDate(0, 1, 0)

	m := MonthOverMonth{}
	for _, e := range expenses {
		switch {
		case !e.Timestamp.Before(curStart) && e.Timestamp.Before(curEnd):
			m.CurrentTotal = m.CurrentTotal.Add(e.Amount)
			m.CurrentCount++
		case !e.Timestamp.Before(prevStart) && e.Timestamp.Before(curStart):
			m.PreviousTotal = m.PreviousTotal.Add(e.Amount)
			m.PreviousCount++
		}
	}
	if m.PreviousTotal.IsPositive() {
		m.PercentageChange = m.CurrentTotal.Sub(m.PreviousTotal).
			Div(m.PreviousTotal).Mul(hundred).Round(2)
	}
	return m
}

func topItems(counts map[string]int) []ItemCount {
	ranked := make([]ItemCount, 0, len(counts))
	for item, n := range counts {
		ranked = append(ranked, ItemCount{Item: item, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Item < ranked[j].Item
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func topSpenders(totals map[string]decimal.Decimal) []SpenderTotal {
	ranked := make([]SpenderTotal, 0, len(totals))
	for user, total := range totals {
		ranked = append(ranked, SpenderTotal{User: user, Total: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Total.Equal(ranked[j].Total) {
			return ranked[i].Total.GreaterThan(ranked[j].Total)
		}
		return ranked[i].User < ranked[j].User
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func recentExpenses(expenses []entity.Expense, n int) []entity.Expense {
	recent := make([]entity.Expense, len(expenses))
	copy(recent, expenses)
	sort.Slice(recent, func(i, j int) bool {
		if !recent[i].Timestamp.Equal(recent[j].Timestamp) {
			return recent[i].Timestamp.After(recent[j].Timestamp)
		}
		return recent[i].ID < recent[j].ID
	})
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}

// score starts at 100, rewards month-over-month savings, penalises increased
// spend and stock problems, and clamps to [0, 100] only after every additive
// term has been applied.
func score(m MonthOverMonth, lowStockCount, outOfStockCount int) int {
	s := hundred

	if m.CurrentTotal.GreaterThan(m.PreviousTotal) {
		penalty := m.CurrentTotal.Sub(m.PreviousTotal).Div(thousand).Mul(ten)
		s = s.Sub(decimal.Min(maxPenalty, penalty))
	} else {
		bonus := m.PreviousTotal.Sub(m.CurrentTotal).Div(thousand).Mul(ten)
		s = s.Add(decimal.Min(maxBonus, bonus))
	}

	s = s.Sub(perLowStock.Mul(decimal.NewFromInt(int64(lowStockCount))))
	s = s.Sub(perOutStock.Mul(decimal.NewFromInt(int64(outOfStockCount))))

	if s.LessThan(decimal.Zero) {
		s = decimal.Zero
	}
	if s.GreaterThan(hundred) {
		s = hundred
	}
	return int(s.Round(0).IntPart())
}

// recommendations emits advice in a fixed order: spend comparison, then the
// forward-looking tip, then inventory warnings, then the generic tip.
func recommendations(m MonthOverMonth, lowStockCount, outOfStockCount int) []Recommendation {
	var recs []Recommendation

	increased := m.CurrentTotal.GreaterThan(m.PreviousTotal)
	if increased {
		recs = append(recs, Recommendation{
			Severity: SeverityWarning,
			Text: "Spending increased by " + m.CurrentTotal.Sub(m.PreviousTotal).String() +
				" over last month. Review the category breakdown for the biggest movers.",
		})
		recs = append(recs, Recommendation{
			Severity: SeverityInfo,
			Text:     "Set a monthly budget per category to keep next month's spend in check.",
		})
	} else {
		recs = append(recs, Recommendation{
			Severity: SeveritySuccess,
			Text: "Great job! You spent " + m.PreviousTotal.Sub(m.CurrentTotal).String() +
				" less than last month.",
		})
		recs = append(recs, Recommendation{
			Severity: SeveritySuccess,
			Text:     "Keep the current purchasing pattern going next month.",
		})
	}

	if lowStockCount > 0 {
		recs = append(recs, Recommendation{
			Severity: SeverityWarning,
			Text:     pluralCount(lowStockCount, "item is", "items are") + " running low on stock. Plan a restock soon.",
		})
	}
	if outOfStockCount > 0 {
		recs = append(recs, Recommendation{
			Severity: SeverityError,
			Text:     pluralCount(outOfStockCount, "item is", "items are") + " out of stock. Reorder immediately.",
		})
	}
	if m.CurrentTotal.IsPositive() {
		recs = append(recs, Recommendation{
			Severity: SeverityInfo,
			Text:     "Consider bulk purchases for frequently bought items to reduce per-unit cost.",
		})
	}
	return recs
}

func pluralCount(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
