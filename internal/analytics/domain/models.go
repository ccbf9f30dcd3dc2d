// Package domain defines the analytics read API: the time-series, summary and
// distribution shapes served to the operator dashboard.
package domain

// RevenueCategory identifies one slice of the revenue breakdown.
type RevenueCategory string

const (
	CategoryGoldSubscriptions     RevenueCategory = "subscription_gold"
	CategoryPlatinumSubscriptions RevenueCategory = "subscription_platinum"
	CategoryStandalonePurchases   RevenueCategory = "standalone_purchases"
	CategoryPersonalTraining      RevenueCategory = "personal_training"
	CategoryCorporate             RevenueCategory = "corporate"
)

// Categories returns the fixed presentation order. Charts and legends rely on
// this ordering staying stable between renders.
func Categories() []RevenueCategory {
	return []RevenueCategory{
		CategoryGoldSubscriptions,
		CategoryPlatinumSubscriptions,
		CategoryStandalonePurchases,
		CategoryPersonalTraining,
		CategoryCorporate,
	}
}

// CategoryTotal is one category's revenue within a period, in cents.
type CategoryTotal struct {
	Category    RevenueCategory `json:"category"`
	AmountCents int64           `json:"amount_cents"`
}

// PeriodRevenue is one bucket of the revenue time series. Subscriber counts
// include complimentary plans; the category totals never do.
type PeriodRevenue struct {
	Period              string          `json:"period"`
	Categories          []CategoryTotal `json:"categories"`
	TotalCents          int64           `json:"total_cents"`
	ActiveSubscriptions int64           `json:"active_subscriptions"`
	ActiveCorporate     int64           `json:"active_corporate"`
}

// RevenueTrend is the month-by-month revenue series, oldest first.
type RevenueTrend struct {
	Periods         []PeriodRevenue `json:"periods"`
	GrandTotalCents int64           `json:"grand_total_cents"`
}

// RankedLabel is a label with its occurrence count, ranked descending.
type RankedLabel struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// BestSeller is a content item ranked by sales within the window.
type BestSeller struct {
	ContentName  string `json:"content_name"`
	Sales        int64  `json:"sales"`
	RevenueCents int64  `json:"revenue_cents"`
}

// ResponseTimeStats summarizes operator response latency over answered
// messages, in hours.
type ResponseTimeStats struct {
	AverageHours  float64 `json:"average_hours"`
	MedianHours   float64 `json:"median_hours"`
	MinHours      float64 `json:"min_hours"`
	MaxHours      float64 `json:"max_hours"`
	AnsweredCount int64   `json:"answered_count"`
}

// EngagementStats summarizes interactions for one content kind.
type EngagementStats struct {
	Interactions   int64         `json:"interactions"`
	CompletionRate int64         `json:"completion_rate"`
	Favorites      int64         `json:"favorites"`
	AverageRating  float64       `json:"average_rating"`
	MostViewed     []RankedLabel `json:"most_viewed"`
}

// Summary is the flat metrics object behind the dashboard summary cards.
type Summary struct {
	WindowDays int `json:"window_days"`

	RevenueCents               int64   `json:"revenue_cents"`
	UniquePurchasers           int64   `json:"unique_purchasers"`
	RegisteredMembers          int64   `json:"registered_members"`
	ConversionRate             float64 `json:"conversion_rate"`
	CustomerLifetimeValueCents int64   `json:"customer_lifetime_value_cents"`

	Workouts    EngagementStats `json:"workouts"`
	Programs    EngagementStats `json:"programs"`
	BestSellers []BestSeller    `json:"best_sellers"`

	ResponseRate  float64           `json:"response_rate"`
	ResponseTimes ResponseTimeStats `json:"response_times"`

	Visits             int64         `json:"visits"`
	Signups            int64         `json:"signups"`
	SignupRate         float64       `json:"signup_rate"`
	TopLandingPages    []RankedLabel `json:"top_landing_pages"`
	TopReferralSources []RankedLabel `json:"top_referral_sources"`

	ActiveCorporatePlans int64   `json:"active_corporate_plans"`
	CorporateUtilization float64 `json:"corporate_utilization"`

	// PartialSources names adapters that failed; their metrics are zeroed.
	PartialSources []string `json:"partial_sources,omitempty"`
}

// Slice is one category of the percentage distribution.
type Slice struct {
	Category    RevenueCategory `json:"category"`
	AmountCents int64           `json:"amount_cents"`
	Percentage  float64         `json:"percentage"`
}

// Distribution is the percentage-of-total breakdown for pie charts.
type Distribution struct {
	WindowDays int     `json:"window_days"`
	TotalCents int64   `json:"total_cents"`
	Slices     []Slice `json:"slices"`
}
