package models

// ChartDataItem is a single name/value chart point.
type ChartDataItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// StatusCount pairs a lead type with its count.
type StatusCount struct {
	LeadType LeadType `json:"leadType"`
	Count    int      `json:"count"`
}

// TelecallerStats is one leaderboard row.
type TelecallerStats struct {
	Telecaller    string `json:"telecaller" bson:"_id"`
	TotalLeads    int    `json:"totalLeads" bson:"totalLeads"`
	HotLeads      int    `json:"hotLeads" bson:"hotLeads"`
	ColdLeads     int    `json:"coldLeads" bson:"coldLeads"`
	NegativeLeads int    `json:"negativeLeads" bson:"negativeLeads"`
	FollowUps     int    `json:"followUps" bson:"followUps"`
}

// MonthlyTrendPoint is one month bucket of the trend series.
type MonthlyTrendPoint struct {
	Month      string  `json:"month"` // YYYY-MM
	Leads      int     `json:"leads"`
	Admissions int     `json:"admissions"`
	Revenue    float64 `json:"revenue"`
}

// FollowUpActivity summarises follow-ups inside a date/time window,
// bucketed by outcome status.
type FollowUpActivity struct {
	Total    int                    `json:"total"`
	ByStatus map[string]int         `json:"byStatus"`
	Window   map[string]interface{} `json:"window,omitempty"`
}

// RevenueSummary is the admission/revenue aggregate. Amounts carry both the
// raw number and an Indian-unit display string (Crore/Lakh).
type RevenueSummary struct {
	TotalRevenue         float64 `json:"totalRevenue"`
	TotalRevenueDisplay  string  `json:"totalRevenueDisplay"`
	CollectedFees        float64 `json:"collectedFees"`
	CollectedFeesDisplay string  `json:"collectedFeesDisplay"`
	AdmissionCount       int     `json:"admissionCount"`
	AverageTicket        float64 `json:"averageTicket"`
	AverageTicketDisplay string  `json:"averageTicketDisplay"`
}

// FunnelSummary is the leads -> hot/cold -> admissions funnel.
type FunnelSummary struct {
	TotalLeads    int `json:"totalLeads"`
	HotLeads      int `json:"hotLeads"`
	ColdLeads     int `json:"coldLeads"`
	NegativeLeads int `json:"negativeLeads"`
	Counseled     int `json:"counseled"`
	Admissions    int `json:"admissions"`
}

// ZoneRollup is the per-zone revenue/lead rollup.
type ZoneRollup struct {
	ZoneID      string         `json:"zoneId"`
	ZoneName    string         `json:"zoneName"`
	CentreCount int            `json:"centreCount"`
	LeadCount   int            `json:"leadCount"`
	Revenue     RevenueSummary `json:"revenue"`
}

// DashboardDataResponse is the full dashboard payload. Every section
// degrades to a zero value on sub-aggregate failure; the endpoint itself
// never fails for one broken section.
type DashboardDataResponse struct {
	Revenue            RevenueSummary      `json:"revenue"`
	Funnel             FunnelSummary       `json:"funnel"`
	StatusDistribution []StatusCount       `json:"statusDistribution"`
	MonthlyTrend       []MonthlyTrendPoint `json:"monthlyTrend"`
	TopCourses         []ChartDataItem     `json:"topCourses"`
	TopSources         []ChartDataItem     `json:"topSources"`
	ZoneRollups        []ZoneRollup        `json:"zoneRollups"`
	Degraded           []string            `json:"degraded,omitempty"`
}

// LeadAnalyticsResponse is the lead-analytics payload.
type LeadAnalyticsResponse struct {
	TotalLeads         int64             `json:"totalLeads"`
	StatusDistribution []StatusCount     `json:"statusDistribution"`
	FollowUpActivity   FollowUpActivity  `json:"followUpActivity"`
	Leaderboard        []TelecallerStats `json:"leaderboard"`
	Degraded           []string          `json:"degraded,omitempty"`
}
