package report

// DeliveryComparison compares delivered volume across the two most recent
// months.
type DeliveryComparison struct {
	LastMonth int `json:"last_month"`
	ThisMonth int `json:"this_month"`
}

// SalesPoint is one bucket of the sales performance series.
type SalesPoint struct {
	Name    string `json:"name"`
	Sales   int    `json:"sales"`
	Revenue int    `json:"revenue"`
	Orders  int    `json:"orders"`
}

// SeriesProvider supplies the dashboard time-series data. The core does not
// compute these figures; a real deployment plugs in an analytics-backed
// implementation, and StaticSeries ships the placeholder numbers the
// dashboard was built against.
type SeriesProvider interface {
	DeliveryComparison() DeliveryComparison
	SalesPerformance(timeRange string) []SalesPoint
}

type StaticSeries struct{}

func (StaticSeries) DeliveryComparison() DeliveryComparison {
	return DeliveryComparison{LastMonth: 4087, ThisMonth: 5506}
}

func (StaticSeries) SalesPerformance(timeRange string) []SalesPoint {
	switch timeRange {
	case "day":
		return []SalesPoint{
			{Name: "Mon", Sales: 400, Revenue: 240, Orders: 24},
			{Name: "Tue", Sales: 300, Revenue: 139, Orders: 22},
			{Name: "Wed", Sales: 200, Revenue: 980, Orders: 29},
			{Name: "Thu", Sales: 278, Revenue: 390, Orders: 20},
			{Name: "Fri", Sales: 189, Revenue: 480, Orders: 18},
			{Name: "Sat", Sales: 239, Revenue: 380, Orders: 25},
			{Name: "Sun", Sales: 349, Revenue: 430, Orders: 21},
		}
	case "week":
		return []SalesPoint{
			{Name: "Week 1", Sales: 1200, Revenue: 800, Orders: 85},
			{Name: "Week 2", Sales: 1900, Revenue: 1200, Orders: 92},
			{Name: "Week 3", Sales: 1600, Revenue: 950, Orders: 78},
			{Name: "Week 4", Sales: 2100, Revenue: 1400, Orders: 105},
		}
	default:
		return []SalesPoint{
			{Name: "Jan", Sales: 4000, Revenue: 2400, Orders: 240},
			{Name: "Feb", Sales: 3000, Revenue: 1398, Orders: 221},
			{Name: "Mar", Sales: 2000, Revenue: 9800, Orders: 229},
			{Name: "Apr", Sales: 2780, Revenue: 3908, Orders: 200},
			{Name: "May", Sales: 1890, Revenue: 4800, Orders: 218},
			{Name: "Jun", Sales: 2390, Revenue: 3800, Orders: 250},
			{Name: "Jul", Sales: 3490, Revenue: 4300, Orders: 210},
		}
	}
}
