package domain

// StatsOverview contains the global KPIs of the loaded dataset.
type StatsOverview struct {
	TotalTransactions int             `json:"total_transactions"`
	AverageAmount     float64         `json:"average_amount"`
	TopTransaction    *TopTransaction `json:"top_transaction"`
	MostCommonType    string          `json:"most_common_type"`
	FraudRate         float64         `json:"fraud_rate"`
}

// TopTransaction identifies the largest transaction in the dataset.
type TopTransaction struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

// AmountDistribution is a fixed-bucket histogram of transaction amounts.
// Bins and counts are parallel slices; every bin is present even when its
// count is zero.
type AmountDistribution struct {
	Bins   []string `json:"bins"`
	Counts []int    `json:"counts"`
}

// TypeStat is one group of the by-type breakdown.
type TypeStat struct {
	Type      string  `json:"type"`
	Count     int     `json:"count"`
	AvgAmount float64 `json:"avg_amount"`
}

// PeriodStat is one group of the by-time breakdown.
type PeriodStat struct {
	Period    string  `json:"period"`
	Count     int     `json:"count"`
	AvgAmount float64 `json:"avg_amount"`
}
