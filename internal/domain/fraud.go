package domain

// FraudSummary contains the global fraud indicators of the dataset.
type FraudSummary struct {
	TotalFrauds     int     `json:"total_frauds"`
	FlaggedBySystem int     `json:"flagged_by_system"`
	FraudRate       float64 `json:"fraud_rate"`
}

// FraudTypeStat counts flagged transactions per type.
type FraudTypeStat struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// PredictionInput are the features of the rule-based risk scorer.
type PredictionInput struct {
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	OldBalanceOrg float64 `json:"oldbalanceOrg"`
	NewBalanceOrg float64 `json:"newbalanceOrig"`
}

// FraudPrediction is the outcome of the rule-based risk scorer.
type FraudPrediction struct {
	IsFraud     bool    `json:"isFraud"`
	Probability float64 `json:"probability"`
	RiskLevel   string  `json:"risk_level"`
}
