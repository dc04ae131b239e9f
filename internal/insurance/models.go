package insurance

// PlanType is the metal tier of a marketplace plan.
type PlanType string

const (
	PlanBronze PlanType = "Bronze"
	PlanSilver PlanType = "Silver"
	PlanGold   PlanType = "Gold"
)

// HealthRate is one carrier's filed premium for a rating area.
type HealthRate struct {
	ID                string   `json:"id"`
	Carrier           string   `json:"carrier"`
	PlanType          PlanType `json:"planType"`
	RatingArea        int      `json:"ratingArea"`
	BasePremium2026   float64  `json:"basePremium2026"`
	ProjectedIncrease float64  `json:"projectedIncrease"`
}

// CountyMapping assigns a county to a PA rating area (1..9).
type CountyMapping struct {
	ID         string `json:"id"`
	County     string `json:"county"`
	RatingArea int    `json:"ratingArea"`
}

// AreaAverage is one heatmap cell: the average Silver premium and projected
// increase for a rating area.
type AreaAverage struct {
	RatingArea  int     `json:"ratingArea"`
	AvgPremium  float64 `json:"avgPremium"`
	AvgIncrease float64 `json:"avgIncrease"`
}

// PIDFiling is a rate filing with the PA Insurance Department.
type PIDFiling struct {
	ID                string  `json:"id"`
	Carrier           string  `json:"carrier"`
	FilingNumber      string  `json:"filingNumber"`
	RequestedIncrease float64 `json:"requestedIncrease"`
	Status            string  `json:"status"`
}

// SubsidyRequest is the premium-tax-credit calculator input.
type SubsidyRequest struct {
	Income           float64 `json:"income"`
	HouseholdSize    int     `json:"householdSize"`
	RatingArea       int     `json:"ratingArea"`
	BenchmarkPremium float64 `json:"benchmarkPremium"`
}

// SubsidyCalculation is the calculator output.
type SubsidyCalculation struct {
	HouseholdIncome  float64 `json:"householdIncome"`
	HouseholdSize    int     `json:"householdSize"`
	FPLPercentage    float64 `json:"fplPercentage"`
	FPLThreshold     float64 `json:"fplThreshold"`
	BenchmarkPremium float64 `json:"benchmarkPremium"`
	EstimatedCredit  float64 `json:"estimatedCredit"`
	NetPremium       float64 `json:"netPremium"`
	IncomeCapReached bool    `json:"incomeCapReached"`
}
