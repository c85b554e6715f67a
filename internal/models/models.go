package models

type Condition string

type RiskLevel string

const (
	ConditionSurplus Condition = "surplus"
	ConditionDeficit Condition = "deficit"

	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// ExpenseItem is a single user-entered spending row. IDs are unique within a
// request; labels may repeat and are aggregated case-insensitively.
type ExpenseItem struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// CategoryShare is one slice of the expense breakdown, ordered by amount.
type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Snapshot is the derived financial state for one set of inputs. It has no
// lifecycle of its own and is recomputed from scratch on every request.
type Snapshot struct {
	MonthlyIncome  float64         `json:"monthly_income"`
	TotalExpenses  float64         `json:"total_expenses"`
	MonthlySavings float64         `json:"monthly_savings"`
	SavingsRatio   float64         `json:"savings_ratio"`
	HealthScore    int             `json:"health_score"`
	Condition      Condition       `json:"condition"`
	Breakdown      []CategoryShare `json:"breakdown"`
}

// Profile carries the planning inputs that feed the prompt but not the score.
type Profile struct {
	CurrentAge    int     `json:"current_age"`
	RetirementAge int     `json:"retirement_age"`
	Target1Year   float64 `json:"target_1_year"`
	Target2Year   float64 `json:"target_2_year"`
}

type RiskFactor struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

type Recommendation struct {
	Category          string  `json:"category"`
	CurrentAmount     float64 `json:"current_amount"`
	CurrentPercentage float64 `json:"current_percentage"`
	TargetReduction   float64 `json:"target_reduction"`
	PotentialSavings  float64 `json:"potential_savings"`
}

// Projections are the forward-looking figures shown on the calculator view.
type Projections struct {
	YearsToRetirement  int     `json:"years_to_retirement"`
	MonthsToRetirement int     `json:"months_to_retirement"`
	MonthsToTarget1    int     `json:"months_to_target_1"`
	MonthsToTarget2    int     `json:"months_to_target_2"`
	YearlySavings      float64 `json:"yearly_savings"`
	WeeklyExpense      float64 `json:"weekly_expense"`
	DailyExpense       float64 `json:"daily_expense"`
}
