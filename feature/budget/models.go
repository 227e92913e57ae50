package budget

// ContextType selects the budget flavour.
type ContextType string

const (
	TypeReport   ContextType = "report"
	TypeRollover ContextType = "rollover"
)

// Budget actions accepted by Service.Apply.
const (
	ActionBudgetAmount   = "budget-amount"
	ActionCopySingleLast = "copy-single-last"
	ActionSetSingleZero  = "set-single-zero"
	ActionSetZero        = "set-zero"
	ActionCopyLast       = "copy-last"
)

// CategoryGroup groups categories on the budget sheet.
type CategoryGroup struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	IsIncome   bool       `gorm:"not null;default:false" json:"is_income"`
	SortOrder  int64      `gorm:"not null;default:0" json:"sort_order"`
	Categories []Category `gorm:"-" json:"categories,omitempty"`
}

// TableName returns the table name for GORM.
func (CategoryGroup) TableName() string {
	return "category_groups"
}

// Category is a budget line.
type Category struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	GroupID   string `gorm:"size:36;index" json:"group_id"`
	SortOrder int64  `gorm:"not null;default:0" json:"sort_order"`
}

// TableName returns the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// BudgetAmount is the budgeted amount, in cents, of one category for one month.
type BudgetAmount struct {
	ID         string `gorm:"primaryKey;size:96" json:"id"`
	Type       string `gorm:"size:16;index:idx_budget_month" json:"type"`
	Month      string `gorm:"size:7;index:idx_budget_month" json:"month"`
	CategoryID string `gorm:"size:36" json:"category_id"`
	Amount     int64  `gorm:"not null;default:0" json:"amount"`
}

// TableName returns the table name for GORM.
func (BudgetAmount) TableName() string {
	return "budget_amounts"
}

func amountID(typ ContextType, month, category string) string {
	return string(typ) + ":" + month + ":" + category
}

// ContextValue is what a budget view needs to render.
// CategoryGroups is only filled for rollover budgets.
type ContextValue struct {
	Type             ContextType     `json:"type"`
	CurrentMonth     string          `json:"currentMonth"`
	SummaryCollapsed bool            `json:"summaryCollapsed"`
	CategoryGroups   []CategoryGroup `json:"categoryGroups,omitempty"`
}

// ActionRequest is the body of POST /budget/:type/actions.
type ActionRequest struct {
	Month    string `json:"month"`
	Action   string `json:"action"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// MonthBudget lists the budgeted amounts of a month by category id.
type MonthBudget struct {
	Type           ContextType       `json:"type"`
	Month          string            `json:"month"`
	Amounts        map[string]int64  `json:"amounts"`
	Formatted      map[string]string `json:"formatted"`
	Total          int64             `json:"total"`
	TotalFormatted string            `json:"totalFormatted"`
}
