package models

import "fmt"

type GoalCategory string

const (
	CategoryHealth   GoalCategory = "health"
	CategoryCareer   GoalCategory = "career"
	CategoryPersonal GoalCategory = "personal"
	CategoryLearning GoalCategory = "learning"
	CategoryOther    GoalCategory = "other"
)

var GoalCategories = []GoalCategory{CategoryHealth, CategoryCareer, CategoryPersonal, CategoryLearning, CategoryOther}

// ParseGoalCategory validates a category name.
func ParseGoalCategory(s string) (GoalCategory, error) {
	for _, c := range GoalCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category: %s (expected health|career|personal|learning|other)", s)
}

// Goal is a longer-term habit target that activities can contribute to.
type Goal struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	TargetDays  int          `json:"targetDays"`
	CreatedAt   string       `json:"createdAt"` // RFC3339
	Category    GoalCategory `json:"category"`
}

// GoalProgress is a sparse per-(goal, date) completion flag.
type GoalProgress struct {
	GoalID    int64  `json:"goalId"`
	Date      string `json:"date"` // YYYY-MM-DD
	Completed bool   `json:"completed"`
	Notes     string `json:"notes,omitempty"`
}
