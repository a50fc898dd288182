package analytics

import (
	"fmt"
	"strings"
)

// GenerateChallenges suggests at most two savings targets: one for the coming
// week and one for the biggest expense category. Progress always starts at zero.
func GenerateChallenges(monthly []MonthlyAggregate, categories []CategoryAggregate, cfg ChallengeConfig) []SavingsChallenge {
	var challenges []SavingsChallenge

	if len(monthly) > 0 {
		latest := monthly[len(monthly)-1]
		target := latest.Expenses / cfg.WeeksPerMonth * cfg.WeeklySavingsRate
		if target > 0 {
			challenges = append(challenges, SavingsChallenge{
				ID:            "weekly-savings",
				Title:         fmt.Sprintf("Save %.2f This Week", target),
				TargetAmount:  target,
				DaysRemaining: cfg.WeeklyDays,
				Reward:        cfg.WeeklyReward,
				Difficulty:    DifficultyEasy,
			})
		}
	}

	if top, ok := TopCategory(categories); ok {
		target := top.Amount * cfg.CategorySavingsRate
		if target > 0 {
			challenges = append(challenges, SavingsChallenge{
				ID:            "category-" + slug(top.Category),
				Title:         fmt.Sprintf("Cut %s Costs", top.Category),
				TargetAmount:  target,
				DaysRemaining: cfg.CategoryDays,
				Reward:        cfg.CategoryReward,
				Difficulty:    DifficultyMedium,
				Category:      top.Category,
			})
		}
	}

	return challenges
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
