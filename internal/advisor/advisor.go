// Package advisor produces the assistant's canned replies. Responses are
// keyword-matched templates over the session's own data; there is no
// model and no network call behind them.
package advisor

import (
	"fmt"
	"strings"

	"github.com/optifin/optifin/internal/models"
	"github.com/shopspring/decimal"
)

// Context is the slice of session data the advisor may reference.
type Context struct {
	Username string
	Segment  models.Segment
	Goals    []models.Goal
	Currency string
}

// Reply returns a templated answer for the question.
func Reply(question string, c Context) string {
	q := strings.ToLower(question)
	name := c.Username
	if name == "" {
		name = "there"
	}

	switch {
	case strings.Contains(q, "hello") || strings.Contains(q, "hi"):
		return fmt.Sprintf("Hi %s! Ask me about your goals, saving, or spending.", name)

	case strings.Contains(q, "goal"):
		if len(c.Goals) == 0 {
			return "You have no goals yet. Add one on the goals page and I can track it with you."
		}
		total := decimal.Zero
		for _, g := range c.Goals {
			total = total.Add(g.Amount)
		}
		return fmt.Sprintf("You are tracking %d goal(s) worth %s %s in total. Steady contributions beat sprints.",
			len(c.Goals), total.StringFixed(2), c.Currency)

	case strings.Contains(q, "save") || strings.Contains(q, "saving"):
		return segmentTip(c.Segment)

	case strings.Contains(q, "spend") || strings.Contains(q, "budget"):
		return "Upload a bank statement and check the dashboard for a category breakdown of your spending."

	default:
		return fmt.Sprintf("I can help with goals, saving tips, and spending overviews, %s. Try asking about one of those.", name)
	}
}

func segmentTip(s models.Segment) string {
	switch s {
	case models.SegmentHousehold:
		return "For households, a shared buffer of three months of joint expenses is a solid first target."
	case models.SegmentBusiness:
		return "For a business, separate operating cash from reserves and review the split monthly."
	default:
		return "A common rule of thumb is to set aside 20% of income before discretionary spending."
	}
}
