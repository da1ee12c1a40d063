// Package models defines the core data structures for users, profiles,
// financial goals, and page navigation.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a stored application user record.
type User struct {
	// Password holds the salted credential in "hexhash:hexsalt" form.
	Password string `json:"password"`
	// Profile holds the user's persisted settings and goals.
	Profile Profile `json:"profile"`
}

// Profile holds per-user settings and saved goals.
// Edits made during a session are provisional until explicitly saved.
type Profile struct {
	// Currency is the ISO currency code used for display (e.g. "EUR").
	Currency string `json:"currency"`
	// Region is the user's locale region.
	Region string `json:"region"`
	// Language is the user's display language.
	Language string `json:"language"`
	// Goals is the ordered list of saved financial goals.
	Goals []Goal `json:"goals"`
}

// Goal is a single financial target.
type Goal struct {
	// ID is the stable identifier used for updates and removal.
	ID uuid.UUID `json:"id"`
	// Name is the user-chosen label for the goal.
	Name string `json:"name"`
	// Amount is the non-negative target amount.
	Amount decimal.Decimal `json:"amount"`
	// TargetDate is the date by which the goal should be reached.
	TargetDate time.Time `json:"targetDate"`
}

// Segment classifies the user for tailoring the experience.
type Segment string

const (
	// SegmentIndividual represents a single-person user.
	SegmentIndividual Segment = "individual"
	// SegmentHousehold represents a multi-person household.
	SegmentHousehold Segment = "household"
	// SegmentBusiness represents a small-business user.
	SegmentBusiness Segment = "business"
	// SegmentUnset means no segment has been chosen yet.
	SegmentUnset Segment = ""
)

// ValidSegment reports whether s is one of the selectable segments.
func ValidSegment(s Segment) bool {
	switch s {
	case SegmentIndividual, SegmentHousehold, SegmentBusiness:
		return true
	}
	return false
}

// PageID identifies which page render function is active.
type PageID string

const (
	// PageConsent is the mandatory privacy-consent gate.
	PageConsent PageID = "consent"
	// PageLogin is the registration and login page.
	PageLogin PageID = "login"
	// PageSegmentHub is the user-segment selection hub and routing fallback.
	PageSegmentHub PageID = "segment_hub"
	// PageGoals is the goal-list editor.
	PageGoals PageID = "goals"
	// PageChat is the assistant chat page.
	PageChat PageID = "chat"
	// PageUpload is the bank-statement upload page.
	PageUpload PageID = "upload"
	// PageDashboard shows statement summaries and goal progress.
	PageDashboard PageID = "dashboard"
)

// StatementRow is one parsed bank-statement transaction.
type StatementRow struct {
	// Date is the transaction date as it appeared in the statement.
	Date string `json:"date"`
	// Description is the transaction description.
	Description string `json:"description"`
	// Amount is positive for income and negative for spending.
	Amount decimal.Decimal `json:"amount"`
	// Category is an optional spending category.
	Category string `json:"category"`
}

// ChatMessage is one entry in the assistant conversation.
type ChatMessage struct {
	// Role is either "user" or "assistant".
	Role string `json:"role"`
	// Text is the message body.
	Text string `json:"text"`
	// At is when the message was recorded.
	At time.Time `json:"at"`
}
