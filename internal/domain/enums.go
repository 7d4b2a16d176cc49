// Package domain defines the core domain models for the assistant orchestrator.
package domain

import "strings"

// Category is the classification outcome that routes a query to a handler.
type Category string

const (
	CategoryBilling            Category = "BILLING"
	CategoryNetwork            Category = "NETWORK"
	CategoryService            Category = "SERVICE"
	CategoryKnowledge          Category = "KNOWLEDGE"
	CategoryCustomerManagement Category = "CUSTOMER_MANAGEMENT"
	CategoryOther              Category = "OTHER"
)

// Categories lists every routable category.
var Categories = []Category{
	CategoryBilling,
	CategoryNetwork,
	CategoryService,
	CategoryKnowledge,
	CategoryCustomerManagement,
	CategoryOther,
}

// NormalizeCategory maps free-text classifier output onto the fixed category
// set. Markers are checked in precedence order so verbose output such as
// "Category: BILLING." still resolves; anything unrecognized is OTHER.
func NormalizeCategory(raw string) Category {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "BILLING"):
		return CategoryBilling
	case strings.Contains(upper, "NETWORK"):
		return CategoryNetwork
	case strings.Contains(upper, "SERVICE"):
		return CategoryService
	case strings.Contains(upper, "KNOWLEDGE"):
		return CategoryKnowledge
	case strings.Contains(upper, "CUSTOMER"), strings.Contains(upper, "MANAGEMENT"):
		return CategoryCustomerManagement
	default:
		return CategoryOther
	}
}

// RunState represents the state of a single routing run.
// Each run walks START -> CLASSIFIED -> DISPATCHED -> RESPONDED exactly once.
type RunState string

const (
	RunStateStart      RunState = "START"
	RunStateClassified RunState = "CLASSIFIED"
	RunStateDispatched RunState = "DISPATCHED"
	RunStateResponded  RunState = "RESPONDED"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)
