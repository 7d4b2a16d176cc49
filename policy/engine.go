// Package policy evaluates whether customer-record actions may run.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Decisions returned by the policy.
const (
	DecisionAllow               = "allow"
	DecisionRequireConfirmation = "require_confirmation"
	DecisionBlock               = "block"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.account_policy.decision"),
		rego.Module("account_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the account policy for one extracted action.
// Input keys: action, customer_id, confirmed.
// Returns one of the Decision constants.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default; an empty result means it didn't load.
		return DecisionBlock, nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return DecisionBlock, nil
}

// DefaultPolicy gates mutations behind an explicit confirmation and blocks
// everything it does not recognize. Reads are always allowed.
const DefaultPolicy = `
package account_policy

default decision = "block"

decision = "allow" {
	input.action == "get_details"
}

decision = "allow" {
	mutation_actions[input.action]
	input.confirmed == true
}

decision = "require_confirmation" {
	mutation_actions[input.action]
	not input.confirmed == true
}

mutation_actions = {"update_address", "update_email", "update_phone", "register"}
`
