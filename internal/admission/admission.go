package admission

import (
	"context"
	"fmt"

	"github.com/aescanero/dago-node-ftp/internal/eval/cel"
	"go.uber.org/zap"
)

// Decision is the outcome of an admission check
type Decision string

const (
	// Allow lets the control request through
	Allow Decision = "allow"

	// Deny rejects the control request
	Deny Decision = "deny"
)

// Rule pairs a CEL condition with the decision taken when it matches
type Rule struct {
	Condition string   `json:"condition"`
	Decision  Decision `json:"decision"`
}

// Policy is an ordered rule list with a fallback decision
type Policy struct {
	Rules    []Rule   `json:"rules,omitempty"`
	Fallback Decision `json:"fallback"`
}

// Request is the view of a control request exposed to rule conditions.
// Credentials other than the username are never exposed.
type Request struct {
	Action   string
	Address  string
	Port     int
	Username string
	HomeDir  string
}

// Result represents the result of an admission check
type Result struct {
	Decision  Decision `json:"decision"`
	Reasoning string   `json:"reasoning"`
	PathTaken string   `json:"path_taken"` // "rule", "fallback"
}

// Allowed reports whether the request may be applied
func (r *Result) Allowed() bool {
	return r.Decision == Allow
}

// AllowList builds a policy that admits a request when any condition holds.
// With no conditions every request is admitted.
func AllowList(conditions []string) Policy {
	if len(conditions) == 0 {
		return Policy{Fallback: Allow}
	}
	rules := make([]Rule, 0, len(conditions))
	for _, c := range conditions {
		rules = append(rules, Rule{Condition: c, Decision: Allow})
	}
	return Policy{Rules: rules, Fallback: Deny}
}

// Admitter evaluates control requests against a policy
type Admitter struct {
	celEvaluator *cel.Evaluator
	policy       Policy
	logger       *zap.Logger
}

// NewAdmitter validates the policy and compiles its conditions
func NewAdmitter(policy Policy, logger *zap.Logger) (*Admitter, error) {
	evaluator, err := cel.NewEvaluator()
	if err != nil {
		return nil, err
	}

	if err := validatePolicy(evaluator, policy); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	return &Admitter{
		celEvaluator: evaluator,
		policy:       policy,
		logger:       logger,
	}, nil
}

// validatePolicy validates the admission policy
func validatePolicy(evaluator *cel.Evaluator, policy Policy) error {
	if !validDecision(policy.Fallback) {
		return fmt.Errorf("fallback decision must be %q or %q", Allow, Deny)
	}

	for i, rule := range policy.Rules {
		if rule.Condition == "" {
			return fmt.Errorf("rule %d: condition is required", i)
		}
		if !validDecision(rule.Decision) {
			return fmt.Errorf("rule %d: decision must be %q or %q", i, Allow, Deny)
		}
		if err := evaluator.ValidateExpression(rule.Condition); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}

	return nil
}

func validDecision(d Decision) bool {
	return d == Allow || d == Deny
}

// Admit evaluates the rules in order and returns the first matching decision,
// or the fallback when no rule matches
func (a *Admitter) Admit(ctx context.Context, req Request) *Result {
	vars := prepareRequestForCEL(req)

	for i, rule := range a.policy.Rules {
		a.logger.Debug("evaluating admission rule",
			zap.Int("rule_index", i),
			zap.String("condition", rule.Condition),
		)

		matched, err := a.celEvaluator.EvaluateBool(ctx, rule.Condition, vars)
		if err != nil {
			a.logger.Warn("admission rule evaluation error",
				zap.Int("rule_index", i),
				zap.String("condition", rule.Condition),
				zap.Error(err),
			)
			// Continue to next rule on error
			continue
		}

		if matched {
			a.logger.Info("admission rule matched",
				zap.Int("rule_index", i),
				zap.String("condition", rule.Condition),
				zap.String("decision", string(rule.Decision)),
			)

			return &Result{
				Decision:  rule.Decision,
				Reasoning: fmt.Sprintf("matched rule %d: %s", i, rule.Condition),
				PathTaken: "rule",
			}
		}
	}

	a.logger.Info("no admission rule matched, using fallback",
		zap.String("fallback", string(a.policy.Fallback)),
	)

	return &Result{
		Decision:  a.policy.Fallback,
		Reasoning: "no rules matched",
		PathTaken: "fallback",
	}
}

// prepareRequestForCEL converts a request to a map for CEL evaluation
func prepareRequestForCEL(req Request) map[string]interface{} {
	return map[string]interface{}{
		cel.RequestVar: map[string]interface{}{
			"action":   req.Action,
			"address":  req.Address,
			"port":     req.Port,
			"username": req.Username,
			"home_dir": req.HomeDir,
		},
	}
}
