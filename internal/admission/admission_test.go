package admission_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-ftp/internal/admission"
)

func startRequest(port int, home string) admission.Request {
	return admission.Request{
		Action:   "start",
		Address:  "127.0.0.1",
		Port:     port,
		Username: "uploader",
		HomeDir:  home,
	}
}

func TestAllowListEmptyAdmitsEverything(t *testing.T) {
	t.Parallel()
	a, err := admission.NewAdmitter(admission.AllowList(nil), zap.NewNop())
	require.NoError(t, err)

	res := a.Admit(context.Background(), startRequest(21, "/tmp"))
	assert.True(t, res.Allowed())
	assert.Equal(t, "fallback", res.PathTaken)
}

func TestAllowList(t *testing.T) {
	t.Parallel()
	a, err := admission.NewAdmitter(admission.AllowList([]string{
		"request.port >= 1024",
		"request.username == 'root'",
	}), zap.NewNop())
	require.NoError(t, err)

	res := a.Admit(context.Background(), startRequest(2121, "/srv"))
	assert.True(t, res.Allowed())
	assert.Equal(t, "rule", res.PathTaken)
	assert.Equal(t, "matched rule 0: request.port >= 1024", res.Reasoning)

	res = a.Admit(context.Background(), startRequest(21, "/srv"))
	assert.False(t, res.Allowed())
	assert.Equal(t, "no rules matched", res.Reasoning)
}

func TestFirstMatchingRuleWins(t *testing.T) {
	t.Parallel()
	a, err := admission.NewAdmitter(admission.Policy{
		Rules: []admission.Rule{
			{Condition: "request.home_dir.startsWith('/etc')", Decision: admission.Deny},
			{Condition: "true", Decision: admission.Allow},
		},
		Fallback: admission.Deny,
	}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, a.Admit(context.Background(), startRequest(2121, "/etc/ftp")).Allowed())
	assert.True(t, a.Admit(context.Background(), startRequest(2121, "/srv/ftp")).Allowed())
}

func TestRuleEvaluationErrorIsSkipped(t *testing.T) {
	t.Parallel()
	a, err := admission.NewAdmitter(admission.Policy{
		Rules: []admission.Rule{
			{Condition: "request.port / 0 == 1", Decision: admission.Deny},
		},
		Fallback: admission.Allow,
	}, zap.NewNop())
	require.NoError(t, err)

	res := a.Admit(context.Background(), startRequest(2121, "/srv"))
	assert.True(t, res.Allowed())
	assert.Equal(t, "fallback", res.PathTaken)
}

func TestNewAdmitterRejectsInvalidPolicy(t *testing.T) {
	t.Parallel()
	cases := map[string]admission.Policy{
		"missing fallback":  {},
		"empty condition":   {Rules: []admission.Rule{{Decision: admission.Allow}}, Fallback: admission.Deny},
		"unknown decision":  {Rules: []admission.Rule{{Condition: "true", Decision: "maybe"}}, Fallback: admission.Deny},
		"syntax error":      {Rules: []admission.Rule{{Condition: "request.port >", Decision: admission.Allow}}, Fallback: admission.Deny},
		"non-boolean rule":  {Rules: []admission.Rule{{Condition: "'yes'", Decision: admission.Allow}}, Fallback: admission.Deny},
	}
	for name, policy := range cases {
		_, err := admission.NewAdmitter(policy, zap.NewNop())
		assert.Error(t, err, name)
	}
}
