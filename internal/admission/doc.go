// Package admission decides whether a control request may be applied to the
// FTP node.
//
// A policy is an ordered list of CEL rules; the first rule whose condition
// holds decides, otherwise the fallback applies:
//
//	policy := admission.Policy{
//	    Rules: []admission.Rule{
//	        {Condition: "request.port < 1024", Decision: admission.Deny},
//	        {Condition: "request.home_dir.startsWith('/srv/ftp/')", Decision: admission.Allow},
//	    },
//	    Fallback: admission.Deny,
//	}
//	admitter, err := admission.NewAdmitter(policy, logger)
//	result := admitter.Admit(ctx, req)
//
// Conditions see request.action, request.address, request.port,
// request.username and request.home_dir. Rules that fail to evaluate are
// logged and skipped.
package admission
