// Package cel provides a CEL (Common Expression Language) evaluator for
// control request admission.
//
// Expressions see the incoming request as the map variable "request":
//
//	evaluator, err := cel.NewEvaluator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vars := map[string]interface{}{
//	    "request": map[string]interface{}{
//	        "action": "start",
//	        "port":   2121,
//	    },
//	}
//
//	allowed, err := evaluator.EvaluateBool(ctx, "request.port >= 1024", vars)
//
// Compiled programs are cached per expression.
package cel
