/*
Package rules evaluates named sets of jsep expressions.

A rule file is YAML or JSON with a rules list. Each expression is a jsep
tree, written inline or as a JSON string. An optional evaluator section
configures the evaluator used for the set:

	evaluator:
	  disabled_node_types: [CallExpression]
	rules:
	  - name: adult
	    description: at least 18 years old
	    expression:
	      type: BinaryExpression
	      operator: ">="
	      left: {type: Identifier, name: age}
	      right: {type: Literal, value: 18}
	  - name: anyone

A rule without an expression is always satisfied.

	set, err := rules.Load("rules.yaml")
	matched, err := set.Match(ctx, map[string]any{"age": 21})
	// matched: [adult anyone]
*/
package rules
