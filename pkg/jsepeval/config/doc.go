/*
Package config loads jsepeval settings from YAML or JSON.

# Overview

Config wraps a map[string]any and provides typed accessors that return a
default when a key is missing or has the wrong type. EvaluatorSettings is
the typed view of the "evaluator" section:

	evaluator:
	  empty_result: true
	  metrics: true
	  tracing: false
	  disabled_node_types: [CallExpression]
	  disabled_unary_operators: ["++", "--"]
	  disabled_binary_operators: ["**"]

# File Loading

	cfg, err := config.FromFile("jsepeval.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	settings := config.Evaluator(cfg)

Pass the settings to jsepeval.FromSettings to obtain evaluator options.
*/
package config
