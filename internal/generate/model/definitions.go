// Package model holds the JSON representation of formula definition files.
package model

import "encoding/json"

// Bundle is the content of one definition file.
//
//	{
//	  "package": "tariff",
//	  "formulas": [{
//	    "name": "premium",
//	    "description": "Monthly premium.",
//	    "parameters": [{"name": "base", "type": "Decimal"}],
//	    "expression": {"function": "ROUND", "args": [...]}
//	  }]
//	}
type Bundle struct {
	Package  string              `json:"package,omitempty"`
	Formulas []FormulaDefinition `json:"formulas"`
}

type FormulaDefinition struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Parameters  []ParameterDefinition `json:"parameters,omitempty"`
	// Expression is the call tree, see fl.ParseNode.
	Expression json.RawMessage `json:"expression"`
}

type ParameterDefinition struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}
