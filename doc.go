// Package nmri implements a floating-point calculator with variables,
// percentages, and common math functions.
//
// Expressions are evaluated in three stages: the lexer turns a line of text
// into tokens, resolving constants and variables to numeric literals as it
// goes; the shunting-yard converter reorders the tokens into postfix form;
// and the postfix evaluator reduces them against a value stack. A State
// carries the variable store, the ans and memory registers, and the logging
// and warning sinks, so several calculators can coexist in one process.
//
// Percentage literals are context sensitive: "100 - 20%" subtracts twenty
// percent of the left operand, while "100 * 20%" multiplies by the fraction
// 0.2. See the operator table in EvalPostfix's documentation.
package nmri
