package parser

import "strconv"

// parseIntLiteral and parseFloatLiteral convert already-validated lexer
// output (the lexer itself records a diagnostics error on malformed
// numeric literals) back into Go numeric values for the AST.
func parseIntLiteral(text string) int64 {
	v, _ := strconv.ParseInt(text, 10, 64)
	return v
}

func parseFloatLiteral(text string) float64 {
	v, _ := strconv.ParseFloat(text, 64)
	return v
}
