package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unparse converts AST statements back to canonical source code.
// Parsing the output yields an equivalent tree.
func Unparse(stmts []Stmt) string {
	return strings.Join(UnparseProgram(stmts), "\n")
}

// UnparseProgram converts AST statements back to source code lines
func UnparseProgram(stmts []Stmt) []string {
	if len(stmts) == 0 {
		return []string{}
	}

	var lines []string
	for _, stmt := range stmts {
		lines = append(lines, unparseStmt(stmt, 0))
	}
	return lines
}

// UnparseExpr converts a single expression to source code
func UnparseExpr(expr Expr) string {
	return unparseExpr(expr, PREC_LOWEST, 0)
}

// UnparseFunction renders a function's parameter list and body the way
// an anonymous function literal is written
func UnparseFunction(params []string, body []Stmt) string {
	return unparseFunction("", params, body, 0)
}

// unparseStmt converts a statement to source code
func unparseStmt(stmt Stmt, indent int) string {
	indentStr := strings.Repeat("  ", indent)

	switch s := stmt.(type) {
	case *ExprStmt:
		text := unparseExpr(s.Expr, PREC_LOWEST, indent)
		if strings.HasPrefix(text, "{") {
			// would read back as a block
			text = "(" + text + ")"
		}
		return indentStr + text + ";"

	case *DeclStmt:
		kw := "let"
		if s.Constant {
			kw = "const"
		}
		return indentStr + kw + " " + unparseExpr(s.Target, PREC_UNARY, indent) +
			" = " + unparseExpr(s.Value, PREC_LOWEST, indent) + ";"

	case *FunctionStmt:
		return indentStr + unparseFunction(s.Name, s.Params, s.Body, indent)

	case *BlockStmt:
		if loop, ok := forLoop(s); ok {
			return indentStr + unparseFor(s.Body[0], loop, indent)
		}
		return indentStr + unparseBlock(s.Body, indent)

	case *ReturnStmt:
		if s.Value == nil {
			return indentStr + "return;"
		}
		return indentStr + "return " + unparseExpr(s.Value, PREC_LOWEST, indent) + ";"

	case *BreakStmt:
		return indentStr + "break;"

	case *ContinueStmt:
		return indentStr + "continue;"

	case *IfStmt:
		var sb strings.Builder
		sb.WriteString(indentStr + "if " + unparseExpr(s.Condition, PREC_LOWEST, indent) + " ")
		sb.WriteString(unparseBranch(s.Then, indent))
		if s.Else != nil {
			sb.WriteString(" else ")
			if elseIf, ok := s.Else.(*IfStmt); ok {
				sb.WriteString(strings.TrimLeft(unparseStmt(elseIf, indent), " "))
			} else {
				sb.WriteString(unparseBranch(s.Else, indent))
			}
		}
		return sb.String()

	case *WhileStmt:
		if s.Post != nil {
			return indentStr + unparseFor(nil, s, indent)
		}
		return indentStr + "while " + unparseExpr(s.Condition, PREC_LOWEST, indent) + " " +
			unparseBranch(s.Body, indent)

	default:
		return indentStr + fmt.Sprintf("<unknown statement: %T>", stmt)
	}
}

// unparseBranch renders an if/while body; single statements are wrapped in a block
func unparseBranch(stmt Stmt, indent int) string {
	if block, ok := stmt.(*BlockStmt); ok {
		return unparseBlock(block.Body, indent)
	}
	return unparseBlock([]Stmt{stmt}, indent)
}

// forLoop recognizes the block a for statement desugars to
func forLoop(block *BlockStmt) (*WhileStmt, bool) {
	if len(block.Body) != 2 {
		return nil, false
	}
	loop, ok := block.Body[1].(*WhileStmt)
	if !ok || loop.Post == nil {
		return nil, false
	}
	switch block.Body[0].(type) {
	case *DeclStmt, *ExprStmt:
		return loop, true
	}
	return nil, false
}

func unparseFor(init Stmt, loop *WhileStmt, indent int) string {
	header := "for "
	if init != nil {
		header += strings.TrimSuffix(unparseStmt(init, 0), ";")
	}
	header += "; " + unparseExpr(loop.Condition, PREC_LOWEST, indent) + "; "
	header += strings.TrimSuffix(unparseStmt(loop.Post, 0), ";")
	return header + " " + unparseBranch(loop.Body, indent)
}

func unparseBlock(body []Stmt, indent int) string {
	if len(body) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, stmt := range body {
		sb.WriteString(unparseStmt(stmt, indent+1) + "\n")
	}
	sb.WriteString(strings.Repeat("  ", indent) + "}")
	return sb.String()
}

func unparseFunction(name string, params []string, body []Stmt, indent int) string {
	head := "function"
	if name != "" {
		head += " " + name
	}
	return head + "(" + strings.Join(params, ", ") + ") " + unparseBlock(body, indent)
}

// unparseExpr converts an expression to source code
func unparseExpr(expr Expr, parentPrecedence int, indent int) string {
	switch e := expr.(type) {
	case *NumberLit:
		return unparseNumber(e.Value)

	case *StringLit:
		return QuoteString(e.Value)

	case *BoolLit:
		if e.Value {
			return "true"
		}
		return "false"

	case *NullLit:
		return "null"

	case *IdentifierExpr:
		return e.Name

	case *UnaryExpr:
		return e.Operator.Symbol() + unparseExpr(e.Operand, PREC_UNARY, indent)

	case *BinaryExpr:
		return unparseBinaryExpr(e, parentPrecedence, indent)

	case *AssignExpr:
		result := unparseExpr(e.Target, PREC_ASSIGN+1, indent) + " = " + unparseExpr(e.Value, PREC_ASSIGN, indent)
		if PREC_ASSIGN < parentPrecedence {
			return "(" + result + ")"
		}
		return result

	case *PropertyExpr:
		return unparseExpr(e.Expr, PREC_POSTFIX, indent) + "." + e.Property

	case *IndexExpr:
		return unparseExpr(e.Expr, PREC_POSTFIX, indent) + "[" + unparseExpr(e.Index, PREC_LOWEST, indent) + "]"

	case *CallExpr:
		return unparseExpr(e.Callee, PREC_POSTFIX, indent) + "(" + unparseArgs(e.Args, indent) + ")"

	case *ArrayExpr:
		return "[" + unparseArgs(e.Elements, indent) + "]"

	case *ObjectExpr:
		var pairs []string
		for i, key := range e.Keys {
			k := key
			if !isIdentifierName(key) {
				k = QuoteString(key)
			}
			pairs = append(pairs, k+": "+unparseExpr(e.Values[i], PREC_LOWEST, indent))
		}
		return "{" + strings.Join(pairs, ", ") + "}"

	case *FunctionExpr:
		result := unparseFunction("", e.Params, e.Body, indent)
		if parentPrecedence >= PREC_POSTFIX {
			return "(" + result + ")"
		}
		return result

	default:
		return fmt.Sprintf("<unknown expr: %T>", expr)
	}
}

// unparseBinaryExpr handles binary expressions with proper precedence
func unparseBinaryExpr(e *BinaryExpr, parentPrecedence int, indent int) string {
	prec := binaryPrecedence[e.Operator]
	leftPrec, rightPrec := prec, prec+1
	if e.Operator == TOKEN_POWER {
		leftPrec, rightPrec = prec+1, prec
	}
	result := unparseExpr(e.Left, leftPrec, indent) + " " + e.Operator.Symbol() + " " + unparseExpr(e.Right, rightPrec, indent)

	if prec < parentPrecedence {
		return "(" + result + ")"
	}
	return result
}

// unparseArgs converts argument expressions to a comma-separated string
func unparseArgs(args []Expr, indent int) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, unparseExpr(arg, PREC_LOWEST, indent))
	}
	return strings.Join(parts, ", ")
}

func unparseNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "(1 / 0)"
	case math.IsInf(v, -1):
		return "(-1 / 0)"
	case math.IsNaN(v):
		return "(0 / 0)"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// QuoteString renders s as a string literal the lexer reads back unchanged
func QuoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if code, ok := unescapes[c]; ok {
			sb.WriteByte('\\')
			sb.WriteByte(code)
			continue
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
	return sb.String()
}

func isIdentifierName(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return LookupKeyword(s) == TOKEN_IDENTIFIER
}
