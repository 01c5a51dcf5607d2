package parser

// Node is the base interface for all AST nodes
type Node interface {
	Position() Position
}

// Expr represents an expression node
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node
type Stmt interface {
	Node
	stmtNode()
}

// NumberLit is a numeric literal
type NumberLit struct {
	Pos   Position
	Value float64
}

func (e *NumberLit) Position() Position { return e.Pos }
func (e *NumberLit) exprNode()          {}

// StringLit is a string literal
type StringLit struct {
	Pos   Position
	Value string
}

func (e *StringLit) Position() Position { return e.Pos }
func (e *StringLit) exprNode()          {}

// BoolLit is true or false
type BoolLit struct {
	Pos   Position
	Value bool
}

func (e *BoolLit) Position() Position { return e.Pos }
func (e *BoolLit) exprNode()          {}

// NullLit is null
type NullLit struct {
	Pos Position
}

func (e *NullLit) Position() Position { return e.Pos }
func (e *NullLit) exprNode()          {}

// IdentifierExpr represents a variable reference
type IdentifierExpr struct {
	Pos  Position
	Name string
}

func (e *IdentifierExpr) Position() Position { return e.Pos }
func (e *IdentifierExpr) exprNode()          {}

// UnaryExpr represents a unary operation
type UnaryExpr struct {
	Pos      Position
	Operator TokenType // TOKEN_MINUS, TOKEN_NOT
	Operand  Expr
}

func (e *UnaryExpr) Position() Position { return e.Pos }
func (e *UnaryExpr) exprNode()          {}

// BinaryExpr represents a binary operation
type BinaryExpr struct {
	Pos      Position
	Left     Expr
	Operator TokenType
	Right    Expr
}

func (e *BinaryExpr) Position() Position { return e.Pos }
func (e *BinaryExpr) exprNode()          {}

// AssignExpr represents assignment: target = value.
// Compound assignments arrive here already desugared.
type AssignExpr struct {
	Pos    Position
	Target Expr // IdentifierExpr, PropertyExpr or IndexExpr
	Value  Expr
}

func (e *AssignExpr) Position() Position { return e.Pos }
func (e *AssignExpr) exprNode()          {}

// PropertyExpr represents property access: expr.property
type PropertyExpr struct {
	Pos      Position
	Expr     Expr
	Property string
}

func (e *PropertyExpr) Position() Position { return e.Pos }
func (e *PropertyExpr) exprNode()          {}

// IndexExpr represents indexing: expr[index]
type IndexExpr struct {
	Pos   Position
	Expr  Expr
	Index Expr
}

func (e *IndexExpr) Position() Position { return e.Pos }
func (e *IndexExpr) exprNode()          {}

// CallExpr represents a call: callee(args)
type CallExpr struct {
	Pos    Position
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) Position() Position { return e.Pos }
func (e *CallExpr) exprNode()          {}

// ObjectExpr represents an object literal: {key: value, ...}
type ObjectExpr struct {
	Pos    Position
	Keys   []string
	Values []Expr
}

func (e *ObjectExpr) Position() Position { return e.Pos }
func (e *ObjectExpr) exprNode()          {}

// ArrayExpr represents an array literal: [a, b, ...]
type ArrayExpr struct {
	Pos      Position
	Elements []Expr
}

func (e *ArrayExpr) Position() Position { return e.Pos }
func (e *ArrayExpr) exprNode()          {}

// FunctionExpr is an anonymous function: function (a, b) { ... }
type FunctionExpr struct {
	Pos    Position
	Params []string
	Body   []Stmt
}

func (e *FunctionExpr) Position() Position { return e.Pos }
func (e *FunctionExpr) exprNode()          {}

// Statement AST nodes

// ExprStmt represents an expression used as a statement
type ExprStmt struct {
	Pos  Position
	Expr Expr
}

func (s *ExprStmt) Position() Position { return s.Pos }
func (s *ExprStmt) stmtNode()          {}

// DeclStmt represents let/const declarations. Target is checked by the
// evaluator, so `let a.b = 1` parses and fails at run time.
type DeclStmt struct {
	Pos      Position
	Constant bool
	Target   Expr
	Value    Expr
}

func (s *DeclStmt) Position() Position { return s.Pos }
func (s *DeclStmt) stmtNode()          {}

// FunctionStmt represents a named function definition
type FunctionStmt struct {
	Pos    Position
	Name   string
	Params []string
	Body   []Stmt
}

func (s *FunctionStmt) Position() Position { return s.Pos }
func (s *FunctionStmt) stmtNode()          {}

// BlockStmt represents { ... }; it opens a new scope frame
type BlockStmt struct {
	Pos  Position
	Body []Stmt
}

func (s *BlockStmt) Position() Position { return s.Pos }
func (s *BlockStmt) stmtNode()          {}

// IfStmt represents if/else. Then and Else are blocks or single statements.
type IfStmt struct {
	Pos       Position
	Condition Expr
	Then      Stmt
	Else      Stmt // Can be nil
}

func (s *IfStmt) Position() Position { return s.Pos }
func (s *IfStmt) stmtNode()          {}

// WhileStmt represents while loops. Post is set when the loop came from a
// C-style for and runs after every iteration, including ones cut short by continue.
type WhileStmt struct {
	Pos       Position
	Condition Expr
	Body      Stmt
	Post      Stmt // Can be nil
}

func (s *WhileStmt) Position() Position { return s.Pos }
func (s *WhileStmt) stmtNode()          {}

// BreakStmt represents break statement
type BreakStmt struct {
	Pos Position
}

func (s *BreakStmt) Position() Position { return s.Pos }
func (s *BreakStmt) stmtNode()          {}

// ContinueStmt represents continue statement
type ContinueStmt struct {
	Pos Position
}

func (s *ContinueStmt) Position() Position { return s.Pos }
func (s *ContinueStmt) stmtNode()          {}

// ReturnStmt represents return statement
type ReturnStmt struct {
	Pos   Position
	Value Expr // Can be nil (returns null)
}

func (s *ReturnStmt) Position() Position { return s.Pos }
func (s *ReturnStmt) stmtNode()          {}
