package ast

// Expression is a tagged variant over every expression form the parser can
// produce. Dispatch on the concrete type, not on embedded behavior: this
// keeps the tree inspectable and trivially serializable (spec.md §9).
type Expression interface {
	expressionNode()
	Pos() Position
}

// ---- Literals ----

type IntLiteral struct {
	Value int64
	Pos_  Position
}

func (*IntLiteral) expressionNode() {}
func (e *IntLiteral) Pos() Position { return e.Pos_ }

type FloatLiteral struct {
	Value float64
	Pos_  Position
}

func (*FloatLiteral) expressionNode() {}
func (e *FloatLiteral) Pos() Position { return e.Pos_ }

type StringLiteral struct {
	Value string
	Pos_  Position
}

func (*StringLiteral) expressionNode() {}
func (e *StringLiteral) Pos() Position { return e.Pos_ }

type BoolLiteral struct {
	Value bool
	Pos_  Position
}

func (*BoolLiteral) expressionNode() {}
func (e *BoolLiteral) Pos() Position { return e.Pos_ }

type SelfExpr struct {
	Pos_ Position
}

func (*SelfExpr) expressionNode() {}
func (e *SelfExpr) Pos() Position { return e.Pos_ }

// ---- Names ----

// BareName is an unqualified identifier used as an expression: either a
// local variable reference or an implicit-self method call.
type BareName struct {
	Name string
	Pos_ Position
}

func (*BareName) expressionNode() {}
func (e *BareName) Pos() Position { return e.Pos_ }

type IVarRef struct {
	Name string
	Pos_ Position
}

func (*IVarRef) expressionNode() {}
func (e *IVarRef) Pos() Position { return e.Pos_ }

// ConstRef is a (possibly namespaced, possibly generic) constant reference.
type ConstRef struct {
	Name ConstName
	Pos_ Position
}

func (*ConstRef) expressionNode() {}
func (e *ConstRef) Pos() Position { return e.Pos_ }

// ---- Assignment forms ----

type LVarAssign struct {
	Name  string
	Rhs   Expression
	IsVar bool
	Pos_  Position
}

func (*LVarAssign) expressionNode() {}
func (e *LVarAssign) Pos() Position { return e.Pos_ }

type IVarAssign struct {
	Name  string
	Rhs   Expression
	IsVar bool
	Pos_  Position
}

func (*IVarAssign) expressionNode() {}
func (e *IVarAssign) Pos() Position { return e.Pos_ }

type ConstAssign struct {
	Names []string
	Rhs   Expression
	Pos_  Position
}

func (*ConstAssign) expressionNode() {}
func (e *ConstAssign) Pos() Position { return e.Pos_ }

// ---- Control flow ----

type IfExpr struct {
	CondExpr  Expression
	ThenExprs []Expression
	ElseExprs []Expression
	Pos_      Position
}

func (*IfExpr) expressionNode() {}
func (e *IfExpr) Pos() Position { return e.Pos_ }

type WhileExpr struct {
	CondExpr  Expression
	BodyExprs []Expression
	Pos_      Position
}

func (*WhileExpr) expressionNode() {}
func (e *WhileExpr) Pos() Position { return e.Pos_ }

type BreakExpr struct {
	Pos_ Position
}

func (*BreakExpr) expressionNode() {}
func (e *BreakExpr) Pos() Position { return e.Pos_ }

type ReturnExpr struct {
	Arg  Expression // may be nil
	Pos_ Position
}

func (*ReturnExpr) expressionNode() {}
func (e *ReturnExpr) Pos() Position { return e.Pos_ }

// ---- Logical operators ----

type LogicalNot struct {
	Expr Expression
	Pos_ Position
}

func (*LogicalNot) expressionNode() {}
func (e *LogicalNot) Pos() Position { return e.Pos_ }

type LogicalAnd struct {
	Left, Right Expression
	Pos_        Position
}

func (*LogicalAnd) expressionNode() {}
func (e *LogicalAnd) Pos() Position { return e.Pos_ }

type LogicalOr struct {
	Left, Right Expression
	Pos_        Position
}

func (*LogicalOr) expressionNode() {}
func (e *LogicalOr) Pos() Position { return e.Pos_ }

// ---- Calls & lambdas ----

// MethodCall covers both explicit-receiver calls and bare calls with an
// implicit self receiver (Receiver == nil).
type MethodCall struct {
	Receiver              Expression // nil => implicit self
	MethodName             string
	Args                   []Expression
	TypeArgs               []Typ
	Block                  *LambdaExpr // trailing block literal, if any
	Primary                bool
	MayHaveParenWithoutArgs bool
	Pos_                   Position
}

func (*MethodCall) expressionNode() {}
func (e *MethodCall) Pos() Position { return e.Pos_ }

type LambdaExpr struct {
	Params []Param
	Exprs  []Expression
	IsFn   bool
	Pos_   Position
}

func (*LambdaExpr) expressionNode() {}
func (e *LambdaExpr) Pos() Position { return e.Pos_ }

// ArrayLiteral is `[e0, ..., en]`.
type ArrayLiteral struct {
	Exprs []Expression
	Pos_  Position
}

func (*ArrayLiteral) expressionNode() {}
func (e *ArrayLiteral) Pos() Position { return e.Pos_ }
