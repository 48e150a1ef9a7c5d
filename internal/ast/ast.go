package ast

import (
	"bytes"
	"strings"

	"madola/internal/token"
)

// The base Node interface
type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: a version declaration followed by statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer

	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}

	return out.String()
}

// VersionStatement pins the language version a program was written for.
type VersionStatement struct {
	Token   token.Token // the token.AT token
	Version string
}

func (vs *VersionStatement) statementNode()       {}
func (vs *VersionStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *VersionStatement) String() string       { return "@version " + vs.Version }

type AssignmentStatement struct {
	Token token.Token // the identifier token
	Name  *Identifier
	Value Expression
}

func (as *AssignmentStatement) statementNode()       {}
func (as *AssignmentStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignmentStatement) String() string {
	return as.Name.String() + " := " + as.Value.String() + ";"
}

type ArrayAssignmentStatement struct {
	Token token.Token // the identifier token
	Name  *Identifier
	Index Expression
	Value Expression
}

func (aa *ArrayAssignmentStatement) statementNode()       {}
func (aa *ArrayAssignmentStatement) TokenLiteral() string { return aa.Token.Literal }
func (aa *ArrayAssignmentStatement) String() string {
	return aa.Name.String() + "[" + aa.Index.String() + "] := " + aa.Value.String() + ";"
}

type PrintStatement struct {
	Token token.Token // the token.PRINT token
	Value Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PrintStatement) String() string       { return "print(" + ps.Value.String() + ");" }

type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String() + ";"
	}
	return ""
}

type FunctionDeclaration struct {
	Token      token.Token // the token.FUNCTION token
	Name       *Identifier
	Parameters []*Identifier
	Body       *BlockStatement
}

func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDeclaration) String() string {
	params := make([]string, len(fd.Parameters))
	for i, p := range fd.Parameters {
		params[i] = p.String()
	}
	return "fn " + fd.Name.String() + "(" + strings.Join(params, ", ") + ") " + fd.Body.String()
}

// PiecewiseCase is one arm of a piecewise declaration; a nil Condition is
// the otherwise arm.
type PiecewiseCase struct {
	Condition Expression
	Result    Expression
}

func (pc *PiecewiseCase) String() string {
	if pc.Condition == nil {
		return "otherwise: " + pc.Result.String() + ";"
	}
	return "case (" + pc.Condition.String() + "): " + pc.Result.String() + ";"
}

type PiecewiseFunctionDeclaration struct {
	Token      token.Token // the token.PIECEWISE token
	Name       *Identifier
	Parameters []*Identifier
	Cases      []*PiecewiseCase
}

func (pd *PiecewiseFunctionDeclaration) statementNode()       {}
func (pd *PiecewiseFunctionDeclaration) TokenLiteral() string { return pd.Token.Literal }
func (pd *PiecewiseFunctionDeclaration) String() string {
	var out bytes.Buffer

	params := make([]string, len(pd.Parameters))
	for i, p := range pd.Parameters {
		params[i] = p.String()
	}
	out.WriteString("piecewise " + pd.Name.String() + "(" + strings.Join(params, ", ") + ") { ")
	for _, c := range pd.Cases {
		out.WriteString(c.String())
		out.WriteString(" ")
	}
	out.WriteString("}")

	return out.String()
}

type ReturnStatement struct {
	Token       token.Token // the token.RETURN token
	ReturnValue Expression  // nil means return 0.0
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string {
	if rs.ReturnValue != nil {
		return "return " + rs.ReturnValue.String() + ";"
	}
	return "return;"
}

type BreakStatement struct {
	Token token.Token // the token.BREAK token
}

func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BreakStatement) String() string       { return "break;" }

type ForStatement struct {
	Token token.Token // the token.FOR token
	Var   *Identifier
	From  Expression
	To    Expression
	Body  *BlockStatement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) String() string {
	return "for (" + fs.Var.String() + " := " + fs.From.String() + "..." + fs.To.String() + ") " + fs.Body.String()
}

type WhileStatement struct {
	Token     token.Token // the token.WHILE token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

type IfStatement struct {
	Token       token.Token // the token.IF token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement // nil when there is no else
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer

	out.WriteString("if (" + is.Condition.String() + ") " + is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else " + is.Alternative.String())
	}

	return out.String()
}

type ImportStatement struct {
	Token  token.Token // the token.IMPORT token
	Module *Identifier
	Alias  *Identifier // nil when not renamed
}

func (is *ImportStatement) statementNode()       {}
func (is *ImportStatement) TokenLiteral() string { return is.Token.Literal }
func (is *ImportStatement) String() string {
	if is.Alias != nil {
		return "import " + is.Module.String() + " as " + is.Alias.String() + ";"
	}
	return "import " + is.Module.String() + ";"
}

// CommentStatement survives parsing because document renderers emit it;
// evaluation skips it.
type CommentStatement struct {
	Token token.Token // the token.COMMENT token
	Text  string
}

func (cs *CommentStatement) statementNode()       {}
func (cs *CommentStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CommentStatement) String() string       { return "// " + cs.Text }

type SkipStatement struct {
	Token token.Token // the token.SKIP token
}

func (ss *SkipStatement) statementNode()       {}
func (ss *SkipStatement) TokenLiteral() string { return ss.Token.Literal }
func (ss *SkipStatement) String() string       { return "skip;" }

type HeadingStatement struct {
	Token token.Token // the token.HEADING token
	Level int
	Text  string
}

func (hs *HeadingStatement) statementNode()       {}
func (hs *HeadingStatement) TokenLiteral() string { return hs.Token.Literal }
func (hs *HeadingStatement) String() string {
	return strings.Repeat("#", hs.Level) + " " + hs.Text
}

type ParagraphStatement struct {
	Token token.Token // the token.PARAGRAPH token
	Text  string
}

func (ps *ParagraphStatement) statementNode()       {}
func (ps *ParagraphStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *ParagraphStatement) String() string       { return "> " + ps.Text }

// DecoratedStatement wraps a statement with a decoration such as @compile.
// The decoration is metadata for code generators; evaluation runs the
// wrapped statement.
type DecoratedStatement struct {
	Token     token.Token // the token.AT token
	Name      string
	Args      []Expression // nil when the decoration has no argument list
	Statement Statement
}

func (ds *DecoratedStatement) statementNode()       {}
func (ds *DecoratedStatement) TokenLiteral() string { return ds.Token.Literal }
func (ds *DecoratedStatement) String() string {
	if len(ds.Args) > 0 {
		args := make([]string, len(ds.Args))
		for i, a := range ds.Args {
			args[i] = a.String()
		}
		return "@" + ds.Name + "(" + strings.Join(args, ", ") + ") " + ds.Statement.String()
	}
	return "@" + ds.Name + " " + ds.Statement.String()
}

type BlockStatement struct {
	Token      token.Token // the token.LBRACE token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer

	out.WriteString("{ ")
	for _, s := range bs.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")

	return out.String()
}

type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string       { return nl.Token.Literal }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return "\"" + sl.Value + "\"" }

type ImaginaryLiteral struct {
	Token token.Token
	Value float64 // the imaginary component
}

func (il *ImaginaryLiteral) expressionNode()      {}
func (il *ImaginaryLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *ImaginaryLiteral) String() string       { return il.Token.Literal + "i" }

// UnitLiteral is a number glued to a unit expression: 10 m, 9.81 m/s^2.
type UnitLiteral struct {
	Token token.Token // the number token
	Value float64
	Unit  string
}

func (ul *UnitLiteral) expressionNode()      {}
func (ul *UnitLiteral) TokenLiteral() string { return ul.Token.Literal }
func (ul *UnitLiteral) String() string       { return ul.Token.Literal + " " + ul.Unit }

type PrefixExpression struct {
	Token    token.Token // the prefix token, e.g. !
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + pe.Right.String() + ")"
}

type InfixExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// ArrayLiteral keeps the row/column structure of a bracket literal:
// commas separate elements within a row, semicolons separate rows.
type ArrayLiteral struct {
	Token token.Token // the token.LBRACKET token
	Rows  [][]Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) String() string {
	rows := make([]string, len(al.Rows))
	for i, row := range al.Rows {
		parts := make([]string, len(row))
		for j, el := range row {
			parts[j] = el.String()
		}
		rows[i] = strings.Join(parts, ", ")
	}
	return "[" + strings.Join(rows, "; ") + "]"
}

type IndexExpression struct {
	Token token.Token // the token.LBRACKET token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) String() string {
	return "(" + ie.Left.String() + "[" + ie.Index.String() + "])"
}

type CallExpression struct {
	Token     token.Token // the token.LPAREN token
	Function  *Identifier
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Arguments))
	for i, a := range ce.Arguments {
		args[i] = a.String()
	}
	return ce.Function.String() + "(" + strings.Join(args, ", ") + ")"
}

// MethodCallExpression covers namespace calls (math.sin(x), b.span(2)) and
// matrix methods (a.det()).
type MethodCallExpression struct {
	Token     token.Token // the token.PERIOD token
	Receiver  Expression
	Method    string
	Arguments []Expression
}

func (mc *MethodCallExpression) expressionNode()      {}
func (mc *MethodCallExpression) TokenLiteral() string { return mc.Token.Literal }
func (mc *MethodCallExpression) String() string {
	args := make([]string, len(mc.Arguments))
	for i, a := range mc.Arguments {
		args[i] = a.String()
	}
	return mc.Receiver.String() + "." + mc.Method + "(" + strings.Join(args, ", ") + ")"
}
