// Package ast declares the node shapes this module's visitor consumes.
//
// The concrete parser that produces these nodes from source text is an
// external collaborator (see SPEC_FULL.md "Consumed"); this package only
// fixes the shape of the contract so the visitor can be written against it
// and exercised with hand-built trees in tests.
package ast

import "math/big"

// NodeType tags every concrete node with its syntactic kind. Synthetic
// vertices created for literal collections reuse these tags verbatim as
// their vertex name (e.g. an array literal vertex is named "ArrayNode").
type NodeType string

const (
	NodeProgram               NodeType = "ProgramNode"
	NodeStatements            NodeType = "StatementsNode"
	NodeModule                NodeType = "ModuleNode"
	NodeClass                 NodeType = "ClassNode"
	NodeSingletonClass        NodeType = "SingletonClassNode"
	NodeDef                   NodeType = "DefNode"
	NodeParameters            NodeType = "ParametersNode"
	NodeRequiredParameter     NodeType = "RequiredParameterNode"
	NodeOptionalParameter     NodeType = "OptionalParameterNode"
	NodeKeywordParameter      NodeType = "KeywordParameterNode"
	NodeRestParameter         NodeType = "RestParameterNode"
	NodeKeywordRestParameter  NodeType = "KeywordRestParameterNode"
	NodeBlockParameter        NodeType = "BlockParameterNode"
	NodeCall                  NodeType = "CallNode"
	NodeLocalVariableWrite    NodeType = "LocalVariableWriteNode"
	NodeLocalVariableRead     NodeType = "LocalVariableReadNode"
	NodeInstanceVariableWrite NodeType = "InstanceVariableWriteNode"
	NodeInstanceVariableRead  NodeType = "InstanceVariableReadNode"
	NodeConstantRead          NodeType = "ConstantReadNode"
	NodeConstantPath          NodeType = "ConstantPathNode"
	NodeInteger               NodeType = "IntegerNode"
	NodeString                NodeType = "StringNode"
	NodeInterpolatedString    NodeType = "InterpolatedStringNode"
	NodeSymbol                NodeType = "SymbolNode"
	NodeTrue                  NodeType = "TrueNode"
	NodeFalse                 NodeType = "FalseNode"
	NodeNil                   NodeType = "NilNode"
	NodeSelf                  NodeType = "SelfNode"
	NodeArray                 NodeType = "ArrayNode"
	NodeHash                  NodeType = "HashNode"
	NodeAssoc                 NodeType = "AssocNode"
	NodeIf                    NodeType = "IfNode"
	NodeElse                  NodeType = "ElseNode"
	NodeReturn                NodeType = "ReturnNode"
	NodeMultiWrite            NodeType = "MultiWriteNode"
)

// Position is a 1-indexed source location, recorded on fatal structural
// errors and available to any caller that wants to render a location.
type Position struct {
	Line   int
	Column int
}

// Node is implemented by every concrete syntax node. Identity is the
// pointer itself: two distinct *FooNode values are always distinct nodes,
// which is what NodeRegistry and the visitor's re-entrant lookups rely on.
type Node interface {
	NodeType() NodeType
	Pos() Position
	isNode()
}

type nodeImpl struct {
	Type     NodeType
	Position Position
}

func newNodeImpl(kind NodeType, pos Position) nodeImpl {
	return nodeImpl{Type: kind, Position: pos}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Pos() Position      { return n.Position }
func (nodeImpl) isNode()              {}

// Statement is any node that can appear in a statements body.
type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Expression is any node that produces a value.
type Expression interface {
	Statement
	expressionNode()
}

type expressionMarker struct {
	statementMarker
}

func (expressionMarker) expressionNode() {}

// MultiWriteTarget is accepted on the left side of a multiple assignment.
type MultiWriteTarget interface {
	Node
	multiWriteTargetNode()
}

type multiWriteTargetMarker struct{}

func (multiWriteTargetMarker) multiWriteTargetNode() {}

// StatementsNode sequences a body of statements (a method body, a class
// body, or the program root).
type StatementsNode struct {
	nodeImpl
	statementMarker

	Body []Statement
}

func NewStatementsNode(pos Position, body []Statement) *StatementsNode {
	return &StatementsNode{nodeImpl: newNodeImpl(NodeStatements, pos), Body: body}
}

// ProgramNode is the root of one parsed file.
type ProgramNode struct {
	nodeImpl

	Statements *StatementsNode
}

func NewProgramNode(pos Position, statements *StatementsNode) *ProgramNode {
	return &ProgramNode{nodeImpl: newNodeImpl(NodeProgram, pos), Statements: statements}
}

// ModuleNode and ClassNode

type ModuleNode struct {
	nodeImpl
	statementMarker

	Name       string
	Statements *StatementsNode
}

func NewModuleNode(pos Position, name string, statements *StatementsNode) *ModuleNode {
	return &ModuleNode{nodeImpl: newNodeImpl(NodeModule, pos), Name: name, Statements: statements}
}

type ClassNode struct {
	nodeImpl
	statementMarker

	Name       string
	Superclass Expression // ConstantReadNode/ConstantPathNode or nil
	Statements *StatementsNode
}

func NewClassNode(pos Position, name string, superclass Expression, statements *StatementsNode) *ClassNode {
	return &ClassNode{nodeImpl: newNodeImpl(NodeClass, pos), Name: name, Superclass: superclass, Statements: statements}
}

// SingletonClassNode is `class << self; ...; end`.
type SingletonClassNode struct {
	nodeImpl
	statementMarker

	Expression Expression // the singleton-class expression, usually SelfNode
	Statements *StatementsNode
}

func NewSingletonClassNode(pos Position, expr Expression, statements *StatementsNode) *SingletonClassNode {
	return &SingletonClassNode{nodeImpl: newNodeImpl(NodeSingletonClass, pos), Expression: expr, Statements: statements}
}

// ParameterKind closes the enumeration from spec.md §4.2's Arg row.
type ParameterKind string

const (
	ParamRequired        ParameterKind = "required"
	ParamOptional        ParameterKind = "optional"
	ParamKeywordRequired ParameterKind = "keyword_required"
	ParamKeywordOptional ParameterKind = "keyword_optional"
	ParamRest            ParameterKind = "rest"
	ParamBlock           ParameterKind = "block"
)

type RequiredParameterNode struct {
	nodeImpl
	Name string
}

func NewRequiredParameterNode(pos Position, name string) *RequiredParameterNode {
	return &RequiredParameterNode{nodeImpl: newNodeImpl(NodeRequiredParameter, pos), Name: name}
}

type OptionalParameterNode struct {
	nodeImpl
	Name    string
	Default Expression
}

func NewOptionalParameterNode(pos Position, name string, def Expression) *OptionalParameterNode {
	return &OptionalParameterNode{nodeImpl: newNodeImpl(NodeOptionalParameter, pos), Name: name, Default: def}
}

type KeywordParameterNode struct {
	nodeImpl
	Name     string
	Required bool
	Default  Expression // only set when Required is false
}

func NewKeywordParameterNode(pos Position, name string, required bool, def Expression) *KeywordParameterNode {
	return &KeywordParameterNode{nodeImpl: newNodeImpl(NodeKeywordParameter, pos), Name: name, Required: required, Default: def}
}

type RestParameterNode struct {
	nodeImpl
	Name string // may be empty for an anonymous splat
}

func NewRestParameterNode(pos Position, name string) *RestParameterNode {
	return &RestParameterNode{nodeImpl: newNodeImpl(NodeRestParameter, pos), Name: name}
}

type KeywordRestParameterNode struct {
	nodeImpl
	Name string
}

func NewKeywordRestParameterNode(pos Position, name string) *KeywordRestParameterNode {
	return &KeywordRestParameterNode{nodeImpl: newNodeImpl(NodeKeywordRestParameter, pos), Name: name}
}

type BlockParameterNode struct {
	nodeImpl
	Name string
}

func NewBlockParameterNode(pos Position, name string) *BlockParameterNode {
	return &BlockParameterNode{nodeImpl: newNodeImpl(NodeBlockParameter, pos), Name: name}
}

// ParametersNode groups a def's parameter list in source order within each
// kind, matching Ruby's fixed parameter ordering.
type ParametersNode struct {
	nodeImpl

	Requireds   []*RequiredParameterNode
	Optionals   []*OptionalParameterNode
	Rest        *RestParameterNode
	Keywords    []*KeywordParameterNode
	KeywordRest *KeywordRestParameterNode
	Block       *BlockParameterNode
}

func NewParametersNode(pos Position) *ParametersNode {
	return &ParametersNode{nodeImpl: newNodeImpl(NodeParameters, pos)}
}

// DefNode defines a method, instance or singleton depending on Receiver.
type DefNode struct {
	nodeImpl
	statementMarker

	Name       string
	Receiver   Expression // non-nil for `def self.foo` / `def Obj.foo`
	Parameters *ParametersNode
	Statements *StatementsNode
}

func NewDefNode(pos Position, name string, receiver Expression, params *ParametersNode, statements *StatementsNode) *DefNode {
	return &DefNode{nodeImpl: newNodeImpl(NodeDef, pos), Name: name, Receiver: receiver, Parameters: params, Statements: statements}
}

// CallNode covers both binary-operator sends and ordinary method calls.
// Receiver is nil for an implicit-self call (`puts 1`, `attr_reader :foo`).
type CallNode struct {
	nodeImpl
	expressionMarker

	Receiver  Expression
	Name      string
	Arguments []Expression
}

func NewCallNode(pos Position, receiver Expression, name string, args []Expression) *CallNode {
	return &CallNode{nodeImpl: newNodeImpl(NodeCall, pos), Receiver: receiver, Name: name, Arguments: args}
}

// Local variables

type LocalVariableWriteNode struct {
	nodeImpl
	expressionMarker
	multiWriteTargetMarker

	Name  string
	Value Expression
}

func NewLocalVariableWriteNode(pos Position, name string, value Expression) *LocalVariableWriteNode {
	return &LocalVariableWriteNode{nodeImpl: newNodeImpl(NodeLocalVariableWrite, pos), Name: name, Value: value}
}

type LocalVariableReadNode struct {
	nodeImpl
	expressionMarker

	Name string
}

func NewLocalVariableReadNode(pos Position, name string) *LocalVariableReadNode {
	return &LocalVariableReadNode{nodeImpl: newNodeImpl(NodeLocalVariableRead, pos), Name: name}
}

// Instance variables

type InstanceVariableWriteNode struct {
	nodeImpl
	expressionMarker

	Name  string
	Value Expression
}

func NewInstanceVariableWriteNode(pos Position, name string, value Expression) *InstanceVariableWriteNode {
	return &InstanceVariableWriteNode{nodeImpl: newNodeImpl(NodeInstanceVariableWrite, pos), Name: name, Value: value}
}

type InstanceVariableReadNode struct {
	nodeImpl
	expressionMarker

	Name string
}

func NewInstanceVariableReadNode(pos Position, name string) *InstanceVariableReadNode {
	return &InstanceVariableReadNode{nodeImpl: newNodeImpl(NodeInstanceVariableRead, pos), Name: name}
}

// Constants

type ConstantReadNode struct {
	nodeImpl
	expressionMarker

	Name string
}

func NewConstantReadNode(pos Position, name string) *ConstantReadNode {
	return &ConstantReadNode{nodeImpl: newNodeImpl(NodeConstantRead, pos), Name: name}
}

// ConstantPathNode is `Parent::Name`; Parent is nil for a top-level-anchored
// path (`::Name`).
type ConstantPathNode struct {
	nodeImpl
	expressionMarker

	Parent Expression
	Name   string
}

func NewConstantPathNode(pos Position, parent Expression, name string) *ConstantPathNode {
	return &ConstantPathNode{nodeImpl: newNodeImpl(NodeConstantPath, pos), Parent: parent, Name: name}
}

// Literals

type IntegerNode struct {
	nodeImpl
	expressionMarker

	Value *big.Int
}

func NewIntegerNode(pos Position, value *big.Int) *IntegerNode {
	return &IntegerNode{nodeImpl: newNodeImpl(NodeInteger, pos), Value: value}
}

type StringNode struct {
	nodeImpl
	expressionMarker

	Value string
}

func NewStringNode(pos Position, value string) *StringNode {
	return &StringNode{nodeImpl: newNodeImpl(NodeString, pos), Value: value}
}

// InterpolatedStringNode concatenates literal fragments (StringNode) and
// embedded-expression nodes in source order.
type InterpolatedStringNode struct {
	nodeImpl
	expressionMarker

	Parts []Expression
}

func NewInterpolatedStringNode(pos Position, parts []Expression) *InterpolatedStringNode {
	return &InterpolatedStringNode{nodeImpl: newNodeImpl(NodeInterpolatedString, pos), Parts: parts}
}

type SymbolNode struct {
	nodeImpl
	expressionMarker

	Value string
}

func NewSymbolNode(pos Position, value string) *SymbolNode {
	return &SymbolNode{nodeImpl: newNodeImpl(NodeSymbol, pos), Value: value}
}

type TrueNode struct {
	nodeImpl
	expressionMarker
}

func NewTrueNode(pos Position) *TrueNode { return &TrueNode{nodeImpl: newNodeImpl(NodeTrue, pos)} }

type FalseNode struct {
	nodeImpl
	expressionMarker
}

func NewFalseNode(pos Position) *FalseNode { return &FalseNode{nodeImpl: newNodeImpl(NodeFalse, pos)} }

type NilNode struct {
	nodeImpl
	expressionMarker
}

func NewNilNode(pos Position) *NilNode { return &NilNode{nodeImpl: newNodeImpl(NodeNil, pos)} }

type SelfNode struct {
	nodeImpl
	expressionMarker
}

func NewSelfNode(pos Position) *SelfNode { return &SelfNode{nodeImpl: newNodeImpl(NodeSelf, pos)} }

// ArrayNode is a literal array; its vertex name is the bare NodeType tag
// ("ArrayNode") per spec.md §4.3.
type ArrayNode struct {
	nodeImpl
	expressionMarker

	Elements []Expression
}

func NewArrayNode(pos Position, elements []Expression) *ArrayNode {
	return &ArrayNode{nodeImpl: newNodeImpl(NodeArray, pos), Elements: elements}
}

// AssocNode is one `key => value` or `key:` entry of a HashNode.
type AssocNode struct {
	nodeImpl

	Key   Expression // SymbolNode or StringNode
	Value Expression
}

func NewAssocNode(pos Position, key, value Expression) *AssocNode {
	return &AssocNode{nodeImpl: newNodeImpl(NodeAssoc, pos), Key: key, Value: value}
}

type HashNode struct {
	nodeImpl
	expressionMarker

	Elements []*AssocNode
}

func NewHashNode(pos Position, elements []*AssocNode) *HashNode {
	return &HashNode{nodeImpl: newNodeImpl(NodeHash, pos), Elements: elements}
}

// ElseNode is the tail `else` branch of an IfNode; absent means nil.
type ElseNode struct {
	nodeImpl
	statementMarker

	Statements *StatementsNode
}

func NewElseNode(pos Position, statements *StatementsNode) *ElseNode {
	return &ElseNode{nodeImpl: newNodeImpl(NodeElse, pos), Statements: statements}
}

type IfNode struct {
	nodeImpl
	expressionMarker

	Predicate  Expression
	Statements *StatementsNode
	Subsequent *ElseNode // nil when there is no else branch
}

func NewIfNode(pos Position, predicate Expression, statements *StatementsNode, subsequent *ElseNode) *IfNode {
	return &IfNode{nodeImpl: newNodeImpl(NodeIf, pos), Predicate: predicate, Statements: statements, Subsequent: subsequent}
}

// ReturnNode carries zero or one return value; bare `return` has Argument == nil.
type ReturnNode struct {
	nodeImpl
	statementMarker

	Argument Expression
}

func NewReturnNode(pos Position, argument Expression) *ReturnNode {
	return &ReturnNode{nodeImpl: newNodeImpl(NodeReturn, pos), Argument: argument}
}

// MultiWriteNode is `a, b = 1, 2`. Value is either an ArrayNode built from
// the parsed right-hand sides, or a single Expression when the source RHS
// was one expression (unsupported destructuring, per spec.md §4.3).
type MultiWriteNode struct {
	nodeImpl
	expressionMarker

	Targets []MultiWriteTarget
	Value   Expression
}

func NewMultiWriteNode(pos Position, targets []MultiWriteTarget, value Expression) *MultiWriteNode {
	return &MultiWriteNode{nodeImpl: newNodeImpl(NodeMultiWrite, pos), Targets: targets, Value: value}
}
