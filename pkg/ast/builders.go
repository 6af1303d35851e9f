package ast

import "math/big"

// Builder helpers below exist for tests: they build small hand-rolled
// trees without a real parser, mirroring how the teacher's own test suite
// constructs ASTs with one-word constructors instead of literal struct
// composites. Positions are left zero-valued; nothing in this module's
// tests inspects Pos().

func Int(n int64) *IntegerNode { return NewIntegerNode(Position{}, big.NewInt(n)) }

func Str(s string) *StringNode { return NewStringNode(Position{}, s) }

func Sym(s string) *SymbolNode { return NewSymbolNode(Position{}, s) }

func True() *TrueNode   { return NewTrueNode(Position{}) }
func False() *FalseNode { return NewFalseNode(Position{}) }
func Nil() *NilNode     { return NewNilNode(Position{}) }
func Self() *SelfNode   { return NewSelfNode(Position{}) }

func LVarW(name string, value Expression) *LocalVariableWriteNode {
	return NewLocalVariableWriteNode(Position{}, name, value)
}

func LVarR(name string) *LocalVariableReadNode {
	return NewLocalVariableReadNode(Position{}, name)
}

func IVarW(name string, value Expression) *InstanceVariableWriteNode {
	return NewInstanceVariableWriteNode(Position{}, name, value)
}

func IVarR(name string) *InstanceVariableReadNode {
	return NewInstanceVariableReadNode(Position{}, name)
}

func ConstR(name string) *ConstantReadNode { return NewConstantReadNode(Position{}, name) }

func ConstPath(parent Expression, name string) *ConstantPathNode {
	return NewConstantPathNode(Position{}, parent, name)
}

func Call(receiver Expression, name string, args ...Expression) *CallNode {
	return NewCallNode(Position{}, receiver, name, args)
}

func Arr(elements ...Expression) *ArrayNode { return NewArrayNode(Position{}, elements) }

func Assoc(key, value Expression) *AssocNode { return NewAssocNode(Position{}, key, value) }

func Hash(entries ...*AssocNode) *HashNode { return NewHashNode(Position{}, entries) }

func Interp(parts ...Expression) *InterpolatedStringNode {
	return NewInterpolatedStringNode(Position{}, parts)
}

func Stmts(body ...Statement) *StatementsNode { return NewStatementsNode(Position{}, body) }

func If(pred Expression, then *StatementsNode, els *ElseNode) *IfNode {
	return NewIfNode(Position{}, pred, then, els)
}

func Else(body *StatementsNode) *ElseNode { return NewElseNode(Position{}, body) }

func Return(arg Expression) *ReturnNode { return NewReturnNode(Position{}, arg) }

func MultiWrite(value Expression, targets ...MultiWriteTarget) *MultiWriteNode {
	return NewMultiWriteNode(Position{}, targets, value)
}

func Required(name string) *RequiredParameterNode { return NewRequiredParameterNode(Position{}, name) }

func Optional(name string, def Expression) *OptionalParameterNode {
	return NewOptionalParameterNode(Position{}, name, def)
}

func Keyword(name string, required bool, def Expression) *KeywordParameterNode {
	return NewKeywordParameterNode(Position{}, name, required, def)
}

func Rest(name string) *RestParameterNode { return NewRestParameterNode(Position{}, name) }

func Params(requireds ...*RequiredParameterNode) *ParametersNode {
	p := NewParametersNode(Position{})
	p.Requireds = requireds
	return p
}

func Def(name string, receiver Expression, params *ParametersNode, body *StatementsNode) *DefNode {
	return NewDefNode(Position{}, name, receiver, params, body)
}

func Class(name string, superclass Expression, body *StatementsNode) *ClassNode {
	return NewClassNode(Position{}, name, superclass, body)
}

func Module(name string, body *StatementsNode) *ModuleNode {
	return NewModuleNode(Position{}, name, body)
}

func SingletonClass(expr Expression, body *StatementsNode) *SingletonClassNode {
	return NewSingletonClassNode(Position{}, expr, body)
}

func Program(body *StatementsNode) *ProgramNode { return NewProgramNode(Position{}, body) }
