package typeinfer

import (
	"fmt"
	"math/big"
	"strings"
)

// Type is the closed algebra of inferred types. Every variant renders
// itself with ToTS, the external contract exercised by golden tests.
type Type interface {
	ToTS() string
}

// AnyType is the fallback for anything this layer cannot resolve.
type AnyType struct{}

func (AnyType) ToTS() string { return "any" }

type NilType struct{}

func (NilType) ToTS() string { return "nil" }

type BoolType struct{ Value bool }

func (b BoolType) ToTS() string {
	if b.Value {
		return "true"
	}
	return "false"
}

type IntegerLiteralType struct{ Value *big.Int }

func (i IntegerLiteralType) ToTS() string {
	if i.Value == nil {
		return "Integer"
	}
	return i.Value.String()
}

type IntegerType struct{}

func (IntegerType) ToTS() string { return "Integer" }

type StringLiteralType struct{ Value string }

func (s StringLiteralType) ToTS() string { return fmt.Sprintf("%q", s.Value) }

type StringType struct{}

func (StringType) ToTS() string { return "String" }

type SymbolLiteralType struct{ Value string }

func (s SymbolLiteralType) ToTS() string { return ":" + s.Value }

type ArrayType struct{ Element Type }

func (a ArrayType) ToTS() string {
	elem := Type(AnyType{})
	if a.Element != nil {
		elem = a.Element
	}
	return "[" + elem.ToTS() + "]"
}

// HashKeyKind distinguishes symbol-shorthand keys (`foo:`) from quoted
// string keys (`"bar" =>`) for rendering purposes.
type HashKeyKind int

const (
	HashKeySymbol HashKeyKind = iota
	HashKeyString
)

// HashEntry pairs one rendered key with its value's inferred type, in
// source order.
type HashEntry struct {
	KeyKind HashKeyKind
	KeyName string
	Value   Type
}

func (e HashEntry) ToTS() string {
	value := Type(AnyType{})
	if e.Value != nil {
		value = e.Value
	}
	if e.KeyKind == HashKeyString {
		return fmt.Sprintf("%q => %s", e.KeyName, value.ToTS())
	}
	return fmt.Sprintf("%s: %s", e.KeyName, value.ToTS())
}

type HashType struct{ Entries []HashEntry }

func (h HashType) ToTS() string {
	if len(h.Entries) == 0 {
		return "{}"
	}
	parts := make([]string, len(h.Entries))
	for i, e := range h.Entries {
		parts[i] = e.ToTS()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// SingletonType is the type of a class/module object itself.
type SingletonType struct{ Name string }

func (s SingletonType) ToTS() string { return "singleton(" + s.Name + ")" }

// InstanceType is the type of an instance of a known class.
type InstanceType struct{ Name string }

func (i InstanceType) ToTS() string { return i.Name }

// UnionType is a deduplicated, ordered set of alternative types.
type UnionType struct{ Members []Type }

func (u UnionType) ToTS() string {
	if len(u.Members) == 0 {
		return "any"
	}
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.ToTS()
	}
	return strings.Join(parts, " | ")
}

func isUnknownType(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(AnyType)
	return ok
}
