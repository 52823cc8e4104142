package ast

import "github.com/Luma-Programming-Language/Luma/internal/token"

// BasicType names a primitive type (int, float, bool, char, byte, string,
// void, or a user-defined struct/enum name not yet resolved).
type BasicType struct {
	base
	Name string
}

func (*BasicType) isNode() {}
func (*BasicType) isType() {}

// NewBasicType allocates a BasicType node.
func (a *Arena) NewBasicType(pos token.Position, name string) *BasicType {
	n := &BasicType{base: base{pos}, Name: name}
	a.track(n)
	return n
}

// PointerType is `*Pointee`.
type PointerType struct {
	base
	Pointee TypeNode
}

func (*PointerType) isType() {}

// NewPointerType allocates a PointerType node.
func (a *Arena) NewPointerType(pos token.Position, pointee TypeNode) *PointerType {
	n := &PointerType{base: base{pos}, Pointee: pointee}
	a.track(n)
	return n
}

// ArrayType is `[N]Element` (fixed-size array type).
type ArrayType struct {
	base
	Element TypeNode
	Size    int64
}

func (*ArrayType) isType() {}

// NewArrayType allocates an ArrayType node.
func (a *Arena) NewArrayType(pos token.Position, elem TypeNode, size int64) *ArrayType {
	n := &ArrayType{base: base{pos}, Element: elem, Size: size}
	a.track(n)
	return n
}

// FunctionType is the type of a function value: parameter types and a
// single return type.
type FunctionType struct {
	base
	ParamTypes []TypeNode
	ReturnType TypeNode
}

func (*FunctionType) isType() {}

// NewFunctionType allocates a FunctionType node.
func (a *Arena) NewFunctionType(pos token.Position, params []TypeNode, ret TypeNode) *FunctionType {
	n := &FunctionType{base: base{pos}, ParamTypes: params, ReturnType: ret}
	a.track(n)
	return n
}

// ResolutionType is `Mod::Type`, a module-qualified type reference.
type ResolutionType struct {
	base
	Parts []string
}

func (*ResolutionType) isType() {}

// NewResolutionType allocates a ResolutionType node.
func (a *Arena) NewResolutionType(pos token.Position, parts []string) *ResolutionType {
	n := &ResolutionType{base: base{pos}, Parts: parts}
	a.track(n)
	return n
}

// StructTypeRef is a nominal reference to a struct type, resolved by name;
// codegen looks the name up in the process-wide struct cache (§4.6).
type StructTypeRef struct {
	base
	Name string
}

func (*StructTypeRef) isType() {}

// NewStructTypeRef allocates a StructTypeRef node.
func (a *Arena) NewStructTypeRef(pos token.Position, name string) *StructTypeRef {
	n := &StructTypeRef{base: base{pos}, Name: name}
	a.track(n)
	return n
}
