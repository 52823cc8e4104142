// Package codegen lowers a typechecked *ast.Program into one LLVM IR
// module per source module, via github.com/llir/llvm, then emits object
// files and invokes the system linker.
package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

// CommonTypes is the reusable set of primitive IR types and constants,
// computed once at context initialization (§4.3) so call sites never
// recreate them.
type CommonTypes struct {
	I1, I8, I16, I32, I64 *types.IntType
	F32, F64              *types.FloatType
	Void                  *types.VoidType
	I8Ptr                 *types.PointerType

	I32Zero, I32One *constant.Int
	I64Zero, I64One *constant.Int
}

func newCommonTypes() *CommonTypes {
	return &CommonTypes{
		I1: types.I1, I8: types.I8, I16: types.I16, I32: types.I32, I64: types.I64,
		F32: types.Float, F64: types.Double,
		Void:  types.Void,
		I8Ptr: types.NewPointer(types.I8),

		I32Zero: constant.NewInt(types.I32, 0),
		I32One:  constant.NewInt(types.I32, 1),
		I64Zero: constant.NewInt(types.I64, 0),
		I64One:  constant.NewInt(types.I64, 1),
	}
}

// LLVMSymbol is the IR-level mirror of a source Symbol: a name bound to an
// IR value, its structural type, and (for pointer-valued symbols) the
// pointee element type tracked out-of-band since llir's pointers are
// opaque (§3, §9 "Pointer element types").
type LLVMSymbol struct {
	Name        string
	Value       ir.Value
	Type        types.Type
	ElementType types.Type // nil unless Type is a pointer
	IsFunction  bool
	IsPublic    bool
}

// StructInfo is the codegen's nominal record for a struct type: its IR
// layout plus per-field metadata needed by the field engine (§4.6).
type StructInfo struct {
	Name             string
	LLVMType         *types.StructType
	FieldNames       []string
	FieldTypes       []types.Type
	FieldElementType []types.Type // non-nil entries are pointer/array-element types
	FieldIsPublic    []bool
	Methods          map[string]*ir.Func
}

// FieldIndex returns the index of name within s by a linear scan of
// s.FieldNames.
func (s *StructInfo) FieldIndex(name string) (int, bool) {
	for i, n := range s.FieldNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// ModuleUnit pairs one IR module with its source module name, its local
// symbol table, and whether it is the program's entry module.
type ModuleUnit struct {
	Name       string
	Module     *ir.Module
	Symbols    map[string]*LLVMSymbol
	IsMain     bool
	SourceMod  *ast.Module
	processed  bool // Pass-3 post-order visitation marker
}

func newModuleUnit(name string, mod *ast.Module) *ModuleUnit {
	return &ModuleUnit{
		Name:      name,
		Module:    ir.NewModule(),
		Symbols:   make(map[string]*LLVMSymbol),
		SourceMod: mod,
	}
}

// Context is the codegen context: the whole-program, process-wide state
// threaded through every stage of §4.3-4.9. It supersedes the source's
// global mutable caches with owned map fields, per §9 "Global caches".
type Context struct {
	Common *CommonTypes
	Units  []*ModuleUnit
	byName map[string]*ModuleUnit

	// Process-wide caches populated once after Pass 3 (§4.4, §4.7).
	symbolCache map[string]*LLVMSymbol // "module:name" -> symbol
	structCache map[string]*StructInfo // struct name -> info
	fieldCache  map[string]*StructInfo // field name -> owning struct (when several structs share a field name, the one kept depends on map iteration order in preprocessCaches)

	// structs accumulates StructInfo as struct declarations are emitted
	// during Pass 3; preprocessCaches copies it into structCache/fieldCache.
	structs map[string]*StructInfo

	Diag *diag.Reporter

	// current is the unit currently being emitted into; expression/struct
	// codegen reads it to resolve "current module first" lookups (§4.7, §4.9).
	current *ModuleUnit
}

// NewContext initializes an empty codegen context with CommonTypes and
// empty caches, mirroring §4.3.
func NewContext(reporter *diag.Reporter) *Context {
	return &Context{
		Common:      newCommonTypes(),
		byName:      make(map[string]*ModuleUnit),
		symbolCache: make(map[string]*LLVMSymbol),
		structCache: make(map[string]*StructInfo),
		fieldCache:  make(map[string]*StructInfo),
		structs:     make(map[string]*StructInfo),
		Diag:        reporter,
	}
}

// UnitByName returns the module unit with the given source module name.
func (c *Context) UnitByName(name string) (*ModuleUnit, bool) {
	u, ok := c.byName[name]
	return u, ok
}

// CachedSymbol returns the process-wide symbol cache entry for
// "module:name", valid only after Pass 3 preprocessing has run (§4.4).
func (c *Context) CachedSymbol(module, name string) (*LLVMSymbol, bool) {
	s, ok := c.symbolCache[module+":"+name]
	return s, ok
}

// CachedStruct looks up a struct by name in the process-wide struct cache.
func (c *Context) CachedStruct(name string) (*StructInfo, bool) {
	s, ok := c.structCache[name]
	return s, ok
}

// StructOwningField returns the struct that owns a field of the given
// name, via the process-wide field cache.
func (c *Context) StructOwningField(field string) (*StructInfo, bool) {
	s, ok := c.fieldCache[field]
	return s, ok
}

// preprocessCaches populates the symbol/struct/field caches from every
// unit's local symbol table, after Pass 3 completes (§4.4, §4.6).
func (c *Context) preprocessCaches() {
	for _, u := range c.Units {
		for name, sym := range u.Symbols {
			c.symbolCache[u.Name+":"+name] = sym
		}
	}
	for name, info := range c.structs {
		c.structCache[name] = info
		for _, f := range info.FieldNames {
			c.fieldCache[f] = info
		}
	}
}
