package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// VariableInfo describes one declared variable or parameter.
type VariableInfo struct {
	Name        string
	Type        string
	StackOffset int
	Size        int
	ScopeLevel  int
	IsParameter bool
	IsGlobal    bool
}

// FunctionInfo describes one declared function.
type FunctionInfo struct {
	Name       string
	ReturnType string
	StackSize  int
	ParamCount int
	IsMain     bool
}

// FieldInfo describes one struct or union member.
type FieldInfo struct {
	Name   string
	Type   string
	Offset int
	Size   int
}

// StructInfo is the recorded layout of a struct or union declaration.
// Union members all sit at offset 0 and the union is as big as its widest
// member.
type StructInfo struct {
	Name    string
	Fields  []FieldInfo
	Size    int
	IsUnion bool
}

// Field returns the member with the given name.
func (s *StructInfo) Field(name string) (FieldInfo, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// SymbolTable tracks variables, functions, aggregate layouts, and enum
// constants for one compilation unit. Variables live in a single array;
// exiting a scope pops the entries whose scope level matches the level
// being left, and lookup walks newest-first so shadowing wins.
type SymbolTable struct {
	variables []VariableInfo
	functions []FunctionInfo
	structs   map[string]*StructInfo
	enums     map[string]int64

	stackOffset int // next local offset, moves downward
	scopeLevel  int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		structs: make(map[string]*StructInfo),
		enums:   make(map[string]int64),
	}
}

// ScopeLevel returns the current lexical depth (0 = file scope).
func (s *SymbolTable) ScopeLevel() int { return s.scopeLevel }

// VariableCount returns the number of live variable entries.
func (s *SymbolTable) VariableCount() int { return len(s.variables) }

// StackOffset returns the current local-offset cursor.
func (s *SymbolTable) StackOffset() int { return s.stackOffset }

// EnterScope opens a new lexical scope.
func (s *SymbolTable) EnterScope() {
	s.scopeLevel++
}

// ExitScope pops every variable declared at the current scope level, then
// decrements the level.
func (s *SymbolTable) ExitScope() {
	i := len(s.variables)
	for i > 0 && s.variables[i-1].ScopeLevel == s.scopeLevel {
		i--
	}
	s.variables = s.variables[:i]
	if s.scopeLevel > 0 {
		s.scopeLevel--
	}
}

// ResetFrame restarts local stack allocation for a new function frame.
func (s *SymbolTable) ResetFrame() {
	s.stackOffset = 0
}

// AddVariable registers a variable in the current scope and assigns its
// stack slot: parameters sit at positive offsets from the base pointer
// (16 + 8*index), locals at descending negative offsets.
func (s *SymbolTable) AddVariable(name, typ string, size int, isParam bool, paramIndex int) *VariableInfo {
	v := VariableInfo{
		Name:        name,
		Type:        typ,
		Size:        size,
		ScopeLevel:  s.scopeLevel,
		IsParameter: isParam,
		IsGlobal:    s.scopeLevel == 0,
	}
	if isParam {
		v.StackOffset = 16 + 8*paramIndex
	} else {
		s.stackOffset -= size
		v.StackOffset = s.stackOffset
	}
	s.variables = append(s.variables, v)
	return &s.variables[len(s.variables)-1]
}

// FindVariable returns the most recently declared variable with the given
// name, so inner declarations shadow outer ones.
func (s *SymbolTable) FindVariable(name string) (*VariableInfo, bool) {
	for i := len(s.variables) - 1; i >= 0; i-- {
		if s.variables[i].Name == name {
			return &s.variables[i], true
		}
	}
	return nil, false
}

// AddFunction registers a function.
func (s *SymbolTable) AddFunction(name, returnType string) *FunctionInfo {
	f := FunctionInfo{
		Name:       name,
		ReturnType: returnType,
		IsMain:     name == "main",
	}
	s.functions = append(s.functions, f)
	return &s.functions[len(s.functions)-1]
}

// FindFunction returns the function with the given name.
func (s *SymbolTable) FindFunction(name string) (*FunctionInfo, bool) {
	for i := range s.functions {
		if s.functions[i].Name == name {
			return &s.functions[i], true
		}
	}
	return nil, false
}

// DefineStruct records an aggregate layout.
func (s *SymbolTable) DefineStruct(def *StructInfo) {
	s.structs[def.Name] = def
}

// Struct returns the layout recorded for the given aggregate name.
func (s *SymbolTable) Struct(name string) (*StructInfo, bool) {
	def, ok := s.structs[name]
	return def, ok
}

// DefineEnumConstant records a named enum constant value.
func (s *SymbolTable) DefineEnumConstant(name string, value int64) {
	s.enums[name] = value
}

// EnumConstant returns the value of a named enum constant.
func (s *SymbolTable) EnumConstant(name string) (int64, bool) {
	v, ok := s.enums[name]
	return v, ok
}

// String returns a deterministically ordered dump of the table.
func (s *SymbolTable) String() string {
	var sb strings.Builder
	sb.WriteString("Variables:\n")
	for _, v := range s.variables {
		fmt.Fprintf(&sb, "  %-20s %-10s offset %4d  size %d  level %d\n",
			v.Name, v.Type, v.StackOffset, v.Size, v.ScopeLevel)
	}
	sb.WriteString("Functions:\n")
	for _, f := range s.functions {
		fmt.Fprintf(&sb, "  %-20s %-10s stack %d  params %d\n",
			f.Name, f.ReturnType, f.StackSize, f.ParamCount)
	}
	if len(s.structs) > 0 {
		sb.WriteString("Structs:\n")
		names := make([]string, 0, len(s.structs))
		for name := range s.structs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			def := s.structs[name]
			fmt.Fprintf(&sb, "  %s (size %d, %d fields)\n", def.Name, def.Size, len(def.Fields))
		}
	}
	return sb.String()
}
