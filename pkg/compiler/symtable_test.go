package compiler

import "testing"

func TestScopeDiscipline(t *testing.T) {
	syms := NewSymbolTable()

	syms.EnterScope()
	syms.AddVariable("x", "i32", 4, false, 0)
	syms.EnterScope()
	syms.AddVariable("y", "i64", 8, false, 0)

	if syms.VariableCount() != 2 {
		t.Fatalf("VariableCount() = %d, want 2", syms.VariableCount())
	}

	syms.ExitScope()
	if _, ok := syms.FindVariable("y"); ok {
		t.Errorf("y still visible after its scope exited")
	}
	if _, ok := syms.FindVariable("x"); !ok {
		t.Errorf("x vanished with the inner scope")
	}

	syms.ExitScope()
	if syms.ScopeLevel() != 0 || syms.VariableCount() != 0 {
		t.Errorf("level %d, %d variables after matching exits, want 0 and 0",
			syms.ScopeLevel(), syms.VariableCount())
	}
}

// Variables popped by ExitScope are selected by their scope level, not by
// their size.
func TestExitScopePopsByLevel(t *testing.T) {
	syms := NewSymbolTable()

	syms.EnterScope()
	// A 2-byte variable whose size happens to collide with a scope level.
	syms.AddVariable("a", "i16", 2, false, 0)
	syms.EnterScope()
	syms.AddVariable("b", "i16", 2, false, 0)
	syms.ExitScope()

	if _, ok := syms.FindVariable("a"); !ok {
		t.Errorf("a was popped with the inner scope")
	}
	if _, ok := syms.FindVariable("b"); ok {
		t.Errorf("b survived its scope")
	}
}

func TestShadowingLastWins(t *testing.T) {
	syms := NewSymbolTable()

	syms.EnterScope()
	syms.AddVariable("x", "i32", 4, false, 0)
	syms.EnterScope()
	syms.AddVariable("x", "i64", 8, false, 0)

	v, ok := syms.FindVariable("x")
	if !ok || v.Type != "i64" {
		t.Errorf("lookup found %+v, want the inner i64 x", v)
	}

	syms.ExitScope()
	v, ok = syms.FindVariable("x")
	if !ok || v.Type != "i32" {
		t.Errorf("lookup found %+v after exit, want the outer i32 x", v)
	}
}

func TestStackOffsets(t *testing.T) {
	syms := NewSymbolTable()
	syms.EnterScope()
	syms.ResetFrame()

	p0 := syms.AddVariable("a", "i64", 8, true, 0)
	p1 := syms.AddVariable("b", "i64", 8, true, 1)
	if p0.StackOffset != 16 || p1.StackOffset != 24 {
		t.Errorf("param offsets = %d, %d, want 16, 24", p0.StackOffset, p1.StackOffset)
	}

	l0 := syms.AddVariable("x", "i64", 8, false, 0)
	l1 := syms.AddVariable("y", "i32", 4, false, 0)
	if l0.StackOffset != -8 || l1.StackOffset != -12 {
		t.Errorf("local offsets = %d, %d, want -8, -12", l0.StackOffset, l1.StackOffset)
	}

	if !p0.IsParameter || l0.IsParameter {
		t.Errorf("parameter flags wrong: %+v %+v", p0, l0)
	}
}

func TestFunctions(t *testing.T) {
	syms := NewSymbolTable()

	syms.AddFunction("main", "i32")
	syms.AddFunction("helper", "void")

	main, ok := syms.FindFunction("main")
	if !ok || !main.IsMain {
		t.Errorf("main = %+v", main)
	}
	helper, ok := syms.FindFunction("helper")
	if !ok || helper.IsMain || helper.ReturnType != "void" {
		t.Errorf("helper = %+v", helper)
	}
	if _, ok := syms.FindFunction("absent"); ok {
		t.Errorf("found a function that was never added")
	}
}

func TestStructLayouts(t *testing.T) {
	syms := NewSymbolTable()
	syms.DefineStruct(&StructInfo{
		Name: "P",
		Fields: []FieldInfo{
			{Name: "x", Type: "i32", Offset: 0, Size: 4},
			{Name: "y", Type: "i32", Offset: 4, Size: 4},
		},
		Size: 8,
	})

	def, ok := syms.Struct("P")
	if !ok || def.Size != 8 {
		t.Fatalf("struct P = %+v", def)
	}
	y, ok := def.Field("y")
	if !ok || y.Offset != 4 {
		t.Errorf("field y = %+v", y)
	}
	if _, ok := def.Field("z"); ok {
		t.Errorf("found a field that does not exist")
	}
}

func TestEnumConstants(t *testing.T) {
	syms := NewSymbolTable()
	syms.DefineEnumConstant("RED", 0)
	syms.DefineEnumConstant("GREEN", 5)

	if v, ok := syms.EnumConstant("GREEN"); !ok || v != 5 {
		t.Errorf("GREEN = %d, %v", v, ok)
	}
	if _, ok := syms.EnumConstant("BLUE"); ok {
		t.Errorf("found an enum constant that was never defined")
	}
}

func TestTypeSizes(t *testing.T) {
	tests := []struct {
		typ  string
		size int
	}{
		{"i8", 1}, {"u8", 1}, {"bool", 1},
		{"i16", 2}, {"u16", 2},
		{"i32", 4}, {"u32", 4}, {"f32", 4},
		{"i64", 8}, {"u64", 8}, {"f64", 8},
		{"i32*", 8}, {"struct P*", 8},
		{"void", 8}, {"mystery", 8},
	}
	for _, tt := range tests {
		if got := TypeSize(tt.typ); got != tt.size {
			t.Errorf("TypeSize(%q) = %d, want %d", tt.typ, got, tt.size)
		}
	}

	if !IsSignedType("i32") || IsSignedType("u32") || !IsSignedType("f64") {
		t.Errorf("signedness helpers wrong")
	}
	if !IsFloatingType("f32") || IsFloatingType("i32") {
		t.Errorf("floatness helpers wrong")
	}
	if TypeSuffix("i8") != "b" || TypeSuffix("i16") != "w" || TypeSuffix("i32") != "l" || TypeSuffix("i64") != "q" {
		t.Errorf("suffix helpers wrong")
	}
}
