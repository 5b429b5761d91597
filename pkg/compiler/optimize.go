package compiler

import "strings"

// EliminateDeadFunctions removes function children of the program node that
// can never execute. Roots are main, every exported function, and anything
// called from a global initializer; everything transitively called from a
// root survives. The program node is rewritten in place.
func EliminateDeadFunctions(program *Node) {
	if program == nil || program.Kind != NodeProgram {
		return
	}

	funcs := make(map[string]*Node)
	for _, decl := range program.Children {
		if fn := functionOf(decl); fn != nil {
			funcs[fn.Value] = fn
		}
	}

	reachable := make(map[string]bool)
	var worklist []string
	addReachable := func(name string) {
		if !reachable[name] {
			reachable[name] = true
			worklist = append(worklist, name)
		}
	}

	if _, ok := funcs["main"]; ok {
		addReachable("main")
	}
	for _, decl := range program.Children {
		// Exported functions are entry points for other units.
		if decl.Kind == NodeExport {
			if fn := functionOf(decl); fn != nil {
				addReachable(fn.Value)
			}
		}
		// Global initializers may call functions.
		if decl.Kind == NodeVariableDeclaration && len(decl.Children) > 1 {
			for name := range findCalls(decl.Child(1)) {
				addReachable(name)
			}
		}
	}

	for len(worklist) > 0 {
		curr := worklist[0]
		worklist = worklist[1:]

		fn, exists := funcs[curr]
		if !exists {
			// Builtin (printf) or undefined; nothing to scan.
			continue
		}
		for name := range findCalls(fn) {
			addReachable(name)
		}
	}

	var kept []*Node
	for _, decl := range program.Children {
		if fn := functionOf(decl); fn != nil && !reachable[fn.Value] {
			continue
		}
		kept = append(kept, decl)
	}
	program.Children = kept
}

// functionOf unwraps export nodes and returns the function node, or nil.
func functionOf(decl *Node) *Node {
	if decl == nil {
		return nil
	}
	if decl.Kind == NodeFunction {
		return decl
	}
	if decl.Kind == NodeExport && decl.Child(0) != nil && decl.Child(0).Kind == NodeFunction {
		return decl.Child(0)
	}
	return nil
}

// findCalls collects the names of all functions called in a subtree.
func findCalls(n *Node) map[string]bool {
	calls := make(map[string]bool)
	Visit(n, func(node *Node) {
		if node.Kind == NodeFunctionCall {
			calls[node.Value] = true
		}
	})
	return calls
}

// Peephole runs a single cheap pass over emitted assembly text, dropping
// push/pop pairs that target the same register back to back.
func Peephole(asm string) string {
	lines := strings.Split(asm, "\n")
	var out []string
	for i := 0; i < len(lines); i++ {
		if i+1 < len(lines) {
			cur := strings.TrimSpace(lines[i])
			next := strings.TrimSpace(lines[i+1])
			if strings.HasPrefix(cur, "push ") && strings.HasPrefix(next, "pop ") &&
				strings.TrimPrefix(cur, "push ") == strings.TrimPrefix(next, "pop ") {
				i++
				continue
			}
		}
		out = append(out, lines[i])
	}
	return strings.Join(out, "\n")
}
