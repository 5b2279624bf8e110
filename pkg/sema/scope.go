package sema

import "nodelang.dev/nodec/internal/utils"

// markerKind tags a ScopeMarker the way source.rs's ScopeElem enum does.
type markerKind uint8

const (
	markerNode markerKind = iota
	markerFunc
	markerIf
	markerWhile
	markerElse
	markerVariable
	markerConst
	markerCallable // a Func(name) entry resolvable by a call, pushed once per declared function
)

// ScopeMarker is one entry on the scope stack.
type ScopeMarker struct {
	Kind markerKind
	Name string // populated for markerVariable/markerConst/markerCallable/markerNode/markerFunc
	Type string // populated for markerVariable/markerConst
}

// ScopeStack tracks nested lexical scopes during Pass 3. Built on
// internal/utils.Stack[T], exactly as
// _examples/its-hmny-nand2tetris/code/pkg/jack/scopes.go builds its
// ScopeTable on utils.Stack[Variable].
type ScopeStack struct {
	markers utils.Stack[ScopeMarker]
}

func newScopeStack() *ScopeStack { return &ScopeStack{} }

func (s *ScopeStack) push(m ScopeMarker) { s.markers.Push(m) }

// popTo pops markers until (and including) the first one matching kind,
// implementing "scoped lifetime" (spec.md §4.3: "push a scope marker,
// recurse, pop back to the marker").
func (s *ScopeStack) popTo(kind markerKind) {
	for s.markers.Count() > 0 {
		top, _ := s.markers.Top()
		s.markers.Pop()
		if top.Kind == kind {
			return
		}
	}
}

// hasVariableOrConst scans the ENTIRE stack (not just the current
// scope) for a Variable or Const marker named name — the strict,
// global no-shadowing rule of spec.md §4.3 Pass 3 and source.rs's
// check_semantics, which scans "the entire current stack" before
// allowing a new declaration.
func (s *ScopeStack) hasVariableOrConst(name string) bool {
	found := false
	for m := range s.markers.Iterator() {
		if (m.Kind == markerVariable || m.Kind == markerConst) && m.Name == name {
			found = true
			break
		}
	}
	return found
}

// resolveVariable finds a Variable or Const marker named name anywhere
// on the stack and returns its declared type.
func (s *ScopeStack) resolveVariable(name string) (ScopeMarker, bool) {
	var result ScopeMarker
	found := false
	for m := range s.markers.Iterator() {
		if (m.Kind == markerVariable || m.Kind == markerConst) && m.Name == name {
			result, found = m, true
			break
		}
	}
	return result, found
}

// hasCallable reports whether name resolves to a Func marker anywhere
// on the stack (the flat, cross-node function namespace — every
// function in the program is seeded as a markerCallable before any
// body is walked).
func (s *ScopeStack) hasCallable(name string) bool {
	for m := range s.markers.Iterator() {
		if m.Kind == markerCallable && m.Name == name {
			return true
		}
	}
	return false
}
