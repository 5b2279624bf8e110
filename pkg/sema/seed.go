package sema

import (
	"nodelang.dev/nodec/pkg/ast"
	"nodelang.dev/nodec/pkg/symtab"
	"nodelang.dev/nodec/internal/utils"
)

// seed runs Pass 1 (spec.md §4.3): walk every DeclareNode, rejecting
// duplicate node names; within each, compute each function's parameter
// list (rejecting duplicate parameter names) and canonical return type,
// then insert a FunctionEntry, rejecting duplicate function names
// within the same node.
func seed(program *ast.Program) (*symtab.Table, error) {
	table := symtab.New()

	for _, node := range program.Nodes {
		if table.Nodes.Has(node.Name) {
			return nil, fail(DuplicateNode, "node %q declared more than once", node.Name)
		}

		entry := &symtab.NodeEntry{
			Name:      node.Name,
			DependsOn: node.DependsOn,
			Functions: utils.NewOrderedMap[string, *symtab.FunctionEntry](),
		}

		for _, fn := range node.Functions {
			if entry.Functions.Has(fn.Name) {
				return nil, fail(DuplicateFunction, "function %q declared more than once in node %q", fn.Name, node.Name)
			}

			seenParam := map[string]bool{}
			for _, p := range fn.Params {
				if seenParam[p.Name] {
					return nil, fail(DuplicateParameter, "parameter %q declared more than once in function %q", p.Name, fn.Name)
				}
				seenParam[p.Name] = true
			}

			locals := utils.NewOrderedMap[string, symtab.Local]()
			for _, p := range fn.Params {
				locals.Set(p.Name, symtab.Local{Name: p.Name, Type: p.Type, IsParam: true})
			}

			entry.Functions.Set(fn.Name, &symtab.FunctionEntry{
				Node:   node.Name,
				Name:   fn.Name,
				Return: fn.Return,
				Params: fn.Params,
				Locals: locals,
				Body:   fn.Body,
			})
		}

		table.Nodes.Set(node.Name, entry)
	}

	return table, nil
}
