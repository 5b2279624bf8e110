package sema

import "nodelang.dev/nodec/pkg/ast"

// DepGraph is spec.md §3's node dependency graph: node_name -> ordered
// list of dependency node names. Serialized verbatim to comp/graph.json
// by pkg/compiler.
type DepGraph map[string][]string

// buildDepGraph runs Pass 2 (spec.md §4.3): for each DeclareNode,
// insert the node name with an empty adjacency list, then append every
// dependency identifier found in its header — grounded on
// _examples/original_source/src/source.rs's add_dependencies, which
// recursively collects every Identifier leaf under a node header's
// dependency-list subtree. Our AST lowering already flattens that
// subtree into DeclareNode.DependsOn, so this pass is the direct
// transcription into the adjacency-map shape plus a duplicate check.
func buildDepGraph(program *ast.Program) (DepGraph, error) {
	graph := make(DepGraph, len(program.Nodes))

	for _, node := range program.Nodes {
		seen := map[string]bool{}
		deps := make([]string, 0, len(node.DependsOn))
		for _, dep := range node.DependsOn {
			if seen[dep] {
				return nil, fail(DuplicateDependency, "node %q lists dependency %q more than once", node.Name, dep)
			}
			seen[dep] = true
			deps = append(deps, dep)
		}
		graph[node.Name] = deps
	}

	return graph, nil
}
