// Package treeviz renders the stem/loop tree of a parsed structure as a
// Graphviz node-link diagram. Stems appear as white boxes, loops as grey
// ellipses, with edges following containment. It backs the tree CLI
// command for debugging nesting.
package treeviz
