// Package syntax parses Nix expressions into a lossless syntax tree.
//
// The tree has two layers. The green layer is immutable and
// position-free: nodes and tokens carry only their kind, text and
// length, so identical subtrees can be shared and the source text can
// always be reconstructed byte for byte, whitespace and comments
// included. The Node view layers absolute offsets and parent links on
// top of it, derived on demand.
//
// Parsing is total: every input yields a tree plus a list of
// ParseError values, and malformed spans are confined to error nodes
// so the rest of the input still parses.
package syntax
