// Package syntax implements the lossless concrete syntax tree shared by all
// supported languages.
//
// The tree has two layers. Green elements are immutable, position
// independent and interned through a NodeCache, so identical subtrees share
// memory. Red elements (Node and Token) are created on demand over a green
// tree and know their absolute offset and parent. Concatenating every
// token's full text, trivia included, reproduces the source byte for byte.
package syntax
