// Package normalisers extracts structured content from raw document
// formats. frontmatter handles Jekyll-style posts with a leading YAML
// metadata block.
package normalisers
