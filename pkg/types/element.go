// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ElementKind tags the variant held by an Element.
type ElementKind string

const (
	ElementText  ElementKind = "text"
	ElementTable ElementKind = "table"
	ElementImage ElementKind = "image"
)

// ImageRef relates a locally held image to its eventual public reference.
// Path points at the extracted bytes on disk; URL is set once the asset has
// been re-hosted. Page and Index are 1-based positions within the source
// document; Caption carries backend-provided alt text for page pipelines.
type ImageRef struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
	Page    int    `json:"page,omitempty" yaml:"page,omitempty"`
	Index   int    `json:"index,omitempty" yaml:"index,omitempty"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// Element is the normalized extracted-element sum type. Every backend maps
// its own result shape into Elements before Markdown assembly, so assemblers
// never see backend-specific structures. Exactly one of Text, Rows, or Image
// is meaningful, selected by Kind.
//
// For tables, the first row is treated as the header when rendered. Column
// counts are not enforced; ragged input renders raggedly.
type Element struct {
	Kind  ElementKind `json:"kind" yaml:"kind"`
	Text  string      `json:"text,omitempty" yaml:"text,omitempty"`
	Rows  [][]string  `json:"rows,omitempty" yaml:"rows,omitempty"`
	Image ImageRef    `json:"image,omitempty" yaml:"image,omitempty"`
}

// TextElement builds a text variant.
func TextElement(s string) Element {
	return Element{Kind: ElementText, Text: s}
}

// TableElement builds a table variant.
func TableElement(rows [][]string) Element {
	return Element{Kind: ElementTable, Rows: rows}
}

// ImageElement builds an image variant.
func ImageElement(ref ImageRef) Element {
	return Element{Kind: ElementImage, Image: ref}
}
