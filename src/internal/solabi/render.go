package solabi

import (
	"fmt"
	"strings"
)

// needsMemory reports whether a parameter of this type needs the memory
// data location in an external function declaration.
func needsMemory(typ string) bool {
	return typ == "string" || typ == "bytes" || strings.HasSuffix(typ, "[]")
}

// RenderParam 渲染单个参数，例如 "string memory name" 或 "uint256"
func RenderParam(p Param) string {
	parts := []string{p.Type}
	if needsMemory(p.Type) {
		parts = append(parts, "memory")
	}
	if p.Name != "" {
		parts = append(parts, p.Name)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// RenderParams joins the rendered parameters with ", ".
func RenderParams(params []Param) string {
	rendered := make([]string, 0, len(params))
	for _, p := range params {
		rendered = append(rendered, RenderParam(p))
	}
	return strings.Join(rendered, ", ")
}

// mutabilityKeyword 只有 pure / view 会出现在接口声明里
func mutabilityKeyword(e Entry) string {
	switch e.StateMutability {
	case MutabilityPure, MutabilityView:
		return e.StateMutability
	default:
		return ""
	}
}

// RenderSignature renders a function entry as one tab-indented interface
// line. ok is false for entries that are not functions.
func RenderSignature(e Entry) (line string, ok bool) {
	if e.Type != TypeFunction {
		return "", false
	}

	parts := []string{
		fmt.Sprintf("function %s(%s)", e.Name, RenderParams(e.Inputs)),
		"external",
	}
	if kw := mutabilityKeyword(e); kw != "" {
		parts = append(parts, kw)
	}
	if e.Payable {
		parts = append(parts, MutabilityPayable)
	}
	if outputs := RenderParams(e.Outputs); outputs != "" {
		parts = append(parts, fmt.Sprintf("returns (%s)", outputs))
	}

	return "\t" + strings.Join(parts, " ") + ";", true
}

// Classify picks the bucket from the structured fields. Precedence is
// pure, view, payable, other.
func Classify(e Entry) Bucket {
	switch {
	case e.StateMutability == MutabilityPure:
		return BucketPure
	case e.StateMutability == MutabilityView:
		return BucketView
	case e.Payable:
		return BucketPayable
	default:
		return BucketOther
	}
}

// Signature is a rendered function line together with its bucket.
type Signature struct {
	Text   string
	Bucket Bucket
	Entry  Entry
}

// NewSignature renders and classifies e; ok is false for non-functions.
func NewSignature(e Entry) (Signature, bool) {
	text, ok := RenderSignature(e)
	if !ok {
		return Signature{}, false
	}
	return Signature{Text: text, Bucket: Classify(e), Entry: e}, true
}

// Selector returns the canonical signature and 4-byte selector.
func (s Signature) Selector() (string, string, error) {
	return Selector(s.Entry)
}
