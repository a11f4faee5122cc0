package iface

import (
	"fmt"
	"strings"

	"github.com/VectorBits/abi2sol/src/internal/solabi"
)

const licenseHeader = "// SPDX-License-Identifier: UNLICENSED"

// Document is one generated Solidity interface.
type Document struct {
	Name    string
	Version string

	buckets   [len(solabi.Buckets)][]string
	functions []solabi.Entry
}

func NewDocument(name, version string) *Document {
	return &Document{Name: name, Version: version}
}

// Add renders e and files it under its bucket. Non-function entries are
// ignored and reported as false.
func (d *Document) Add(e solabi.Entry) bool {
	sig, ok := solabi.NewSignature(e)
	if !ok {
		return false
	}
	d.buckets[sig.Bucket] = append(d.buckets[sig.Bucket], sig.Text)
	d.functions = append(d.functions, e)
	return true
}

// Collect builds the document for a whole ABI.
func Collect(name, version string, entries []solabi.Entry) *Document {
	doc := NewDocument(name, version)
	for _, e := range entries {
		doc.Add(e)
	}
	return doc
}

func (d *Document) Empty() bool { return len(d.functions) == 0 }

// Len is the number of function signatures.
func (d *Document) Len() int { return len(d.functions) }

// Signatures returns the rendered lines of one bucket in ABI order.
func (d *Document) Signatures(b solabi.Bucket) []string {
	return d.buckets[b]
}

// Functions returns the function entries in ABI order.
func (d *Document) Functions() []solabi.Entry {
	return d.functions
}

// Render returns the interface source, or "" for an empty document.
func (d *Document) Render() string {
	if d.Empty() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(licenseHeader + "\n")
	fmt.Fprintf(&sb, "pragma solidity %s;\n\n", d.Version)
	fmt.Fprintf(&sb, "interface %s\n{\n", d.Name)

	first := true
	for _, b := range solabi.Buckets {
		lines := d.buckets[b]
		if len(lines) == 0 {
			continue
		}
		if !first {
			sb.WriteString("\n")
		}
		first = false

		fmt.Fprintf(&sb, "\t// %s Functions\n", b.Title())
		for _, line := range lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}
