package solabi

import (
	"encoding/json"
	"fmt"
)

// Entry ABI 中的一项（function / event / constructor / error ...）
type Entry struct {
	Type            string  `json:"type"`
	Name            string  `json:"name,omitempty"`
	Inputs          []Param `json:"inputs,omitempty"`
	Outputs         []Param `json:"outputs,omitempty"`
	StateMutability string  `json:"stateMutability,omitempty"`
	// Payable is the legacy flag emitted by solc < 0.6.
	Payable   bool `json:"payable,omitempty"`
	Constant  bool `json:"constant,omitempty"`
	Anonymous bool `json:"anonymous,omitempty"`
}

// Param 参数描述，tuple 类型的字段在 Components 中
type Param struct {
	Type         string  `json:"type"`
	Name         string  `json:"name,omitempty"`
	InternalType string  `json:"internalType,omitempty"`
	Components   []Param `json:"components,omitempty"`
	Indexed      bool    `json:"indexed,omitempty"`
}

const (
	TypeFunction = "function"

	MutabilityPure       = "pure"
	MutabilityView       = "view"
	MutabilityNonPayable = "nonpayable"
	MutabilityPayable    = "payable"
)

// Decode 解析 JSON 格式的 ABI 列表
func Decode(raw []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode abi: %w", err)
	}
	return entries, nil
}

// Bucket is the mutability group a function signature is listed under.
type Bucket int

const (
	BucketPure Bucket = iota
	BucketView
	BucketPayable
	BucketOther
)

// Buckets lists every bucket in document order.
var Buckets = [...]Bucket{BucketPure, BucketView, BucketPayable, BucketOther}

func (b Bucket) String() string {
	switch b {
	case BucketPure:
		return "pure"
	case BucketView:
		return "view"
	case BucketPayable:
		return "payable"
	default:
		return "other"
	}
}

// Title is the section label used in the generated interface.
func (b Bucket) Title() string {
	switch b {
	case BucketPure:
		return "Pure"
	case BucketView:
		return "View"
	case BucketPayable:
		return "Payable"
	default:
		return "Other"
	}
}
