package artifact

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrMalformedJSON is returned for artifacts that are not valid JSON.
var ErrMalformedJSON = errors.New("malformed JSON")

// Artifact 编译产物中生成接口需要的字段
type Artifact struct {
	// HasABI is false when the document has no "abi" key at all.
	HasABI bool
	// ABI is the raw JSON of the "abi" value.
	ABI []byte
	// SourcePath is ast.absolutePath, empty when the artifact has no AST.
	SourcePath string
	// CompilerVersion comes from the metadata, e.g. "0.8.22+commit.4fc1097e".
	CompilerVersion string
}

// Parse probes a solc / Foundry / Hardhat artifact. Documents that are valid
// JSON but not objects (e.g. bare ABI arrays) parse as artifacts without an
// ABI key.
func Parse(data []byte) (*Artifact, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedJSON
	}

	root := gjson.ParseBytes(data)
	art := &Artifact{}
	if !root.IsObject() {
		return art, nil
	}

	if abi := root.Get("abi"); abi.Exists() {
		art.HasABI = true
		art.ABI = []byte(abi.Raw)
	}

	if ast := root.Get("ast"); ast.IsObject() {
		art.SourcePath = ast.Get("absolutePath").String()
	}

	art.CompilerVersion = compilerVersion(root)
	return art, nil
}

// compilerVersion Foundry 的 metadata 是对象，Hardhat / solc 输出的是字符串
func compilerVersion(root gjson.Result) string {
	for _, key := range []string{"metadata", "rawMetadata"} {
		meta := root.Get(key)
		switch {
		case meta.IsObject():
			if v := meta.Get("compiler.version"); v.Exists() {
				return v.String()
			}
		case meta.Type == gjson.String:
			if v := gjson.Get(meta.String(), "compiler.version"); v.Exists() {
				return v.String()
			}
		}
	}
	return ""
}
