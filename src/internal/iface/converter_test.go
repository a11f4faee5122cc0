package iface

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const balanceOfABI = `[{"type":"function","name":"balanceOf","inputs":[{"type":"address","name":"owner"}],"outputs":[{"type":"uint256"}],"stateMutability":"view"}]`

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestConvertFileBalanceOf(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "out/Token.sol/Token.json", `{"abi": `+balanceOfABI+`}`)

	c := NewConverter(fs, Options{SolidityVersion: "0.8.22"})
	res, err := c.ConvertFile("out/Token.sol/Token.json", "iface/IToken.sol", "IToken")
	require.NoError(t, err)
	assert.Equal(t, StatusConverted, res.Status)
	assert.Equal(t, 1, res.Functions)

	want := "// SPDX-License-Identifier: UNLICENSED\n" +
		"pragma solidity 0.8.22;\n" +
		"\n" +
		"interface IToken\n" +
		"{\n" +
		"\t// View Functions\n" +
		"\tfunction balanceOf(address owner) external view returns (uint256);\n" +
		"}\n"
	assert.Equal(t, want, readFile(t, fs, "iface/IToken.sol"))

	// no temp files left behind
	entries, err := afero.ReadDir(fs, "iface")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestConvertFileIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "art/Token.json", `{"abi": `+balanceOfABI+`}`)
	c := NewConverter(fs, Options{SolidityVersion: "0.8.22"})

	_, err := c.ConvertFile("art/Token.json", "iface/IToken.sol", "IToken")
	require.NoError(t, err)
	first := readFile(t, fs, "iface/IToken.sol")

	_, err = c.ConvertFile("art/Token.json", "iface/IToken.sol", "IToken")
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, fs, "iface/IToken.sol"))
}

func TestConvertFileSkips(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  SkipReason
	}{
		{"no abi key", `{"id":"build-info","output":{}}`, ReasonNoABI},
		{"bare abi array", balanceOfABI, ReasonNoABI},
		{"events only", `{"abi":[{"type":"event","name":"Transfer","inputs":[]}]}`, ReasonEmpty},
		{"empty abi", `{"abi":[]}`, ReasonEmpty},
		{"null abi", `{"abi":null}`, ReasonEmpty},
		{"ignored source", `{"abi":` + balanceOfABI + `,"ast":{"absolutePath":"forge-std/src/StdMath.sol"}}`, ReasonIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "art/A.json", tt.content)
			c := NewConverter(fs, Options{IgnorePaths: []string{"forge-std/src/StdMath.sol"}})

			res, err := c.ConvertFile("art/A.json", "iface/IA.sol", "IA")
			require.NoError(t, err)
			assert.Equal(t, StatusSkipped, res.Status)
			assert.Equal(t, tt.reason, res.Reason)

			exists, err := afero.Exists(fs, "iface/IA.sol")
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestConvertFileNotIgnoredWhenPathDiffers(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "art/A.json", `{"abi":`+balanceOfABI+`,"ast":{"absolutePath":"src/A.sol"}}`)
	c := NewConverter(fs, Options{IgnorePaths: []string{"test/foundry/Misc/bitmaskCheck.sol"}})

	res, err := c.ConvertFile("art/A.json", "iface/IA.sol", "IA")
	require.NoError(t, err)
	assert.Equal(t, StatusConverted, res.Status)
}

func TestConvertFileErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "art/Bad.json", `{"abi": [`)
	writeFile(t, fs, "art/Shape.json", `{"abi": {"type":"function"}}`)
	c := NewConverter(fs, Options{})

	tests := []struct {
		path string
		kind ErrorKind
	}{
		{"art/Bad.json", KindParse},
		{"art/Shape.json", KindParse},
		{"art/Missing.json", KindRead},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := c.ConvertFile(tt.path, "iface/IX.sol", "IX")
			require.Error(t, err)

			var fe *FileError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.kind, fe.Kind)
			assert.Equal(t, tt.path, fe.Path)
			assert.Equal(t, StatusFailed, res.Status)
			assert.Same(t, fe, res.Err)
		})
	}
}

func TestConvertFileWriteError(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "art/A.json", `{"abi":`+balanceOfABI+`}`)
	c := NewConverter(afero.NewReadOnlyFs(base), Options{})

	_, err := c.ConvertFile("art/A.json", "iface/IA.sol", "IA")
	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindWrite, fe.Kind)
}

func TestConvertFilePayableWithoutMutability(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "art/Vault.json", `{"abi":[{"type":"function","name":"deposit","payable":true,"inputs":[],"outputs":[]}]}`)
	c := NewConverter(fs, Options{})

	_, err := c.ConvertFile("art/Vault.json", "iface/IVault.sol", "IVault")
	require.NoError(t, err)

	got := readFile(t, fs, "iface/IVault.sol")
	assert.Contains(t, got, "\t// Payable Functions\n\tfunction deposit() external payable;\n")
	assert.NotContains(t, got, " view")
	assert.NotContains(t, got, " pure")
	assert.Contains(t, got, "pragma solidity 0.8.22;")
}

func TestConvertFileAutoPragma(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "art/A.json", `{"abi":`+balanceOfABI+`,"metadata":{"compiler":{"version":"0.8.19+commit.7dd6d404"}}}`)
	c := NewConverter(fs, Options{SolidityVersion: "auto"})

	_, err := c.ConvertFile("art/A.json", "iface/IA.sol", "IA")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, fs, "iface/IA.sol"), "pragma solidity 0.8.19;\n")
}

func TestConvertFileSelectors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "art/Token.json", `{"abi":[
		{"type":"function","name":"balanceOf","inputs":[{"type":"address","name":"owner"}],"outputs":[{"type":"uint256"}],"stateMutability":"view"},
		{"type":"function","name":"transfer","inputs":[{"type":"address","name":"to"},{"type":"uint256","name":"amount"}],"outputs":[{"type":"bool"}],"stateMutability":"nonpayable"},
		{"type":"event","name":"Transfer","inputs":[]}
	]}`)
	c := NewConverter(fs, Options{Selectors: true})

	res, err := c.ConvertFile("art/Token.json", "iface/IToken.sol", "IToken")
	require.NoError(t, err)
	assert.Equal(t, "iface/IToken.selectors.json", res.Selectors)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(readFile(t, fs, res.Selectors)), &got))
	assert.Equal(t, map[string]string{
		"balanceOf(address)":        "0x70a08231",
		"transfer(address,uint256)": "0xa9059cbb",
	}, got)
}

func TestInterfaceName(t *testing.T) {
	assert.Equal(t, "IToken", InterfaceName("out/Token.sol/Token.json"))
	assert.Equal(t, "IMADRouter721", InterfaceName("/abs/MADRouter721.json"))
	assert.Equal(t, "IToken.metadata", InterfaceName("Token.metadata.json"))
}

func TestConvertDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "out/Token.sol/Token.json", `{"abi":`+balanceOfABI+`,"ast":{"absolutePath":"src/Token.sol"}}`)
	writeFile(t, fs, "out/StdMath.sol/StdMath.json", `{"abi":`+balanceOfABI+`,"ast":{"absolutePath":"forge-std/src/StdMath.sol"}}`)
	writeFile(t, fs, "out/Events.sol/Events.json", `{"abi":[{"type":"event","name":"E","inputs":[]}]}`)
	writeFile(t, fs, "out/build-info/abc.json", `{"id":"abc"}`)
	writeFile(t, fs, "out/Broken.sol/Broken.json", `{"abi": [`)
	writeFile(t, fs, "out/Vault.sol/Vault.json", `{"abi":[{"type":"function","name":"deposit","payable":true}]}`)
	writeFile(t, fs, "out/README.md", `# not an artifact`)

	var seen []string
	discovered := -1
	c := NewConverter(fs, Options{
		SolidityVersion: "0.8.22",
		IgnorePaths:     []string{"forge-std/src/StdMath.sol"},
		OnDiscover:      func(n int) { discovered = n },
		OnFile:          func(r FileResult) { seen = append(seen, r.Path) },
	})

	summary, err := c.ConvertDirectory(context.Background(), "out", "abi2json/interfaces")
	require.NoError(t, err)

	assert.Equal(t, 6, summary.Total())
	assert.Equal(t, 2, summary.Converted)
	assert.Equal(t, 3, summary.Skipped)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, map[SkipReason]int{ReasonNoABI: 1, ReasonIgnored: 1, ReasonEmpty: 1}, summary.SkippedBy())
	assert.Empty(t, summary.Collisions)
	assert.Len(t, seen, 6)
	assert.Equal(t, 6, discovered)

	failures := summary.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "out/Broken.sol/Broken.json", failures[0].Path)
	assert.Equal(t, KindParse, failures[0].Err.Kind)

	var fe *FileError
	require.True(t, errors.As(summary.Err(), &fe))

	for _, name := range []string{"IToken.sol", "IVault.sol"} {
		exists, err := afero.Exists(fs, filepath.Join("abi2json/interfaces", name))
		require.NoError(t, err)
		assert.True(t, exists, name)
	}
	for _, name := range []string{"IStdMath.sol", "IEvents.sol", "Iabc.sol", "IBroken.sol"} {
		exists, err := afero.Exists(fs, filepath.Join("abi2json/interfaces", name))
		require.NoError(t, err)
		assert.False(t, exists, name)
	}
}

func TestConvertDirectoryCollisionOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "out/a/Token.json", `{"abi":[{"type":"function","name":"first","stateMutability":"view"}]}`)
	writeFile(t, fs, "out/b/Token.json", `{"abi":[{"type":"function","name":"second","stateMutability":"view"}]}`)
	c := NewConverter(fs, Options{})

	summary, err := c.ConvertDirectory(context.Background(), "out", "iface")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Converted)
	require.Len(t, summary.Collisions, 1)
	assert.Equal(t, Collision{
		Interface:   "IToken",
		Output:      filepath.Join("iface", "IToken.sol"),
		Overwritten: filepath.Join("out", "a", "Token.json"),
		By:          filepath.Join("out", "b", "Token.json"),
	}, summary.Collisions[0])

	// later file in walk order wins
	got := readFile(t, fs, "iface/IToken.sol")
	assert.Contains(t, got, "function second()")
	assert.NotContains(t, got, "function first()")
}

func TestConvertDirectoryCreatesOutputDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("empty", 0755))
	c := NewConverter(fs, Options{})

	summary, err := c.ConvertDirectory(context.Background(), "empty", "deep/nested/out")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total())
	assert.NoError(t, summary.Err())

	isDir, err := afero.IsDir(fs, "deep/nested/out")
	require.NoError(t, err)
	assert.True(t, isDir)

	// create-if-absent is idempotent
	_, err = c.ConvertDirectory(context.Background(), "empty", "deep/nested/out")
	require.NoError(t, err)
}

func TestConvertDirectoryMissingInput(t *testing.T) {
	c := NewConverter(afero.NewMemMapFs(), Options{})
	_, err := c.ConvertDirectory(context.Background(), "nope", "iface")
	require.Error(t, err)
}

func TestConvertDirectoryCancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "out/A.json", `{"abi":`+balanceOfABI+`}`)
	c := NewConverter(fs, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := c.ConvertDirectory(ctx, "out", "iface")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Total())
}
