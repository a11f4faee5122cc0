package iface

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/VectorBits/abi2sol/src/internal/artifact"
	"github.com/VectorBits/abi2sol/src/internal/logger"
	"github.com/VectorBits/abi2sol/src/internal/solabi"
	"github.com/VectorBits/abi2sol/src/internal/solc"
)

// Options 转换参数，由调用方显式传入
type Options struct {
	// SolidityVersion is the pragma target, or "auto".
	SolidityVersion string
	// IgnorePaths lists ast.absolutePath values that are never converted.
	IgnorePaths []string
	// Selectors writes <Name>.selectors.json next to every interface.
	Selectors bool
	// OnDiscover receives the number of artifacts a sweep will visit.
	OnDiscover func(total int)
	// OnFile is called after every artifact of a directory sweep.
	OnFile func(FileResult)
}

type Converter struct {
	fs     afero.Fs
	opts   Options
	ignore map[string]struct{}
}

func NewConverter(fs afero.Fs, opts Options) *Converter {
	ignore := make(map[string]struct{}, len(opts.IgnorePaths))
	for _, p := range opts.IgnorePaths {
		ignore[p] = struct{}{}
	}
	return &Converter{fs: fs, opts: opts, ignore: ignore}
}

func (c *Converter) ignored(sourcePath string) bool {
	if sourcePath == "" {
		return false
	}
	_, ok := c.ignore[sourcePath]
	return ok
}

// InterfaceName derives "I<Base>" from an artifact path.
func InterfaceName(path string) string {
	base := filepath.Base(path)
	return "I" + strings.TrimSuffix(base, filepath.Ext(base))
}

func failed(res FileResult, kind ErrorKind, err error) (FileResult, error) {
	fe := &FileError{Kind: kind, Path: res.Path, Err: err}
	res.Status = StatusFailed
	res.Err = fe
	return res, fe
}

func skipped(res FileResult, reason SkipReason) (FileResult, error) {
	res.Status = StatusSkipped
	res.Reason = reason
	logger.Debug("skip %s: %s", res.Path, reason)
	return res, nil
}

// ConvertFile converts one artifact into outPath. Skips are not errors;
// failures come back as *FileError and in the result.
func (c *Converter) ConvertFile(path, outPath, name string) (FileResult, error) {
	res := FileResult{Path: path, Interface: name, Output: outPath}

	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return failed(res, KindRead, err)
	}

	art, err := artifact.Parse(data)
	if err != nil {
		return failed(res, KindParse, err)
	}
	if !art.HasABI {
		return skipped(res, ReasonNoABI)
	}
	if c.ignored(art.SourcePath) {
		return skipped(res, ReasonIgnored)
	}

	entries, err := solabi.Decode(art.ABI)
	if err != nil {
		return failed(res, KindParse, err)
	}

	doc := Collect(name, solc.ResolvePragma(c.opts.SolidityVersion, art.CompilerVersion), entries)
	if doc.Empty() {
		return skipped(res, ReasonEmpty)
	}

	if err := writeFileAtomic(c.fs, outPath, []byte(doc.Render())); err != nil {
		return failed(res, KindWrite, err)
	}
	res.Functions = doc.Len()

	if c.opts.Selectors {
		manifest := strings.TrimSuffix(outPath, ".sol") + ".selectors.json"
		if err := c.writeSelectors(manifest, doc); err != nil {
			return failed(res, KindWrite, err)
		}
		res.Selectors = manifest
	}

	res.Status = StatusConverted
	logger.Debug("converted %s -> %s (%d functions)", path, outPath, res.Functions)
	return res, nil
}

// writeSelectors 写入 "签名 -> 4 字节选择器" 映射
func (c *Converter) writeSelectors(path string, doc *Document) error {
	selectors := make(map[string]string, doc.Len())
	for _, e := range doc.Functions() {
		sig, sel, err := solabi.Selector(e)
		if err != nil {
			logger.Debug("no selector for %s.%s: %v", doc.Name, e.Name, err)
			continue
		}
		selectors[sig] = sel
	}

	data, err := json.MarshalIndent(selectors, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal selectors: %w", err)
	}
	return writeFileAtomic(c.fs, path, append(data, '\n'))
}

// Discover lists every *.json file under dir in lexical walk order.
func (c *Converter) Discover(dir string) ([]string, error) {
	var paths []string
	err := afero.Walk(c.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return paths, nil
}

// ConvertDirectory converts every artifact under inDir into outDir. Per-file
// failures are collected in the summary and do not stop the sweep; the
// returned error is only for sweep-level problems or cancellation.
func (c *Converter) ConvertDirectory(ctx context.Context, inDir, outDir string) (*Summary, error) {
	summary := NewSummary(inDir, outDir)
	defer summary.Finish()

	info, err := c.fs.Stat(inDir)
	if err != nil {
		return summary, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return summary, fmt.Errorf("input path %s is not a directory", inDir)
	}
	if err := c.fs.MkdirAll(outDir, 0755); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths, err := c.Discover(inDir)
	if err != nil {
		return summary, err
	}
	if c.opts.OnDiscover != nil {
		c.opts.OnDiscover(len(paths))
	}

	// interface name -> artifact that last wrote it
	owners := make(map[string]string)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		name := InterfaceName(path)
		out := filepath.Join(outDir, name+".sol")

		res, err := c.ConvertFile(path, out, name)
		if err != nil {
			logger.Warn("%v", err)
		}
		if res.Status == StatusConverted {
			if prev, ok := owners[name]; ok {
				summary.AddCollision(Collision{Interface: name, Output: out, Overwritten: prev, By: path})
				logger.Warn("%s from %s overwrites the one generated from %s", name, path, prev)
			}
			owners[name] = path
		}

		summary.Add(res)
		if c.opts.OnFile != nil {
			c.opts.OnFile(res)
		}
	}

	return summary, nil
}
