package solc

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	// DefaultVersion 默认的 pragma 版本
	DefaultVersion = "0.8.22"
	// AutoVersion takes the pragma from each artifact's compiler metadata.
	AutoVersion = "auto"
)

// NormalizeVersion 去掉 v 前缀、约束符号和 build 后缀，返回 x.y.z
func NormalizeVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	version = strings.TrimPrefix(version, "v")
	for _, prefix := range []string{"^", ">=", "<=", ">", "<", "~", "="} {
		version = strings.TrimPrefix(version, prefix)
	}
	version = strings.TrimSpace(version)

	v, err := semver.StrictNewVersion(stripBuild(version))
	if err != nil {
		return "", fmt.Errorf("invalid solidity version %q: %w", version, err)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch()), nil
}

// stripBuild drops solc's "+commit.xxxx" and nightly suffixes.
func stripBuild(version string) string {
	if i := strings.IndexAny(version, "+-"); i >= 0 {
		return version[:i]
	}
	return version
}

// ValidPragma reports whether v can be written after "pragma solidity":
// "auto", an exact version or a version constraint such as "^0.8.20".
func ValidPragma(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	if v == AutoVersion {
		return true
	}
	if _, err := semver.StrictNewVersion(v); err == nil {
		return true
	}
	_, err := semver.NewConstraint(v)
	return err == nil
}

// ResolvePragma returns the pragma target for one artifact.
func ResolvePragma(configured, compilerVersion string) string {
	configured = strings.TrimSpace(configured)
	switch configured {
	case "":
		return DefaultVersion
	case AutoVersion:
		if v, err := NormalizeVersion(compilerVersion); err == nil {
			return v
		}
		return DefaultVersion
	default:
		return configured
	}
}
