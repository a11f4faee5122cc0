package config

import (
	"path/filepath"

	"github.com/VectorBits/abi2sol/src/internal/solc"
)

const (
	DefaultInputDir    = "out"
	DefaultConcurrency = 2
	DefaultReportDir   = "reports"
	DefaultSQLitePath  = "./data/abi2sol.db"
)

// DefaultOutputDir 与 forge 的 out 目录并列
var DefaultOutputDir = filepath.Join("abi2json", "interfaces")

// DefaultIgnorePaths are sources whose artifacts never get an interface.
var DefaultIgnorePaths = []string{
	"test/foundry/Misc/bitmaskCheck.sol",
	"forge-std/src/StdMath.sol",
}

// GenerateConfiguration is the fully merged input of one generate run.
type GenerateConfiguration struct {
	SolidityVersion string
	IgnorePaths     []string
	Selectors       bool
	Concurrency     int
	Targets         []TargetConfig

	// 为空时不生成报告
	ReportDir string
	Record    bool
	Database  DatabaseConfig
	Log       LogConfig
	Verbose   bool
}

func DefaultGenerateConfiguration() GenerateConfiguration {
	return GenerateConfiguration{
		SolidityVersion: solc.DefaultVersion,
		IgnorePaths:     append([]string(nil), DefaultIgnorePaths...),
		Concurrency:     DefaultConcurrency,
		Targets: []TargetConfig{
			{Name: "default", Input: DefaultInputDir, Output: DefaultOutputDir},
		},
		Database: DatabaseConfig{Driver: "sqlite", Path: DefaultSQLitePath},
		Log:      LogConfig{Dir: "logs", MaxSizeMB: 10, MaxBackups: 5, MaxAgeDays: 30},
	}
}
