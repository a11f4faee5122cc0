package config

import (
	"os"
)

const (
	EnvDBPassword      = "ABI2SOL_DB_PASSWORD"
	EnvSolidityVersion = "ABI2SOL_SOLIDITY_VERSION"
)

// applyEnv 环境变量覆盖 YAML 中的敏感或常改的值
func (c *AppConfig) applyEnv() {
	c.Database.Password = getEnv(EnvDBPassword, c.Database.Password)
	c.Generator.SolidityVersion = getEnv(EnvSolidityVersion, c.Generator.SolidityVersion)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
