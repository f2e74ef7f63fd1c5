package env

import (
	"os"
)

// PodName example: gateway-mcp-main-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: staging
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: mcp
func AppName() string {
	return os.Getenv("APP_NAME")
}
