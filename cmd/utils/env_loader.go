package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvFileFlagName = "env-file"
	envFileEnvVar   = "ENV_FILE"
	defaultEnvFile  = ".env"
)

// EnvFileSource tells where the path of the loaded env file came from.
type EnvFileSource string

const (
	EnvFileSourceFlag    EnvFileSource = "FLAG"
	EnvFileSourceEnvVar  EnvFileSource = "ENV_VAR"
	EnvFileSourceDefault EnvFileSource = "DEFAULT"
)

// ResolveEnvFile picks the env file to load: the --env-file flag wins over the ENV_FILE variable,
// which wins over ./.env.
func ResolveEnvFile(args []string, lookupEnv func(string) (string, bool)) (string, EnvFileSource) {
	if path := envFileFromArgs(args); path != "" {
		return absolutePath(path), EnvFileSourceFlag
	}
	if path, ok := lookupEnv(envFileEnvVar); ok && path != "" {
		return absolutePath(path), EnvFileSourceEnvVar
	}
	return defaultEnvFile, EnvFileSourceDefault
}

// LoadEnvFile loads the env file resolved from args and the process environment. Variables that
// are already set are not overridden. A missing ./.env is not an error, a missing explicit file is.
func LoadEnvFile(args []string) error {
	path, source := ResolveEnvFile(args, os.LookupEnv)

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if source == EnvFileSourceDefault && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading env file %s from %s: %w", path, strings.ToLower(string(source)), err)
}

func envFileFromArgs(args []string) string {
	flag := "--" + EnvFileFlagName
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
		if value, found := strings.CutPrefix(arg, flag+"="); found {
			return value
		}
	}
	return ""
}

func absolutePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
