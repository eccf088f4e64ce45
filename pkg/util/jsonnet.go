package util

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/google/go-jsonnet"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnmarshalConfigurationFromFile reads a Jsonnet file, evaluates it and
// unmarshals the output into a configuration structure.
func UnmarshalConfigurationFromFile(path string, configuration any) error {
	// Read configuration file from disk or from stdin.
	var jsonnetInput []byte
	var err error
	if path == "-" {
		jsonnetInput, err = io.ReadAll(os.Stdin)
	} else {
		jsonnetInput, err = os.ReadFile(path)
	}
	if err != nil {
		return StatusWrapfWithCode(err, codes.NotFound, "Failed to read file contents")
	}
	return UnmarshalConfiguration(path, jsonnetInput, configuration)
}

// UnmarshalConfiguration evaluates a Jsonnet snippet and unmarshals
// the output into a configuration structure. Fields in the output that
// have no counterpart in the configuration structure are rejected, so
// that typos in configuration files don't go by unnoticed.
func UnmarshalConfiguration(filename string, jsonnetInput []byte, configuration any) error {
	// Create a Jsonnet VM where all of the environment variables of
	// the current process are available through std.extVar().
	vm := jsonnet.MakeVM()
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			return status.Errorf(codes.InvalidArgument, "Invalid environment variable: %#v", env)
		}
		vm.ExtVar(parts[0], parts[1])
	}

	jsonnetOutput, err := vm.EvaluateAnonymousSnippet(filename, string(jsonnetInput))
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "Failed to evaluate configuration: %s", err)
	}

	decoder := json.NewDecoder(bytes.NewBufferString(jsonnetOutput))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(configuration); err != nil {
		return status.Errorf(codes.InvalidArgument, "Failed to unmarshal configuration: %s", err)
	}
	return nil
}
