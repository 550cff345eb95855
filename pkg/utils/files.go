package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReadSource reads the statement stored at relPath. Trailing line breaks are
// dropped.
func ReadSource(relPath string) (string, error) {
	fullPath, _, err := GetPathInfo(relPath)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("read source %s: %w", relPath, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// WriteMachineCode writes encoded lines to path, one per line.
func WriteMachineCode(path, machineCode string) error {
	if machineCode != "" && !strings.HasSuffix(machineCode, "\n") {
		machineCode += "\n"
	}
	if err := os.WriteFile(path, []byte(machineCode), 0o644); err != nil {
		return fmt.Errorf("write machine code %s: %w", path, err)
	}
	return nil
}
