// Package storage provides persistence for flow definitions and
// execution records: YAML files for flows, SQLite for the execution
// archive, and the system keyring for relay credentials.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/boardflow/pkg/domain/types"
	"github.com/dshills/boardflow/pkg/flow"
	"github.com/dshills/boardflow/pkg/validation"
)

// FilesystemFlowRepository persists flow definitions as YAML files in
// ~/.boardflow/flows/.
type FilesystemFlowRepository struct {
	baseDir string
}

// NewFilesystemFlowRepository creates a repository under the user's home
// directory, creating the flows directory if needed.
func NewFilesystemFlowRepository() (*FilesystemFlowRepository, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewFilesystemFlowRepositoryWithPath(filepath.Join(homeDir, ".boardflow"))
}

// NewFilesystemFlowRepositoryWithPath creates a repository with a custom
// base directory. Useful for testing.
func NewFilesystemFlowRepositoryWithPath(baseDir string) (*FilesystemFlowRepository, error) {
	flowsDir := filepath.Join(baseDir, "flows")
	if err := os.MkdirAll(flowsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create flows directory: %w", err)
	}
	return &FilesystemFlowRepository{baseDir: flowsDir}, nil
}

// Save writes a flow to <id>.yaml, overwriting any existing definition.
func (r *FilesystemFlowRepository) Save(f *flow.Flow) error {
	if f == nil {
		return fmt.Errorf("cannot save nil flow")
	}
	path, err := r.flowPath(f.ID)
	if err != nil {
		return err
	}

	data, err := flow.ExportFlow(f)
	if err != nil {
		return fmt.Errorf("failed to serialize flow %s: %w", f.ID, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write flow file: %w", err)
	}
	return nil
}

// Load reads one flow by ID.
func (r *FilesystemFlowRepository) Load(id types.FlowID) (*flow.Flow, error) {
	path, err := r.flowPath(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", flow.ErrFlowNotFound, id)
		}
		return nil, fmt.Errorf("failed to read flow file: %w", err)
	}
	return flow.ParseFlow(data)
}

// Delete removes a flow definition file.
func (r *FilesystemFlowRepository) Delete(id types.FlowID) error {
	path, err := r.flowPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", flow.ErrFlowNotFound, id)
		}
		return fmt.Errorf("failed to delete flow file: %w", err)
	}
	return nil
}

// List loads every flow in the repository. Files that fail to parse are
// skipped so one corrupt definition does not hide the rest.
func (r *FilesystemFlowRepository) List() ([]*flow.Flow, error) {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read flows directory: %w", err)
	}

	var flows []*flow.Flow
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		f, err := flow.ParseFlow(data)
		if err != nil {
			continue
		}
		flows = append(flows, f)
	}
	return flows, nil
}

// flowPath validates the ID and returns its file path. Validation keeps
// IDs from escaping the repository directory.
func (r *FilesystemFlowRepository) flowPath(id types.FlowID) (string, error) {
	if !validation.IsValidIdentifier(id.String()) {
		return "", fmt.Errorf("invalid flow ID: %q", id)
	}
	return filepath.Join(r.baseDir, id.String()+".yaml"), nil
}
