package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/schemaform/internal/config"
)

const personSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string", "title": "Full name", "required": true},
    "email": {"format": "email", "description": "Work address"},
    "age": {"type": "number", "precision": 1, "minimum": 0}
  },
  "required": ["email"]
}`

type MockManager struct {
	mock.Mock
	config *config.Config
}

func newMockManager() *MockManager {
	return &MockManager{config: config.Default()}
}

func (m *MockManager) Config() *config.Config {
	return m.config
}

func (m *MockManager) CheckSchema(ctx context.Context, schemaPath string) error {
	args := m.Called(ctx, schemaPath)
	return args.Error(0)
}

func (m *MockManager) Validate(ctx context.Context, req ValidateRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockManager) WatchValidation(ctx context.Context, req ValidateRequest, readyChan chan<- struct{}) error {
	args := m.Called(ctx, req, readyChan)
	return args.Error(0)
}

func (m *MockManager) CheckField(ctx context.Context, schemaPath, field string, value any) error {
	args := m.Called(ctx, schemaPath, field, value)
	return args.Error(0)
}

func (m *MockManager) Fields(ctx context.Context, schemaPath, format string, verbose, useColour bool) error {
	args := m.Called(ctx, schemaPath, format, verbose, useColour)
	return args.Error(0)
}

func (m *MockManager) Preprocess(ctx context.Context, schemaPath string) error {
	args := m.Called(ctx, schemaPath)
	return args.Error(0)
}

// writeFiles creates files under dir from a map of relative path to content.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}
