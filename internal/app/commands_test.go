package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/schemaform/internal/config"
)

// setupCmd wires a command to a MockManager, adding the persistent flags the
// command expects from root.
func setupCmd(newCmd func(Manager) *cobra.Command) (*MockManager, *cobra.Command) {
	mgr := newMockManager()
	cmd := newCmd(mgr)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.Flags().Bool("nocolour", false, "")
	return mgr, cmd
}

func TestValidateCmd(t *testing.T) {
	t.Parallel()

	t.Run("successful execution", func(t *testing.T) {
		t.Parallel()
		mgr, cmd := setupCmd(NewValidateCmd)
		want := ValidateRequest{
			SchemaPath: "s.json",
			DataPaths:  []string{"a.json", "dir"},
			Format:     "text",
			UseColour:  true,
		}
		mgr.On("Validate", mock.Anything, want).Return(nil).Once()

		cmd.SetArgs([]string{"-s", "s.json", "a.json", "dir"})
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		mgr.AssertExpectations(t)
	})

	t.Run("flags", func(t *testing.T) {
		t.Parallel()
		mgr, cmd := setupCmd(NewValidateCmd)
		want := ValidateRequest{
			SchemaPath: "s.json",
			DataPaths:  []string{"a.json"},
			Format:     "json",
			Verbose:    true,
		}
		mgr.On("Validate", mock.Anything, want).Return(nil).Once()

		cmd.SetArgs([]string{"--schema", "s.json", "-v", "-o", "json", "--nocolour", "a.json"})
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		mgr.AssertExpectations(t)
	})

	t.Run("output defaults to the config", func(t *testing.T) {
		t.Parallel()
		mgr, cmd := setupCmd(NewValidateCmd)
		mgr.config.Output = config.OutputJSON
		mgr.On("Validate", mock.Anything, mock.MatchedBy(func(r ValidateRequest) bool {
			return r.Format == "json"
		})).Return(nil).Once()

		cmd.SetArgs([]string{"-s", "s.json", "a.json"})
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		mgr.AssertExpectations(t)
	})

	t.Run("watch", func(t *testing.T) {
		t.Parallel()
		mgr, cmd := setupCmd(NewValidateCmd)
		mgr.On("WatchValidation", mock.Anything, mock.AnythingOfType("app.ValidateRequest"),
			(chan<- struct{})(nil)).Return(nil).Once()

		cmd.SetArgs([]string{"-s", "s.json", "--watch", "a.json"})
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		mgr.AssertExpectations(t)
	})

	t.Run("manager error", func(t *testing.T) {
		t.Parallel()
		mgr, cmd := setupCmd(NewValidateCmd)
		mgr.On("Validate", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

		cmd.SetArgs([]string{"-s", "s.json", "a.json"})
		require.EqualError(t, cmd.ExecuteContext(context.Background()), "boom")
	})

	t.Run("no data errors", func(t *testing.T) {
		t.Parallel()
		_, cmd := setupCmd(NewValidateCmd)
		cmd.SetArgs([]string{"-s", "s.json"})
		require.Error(t, cmd.ExecuteContext(context.Background()))
	})

	t.Run("schema flag is required", func(t *testing.T) {
		t.Parallel()
		_, cmd := setupCmd(NewValidateCmd)
		cmd.SetArgs([]string{"a.json"})
		require.ErrorContains(t, cmd.ExecuteContext(context.Background()), `required flag(s) "schema" not set`)
	})

	t.Run("invalid output", func(t *testing.T) {
		t.Parallel()
		_, cmd := setupCmd(NewValidateCmd)
		cmd.SetArgs([]string{"-s", "s.json", "-o", "xml", "a.json"})
		require.ErrorContains(t, cmd.ExecuteContext(context.Background()), "must be 'text' or 'json'")
	})
}

func TestCheckSchemaCmd(t *testing.T) {
	t.Parallel()

	mgr, cmd := setupCmd(NewCheckSchemaCmd)
	mgr.On("CheckSchema", mock.Anything, "s.json").Return(nil).Once()
	cmd.SetArgs([]string{"s.json"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	mgr.AssertExpectations(t)

	_, cmd = setupCmd(NewCheckSchemaCmd)
	cmd.SetArgs([]string{"a.json", "b.json"})
	require.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestCheckFieldCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  any
	}{
		{"plain string", "john@example.com", "john@example.com"},
		{"empty string", "", ""},
		{"number", "42", json.Number("42")},
		{"quoted JSON string", `"42"`, "42"},
		{"null", "null", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mgr, cmd := setupCmd(NewCheckFieldCmd)
			var got any
			mgr.On("CheckField", mock.Anything, "s.json", "field", mock.Anything).
				Run(func(args mock.Arguments) { got = args.Get(3) }).
				Return(nil).Once()

			cmd.SetArgs([]string{"-s", "s.json", "field", tt.value})
			require.NoError(t, cmd.ExecuteContext(context.Background()))
			mgr.AssertExpectations(t)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldsCmd(t *testing.T) {
	t.Parallel()

	mgr, cmd := setupCmd(NewFieldsCmd)
	mgr.On("Fields", mock.Anything, "s.json", "json", true, false).Return(nil).Once()
	cmd.SetArgs([]string{"s.json", "-o", "json", "-v", "--nocolour"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	mgr.AssertExpectations(t)
}

func TestPreprocessCmd(t *testing.T) {
	t.Parallel()

	mgr, cmd := setupCmd(NewPreprocessCmd)
	mgr.On("Preprocess", mock.Anything, "s.yaml").Return(nil).Once()
	cmd.SetArgs([]string{"s.yaml"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	mgr.AssertExpectations(t)
}

func TestInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "forms")
		cmd := NewInitCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{dir})
		require.NoError(t, cmd.Execute())

		data, err := os.ReadFile(filepath.Join(dir, config.ConfigFile))
		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfigContent, string(data))
		assert.Contains(t, out.String(), "Created ")
	})

	t.Run("error - config file already exists", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{config.ConfigFile: "existing"})

		cmd := NewInitCmd()
		cmd.SetOut(io.Discard)
		cmd.SetArgs([]string{dir})
		var exists *config.ConfigExistsError
		require.ErrorAs(t, cmd.Execute(), &exists)
	})

	t.Run("error - cannot create directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"some-file": "not-a-dir"})

		cmd := NewInitCmd()
		cmd.SetOut(io.Discard)
		cmd.SetArgs([]string{filepath.Join(dir, "some-file", "nested")})
		require.ErrorContains(t, cmd.Execute(), "failed to create directory")
	})
}
