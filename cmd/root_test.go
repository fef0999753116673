package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/cisolate/cisolate/internal/model"
)

func TestSplitWorkspaceArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantPath  m.Path
		wantExtra []string
		wantErr   bool
	}{
		{"workspace only", []string{"./workspace"}, m.Path("./workspace"), nil, false},
		{"workspace with parser flags", []string{"./workspace", "--", "-DDEBUG", "-Iinc"}, m.Path("./workspace"), []string{"-DDEBUG", "-Iinc"}, false},
		{"no arguments", []string{}, "", nil, true},
		{"too many positionals", []string{"a", "b"}, "", nil, true},
		{"flags only", []string{"--", "-DDEBUG"}, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			require.NoError(t, cmd.ParseFlags(tt.args))

			path, extra, err := splitWorkspaceArgs(cmd, cmd.Flags().Args())
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantExtra, extra)
		})
	}
}

func TestBaseRootCmd(t *testing.T) {
	cmd := baseRootCmd()
	assert.Equal(t, "cisolate", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "sibling directories pltf/ and cfg/")
}

func TestInit(t *testing.T) {
	// Test that init() created all the necessary instances
	assert.NotNil(t, ui)
	assert.NotNil(t, fsAdapter)
	assert.NotNil(t, parserAdapter)
	assert.NotNil(t, scanner)
	assert.NotNil(t, analyzer)
	assert.NotNil(t, assembler)
	assert.NotNil(t, workflow)
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() {
		rootCmd = originalRootCmd
	}()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	Execute()
}
