package soc

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eddndev/achronyme-core/internal/runtime"
)

func TestEvaluate(t *testing.T) {
	engine := New()
	v, err := engine.Evaluate("let add = (a, b) => a + b; add(2, 3)")
	require.NoError(t, err)
	assert.Equal(t, "5", v.String())
}

func TestSessionPersistsBindings(t *testing.T) {
	engine := New()
	_, err := engine.Evaluate("let x = 40")
	require.NoError(t, err)

	v, err := engine.Evaluate("x + 2")
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())
}

func TestSyntaxErrorSurfaced(t *testing.T) {
	engine := New()
	_, err := engine.Evaluate("let = 5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestRuntimeErrorSurfaced(t *testing.T) {
	engine := New()
	_, err := engine.Evaluate("1 / 0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestWithOutput(t *testing.T) {
	var buf bytes.Buffer
	engine := New(WithOutput(&buf))
	_, err := engine.Evaluate(`print("hello")`)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", buf.String())
}

func TestRegisterBuiltin(t *testing.T) {
	engine := New()
	engine.RegisterBuiltin("double", 1, func(args []Value) (Value, error) {
		n, ok := args[0].(*runtime.Number)
		if !ok {
			return nil, runtime.NewTypeError("NUMBER", args[0], "double")
		}
		return &runtime.Number{Value: 2 * n.Value}, nil
	})
	v, err := engine.Evaluate("double(21)")
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())
}

func TestParseValidatesWithoutEvaluating(t *testing.T) {
	_, err := Parse("let x = ")
	require.Error(t, err)

	program, err := Parse("1 + 2")
	require.NoError(t, err)
	assert.NotNil(t, program)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 6\nprompt: \"> \"\ncolor: never\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Precision)
	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, "never", cfg.Color)
}

func TestLoadConfigRejectsBadColor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: sometimes\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "soc> ", cfg.Prompt)
	assert.Equal(t, "auto", cfg.Color)
}
