package bst

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDemoDefaultKeys(t *testing.T) {
	out, err := run(t, "demo", "--log-level", "error")
	require.NoError(t, err)

	for _, line := range []string{
		"Inserting: 50 30 70 20 40 60 80 10 25 35 45",
		"Inorder:   10 20 25 30 35 40 45 50 60 70 80",
		"Preorder:  50 30 20 10 25 40 35 45 70 60 80",
		"Postorder: 10 25 20 35 45 40 30 60 80 70 50",
		"  0: 50",
		"  1: 30 70",
		"Height:     4",
		"Node count: 11",
		"Search 40:  found",
		"Search 99:  not found",
		"Deleting 30 (two children)...\nInorder:   10 20 25 35 40 45 50 60 70 80",
		"Deleting 10 (leaf)...\nInorder:   20 25 35 40 45 50 60 70 80",
		"Deleting 20 (one child)...\nInorder:   25 35 40 45 50 60 70 80",
		"Final node count: 8",
	} {
		require.Contains(t, out, line)
	}
}

func TestDemoCustomKeys(t *testing.T) {
	var out bytes.Buffer
	Demo(&out, zap.NewNop(), []int{3, 1, 2, 1})
	require.True(t, strings.HasPrefix(out.String(), "Inserting: 3 1 2 1\n"))
	require.Contains(t, out.String(), "Inorder:   1 2 3\n")
	require.Contains(t, out.String(), "Node count: 3\n")
	require.Contains(t, out.String(), "Final node count: 3\n")
}

func TestDemoLabelsFollowShape(t *testing.T) {
	var out bytes.Buffer
	Demo(&out, zap.NewNop(), []int{30, 10, 40})
	require.Contains(t, out.String(), "Deleting 30 (two children)...\n")
	require.Contains(t, out.String(), "Deleting 10 (leaf)...\n")
	require.Contains(t, out.String(), "Deleting 20 (absent)...\n")
	require.Contains(t, out.String(), "Final node count: 1\n")
}

func TestBenchFlags(t *testing.T) {
	_, err := run(t, "bench", "-N", "64", "--log-level", "error")
	require.NoError(t, err)

	_, err = run(t, "bench", "-N", "many")
	require.Error(t, err)

	_, err = run(t, "bench", "-N", "0")
	require.Error(t, err)
}

func TestBadLogLevel(t *testing.T) {
	_, err := run(t, "demo", "--log-level", "loud")
	require.Error(t, err)
}

func TestMeasure(t *testing.T) {
	called := false
	d := Measure(func() { called = true })
	require.True(t, called)
	require.GreaterOrEqual(t, int64(d), int64(0))
}
