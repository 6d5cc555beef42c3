/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package bst

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/btree"
	"github.com/pkg/errors"
	"github.com/seipan/bst/bst"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const btreeDegree = 32

var defaultKeys = []int{50, 30, 70, 20, 40, 60, 80, 10, 25, 35, 45}

func newRootCmd() *cobra.Command {
	var logLevel string
	var logger *zap.Logger

	rootCmd := &cobra.Command{
		Use:           "bst",
		Short:         "Unbalanced binary search tree demo and benchmark",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		demoCommand(func() *zap.Logger { return logger }),
		benchCommand(func() *zap.Logger { return logger }),
	)
	return rootCmd
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.Config{
		Level:            zap.NewAtomicLevel(),
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "bad log level %q", level)
	}
	return cfg.Build()
}

func demoCommand(logger func() *zap.Logger) *cobra.Command {
	var keys []int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Insert a key set, print traversals, then delete a leaf, a one-child and a two-children node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			Demo(cmd.OutOrStdout(), logger(), keys)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&keys, "keys", defaultKeys, "keys to insert")
	return cmd
}

// Demo renders the tree before and after each representative deletion.
func Demo(w io.Writer, logger *zap.Logger, keys []int) {
	tree := bst.New[int]()
	defer tree.Clear(true)

	fmt.Fprintf(w, "Inserting: %s\n\n", join(keys))
	for _, k := range keys {
		if !tree.Insert(k) {
			logger.Debug("duplicate key ignored", zap.Int("key", k))
		}
	}

	printTraversals(w, tree)
	fmt.Fprintln(w, "Level order:")
	for depth, level := range tree.LevelOrder() {
		fmt.Fprintf(w, "  %d: %s\n", depth, join(level))
	}

	fmt.Fprintf(w, "\nHeight:     %d\n", tree.Height())
	fmt.Fprintf(w, "Node count: %d\n", tree.Count())

	fmt.Fprintf(w, "\nSearch 40:  %s\n", found(tree.Search(40)))
	fmt.Fprintf(w, "Search 99:  %s\n\n", found(tree.Search(99)))

	for _, key := range []int{30, 10, 20} {
		fmt.Fprintf(w, "Deleting %d (%s)...\n", key, describe(tree, key))
		removed := tree.Remove(key)
		logger.Debug("remove", zap.Int("key", key), zap.Bool("removed", removed))
		fmt.Fprintf(w, "Inorder:   %s\n", join(tree.InOrder()))
	}

	fmt.Fprintf(w, "\nFinal node count: %d\n", tree.Count())
}

func printTraversals(w io.Writer, tree *bst.OrderedTree[int]) {
	fmt.Fprintf(w, "Inorder:   %s\n", join(tree.InOrder()))
	fmt.Fprintf(w, "Preorder:  %s\n", join(tree.PreOrder()))
	fmt.Fprintf(w, "Postorder: %s\n", join(tree.PostOrder()))
}

func join(keys []int) string {
	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = strconv.Itoa(k)
	}
	return strings.Join(s, " ")
}

func describe(tree *bst.OrderedTree[int], key int) string {
	children, ok := tree.Children(key)
	switch {
	case !ok:
		return "absent"
	case children == 0:
		return "leaf"
	case children == 1:
		return "one child"
	}
	return "two children"
}

func found(ok bool) string {
	if ok {
		return "found"
	}
	return "not found"
}

func benchCommand(logger func() *zap.Logger) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time inserts and lookups in the tree against a map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := cmd.Flags().GetString("N")
			if err != nil {
				return errors.WithStack(err)
			}
			n, err := strconv.Atoi(key)
			if err != nil {
				return errors.Wrapf(err, "number of keys %q", key)
			}
			if n <= 0 {
				return errors.Errorf("number of keys must be positive, got %d", n)
			}
			Bench(logger(), n, seed)
			return nil
		},
	}
	cmd.Flags().StringP("N", "N", "1000", "number of keys to insert")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for shuffling the keys")
	return cmd
}

// Bench inserts a shuffled permutation of n keys into the tree, the map
// baseline and a balanced B-tree, then looks every key up again, logging each phase.
func Bench(logger *zap.Logger, n int, seed int64) {
	keys := rand.New(rand.NewSource(seed)).Perm(n)

	ref := bst.NewRefSet[int]()
	defer ref.Close()
	tree := bst.New[int]()
	defer tree.Clear(true)

	logger.Info("map insert", zap.Int("n", n), zap.Duration("took", Measure(func() {
		for _, k := range keys {
			ref.Insert(k)
		}
	})))
	logger.Info("map search", zap.Int("n", n), zap.Duration("took", Measure(func() {
		for _, k := range keys {
			ref.Search(k)
		}
	})))
	bt := btree.New(btreeDegree)
	defer bt.Clear(false)

	logger.Info("btree insert", zap.Int("n", n), zap.Duration("took", Measure(func() {
		for _, k := range keys {
			bt.ReplaceOrInsert(btree.Int(k))
		}
	})))
	logger.Info("btree search", zap.Int("n", n), zap.Duration("took", Measure(func() {
		for _, k := range keys {
			bt.Has(btree.Int(k))
		}
	})))
	logger.Info("tree insert", zap.Int("n", n), zap.Duration("took", Measure(func() {
		for _, k := range keys {
			tree.Insert(k)
		}
	})), zap.Int("height", tree.Height()))
	logger.Info("tree search", zap.Int("n", n), zap.Duration("took", Measure(func() {
		for _, k := range keys {
			tree.Search(k)
		}
	})))
}

func Measure(fnc func()) time.Duration {
	start := time.Now()
	fnc()
	end := time.Now()
	return end.Sub(start)
}

func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
