// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tecnicofs-batch is the in-process batch runner: it reads a
// whole command file upfront, fans the commands out across a worker
// pool against a single in-memory engine.Engine (no transport
// involved), and times the run. It is the Go shape of the original
// part-1-main.c harness used to benchmark the tree's concurrency
// control.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rfsilva/tecnicofs/engine"
	"github.com/rfsilva/tecnicofs/inode"
	"github.com/rfsilva/tecnicofs/proto"
)

func main() {
	cmd := &cobra.Command{
		Use:   "tecnicofs-batch <input_file> <output_file> <num_threads>",
		Short: "Apply a command file against an in-process tree and print it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args[0], args[1], args[2])
		},
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBatch(inPath, outPath, threadsArg string) error {
	var workers int
	if _, err := fmt.Sscanf(threadsArg, "%d", &workers); err != nil || workers <= 0 {
		return fmt.Errorf("num_threads must be a positive integer, got %q", threadsArg)
	}

	commands, err := readCommands(inPath)
	if err != nil {
		return err
	}

	e := engine.New()

	var next int64
	start := time.Now()

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				i := atomic.AddInt64(&next, 1) - 1
				if i >= int64(len(commands)) {
					return nil
				}
				applyOne(e, commands[i])
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("TecnicoFS completed in %0.4f seconds.\n", elapsed.Seconds())

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return e.Print(out)
}

func readCommands(path string) ([]proto.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var commands []proto.Command
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		cmd, err := proto.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("invalid command %q: %w", line, err)
		}
		commands = append(commands, cmd)
	}
	return commands, scanner.Err()
}

func applyOne(e *engine.Engine, cmd proto.Command) {
	switch cmd.Verb {
	case proto.Create:
		kind := inode.File
		if cmd.NodeType == proto.DirectoryType {
			kind = inode.Directory
		}
		fmt.Printf("Create %s: %s\n", nodeTypeName(cmd.NodeType), cmd.Path)
		if err := e.Create(cmd.Path, kind); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	case proto.Lookup:
		if _, err := e.Lookup(cmd.Path); err != nil {
			fmt.Printf("Search: %s not found\n", cmd.Path)
		} else {
			fmt.Printf("Search: %s found\n", cmd.Path)
		}
	case proto.Delete:
		fmt.Printf("Delete: %s\n", cmd.Path)
		if err := e.Delete(cmd.Path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func nodeTypeName(nt proto.NodeType) string {
	if nt == proto.DirectoryType {
		return "directory"
	}
	return "file"
}
