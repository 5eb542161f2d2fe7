// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tecnicofs-client is an interactive REPL over the client
// API: each stdin line is one c/d/l/m/p command, and the reply (or
// error) is printed to stdout, mirroring the original's tecnicofs-client
// test harness.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rfsilva/tecnicofs/client"
	"github.com/rfsilva/tecnicofs/inode"
)

func main() {
	cmd := &cobra.Command{
		Use:   "tecnicofs-client <server_socket_path>",
		Short: "Interactive client for a running tecnicofsd",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(args[0])
		},
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runREPL(serverSocket string) error {
	c, err := client.Dial("", serverSocket)
	if err != nil {
		return err
	}
	defer c.Close()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		runOne(c, fields)
	}
	return scanner.Err()
}

func runOne(c *client.Client, fields []string) {
	switch fields[0] {
	case "c":
		if len(fields) != 3 {
			fmt.Println("usage: c <path> <f|d>")
			return
		}
		kind := inode.File
		if fields[2] == "d" {
			kind = inode.Directory
		}
		report(c.Create(fields[1], kind))
	case "d":
		if len(fields) != 2 {
			fmt.Println("usage: d <path>")
			return
		}
		report(c.Delete(fields[1]))
	case "l":
		if len(fields) != 2 {
			fmt.Println("usage: l <path>")
			return
		}
		inum, err := c.Lookup(fields[1])
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(inum)
	case "m":
		if len(fields) != 3 {
			fmt.Println("usage: m <src> <dst>")
			return
		}
		report(c.Move(fields[1], fields[2]))
	case "p":
		if len(fields) != 2 {
			fmt.Println("usage: p <out_path>")
			return
		}
		report(c.Print(fields[1]))
	default:
		fmt.Println("unknown command:", fields[0])
	}
}

func report(err error) {
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("ok")
}
