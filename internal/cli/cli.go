// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements somo's non-interactive commands.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (set at build time from main).
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command identifies a top-level command.
type Command int

const (
	CmdTUI Command = iota // Default: run the full-screen UI
	CmdLogin
	CmdLogout
	CmdStatus
	CmdList
	CmdOpen
	CmdGenerate
	CmdDelete
	CmdVersion
	CmdHelp
)

// Parse maps os.Args to a command and its remaining arguments.
func Parse() (Command, []string) {
	if len(os.Args) < 2 {
		return CmdTUI, nil
	}
	args := os.Args[2:]
	switch os.Args[1] {
	case "login":
		return CmdLogin, args
	case "logout":
		return CmdLogout, args
	case "status":
		return CmdStatus, args
	case "list", "ls":
		return CmdList, args
	case "open", "show":
		return CmdOpen, args
	case "generate", "gen":
		return CmdGenerate, args
	case "delete", "rm":
		return CmdDelete, args
	case "version", "--version", "-v":
		return CmdVersion, args
	case "help", "--help", "-h":
		return CmdHelp, args
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		return CmdHelp, nil
	}
}

// flagValue extracts --name value or --name=value from args.
func flagValue(args []string, name string) string {
	prefix := "--" + name
	for i, arg := range args {
		if arg == prefix && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, prefix+"=") {
			return strings.TrimPrefix(arg, prefix+"=")
		}
	}
	return ""
}

// boolFlag reports whether --name is present.
func boolFlag(args []string, name string) bool {
	for _, arg := range args {
		if arg == "--"+name {
			return true
		}
	}
	return false
}

// positional returns the non-flag arguments.
func positional(args []string) []string {
	var out []string
	skip := false
	for _, arg := range args {
		if skip {
			skip = false
			continue
		}
		if strings.HasPrefix(arg, "--") {
			if !strings.Contains(arg, "=") {
				skip = true
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("somo %s (%s, %s)\n", Version, GitCommit, BuildDate)
}

// HandleHelp prints usage.
func HandleHelp() {
	fmt.Print(`somo - terminal client for the Lesson Plan Generator

Usage:
  somo                       Run the full-screen UI
  somo login                 Sign in with Google
  somo logout                Sign out
  somo status                Show backend and session status
  somo list [--videos]       List saved lessons or videos
  somo open <lesson-id>      Print a lesson plan
  somo generate --topic T [--region R] [--grade G] [--duration M]
                             Generate a lesson plan
  somo delete <id> [--video] Delete a lesson or video
  somo version               Show version
`)
}
