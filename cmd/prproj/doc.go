// Package main hosts the prproj CLI entrypoint and command graph.
//
// The Cobra-based command tree reads project files and prints their
// sequences, cuts, visible timelines, and media as tables. It can record scans
// in the SQLite catalog and scaffold a configuration file. Configuration
// resolution and logger setup live in commandContext so subcommands only
// deal with presentation; the resolution rules themselves belong to the
// internal packages.
package main
