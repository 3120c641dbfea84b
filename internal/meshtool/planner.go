// Package meshtool plans and launches the external binary mesh compiler.
package meshtool

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultCommand is the compiler executable used when none is configured.
const DefaultCommand = "OgreMeshTool"

// Recognized option keys.
const (
	KeyGenerateEdgeLists  = "generate_edge_lists"
	KeyGenerateTangents   = "generate_tangents"
	KeyOptimizeForDesktop = "optimize_for_desktop"
)

// Compiler flags.
const (
	FlagVersion2    = "-v2"
	FlagNoEdgeLists = "-e"
	FlagTangents    = "-t"
	FlagTangentSize = "-ts"
	TangentChannels = "4"
	FlagOptimize    = "-O"
	OptimizeDesktop = "puqs"
	OptimizeReduced = "qs"
)

// Options selects compiler behaviour.
type Options struct {
	// GenerateEdgeLists drops the flag that suppresses edge lists.
	GenerateEdgeLists bool
	// GenerateTangents asks the compiler for 4-component tangents.
	GenerateTangents bool
	// OptimizeForDesktop picks the desktop optimization set over the
	// reduced one.
	OptimizeForDesktop bool
}

// DefaultOptions returns the options used for missing keys.
func DefaultOptions() Options {
	return Options{OptimizeForDesktop: true}
}

// OptionsFromMap reads options from a configuration map. Missing keys and
// values that do not parse as booleans keep their defaults.
func OptionsFromMap(m map[string]any) Options {
	o := DefaultOptions()
	o.GenerateEdgeLists = lookupBool(m, KeyGenerateEdgeLists, o.GenerateEdgeLists)
	o.GenerateTangents = lookupBool(m, KeyGenerateTangents, o.GenerateTangents)
	o.OptimizeForDesktop = lookupBool(m, KeyOptimizeForDesktop, o.OptimizeForDesktop)
	return o
}

func lookupBool(m map[string]any, key string, def bool) bool {
	v, ok := m[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "on":
			return true
		case "no", "off":
			return false
		}
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}
	}
	return def
}

// Planner turns options into a compiler command line. Command is fixed at
// construction.
type Planner struct {
	command string
}

// NewPlanner returns a planner for the given executable; empty selects
// DefaultCommand.
func NewPlanner(command string) *Planner {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	return &Planner{command: command}
}

// Command returns the compiler executable.
func (p *Planner) Command() string { return p.command }

// Flags returns the compiler flags for opts. Schema version 2 output is
// always forced.
func (p *Planner) Flags(opts Options) []string {
	flags := []string{FlagVersion2}
	if !opts.GenerateEdgeLists {
		flags = append(flags, FlagNoEdgeLists)
	}
	if opts.GenerateTangents {
		flags = append(flags, FlagTangents, FlagTangentSize, TangentChannels)
	}
	if opts.OptimizeForDesktop {
		flags = append(flags, FlagOptimize, OptimizeDesktop)
	} else {
		flags = append(flags, FlagOptimize, OptimizeReduced)
	}
	return flags
}

// Plan returns the full invocation converting in to out.
func (p *Planner) Plan(opts Options, in, out string) Invocation {
	return Invocation{Command: p.command, Flags: p.Flags(opts), Input: in, Output: out}
}

// CommandLine returns `<command> <flags> "<in>" "<out>"`.
func (p *Planner) CommandLine(opts Options, in, out string) string {
	return p.Plan(opts, in, out).String()
}

// Invocation is one planned compiler run.
type Invocation struct {
	Command string
	Flags   []string
	Input   string
	Output  string
}

func (inv Invocation) String() string {
	return fmt.Sprintf(`%s %s "%s" "%s"`, inv.Command, strings.Join(inv.Flags, " "), inv.Input, inv.Output)
}
