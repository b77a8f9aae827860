// Package datapack assembles the on-disk shape of a Minecraft
// datapack: one .mcfunction file per compiled function plus the
// function-tag JSON manifests that register the pack's load/tick
// hooks, in the layout pinned by spec.md §6 and exercised by the
// original implementation's integration tests.
package datapack

import (
	"encoding/json"
	"fmt"

	"github.com/jmc-lang/jmcc/internal/vfs"
)

// Pack collects functions under a single namespace as they are
// compiled, then writes them into a VFS in Minecraft's expected tree.
type Pack struct {
	Namespace string

	// functions maps a dotted function name (no namespace prefix) to
	// its command lines; order records the names in declaration order.
	order     []string
	functions map[string][]string
}

// New returns an empty Pack for the given namespace.
func New(namespace string) *Pack {
	return &Pack{
		Namespace: namespace,
		functions: map[string][]string{},
	}
}

// AddFunction registers (or overwrites) the command lines for the
// function named name (dotted, no namespace prefix).
func (p *Pack) AddFunction(name string, lines []string) {
	if _, exists := p.functions[name]; !exists {
		p.order = append(p.order, name)
	}
	p.functions[name] = lines
}

// AppendToFunction appends lines to the function named name, creating
// it if it does not yet exist. Used for the implicit __load__ and
// __tick__ hooks that accumulate lines as the whole program compiles.
func (p *Pack) AppendToFunction(name string, lines ...string) {
	if _, exists := p.functions[name]; !exists {
		p.order = append(p.order, name)
	}
	p.functions[name] = append(p.functions[name], lines...)
}

// HasFunction reports whether name has been registered at all (even
// with zero lines), so callers can decide whether a tag needs to
// reference it.
func (p *Pack) HasFunction(name string) bool {
	_, ok := p.functions[name]
	return ok
}

type functionTag struct {
	Values []string `json:"values"`
}

// Write materializes the pack into v: one file per function under
// data/<namespace>/functions/, plus data/minecraft/tags/functions/
// load.json and tick.json when the corresponding hook function
// exists.
func (p *Pack) Write(v *vfs.VFS) error {
	for _, name := range p.order {
		body := ""
		for _, line := range p.functions[name] {
			body += line + "\n"
		}
		path := fmt.Sprintf("data/%s/functions/%s.mcfunction", p.Namespace, name)
		v.WriteString(path, body)
	}

	if err := p.writeTag(v, "load"); err != nil {
		return err
	}
	if err := p.writeTag(v, "tick"); err != nil {
		return err
	}
	return nil
}

func (p *Pack) writeTag(v *vfs.VFS, hook string) error {
	name := "__" + hook + "__"
	if !p.HasFunction(name) {
		return nil
	}
	tag := functionTag{Values: []string{fmt.Sprintf("%s:%s", p.Namespace, name)}}
	encoded, err := json.MarshalIndent(tag, "", "    ")
	if err != nil {
		return err
	}
	v.WriteString(fmt.Sprintf("data/minecraft/tags/functions/%s.json", hook), string(encoded)+"\n")
	return nil
}
