package rpc

import (
	"os"
	"strconv"
)

// NodeNamer derives the name of the ephemeral node this invocation joins
// the cluster under.
type NodeNamer interface {
	NodeName() string
}

// ProcessNamer names the node after the OS process id, e.g. "ansible_4711".
//
// Two invocations running concurrently on the same host necessarily have
// different pids, so their hidden nodes cannot collide.
type ProcessNamer struct {
	// Prefix precedes the pid. Empty means DefaultNodePrefix.
	Prefix string
}

// DefaultNodePrefix marks hidden nodes started by this module.
const DefaultNodePrefix = "ansible_"

func (n ProcessNamer) NodeName() string {
	prefix := n.Prefix
	if prefix == "" {
		prefix = DefaultNodePrefix
	}
	return prefix + strconv.Itoa(os.Getpid())
}

// FixedNamer returns a predetermined node name. Tests use it to make the
// generated command line deterministic.
type FixedNamer string

func (n FixedNamer) NodeName() string {
	return string(n)
}
