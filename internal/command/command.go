// Package command implements the dm command hierarchy: an explicit tree of
// nodes built once at startup, each owning its subcommands and an optional
// handler. Dispatch walks the tree by exact name match and invokes exactly
// one handler, or prints help, or fails with a bad-argument status.
package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caltechlibrary/documentarist/internal/status"
)

// HandlerFunc executes a leaf command. The arguments are the tokens left
// over after dispatch, which may include positional values and flags private
// to the command.
type HandlerFunc func(args []string) error

// Node is one addressable point in the command hierarchy. The root node has
// an empty name. Children are listed in help in the order they were added.
type Node struct {
	name     string
	summary  string
	order    []string
	children map[string]*Node
	run      HandlerFunc
	out      io.Writer
}

// New returns a node with the given name, summary, and handler. The summary
// may span multiple lines; parents list only its first line. A nil handler
// is valid for nodes that exist purely to group subcommands.
func New(name, summary string, run HandlerFunc) *Node {
	return &Node{
		name:     name,
		summary:  summary,
		children: make(map[string]*Node),
		run:      run,
		out:      os.Stdout,
	}
}

// Add registers child as a subcommand. The child is owned by this node from
// here on; adding two children with the same name is a programming error and
// panics.
func (n *Node) Add(child *Node) {
	if _, dup := n.children[child.name]; dup {
		panic(fmt.Sprintf("command: duplicate subcommand %q under %q", child.name, n.name))
	}
	n.order = append(n.order, child.name)
	n.children[child.name] = child
	child.setOutput(n.out)
}

// SetOutput directs help text for this node and all its descendants to w.
// The default is standard output.
func (n *Node) SetOutput(w io.Writer) {
	n.setOutput(w)
}

func (n *Node) setOutput(w io.Writer) {
	n.out = w
	for _, name := range n.order {
		n.children[name].setOutput(w)
	}
}

// Dispatch resolves args against this node's subtree. An empty argument
// list, or one starting with the literal "help", prints help and succeeds.
// A first token naming a child recurses into it with the remaining tokens.
// A first token naming nothing is handed, along with everything after it,
// to this node's handler; if there is no handler, dispatch prints help and
// fails with a bad-argument status identifying the token.
func (n *Node) Dispatch(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(n.out, n.Help())
		return nil
	}
	if args[0] == "help" {
		n.printHelp(args[1:])
		return nil
	}
	if child, ok := n.children[args[0]]; ok {
		return child.Dispatch(args[1:])
	}
	if n.run != nil {
		return n.run(args)
	}
	fmt.Fprint(n.out, n.Help())
	if n.name == "" {
		return status.BadArgf("unrecognized command: %q", args[0])
	}
	return status.BadArgf("unrecognized %s subcommand: %q", n.name, args[0])
}

// printHelp handles the "help" pseudo-command. With no argument it prints
// the node's own help. With an argument naming a child it prints that
// child's full summary; an unknown name is reported and falls back to the
// node's help. Neither case is an error.
func (n *Node) printHelp(args []string) {
	if len(args) == 0 {
		fmt.Fprint(n.out, n.Help())
		return
	}
	if child, ok := n.children[args[0]]; ok {
		fmt.Fprintln(n.out, strings.TrimRight(child.summary, "\n"))
		return
	}
	fmt.Fprintf(n.out, "Unrecognized command: %q\n\n", args[0])
	fmt.Fprint(n.out, n.Help())
}

// Help composes the node's help text: its summary followed by one line per
// direct child, built from the child's name and the first line of its
// summary. It never descends past direct children.
func (n *Node) Help() string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(n.summary, "\n"))
	b.WriteString("\n")
	if len(n.order) == 0 {
		return b.String()
	}

	b.WriteString("\nAvailable commands:\n")
	longest := 0
	for _, name := range n.order {
		if len(name) > longest {
			longest = len(name)
		}
	}
	for _, name := range n.order {
		line := firstLine(n.children[name].summary)
		fmt.Fprintf(&b, "  %-*s  %s\n", longest, name, line)
	}
	return b.String()
}

// firstLine returns the first line of s with any trailing period removed,
// for use in one-line-per-command listings.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(strings.TrimSpace(s), ".")
}
