package main

import (
	"context"
	"fmt"

	"github.com/slashline/slashline/pkg/cli"
)

func registerCommands(c *cli.CLI) error {
	if err := c.Register("/greet", "Print a greeting", cmdGreet,
		&cli.Param{Name: "name", Values: []string{"alice", "bob"}},
		&cli.Param{Name: "greeting", Optional: true, Values: []string{"hello", "hey"}},
	); err != nil {
		return err
	}

	if err := c.Register("/echo", "Print the given text", cmdEcho,
		&cli.Param{Name: "text"},
	); err != nil {
		return err
	}

	cluster := cli.NewGroup("cluster", "Cluster membership commands")
	if err := cluster.Register("/add", "Add a node to the cluster", cmdClusterAdd,
		&cli.Param{Name: "node"},
		&cli.Param{Name: "role", Optional: true, Values: []string{"worker", "control-plane"}},
	); err != nil {
		return err
	}
	if err := cluster.Register("/remove", "Remove a node from the cluster", cmdClusterRemove,
		&cli.Param{Name: "node"},
	); err != nil {
		return err
	}
	if err := cluster.Register("/status", "Show cluster membership", cmdClusterStatus); err != nil {
		return err
	}

	return c.Merge(cluster, "cluster")
}

func cmdGreet(ctx context.Context, inv *cli.Invocation) error {
	greeting := inv.Arg("greeting")
	if greeting == "" {
		greeting = "hello"
	}
	fmt.Printf("%s, %s\n", greeting, inv.Arg("name"))
	return nil
}

func cmdEcho(ctx context.Context, inv *cli.Invocation) error {
	fmt.Println(inv.Arg("text"))
	return nil
}

func cmdClusterAdd(ctx context.Context, inv *cli.Invocation) error {
	role := inv.Arg("role")
	if role == "" {
		role = "worker"
	}
	fmt.Printf("added node %s as %s\n", inv.Arg("node"), role)
	return nil
}

func cmdClusterRemove(ctx context.Context, inv *cli.Invocation) error {
	fmt.Printf("removed node %s\n", inv.Arg("node"))
	return nil
}

func cmdClusterStatus(ctx context.Context, inv *cli.Invocation) error {
	fmt.Println("cluster: standalone")
	return nil
}

// manifestHandlers names the handlers a YAML manifest may bind to.
func manifestHandlers() map[string]cli.Handler {
	return map[string]cli.Handler{
		"greet":          cmdGreet,
		"echo":           cmdEcho,
		"cluster.add":    cmdClusterAdd,
		"cluster.remove": cmdClusterRemove,
		"cluster.status": cmdClusterStatus,
	}
}
