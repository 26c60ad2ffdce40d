// catalogtool is a CLI utility for working with placeable object
// catalogs.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/buildmode/internal/catalog"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "check":
		cmdCheck(args)
	case "list", "ls":
		cmdList(args)
	case "show":
		cmdShow(args)
	case "init":
		cmdInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`catalogtool - placeable object catalog utility

Usage:
  catalogtool <command> [options]

Commands:
  check <catalog.yaml>      Validate a catalog file
  list <catalog.yaml>       List entries with slot, category and extents
  show <catalog.yaml> <id>  Show one entry with its parts
  init <output.yaml>        Write the builtin catalog as a starting point

Examples:
  catalogtool check objects.yaml
  catalogtool list objects.yaml
  catalogtool show objects.yaml crate
  catalogtool init objects.yaml`)
}

func openCatalog(path string) *catalog.Catalog {
	cat, err := catalog.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cat
}

func cmdCheck(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: catalogtool check <catalog.yaml>")
		os.Exit(1)
	}

	cat := openCatalog(args[0])

	counts := make(map[string]int)
	for _, e := range cat.Entries() {
		counts[e.Category.String()]++
	}

	fmt.Printf("OK: %d entries (%d ground, %d wall, %d ceiling)\n",
		cat.Len(), counts["ground"], counts["wall"], counts["ceiling"])
}

func cmdList(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: catalogtool list <catalog.yaml>")
		os.Exit(1)
	}

	cat := openCatalog(args[0])

	fmt.Printf("%-4s %-16s %-20s %-8s %s\n", "slot", "id", "name", "surface", "extents (w x h x d)")
	for slot := 1; slot <= cat.Len(); slot++ {
		e := cat.At(slot)
		fmt.Printf("%-4d %-16s %-20s %-8s %g x %g x %g\n",
			slot, e.ID, e.Name, e.Category, e.Extents.Width, e.Extents.Height, e.Extents.Depth)
	}
}

func cmdShow(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: catalogtool show <catalog.yaml> <id>")
		os.Exit(1)
	}

	cat := openCatalog(args[0])

	e, ok := cat.Find(args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "Entry not found: %s\n", args[1])
		os.Exit(1)
	}

	fmt.Printf("ID:       %s\n", e.ID)
	fmt.Printf("Name:     %s\n", e.Name)
	fmt.Printf("Surface:  %s\n", e.Category)
	fmt.Printf("Extents:  %g x %g x %g\n", e.Extents.Width, e.Extents.Height, e.Extents.Depth)
	fmt.Println("Parts:")
	for _, p := range e.Parts {
		flags := ""
		if p.Solid {
			flags += " solid"
		}
		if p.Anchor {
			flags += " anchor"
		}
		fmt.Printf("  %-12s offset (%g, %g, %g)  size %g x %g x %g%s\n",
			p.Name, p.Offset.X, p.Offset.Y, p.Offset.Z, p.Size.X, p.Size.Y, p.Size.Z, flags)
	}
}

func cmdInit(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: catalogtool init <output.yaml>")
		os.Exit(1)
	}

	path := args[0]
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "Refusing to overwrite existing file: %s\n", path)
		os.Exit(1)
	}

	data, err := catalog.Builtin().Encode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d entries)\n", path, catalog.Builtin().Len())
}
