package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/pikshare/internal/palette"
)

type colorsCmd struct {
	*root
	fs  *flag.FlagSet
	out io.Writer
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	entries := palette.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "no colors available")
		return nil
	}
	fmt.Fprintln(c.out, "available palette colors (* marks the default color):")
	for idx, entry := range entries {
		marker := " "
		if idx == palette.DefaultIndex {
			marker = "*"
		}
		hex := palette.Hex(entry.Color)
		name := entry.Name
		if name == "" {
			name = hex
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.out, "%s %2d: %-12s %s %s\n", marker, idx, name, hex, block)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
