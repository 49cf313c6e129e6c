package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/pikshare/internal/imageio"
	"github.com/example/pikshare/internal/script"
)

// replayCmd applies a YAML edit script to an image.
type replayCmd struct {
	path   string
	image  string
	output string
	dump   bool
	*root
	fs *flag.FlagSet
}

func (p *replayCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	p := &replayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	fs.StringVar(&p.image, "image", "", "image to edit (overrides the script)")
	fs.StringVar(&p.output, "output", "", "output file path (overrides the script)")
	fs.BoolVar(&p.dump, "print", false, "print the parsed script instead of running it")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: p}
	}
	p.path = fs.Arg(0)
	return p, nil
}

func (p *replayCmd) Run() error {
	sc, err := script.Load(p.path)
	if err != nil {
		return err
	}
	if p.dump {
		out, err := sc.Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}

	imagePath := sc.ImagePath()
	if p.image != "" {
		imagePath = p.image
	}
	if imagePath == "" {
		return fmt.Errorf("%s: no image given", p.path)
	}
	sess := p.newSession(context.Background())
	if err := sess.LoadFile(imagePath); err != nil {
		return err
	}
	if err := sc.Run(sess); err != nil {
		return fmt.Errorf("%s: %w", p.path, err)
	}

	output := p.outputPath(sc, imagePath)
	if err := sess.SaveFile(output); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "applied %d steps, %d shapes, saved %s\n", len(sc.Steps), sess.Model().Len(), output)
	p.notifySave(output)
	return nil
}

// outputPath picks the flag, then the script's output relative to the
// script, then the derived save name next to the image.
func (p *replayCmd) outputPath(sc *script.Script, imagePath string) string {
	switch {
	case p.output != "":
		return p.output
	case sc.Output != "" && filepath.IsAbs(sc.Output):
		return sc.Output
	case sc.Output != "":
		return filepath.Join(filepath.Dir(p.path), sc.Output)
	}
	return filepath.Join(filepath.Dir(imagePath), "annotated-"+imageio.SaveName(imagePath))
}
