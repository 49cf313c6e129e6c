package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/example/pikshare/internal/clipboard"
	"github.com/example/pikshare/internal/editor"
)

// writeLinkFn copies the public link. Tests replace it.
var writeLinkFn = clipboard.WriteText

// uploadCmd uploads one image and prints its public link.
type uploadCmd struct {
	file     string
	copyLink bool
	timeout  time.Duration
	*root
	fs *flag.FlagSet
}

func (u *uploadCmd) FlagSet() *flag.FlagSet {
	return u.fs
}

func parseUploadCmd(args []string, r *root) (*uploadCmd, error) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	u := &uploadCmd{root: r, fs: fs}
	fs.Usage = usageFunc(u)
	fs.BoolVar(&u.copyLink, "copy-link", false, "copy the link to the clipboard")
	fs.DurationVar(&u.timeout, "timeout", 2*time.Minute, "give up after this long")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: u}
	}
	u.file = fs.Arg(0)
	return u, nil
}

func (u *uploadCmd) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), u.timeout)
	defer cancel()

	if !u.cfg().Upload.Configured() {
		return errors.New("upload is not configured: set client_id and refresh_token or access_token in [upload]")
	}
	sess := u.newSession(ctx)
	if err := sess.LoadFile(u.file); err != nil {
		return err
	}
	done := make(chan editor.UploadResult, 1)
	if err := sess.UploadAsync(ctx, func(res editor.UploadResult) { done <- res }); err != nil {
		return fmt.Errorf("upload %s: %w", u.file, err)
	}
	res := <-done
	u.notifyUpload(res.URL, res.Err)
	if res.Err != nil {
		return fmt.Errorf("upload %s: %w", u.file, res.Err)
	}
	fmt.Fprintf(os.Stderr, "uploaded %s\n", res.Name)
	fmt.Println(res.URL)
	if u.copyLink {
		if err := writeLinkFn(res.URL); err != nil {
			return fmt.Errorf("copy link: %w", err)
		}
		fmt.Fprintln(os.Stderr, "link copied to clipboard")
	}
	return nil
}
