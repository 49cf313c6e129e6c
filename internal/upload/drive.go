package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const publicURLFormat = "https://drive.google.com/uc?export=view&id=%s"

// Drive uploads PNG images to Google Drive and shares them with anyone who
// has the link.
type Drive struct {
	auth     TokenProvider
	client   *http.Client
	endpoint string
	folder   string
}

// DriveOption configures a Drive uploader.
type DriveOption func(*Drive)

// WithHTTPClient sets the client whose transport and timeout carry API
// calls.
func WithHTTPClient(c *http.Client) DriveOption { return func(d *Drive) { d.client = c } }

// WithEndpoint overrides the Drive API base URL, for example
// "http://127.0.0.1:8080/drive/v3/". Media uploads go to the same host.
func WithEndpoint(base string) DriveOption { return func(d *Drive) { d.endpoint = base } }

// WithFolder stores uploads inside the given Drive folder id.
func WithFolder(id string) DriveOption { return func(d *Drive) { d.folder = id } }

// NewDrive creates a Drive uploader authorised by auth.
func NewDrive(auth TokenProvider, opts ...DriveOption) *Drive {
	d := &Drive{
		auth:   auth,
		client: &http.Client{Timeout: 60 * time.Second},
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Upload stores blob, grants public read access and returns the view URL.
func (d *Drive) Upload(ctx context.Context, blob []byte, name string) (string, error) {
	token, err := d.auth.Acquire(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}
	srv, err := d.service(ctx, token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}

	meta := &drive.File{Name: name, MimeType: "image/png", Parents: d.parents()}
	created, err := srv.Files.Create(meta).
		Media(bytes.NewReader(blob), googleapi.ContentType("image/png")).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", d.fail("create file", err)
	}
	if created.Id == "" {
		return "", fmt.Errorf("%w: create file: response has no id", ErrUpload)
	}

	perm := &drive.Permission{Role: "reader", Type: "anyone"}
	if _, err := srv.Permissions.Create(created.Id, perm).Context(ctx).Do(); err != nil {
		return "", d.fail("share file", err)
	}
	return fmt.Sprintf(publicURLFormat, url.QueryEscape(created.Id)), nil
}

func (d *Drive) service(ctx context.Context, token string) (*drive.Service, error) {
	client := &http.Client{
		Timeout: d.client.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   d.client.Transport,
		},
	}
	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if d.endpoint != "" {
		opts = append(opts, option.WithEndpoint(d.endpoint))
	}
	return drive.NewService(ctx, opts...)
}

// fail wraps an API error and drops the token when the server rejected it.
func (d *Drive) fail(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized {
		if inv, ok := d.auth.(interface{ Invalidate() }); ok {
			inv.Invalidate()
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrUpload, op, err)
}

func (d *Drive) parents() []string {
	if d.folder == "" {
		return nil
	}
	return []string{d.folder}
}
