package upload

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// State is the lifecycle of an access token.
type State int

const (
	Unauthenticated State = iota
	Pending
	Authenticated
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Authenticated:
		return "authenticated"
	}
	return "unauthenticated"
}

// Google endpoints for the installed application flow.
var GoogleEndpoint = oauth2.Endpoint{
	AuthURL:   "https://accounts.google.com/o/oauth2/auth",
	TokenURL:  "https://oauth2.googleapis.com/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// DriveFileScope limits access to files created by this application.
const DriveFileScope = "https://www.googleapis.com/auth/drive.file"

// Credentials configure token acquisition.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccessToken  string
	// TokenURL overrides GoogleEndpoint.TokenURL when set.
	TokenURL string
}

// TokenProvider hands out bearer tokens.
type TokenProvider interface {
	Acquire(ctx context.Context) (string, error)
}

// SourceFunc returns the token source used for one acquisition. prev is the
// last token handed out, or nil. Requests made by the source must honour ctx.
type SourceFunc func(ctx context.Context, prev *oauth2.Token) oauth2.TokenSource

// Auth tracks a single access token through the Unauthenticated, Pending
// and Authenticated states. Concurrent callers share one acquisition.
type Auth struct {
	sourceFor SourceFunc

	mu      sync.Mutex
	state   State
	token   *oauth2.Token
	waiting chan struct{}
}

// NewAuth wraps a token source that does not depend on the caller's
// context.
func NewAuth(source oauth2.TokenSource) *Auth {
	return NewAuthFunc(func(context.Context, *oauth2.Token) oauth2.TokenSource { return source })
}

// NewAuthFunc builds an Auth that asks fn for a source on every
// acquisition.
func NewAuthFunc(fn SourceFunc) *Auth {
	return &Auth{sourceFor: fn}
}

// NewGoogleAuth builds an Auth that refreshes tokens against Google's token
// endpoint. With only an access token the token is used until it is
// rejected.
func NewGoogleAuth(c Credentials) *Auth {
	if c.RefreshToken == "" {
		return NewAuth(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.AccessToken}))
	}
	endpoint := GoogleEndpoint
	if c.TokenURL != "" {
		endpoint.TokenURL = c.TokenURL
	}
	cfg := &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       []string{DriveFileScope},
	}
	return NewAuthFunc(func(ctx context.Context, prev *oauth2.Token) oauth2.TokenSource {
		seed := &oauth2.Token{AccessToken: c.AccessToken, RefreshToken: c.RefreshToken}
		if prev != nil {
			seed = &oauth2.Token{RefreshToken: prev.RefreshToken}
			if seed.RefreshToken == "" {
				seed.RefreshToken = c.RefreshToken
			}
		}
		return cfg.TokenSource(ctx, seed)
	})
}

// State reports the current state and, when authenticated, the token
// expiry. A zero expiry means the token does not expire.
func (a *Auth) State() (State, time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case a.state == Pending:
		return Pending, time.Time{}
	case a.state == Authenticated && a.token.Valid():
		return Authenticated, a.token.Expiry
	}
	return Unauthenticated, time.Time{}
}

// Acquire returns a valid access token, fetching or refreshing one if
// needed. Callers arriving while a fetch is pending wait for its result.
// The fetch itself runs under ctx of the caller that started it.
func (a *Auth) Acquire(ctx context.Context) (string, error) {
	for {
		a.mu.Lock()
		if a.state == Authenticated && a.token.Valid() {
			tok := a.token.AccessToken
			a.mu.Unlock()
			return tok, nil
		}
		if a.state == Pending {
			wait := a.waiting
			a.mu.Unlock()
			select {
			case <-wait:
				continue
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %w", ErrAuth, ctx.Err())
			}
		}
		a.state = Pending
		a.waiting = make(chan struct{})
		prev := a.token
		a.mu.Unlock()

		tok, err := a.sourceFor(ctx, prev).Token()

		a.mu.Lock()
		close(a.waiting)
		if err != nil || tok == nil || tok.AccessToken == "" {
			a.state = Unauthenticated
			a.mu.Unlock()
			if err == nil {
				err = fmt.Errorf("empty access token")
			}
			return "", fmt.Errorf("%w: %w", ErrAuth, err)
		}
		a.state = Authenticated
		a.token = tok
		a.mu.Unlock()
		return tok.AccessToken, nil
	}
}

// Invalidate drops the current access token, for example after the server
// rejected it. The refresh token is kept for the next acquisition.
func (a *Auth) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == Authenticated {
		a.state = Unauthenticated
		a.token = &oauth2.Token{RefreshToken: a.token.RefreshToken}
	}
}
