package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

var scopes = []string{
	gmail.GmailModifyScope,
	gmail.GmailLabelsScope,
	gmail.GmailSendScope,
}

// NewService authorizes with the OAuth client in credentialsPath and the
// token cached in tokenPath, running the browser flow when no token exists.
func NewService(ctx context.Context, credentialsPath, tokenPath string) (*gmail.Service, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", credentialsPath, err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", credentialsPath, err)
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		log.Printf("%s not found - starting OAuth flow", tokenPath)
		tok, err = getTokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, tok); err != nil {
			log.Printf("Cannot save token: %v", err)
		}
	}

	ts := newSavingTokenSource(config.TokenSource(ctx, tok), tokenPath, tok)
	srv, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("cannot create gmail service: %w", err)
	}

	return srv, nil
}

func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Println("1) Copy this URL and open it in your browser:")
	fmt.Println(authURL)
	fmt.Println("\n2) Sign in and accept the permissions.")
	fmt.Print("3) Paste the authorization code here: ")

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("cannot read auth code: %w", err)
	}

	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("cannot exchange code for token: %w", err)
	}
	return tok, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return err
	}
	log.Printf("Token saved to %s", path)
	return nil
}

// savingTokenSource writes every refreshed token back to the token file so
// the next start does not need to refresh again.
type savingTokenSource struct {
	base oauth2.TokenSource
	path string

	mu   sync.Mutex
	last *oauth2.Token
}

func newSavingTokenSource(base oauth2.TokenSource, path string, current *oauth2.Token) *savingTokenSource {
	return &savingTokenSource{base: base, path: path, last: current}
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		if err := saveToken(s.path, tok); err != nil {
			log.Printf("Cannot save refreshed token: %v", err)
		}
		s.last = tok
	}
	return tok, nil
}
