package gmail

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nalgeon/be"
	"golang.org/x/oauth2"
)

func TestTokenFileIsPrivate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	tok := &oauth2.Token{
		AccessToken:  "ya29.access",
		RefreshToken: "1//refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC),
	}

	be.Err(t, saveToken(path, tok), nil)

	info, err := os.Stat(path)
	be.Err(t, err, nil)
	be.Equal(t, info.Mode().Perm(), os.FileMode(0600))

	got, err := tokenFromFile(path)
	be.Err(t, err, nil)
	be.Equal(t, got.RefreshToken, "1//refresh")
	be.True(t, got.Expiry.Equal(tok.Expiry))
}

func TestTokenFromMissingFile(t *testing.T) {
	_, err := tokenFromFile(filepath.Join(t.TempDir(), "missing.json"))
	be.Err(t, err, os.ErrNotExist)
}

type sequenceTokenSource struct {
	tokens []*oauth2.Token
	calls  int
}

func (s *sequenceTokenSource) Token() (*oauth2.Token, error) {
	if s.calls >= len(s.tokens) {
		return nil, errors.New("no more tokens")
	}
	tok := s.tokens[s.calls]
	s.calls++
	return tok, nil
}

func TestRefreshedTokenIsSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	be.Err(t, os.WriteFile(path, []byte("untouched"), 0600), nil)

	current := &oauth2.Token{AccessToken: "old", RefreshToken: "1//refresh"}
	refreshed := &oauth2.Token{AccessToken: "new", RefreshToken: "1//refresh"}
	base := &sequenceTokenSource{tokens: []*oauth2.Token{current, refreshed, refreshed}}
	ts := newSavingTokenSource(base, path, current)

	// unchanged token leaves the file alone
	tok, err := ts.Token()
	be.Err(t, err, nil)
	be.Equal(t, tok.AccessToken, "old")
	data, err := os.ReadFile(path)
	be.Err(t, err, nil)
	be.Equal(t, string(data), "untouched")

	_, err = ts.Token()
	be.Err(t, err, nil)

	saved, err := tokenFromFile(path)
	be.Err(t, err, nil)
	be.Equal(t, saved.AccessToken, "new")

	_, err = ts.Token()
	be.Err(t, err, nil)
	be.Equal(t, base.calls, 3)
}

func TestTokenSourceFault(t *testing.T) {
	ts := newSavingTokenSource(&sequenceTokenSource{}, filepath.Join(t.TempDir(), "token.json"), nil)

	_, err := ts.Token()
	be.Err(t, err, "no more tokens")
}
