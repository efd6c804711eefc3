package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Timeout is how long Authenticate waits for the browser round-trip.
const Timeout = 5 * time.Minute

const successPage = `<!DOCTYPE html>
<html>
<head><title>Connected</title></head>
<body style="font-family: system-ui; text-align: center; margin-top: 20vh;">
<h1>Connected</h1>
<p>You can close this window and return to the terminal.</p>
</body>
</html>`

type callbackResult struct {
	code string
	err  error
}

// Authenticate walks the user through the browser OAuth flow using a
// local callback server and returns the exchanged token.
func Authenticate(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	state, err := newState()
	if err != nil {
		return nil, fmt.Errorf("generating state: %w", err)
	}

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", callbackHandler(state, results))

	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", CallbackPort))
	if err != nil {
		return nil, fmt.Errorf("starting callback server: %w", err)
	}

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != http.ErrServerClosed {
			results <- callbackResult{err: fmt.Errorf("callback server: %w", err)}
		}
	}()
	defer shutdown(server)

	url := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Println()
	fmt.Println("To connect your Strava account, open this URL in a browser:")
	fmt.Println()
	fmt.Printf("  %s\n", url)
	fmt.Println()
	fmt.Println("Waiting for authorization...")

	var code string
	select {
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		code = res.code
	case <-time.After(Timeout):
		return nil, fmt.Errorf("authorization timed out after %v", Timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging code for token: %w", err)
	}
	return token, nil
}

// callbackHandler validates the redirect and forwards the code or the
// failure to results.
func callbackHandler(state string, results chan<- callbackResult) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("state") != state:
			http.Error(w, "State mismatch", http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("state mismatch in callback")}
		case q.Get("error") != "":
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("authorization denied: %s", q.Get("error"))}
		case q.Get("code") == "":
			http.Error(w, "No authorization code", http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("callback carried no code")}
		default:
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, successPage)
			results <- callbackResult{code: q.Get("code")}
		}
	}
}

// newState creates a random state string for CSRF protection.
func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdown(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}
