package crypto

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// BreachClient checks passwords against a haveibeenpwned-style range API
// using the k-anonymity scheme: only the first 5 hex characters of the
// SHA-1 hash ever leave the process.
type BreachClient struct {
	baseURL string
	client  *http.Client
}

// NewBreachClient creates a client for the given range API base URL.
func NewBreachClient(baseURL string) *BreachClient {
	return &BreachClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Compromised reports whether the password appears in the breach corpus.
// The API returns newline-separated SUFFIX:COUNT lines for every hash
// sharing the submitted 5-character prefix; a match on the remaining 35
// characters means the password is compromised.
func (b *BreachClient) Compromised(ctx context.Context, password string) (bool, error) {
	sum := sha1.Sum([]byte(password))
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := hash[:5], hash[5:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/range/"+prefix, nil)
	if err != nil {
		return false, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("breach check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("breach check: unexpected status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		candidate, _, found := strings.Cut(line, ":")
		if found && candidate == suffix {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("breach check response: %w", err)
	}

	return false, nil
}
