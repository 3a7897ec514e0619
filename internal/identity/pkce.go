package identity

import "golang.org/x/oauth2"

// pkce is a proof key for a single authorization code exchange.
type pkce struct {
	Verifier  string
	Challenge string
}

func newPKCE() pkce {
	verifier := oauth2.GenerateVerifier()
	return pkce{
		Verifier:  verifier,
		Challenge: oauth2.S256ChallengeFromVerifier(verifier),
	}
}
