// Package provider classifies failures reported by the remote model
// provider so callers can surface them without leaking raw SDK errors.
package provider

import (
	"errors"
	"strings"
)

// ErrCredentialsMissing signals that no provider API key was configured.
var ErrCredentialsMissing = errors.New("provider credentials missing")

// CredentialsMessage is the only text ever shown to users for a
// credential-shaped failure, regardless of what the provider reported.
const CredentialsMessage = "OpenAI API key not configured. Set OPENAI_API_KEY in the environment."

// credentialMarkers are substrings that indicate a credential problem when
// the error originates from the remote service rather than local config.
var credentialMarkers = []string{
	"api key",
	"api_key",
	"invalid_api_key",
	"incorrect api key",
	"401",
	"unauthorized",
	"missing bearer",
}

// IsCredentialError reports whether err looks like a configuration problem
// with the provider credential. Typed detection via ErrCredentialsMissing is
// preferred; substring matching covers errors surfaced by the remote side.
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrCredentialsMissing) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range credentialMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Normalize converts a provider failure into a user-safe message. Credential
// errors collapse to CredentialsMessage; everything else passes through.
func Normalize(err error) string {
	if err == nil {
		return ""
	}
	if IsCredentialError(err) {
		return CredentialsMessage
	}
	return err.Error()
}
