// Package push exposes the web-push key material clients need to
// subscribe for browser push notifications.
package push

import "errors"

// ErrNotConfigured signals that no VAPID key pair was provisioned.
var ErrNotConfigured = errors.New("push notifications not configured")

// Provider serves the configured VAPID public key. The private key never
// leaves the environment; this component only hands out the public half.
type Provider struct {
	publicKey string
}

func NewProvider(publicKey string) *Provider {
	return &Provider{publicKey: publicKey}
}

// PublicKey returns the configured public key, or ErrNotConfigured.
func (p *Provider) PublicKey() (string, error) {
	if p.publicKey == "" {
		return "", ErrNotConfigured
	}
	return p.publicKey, nil
}
