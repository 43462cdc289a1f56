// Package certs loads the optional TLS key pair the server terminates with.
package certs

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"time"
)

var ErrNoLeaf = errors.New("certs: key pair has no certificate")

// CertManager holds the paths of a PEM certificate chain and its key.
type CertManager struct {
	certFile string
	keyFile  string
}

func NewCertManager(certFile, keyFile string) *CertManager {
	return &CertManager{certFile: certFile, keyFile: keyFile}
}

// Load reads the key pair and parses its leaf certificate.
func (cm *CertManager) Load() (tls.Certificate, *x509.Certificate, error) {
	pair, err := tls.LoadX509KeyPair(cm.certFile, cm.keyFile)
	if err != nil {
		return tls.Certificate{}, nil, fmt.Errorf("load key pair (%s): %w", cm.certFile, err)
	}
	if len(pair.Certificate) == 0 {
		return tls.Certificate{}, nil, ErrNoLeaf
	}
	leaf, err := x509.ParseCertificate(pair.Certificate[0])
	if err != nil {
		return tls.Certificate{}, nil, fmt.Errorf("parse leaf (%s): %w", cm.certFile, err)
	}
	pair.Leaf = leaf
	return pair, leaf, nil
}

// TLSConfig loads the pair into a server config. Expired certificates are
// refused rather than served.
func (cm *CertManager) TLSConfig(now time.Time) (*tls.Config, *x509.Certificate, error) {
	pair, leaf, err := cm.Load()
	if err != nil {
		return nil, nil, err
	}
	if IsExpired(leaf, now) {
		return nil, leaf, fmt.Errorf("certificate %s expired at %s", leaf.Subject.CommonName, leaf.NotAfter.Format(time.RFC3339))
	}
	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{pair},
	}, leaf, nil
}

func IsExpired(cert *x509.Certificate, now time.Time) bool {
	return cert.NotAfter.Before(now)
}

// ExpiresWithin reports whether cert lapses before now+d.
func ExpiresWithin(cert *x509.Certificate, now time.Time, d time.Duration) bool {
	return cert.NotAfter.Before(now.Add(d))
}
