package monitor

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// CertFields holds the raw certificate fields surfaced by the TLS
// handshake, keyed by field name. Timestamps are loosely formatted
// strings; parsing them is the expiry parser's job.
type CertFields map[string]string

const notAfterField = "notAfter"

// certFieldLayout matches the OpenSSL-style notAfter rendering,
// e.g. "Dec 31 23:59:59 2023 GMT".
const certFieldLayout = "Jan _2 15:04:05 2006 MST"

// FetchFunc obtains certificate fields for a host. Exactly one connection
// attempt per invocation; retries are not performed at any layer.
type FetchFunc func(ctx context.Context, hostname, port string, timeout time.Duration) (CertFields, error)

// FetchCertificate opens a TCP connection, performs a TLS handshake with
// hostname strictness disabled, and returns the peer certificate fields.
// Chain verification is kept so that a genuinely expired certificate still
// aborts the handshake with an error containing "certificate has expired".
func FetchCertificate(ctx context.Context, hostname, port string, timeout time.Duration) (CertFields, error) {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		Config:    handshakeConfig(hostname),
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(hostname, port))
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	tlsConn := conn.(*tls.Conn)
	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return nil, errors.New("no peer certificates presented")
	}

	leaf := certs[0]
	fields := CertFields{
		"subject":      leaf.Subject.String(),
		"issuer":       leaf.Issuer.String(),
		"serialNumber": leaf.SerialNumber.String(),
		"notBefore":    leaf.NotBefore.UTC().Format(certFieldLayout),
		notAfterField:  leaf.NotAfter.UTC().Format(certFieldLayout),
	}
	if len(leaf.DNSNames) > 0 {
		fields["subjectAltName"] = strings.Join(leaf.DNSNames, ", ")
	}
	return fields, nil
}

func handshakeConfig(hostname string) *tls.Config {
	return &tls.Config{
		ServerName:            hostname,
		InsecureSkipVerify:    true,
		VerifyPeerCertificate: verifyChainIgnoringHostname,
	}
}

// verifyChainIgnoringHostname re-verifies the presented chain without
// hostname matching (DNSName left empty). Mismatched names still hand
// back their fields; expired certificates fail here with the x509
// "certificate has expired or is not yet valid" error.
func verifyChainIgnoringHostname(rawCerts [][]byte, _ [][]*x509.Certificate) error {
	certs := make([]*x509.Certificate, 0, len(rawCerts))
	for _, raw := range rawCerts {
		cert, err := x509.ParseCertificate(raw)
		if err != nil {
			return fmt.Errorf("parse peer certificate: %w", err)
		}
		certs = append(certs, cert)
	}
	if len(certs) == 0 {
		return errors.New("no peer certificates presented")
	}

	opts := x509.VerifyOptions{
		Intermediates: x509.NewCertPool(),
	}
	for _, cert := range certs[1:] {
		opts.Intermediates.AddCert(cert)
	}

	_, err := certs[0].Verify(opts)
	return err
}
