// Certificate material loading from .p12 (PKCS#12) or PEM pairs.
package certfile

import (
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/pkcs12"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
)

// LoadFromP12 loads certificate and private key from a .p12/.pfx file.
// password may be empty when the file is unprotected.
func LoadFromP12(path, password string) (tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("read p12: %w", err)
	}
	priv, cert, err := pkcs12.Decode(data, password)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("decode p12: %w", err)
	}
	// pkcs12.Decode returns a single certificate; the leaf is enough here.
	return tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  priv,
		Leaf:        cert,
	}, nil
}

// LoadFromPEM loads certificate and key from PEM files, either separate or
// combined in one file.
func LoadFromPEM(certPath, keyPath string) (tls.Certificate, error) {
	if certPath == "" {
		return tls.Certificate{}, domain.ErrCertificateUnavailable
	}
	if keyPath == "" {
		keyPath = certPath
	}
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("load PEM: %w", err)
	}
	return cert, nil
}

// ExtractData derives the QR-facing certificate record from a loaded
// certificate: public key (base64 SubjectPublicKeyInfo), SHA-256 digest as
// the signature-identifying value, serial and issuer.
func ExtractData(cert tls.Certificate) (*entity.CertificateData, error) {
	leaf := cert.Leaf
	if leaf == nil {
		if len(cert.Certificate) == 0 {
			return nil, domain.ErrCertificateUnavailable
		}
		parsed, err := x509.ParseCertificate(cert.Certificate[0])
		if err != nil {
			return nil, fmt.Errorf("parse certificate: %w", err)
		}
		leaf = parsed
	}

	pub, err := x509.MarshalPKIXPublicKey(leaf.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}
	digest := sha256.Sum256(leaf.Raw)

	return &entity.CertificateData{
		PublicKey:    base64.StdEncoding.EncodeToString(pub),
		Signature:    base64.StdEncoding.EncodeToString(digest[:]),
		SerialNumber: leaf.SerialNumber.Text(16),
		IssuerName:   leaf.Issuer.String(),
	}, nil
}
