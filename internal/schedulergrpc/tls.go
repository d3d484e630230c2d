package schedulergrpc

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"pkt.systems/glharness/schema"
)

// ClientTLS builds the mutual TLS configuration for a client identity.
func ClientTLS(caCrtPath, crtPath, keyPath string) (*tls.Config, error) {
	pool, err := loadPool(caCrtPath)
	if err != nil {
		return nil, err
	}
	pair, err := tls.LoadX509KeyPair(crtPath, keyPath)
	if err != nil {
		return nil, schema.NewError(schema.KindConfiguration, "tls client load", err)
	}
	return &tls.Config{
		RootCAs:      pool,
		Certificates: []tls.Certificate{pair},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// ServerTLS builds the server side of the mutual TLS configuration. Client
// certificates are required and verified against the same authority.
func ServerTLS(caCrtPath, crtPath, keyPath string) (*tls.Config, error) {
	pool, err := loadPool(caCrtPath)
	if err != nil {
		return nil, err
	}
	pair, err := tls.LoadX509KeyPair(crtPath, keyPath)
	if err != nil {
		return nil, schema.NewError(schema.KindConfiguration, "tls server load", err)
	}
	return &tls.Config{
		ClientCAs:    pool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
		Certificates: []tls.Certificate{pair},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func loadPool(caCrtPath string) (*x509.CertPool, error) {
	if caCrtPath == "" {
		return nil, schema.NewError(schema.KindConfiguration, "tls authority load",
			errors.New("authority certificate path is required"))
	}
	caPEM, err := os.ReadFile(caCrtPath)
	if err != nil {
		return nil, schema.NewError(schema.KindConfiguration, "tls authority load", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, schema.NewError(schema.KindConfiguration, "tls authority load",
			fmt.Errorf("no certificates parsed from %s", caCrtPath))
	}
	return pool, nil
}
