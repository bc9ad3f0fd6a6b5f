package rpc

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// Config holds the TLS and dialing configuration of the transport.
// Leaving both key and certificate of a side empty disables TLS for that
// side.
type Config struct {
	// ServerCAs defines the set of root certificate authorities the
	// server uses to verify client certificates.
	ServerCAs        []string `json:"server_cas"`
	ServerKey        string   `json:"server_key"`
	ServerCert       string   `json:"server_cert"`
	ServerSkipVerify bool     `json:"server_skip_verify"`

	// ClientCAs defines the set of root certificate authorities the
	// client uses when verifying server certificates.
	ClientCAs        []string `json:"client_cas"`
	ClientCert       string   `json:"client_cert"`
	ClientKey        string   `json:"client_key"`
	ClientSkipVerify bool     `json:"client_skip_verify"`

	// ConnectTimeout is the maximum amount of time a dial will wait for
	// a connection to complete, in seconds.
	ConnectTimeout uint `json:"connect_timeout"`
}

// Validate checks both sides of the TLS configuration.
func (c *Config) Validate() error {
	if err := validateSide("server", c.ServerKey, c.ServerCert, c.ServerSkipVerify, c.ServerCAs); err != nil {
		return err
	}
	return validateSide("client", c.ClientKey, c.ClientCert, c.ClientSkipVerify, c.ClientCAs)
}

func validateSide(side, key, cert string, skipVerify bool, cas []string) error {
	if (key == "") != (cert == "") {
		return fmt.Errorf("incomplete %s certificate configuration", side)
	}

	// a side that uses TLS and verifies the peer needs its CAs
	if key != "" && cert != "" && !skipVerify && len(cas) == 0 {
		return fmt.Errorf("no %s CAs configured", side)
	}
	return nil
}

func (c *Config) serverTLS() (*tls.Config, error) {
	if c.ServerCert == "" || c.ServerKey == "" {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(c.ServerCert, c.ServerKey)
	if err != nil {
		return nil, err
	}

	caCertPool, err := loadCertPool(c.ServerCAs)
	if err != nil {
		return nil, err
	}

	config := &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientCAs:    caCertPool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
	}
	if c.ServerSkipVerify {
		config.ClientAuth = tls.NoClientCert
	}
	return config, nil
}

func (c *Config) clientTLS() (*tls.Config, error) {
	if c.ClientCert == "" || c.ClientKey == "" {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, err
	}

	caCertPool, err := loadCertPool(c.ClientCAs)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates:       []tls.Certificate{cert},
		RootCAs:            caCertPool,
		InsecureSkipVerify: c.ClientSkipVerify,
	}, nil
}

func loadCertPool(cas []string) (*x509.CertPool, error) {
	caCertPool := x509.NewCertPool()
	for _, ca := range cas {
		caCert, err := os.ReadFile(ca)
		if err != nil {
			return nil, err
		}
		if ok := caCertPool.AppendCertsFromPEM(caCert); !ok {
			return nil, fmt.Errorf("bad CA certificate %s", ca)
		}
	}
	return caCertPool, nil
}
