/*
Copyright The Getfile Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// TLSConfigOptions collects the settings used to build a client tls.Config.
type TLSConfigOptions struct {
	insecureSkipTLSVerify bool
	caPEMBlock            []byte
}

// TLSConfigOption mutates TLSConfigOptions, failing if its input cannot be read.
type TLSConfigOption func(options *TLSConfigOptions) error

// WithInsecureSkipVerify disables verification of the server certificate chain.
func WithInsecureSkipVerify(insecureSkipTLSVerify bool) TLSConfigOption {
	return func(options *TLSConfigOptions) error {
		options.insecureSkipTLSVerify = insecureSkipTLSVerify

		return nil
	}
}

// WithCAFile trusts the PEM encoded certificates found in caFile. An empty
// name leaves the system roots in place.
func WithCAFile(caFile string) TLSConfigOption {
	return func(options *TLSConfigOptions) error {
		if caFile == "" {
			return nil
		}

		caPEMBlock, err := os.ReadFile(caFile)
		if err != nil {
			return errors.Wrapf(err, "can't read CA file: %q", caFile)
		}

		options.caPEMBlock = caPEMBlock

		return nil
	}
}

// NewTLSConfig builds a client tls.Config. Every option is applied and all
// failures are reported together.
func NewTLSConfig(options ...TLSConfigOption) (*tls.Config, error) {
	to := TLSConfigOptions{}

	var errs *multierror.Error
	for _, option := range options {
		if err := option(&to); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	config := tls.Config{
		InsecureSkipVerify: to.insecureSkipTLSVerify,
	}

	if len(to.caPEMBlock) > 0 {
		cp := x509.NewCertPool()
		if !cp.AppendCertsFromPEM(to.caPEMBlock) {
			return nil, errors.New("failed to append certificates from pem block")
		}

		config.RootCAs = cp
	}

	return &config, nil
}
