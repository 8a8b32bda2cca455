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

/*
Package cli describes the operating environment for the getfile CLI.

Every setting can be supplied through a GETFILE_* environment variable and
overridden by the matching command line flag.
*/
package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"getfile.sh/getfile/internal/version"
)

// defaultTimeout mirrors getter.DefaultHTTPTimeout; pkg/getter imports this
// package so the constant cannot be shared directly.
const defaultTimeout = 120 * time.Second

// EnvSettings describes all of the environment settings.
type EnvSettings struct {
	// Debug indicates whether or not getfile is running in Debug mode.
	Debug bool
	// Timeout bounds a single HTTP request. Zero disables the limit.
	Timeout time.Duration
	// UserAgent is sent with every HTTP request.
	UserAgent string
	// InsecureSkipTLSVerify disables server certificate verification.
	InsecureSkipTLSVerify bool
	// CAFile is an extra PEM bundle trusted for HTTPS downloads.
	CAFile string
}

// New returns settings populated from the environment.
func New() *EnvSettings {
	env := &EnvSettings{
		Timeout:   envDurationOr("GETFILE_TIMEOUT", defaultTimeout),
		UserAgent: envOr("GETFILE_USER_AGENT", version.GetUserAgent()),
		CAFile:    os.Getenv("GETFILE_CA_FILE"),
	}
	env.Debug, _ = strconv.ParseBool(os.Getenv("GETFILE_DEBUG"))
	env.InsecureSkipTLSVerify, _ = strconv.ParseBool(os.Getenv("GETFILE_INSECURE_SKIP_TLS_VERIFY"))
	return env
}

// AddFlags binds flags to the given flagset.
func (s *EnvSettings) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&s.Debug, "debug", s.Debug, "enable verbose output")
	fs.DurationVar(&s.Timeout, "timeout", s.Timeout, "time to wait for the remote server, 0 waits forever")
	fs.StringVar(&s.UserAgent, "user-agent", s.UserAgent, "User-Agent header sent with the request")
	fs.BoolVar(&s.InsecureSkipTLSVerify, "insecure-skip-tls-verify", s.InsecureSkipTLSVerify, "skip tls certificate checks for the download")
	fs.StringVar(&s.CAFile, "ca-file", s.CAFile, "verify certificates of HTTPS-enabled servers using this CA bundle")
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return def
}

func envDurationOr(name string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// bare numbers are read as seconds
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

// EnvVars returns the effective settings keyed by their environment variable.
func (s *EnvSettings) EnvVars() map[string]string {
	return map[string]string{
		"GETFILE_BIN":                      os.Args[0],
		"GETFILE_DEBUG":                    fmt.Sprint(s.Debug),
		"GETFILE_TIMEOUT":                  s.Timeout.String(),
		"GETFILE_USER_AGENT":               s.UserAgent,
		"GETFILE_INSECURE_SKIP_TLS_VERIFY": strconv.FormatBool(s.InsecureSkipTLSVerify),
		"GETFILE_CA_FILE":                  s.CAFile,
	}
}
