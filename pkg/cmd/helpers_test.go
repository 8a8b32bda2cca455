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

package cmd

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"

	"getfile.sh/getfile/internal/test"
	"getfile.sh/getfile/pkg/cli"
)

func runTestCmd(t *testing.T, tests []cmdTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer resetEnv()()

			t.Logf("running cmd: %s", tt.cmd)
			_, out, errOut, err := executeCommandC(tt.cmd)
			if tt.wantError && err == nil {
				t.Errorf("expected error, got success with the following output:\n%s", out)
			}
			if !tt.wantError && err != nil {
				t.Errorf("expected no error, got: '%v'", err)
			}
			if tt.golden != "" {
				test.AssertGoldenString(t, out, tt.golden)
			}
			if tt.goldenErr != "" {
				test.AssertGoldenString(t, errOut, tt.goldenErr)
			}
		})
	}
}

// executeCommandC runs cmd against a fresh root command and returns what was
// written to stdout and stderr.
func executeCommandC(cmd string) (*cobra.Command, string, string, error) {
	args, err := shellwords.Parse(cmd)
	if err != nil {
		return nil, "", "", err
	}
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}

	settings = cli.New()

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)

	root := NewRootCmd(out)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)

	c, err := root.ExecuteC()
	return c, out.String(), errOut.String(), err
}

// cmdTestCase describes a test case for the getfile command.
type cmdTestCase struct {
	name      string
	cmd       string
	golden    string
	goldenErr string
	wantError bool
}

func resetEnv() func() {
	origEnv := os.Environ()
	return func() {
		os.Clearenv()
		for _, pair := range origEnv {
			kv := strings.SplitN(pair, "=", 2)
			os.Setenv(kv[0], kv[1])
		}
		settings = cli.New()
	}
}

func zipBytes(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// fileServer serves files by path and records the User-Agent of the last request.
type fileServer struct {
	*httptest.Server
	files map[string][]byte

	mu        sync.Mutex
	hits      int
	userAgent string
}

func (fs *fileServer) lastUserAgent() string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.userAgent
}

func (fs *fileServer) requests() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits
}

func newFileServer(t *testing.T, files map[string][]byte) *fileServer {
	t.Helper()
	fs := &fileServer{files: files}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.hits++
		fs.userAgent = r.UserAgent()
		fs.mu.Unlock()
		body, ok := fs.files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	t.Cleanup(fs.Close)
	return fs
}
