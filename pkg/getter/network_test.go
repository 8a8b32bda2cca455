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

package getter

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/phayes/freeport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadByHostName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "served for %s", r.Host)
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	u.Host = fmt.Sprintf("%s:%s", mirrorHost, u.Port())
	u.Path = "/data.tgz"

	g, err := NewHTTPGetter()
	require.NoError(t, err)

	got, err := g.Get(u.String())
	require.NoError(t, err)
	assert.Equal(t, "served for "+u.Host, got.String())
}

func TestDownloadUnknownHost(t *testing.T) {
	g, err := NewHTTPGetter()
	require.NoError(t, err)

	_, err = g.Get("http://missing.getfile-test-mirror/data.tgz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such host")
}

func TestDownloadConnectionRefused(t *testing.T) {
	port, err := freeport.GetFreePort()
	require.NoError(t, err, "failed to find a free port")

	g, err := NewHTTPGetter()
	require.NoError(t, err)

	_, err = g.Get(fmt.Sprintf("http://127.0.0.1:%d/data.tgz", port))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
