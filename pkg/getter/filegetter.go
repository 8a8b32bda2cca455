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
	"bytes"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileGetter reads file:// URLs from the local filesystem.
type FileGetter struct {
	opts getterOptions
}

// Get returns the content of the file named by href.
func (g *FileGetter) Get(href string, _ ...Option) (*bytes.Buffer, error) {
	u, err := url.Parse(href)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse URL getting from")
	}
	if u.Host != "" && u.Host != "localhost" {
		return nil, errors.Errorf("file URL %s must not name a remote host", href)
	}
	data, err := os.ReadFile(filepath.FromSlash(u.Path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", href)
	}
	return bytes.NewBuffer(data), nil
}

// NewFileGetter constructs a Getter for the file scheme.
func NewFileGetter(options ...Option) (Getter, error) {
	var g FileGetter
	for _, opt := range options {
		opt(&g.opts)
	}
	return &g, nil
}
