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

package action

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"getfile.sh/getfile/internal/fileutil"
	"getfile.sh/getfile/internal/logging"
	"getfile.sh/getfile/pkg/cli"
	"getfile.sh/getfile/pkg/getter"
)

// Fetch is the action for downloading a single remote file.
//
// It provides the download half of 'getfile'.
type Fetch struct {
	logging.LogHolder

	Settings *cli.EnvSettings
	// Getters overrides the providers built from Settings.
	Getters getter.Providers
	// DestDir must already exist.
	DestDir string
}

// NewFetch creates a new Fetch object with the given settings.
func NewFetch(settings *cli.EnvSettings) *Fetch {
	return &Fetch{Settings: settings}
}

// Run downloads src into DestDir and returns the path of the written file.
// Preconditions are checked before any network activity.
func (f *Fetch) Run(src string) (string, error) {
	log := f.Logger()

	if err := ValidateDestination(f.DestDir); err != nil {
		return "", err
	}
	if err := ValidateURL(src); err != nil {
		return "", err
	}

	u, err := url.Parse(src)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidURL, "%s", err)
	}
	name, err := FileName(src)
	if err != nil {
		return "", err
	}

	g, err := f.providers().ByScheme(u.Scheme)
	if err != nil {
		return "", err
	}

	log.Info("downloading", "url", src)
	data, err := g.Get(src, getter.WithURL(src))
	if err != nil {
		return "", errors.Wrapf(err, "failed to download %s", src)
	}

	localPath := filepath.Join(f.DestDir, name)
	size := data.Len()
	log.Debug("writing local file", "path", localPath)
	if err := fileutil.AtomicWriteFile(localPath, data, 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", localPath)
	}

	log.Info("download complete", "file", name, "dest", f.DestDir, "bytes", size)
	return localPath, nil
}

func (f *Fetch) providers() getter.Providers {
	if f.Getters != nil {
		return f.Getters
	}
	settings := f.Settings
	if settings == nil {
		settings = cli.New()
	}
	return getter.All(settings)
}

// FileName returns the name a download of src is saved under: the last
// segment of the URL path. Query strings and fragments are not part of it.
func FileName(src string) (string, error) {
	p := src
	if u, err := url.Parse(src); err == nil {
		p = u.Path
	}
	name := p[strings.LastIndex(p, "/")+1:]
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, os.PathSeparator) {
		return "", errors.Wrapf(ErrNoFileName, "%q", src)
	}
	return name, nil
}
