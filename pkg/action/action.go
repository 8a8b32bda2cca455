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

// Package action implements the operations behind the getfile command:
// fetching a remote file into a directory and expanding a local archive.
package action

import (
	"strings"

	"github.com/pkg/errors"

	"getfile.sh/getfile/internal/fileutil"
)

var (
	// ErrInvalidDestination indicates that the destination is not an existing directory.
	ErrInvalidDestination = errors.New("invalid destination directory")
	// ErrInvalidURL indicates that the source is not of the form scheme://...
	ErrInvalidURL = errors.New("invalid source URL")
	// ErrNoFileName indicates that the source URL has no final path segment to name the download after.
	ErrNoFileName = errors.New("source URL does not name a file")
)

// ValidateDestination checks that dir exists and is a directory.
func ValidateDestination(dir string) error {
	if !fileutil.IsDir(dir) {
		return errors.Wrapf(ErrInvalidDestination, "%q", dir)
	}
	return nil
}

// ValidateURL performs a very basic check that src looks like a URL.
// Anything containing a scheme separator passes.
func ValidateURL(src string) error {
	if !strings.Contains(src, "://") {
		return errors.Wrapf(ErrInvalidURL, "%q", src)
	}
	return nil
}

// Status is the outcome of a getfile run as shown in reports.
type Status string

const (
	// StatusDownloaded means the file was saved and no expansion was requested.
	StatusDownloaded Status = "downloaded"
	// StatusExpanded means the file was saved, expanded and removed.
	StatusExpanded Status = "expanded"
	// StatusExpandFailed means the file was saved but could not be expanded.
	StatusExpandFailed Status = "expand failed"
)

func (s Status) String() string { return string(s) }
