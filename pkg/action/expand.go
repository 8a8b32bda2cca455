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
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"getfile.sh/getfile/internal/logging"
	"getfile.sh/getfile/pkg/archive"
)

// Expand is the action for unpacking a downloaded archive in place.
//
// It provides the implementation of 'getfile --expand'.
type Expand struct {
	logging.LogHolder

	// DestDir receives the archive members.
	DestDir string
}

// ExpandResult describes a successful expansion.
type ExpandResult struct {
	Format  archive.Format  `json:"format"`
	Entries []archive.Entry `json:"entries"`
}

// NewExpand creates a new Expand writing into destDir.
func NewExpand(destDir string) *Expand {
	return &Expand{DestDir: destDir}
}

// Run expands source into DestDir and removes source afterwards.
//
// The file is gated on its extension before its content is inspected. On any
// failure source is left in place.
func (e *Expand) Run(source string) (*ExpandResult, error) {
	log := e.Logger()

	if err := archive.CheckExtension(source); err != nil {
		log.Info("invalid archive extension", "file", filepath.Base(source), "allowed", archive.Extensions)
		return nil, err
	}

	log.Debug("checking archive integrity", "path", source)
	format, err := archive.Detect(source)
	if err != nil {
		if errors.Is(err, archive.ErrIncompatibleFormat) {
			log.Info("incompatible archive format", "file", filepath.Base(source))
		}
		return nil, err
	}

	log.Info("decompressing archive", "format", format)
	extractor, err := archive.NewExtractor(format)
	if err != nil {
		return nil, err
	}
	entries, err := extractor.Extract(source, e.DestDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to expand %s", filepath.Base(source))
	}

	result := &ExpandResult{Format: format, Entries: entries}

	log.Info("decompress successful, removing archive", "path", source)
	if err := os.Remove(source); err != nil {
		return result, errors.Wrap(err, "failed to remove archive")
	}
	return result, nil
}
