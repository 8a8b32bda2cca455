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
	"fmt"
	"io"

	"github.com/gosuri/uitable"

	coloroutput "getfile.sh/getfile/internal/cli/output"
	"getfile.sh/getfile/pkg/action"
	"getfile.sh/getfile/pkg/archive"
	"getfile.sh/getfile/pkg/cli/output"
)

// report summarizes a single getfile run.
type report struct {
	Source  string          `json:"source"`
	Path    string          `json:"path"`
	Status  action.Status   `json:"status"`
	Format  archive.Format  `json:"format,omitempty"`
	Entries []archive.Entry `json:"entries,omitempty"`
	Error   string          `json:"error,omitempty"`

	noColor bool
}

func (r *report) WriteJSON(out io.Writer) error {
	return output.EncodeJSON(out, r)
}

func (r *report) WriteYAML(out io.Writer) error {
	return output.EncodeYAML(out, r)
}

func (r *report) WriteTable(out io.Writer) error {
	tbl := uitable.New()
	tbl.MaxColWidth = 80
	tbl.AddRow(
		coloroutput.ColorizeHeader("SOURCE", r.noColor),
		coloroutput.ColorizeHeader("PATH", r.noColor),
		coloroutput.ColorizeHeader("STATUS", r.noColor),
	)
	tbl.AddRow(r.Source, coloroutput.ColorizePath(r.Path, r.noColor), coloroutput.ColorizeStatus(r.Status, r.noColor))
	if err := output.EncodeTable(out, tbl); err != nil {
		return err
	}

	if r.Error != "" {
		if _, err := fmt.Fprintf(out, "\nERROR: %s\n", r.Error); err != nil {
			return err
		}
	}

	if len(r.Entries) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(out, "\n%s archive, %d entries:\n", r.Format, len(r.Entries)); err != nil {
		return err
	}
	entries := uitable.New()
	entries.AddRow(
		coloroutput.ColorizeHeader("NAME", r.noColor),
		coloroutput.ColorizeHeader("SIZE", r.noColor),
	)
	for _, e := range r.Entries {
		size := fmt.Sprint(e.Size)
		if e.Dir {
			size = "-"
		}
		entries.AddRow(e.Name, size)
	}
	return output.EncodeTable(out, entries)
}
