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

package output

import (
	"github.com/fatih/color"

	"getfile.sh/getfile/pkg/action"
)

// ColorizeStatus returns a colorized version of the status string based on the status value
func ColorizeStatus(status action.Status, noColor bool) string {
	if noColor {
		return status.String()
	}

	switch status {
	case action.StatusDownloaded, action.StatusExpanded:
		return color.GreenString(status.String())
	case action.StatusExpandFailed:
		return color.YellowString(status.String())
	default:
		return status.String()
	}
}

// ColorizeHeader returns a colorized version of a header string
func ColorizeHeader(header string, noColor bool) string {
	if noColor {
		return header
	}

	// Use bold for headers
	return color.New(color.Bold).Sprint(header)
}

// ColorizePath returns a colorized version of a local path
func ColorizePath(path string, noColor bool) string {
	if noColor {
		return path
	}
	return color.CyanString(path)
}
