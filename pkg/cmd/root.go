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

package cmd // import "getfile.sh/getfile/pkg/cmd"

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"getfile.sh/getfile/internal/logging"
	"getfile.sh/getfile/internal/version"
	"getfile.sh/getfile/pkg/action"
	"getfile.sh/getfile/pkg/cli"
	"getfile.sh/getfile/pkg/cli/output"
	"getfile.sh/getfile/pkg/cli/require"
)

var globalUsage = `Download a file into an existing directory and optionally expand it.

The file is saved under the last path segment of the URL. With --expand, zip
and tar archives (plain, gzip or bzip2 compressed) are unpacked into the same
directory and the archive is removed once every entry has been written.

Examples:

    $ getfile https://example.com/data/countries.zip ./data --expand
    $ getfile -o json file:///srv/mirror/release.tgz /tmp

Environment variables:

| Name                              | Description                                                  |
|-----------------------------------|--------------------------------------------------------------|
| $GETFILE_DEBUG                    | indicate whether or not getfile is running in Debug mode     |
| $GETFILE_TIMEOUT                  | set the HTTP request timeout (default 120s, 0 disables it)   |
| $GETFILE_USER_AGENT               | set the User-Agent header sent with the request              |
| $GETFILE_INSECURE_SKIP_TLS_VERIFY | skip server certificate verification for HTTPS downloads     |
| $GETFILE_CA_FILE                  | verify HTTPS servers using this CA bundle                    |
| $NO_COLOR                         | disable colored table output                                 |
`

var settings = cli.New()

type rootOptions struct {
	expand  bool
	noColor bool
	outfmt  output.Format
}

// NewRootCmd creates the getfile command. Fatal errors are returned from
// Execute; a failed expansion is only logged.
func NewRootCmd(out io.Writer) *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "getfile <url> <dest>",
		Short:        "Download a file and optionally expand it.",
		Long:         globalUsage,
		Args:         require.ExactArgs(2),
		Version:      version.GetVersion(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger(cmd.ErrOrStderr(), func() bool { return settings.Debug })
			return o.run(out, logger, args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&o.expand, "expand", "e", false, "expand the downloaded file if it is a zip or tar archive")
	f.BoolVar(&o.noColor, "no-color", false, "disable colored table output")
	bindOutputFlag(cmd, &o.outfmt)

	settings.AddFlags(cmd.PersistentFlags())

	return cmd
}

func (o *rootOptions) run(out io.Writer, logger *slog.Logger, src, dest string) error {
	logger.Debug("effective settings", "build", version.Get(), "env", settings.EnvVars())

	fetch := action.NewFetch(settings)
	fetch.SetLogger(logger.Handler())
	fetch.DestDir = dest

	saved, err := fetch.Run(src)
	if err != nil {
		return err
	}

	rep := &report{
		Source: src,
		Path:   saved,
		Status: action.StatusDownloaded,
	}

	if o.expand {
		expand := action.NewExpand(dest)
		expand.SetLogger(logger.Handler())

		res, err := expand.Run(saved)
		switch {
		case err != nil && res == nil:
			logger.Warn("expansion failed", "file", saved, slog.Any("error", err))
			rep.Status = action.StatusExpandFailed
			rep.Error = err.Error()
		case err != nil:
			// Entries were written but the archive could not be removed.
			logger.Warn("expansion incomplete", "file", saved, slog.Any("error", err))
			rep.Status = action.StatusExpanded
			rep.Format, rep.Entries, rep.Error = res.Format, res.Entries, err.Error()
		default:
			rep.Status = action.StatusExpanded
			rep.Format, rep.Entries = res.Format, res.Entries
		}
	}

	rep.noColor = o.noColor
	return o.outfmt.Write(out, rep)
}
