/*
Copyright 2026 The Fission Authors.

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

package app

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/fission/greeter/pkg/probe"
)

func probeCommandHandler(cmd *cobra.Command, logger logr.Logger) error {
	var (
		opts probe.Options
		err  error
	)
	flags := cmd.Flags()

	if opts.URL, err = flags.GetString("url"); err != nil {
		return err
	}
	if opts.Retries, err = flags.GetInt("retries"); err != nil {
		return err
	}
	if opts.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return err
	}

	err = probe.Check(cmd.Context(), logger, opts)
	probe.Report(cmd.OutOrStdout(), opts.URL, err)
	return err
}

func ProbeCommand(logger logr.Logger) *cobra.Command {
	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Check that a running greeter is healthy",
		Long:  "Check that a running greeter is healthy. Exits non-zero when it is not, for use as a container HEALTHCHECK.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return probeCommandHandler(cmd, logger)
		},
	}
	flags := probeCmd.Flags()
	flags.StringP("url", "u", probe.DefaultURL, "health endpoint to check")
	flags.IntP("retries", "r", probe.DefaultRetries, "retries on connection errors and 5xx responses")
	flags.Duration("timeout", probe.DefaultTimeout, "timeout of a single attempt")
	return probeCmd
}
