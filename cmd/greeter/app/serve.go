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
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fission/greeter/pkg/greeter"
	"github.com/fission/greeter/pkg/utils/metrics"
)

const (
	flagHost        = "host"
	flagPort        = "port"
	flagTag         = "tag"
	flagAllowOrigin = "allow-origin"
	flagH2C         = "h2c"
	flagEnvFile     = "env-file"
	flagMetricsAddr = "metrics-addr"
)

func addServeFlags(flags *pflag.FlagSet) {
	flags.String(flagHost, greeter.DefaultHost, "address to bind")
	flags.IntP(flagPort, "p", greeter.DefaultPort, "port to listen on")
	flags.String(flagTag, "", "tag to report, overrides SF_TAG and TAG")
	flags.String(flagAllowOrigin, greeter.DefaultAllowOrigin, "value of Access-Control-Allow-Origin")
	flags.Bool(flagH2C, false, "accept HTTP/2 over cleartext")
	flags.String(flagEnvFile, "", "optional .env file loaded before reading the environment")
	flags.String(flagMetricsAddr, metrics.Addr(), "address of the prometheus metrics server (e.g. :8080), empty disables it")
}

// optionsFromFlags resolves the server options: flags first, then the env
// file and process environment, then defaults.
func optionsFromFlags(flags *pflag.FlagSet) (Options, error) {
	var (
		opts    Options
		envFile string
		err     error
	)

	if envFile, err = flags.GetString(flagEnvFile); err != nil {
		return opts, err
	}
	if err = greeter.LoadEnvFile(envFile); err != nil {
		return opts, err
	}

	if opts.Config.Host, err = flags.GetString(flagHost); err != nil {
		return opts, err
	}
	if opts.Config.Port, err = flags.GetInt(flagPort); err != nil {
		return opts, err
	}
	if opts.Config.Tag, err = flags.GetString(flagTag); err != nil {
		return opts, err
	}
	if opts.Config.AllowOrigin, err = flags.GetString(flagAllowOrigin); err != nil {
		return opts, err
	}
	if opts.Config.H2C, err = flags.GetBool(flagH2C); err != nil {
		return opts, err
	}
	if opts.MetricsAddr, err = flags.GetString(flagMetricsAddr); err != nil {
		return opts, err
	}
	if !flags.Changed(flagMetricsAddr) {
		// METRICS_ADDR may have come from the env file
		opts.MetricsAddr = metrics.Addr()
	}

	if err = opts.Config.Complete(os.LookupEnv); err != nil {
		return opts, err
	}
	return opts, opts.Config.Validate()
}

func runServe(cmd *cobra.Command, logger logr.Logger) error {
	opts, err := optionsFromFlags(cmd.Flags())
	if err != nil {
		logger.Error(err, "invalid configuration")
		return err
	}
	if err := Run(cmd.Context(), logger, opts); err != nil {
		logger.Error(err, "greeter failed")
		return err
	}
	return nil
}

func ServeCommand(logger logr.Logger) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the greeting on port 3000",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, logger)
		},
	}
	addServeFlags(serveCmd.Flags())
	return serveCmd
}
