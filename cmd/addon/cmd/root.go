package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/config"
)

type rootOptions struct {
	configFile string
}

// NewRootCommand builds the addon command tree. Running it without a
// subcommand starts the server.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	serve := newServeCommand(opts)
	root := &cobra.Command{
		Use:          "opensubtitles-auto",
		Short:        "Stremio addon serving OpenSubtitles subtitles in your preferred language",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         serve.RunE,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is ./config.yaml or ./config/config.yaml)")
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newLookupCommand(opts), newManifestCommand())
	return root
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	config.ConfigureLogger(cfg.LogLevel)
	return cfg, nil
}
