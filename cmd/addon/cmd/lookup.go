package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/client"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/models"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/services"
)

func newLookupCommand(opts *rootOptions) *cobra.Command {
	var language, contentType string

	cmd := &cobra.Command{
		Use:   "lookup <id>",
		Short: "Look up subtitles for an IMDb id and print the addon response",
		Example: `  opensubtitles-auto lookup tt0111161 --lang en
  opensubtitles-auto lookup tt0944947:1:1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			c := client.NewClient(cfg)
			defer c.Close()

			kind := models.ContentType(contentType)
			if kind == "" {
				kind = models.InferContentType(args[0])
			}

			result := services.NewSubtitleLookup(c, cfg.DefaultLanguage).Lookup(cmd.Context(), models.LookupRequest{
				Type:              kind,
				ContentID:         args[0],
				PreferredLanguage: models.NormalizeLanguage(language, cfg.DefaultLanguage),
			})
			return printJSON(cmd, models.SubtitlesResponse{Subtitles: result})
		},
	}

	cmd.Flags().StringVarP(&language, "lang", "l", "", "subtitle language (default is the configured default_language)")
	cmd.Flags().StringVarP(&contentType, "type", "t", "", "content type, movie or series (inferred from the id when empty)")
	return cmd
}
