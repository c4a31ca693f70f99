package main

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ashwinyue/thesis-hub/internal/service/keyword"
)

func newKeywordsCmd(a *app) *cobra.Command {
	var (
		title       string
		description string
		maxKeywords int
	)

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Extract keywords for a topic and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				return errors.New("--title is required")
			}

			extractor := keyword.NewExtractor(a.cfg.Gemini, keyword.WithLogger(a.log))
			if !extractor.Enabled() {
				a.log.Warn("gemini api key not configured, printing an empty list")
			}

			kws, err := extractor.ExtractKeywords(cmd.Context(), title, description, maxKeywords)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			return enc.Encode(kws)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "topic title")
	cmd.Flags().StringVar(&description, "description", "", "topic description")
	cmd.Flags().IntVar(&maxKeywords, "max", keyword.DefaultMaxKeywords, "maximum number of keywords requested")
	return cmd
}
