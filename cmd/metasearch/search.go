package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/metasearch/internal/domain/category"
	"github.com/kailas-cloud/metasearch/internal/transport/wire"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one aggregated search and print the JSON response",
	Long: `Search sends every --query to SearXNG concurrently and prints the same
JSON document the opensearch tool returns. Oversized result lists are
reranked when a SiliconFlow API key is configured.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		queries, _ := cmd.Flags().GetStringArray("query")
		searchType, _ := cmd.Flags().GetString("type")

		c, err := category.Parse(searchType)
		if err != nil {
			return err
		}

		var limit *int
		if cmd.Flags().Changed("limit") {
			v, _ := cmd.Flags().GetInt("limit")
			limit = &v
		}

		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		resp := a.search.Search(cmd.Context(), queries, c, limit)
		return printJSON(cmd.OutOrStdout(), wire.FromResponse(resp))
	},
}

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Run one aggregated image search and print the JSON response",
	RunE: func(cmd *cobra.Command, _ []string) error {
		keywords, _ := cmd.Flags().GetStringArray("keyword")
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		resp := a.images.Search(cmd.Context(), keywords, limit)
		return printJSON(cmd.OutOrStdout(), wire.FromImageResponse(resp))
	},
}

func init() {
	searchCmd.Flags().StringArrayP("query", "q", nil, "search query (repeatable)")
	searchCmd.Flags().StringP("type", "t", "general", "search type: general, news, images, videos, science")
	searchCmd.Flags().IntP("limit", "n", 0, "maximum results per query (default 20, max 50)")

	imagesCmd.Flags().StringArrayP("keyword", "k", nil, "image keyword (repeatable)")
	imagesCmd.Flags().IntP("limit", "n", 0, "maximum images per keyword (0 = unlimited)")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(imagesCmd)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}
