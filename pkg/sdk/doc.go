// Package metasearch embeds the metasearch pipeline in a Go program without
// running the MCP server.
//
// Queries are fanned out to a SearXNG instance concurrently. When a rerank
// API key is configured, result lists longer than the limit are reordered by
// the reranking model before truncation.
//
//	client, _ := metasearch.New(
//	    metasearch.WithSearXNG("http://localhost:8080"),
//	    metasearch.WithReranker(os.Getenv("SILICONFLOW_API_KEY")),
//	)
//	resp, _ := client.Search("golang generics", "go iterators").
//	    Type(metasearch.News).
//	    Limit(10).
//	    Do(ctx)
//
//	images := client.Images(ctx, []string{"gopher"}, 5)
package metasearch
