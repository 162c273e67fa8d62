// Package marksearch ranks documents by bag-of-words cosine similarity to a
// free-text query.
//
// Any type with a SearchableText method can be ranked. The vocabulary is built
// from the corpus on every call, so results depend only on the query and the
// documents passed in. Ties keep input order.
//
//	ranked, err := marksearch.Rank(nil, "golang tutorial", bookmarks)
//
// A configured Ranker adds parallel vectorization, a corpus cache and
// observability:
//
//	r, _ := marksearch.New(
//	    marksearch.WithWorkers(runtime.NumCPU()),
//	    marksearch.WithCache(marksearch.NewMemoryCache(8)),
//	    marksearch.WithLogger(slog.Default()),
//	    marksearch.WithPrometheus(prometheus.DefaultRegisterer),
//	)
//	scored, _ := marksearch.RankScored(r, "golang tutorial", bookmarks)
//	for _, s := range scored {
//	    fmt.Println(s.Score, s.Doc.SearchableText())
//	}
package marksearch
