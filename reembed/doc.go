// Package reembed regenerates the embedding vectors of a project's documents
// and Q&A items, typically after switching to a different embedding model.
//
// Documents are processed in batches with progress tracking, retry logic with
// exponential backoff, and vector normalization so the refreshed vectors stay
// compatible with cosine similarity scoring.
package reembed
