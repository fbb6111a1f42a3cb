// Package domain defines the core types of the aio-index pipeline: the
// structured analysis record produced by the summarizer, the persisted
// document wrapper, and the rolling source index. It also holds the URL
// normalization and storage-path rules that every other layer depends on.
package domain
