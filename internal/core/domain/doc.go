// Package domain contains the core entities of inkpot: notebooks, the
// sources ingested into them, the text chunks used as retrieval units,
// and the query/answer types produced by the ranking and synthesis layers.
//
// Domain types carry no persistence or transport concerns; those live in
// the adapters.
package domain
