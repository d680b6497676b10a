/*
Package policy implements the pluggable eviction strategies for the
StrataCache engine.

Five concrete strategies are provided:

  - lru: evict the least recently accessed entries first
  - lfu: evict the least frequently accessed entries first, ties broken
    by recency
  - fifo: evict in insertion order; access never reorders
  - ttl: evict expired entries first, then fall back to LRU ordering
  - random: evict a uniform random subset

Each strategy is a pure function over a snapshot of the entry set: the
cache core passes its entries map under its own lock and receives an
ordered list of eviction candidates. Access-metadata bookkeeping (the
OnAccess/OnInsert hooks) is identical across strategies; only candidate
selection differs.

A Registry maps strategy identifiers to policy instances. It is
pre-populated with the built-ins and supports runtime extension with
custom strategies via Register.

The Adaptive meta-policy wraps one concrete strategy and re-evaluates the
choice every evaluation window of cache operations, using the mean and
population variance of per-entry access counts and the fraction of
recently accessed entries to classify the workload.
*/
package policy
