// Package flows defines the wizards offered by sv2wizard: the full-stack
// wizard that configures a local pool, and the pool-connection wizard that
// connects miners to an existing pool.
package flows
