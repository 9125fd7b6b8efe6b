// Package configgen renders the TOML configuration files of the Stratum V2
// processes (pool, job declarator server, job declarator client and
// translator proxy) from the answers collected by a wizard session.
//
// Every builder owns an explicit defaults table, derives network dependent
// values from Networks, and resolves its embedded template exactly once.
// Builders are pure: the same TemplateData always yields the same text.
package configgen
