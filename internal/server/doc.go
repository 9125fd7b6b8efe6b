// Package server exposes wizard sessions over a JSON HTTP API.
//
// Each session owns one engine. The API maps requests 1:1 onto engine
// operations (select, submit, back, restart) and renders the deployment
// plan and the config.zip bundle once a session reaches a result step.
// Sessions live in memory only and are lost on restart.
package server
