// Command botsapi serves the bots management REST API.
//
//	botsapi [serve]   start the HTTP server (default)
//	botsapi migrate   apply the database schema and exit
//
// Configuration comes from the environment, optionally seeded from a .env file
// (see --env-file).
//
// @title       Bots API
// @version     1.0
// @description CRUD API for chatbot configurations (name, provider token, base prompt, type, topic, provider and allowed widget domains).
// @BasePath    /api
package main

import "os"

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
