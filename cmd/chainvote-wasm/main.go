// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

//go:build js && wasm

package main

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/chainvote/client"
	"github.com/danielhkuo/chainvote/dom"
	"github.com/danielhkuo/chainvote/session"
)

func main() {
	votePath := dom.Meta("chainvote-vote-path", "/vote")
	doc := dom.New(votePath)

	c, err := client.New(dom.Origin(), client.Options{
		ResultsPath: dom.Meta("chainvote-results-path", "/results-data"),
		VotePath:    votePath,
	})
	if err != nil {
		slog.Error("failed to create results client", "error", err)
		return
	}

	sess := session.New(doc, dom.Dialogs{}, c, session.Options{})
	doc.OnReady(func() {
		sess.Ready(context.Background())
	})

	// The page owns the session for as long as it is open
	select {}
}
