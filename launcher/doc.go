// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package launcher checks the voting server's SQLite database before starting
the server.

	status, err := launcher.Prepare(ctx, "database.db")

A file SQLite cannot read the schema of is deleted so the server recreates
it. A missing file is left for the server to create.
*/
package launcher
