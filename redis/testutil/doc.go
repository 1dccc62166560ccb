// Package testutil starts an in-memory Redis for tests.
//
//	srv := testutil.NewServer(t)
//	client := testutil.NewClient(t, srv)
//
// Both are closed through t.Cleanup.
package testutil
