// Package models defines domain entities shared by the encore request/tipping service.
//
// The package contains three categories of types:
//
// 1. Catalog values: [Song] and its [Song.Validate] shape contract. Songs from the
// Spotify catalog and songs from the built-in mock set satisfy the same contract,
// so downstream code is agnostic to the source.
//
// 2. Lifecycle entities: [SongRequest] with its [RequestStatus] state enum
// (pending → accepted → played, pending → rejected; all transitions one-way), and
// [Requester] identifying the submitting customer.
//
// 3. Ledger values: [Transaction] (append-only, typed by [TransactionType]) and
// [Amount], a cents-denominated integer money type that keeps two-decimal currency
// arithmetic exact.
//
// All entities expose Validate for insert-time checks by the repositories and the
// HTTP layer.
package models
