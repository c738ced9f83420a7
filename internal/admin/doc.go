// Package admin holds the list/form/sync pattern shared by every back-office
// screen: a Controller that owns one collection's lifecycle, a Form that
// edits a typed draft, and a Table that projects the collection into rows.
//
// The package does no I/O of its own. Controllers receive their EntityAPI,
// Confirmer and Notifier at construction, so terminal, CLI and test
// front-ends all drive the same state machine.
package admin
