// Package viewmodels holds the role-aware, in-memory state behind the dashboard:
// the order list (admin and customer variants), the catalog used for order
// placement, and the dashboard summary.
//
// Every list is loaded through a sequence-numbered snapshot: each load is tagged
// when issued and its response is dropped if a later-issued load has already been
// applied, so a slow poll cannot overwrite fresher data.
package viewmodels
