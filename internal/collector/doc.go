// Package collector gathers the raw artifacts a maintenance run reports on.
//
// Each artifact type has its own small interface so the pipeline can be fed
// from real system tools ([Host]), from artifacts saved by an earlier run
// ([Dir]), or from test doubles (package mocks). Collectors return text
// exactly as the underlying tool produced it; interpretation happens in
// the render package.
//
// A run keeps its artifacts in a [Workspace], a directory that is removed
// when the run ends unless the operator asked to keep it.
package collector
