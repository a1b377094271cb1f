// Package coverage implements the recording session object and the on-disk
// data model shared by both sides of an nbcover run: the host test process
// and the code injected into a notebook kernel both drive a [Recorder], and
// their independently written data files are reconciled through [Set.Update].
package coverage
