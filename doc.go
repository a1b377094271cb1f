// Package nbcover coordinates coverage measurement for code that a notebook
// test run executes inside an external kernel.
//
// The host test process usually already has a coverage session of its own.
// nbcover starts a second recorder inside the kernel by injecting source
// snippets over the execution channel, names that recorder's data file so it
// cannot collide with the host's, and folds the kernel's recording back into
// the host session when the notebook is done.
//
// The notebook test driver calls [Setup] before executing a notebook's cells
// and [Teardown] after.
package nbcover
