// Package binmon is the core of the binmon application. It supervises a single
// executable, restarting it whenever it exits or whenever its binary is
// replaced on disk, and killing it when binmon itself is asked to stop.
//
// Mechanism of Operation
//
// The Supervisor runs one iteration per child process. Each iteration spawns
// the child through a Launcher, then waits for whichever of these happens
// first:
//
//    - the child exits on its own, in which case it is started again;
//    - the Detector reports that the binary changed, in which case the child
//      is killed and started again;
//    - a SIGINT, SIGTERM or SIGHUP arrives, in which case the child is killed
//      and Run returns.
//
// The child is always reaped before the next one is spawned, so there is never
// more than one instance of the target running under one supervisor.
//
// Change Detection
//
// The Detector does not use inotify. It polls the binary at a fixed interval
// and compares two consecutive fingerprints, which hold the file's creation
// time and inode. Build tools commonly write a new file and rename it over the
// old one, which changes both. A missing file is treated as a file being
// rewritten and never as an error.
//
// Text File Busy
//
// Starting a binary that is still open for writing fails with ETXTBSY. The
// Launcher retries immediately, up to MaxSpawnAttempts times, since the writer
// usually closes the file within milliseconds.
package binmon
