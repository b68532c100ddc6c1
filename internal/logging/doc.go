// Package logging constructs the zap logger shared by every ankibridge command.
//
// Output goes to a log file, to standard error, or both. The terminal host
// logs to the file only so that log lines do not tear through the screen; the
// stdio host never writes logs to standard output.
package logging
