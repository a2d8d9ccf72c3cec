// Package transcriber extracts the sign-off segment of a recording and
// obtains a speech transcript from the remote whisper service.
//
// The remote contract is a script invoked over SSH that prints a JSON object
// to stdout: {"text": ..., "language": ..., "duration": ...} on success or
// {"error": ...} on failure. Segment extraction runs locally with ffmpeg.
package transcriber
