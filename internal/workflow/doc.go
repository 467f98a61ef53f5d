// Package workflow coordinates the ingest pipeline: one intake loop feeding
// the candidate queue from filesystem events, one dispatch loop confirming
// candidates with the operator, and one worker per accepted file running
// stability detection, transcription, summarization, and the note write.
//
// Failure policy: remote-service errors degrade the note (error text or empty
// summary fields) rather than losing it; stability timeouts and write errors
// abandon the job with a warning; nothing a worker does can take down the
// dispatcher.
package workflow
