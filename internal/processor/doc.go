// Package processor orchestrates vocabulary processing: loading and
// validating word lists, filling english glosses, and synthesizing the
// pronunciation clips the audio library lacks.
package processor
