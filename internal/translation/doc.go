// Package translation fills English glosses for Mandarin vocabulary using
// the OpenAI API. It includes gloss caching for batch operations.
package translation
