// Package moderation scores chat messages against a written content policy
// using a generative model and turns the score into an action. It builds the
// scoring request, parses the model's "score|reason" reply, applies the
// delete/warn thresholds and asks the chat gateway to carry out the result.
package moderation
