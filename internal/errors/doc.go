// Package errors provides the structured error type used across the spix engine.
//
// Errors carry a Code, a user-facing message, optional metadata and an
// optional cause:
//
//	err := errors.UnknownScenef("no scene registered as %q", name)
//	err := errors.InvalidSave("player is missing").WithMeta("file", path)
//
// Wrapping keeps the code of the innermost *Error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to read save")
//	}
//
// # Engine taxonomy
//
//   - InvalidSpec: malformed dice expression (content or programming bug)
//   - UnknownScene, UnknownFoe, UnknownItem: a symbolic reference has no registration
//   - NoMatch: no foe satisfies a random encounter filter
//   - EmptyStack: finish was called with no active scene
//   - InvalidSave: a snapshot is malformed or references content not in the catalog
//   - InvalidChoice: user input matched no option; the input loop re-prompts
//   - Disconnected: the input source closed; the session unwinds without saving
//
// Disconnected is a cooperative abort signal rather than a failure. Callers
// running a session should check IsDisconnected before reporting an error.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("listen_addr", cfg.ListenAddr, vb)
//	errors.ValidateRange("max_sessions", cfg.MaxSessions, 1, 4096, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
