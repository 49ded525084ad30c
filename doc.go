// Package futurity provides composable one-shot asynchronous values
// ("futures").
//
// A future completes exactly once, delivering a single [Result] that
// carries a value, a domain error, a cancellation, or a captured panic.
// Futures are consumed either by installing a one-shot completion
// callback (see [Future]) or by repeated readiness polling (see
// [Pollable] and [Drive]).
//
// The package's core is [Select2], a race combinator that completes with
// whichever of two operand futures finishes first and hands back a
// continuation onto the still-pending loser.
package futurity
