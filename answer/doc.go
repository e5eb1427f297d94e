// Package answer composes natural-language answers from ranked survival
// cards using a streaming text generator.
//
// The composer is deliberately constrained: the model only reformats and
// reorders card content, it never adds knowledge of its own. Card warnings
// and source attributions bypass the model entirely and travel on the
// Answer struct, so safety-critical text reaches the user verbatim even when
// the model paraphrases around it.
//
// A Composer runs at most one generation at a time. Asking a new question
// while an answer is streaming cancels the old session first, which matches
// how a reader actually uses a reference card browser.
package answer
