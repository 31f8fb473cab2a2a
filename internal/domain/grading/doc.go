// Package grading decides whether a free-text guess answers a flashcard
// question. Answers are short proper nouns or phrases, so grading is a fixed
// cascade of cheap string rules over normalized text rather than a general
// similarity measure:
//
//  1. an empty guess is wrong
//  2. exact match
//  3. the guess is a substring of the answer (guesses longer than two runes)
//  4. the answer is a substring of the guess (answers longer than two runes)
//  5. word overlap: every (guess word, answer word) pair where one contains the
//     other counts once, so a single word may count several times; the count
//     divided by the longer word list must reach the overlap threshold
//
// The first rule that matches decides the verdict.
package grading
