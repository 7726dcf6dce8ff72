// Package poker provides the card primitives and hand evaluation used by the
// hold'em engine: cards and decks, the ten-tier hand ranking model, and the
// five- and seven-card evaluators.
//
// Rankings form a total order via HandRanking.Compare, which makes winner
// selection and split-pot detection a plain comparison. The seven-card
// evaluator searches all 21 five-card subsets rather than using lookup
// tables, trading speed for auditability.
package poker
