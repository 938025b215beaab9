package deck

// Card is one flashcard. Front is the identity key used by the history and
// session stores; duplicate fronts within a deck share their records.
type Card struct {
	Front   string
	Back    string
	Correct int
	Wrong   int
}

// Score is the weakness score used for ordering: wrong minus correct.
func (c Card) Score() int {
	return c.Wrong - c.Correct
}

// Fronts returns the identity keys of cards, in order.
func Fronts(cards []Card) []string {
	fronts := make([]string, len(cards))
	for i, c := range cards {
		fronts[i] = c.Front
	}
	return fronts
}
