package game

// Dealer draw thresholds
const (
	dealerStandAny     Score = 7 // stand on any hand scoring this or more
	dealerStandTwoCard Score = 5 // stand on a two-card hand scoring this or more
)

// DealerShouldDraw reports whether the house takes another card. The dealer
// never holds more than three cards, stands on 7 or better, and stands on a
// two-card 5 or better. Shippin and Kuppin score above 7 and always stand.
func DealerShouldDraw(h Hand) bool {
	if h.Full() {
		return false
	}
	score := h.Score()
	if score >= dealerStandAny {
		return false
	}
	if score >= dealerStandTwoCard && h.Len() == 2 {
		return false
	}
	return true
}
