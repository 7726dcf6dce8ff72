package poker

// HandCategory represents the tier of a 5-card poker hand
type HandCategory int

const (
	HighCard HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the category name
func (hc HandCategory) String() string {
	switch hc {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandRanking is the comparable value of a specific 5-card hand. Rankings are
// produced only by the evaluator and never modified afterwards.
type HandRanking struct {
	Category  HandCategory
	Primary   Rank   // e.g. the pair rank, the straight's high card
	Secondary Rank   // e.g. the full house's pair, the lower of two pair
	Kickers   []Rank // descending tie-breakers
	Cards     []Card // the 5 cards the ranking was built from
}

// Compare returns -1, 0 or 1 as h ranks below, equal to or above other.
// The order is total: category, then primary, then secondary, then kickers
// position by position. Zero means a true tie (split pot).
func (h HandRanking) Compare(other HandRanking) int {
	if h.Category != other.Category {
		if h.Category > other.Category {
			return 1
		}
		return -1
	}
	if h.Primary != other.Primary {
		if h.Primary > other.Primary {
			return 1
		}
		return -1
	}
	if h.Secondary != other.Secondary {
		if h.Secondary > other.Secondary {
			return 1
		}
		return -1
	}
	for i := 0; i < len(h.Kickers) && i < len(other.Kickers); i++ {
		if h.Kickers[i] != other.Kickers[i] {
			if h.Kickers[i] > other.Kickers[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Beats returns true if h outranks other
func (h HandRanking) Beats(other HandRanking) bool {
	return h.Compare(other) > 0
}

// String returns a description like "Full House, Aces full of Kings"
func (h HandRanking) String() string {
	switch h.Category {
	case HighCard:
		return "High Card, " + longRankName(h.Primary)
	case Pair:
		return "Pair of " + pluralRankName(h.Primary)
	case TwoPair:
		return "Two Pair, " + pluralRankName(h.Primary) + " and " + pluralRankName(h.Secondary)
	case ThreeOfAKind:
		return "Three of a Kind, " + pluralRankName(h.Primary)
	case Straight:
		return "Straight, " + longRankName(h.Primary) + " high"
	case Flush:
		return "Flush, " + longRankName(h.Primary) + " high"
	case FullHouse:
		return "Full House, " + pluralRankName(h.Primary) + " full of " + pluralRankName(h.Secondary)
	case FourOfAKind:
		return "Four of a Kind, " + pluralRankName(h.Primary)
	case StraightFlush:
		return "Straight Flush, " + longRankName(h.Primary) + " high"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

func longRankName(r Rank) string {
	switch r {
	case Two:
		return "Two"
	case Three:
		return "Three"
	case Four:
		return "Four"
	case Five:
		return "Five"
	case Six:
		return "Six"
	case Seven:
		return "Seven"
	case Eight:
		return "Eight"
	case Nine:
		return "Nine"
	case Ten:
		return "Ten"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	default:
		return "?"
	}
}

func pluralRankName(r Rank) string {
	if r == Six {
		return "Sixes"
	}
	return longRankName(r) + "s"
}
