package poker

import (
	"testing"

	"github.com/lox/holdemcore/internal/randutil"
)

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Card
	}{
		{"As", Card{Rank: Ace, Suit: Spades}},
		{"Kh", Card{Rank: King, Suit: Hearts}},
		{"Qd", Card{Rank: Queen, Suit: Diamonds}},
		{"Jc", Card{Rank: Jack, Suit: Clubs}},
		{"Ts", Card{Rank: Ten, Suit: Spades}},
		{"9h", Card{Rank: Nine, Suit: Hearts}},
		{"2c", Card{Rank: Two, Suit: Clubs}},
		{"ad", Card{Rank: Ace, Suit: Diamonds}},
		{"tH", Card{Rank: Ten, Suit: Hearts}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if err != nil {
				t.Fatalf("ParseCard(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCard(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCardInvalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "A", "Asd", "1s", "Xh", "Ax", "  "} {
		if _, err := ParseCard(input); err == nil {
			t.Errorf("ParseCard(%q) expected error, got nil", input)
		}
	}
}

func TestCardStringRoundTrip(t *testing.T) {
	t.Parallel()

	for suit := range Suit(4) {
		for rank := Two; rank <= Ace; rank++ {
			card := NewCard(rank, suit)
			parsed, err := ParseCard(card.String())
			if err != nil {
				t.Fatalf("ParseCard(%q) error: %v", card.String(), err)
			}
			if parsed != card {
				t.Errorf("round trip %v -> %q -> %v", card, card.String(), parsed)
			}
		}
	}
}

func TestCardPretty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card Card
		want string
	}{
		{Card{Rank: Ace, Suit: Spades}, "A♠"},
		{Card{Rank: Ten, Suit: Hearts}, "T♥"},
		{Card{Rank: Two, Suit: Clubs}, "2♣"},
	}

	for _, tt := range tests {
		if got := tt.card.Pretty(); got != tt.want {
			t.Errorf("Pretty() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	cards, err := ParseCards("As Kh 2d")
	if err != nil {
		t.Fatalf("ParseCards error: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if got := FormatCards(cards); got != "As Kh 2d" {
		t.Errorf("FormatCards = %q, want %q", got, "As Kh 2d")
	}

	if _, err := ParseCards("As Zz"); err == nil {
		t.Error("expected error for invalid card in list")
	}
}

func TestNewDeckDealsUniqueCards(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(1))
	seen := make(map[Card]bool)
	for range 52 {
		card, ok := d.DealOne()
		if !ok {
			t.Fatal("deck exhausted early")
		}
		if seen[card] {
			t.Fatalf("duplicate card dealt: %v", card)
		}
		seen[card] = true
	}
	if _, ok := d.DealOne(); ok {
		t.Error("expected deal from empty deck to fail")
	}
}

func TestDeckDeterministicShuffle(t *testing.T) {
	t.Parallel()

	a := NewDeck(randutil.New(42))
	b := NewDeck(randutil.New(42))
	for i := range 52 {
		ca, _ := a.DealOne()
		cb, _ := b.DealOne()
		if ca != cb {
			t.Fatalf("decks diverged at card %d: %v vs %v", i, ca, cb)
		}
	}
}

func TestDeckDealAndBurn(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(7))
	if got := d.CardsRemaining(); got != 52 {
		t.Fatalf("CardsRemaining = %d, want 52", got)
	}

	hand := d.Deal(5)
	if len(hand) != 5 {
		t.Fatalf("Deal(5) returned %d cards", len(hand))
	}
	if got := d.CardsRemaining(); got != 47 {
		t.Errorf("CardsRemaining = %d, want 47", got)
	}

	d.Burn()
	if got := d.CardsRemaining(); got != 46 {
		t.Errorf("CardsRemaining after burn = %d, want 46", got)
	}

	if cards := d.Deal(47); cards != nil {
		t.Error("expected nil when dealing more cards than remain")
	}
}

func TestStackedDeck(t *testing.T) {
	t.Parallel()

	want, err := ParseCards("As Kh 2d")
	if err != nil {
		t.Fatal(err)
	}

	d := NewStackedDeck(want...)
	got := d.Deal(3)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("card %d = %v, want %v", i, got[i], want[i])
		}
	}

	// The rest of the deck is still a full complement of unique cards.
	seen := map[Card]bool{want[0]: true, want[1]: true, want[2]: true}
	for d.CardsRemaining() > 0 {
		card, _ := d.DealOne()
		if seen[card] {
			t.Fatalf("duplicate card in stacked deck: %v", card)
		}
		seen[card] = true
	}
	if len(seen) != 52 {
		t.Errorf("stacked deck held %d unique cards, want 52", len(seen))
	}
}
