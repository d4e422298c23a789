package models

import (
	"testing"
	"time"
)

func TestAmount(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		cases := []struct {
			amount Amount
			want   string
		}{
			{1500, "$15.00"},
			{5, "$0.05"},
			{2550, "$25.50"},
			{0, "$0.00"},
			{-1500, "-$15.00"},
		}
		for _, c := range cases {
			if got := c.amount.String(); got != c.want {
				t.Errorf("Amount(%d).String() = %q, want %q", c.amount, got, c.want)
			}
		}
	})

	t.Run("Dollars", func(t *testing.T) {
		if got := Amount(1550).Dollars(); got != 15.5 {
			t.Errorf("expected 15.5, got %v", got)
		}
	})
}

func TestSongValidate(t *testing.T) {
	valid := Song{
		ID:            "101",
		Title:         "Blinding Lights",
		Artist:        "The Weeknd",
		Album:         "After Hours",
		AlbumCoverURL: "https://example.com/cover.jpg",
	}

	t.Run("Valid", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Shape Contract", func(t *testing.T) {
		for name, mutate := range map[string]func(*Song){
			"Missing ID":     func(s *Song) { s.ID = "" },
			"Missing Title":  func(s *Song) { s.Title = "" },
			"Missing Artist": func(s *Song) { s.Artist = "" },
			"Missing Cover":  func(s *Song) { s.AlbumCoverURL = "" },
		} {
			t.Run(name, func(t *testing.T) {
				s := valid
				mutate(&s)
				if err := s.Validate(); err == nil {
					t.Error("expected validation error")
				}
			})
		}
	})

	t.Run("Album Optional", func(t *testing.T) {
		s := valid
		s.Album = ""
		if err := s.Validate(); err != nil {
			t.Errorf("album should be optional, got %v", err)
		}
	})
}

func TestSongRequestValidate(t *testing.T) {
	req := SongRequest{
		ID:        "req-1",
		Song:      Song{ID: "101", Title: "Blinding Lights", Artist: "The Weeknd", AlbumCoverURL: "x"},
		Requester: Requester{ID: "user1", Name: "Alex Johnson"},
		DJID:      "dj-1",
		TipAmount: 1500,
		Timestamp: time.Now(),
		Status:    StatusPending,
	}

	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	t.Run("Non Positive Tip", func(t *testing.T) {
		for _, tip := range []Amount{0, -100} {
			r := req
			r.TipAmount = tip
			if err := r.Validate(); err == nil {
				t.Errorf("expected error for tip %d", tip)
			}
		}
	})

	t.Run("Missing Target DJ", func(t *testing.T) {
		r := req
		r.DJID = ""
		if err := r.Validate(); err == nil {
			t.Error("expected error for missing DJ")
		}
	})

	t.Run("Invalid Status", func(t *testing.T) {
		r := req
		r.Status = "queued"
		if err := r.Validate(); err == nil {
			t.Error("expected error for unknown status")
		}
	})
}

func TestTransactionValidate(t *testing.T) {
	tx := Transaction{
		ID:        "t1",
		Type:      TxTip,
		Amount:    1500,
		Timestamp: time.Now(),
	}

	if err := tx.Validate(); err != nil {
		t.Fatalf("expected valid transaction, got %v", err)
	}

	t.Run("Invalid Type", func(t *testing.T) {
		bad := tx
		bad.Type = "chargeback"
		if err := bad.Validate(); err == nil {
			t.Error("expected error for unknown type")
		}
	})

	t.Run("Non Positive Amount", func(t *testing.T) {
		bad := tx
		bad.Amount = 0
		if err := bad.Validate(); err == nil {
			t.Error("expected error for zero amount")
		}
	})
}

func TestDJValidate(t *testing.T) {
	dj := DJ{ID: "dj-1", Name: "DJ Spinz", Club: "Neon Lounge", Rating: 4.8}
	if err := dj.Validate(); err != nil {
		t.Fatalf("expected valid dj, got %v", err)
	}

	t.Run("Rating Out Of Range", func(t *testing.T) {
		bad := dj
		bad.Rating = 5.2
		if err := bad.Validate(); err == nil {
			t.Error("expected error for rating above 5")
		}
	})
}

func TestRequestStatusValid(t *testing.T) {
	for _, s := range []RequestStatus{StatusPending, StatusAccepted, StatusRejected, StatusPlayed} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if RequestStatus("archived").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}
