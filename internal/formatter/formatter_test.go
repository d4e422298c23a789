package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/encore/internal/models"
)

func sampleQueue() []models.SongRequest {
	ts := time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC)
	return []models.SongRequest{
		{
			ID: "req1",
			Song: models.Song{
				ID: "s1", Title: "Blinding Lights", Artist: "The Weeknd",
				Album: "After Hours", AlbumCoverURL: "https://img.test/ah.jpg",
			},
			Requester: models.Requester{ID: "user1", Name: "Alex Johnson"},
			DJID:      "dj-spinz",
			Message:   "birthday shoutout",
			TipAmount: 2500,
			Timestamp: ts,
			Status:    models.StatusPending,
		},
		{
			ID: "req2",
			Song: models.Song{
				ID: "s2", Title: "Levitating", Artist: "Dua Lipa",
				Album: "Future Nostalgia", AlbumCoverURL: "https://img.test/fn.jpg",
			},
			Requester: models.Requester{ID: "user1", Name: "Alex Johnson"},
			DJID:      "dj-spinz",
			TipAmount: 1000,
			Timestamp: ts.Add(time.Minute),
			Status:    models.StatusPending,
		},
	}
}

func TestQueueExporters(t *testing.T) {
	t.Run("QueueToCSV", func(t *testing.T) {
		data, err := QueueToCSV(sampleQueue())
		if err != nil {
			t.Fatalf("QueueToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Artist,Requester,Tip,Status,Submitted") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "Blinding Lights") {
			t.Errorf("CSV missing song title")
		}
		if !strings.Contains(output, "$25.00") {
			t.Errorf("CSV missing formatted tip")
		}
		if !strings.Contains(output, "Alex Johnson") {
			t.Errorf("CSV missing requester name")
		}
	})

	t.Run("QueueToMarkdown", func(t *testing.T) {
		data, err := QueueToMarkdown("Friday Night Queue", sampleQueue())
		if err != nil {
			t.Fatalf("QueueToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Friday Night Queue") {
			t.Errorf("Markdown missing title header")
		}
		if !strings.Contains(output, "**Requests**: 2") {
			t.Errorf("Markdown missing request count")
		}
		if !strings.Contains(output, "1. The Weeknd - Blinding Lights [$25.00]") {
			t.Errorf("Markdown missing queue line, got: %s", output)
		}
		if !strings.Contains(output, "birthday shoutout") {
			t.Errorf("Markdown missing request message")
		}
	})

	t.Run("QueueToText", func(t *testing.T) {
		data, err := QueueToText(sampleQueue())
		if err != nil {
			t.Fatalf("QueueToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Requests: 2") {
			t.Errorf("text missing count, got: %s", output)
		}
		if !strings.Contains(output, "Dua Lipa - Levitating") {
			t.Errorf("text missing song line")
		}
	})

	t.Run("WriteQueueExport", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "friday")

		result, err := WriteQueueExport(sampleQueue(), base)
		if err != nil {
			t.Fatalf("WriteQueueExport failed: %v", err)
		}

		csvData, err := os.ReadFile(result.CSVFile)
		if err != nil {
			t.Fatalf("failed to read CSV file: %v", err)
		}
		if !strings.Contains(string(csvData), "Blinding Lights") {
			t.Errorf("exported CSV missing content")
		}

		jsonData, err := os.ReadFile(result.JSONFile)
		if err != nil {
			t.Fatalf("failed to read JSON file: %v", err)
		}
		if !strings.Contains(string(jsonData), `"tip_amount": 2500`) {
			t.Errorf("exported JSON missing tip, got: %s", jsonData)
		}
	})
}

func TestHistoryExporters(t *testing.T) {
	ts := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	song := models.Song{ID: "s1", Title: "Blinding Lights", Artist: "The Weeknd", AlbumCoverURL: "https://img.test/ah.jpg"}
	history := []models.Transaction{
		{ID: "tx2", Type: models.TxTip, Amount: 1500, Timestamp: ts.Add(time.Minute), RecipientID: "dj-spinz", RecipientName: "DJ Spinz", Song: &song},
		{ID: "tx1", Type: models.TxDeposit, Amount: 5000, Timestamp: ts},
	}

	t.Run("HistoryToCSV", func(t *testing.T) {
		data, err := HistoryToCSV(history)
		if err != nil {
			t.Fatalf("HistoryToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "ID,Type,Amount,Recipient,Song,Timestamp") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "The Weeknd - Blinding Lights") {
			t.Errorf("CSV missing song column")
		}
		if !strings.Contains(output, "deposit") {
			t.Errorf("CSV missing deposit row")
		}
	})

	t.Run("HistoryToText", func(t *testing.T) {
		data, err := HistoryToText(7000, history)
		if err != nil {
			t.Fatalf("HistoryToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Balance: $70.00") {
			t.Errorf("text missing balance, got: %s", output)
		}
		if !strings.Contains(output, "to DJ Spinz") {
			t.Errorf("text missing recipient")
		}
	})
}
