// package formatter provides functions to export the request queue and wallet
// history to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
)

// QueueToCSV converts song requests to CSV with columns: ID, Title, Artist, Requester, Tip, Status, Submitted
func QueueToCSV(requests []models.SongRequest) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Requester", "Tip", "Status", "Submitted"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, req := range requests {
		record := []string{
			req.ID,
			req.Song.Title,
			req.Song.Artist,
			req.Requester.Name,
			req.TipAmount.String(),
			string(req.Status),
			req.Timestamp.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// QueueToMarkdown converts song requests to a Markdown queue listing.
func QueueToMarkdown(title string, requests []models.SongRequest) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Requests**: %d\n\n", len(requests)))

	buf.WriteString("## Queue\n\n")
	for i, req := range requests {
		messagePart := ""
		if req.Message != "" {
			messagePart = fmt.Sprintf(" — %q", req.Message)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s] from %s%s\n",
			i+1, req.Song.Artist, req.Song.Title, req.TipAmount, req.Requester.Name, messagePart))
	}

	return buf.Bytes(), nil
}

// QueueToText converts song requests to plain text format
func QueueToText(requests []models.SongRequest) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Requests: %d\n\n", len(requests)))
	for i, req := range requests {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%s, %s)\n",
			i+1, req.Song.Artist, req.Song.Title, req.TipAmount, req.Status))
	}

	return buf.Bytes(), nil
}

// HistoryToCSV converts wallet transactions to CSV with columns: ID, Type, Amount, Recipient, Song, Timestamp
func HistoryToCSV(transactions []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Type", "Amount", "Recipient", "Song", "Timestamp"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, tx := range transactions {
		song := ""
		if tx.Song != nil {
			song = fmt.Sprintf("%s - %s", tx.Song.Artist, tx.Song.Title)
		}
		record := []string{
			tx.ID,
			string(tx.Type),
			tx.Amount.String(),
			tx.RecipientName,
			song,
			tx.Timestamp.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// HistoryToText converts wallet transactions to plain text format
func HistoryToText(balance models.Amount, transactions []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Balance: %s\n", balance))
	buf.WriteString(fmt.Sprintf("Transactions: %d\n\n", len(transactions)))

	for _, tx := range transactions {
		line := fmt.Sprintf("%s  %-10s %8s", tx.Timestamp.Format("2006-01-02 15:04"), tx.Type, tx.Amount)
		if tx.RecipientName != "" {
			line += "  to " + tx.RecipientName
		}
		if tx.Song != nil {
			line += fmt.Sprintf("  (%s)", tx.Song.Title)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// ToQueueJSON generates a pretty-printed JSON representation of the queue.
func ToQueueJSON(requests []models.SongRequest) ([]byte, error) {
	return shared.MarshalJSON(requests, true)
}

// QueueExportResult contains the paths of files created by WriteQueueExport
type QueueExportResult struct {
	CSVFile  string
	JSONFile string
}

// WriteQueueExport exports the queue to CSV with an accompanying JSON file.
//
// Creates {base}_queue.csv and {base}_queue.json.
func WriteQueueExport(requests []models.SongRequest, baseFilepath string) (*QueueExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "requests"
	}

	csvData, err := QueueToCSV(requests)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	csvFile := baseFilepath + "_queue.csv"
	if err := os.WriteFile(csvFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	jsonData, err := ToQueueJSON(requests)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JSON: %w", err)
	}

	jsonFile := baseFilepath + "_queue.json"
	if err := os.WriteFile(jsonFile, jsonData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write JSON file: %w", err)
	}

	return &QueueExportResult{CSVFile: csvFile, JSONFile: jsonFile}, nil
}
