package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/desertthunder/encore/internal/formatter"
	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/urfave/cli/v3"
)

// apiResponse is a decoded response from the running service.
type apiResponse struct {
	StatusCode int
	Body       []byte
}

// decode unmarshals the response body into v.
func (a apiResponse) decode(v any) error {
	if err := json.Unmarshal(a.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the service's error body, falling back to raw text.
func (a apiResponse) errorMessage() string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(a.Body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return string(a.Body)
}

// apiGet issues a GET against the running service, identifying as the
// configured session user.
func (r *Runner) apiGet(ctx context.Context, config *shared.Config, path string) (*apiResponse, error) {
	return r.apiDo(ctx, config, http.MethodGet, path, nil)
}

// apiPost issues a POST with a JSON body.
func (r *Runner) apiPost(ctx context.Context, config *shared.Config, path string, body any) (*apiResponse, error) {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		buf = bytes.NewReader(data)
	}
	return r.apiDo(ctx, config, http.MethodPost, path, buf)
}

func (r *Runner) apiDo(ctx context.Context, config *shared.Config, method, path string, body io.Reader) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL(config)+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if config.Session.UserID != "" {
		req.Header.Set("X-User-ID", config.Session.UserID)
		req.Header.Set("X-User-Name", config.Session.UserName)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: is the service running? (encore serve): %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return &apiResponse{StatusCode: resp.StatusCode, Body: data}, nil
}

// walletState is the service's GET /api/wallet payload.
type walletState struct {
	UserID       string `json:"user_id"`
	BalanceCents int64  `json:"balance_cents"`
	Balance      string `json:"balance"`
}

// WalletBalance shows the session wallet balance.
func (r *Runner) WalletBalance(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	resp, err := r.apiGet(ctx, config, "/api/wallet")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.errorMessage())
	}

	var state walletState
	if err := resp.decode(&state); err != nil {
		return err
	}

	r.writePlain("Wallet balance for %s: %s\n", state.UserID, state.Balance)
	return nil
}

// WalletDeposit adds funds to the session wallet.
func (r *Runner) WalletDeposit(ctx context.Context, cmd *cli.Command) error {
	return r.walletOp(ctx, cmd, string(models.TxDeposit))
}

// WalletWithdraw removes funds from the session wallet.
func (r *Runner) WalletWithdraw(ctx context.Context, cmd *cli.Command) error {
	return r.walletOp(ctx, cmd, string(models.TxWithdrawal))
}

func (r *Runner) walletOp(ctx context.Context, cmd *cli.Command, opType string) error {
	config := r.loadConfig(cmd.String("config"))

	cents, err := strconv.ParseInt(cmd.StringArg("cents"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: amount must be an integer cent value", shared.ErrInvalidArgument)
	}

	resp, err := r.apiPost(ctx, config, "/api/wallet", map[string]any{
		"type":         opType,
		"amount_cents": cents,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.errorMessage())
	}

	var result struct {
		Transaction  models.Transaction `json:"transaction"`
		BalanceCents int64              `json:"balance_cents"`
	}
	if err := resp.decode(&result); err != nil {
		return err
	}

	r.writePlain("✓ %s of %s recorded\n", result.Transaction.Type, result.Transaction.Amount)
	r.writePlain("New balance: %s\n", models.Amount(result.BalanceCents))
	return nil
}

// WalletHistory shows the session transaction ledger, newest first.
func (r *Runner) WalletHistory(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	useJSON := cmd.Bool("json")

	resp, err := r.apiGet(ctx, config, "/api/transactions")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.errorMessage())
	}

	var transactions []models.Transaction
	if err := resp.decode(&transactions); err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(transactions, true)
	}

	balanceResp, err := r.apiGet(ctx, config, "/api/wallet")
	if err != nil {
		return err
	}
	var state walletState
	if err := balanceResp.decode(&state); err != nil {
		return err
	}

	text, err := formatter.HistoryToText(models.Amount(state.BalanceCents), transactions)
	if err != nil {
		return fmt.Errorf("failed to format history: %w", err)
	}
	return r.writePlain("%s", text)
}
