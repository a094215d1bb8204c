// Package google adapts a Google spreadsheet into the pipeline's SheetTable
// so a hosted copy of the marketing exports can be pulled without a manual
// upload.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"golang.org/x/sync/errgroup"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"leadlens/internal/core"
	"leadlens/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

// Ensure interface conformance
var _ sheets.Source = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Auth, in order of preference: service account credentials
// (GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS), then a user OAuth client and token pair
// (GOOGLE_OAUTH_CLIENT_JSON/FILE plus GOOGLE_OAUTH_TOKEN_JSON/FILE, see
// cmd/oauth-init).
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// newSheetsService initializes a Sheets Service from whichever credentials
// the environment provides.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	if credentialsJSON, err := serviceAccountJSON(); err != nil {
		return nil, err
	} else if credentialsJSON != nil {
		service, err := gsheet.NewService(ctx,
			goption.WithCredentialsJSON(credentialsJSON),
			goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
		if err != nil {
			return nil, fmt.Errorf("create sheets service: %w", err)
		}
		return service, nil
	}

	tokenSource, err := oauthTokenSource(ctx)
	if err != nil {
		return nil, err
	}
	if tokenSource == nil {
		return nil, errors.New("missing Google credentials (set GOOGLE_SERVICE_ACCOUNT_JSON/FILE or GOOGLE_OAUTH_CLIENT_JSON/FILE with a token)")
	}
	service, err := gsheet.NewService(ctx, goption.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// serviceAccountJSON loads service account credentials from the environment,
// returning nil when none are configured.
func serviceAccountJSON() ([]byte, error) {
	inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	if inline != "" {
		return []byte(inline), nil
	}
	file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if file == "" {
		return nil, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return data, nil
}

// oauthTokenSource builds a token source from a user OAuth client and a
// token minted by cmd/oauth-init, or nil when the pair is not configured.
func oauthTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	clientJSON, err := readEnvJSON("GOOGLE_OAUTH_CLIENT_JSON", "GOOGLE_OAUTH_CLIENT_FILE")
	if err != nil {
		return nil, err
	}
	tokenJSON, err := readEnvJSON("GOOGLE_OAUTH_TOKEN_JSON", "GOOGLE_OAUTH_TOKEN_FILE")
	if err != nil {
		return nil, err
	}
	if clientJSON == nil || tokenJSON == nil {
		return nil, nil
	}

	cfg, err := googleoauth.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("oauth client config: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}
	return cfg.TokenSource(ctx, &token), nil
}

// readEnvJSON returns inline JSON from jsonKey, or the contents of the file
// named by fileKey, or nil when neither is set.
func readEnvJSON(jsonKey, fileKey string) ([]byte, error) {
	if inline := strings.TrimSpace(os.Getenv(jsonKey)); inline != "" {
		return []byte(inline), nil
	}
	file := strings.TrimSpace(os.Getenv(fileKey))
	if file == "" {
		return nil, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fileKey, err)
	}
	return data, nil
}

// Fetch reads every sheet of the configured spreadsheet into a SheetTable.
// Unformatted values are requested so date cells arrive as their serial
// numbers, matching the xlsx parser's behavior.
func (c *Client) Fetch(ctx context.Context) (core.SheetTable, error) {
	if c.svc == nil {
		return core.SheetTable{}, errors.New("sheets service not initialized")
	}
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return core.SheetTable{}, fmt.Errorf("get spreadsheet %s: %w", c.spreadsheetID, err)
	}

	var titles []string
	for _, sh := range meta.Sheets {
		if sh.Properties == nil {
			continue
		}
		titles = append(titles, sh.Properties.Title)
	}
	if len(titles) == 0 {
		return core.SheetTable{}, fmt.Errorf("spreadsheet %s has no sheets", c.spreadsheetID)
	}

	// Fetch sheet values concurrently; workbook order is preserved by index.
	parsed := make([]core.Sheet, len(titles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, title := range titles {
		g.Go(func() error {
			resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, title).
				ValueRenderOption("UNFORMATTED_VALUE").Context(gctx).Do()
			if err != nil {
				return fmt.Errorf("read sheet %q: %w", title, err)
			}
			parsed[i] = sheetFromValues(title, resp.Values)
			slog.DebugContext(gctx, "Fetched remote sheet", "sheet", title, "rows", len(resp.Values))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return core.SheetTable{}, err
	}
	return core.SheetTable{Sheets: parsed}, nil
}

// sheetFromValues converts a Sheets API values matrix (header row first)
// into named rows.
func sheetFromValues(name string, values [][]interface{}) core.Sheet {
	sheet := core.Sheet{Name: name}
	if len(values) == 0 {
		return sheet
	}
	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(h))
	}
	for _, raw := range values[1:] {
		row := core.Row{}
		for i, v := range raw {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			cell := coerceValue(v)
			if cell.IsEmpty() {
				continue
			}
			row[headers[i]] = cell
		}
		if len(row) > 0 {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	return sheet
}

// coerceValue maps the API's JSON value types onto RawCell kinds.
func coerceValue(v interface{}) core.RawCell {
	switch val := v.(type) {
	case nil:
		return core.RawCell{}
	case float64:
		return core.NumberCell(val)
	case int64:
		return core.NumberCell(float64(val))
	case bool:
		if val {
			return core.StringCell("TRUE")
		}
		return core.StringCell("FALSE")
	default:
		return core.StringCell(strings.TrimSpace(fmt.Sprint(val)))
	}
}
