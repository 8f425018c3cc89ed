package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/pedal/internal/analysis"
	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/service"
)

// Writer implements service.ReportWriter for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}, nil
}

// Write replaces the content of every report tab with the given report.
func (w *Writer) Write(ctx context.Context, report *analysis.Report) error {
	if report == nil {
		return fmt.Errorf("%w: nil report", common.ErrNoRecords)
	}

	w.logger.Info("starting sheets export",
		"range", report.Range.String(),
		"rfm_rows", len(report.RFM))

	retryOpts := w.retryOptions()

	var (
		spreadsheetID string
		sheetIDs      map[string]int64
	)
	err := common.WithRetry(ctx, func(ctx context.Context) error {
		var getErr error
		spreadsheetID, sheetIDs, getErr = w.getOrCreateSpreadsheet(ctx)
		return classifyAPIError(getErr)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	err = common.WithRetry(ctx, func(ctx context.Context) error {
		return classifyAPIError(w.ensureTabs(ctx, spreadsheetID, sheetIDs))
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to create tabs: %w", err)
	}

	tabs := analysis.Sheets(report)
	for _, tab := range tabs {
		err = common.WithRetry(ctx, func(ctx context.Context) error {
			return classifyAPIError(w.writeTab(ctx, spreadsheetID, tab))
		}, retryOpts)
		if err != nil {
			return fmt.Errorf("failed to write %s tab: %w", tab.Title, err)
		}
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func(ctx context.Context) error {
			return classifyAPIError(w.applyFormatting(ctx, spreadsheetID, sheetIDs, tabs))
		}, retryOpts)
		if err != nil {
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("sheets export completed",
		"spreadsheet_id", spreadsheetID,
		"tabs", len(tabs))

	return nil
}

func (w *Writer) retryOptions() service.RetryOptions {
	opts := common.DefaultRetryOptions()
	// RetryAttempts counts retries; MaxAttempts includes the first try.
	opts.MaxAttempts = w.config.RetryAttempts + 1
	if w.config.RetryDelay > 0 {
		opts.InitialDelay = w.config.RetryDelay
	}
	return opts
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := oauthConfig(config.ClientID, config.ClientSecret, "")
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet returns the spreadsheet ID and the IDs of its tabs by title.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, map[string]int64, error) {
	if w.config.SpreadsheetID != "" {
		existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", nil, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return existing.SpreadsheetId, sheetIDsByTitle(existing), nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
	}
	for _, title := range analysis.SheetTitles {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: title},
		})
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, sheetIDsByTitle(created), nil
}

// ensureTabs adds any report tab missing from the spreadsheet and records its ID.
func (w *Writer) ensureTabs(ctx context.Context, spreadsheetID string, sheetIDs map[string]int64) error {
	var requests []*sheets.Request
	for _, title := range missingTabs(sheetIDs) {
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		})
	}
	if len(requests) == 0 {
		return nil
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return err
	}

	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			props := reply.AddSheet.Properties
			sheetIDs[props.Title] = props.SheetId
		}
	}
	return nil
}

// writeTab clears a tab and writes its rows in batches.
func (w *Writer) writeTab(ctx context.Context, spreadsheetID string, tab analysis.Sheet) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, quoteRange(tab.Title, "A:Z"),
		&sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", tab.Title, err)
	}

	for i := 0; i < len(tab.Rows); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(tab.Rows))

		batch := tab.Rows[i:end]
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID,
			quoteRange(tab.Title, fmt.Sprintf("A%d", i+1)),
			&sheets.ValueRange{Values: batch}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "tab", tab.Title, "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// applyFormatting bolds and freezes the header row of every tab and sizes its columns.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, sheetIDs map[string]int64, tabs []analysis.Sheet) error {
	var requests []*sheets.Request
	for _, tab := range tabs {
		id, ok := sheetIDs[tab.Title]
		if !ok {
			continue
		}
		requests = append(requests, formatRequests(id, columnCount(tab.Rows))...)
	}
	if len(requests) == 0 {
		return nil
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

func formatRequests(sheetID int64, columns int) []*sheets.Request {
	return []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(columns),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   int64(columns),
				},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 1,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}
}

func sheetIDsByTitle(s *sheets.Spreadsheet) map[string]int64 {
	ids := make(map[string]int64, len(s.Sheets))
	for _, sh := range s.Sheets {
		if sh.Properties != nil {
			ids[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	return ids
}

func missingTabs(sheetIDs map[string]int64) []string {
	var missing []string
	for _, title := range analysis.SheetTitles {
		if _, ok := sheetIDs[title]; !ok {
			missing = append(missing, title)
		}
	}
	return missing
}

func columnCount(rows [][]any) int {
	n := 1
	for _, r := range rows {
		n = max(n, len(r))
	}
	return n
}

func quoteRange(title, cells string) string {
	return fmt.Sprintf("'%s'!%s", title, cells)
}

// classifyAPIError marks throttling and server errors as retryable.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= http.StatusInternalServerError:
		return &common.RetryableError{Err: fmt.Errorf("%w: %w", common.ErrSheetsAPI, err), Retryable: true}
	default:
		return fmt.Errorf("%w: %w", common.ErrSheetsAPI, err)
	}
}
