package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/safar/rakhi-store/internal/database"
)

const (
	newSheetRows    = 100
	newSheetColumns = 20
)

// Sheets is a ledger backed by one worksheet of a Google spreadsheet.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
	sheet         string
}

// CredentialsOption authenticates with a service-account key.
func CredentialsOption(creds []byte) option.ClientOption {
	return option.WithCredentialsJSON(creds)
}

// NewSheets opens the spreadsheet and creates the worksheet when it does not
// exist yet.
func NewSheets(ctx context.Context, spreadsheetID, sheet string, opts ...option.ClientOption) (*Sheets, error) {
	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	s := &Sheets{svc: svc, spreadsheetID: spreadsheetID, sheet: sheet}
	if err := s.ensureWorksheet(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sheets) ensureWorksheet(ctx context.Context) error {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to open spreadsheet: %w", classifyAPI(err))
	}

	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == s.sheet {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: s.sheet,
					GridProperties: &sheets.GridProperties{
						RowCount:    newSheetRows,
						ColumnCount: newSheetColumns,
					},
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to create worksheet %s: %w", s.sheet, classifyAPI(err))
	}
	return nil
}

func (s *Sheets) EnsureSchema(ctx context.Context, header []string) error {
	current, err := s.header(ctx)
	if err != nil {
		return err
	}
	if len(current) > 0 {
		return nil
	}

	return s.append(ctx, [][]string{header})
}

// AppendRows appends all rows in one request. The API does not promise the
// write is atomic.
func (s *Sheets) AppendRows(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	header, err := s.header(ctx)
	if err != nil {
		return err
	}
	if len(header) == 0 {
		return errNoHeader
	}

	values := make([][]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, cellsFor(header, row))
	}
	return s.append(ctx, values)
}

func (s *Sheets) ReadAll(ctx context.Context) ([]Row, error) {
	values, err := s.get(ctx, s.a1(""))
	if err != nil {
		return nil, err
	}
	return records(values), nil
}

func (s *Sheets) header(ctx context.Context) ([]string, error) {
	values, err := s.get(ctx, s.a1("1:1"))
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values[0], nil
}

func (s *Sheets) get(ctx context.Context, rng string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, classifyAPI(err))
	}

	values := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		cells := make([]string, len(raw))
		for i, v := range raw {
			if v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		values = append(values, cells)
	}
	return values, nil
}

func (s *Sheets) append(ctx context.Context, values [][]string) error {
	vr := &sheets.ValueRange{Values: make([][]interface{}, 0, len(values))}
	for _, cells := range values {
		raw := make([]interface{}, len(cells))
		for i, c := range cells {
			raw[i] = c
		}
		vr.Values = append(vr.Values, raw)
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.a1(""), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append rows: %w", classifyAPI(err))
	}
	return nil
}

// a1 builds an A1 range on the worksheet, e.g. 'Orders'!1:1.
func (s *Sheets) a1(cells string) string {
	name := "'" + strings.ReplaceAll(s.sheet, "'", "''") + "'"
	if cells == "" {
		return name
	}
	return name + "!" + cells
}

func classifyAPI(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError {
			return &database.TransientError{Err: err}
		}
	}
	return err
}
