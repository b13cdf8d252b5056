package dataprocessing

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	"surveycli/internal/errors"
	"surveycli/pkg/contracts/domain"
)

// Parser reads one survey input file into validated SurveyRecord values.
type Parser struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewParser creates a parser with the record validator attached.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ParseFile parses a survey input file, dispatching on the file extension.
func (p *Parser) ParseFile(path string) ([]domain.SurveyRecord, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return p.parseExcel(path)
	}
	return p.parseCSV(path)
}

// parseCSV parses a comma-delimited survey file.
func (p *Parser) parseCSV(path string) ([]domain.SurveyRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(domain.SurveyColumns)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewMalformedFile(filepath.Base(path), "file has no header row", nil)
	}
	if err != nil {
		return nil, errors.NewMalformedFile(filepath.Base(path), "failed to read header row", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, errors.NewMalformedFile(filepath.Base(path), err.Error(), nil)
	}

	var records []domain.SurveyRecord
	row := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, errors.NewMalformedRecord(filepath.Base(path), row, "failed to parse row", err)
		}

		record, err := p.buildRecord(fields)
		if err != nil {
			return nil, errors.NewMalformedRecord(filepath.Base(path), row, err.Error(), err)
		}
		records = append(records, record)
	}

	return records, nil
}

// parseExcel parses the first sheet of an Excel workbook using the same
// header and record contract as CSV input.
func (p *Parser) parseExcel(path string) ([]domain.SurveyRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewMalformedFile(filepath.Base(path), "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, errors.NewMalformedFile(filepath.Base(path), "file has no header row", nil)
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, errors.NewMalformedFile(filepath.Base(path), err.Error(), nil)
	}

	var records []domain.SurveyRecord
	for i, fields := range rows[1:] {
		rowNum := i + 2

		if isBlankRow(fields) {
			continue
		}
		if len(fields) != len(domain.SurveyColumns) {
			return nil, errors.NewMalformedRecord(filepath.Base(path), rowNum,
				fmt.Sprintf("expected %d columns, got %d", len(domain.SurveyColumns), len(fields)), nil)
		}

		record, err := p.buildRecord(fields)
		if err != nil {
			return nil, errors.NewMalformedRecord(filepath.Base(path), rowNum, err.Error(), err)
		}
		records = append(records, record)
	}

	return records, nil
}

// buildRecord constructs and validates a SurveyRecord from one row of
// fields in canonical column order.
func (p *Parser) buildRecord(fields []string) (domain.SurveyRecord, error) {
	supportRaw := strings.TrimSpace(fields[6])
	support, err := strconv.Atoi(supportRaw)
	if err != nil || (support != 0 && support != 1) {
		return domain.SurveyRecord{}, fmt.Errorf("policy_support must be 0 or 1, got %q", supportRaw)
	}

	record := domain.SurveyRecord{
		RespondentID:  strings.TrimSpace(fields[0]),
		AgeGroup:      strings.TrimSpace(fields[1]),
		Gender:        strings.TrimSpace(fields[2]),
		Race:          strings.TrimSpace(fields[3]),
		Education:     strings.TrimSpace(fields[4]),
		Income:        strings.TrimSpace(fields[5]),
		PolicySupport: support,
	}

	if err := p.validate.Struct(record); err != nil {
		var invalid validator.ValidationErrors
		if stderrors.As(err, &invalid) && len(invalid) > 0 {
			field := invalid[0]
			return domain.SurveyRecord{}, fmt.Errorf("%s %q is not a declared category value",
				columnForField(field.StructField()), field.Value())
		}
		return domain.SurveyRecord{}, err
	}

	return record, nil
}

// checkHeader verifies the header row matches the required column names
// exactly and case-sensitively.
func checkHeader(header []string) error {
	if len(header) != len(domain.SurveyColumns) {
		return fmt.Errorf("header has %d columns, want %d (%s)",
			len(header), len(domain.SurveyColumns), strings.Join(domain.SurveyColumns, ", "))
	}
	for i, want := range domain.SurveyColumns {
		if strings.TrimSpace(header[i]) != want {
			return fmt.Errorf("header column %d is %q, want %q", i+1, strings.TrimSpace(header[i]), want)
		}
	}
	return nil
}

// columnForField maps a SurveyRecord struct field back to its file column.
func columnForField(field string) string {
	switch field {
	case "RespondentID":
		return domain.ColumnRespondentID
	case "AgeGroup":
		return domain.ColumnAgeGroup
	case "Gender":
		return domain.ColumnGender
	case "Race":
		return domain.ColumnRace
	case "Education":
		return domain.ColumnEducation
	case "Income":
		return domain.ColumnIncome
	case "PolicySupport":
		return domain.ColumnPolicySupport
	default:
		return field
	}
}

// isBlankRow reports whether every cell in the row is empty. Excel sheets
// commonly carry trailing blank rows; they are not records.
func isBlankRow(fields []string) bool {
	for _, cell := range fields {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
