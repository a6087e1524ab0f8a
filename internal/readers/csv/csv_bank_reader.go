package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	readers "github.com/zdziszkee/bank-registry/internal/readers"
)

type CSVBanksReader struct {
}

const expectedHeader = "SWIFT CODE,NAME,ADDRESS,CITY,COUNTRY,COUNTRY CODE,PHONE NUMBER,EMAIL,WEBSITE,BANK TYPE,ACTIVE"

var expectedHeaders = strings.Split(expectedHeader, ",")

func (c *CSVBanksReader) LoadBanks(reader io.Reader) ([]readers.BankRecord, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.ReuseRecord = true
	csvReader.FieldsPerRecord = len(expectedHeaders)

	header, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []readers.BankRecord{}, nil
		}
		if errors.Is(err, csv.ErrFieldCount) {
			return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	// Case-insensitive and space-trimmed comparison
	for i, col := range header {
		expectedCol := expectedHeaders[i]
		if strings.TrimSpace(strings.ToUpper(col)) != expectedCol {
			return nil, fmt.Errorf("invalid header: expected '%s' at index %d, got '%s'", expectedCol, i, col)
		}
	}
	headerMap := map[string]int{}
	for i, col := range header {
		headerMap[strings.TrimSpace(strings.ToUpper(col))] = i
	}

	records := []readers.BankRecord{}
	rowNum := 1
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		getVal := func(field string) string {
			return strings.TrimSpace(row[headerMap[field]])
		}

		records = append(records, readers.BankRecord{
			Index:       rowNum,
			SwiftCode:   getVal("SWIFT CODE"),
			Name:        getVal("NAME"),
			Address:     getVal("ADDRESS"),
			City:        getVal("CITY"),
			Country:     getVal("COUNTRY"),
			CountryCode: getVal("COUNTRY CODE"),
			PhoneNumber: getVal("PHONE NUMBER"),
			Email:       getVal("EMAIL"),
			Website:     getVal("WEBSITE"),
			BankType:    getVal("BANK TYPE"),
			Active:      getVal("ACTIVE"),
		})
		rowNum++
	}

	return records, nil
}
