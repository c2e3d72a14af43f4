package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteCSV writes a header line followed by one line per row. Every data
// field is quoted; nested values are encoded as JSON and absent numbers are
// empty.
func WriteCSV(w io.Writer, rows []Row) error {
	var sb strings.Builder
	sb.WriteString(strings.Join(Columns, ","))
	sb.WriteByte('\n')

	for _, row := range rows {
		fields, err := row.fields()
		if err != nil {
			return fmt.Errorf("export: row %d: %w", row.ResponseIndex, err)
		}
		for i, f := range fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quote(f))
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// fields renders the row in Columns order.
func (r Row) fields() ([]string, error) {
	params, err := json.Marshal(r.Params)
	if err != nil {
		return nil, err
	}
	scores, err := json.Marshal(r.Scores)
	if err != nil {
		return nil, err
	}
	details, err := json.Marshal(r.Details)
	if err != nil {
		return nil, err
	}

	quality := ""
	if r.OverallQuality != nil {
		quality = strconv.FormatFloat(*r.OverallQuality, 'f', -1, 64)
	}

	return []string{
		r.ExperimentID,
		r.ExperimentTitle,
		r.ExperimentPrompt,
		r.Model,
		r.ExperimentCreatedAt,
		strconv.Itoa(r.ResponseIndex),
		r.ResponseID,
		r.ResponseText,
		optionalInt(r.TokensIn),
		optionalInt(r.TokensOut),
		optionalInt(r.LatencyMs),
		string(params),
		quality,
		string(scores),
		string(details),
		strconv.FormatBool(r.IsBestFit),
	}, nil
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
