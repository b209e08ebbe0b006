package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/topsis/internal/topsis"
)

// Write stores t augmented with the scores and ranks of res at path. The
// file is written to a temporary sibling and renamed into place, so a failed
// write never leaves a partial result behind.
func Write(path string, t *Table, res *topsis.Result, opts ...Option) (err error) {
	if err := checkResult(t, res); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create result file: %w", topsis.ErrUnexpected, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Warn().Err(rmErr).Str("path", tmpName).Msg("failed to remove temporary result file")
			}
		}
	}()

	format, compression := DetectFormat(path)
	buffered := bufio.NewWriter(tmp)
	w, err := compressWriter(buffered, compression)
	if err != nil {
		return fmt.Errorf("%w: %w", topsis.ErrUnexpected, err)
	}

	switch format {
	case FormatJSON:
		err = EncodeJSON(w, t, res)
	default:
		err = EncodeCSV(w, t, res, opts...)
	}
	if err != nil {
		return err
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("%w: finish result file: %w", topsis.ErrUnexpected, err)
	}
	if err = buffered.Flush(); err != nil {
		return fmt.Errorf("%w: flush result file: %w", topsis.ErrUnexpected, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: chmod result file: %w", topsis.ErrUnexpected, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close result file: %w", topsis.ErrUnexpected, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: move result file into place: %w", topsis.ErrUnexpected, err)
	}

	log.Debug().Str("path", path).Int("rows", len(t.Rows)).Msg("result table written")
	return nil
}

// EncodeCSV writes the original columns followed by the score and rank
// columns, one line per alternative in input order.
func EncodeCSV(w io.Writer, t *Table, res *topsis.Result, opts ...Option) error {
	if err := checkResult(t, res); err != nil {
		return err
	}
	o := newOptions(opts)

	cw := csv.NewWriter(w)
	cw.Comma = o.delimiter

	header := append(append([]string(nil), t.Header...), topsis.ScoreColumn, topsis.RankColumn)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%w: write header: %w", topsis.ErrUnexpected, err)
	}

	for i, row := range t.Rows {
		record := make([]string, 0, len(row)+2)
		record = append(record, row...)
		record = append(record, FormatScore(res.Scores[i], o.scorePrecision), strconv.Itoa(res.Ranks[i]))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: write row %d: %w", topsis.ErrUnexpected, i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: write result: %w", topsis.ErrUnexpected, err)
	}
	return nil
}

func EncodeJSON(w io.Writer, t *Table, res *topsis.Result) error {
	if err := checkResult(t, res); err != nil {
		return err
	}

	out := jsonResult{
		Columns: append(append([]string(nil), t.Header...), topsis.ScoreColumn, topsis.RankColumn),
		Records: make([]jsonRecord, len(t.Rows)),
	}
	for i, row := range t.Rows {
		rec := jsonRecord{
			Alternative: row[0],
			Values:      row,
			Rank:        res.Ranks[i],
		}
		if score := res.Scores[i]; !math.IsNaN(score) {
			rec.Score = &score
		}
		out.Records[i] = rec
	}

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal result: %w", topsis.ErrUnexpected, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("%w: write result: %w", topsis.ErrUnexpected, err)
	}
	return nil
}

// FormatScore renders a score for a result file. NaN is written as "NaN".
func FormatScore(score float64, precision int) string {
	if math.IsNaN(score) {
		return "NaN"
	}
	if precision < 0 {
		return strconv.FormatFloat(score, 'g', -1, 64)
	}
	return strconv.FormatFloat(score, 'f', precision, 64)
}

func checkResult(t *Table, res *topsis.Result) error {
	if t == nil || res == nil {
		return fmt.Errorf("%w: missing table or result", topsis.ErrUnexpected)
	}
	if len(res.Scores) != len(t.Rows) || len(res.Ranks) != len(t.Rows) {
		return fmt.Errorf("%w: result has %d scores and %d ranks for %d rows",
			topsis.ErrDimensionMismatch, len(res.Scores), len(res.Ranks), len(t.Rows))
	}
	return nil
}
