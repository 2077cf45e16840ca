// Package report formats search results as the semicolon separated CSV
// produced by batch runs and summarizes batches.
//
// A report starts with the header line
//
//	File; Clique; Time (sec)
//
// followed by one line per instance:
//
//	C125.9.clq; 34; 0.052 0,5,12,...
//
// When the returned vertex set fails verification, the line is preceded by
// "*** WARNING: incorrect clique ***". The result is still written.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Header is the first line of every report.
const Header = "File; Clique; Time (sec)"

// Warning precedes rows whose clique failed verification.
const Warning = "*** WARNING: incorrect clique ***"

// Row is one instance result.
type Row struct {
	Instance string        `json:"instance"`
	Size     int           `json:"size"`
	Elapsed  time.Duration `json:"elapsed"`
	Clique   []int         `json:"clique"`
	Valid    bool          `json:"valid"`
}

// Join renders vertex IDs as "v1,v2,...".
func Join(clique []int) string {
	var sb strings.Builder
	for i, v := range clique {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

// Seconds formats d as seconds with millisecond precision.
func Seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

// CSVWriter writes report rows. The header is written before the first row,
// or by Flush when no row was written.
type CSVWriter struct {
	w      *bufio.Writer
	header bool
}

// NewCSVWriter returns a writer on w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: bufio.NewWriter(w)}
}

func (c *CSVWriter) writeHeader() {
	if !c.header {
		fmt.Fprintln(c.w, Header)
		c.header = true
	}
}

// Write appends one row, preceded by the warning line if r is invalid.
func (c *CSVWriter) Write(r Row) error {
	c.writeHeader()
	if !r.Valid {
		fmt.Fprintln(c.w, Warning)
	}
	_, err := fmt.Fprintf(c.w, "%s; %d; %s %s\n", r.Instance, r.Size, Seconds(r.Elapsed), Join(r.Clique))
	return err
}

// WriteAll writes rows and flushes.
func (c *CSVWriter) WriteAll(rows []Row) error {
	for _, r := range rows {
		if err := c.Write(r); err != nil {
			return err
		}
	}
	return c.Flush()
}

// Flush writes any buffered data to the underlying writer.
func (c *CSVWriter) Flush() error {
	c.writeHeader()
	return c.w.Flush()
}

// Summary aggregates a batch of rows.
type Summary struct {
	Instances   int           `json:"instances"`
	Invalid     int           `json:"invalid"`
	MeanSize    float64       `json:"mean_size"`
	StdDevSize  float64       `json:"stddev_size"`
	MaxSize     int           `json:"max_size"`
	TotalTime   time.Duration `json:"total_time"`
	MeanSeconds float64       `json:"mean_seconds"`
}

// Summarize computes batch statistics. The standard deviation is the
// sample deviation and is 0 for fewer than two rows.
func Summarize(rows []Row) Summary {
	s := Summary{Instances: len(rows)}
	if len(rows) == 0 {
		return s
	}
	sizes := make([]float64, len(rows))
	secs := make([]float64, len(rows))
	for i, r := range rows {
		sizes[i] = float64(r.Size)
		secs[i] = r.Elapsed.Seconds()
		s.TotalTime += r.Elapsed
		s.MaxSize = max(s.MaxSize, r.Size)
		if !r.Valid {
			s.Invalid++
		}
	}
	s.MeanSize = stat.Mean(sizes, nil)
	s.MeanSeconds = stat.Mean(secs, nil)
	if len(rows) > 1 {
		s.StdDevSize = stat.StdDev(sizes, nil)
	}
	return s
}
