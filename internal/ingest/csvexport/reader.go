// Package csvexport reads a tabular workout export (one row per set) into
// RawSet rows. Exports come from assorted tools and locales, so decoding
// tries an ordered ladder of text encodings and timestamp formats before
// giving up on any single value — never on the whole file.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/claude/liftstats/internal/ingest"
	"github.com/claude/liftstats/internal/models"
	"github.com/claude/liftstats/internal/units"
)

// Export is the outcome of reading one tabular export.
type Export struct {
	Sets     []models.RawSet
	Result   ingest.Result
	Units    units.Detection
	Encoding string // which ladder entry decoded the file
}

// Timestamp layouts: strict ISO-8601 first, then the day-first locale format
// the export tool writes ("19 Feb 2026, 16:54").
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2 Jan 2006, 15:04",
	"2 January 2006, 15:04",
}

// Read parses a tabular export. Only an unreadable stream or a file with no
// header is an error; malformed rows and values degrade to zero values.
func Read(r io.Reader) (*Export, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	text, encName := decode(data)

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading export header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	det := units.Detect(header)

	col := ingest.NewCollector()
	indexByWorkout := make(map[string]int)

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// a broken row is dropped, not fatal
			continue
		}

		field := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		exercise := field("exercise_title")
		if exercise == "" {
			continue
		}

		title := field("title")
		start := parseTimestamp(field("start_time"))
		end := parseTimestamp(field("end_time"))
		workoutID := models.WorkoutID(title, start)

		setType := field("set_type")
		if setType == "" {
			setType = "normal"
		}

		// Rows without a set_index get the next free index for their workout.
		// Explicit indices only move the counter past themselves, so a mixed
		// file never auto-assigns an index an explicit row already used.
		setIndex, hasIndex := atoiOK(field("set_index"))
		if hasIndex {
			if setIndex+1 > indexByWorkout[workoutID] {
				indexByWorkout[workoutID] = setIndex + 1
			}
		} else {
			setIndex = indexByWorkout[workoutID]
			indexByWorkout[workoutID] = setIndex + 1
		}

		s := models.RawSet{
			WorkoutID:     workoutID,
			WorkoutTitle:  title,
			StartTime:     start,
			EndTime:       end,
			ExerciseTitle: exercise,
			SetIndex:      setIndex,
			SetID:         field("set_uuid"),
			SetType:       setType,
			Kind:          models.ClassifySetType(setType),
			Reps:          atoi(field("reps")),
			DurationSec:   atof(field("duration_seconds")),
		}
		if det.Weight != nil {
			s.WeightKg = units.ToKg(atof(field(det.Weight.RawColumn)), det.Weight.RawUnit)
		}
		if det.BodyWeight != nil {
			s.BodyWeightKg = units.ToKg(atof(field(det.BodyWeight.RawColumn)), det.BodyWeight.RawUnit)
		}
		if det.Distance != nil {
			s.DistanceKm = units.ToKm(atof(field(det.Distance.RawColumn)), det.Distance.RawUnit)
		}

		col.Add(s)
	}

	sets, res := col.Finish()
	return &Export{Sets: sets, Result: res, Units: det, Encoding: encName}, nil
}

// decode tries candidate encodings in order and accepts the first that
// decodes cleanly; the final fallback substitutes invalid bytes rather than
// failing the import.
func decode(data []byte) (string, string) {
	// UTF-16 is unambiguous when a byte-order mark is present.
	if len(data) >= 2 && (data[0] == 0xFF && data[1] == 0xFE || data[0] == 0xFE && data[1] == 0xFF) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if out, err := dec.Bytes(data); err == nil {
			return string(out), "utf-16"
		}
	}

	// Plain UTF-8 (with or without BOM).
	trimmed := bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(trimmed) {
		return string(trimmed), "utf-8"
	}

	// Windows-1252 covers the latin-1 exports.
	if out, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil && utf8.Valid(out) {
		return string(out), "windows-1252"
	}

	// Last resort: keep what we can.
	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), "utf-8-replace"
}

// parseTimestamp tries the strict ISO layouts first, then the day-first
// locale fallback. Unparseable values degrade to the zero time.
func parseTimestamp(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func atof(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func atoi(s string) int {
	n, _ := atoiOK(s)
	return n
}

func atoiOK(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
