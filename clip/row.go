// Package clip resolves selected table rows into playback targets.
package clip

// Row is one annotated clip as loaded from a data source.
// Fields carries every source column by name, including those mapped onto
// the typed fields and those hidden from display.
type Row struct {
	MediaID     string
	StartRaw    string
	EndRaw      string
	Description string
	Fields      map[string]string
}

// Value returns the named column, or "" when the row doesn't have it.
func (r Row) Value(column string) string {
	return r.Fields[column]
}

// ColumnMap names the source columns holding the clip fields.
type ColumnMap struct {
	MediaID     string
	Start       string
	End         string
	Description string
}

// DefaultColumns is the column layout of a descriptions table.
var DefaultColumns = ColumnMap{
	MediaID:     "video_id",
	Start:       "start_timecode",
	End:         "end_timecode",
	Description: "description",
}

// FromRecord builds a Row from a column-name-to-value record.
// The record map is copied so callers may reuse it.
func FromRecord(record map[string]string, cols ColumnMap) Row {
	fields := make(map[string]string, len(record))
	for k, v := range record {
		fields[k] = v
	}
	return Row{
		MediaID:     fields[cols.MediaID],
		StartRaw:    fields[cols.Start],
		EndRaw:      fields[cols.End],
		Description: fields[cols.Description],
		Fields:      fields,
	}
}

// WithTimecodes returns a copy of r with new raw start/end timecodes.
// The copy owns its own Fields map; r is left untouched.
func (r Row) WithTimecodes(cols ColumnMap, start, end string) Row {
	fields := make(map[string]string, len(r.Fields)+2)
	for k, v := range r.Fields {
		fields[k] = v
	}
	fields[cols.Start] = start
	fields[cols.End] = end

	out := r
	out.StartRaw = start
	out.EndRaw = end
	out.Fields = fields
	return out
}
