package walk

import "github.com/robomac/qfind/record"

// MatchRecord is a snapshot of a matching candidate row, in the canonical
// field order spec.md §6 fixes for consumers (CSV writers and the like)
// that serialize it: name, path, container, size, mtime_date, mtime_time,
// ext, ext2, type, archive. It outlives the row that produced it — the
// row is only valid during one evaluation step, the record is a plain
// value copy.
type MatchRecord struct {
	Name      string
	Path      string
	Container string
	Size      int64
	MtimeDate string
	MtimeTime string
	Ext       string
	Ext2      string
	Type      string
	Archive   string
}

func newMatchRecord(row record.Row) *MatchRecord {
	return &MatchRecord{
		Name:      row.Name,
		Path:      row.Path,
		Container: row.Container,
		Size:      row.Size,
		MtimeDate: row.Mtime.Local().Format("2006-01-02"),
		MtimeTime: row.Mtime.Local().Format("15:04:05"),
		Ext:       row.Ext,
		Ext2:      row.Ext2,
		Type:      row.Type,
		Archive:   row.Archive,
	}
}
