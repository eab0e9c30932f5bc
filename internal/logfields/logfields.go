package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeySite       = "site"
	KeyMode       = "mode"
	KeyDocument   = "document"
	KeyOutput     = "output"
	KeyHandler    = "handler"
	KeyPath       = "path"
	KeyDirectory  = "directory"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Site(path string) slog.Attr       { return slog.String(KeySite, path) }
func Mode(m string) slog.Attr          { return slog.String(KeyMode, m) }
func Document(path string) slog.Attr   { return slog.String(KeyDocument, path) }
func Output(path string) slog.Attr     { return slog.String(KeyOutput, path) }
func Handler(name string) slog.Attr    { return slog.String(KeyHandler, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Directory(dir string) slog.Attr   { return slog.String(KeyDirectory, dir) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
